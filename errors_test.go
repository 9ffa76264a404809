package frontier_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/frontier"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := frontier.Errorf(frontier.ENOTFOUND, "crawl %q not found", "test")

	assert.Equal(t, frontier.ENOTFOUND, frontier.ErrorCode(err))
	assert.Equal(t, "crawl \"test\" not found", frontier.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, frontier.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, frontier.EINTERNAL, frontier.ErrorCode(errors.New("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, frontier.ErrorMessage(nil))
}
