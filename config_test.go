package frontier_test

import (
	"testing"
	"time"

	"github.com/fwojciec/frontier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts zero values", func(t *testing.T) {
		t.Parallel()
		cfg := frontier.Config{}
		require.NoError(t, cfg.Validate())
	})

	t.Run("rejects negative max pages", func(t *testing.T) {
		t.Parallel()
		cfg := frontier.Config{MaxPages: -1}
		err := cfg.Validate()
		assert.Equal(t, frontier.EINVALID, frontier.ErrorCode(err))
	})

	t.Run("rejects negative max depth", func(t *testing.T) {
		t.Parallel()
		cfg := frontier.Config{MaxDepth: -1}
		err := cfg.Validate()
		assert.Equal(t, frontier.EINVALID, frontier.ErrorCode(err))
	})

	t.Run("rejects negative delay", func(t *testing.T) {
		t.Parallel()
		cfg := frontier.Config{Delay: -time.Second}
		err := cfg.Validate()
		assert.Equal(t, frontier.EINVALID, frontier.ErrorCode(err))
	})
}

func TestStatus_Valid(t *testing.T) {
	t.Parallel()

	for _, status := range []frontier.Status{
		frontier.StatusSuccess,
		frontier.StatusRateLimited,
		frontier.StatusRobotsBlocked,
		frontier.StatusError,
		frontier.StatusSkipped,
		frontier.StatusMaxDepth,
	} {
		assert.True(t, status.Valid(), "status %q should be valid", status)
	}

	assert.False(t, frontier.Status("bogus").Valid())
	assert.False(t, frontier.Status("").Valid())
}

func TestResult_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts a minimal result", func(t *testing.T) {
		t.Parallel()
		res := frontier.Result{URL: "http://a.com", Status: frontier.StatusSuccess}
		require.NoError(t, res.Validate())
	})

	t.Run("requires URL", func(t *testing.T) {
		t.Parallel()
		res := frontier.Result{Status: frontier.StatusSuccess}
		assert.Equal(t, frontier.EINVALID, frontier.ErrorCode(res.Validate()))
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		t.Parallel()
		res := frontier.Result{URL: "http://a.com", Status: "bogus"}
		assert.Equal(t, frontier.EINVALID, frontier.ErrorCode(res.Validate()))
	})
}
