package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFileConfig(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
seeds:
  - http://a.com/
max_pages: 50
max_depth: 2
delay: 500ms
timeout: 5s
user_agent: custom/1.0
allow:
  - a.com
exclude:
  - /private
no_robots: true
extractor: trafilatura
concurrency: 4
db: crawl.db
`)

	cfg, err := loadFileConfig(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"http://a.com/"}, cfg.Seeds)
	assert.Equal(t, 50, cfg.MaxPages)
	assert.Equal(t, 2, cfg.MaxDepth)
	assert.Equal(t, duration(500*time.Millisecond), cfg.Delay)
	assert.Equal(t, duration(5*time.Second), cfg.Timeout)
	assert.Equal(t, "custom/1.0", cfg.UserAgent)
	assert.Equal(t, []string{"a.com"}, cfg.Allow)
	assert.Equal(t, []string{"/private"}, cfg.Exclude)
	assert.True(t, cfg.NoRobots)
	assert.Equal(t, "trafilatura", cfg.Extractor)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, "crawl.db", cfg.DB)
}

func TestLoadFileConfig_invalid_duration(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "delay: not-a-duration\n")

	_, err := loadFileConfig(path)
	assert.Error(t, err)
}

func TestLoadFileConfig_missing_file(t *testing.T) {
	t.Parallel()

	_, err := loadFileConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestRunCmd_apply(t *testing.T) {
	t.Parallel()

	t.Run("file values fill unset flags", func(t *testing.T) {
		t.Parallel()

		cmd := &RunCmd{}
		cmd.apply(&FileConfig{
			Seeds:    []string{"http://a.com/"},
			MaxPages: 25,
			Delay:    duration(2 * time.Second),
			DB:       "crawl.db",
		})

		assert.Equal(t, []string{"http://a.com/"}, cmd.Seeds)
		assert.Equal(t, 25, cmd.MaxPages)
		assert.Equal(t, 2*time.Second, cmd.Delay)
		assert.Equal(t, "crawl.db", cmd.DB)
	})

	t.Run("seeds from flags win over the file", func(t *testing.T) {
		t.Parallel()

		cmd := &RunCmd{Seeds: []string{"http://flag.com/"}}
		cmd.apply(&FileConfig{Seeds: []string{"http://file.com/"}})

		assert.Equal(t, []string{"http://flag.com/"}, cmd.Seeds)
	})

	t.Run("allow lists are merged", func(t *testing.T) {
		t.Parallel()

		cmd := &RunCmd{Allow: []string{"a.com"}}
		cmd.apply(&FileConfig{Allow: []string{"b.com"}})

		assert.Equal(t, []string{"a.com", "b.com"}, cmd.Allow)
	})

	t.Run("zero file values leave flags untouched", func(t *testing.T) {
		t.Parallel()

		cmd := &RunCmd{MaxPages: 100, MaxDepth: 3}
		cmd.apply(&FileConfig{})

		assert.Equal(t, 100, cmd.MaxPages)
		assert.Equal(t, 3, cmd.MaxDepth)
	})
}
