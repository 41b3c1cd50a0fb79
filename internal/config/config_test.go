package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/piwi3910/PrintQuote/internal/project"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PRINTQUOTE_CONFIG_DIR", "")
	t.Setenv("PRINTQUOTE_LOG_LEVEL", "")
	t.Setenv("PRINTQUOTE_LOG_FORMAT", "")

	opts := Load()
	assert.Equal(t, project.DefaultConfigDir(), opts.ConfigDir)
	assert.Equal(t, "info", opts.LogLevel)
	assert.Equal(t, "console", opts.LogFormat)
	assert.Equal(t, project.DefaultConfigPath(), opts.ConfigPath())
}

func TestLoadFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PRINTQUOTE_CONFIG_DIR", dir)
	t.Setenv("PRINTQUOTE_LOG_LEVEL", "debug")
	t.Setenv("PRINTQUOTE_LOG_FORMAT", "json")

	opts := Load()
	assert.Equal(t, dir, opts.ConfigDir)
	assert.Equal(t, "debug", opts.LogLevel)
	assert.Equal(t, "json", opts.LogFormat)
	assert.Equal(t, filepath.Join(dir, project.ConfigFileName), opts.ConfigPath())
}
