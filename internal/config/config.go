// Package config reads process options for PrintQuote from the
// environment. Domain settings live in the configuration file managed by
// the project package, not here.
package config

import (
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/piwi3910/PrintQuote/internal/project"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "PRINTQUOTE"

// Options are the process-level options.
type Options struct {
	// ConfigDir holds the configuration file.
	ConfigDir string
	LogLevel  string
	LogFormat string
}

// ConfigPath returns the full path of the configuration file.
func (o Options) ConfigPath() string {
	return filepath.Join(o.ConfigDir, project.ConfigFileName)
}

// Load reads PRINTQUOTE_CONFIG_DIR, PRINTQUOTE_LOG_LEVEL and
// PRINTQUOTE_LOG_FORMAT, applying defaults for unset values.
func Load() Options {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("config_dir", project.DefaultConfigDir())
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")

	opts := Options{
		ConfigDir: strings.TrimSpace(v.GetString("config_dir")),
		LogLevel:  strings.TrimSpace(v.GetString("log_level")),
		LogFormat: strings.TrimSpace(v.GetString("log_format")),
	}
	if opts.ConfigDir == "" {
		opts.ConfigDir = project.DefaultConfigDir()
	}
	return opts
}
