package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"

	"github.com/aretw0/cvterm/pkg/config"
)

// Options carries the flags shared by every subcommand.
type Options struct {
	// ConfigPath is an optional YAML settings file.
	ConfigPath string
	// EnvFile is loaded into the environment before CVTERM_* overrides are read.
	EnvFile string
	// ContentPath overrides the résumé document.
	ContentPath string

	LogLevel string
	LogFile  string
	Debug    bool

	// RedisAddr enables the shared usage counters.
	RedisAddr string
	// UsageFile persists usage counters locally when Redis is not used.
	UsageFile string
	// SkipBoot replaces the typing animation with the banner alone.
	SkipBoot bool
}

// loadSettings resolves settings from defaults, the env file, the settings
// file, the environment and finally the explicit flags.
func loadSettings(opts Options) (config.Settings, error) {
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return config.Settings{}, fmt.Errorf("failed to load env file %s: %w", opts.EnvFile, err)
		}
	}

	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return settings, err
	}

	if opts.ContentPath != "" {
		settings.Content = opts.ContentPath
	}
	if opts.RedisAddr != "" {
		settings.RedisAddr = opts.RedisAddr
	}
	if opts.LogLevel != "" {
		settings.LogLevel = opts.LogLevel
	}
	if opts.SkipBoot {
		settings.SkipBoot = true
	}
	return settings, settings.Validate()
}
