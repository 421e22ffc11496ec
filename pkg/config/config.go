// Package config holds the tunable settings of the terminal.
//
// Settings start from Defaults, can be overlaid by a YAML settings file and
// then by CVTERM_* environment variables. Both sources are decoded with
// mapstructure so durations ("150ms") and comma separated lists work the
// same everywhere.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CVTERM_"

// ErrInvalidSettings is returned when settings fail validation.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings are the knobs of a terminal session.
type Settings struct {
	// Content is the résumé YAML path. Empty means the embedded default.
	Content string `mapstructure:"content" yaml:"content"`

	TypingMin   time.Duration `mapstructure:"typing_min" yaml:"typing_min"`
	TypingMax   time.Duration `mapstructure:"typing_max" yaml:"typing_max"`
	Settle      time.Duration `mapstructure:"settle" yaml:"settle"`
	IntroDelay  time.Duration `mapstructure:"intro_delay" yaml:"intro_delay"`
	BannerDelay time.Duration `mapstructure:"banner_delay" yaml:"banner_delay"`
	BootPause   time.Duration `mapstructure:"boot_pause" yaml:"boot_pause"`
	BootScript  []string      `mapstructure:"boot_script" yaml:"boot_script"`
	SkipBoot    bool          `mapstructure:"skip_boot" yaml:"skip_boot"`
	ExitDelay   time.Duration `mapstructure:"exit_delay" yaml:"exit_delay"`

	// MaxInputSize bounds a single command line in bytes.
	MaxInputSize int `mapstructure:"max_input_size" yaml:"max_input_size"`

	PromptPath    string `mapstructure:"prompt_path" yaml:"prompt_path"`
	PromptBranch  string `mapstructure:"prompt_branch" yaml:"prompt_branch"`
	PromptVersion string `mapstructure:"prompt_version" yaml:"prompt_version"`
	PromptRegion  string `mapstructure:"prompt_region" yaml:"prompt_region"`

	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	RedisAddr string `mapstructure:"redis_addr" yaml:"redis_addr"`
}

// Defaults returns the stock settings.
func Defaults() Settings {
	return Settings{
		TypingMin:     80 * time.Millisecond,
		TypingMax:     120 * time.Millisecond,
		Settle:        200 * time.Millisecond,
		IntroDelay:    500 * time.Millisecond,
		BannerDelay:   500 * time.Millisecond,
		BootPause:     time.Second,
		BootScript:    []string{"whoami", "help"},
		ExitDelay:     2 * time.Second,
		MaxInputSize:  4096,
		PromptPath:    "~/cv",
		PromptBranch:  "main",
		PromptVersion: "v19.1.0",
		PromptRegion:  "eu-west-2",
		LogLevel:      "info",
	}
}

// Load builds settings from defaults, an optional settings file and the
// process environment.
func Load(path string) (Settings, error) {
	s := Defaults()
	if path != "" {
		if err := s.MergeFile(path); err != nil {
			return s, err
		}
	}
	if err := s.MergeEnv(os.Environ()); err != nil {
		return s, err
	}
	return s, s.Validate()
}

// MergeFile overlays values from a YAML settings file.
func (s *Settings) MergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read settings %s: %w", path, err)
	}
	raw := map[string]any{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse settings %s: %w", path, err)
	}
	if err := s.merge(raw); err != nil {
		return fmt.Errorf("settings %s: %w", path, err)
	}
	return nil
}

// MergeEnv overlays CVTERM_* variables from environ ("KEY=value" pairs).
// CVTERM_TYPING_MIN maps to typing_min and so on.
func (s *Settings) MergeEnv(environ []string) error {
	raw := map[string]any{}
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		raw[strings.ToLower(strings.TrimPrefix(key, EnvPrefix))] = value
	}
	if len(raw) == 0 {
		return nil
	}
	if err := s.merge(raw); err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	return nil
}

func (s *Settings) merge(raw map[string]any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           s,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		// Lists replace the defaults instead of being merged index by index.
		ZeroFields:       true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
			trimSliceHook,
		),
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

// trimSliceHook strips blanks around comma separated items.
func trimSliceHook(from, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf([]string{}) {
		return data, nil
	}
	items, ok := data.([]string)
	if !ok {
		return data, nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out, nil
}

// Validate checks ranges.
func (s Settings) Validate() error {
	var problems []string
	for name, d := range map[string]time.Duration{
		"typing_min":   s.TypingMin,
		"typing_max":   s.TypingMax,
		"settle":       s.Settle,
		"intro_delay":  s.IntroDelay,
		"banner_delay": s.BannerDelay,
		"boot_pause":   s.BootPause,
		"exit_delay":   s.ExitDelay,
	} {
		if d < 0 {
			problems = append(problems, name+" must not be negative")
		}
	}
	if s.TypingMax < s.TypingMin {
		problems = append(problems, "typing_max must be >= typing_min")
	}
	if s.MaxInputSize <= 0 {
		problems = append(problems, "max_input_size must be positive")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidSettings, strings.Join(problems, "; "))
	}
	return nil
}
