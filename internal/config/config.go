// Package config loads primecount CLI settings from JSONC files.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
)

// Errors returned by LoadConfig.
var (
	ErrConfigRead    = errors.New("cannot read config file")
	ErrConfigInvalid = errors.New("invalid config")
)

// FileName is the project config file looked up in the working directory.
const FileName = ".primecount.json"

// Default range covers the primes in [1, 10^8].
const (
	DefaultLo      uint64 = 1
	DefaultHi      uint64 = 100_000_001
	DefaultWorkers        = 8
	DefaultTopK           = 10
)

// Log formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds all configuration options.
type Config struct {
	Lo        uint64 `json:"lo"`
	Hi        uint64 `json:"hi"`
	Workers   int    `json:"workers"`
	TopK      int    `json:"top_k"`
	Verify    bool   `json:"verify"`
	Progress  bool   `json:"progress"`
	LogLevel  string `json:"log_level"`
	LogFormat string `json:"log_format"`

	// Sources tracks which config files were loaded (for diagnostics).
	Sources Sources `json:"-"`
}

// Sources tracks which config files were loaded.
type Sources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project or explicit config if loaded, empty otherwise
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Lo:        DefaultLo,
		Hi:        DefaultHi,
		Workers:   DefaultWorkers,
		TopK:      DefaultTopK,
		LogLevel:  "warn",
		LogFormat: FormatText,
	}
}

// fileConfig is the on-disk form. Pointer fields distinguish "unset" from an
// explicit zero so a later file can override an earlier one with 0 or false.
type fileConfig struct {
	Lo        *uint64 `json:"lo"`
	Hi        *uint64 `json:"hi"`
	Workers   *int    `json:"workers"`
	TopK      *int    `json:"top_k"`
	Verify    *bool   `json:"verify"`
	Progress  *bool   `json:"progress"`
	LogLevel  *string `json:"log_level"`
	LogFormat *string `json:"log_format"`
}

// LoadInput holds the inputs for LoadConfig.
type LoadInput struct {
	WorkDir    string            // directory searched for FileName; os.Getwd() if empty
	ConfigPath string            // -c/--config flag value; must exist when set
	Env        map[string]string // environment variables
}

// LoadConfig loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config (~/.config/primecount/config.json or $XDG_CONFIG_HOME/primecount/config.json)
// 3. Project config file in the working directory (.primecount.json, if it exists),
// or the explicit config file when ConfigPath is set.
//
// Command-line overrides are applied by the caller, followed by Validate.
func LoadConfig(input LoadInput) (Config, error) {
	cfg := Default()

	if path := globalConfigPath(input.Env); path != "" {
		fc, loaded, err := loadFile(path, false)
		if err != nil {
			return Config{}, err
		}
		if loaded {
			cfg = merge(cfg, fc)
			cfg.Sources.Global = path
		}
	}

	path, mustExist := input.ConfigPath, true
	if path == "" {
		workDir := input.WorkDir
		if workDir == "" {
			var err error
			workDir, err = os.Getwd()
			if err != nil {
				return Config{}, fmt.Errorf("cannot get working directory: %w", err)
			}
		}
		path, mustExist = filepath.Join(workDir, FileName), false
	}

	fc, loaded, err := loadFile(path, mustExist)
	if err != nil {
		return Config{}, err
	}
	if loaded {
		cfg = merge(cfg, fc)
		cfg.Sources.Project = path
	}

	return cfg, nil
}

// Validate checks cfg for values the scan cannot run with.
func Validate(cfg Config) error {
	if cfg.Hi < cfg.Lo {
		return fmt.Errorf("%w: hi (%d) is below lo (%d)", ErrConfigInvalid, cfg.Hi, cfg.Lo)
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative", ErrConfigInvalid)
	}
	if cfg.TopK < 0 {
		return fmt.Errorf("%w: top_k must not be negative", ErrConfigInvalid)
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrConfigInvalid, err)
	}
	if cfg.LogFormat != FormatText && cfg.LogFormat != FormatJSON {
		return fmt.Errorf("%w: log_format must be %q or %q, got %q", ErrConfigInvalid, FormatText, FormatJSON, cfg.LogFormat)
	}
	return nil
}

// ParseLevel parses a slog level name such as "debug" or "warn".
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

// globalConfigPath returns the path to the global config file.
// Returns empty string if home directory cannot be determined.
func globalConfigPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "primecount", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "primecount", "config.json")
	}

	return ""
}

func loadFile(path string, mustExist bool) (fileConfig, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return fileConfig{}, false, nil
		}
		return fileConfig{}, false, fmt.Errorf("%w %s: %w", ErrConfigRead, path, err)
	}

	fc, err := parse(data)
	if err != nil {
		return fileConfig{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
	}

	return fc, true, nil
}

func parse(data []byte) (fileConfig, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return fileConfig{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var fc fileConfig
	if err := json.Unmarshal(standardized, &fc); err != nil {
		return fileConfig{}, fmt.Errorf("invalid JSON: %w", err)
	}

	return fc, nil
}

func merge(base Config, overlay fileConfig) Config {
	if overlay.Lo != nil {
		base.Lo = *overlay.Lo
	}
	if overlay.Hi != nil {
		base.Hi = *overlay.Hi
	}
	if overlay.Workers != nil {
		base.Workers = *overlay.Workers
	}
	if overlay.TopK != nil {
		base.TopK = *overlay.TopK
	}
	if overlay.Verify != nil {
		base.Verify = *overlay.Verify
	}
	if overlay.Progress != nil {
		base.Progress = *overlay.Progress
	}
	if overlay.LogLevel != nil {
		base.LogLevel = *overlay.LogLevel
	}
	if overlay.LogFormat != nil {
		base.LogFormat = *overlay.LogFormat
	}
	return base
}
