package config

import (
	"os"
	"path/filepath"
	"time"
)

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the complete loghoi configuration.
type Config struct {
	Version int           `mapstructure:"version"`
	Backend BackendConfig `mapstructure:"backend"`
	Setup   SetupConfig   `mapstructure:"setup"`

	// LogFile receives diagnostics while the TUI owns the terminal.
	LogFile string `mapstructure:"log_file"`

	// SSHConfig is the ssh_config file used to resolve device aliases.
	SSHConfig string `mapstructure:"ssh_config"`
}

// BackendConfig locates the Log Hoihoi backend.
type BackendConfig struct {
	// URL is the backend origin, e.g. http://localhost:7776.
	URL string `mapstructure:"url"`

	// Timeout bounds every backend request.
	Timeout time.Duration `mapstructure:"timeout"`
}

// SetupConfig controls the SSH key readiness check on launch.
type SetupConfig struct {
	// GraceDelay is how long the "generating" message stays up after the
	// backend reports a freshly generated key.
	GraceDelay time.Duration `mapstructure:"grace_delay"`
}

// Defaults
const (
	DefaultBackendURL     = "http://localhost:7776"
	DefaultBackendTimeout = 10 * time.Second
	DefaultGraceDelay     = 500 * time.Millisecond
)

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Backend: BackendConfig{
			URL:     DefaultBackendURL,
			Timeout: DefaultBackendTimeout,
		},
		Setup: SetupConfig{
			GraceDelay: DefaultGraceDelay,
		},
		LogFile:   defaultLogFile(),
		SSHConfig: "~/.ssh/config",
	}
}

func defaultLogFile() string {
	return filepath.Join(os.TempDir(), "loghoi.log")
}
