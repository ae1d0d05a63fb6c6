package config

import (
	"os"
	"path/filepath"

	"github.com/loghoi/loghoi/internal/errors"
	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape. Durations are kept as strings so the
// file reads "10s" rather than nanoseconds.
type fileConfig struct {
	Version int `yaml:"version"`
	Backend struct {
		URL     string `yaml:"url"`
		Timeout string `yaml:"timeout"`
	} `yaml:"backend"`
	Setup struct {
		GraceDelay string `yaml:"grace_delay"`
	} `yaml:"setup"`
	LogFile   string `yaml:"log_file,omitempty"`
	SSHConfig string `yaml:"ssh_config,omitempty"`
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	var fc fileConfig
	fc.Version = cfg.Version
	if fc.Version == 0 {
		fc.Version = CurrentConfigVersion
	}
	fc.Backend.URL = cfg.Backend.URL
	fc.Backend.Timeout = cfg.Backend.Timeout.String()
	fc.Setup.GraceDelay = cfg.Setup.GraceDelay.String()
	fc.LogFile = cfg.LogFile
	fc.SSHConfig = cfg.SSHConfig

	return yaml.Marshal(&fc)
}

// Write saves cfg to path, creating parent directories as needed.
func Write(path string, cfg *Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to encode config",
			"This is a bug; please report it")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot create config directory: "+filepath.Dir(path),
			"Check directory permissions")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to write config file: "+path,
			"Check file permissions")
	}

	return nil
}
