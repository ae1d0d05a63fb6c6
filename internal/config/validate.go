package config

import (
	"fmt"

	"github.com/loghoi/loghoi/internal/backend"
	"github.com/loghoi/loghoi/internal/errors"
)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from a newer loghoi (version %d, this build knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade loghoi or regenerate the file with 'loghoi init --force'")
	}

	if _, err := backend.NormalizeOrigin(cfg.Backend.URL); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("backend.url %q isn't a usable backend address", cfg.Backend.URL),
			"Use an http(s) origin like http://localhost:7776")
	}

	if cfg.Backend.Timeout <= 0 {
		return errors.New(errors.ErrConfig,
			"backend.timeout must be positive",
			"Try something like 10s")
	}

	if cfg.Setup.GraceDelay < 0 {
		return errors.New(errors.ErrConfig,
			"setup.grace_delay can't be negative",
			"Use 0 to skip the delay, or a duration like 500ms")
	}

	return nil
}
