package cli

import (
	"context"

	"github.com/loghoi/loghoi/internal/backend"
	"github.com/loghoi/loghoi/internal/config"
	"github.com/loghoi/loghoi/internal/devices"
	"github.com/loghoi/loghoi/internal/logger"
	"github.com/loghoi/loghoi/internal/readiness"
)

// session holds what every backend-facing command needs.
type session struct {
	cfg    *config.Config
	client *backend.Client
}

// loadConfig loads config, applies --backend-url, and validates the result.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(Config())
	if err != nil {
		return nil, err
	}

	if backendFlag != "" {
		cfg.Backend.URL = backendFlag
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newSession loads config and builds the backend client.
func newSession() (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	// Validate already checked it normalizes.
	origin, _ := backend.NormalizeOrigin(cfg.Backend.URL)

	client := backend.NewClient(
		backend.StaticResolver(origin),
		cfg.Backend.Timeout,
		backend.WithLogger(logger.NewEnvLogger("backend")),
		backend.WithUserAgent("loghoi/"+GetVersion()),
	)

	return &session{cfg: cfg, client: client}, nil
}

// newRunner builds a readiness runner bound to ctx.
func (s *session) newRunner(ctx context.Context) *readiness.Runner {
	checker := readiness.NewChecker(s.client, logger.NewEnvLogger("setup"))
	return readiness.NewRunner(ctx, checker, s.cfg.Setup.GraceDelay)
}

// aliases returns the SSH alias resolver for device addresses.
func (s *session) aliases() devices.AliasResolver {
	return devices.NewSSHConfigResolver(s.cfg.SSHConfig)
}
