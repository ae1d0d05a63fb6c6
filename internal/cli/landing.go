package cli

import (
	"context"

	"github.com/loghoi/loghoi/internal/landing"
)

// landingCommand runs the default loghoi screen.
func landingCommand(ctx context.Context) error {
	s, err := newSession()
	if err != nil {
		return err
	}

	return landing.Run(ctx, landing.RunOptions{
		Runner:  s.newRunner(ctx),
		Backend: s.client,
		Aliases: s.aliases(),
		LogFile: s.cfg.LogFile,
	})
}
