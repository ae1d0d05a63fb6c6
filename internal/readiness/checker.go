package readiness

import (
	"context"
	stderrors "errors"

	"github.com/loghoi/loghoi/internal/backend"
	"github.com/loghoi/loghoi/internal/errors"
	"github.com/loghoi/loghoi/internal/logger"
)

// SetupClient is the backend call the checker depends on.
type SetupClient interface {
	SetupSSHKey(ctx context.Context) (*backend.SetupResponse, error)
}

// Outcome is the result of one readiness check.
type Outcome struct {
	// Status is the status reported by the backend, empty on failure or
	// when the backend didn't report one.
	Status string

	// PublicKey is the backend's public key in authorized_keys form, if sent.
	PublicKey string

	// Err is set when the check failed. A failed check still completes setup.
	Err error
}

// Next returns the phase that follows PhaseChecking for this outcome.
func (o Outcome) Next() Phase {
	if o.Err == nil && o.Status == backend.StatusGenerated {
		return PhaseGenerating
	}
	return PhaseComplete
}

// Checker performs the readiness request.
type Checker struct {
	client SetupClient
	log    logger.Logger
}

// NewChecker creates a checker. A nil logger discards diagnostics.
func NewChecker(client SetupClient, log logger.Logger) *Checker {
	if log == nil {
		log = logger.Noop()
	}
	return &Checker{client: client, log: log}
}

// Check issues the setup request once. It never fails: errors are logged and
// carried in Outcome.Err.
func (c *Checker) Check(ctx context.Context) Outcome {
	resp, err := c.client.SetupSSHKey(ctx)
	if err != nil {
		if stderrors.Is(err, context.Canceled) {
			c.log.Debug("SSH key setup abandoned: %s", errors.Short(err))
		} else {
			c.log.Error("SSH key setup failed, continuing without it: %s", errors.Short(err))
		}
		return Outcome{Err: err}
	}
	if resp == nil {
		return Outcome{}
	}

	if resp.Generated() {
		c.log.Info("backend generated a new SSH key")
	} else {
		c.log.Debug("backend SSH key ready (status %q)", resp.Status)
	}

	return Outcome{Status: resp.Status, PublicKey: resp.PublicKey}
}
