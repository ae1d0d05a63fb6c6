package doctor

import (
	"context"
	"fmt"
	"time"

	"github.com/loghoi/loghoi/internal/backend"
	"github.com/loghoi/loghoi/internal/errors"
	"github.com/loghoi/loghoi/internal/util"
)

// DeviceLister is the backend call used to probe reachability.
type DeviceLister interface {
	ListDevices(ctx context.Context) ([]backend.Device, error)
}

// BackendCheck verifies the backend answers. It lists devices rather than
// calling the setup endpoint, which may generate a key.
type BackendCheck struct {
	Origin  string
	Lister  DeviceLister
	Timeout time.Duration
}

func (c *BackendCheck) Name() string     { return "backend_reachable" }
func (c *BackendCheck) Category() string { return CategoryBackend }

func (c *BackendCheck) Run(ctx context.Context) CheckResult {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	devices, err := c.Lister.ListDevices(ctx)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Backend at %s: %s", c.Origin, errors.Short(err)),
			Suggestion: "Start the backend, or point loghoi at it with --backend-url or backend.url",
		}
	}

	return CheckResult{
		Name:   c.Name(),
		Status: StatusPass,
		Message: fmt.Sprintf("Backend at %s answered in %dms, %d device%s registered",
			c.Origin, time.Since(start).Milliseconds(), len(devices), util.Pluralize(len(devices), "", "s")),
	}
}
