package landing

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/loghoi/loghoi/internal/backend"
	"github.com/loghoi/loghoi/internal/devices"
	"github.com/loghoi/loghoi/internal/errors"
	"github.com/loghoi/loghoi/internal/readiness"
	"github.com/loghoi/loghoi/internal/ui"
)

// Report summarizes a headless readiness check.
type Report struct {
	Phases        []readiness.Phase `json:"phases"`
	SetupComplete bool              `json:"setup_complete"`
	Status        string            `json:"status,omitempty"`
	Fingerprint   string            `json:"fingerprint,omitempty"`
	Error         string            `json:"error,omitempty"`
	ElapsedMS     int64             `json:"elapsed_ms"`
}

// CheckHeadless runs the readiness check without a TUI, printing each phase
// to w. The runner is started here and must not have been started before.
// A failed setup request is not an error: it shows up in Report.Error.
func CheckHeadless(ctx context.Context, runner *readiness.Runner, w io.Writer) (Report, error) {
	pd := ui.NewPhaseDisplay(w)
	start := time.Now()

	var (
		mu      sync.Mutex
		state   = readiness.NewState()
		outcome readiness.Outcome
	)

	runner.SetListener(readiness.ListenerFunc(func(phase readiness.Phase, o readiness.Outcome) {
		mu.Lock()
		defer mu.Unlock()
		if err := state.Advance(phase); err != nil {
			return
		}
		outcome = o
		if phase == readiness.PhaseGenerating {
			pd.RenderProgress("Generating SSH key (first run only)")
		}
	}))

	pd.RenderProgress("Checking SSH key")
	if err := runner.Wait(ctx); err != nil {
		return Report{}, errors.WrapWithCode(err, errors.ErrSetup,
			"Setup check interrupted",
			"Re-run the command; the backend may still be starting")
	}

	mu.Lock()
	defer mu.Unlock()

	elapsed := time.Since(start)
	report := Report{
		Phases:        state.History(),
		SetupComplete: state.SetupComplete(),
		Status:        outcome.Status,
		ElapsedMS:     elapsed.Milliseconds(),
	}

	if outcome.Err != nil {
		report.Error = errors.Short(outcome.Err)
		pd.RenderWarning("SSH key setup failed, continuing without it", elapsed)
		pd.RenderSubStatus(ui.SymbolPending, "reason", report.Error)
		return report, nil
	}

	pd.RenderSuccess("SSH key ready", elapsed)
	if outcome.PublicKey != "" {
		if fp, err := backend.Fingerprint(outcome.PublicKey); err == nil {
			report.Fingerprint = fp
			pd.RenderSubStatus(ui.SymbolPending, "fingerprint", fp)
		}
	}
	return report, nil
}

// PrintDevices fetches the device list and writes it as a plain table.
func PrintDevices(ctx context.Context, lister devices.Lister, w io.Writer) error {
	list, err := lister.ListDevices(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(w, "No devices registered yet.")
		return nil
	}
	fmt.Fprintln(w, ui.RenderSimpleTable(devices.Columns, devices.Rows(list)))
	return nil
}
