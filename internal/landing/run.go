package landing

import (
	"context"
	"errors"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/loghoi/loghoi/internal/devices"
	"github.com/loghoi/loghoi/internal/logger"
	"github.com/loghoi/loghoi/internal/readiness"
	"golang.org/x/term"
)

// Backend is what the landing screen needs from the backend client.
type Backend interface {
	devices.Lister
	devices.Registrar
}

// RunOptions configures Run.
type RunOptions struct {
	Runner  *readiness.Runner
	Backend Backend
	Aliases devices.AliasResolver

	// LogFile receives log output while the TUI owns the terminal.
	// Empty discards it.
	LogFile string

	// Out is where the headless fallback writes. Defaults to os.Stdout.
	Out io.Writer
}

// Run shows the landing screen. When stdout is not a terminal it runs the
// readiness check headlessly and prints the device list instead.
func Run(ctx context.Context, opts RunOptions) error {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	// Check if stdout is a TTY
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return runHeadless(ctx, opts, out)
	}

	log := logger.NewEnvLogger("landing")
	defer redirectLogs(opts.LogFile, log)()

	model := NewModel(Options{
		Starter:   opts.Runner,
		Lister:    opts.Backend,
		Registrar: opts.Backend,
		Aliases:   opts.Aliases,
		Log:       log,
	})

	program := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	opts.Runner.SetListener(NewBridge(program))
	defer opts.Runner.Stop()

	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

func runHeadless(ctx context.Context, opts RunOptions, out io.Writer) error {
	if _, err := CheckHeadless(ctx, opts.Runner, out); err != nil {
		return err
	}
	io.WriteString(out, "\n")
	return PrintDevices(ctx, opts.Backend, out)
}

// redirectLogs points log output at path for the life of the TUI and returns
// the function that undoes it. An empty path discards output. A path that
// can't be opened is warned about on stderr and treated like an empty one.
func redirectLogs(path string, log logger.Logger) func() {
	discard := func() func() {
		logger.SetOutput(io.Discard)
		return func() { logger.SetOutput(os.Stderr) }
	}
	if path == "" {
		return discard()
	}

	f, err := tea.LogToFile(path, "loghoi")
	if err != nil {
		log.Warn("log file %s unavailable, diagnostics are dropped: %v", path, err)
		return discard()
	}
	logger.SetOutput(f)
	return func() {
		logger.SetOutput(os.Stderr)
		f.Close()
	}
}
