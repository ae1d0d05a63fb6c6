package doctor

import (
	"context"
	"fmt"
	"os"
)

// LogFileCheck verifies the TUI log file can be written.
type LogFileCheck struct {
	Path string
}

func (c *LogFileCheck) Name() string     { return "log_file" }
func (c *LogFileCheck) Category() string { return CategoryLogs }

func (c *LogFileCheck) Run(_ context.Context) CheckResult {
	if c.Path == "" {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: "Logging disabled while the TUI runs",
		}
	}

	f, err := os.OpenFile(c.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("Cannot write log file %s", c.Path),
			Suggestion: "Set log_file to a writable path; diagnostics are dropped until then",
		}
	}
	f.Close()

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Log file: %s", c.Path),
	}
}
