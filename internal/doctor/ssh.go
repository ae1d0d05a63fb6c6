package doctor

import (
	"context"
	"fmt"
	"os"

	"github.com/kevinburke/ssh_config"
	"github.com/loghoi/loghoi/internal/util"
)

// SSHConfigCheck verifies the ssh_config used to resolve device aliases
// parses. A missing file only means aliases won't resolve.
type SSHConfigCheck struct {
	Path string
}

func (c *SSHConfigCheck) Name() string     { return "ssh_config" }
func (c *SSHConfigCheck) Category() string { return CategorySSH }

func (c *SSHConfigCheck) Run(_ context.Context) CheckResult {
	if c.Path == "" {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: "SSH alias lookup disabled",
		}
	}

	f, err := os.Open(c.Path)
	if os.IsNotExist(err) {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("No SSH config at %s", c.Path),
			Suggestion: "Device addresses will be used as typed; set ssh_config to use aliases",
		}
	}
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Cannot read %s: %v", c.Path, err),
			Suggestion: "Check file permissions",
		}
	}
	defer f.Close()

	cfg, err := ssh_config.Decode(f)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Cannot parse %s: %v", c.Path, err),
			Suggestion: "Fix the syntax error; ssh -G <alias> shows what OpenSSH makes of it",
		}
	}

	// Decode adds an implicit "Host *" entry ahead of the file's own.
	hosts := len(cfg.Hosts) - 1
	if hosts < 0 {
		hosts = 0
	}
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("SSH config %s (%d host block%s)", c.Path, hosts, util.Pluralize(hosts, "", "s")),
	}
}
