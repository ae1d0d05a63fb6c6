package devices

import (
	"net"
	"os"
	"strings"

	"github.com/kevinburke/ssh_config"
)

// AliasResolver maps what the user typed to the address sent to the backend.
type AliasResolver interface {
	Resolve(input string) string
}

// SSHConfigResolver resolves Host aliases from an ssh_config file to their
// HostName. Anything it can't resolve is returned unchanged.
type SSHConfigResolver struct {
	path string
}

// NewSSHConfigResolver reads aliases from path (usually ~/.ssh/config).
func NewSSHConfigResolver(path string) *SSHConfigResolver {
	return &SSHConfigResolver{path: path}
}

// Resolve returns the HostName for input if input is an alias in the
// config file; otherwise input, trimmed.
func (r *SSHConfigResolver) Resolve(input string) string {
	input = strings.TrimSpace(input)
	if input == "" || net.ParseIP(input) != nil || strings.ContainsAny(input, "@:/*?! ") {
		return input
	}
	if r == nil || r.path == "" {
		return input
	}

	f, err := os.Open(r.path)
	if err != nil {
		return input
	}
	defer f.Close()

	cfg, err := ssh_config.Decode(f)
	if err != nil {
		return input
	}

	hostname, err := cfg.Get(input, "HostName")
	if err != nil || hostname == "" || strings.Contains(hostname, "%") {
		return input
	}
	return hostname
}

// identityResolver returns its input unchanged.
type identityResolver struct{}

func (identityResolver) Resolve(input string) string { return strings.TrimSpace(input) }
