package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/loghoi/loghoi/internal/util"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "loghoi",
	Short: "Terminal client for the Log Hoihoi log collection backend",
	Long: `loghoi is the terminal front end for Log Hoihoi.

On launch it makes sure the backend has an SSH key for reaching your devices,
generating one on first run, and then shows the device list next to a form
for registering new devices.

Examples:
  loghoi
  loghoi --backend-url http://10.0.0.5:7776
  loghoi devices --json`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		applyGlobalFlags()
	},
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return landingCommand(cmd.Context())
	},
}

func init() {
	addGlobalFlags(rootCmd)
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err == nil {
		return
	}

	var reported *reportedError
	switch {
	case errors.As(err, &reported):
		// Already written as JSON
	case isUnknownCommandError(err):
		fmt.Fprintln(os.Stderr, err)
		if hint := unknownCommandHint(err); hint != "" {
			fmt.Fprint(os.Stderr, hint)
		}
	default:
		fmt.Fprint(os.Stderr, err.Error())
		if !strings.HasSuffix(err.Error(), "\n") {
			fmt.Fprintln(os.Stderr)
		}
	}
	os.Exit(1)
}

// isUnknownCommandError reports whether cobra rejected the command line
// itself rather than a command failing.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") ||
		strings.HasPrefix(msg, "unknown flag") ||
		strings.HasPrefix(msg, "unknown shorthand flag")
}

// unknownCommandHint explains an unknown command, suggesting close matches
// among the registered commands and their aliases.
func unknownCommandHint(err error) string {
	name := extractUnknownCommand(err)
	if name == "" || !strings.HasPrefix(err.Error(), "unknown command") {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n'%s' isn't a loghoi command.", name)
	if suggestions := util.SuggestSimilar(name, commandNames(), 2); len(suggestions) > 0 {
		fmt.Fprintf(&b, " Did you mean '%s'?", suggestions[0])
	}
	b.WriteString(" Run 'loghoi --help' to see what is.\n")
	return b.String()
}

func commandNames() []string {
	var names []string
	for _, c := range rootCmd.Commands() {
		if c.Hidden {
			continue
		}
		names = append(names, c.Name())
		names = append(names, c.Aliases...)
	}
	return names
}

// extractUnknownCommand pulls "foo" out of `unknown command "foo" for "loghoi"`.
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.Index(msg, `"`)
	if start == -1 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end == -1 {
		return ""
	}
	return msg[start+1 : start+1+end]
}
