package cli

import (
	"context"
	"io"

	"github.com/loghoi/loghoi/internal/landing"
	"github.com/spf13/cobra"
)

var setupJSON bool

// setupCmd runs the SSH key readiness check without the TUI
var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Make sure the backend has an SSH key",
	Long: `Ask the backend for its SSH key, generating one if this is the first run,
and report what happened. This is the same check the landing screen runs,
without the full-screen interface.

A backend that can't be reached is reported but is not an error, matching
the landing screen, which carries on without the key.

Examples:
  loghoi setup
  loghoi setup --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return setupCommand(cmd.Context(), cmd.OutOrStdout(), setupJSON)
	},
}

func init() {
	setupCmd.Flags().BoolVar(&setupJSON, "json", false, "output the result as JSON")
	rootCmd.AddCommand(setupCmd)
}

// setupCommand implements the setup command logic.
func setupCommand(ctx context.Context, w io.Writer, jsonOut bool) error {
	s, err := newSession()
	if err != nil {
		if jsonOut {
			return reportJSONError(w, err)
		}
		return err
	}

	progress := w
	if jsonOut {
		progress = io.Discard
	}

	report, err := landing.CheckHeadless(ctx, s.newRunner(ctx), progress)
	if err != nil {
		if jsonOut {
			return reportJSONError(w, err)
		}
		return err
	}

	if jsonOut {
		return WriteJSONSuccess(w, report)
	}
	return nil
}
