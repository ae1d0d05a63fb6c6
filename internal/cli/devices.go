package cli

import (
	"context"
	"io"

	"github.com/loghoi/loghoi/internal/backend"
	"github.com/loghoi/loghoi/internal/landing"
	"github.com/spf13/cobra"
)

var devicesJSON bool

// devicesCmd lists devices registered with the backend
var devicesCmd = &cobra.Command{
	Use:     "devices",
	Aliases: []string{"ls"},
	Short:   "List registered devices",
	Long: `List the devices registered with the backend.

Examples:
  loghoi devices
  loghoi devices --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return devicesCommand(cmd.Context(), cmd.OutOrStdout(), devicesJSON)
	},
}

func init() {
	devicesCmd.Flags().BoolVar(&devicesJSON, "json", false, "output the device list as JSON")
	rootCmd.AddCommand(devicesCmd)
}

// devicesCommand implements the devices command logic.
func devicesCommand(ctx context.Context, w io.Writer, jsonOut bool) error {
	s, err := newSession()
	if err != nil {
		if jsonOut {
			return reportJSONError(w, err)
		}
		return err
	}

	if !jsonOut {
		return landing.PrintDevices(ctx, s.client, w)
	}

	list, err := s.client.ListDevices(ctx)
	if err != nil {
		return reportJSONError(w, err)
	}
	if list == nil {
		list = []backend.Device{}
	}
	return WriteJSONSuccess(w, list)
}
