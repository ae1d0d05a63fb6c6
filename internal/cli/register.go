package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/loghoi/loghoi/internal/backend"
	"github.com/loghoi/loghoi/internal/devices"
	"github.com/loghoi/loghoi/internal/errors"
	"github.com/loghoi/loghoi/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// RegisterOptions holds options for the register command.
type RegisterOptions struct {
	Address        string
	Username       string
	Password       string
	NonInteractive bool // Fail instead of prompting for missing values
}

var registerFlags RegisterOptions

// registerCmd registers a device with the backend
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a device with the backend",
	Long: `Register a device so the backend can collect its logs.

Values not given as flags are prompted for. The address may be an alias from
your SSH config, in which case its HostName is registered.

Examples:
  loghoi register
  loghoi register --address 10.0.0.10 --username admin
  loghoi register --address prism-tokyo --username admin --password "$PRISM_PASS"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := registerFlags
		opts.NonInteractive = !term.IsTerminal(int(os.Stdin.Fd()))
		return registerCommand(cmd.Context(), cmd.OutOrStdout(), opts)
	},
}

func init() {
	registerCmd.Flags().StringVar(&registerFlags.Address, "address", "", "device address, hostname, or SSH config alias")
	registerCmd.Flags().StringVar(&registerFlags.Username, "username", "", "login user on the device")
	registerCmd.Flags().StringVar(&registerFlags.Password, "password", "", "login password (prompted if omitted)")
	rootCmd.AddCommand(registerCmd)
}

func (o RegisterOptions) complete() bool {
	return strings.TrimSpace(o.Address) != "" &&
		strings.TrimSpace(o.Username) != "" &&
		o.Password != ""
}

// registerCommand implements the register command logic.
func registerCommand(ctx context.Context, w io.Writer, opts RegisterOptions) error {
	s, err := newSession()
	if err != nil {
		return err
	}

	if !opts.complete() {
		if opts.NonInteractive {
			return errors.New(errors.ErrDevice,
				"Missing registration details",
				"Pass --address, --username, and --password when not running in a terminal")
		}

		form := devices.NewRegistrationForm(&opts.Address, &opts.Username, &opts.Password)
		if err := form.Run(); err != nil {
			if stderrors.Is(err, huh.ErrUserAborted) {
				fmt.Fprintln(w, "Cancelled.")
				return nil
			}
			return errors.WrapWithCode(err, errors.ErrDevice,
				"Failed to get user input",
				"Pass the values as flags instead")
		}
	}

	address := strings.TrimSpace(opts.Address)
	reg := backend.Registration{
		Address:  s.aliases().Resolve(address),
		Username: strings.TrimSpace(opts.Username),
		Password: opts.Password,
	}

	pd := ui.NewPhaseDisplay(w)
	if reg.Address != address {
		pd.RenderSubStatus(ui.SymbolPending, address, "resolves to "+reg.Address)
	}

	start := time.Now()
	pd.RenderProgress("Registering " + reg.Address)
	if err := s.client.RegisterDevice(ctx, reg); err != nil {
		return err
	}
	pd.RenderSuccess("Registered "+reg.Address, time.Since(start))
	return nil
}
