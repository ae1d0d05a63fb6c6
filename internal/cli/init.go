package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/loghoi/loghoi/internal/backend"
	"github.com/loghoi/loghoi/internal/config"
	"github.com/loghoi/loghoi/internal/errors"
	"github.com/loghoi/loghoi/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Path           string // Where to write; defaults to ./.loghoi.yaml
	BackendURL     string // Pre-specified backend address
	Overwrite      bool   // Overwrite existing config without asking
	NonInteractive bool   // Skip prompts, use defaults
	SkipCheck      bool   // Don't contact the backend before saving
}

var (
	initFlags  InitOptions
	initGlobal bool
)

// initCmd creates a loghoi config file
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a loghoi config file",
	Long: `Create a config file pointing loghoi at your backend.

Writes .loghoi.yaml in the current directory, or the global config with
--global. The backend is contacted once to check the address before saving.

Examples:
  loghoi init
  loghoi init --backend-url http://10.0.0.5:7776
  loghoi init --global --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := initFlags
		opts.BackendURL = backendFlag
		opts.NonInteractive = opts.NonInteractive || !term.IsTerminal(int(os.Stdin.Fd()))
		if initGlobal {
			opts.Path = config.GlobalConfigPath()
		}
		return Init(cmd.Context(), cmd.OutOrStdout(), opts)
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initFlags.Overwrite, "force", "f", false, "overwrite existing config")
	initCmd.Flags().BoolVar(&initFlags.NonInteractive, "non-interactive", false, "don't prompt, use flags and defaults")
	initCmd.Flags().BoolVar(&initFlags.SkipCheck, "no-check", false, "don't contact the backend before saving")
	initCmd.Flags().BoolVar(&initGlobal, "global", false, "write "+filepath.Join("~", config.GlobalConfigDir, config.GlobalConfigFile))
	rootCmd.AddCommand(initCmd)
}

// Init creates a new config file.
func Init(ctx context.Context, w io.Writer, opts InitOptions) error {
	configPath := opts.Path
	if configPath == "" {
		configPath = filepath.Join(".", config.ConfigFileName)
	}

	// Check for existing config
	if _, err := os.Stat(configPath); err == nil && !opts.Overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", configPath),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", configPath)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Fprintln(w, "Cancelled.")
			return nil
		}
	}

	backendURL := opts.BackendURL
	if backendURL == "" {
		backendURL = config.DefaultBackendURL
	}

	if !opts.NonInteractive {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Backend address").
					Description("Where the Log Hoihoi backend listens").
					Placeholder(config.DefaultBackendURL).
					Value(&backendURL).
					Validate(func(s string) error {
						_, err := backend.NormalizeOrigin(s)
						return err
					}),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Check terminal compatibility or use --non-interactive flag")
		}
	}

	origin, err := backend.NormalizeOrigin(backendURL)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("%q isn't a usable backend address", backendURL),
			"Use an http(s) origin like "+config.DefaultBackendURL)
	}

	cfg := config.DefaultConfig()
	cfg.Backend.URL = origin
	// Leave log_file unset so the temp dir default follows the machine.
	cfg.LogFile = ""

	if !opts.SkipCheck {
		if err := checkBackend(ctx, w, cfg); err != nil {
			return err
		}
	}

	if err := config.Write(configPath, cfg); err != nil {
		return err
	}

	fmt.Fprintf(w, "%s Created %s\n", ui.SymbolSuccess, configPath)
	return nil
}

// checkBackend confirms the backend answers before the config is saved.
// The device list is used because it has no side effects.
func checkBackend(ctx context.Context, w io.Writer, cfg *config.Config) error {
	pd := ui.NewPhaseDisplay(w)
	client := backend.NewClient(backend.StaticResolver(cfg.Backend.URL), cfg.Backend.Timeout,
		backend.WithUserAgent("loghoi/"+GetVersion()))

	start := time.Now()
	pd.RenderProgress("Contacting " + cfg.Backend.URL)
	if _, err := client.ListDevices(ctx); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Backend at %s didn't answer", cfg.Backend.URL),
			"Start the backend, or pass --no-check to save the config anyway")
	}
	pd.RenderSuccess("Backend reachable", time.Since(start))
	return nil
}
