package cli

import (
	"os"

	"github.com/loghoi/loghoi/internal/logger"
	"github.com/loghoi/loghoi/internal/ui"
	"github.com/spf13/cobra"
)

// Global flags
var (
	cfgFile     string
	backendFlag string
	verbose     bool
	noColor     bool
)

// addGlobalFlags registers --config, --backend-url, --verbose, and --no-color.
func addGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./.loghoi.yaml, then ~/.config/loghoi/config.yaml)")
	cmd.PersistentFlags().StringVar(&backendFlag, "backend-url", "", "backend address, overrides config and LOGHOI_BACKEND_URL")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// applyGlobalFlags applies flags that affect process-wide state.
func applyGlobalFlags() {
	if noColor || os.Getenv("NO_COLOR") != "" {
		ui.DisableColors()
	}
	if verbose {
		logger.SetDebug(true)
	}
}

// Config returns the --config flag value.
func Config() string {
	return cfgFile
}
