package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/loghoi/loghoi/internal/doctor"
	"github.com/loghoi/loghoi/internal/errors"
	"github.com/loghoi/loghoi/internal/ui"
	"github.com/loghoi/loghoi/internal/util"
	"github.com/spf13/cobra"
)

var doctorJSON bool

// doctorCmd runs diagnostic checks
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose configuration and backend problems",
	Long: `Run diagnostic checks and report anything that would stop loghoi from
working: the config file, whether the backend answers, the SSH config used
for device aliases, and the log file.

Examples:
  loghoi doctor
  loghoi doctor --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return doctorCommand(cmd.Context(), cmd.OutOrStdout(), doctorJSON)
	},
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(doctorCmd)
}

// DoctorOutput is the JSON output format for doctor.
type DoctorOutput struct {
	Categories []doctor.Section `json:"categories"`
	Summary    SummaryOutput    `json:"summary"`
}

// SummaryOutput is the status counts plus whether nothing needs attention.
type SummaryOutput struct {
	doctor.Summary
	AllClear bool `json:"all_clear"`
}

// doctorCommand implements the doctor command logic.
func doctorCommand(ctx context.Context, w io.Writer, jsonOut bool) error {
	report := doctor.Run(ctx, collectChecks())

	if jsonOut {
		summary := report.Summary()
		out := DoctorOutput{
			Categories: report.Sections(),
			Summary:    SummaryOutput{Summary: summary, AllClear: summary.Issues() == 0},
		}
		if err := WriteJSONSuccess(w, out); err != nil {
			return err
		}
	} else {
		outputDoctorText(w, report)
	}

	if report.Failed() {
		err := errors.New(errors.ErrConfig,
			"loghoi doctor found problems",
			"Fix the failed checks above and run 'loghoi doctor' again")
		if jsonOut {
			return &reportedError{err: err}
		}
		return err
	}
	return nil
}

// collectChecks builds the checks for the current config. When the config
// can't be loaded only the config checks run, since the rest depend on it.
func collectChecks() []doctor.Check {
	checks := []doctor.Check{
		&doctor.ConfigFileCheck{ConfigPath: Config()},
		&doctor.ConfigSchemaCheck{ConfigPath: Config(), BackendURL: backendFlag},
	}

	s, err := newSession()
	if err != nil {
		return checks
	}

	return append(checks,
		&doctor.BackendCheck{
			Origin:  s.client.Origin(),
			Lister:  s.client,
			Timeout: s.cfg.Backend.Timeout,
		},
		&doctor.SSHConfigCheck{Path: s.cfg.SSHConfig},
		&doctor.LogFileCheck{Path: s.cfg.LogFile},
	)
}

var (
	doctorPassStyle  = lipgloss.NewStyle().Foreground(ui.ColorSuccess)
	doctorFailStyle  = lipgloss.NewStyle().Foreground(ui.ColorError)
	doctorWarnStyle  = lipgloss.NewStyle().Foreground(ui.ColorWarning)
	doctorHintStyle  = lipgloss.NewStyle().Foreground(ui.ColorMuted)
	doctorTitleStyle = lipgloss.NewStyle().Bold(true)
)

func outputDoctorText(w io.Writer, report doctor.Report) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, doctorTitleStyle.Render("loghoi Diagnostic Report"))
	fmt.Fprintln(w)

	for _, section := range report.Sections() {
		fmt.Fprintln(w, doctorTitleStyle.Render(section.Category))
		for _, r := range section.Results {
			symbol, style := ui.SymbolComplete, doctorPassStyle
			switch r.Status {
			case doctor.StatusWarn:
				symbol, style = ui.SymbolWarning, doctorWarnStyle
			case doctor.StatusFail:
				symbol, style = ui.SymbolFail, doctorFailStyle
			}

			fmt.Fprintf(w, "  %s %s\n", style.Render(symbol), r.Message)
			if r.Suggestion != "" && r.Status != doctor.StatusPass {
				fmt.Fprintf(w, "    %s\n", doctorHintStyle.Render(r.Suggestion))
			}
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, strings.Repeat("━", 60))
	fmt.Fprintln(w)

	if issues := report.Summary().Issues(); issues == 0 {
		fmt.Fprintf(w, "%s Everything looks good\n", doctorPassStyle.Render(ui.SymbolSuccess))
	} else {
		fmt.Fprintf(w, "%s %d issue%s found\n",
			doctorFailStyle.Render(ui.SymbolFail), issues, util.Pluralize(issues, "", "s"))
	}
	fmt.Fprintln(w)
}
