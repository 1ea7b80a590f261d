package commands

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lurelight/lurelight/pkg/engine"
	"github.com/lurelight/lurelight/pkg/textprep"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("170"))
	safeStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	warnStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	phishingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	subtleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func statusStyle(status engine.ReportStatus) lipgloss.Style {
	switch status {
	case engine.ReportSafe:
		return safeStyle
	case engine.ReportSuspicious:
		return warnStyle
	default:
		return phishingStyle
	}
}

func newCheckCommand() *cobra.Command {
	var (
		imagePath  string
		emlPath    string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "check <url>",
		Short: "Analyze a URL, optionally with a page screenshot and source e-mail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configFromCommand(cmd)
			if err != nil {
				return err
			}

			eng, err := engine.New(cfg.Engine)
			if err != nil {
				return fmt.Errorf("initialize engine: %w", err)
			}

			in := engine.AnalyzeInput{URL: args[0]}

			if imagePath != "" {
				data, err := os.ReadFile(imagePath)
				if err != nil {
					return fmt.Errorf("read screenshot: %w", err)
				}
				in.ImageBase64 = base64.StdEncoding.EncodeToString(data)
			}

			if emlPath != "" {
				f, err := os.Open(emlPath)
				if err != nil {
					return fmt.Errorf("open e-mail: %w", err)
				}
				msg, perr := textprep.FromEML(f)
				_ = f.Close()
				if perr != nil {
					return fmt.Errorf("parse e-mail: %w", perr)
				}
				in.EmailText = msg.ClassifierInput()
			}

			report, err := eng.Analyze(cmd.Context(), in)
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			printReport(cmd, args[0], report)
			return nil
		},
	}

	cmd.Flags().StringVar(&imagePath, "image", "", "Path to a screenshot of the visited page")
	cmd.Flags().StringVar(&emlPath, "eml", "", "Path to the e-mail the URL arrived in")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the report as JSON")

	return cmd
}

func printReport(cmd *cobra.Command, url string, report engine.Report) {
	out := cmd.OutOrStdout()

	header := titleStyle.Render("Lurelight") + "  " + subtleStyle.Render(url)
	verdict := statusStyle(report.Status).Render(string(report.Status)) +
		fmt.Sprintf("  (trust %d/%d)", report.Score, report.MaxScore)
	fmt.Fprintln(out, panelStyle.Render(header+"\n"+verdict))

	for _, check := range report.Checks {
		if check.Passed {
			color.New(color.FgGreen).Fprintf(out, "  ✓ %s", check.Name)
		} else {
			color.New(color.FgRed).Fprintf(out, "  ✗ %s", check.Name)
		}
		if check.Detail != "" {
			fmt.Fprintf(out, "  %s", subtleStyle.Render(check.Detail))
		}
		fmt.Fprintln(out)
	}

	if report.Legitimacy != nil {
		fmt.Fprintf(out, "\n  %s\n", report.Legitimacy.Reason)
	}
	if report.Visual.MatchFound {
		fmt.Fprintf(out, "  visual match: %s (distance %d, %s confidence)\n",
			report.Visual.ClosestMatch, report.Visual.Distance, report.Visual.Confidence)
	}
}
