package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"htmlreporter/internal/collector"
	"htmlreporter/internal/config"
	"htmlreporter/internal/discovery"
	"htmlreporter/internal/runner"
	"htmlreporter/internal/ui"
)

// reporter prints what a run produced: the summary table, where the report
// went and, on request, the failure viewer
type reporter struct {
	config *config.Config
	parser *discovery.Parser
	viewer ui.Viewer
}

func newReporter(cfg *config.Config, parser *discovery.Parser) *reporter {
	return &reporter{config: cfg, parser: parser}
}

// finish reports on a completed run and decides the command's error
func (r *reporter) finish(cmd *cobra.Command, run *runner.Runner, result *collector.Result, runErr error) error {
	out := cmd.OutOrStdout()

	if path := run.ReportPath(); path != "" {
		data := run.Data()
		formatter := ui.NewFormatter(r.config, r.parser, out)
		formatter.PrintSummary(data.Summary, data.Groups)
		color.New(color.FgCyan).Fprintf(out, "Report written to %s\n", path)
	}
	if runErr != nil {
		return runErr
	}

	if r.config.Flags.View {
		viewer := r.viewer
		if viewer == nil {
			viewer = ui.NewErrorViewer(out)
		}
		if err := viewer.View(run.Data().Groups); err != nil {
			return err
		}
	}

	if r.config.Flags.FailOnError && !result.WasSuccessful() {
		return ErrTestsFailed
	}
	return nil
}
