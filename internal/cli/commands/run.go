package commands

import (
	"os/exec"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"htmlreporter/internal/capture"
	"htmlreporter/internal/config"
	"htmlreporter/internal/discovery"
	"htmlreporter/internal/execution"
	"htmlreporter/internal/parser"
	"htmlreporter/internal/runner"
)

// RunCommand handles the run command
type RunCommand struct {
	config   *config.Config
	reporter *reporter
	command  execution.CommandFunc
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(cfg *config.Config, reporter *reporter) *RunCommand {
	return &RunCommand{
		config:   cfg,
		reporter: reporter,
		command:  exec.CommandContext,
	}
}

// WithCommand replaces the function used to start go test
func (rc *RunCommand) WithCommand(fn execution.CommandFunc) *RunCommand {
	rc.command = fn
	return rc
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, packages []string) error {
	// Runner takes the start time
	run := runner.New(rc.config)

	if len(packages) == 0 {
		// Discover packages
		scanner := discovery.NewScanner(rc.config.PathsToIgnore)
		found, err := scanner.Scan(rc.config.GetTestPath())
		if err != nil {
			return err
		}
		packages = found
	}

	var host runner.Host
	if len(packages) == 0 {
		// An empty run still gets a report
		color.New(color.FgYellow).Fprintln(cmd.OutOrStdout(), "No packages with tests found")
		host = parser.NewReplay(strings.NewReader(""), capture.Std)
	} else {
		host = execution.NewRunner(rc.config, packages, capture.Std).WithCommand(rc.command)
	}

	result, err := run.Run(cmd.Context(), host)
	return rc.reporter.finish(cmd, run, result, err)
}
