package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"htmlreporter/internal/capture"
	"htmlreporter/internal/config"
	"htmlreporter/internal/parser"
	"htmlreporter/internal/runner"
)

// ConvertCommand handles the convert command
type ConvertCommand struct {
	config   *config.Config
	reporter *reporter
}

// NewConvertCommand creates a new ConvertCommand
func NewConvertCommand(cfg *config.Config, reporter *reporter) *ConvertCommand {
	return &ConvertCommand{
		config:   cfg,
		reporter: reporter,
	}
}

// Execute runs the command. With no argument or "-" the stream is read
// from standard input.
func (cc *ConvertCommand) Execute(cmd *cobra.Command, args []string) error {
	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open test output: %w", err)
		}
		defer f.Close()
		in = f
	}

	run := runner.New(cc.config)
	replay := parser.NewReplay(in, capture.Std)
	result, err := run.Run(cmd.Context(), replay)
	return cc.reporter.finish(cmd, run, result, err)
}
