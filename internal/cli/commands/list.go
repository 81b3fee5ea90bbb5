package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"htmlreporter/internal/config"
	"htmlreporter/internal/discovery"
	"htmlreporter/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config *config.Config
	filter *discovery.Filter
	parser *discovery.Parser
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	filter *discovery.Filter,
	parser *discovery.Parser,
) *ListCommand {
	return &ListCommand{
		config: cfg,
		filter: filter,
		parser: parser,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	scanner := discovery.NewScanner(lc.config.PathsToIgnore)
	packages, err := scanner.Scan(lc.config.GetTestPath())
	if err != nil {
		return err
	}

	// Filter packages
	packages = lc.filter.FilterByName(packages, lc.config.Flags.Filter)

	if len(packages) == 0 {
		color.New(color.FgYellow).Fprintln(cmd.OutOrStdout(), "No tests found")
		return nil
	}

	formatter := ui.NewFormatter(lc.config, lc.parser, cmd.OutOrStdout())
	return formatter.PrintPackageList(packages, lc.config.Flags.TestCases)
}
