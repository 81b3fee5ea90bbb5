package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"htmlreporter/internal/cli"
	"htmlreporter/internal/config"
	"htmlreporter/internal/discovery"
	"htmlreporter/internal/logging"
)

// ErrTestsFailed is returned when a run had failures or errors and the
// command was asked to fail on them
var ErrTestsFailed = errors.New("tests failed")

// Commands holds all CLI commands
type Commands struct {
	Run     *RunCommand
	Convert *ConvertCommand
	List    *ListCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	filter := discovery.NewFilter()
	testCaseParser := discovery.NewParser()
	reporter := newReporter(cfg, testCaseParser)

	return &Commands{
		Run:     NewRunCommand(cfg, reporter),
		Convert: NewConvertCommand(cfg, reporter),
		List:    NewListCommand(cfg, filter, testCaseParser),
	}
}

// Register registers all commands with cobra. Configuration is loaded
// before any command runs: defaults, then the config file, .env and
// environment, then flags given on the command line.
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	rootCmd.PersistentFlags().StringVar(&flags.ConfigFile, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&flags.TestPath, "test-path", "t", "", "Directory go test runs in and package discovery starts from")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(flags.ConfigFile)
		if err != nil {
			return err
		}
		// Update config with flags after parsing
		flags.Apply(loaded, cmd.Flags().Changed)
		if err := loaded.Validate(); err != nil {
			return err
		}
		*cfg = *loaded
		return logging.Setup(cfg.LogLevel, cmd.ErrOrStderr())
	}

	// Run command
	runCmd := &cobra.Command{
		Use:   "run [packages...] [-- go test flags]",
		Short: "Run Go tests and write an HTML report",
		Long:  "Run go test -json for the given packages (or every package with tests under the test path) and write the results as an HTML report",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dash := cmd.ArgsLenAtDash(); dash >= 0 {
				cfg.Flags.GoTestArgs = append(cfg.Flags.GoTestArgs, args[dash:]...)
				args = args[:dash]
			}
			return c.Run.Execute(cmd, args)
		},
	}
	addReportFlags(runCmd, flags)
	runCmd.Flags().StringVarP(&flags.Filter, "filter", "f", "", "Filter tests by name pattern (supports wildcards, e.g., '*User' or '*Payment*')")
	runCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop on first test failure")
	runCmd.Flags().BoolVar(&flags.CaptureOS, "capture-os", false, "Also capture writes to the process stdout and stderr")
	runCmd.Flags().BoolVar(&flags.Progress, "progress", false, "Show a progress bar instead of per-test output")
	rootCmd.AddCommand(runCmd)

	// Convert command
	convertCmd := &cobra.Command{
		Use:   "convert [file|-]",
		Short: "Write an HTML report from go test -json output",
		Long:  "Replay a saved go test -json stream (or standard input) and write the results as an HTML report",
		Args:  cobra.MaximumNArgs(1),
		RunE:  c.Convert.Execute,
	}
	addReportFlags(convertCmd, flags)
	rootCmd.AddCommand(convertCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List packages with tests",
		Long:  "Scan the test path and list the Go packages that contain tests without running them",
		RunE:  c.List.Execute,
	}
	listCmd.Flags().StringVarP(&flags.Filter, "filter", "f", "", "Filter packages by name pattern (supports wildcards, e.g., '*user*')")
	listCmd.Flags().BoolVarP(&flags.TestCases, "test-cases", "c", false, "List test functions under each package")
	rootCmd.AddCommand(listCmd)
}

func addReportFlags(cmd *cobra.Command, flags *cli.Flags) {
	cmd.Flags().StringVarP(&flags.ReportPath, "report", "o", config.DefaultReportPath, "Path of the HTML report")
	cmd.Flags().StringVar(&flags.JSONPath, "json", "", "Also write the report as JSON to this path")
	cmd.Flags().StringVar(&flags.Title, "title", config.DefaultTitle, "Report title")
	cmd.Flags().StringVar(&flags.Description, "description", config.DefaultDescription, "Report description")
	cmd.Flags().StringVar(&flags.TemplatePath, "template", "", "Custom report template (falls back to the built-in one)")
	cmd.Flags().StringVar(&flags.MainModule, "main-module", config.DefaultMainModule, "Module whose classes are shown without a prefix")
	cmd.Flags().IntVar(&flags.Verbosity, "verbosity", config.DefaultVerbosity, "0 quiet, 1 one character per test, 2 one line per test")
	cmd.Flags().BoolVar(&flags.Descriptions, "descriptions", true, "Show test descriptions in verbose output")
	cmd.Flags().BoolVar(&flags.OpenInBrowser, "open", false, "Open the report in a browser")
	cmd.Flags().BoolVar(&flags.View, "view", false, "Open the interactive failure viewer after the run")
	cmd.Flags().BoolVar(&flags.FailOnError, "fail-on-error", true, "Exit with status 1 when any test failed")
}
