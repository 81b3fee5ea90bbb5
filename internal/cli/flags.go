package cli

import "htmlreporter/internal/config"

// Flags holds command-line flags
type Flags struct {
	ConfigFile    string
	ReportPath    string
	JSONPath      string
	Title         string
	Description   string
	TemplatePath  string
	MainModule    string
	LogLevel      string
	TestPath      string
	Verbosity     int
	OpenInBrowser bool
	Descriptions  bool
	CaptureOS     bool
	FailFast      bool
	Filter        string
	View          bool
	FailOnError   bool
	Progress      bool
	TestCases     bool
	GoTestArgs    []string
}

// Apply copies onto cfg the settings given on the command line. changed
// reports whether the named flag was set, so flags left at their default do
// not override the config file or environment.
func (f *Flags) Apply(cfg *config.Config, changed func(name string) bool) {
	if changed("report") {
		cfg.ReportPath = f.ReportPath
	}
	if changed("json") {
		cfg.ReportJSONPath = f.JSONPath
	}
	if changed("title") {
		cfg.Title = f.Title
	}
	if changed("description") {
		cfg.Description = f.Description
	}
	if changed("template") {
		cfg.TemplatePath = f.TemplatePath
	}
	if changed("main-module") {
		cfg.MainModule = f.MainModule
	}
	if changed("log-level") {
		cfg.LogLevel = f.LogLevel
	}
	if changed("test-path") {
		cfg.TestPath = f.TestPath
	}
	if changed("verbosity") {
		cfg.Verbosity = f.Verbosity
	}
	if changed("open") {
		cfg.OpenInBrowser = f.OpenInBrowser
	}
	if changed("descriptions") {
		cfg.Descriptions = f.Descriptions
	}
	if changed("capture-os") {
		cfg.CaptureOS = f.CaptureOS
	}
	if changed("fail-fast") {
		cfg.FailFast = f.FailFast
	}
	cfg.Flags = f.ToConfigFlags()
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		ConfigFile:  f.ConfigFile,
		Filter:      f.Filter,
		View:        f.View,
		FailOnError: f.FailOnError,
		Progress:    f.Progress,
		TestCases:   f.TestCases,
		GoTestArgs:  f.GoTestArgs,
	}
}
