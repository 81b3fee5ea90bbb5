package config

const (
	// EnvPrefix prefixes every environment variable read by Load
	EnvPrefix = "HTMLREPORT"
	// DefaultReportPath is the default HTML report file
	DefaultReportPath = "report.html"
	// DefaultVerbosity prints one character per test
	DefaultVerbosity = 1
	// DefaultTitle is the default HTML page title
	DefaultTitle = "Unit Test Report"
	// DefaultDescription is the default report description
	DefaultDescription = "Unit Test Report Description"
	// DefaultMainModule is the module whose classes are shown unqualified
	DefaultMainModule = "main"
	// DefaultLogLevel is the default logrus level
	DefaultLogLevel = "info"
	// DefaultTestPath is where package discovery starts
	DefaultTestPath = "."
	// DefaultEnvFile is loaded before environment variables are read
	DefaultEnvFile = ".env"
)

// DefaultPathsToIgnore are the directories skipped when looking for test packages
var DefaultPathsToIgnore = []string{
	"vendor",
	"node_modules",
	"testdata",
	"_examples",
}
