package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	// Report settings
	ReportPath     string `yaml:"report_path" envconfig:"REPORT_PATH"`
	ReportJSONPath string `yaml:"json_path" envconfig:"JSON_PATH"`
	Title          string `yaml:"title" envconfig:"TITLE"`
	Description    string `yaml:"description" envconfig:"DESCRIPTION"`
	TemplatePath   string `yaml:"template_path" envconfig:"TEMPLATE_PATH"`
	OpenInBrowser  bool   `yaml:"open_in_browser" envconfig:"OPEN_IN_BROWSER"`
	MainModule     string `yaml:"main_module" envconfig:"MAIN_MODULE"`

	// Run settings
	Verbosity    int    `yaml:"verbosity" envconfig:"VERBOSITY"`
	Descriptions bool   `yaml:"descriptions" envconfig:"DESCRIPTIONS"`
	CaptureOS    bool   `yaml:"capture_os" envconfig:"CAPTURE_OS"`
	FailFast     bool   `yaml:"fail_fast" envconfig:"FAIL_FAST"`
	LogLevel     string `yaml:"log_level" envconfig:"LOG_LEVEL"`
	TestPath     string `yaml:"test_path" envconfig:"TEST_PATH"`

	// Paths to ignore when scanning
	PathsToIgnore []string `yaml:"paths_to_ignore" envconfig:"PATHS_TO_IGNORE"`

	// Command flags
	Flags Flags `yaml:"-" ignored:"true"`
}

// Flags holds command-line only settings
type Flags struct {
	ConfigFile  string
	Filter      string
	View        bool
	FailOnError bool
	Progress    bool
	TestCases   bool
	GoTestArgs  []string
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ReportPath:   DefaultReportPath,
		Title:        DefaultTitle,
		Description:  DefaultDescription,
		MainModule:   DefaultMainModule,
		Verbosity:    DefaultVerbosity,
		Descriptions: true,
		LogLevel:     DefaultLogLevel,
		TestPath:     DefaultTestPath,
		Flags:        Flags{FailOnError: true},
	}
	// Copy default paths to ignore
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// Load layers defaults, the YAML file at path (if any), the .env file and
// HTMLREPORT_* environment variables, in that order of precedence.
func Load(path string) (*Config, error) {
	cfg := New()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	// .env file might not exist, that's okay - use environment variables
	if err := godotenv.Load(DefaultEnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		logrus.WithError(err).WithField("File", DefaultEnvFile).Warn("Failed to load env file")
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	cfg.Flags.ConfigFile = path
	return cfg, cfg.Validate()
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// Validate checks the settings that would otherwise fail late
func (c *Config) Validate() error {
	if c.ReportPath == "" {
		return errors.New("missing required parameter: report path")
	}
	if c.Verbosity < 0 {
		return fmt.Errorf("verbosity must be non-negative, got %d", c.Verbosity)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return nil
}

// GetReportPath returns the absolute path of the HTML report
func (c *Config) GetReportPath() string {
	return absPath(c.ReportPath)
}

// GetJSONPath returns the absolute path of the JSON report, or "" when the
// JSON report is disabled
func (c *Config) GetJSONPath() string {
	if c.ReportJSONPath == "" {
		return ""
	}
	return absPath(c.ReportJSONPath)
}

// GetTestPath returns the directory package discovery starts from
func (c *Config) GetTestPath() string {
	if c.TestPath == "" {
		return DefaultTestPath
	}
	return filepath.Clean(c.TestPath)
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
