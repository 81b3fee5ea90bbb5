package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.ReportPath != DefaultReportPath {
		t.Errorf("expected ReportPath %s, got %s", DefaultReportPath, cfg.ReportPath)
	}

	if cfg.Verbosity != DefaultVerbosity {
		t.Errorf("expected Verbosity %d, got %d", DefaultVerbosity, cfg.Verbosity)
	}

	if cfg.Title != DefaultTitle || cfg.Description != DefaultDescription {
		t.Errorf("unexpected title/description %q / %q", cfg.Title, cfg.Description)
	}

	if !cfg.Descriptions || !cfg.Flags.FailOnError {
		t.Error("expected descriptions and fail-on-error to default to true")
	}

	if len(cfg.PathsToIgnore) != len(DefaultPathsToIgnore) {
		t.Errorf("expected %d paths to ignore, got %d", len(DefaultPathsToIgnore), len(cfg.PathsToIgnore))
	}

	cfg.PathsToIgnore[0] = "changed"
	if DefaultPathsToIgnore[0] == "changed" {
		t.Error("New must copy the default ignore list")
	}
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	path := filepath.Join(dir, "htmlreport.yaml")
	content := `
report_path: from-file.html
title: File Title
verbosity: 2
paths_to_ignore: [vendor]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("HTMLREPORT_DESCRIPTION=from dotenv\n"), 0644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	t.Setenv("HTMLREPORT_TITLE", "Env Title")
	t.Setenv("HTMLREPORT_OPEN_IN_BROWSER", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// godotenv sets process variables; drop it so other tests stay clean
	t.Cleanup(func() { os.Unsetenv("HTMLREPORT_DESCRIPTION") })

	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"file value", cfg.ReportPath, "from-file.html"},
		{"env beats file", cfg.Title, "Env Title"},
		{"dotenv value", cfg.Description, "from dotenv"},
		{"file int", cfg.Verbosity, 2},
		{"env bool", cfg.OpenInBrowser, true},
		{"default kept", cfg.MainModule, DefaultMainModule},
		{"file list", len(cfg.PathsToIgnore), 1},
		{"config file recorded", cfg.Flags.ConfigFile, path},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, tt.got)
			}
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	chdir(t, t.TempDir())

	t.Run("missing file", func(t *testing.T) {
		if _, err := Load("/non/existent/config.yaml"); err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		os.WriteFile(path, []byte("verbosity: [oops"), 0644)
		if _, err := Load(path); err == nil {
			t.Error("expected error for invalid yaml")
		}
	})

	t.Run("invalid env", func(t *testing.T) {
		t.Setenv("HTMLREPORT_VERBOSITY", "loud")
		if _, err := Load(""); err == nil {
			t.Error("expected error for non-numeric verbosity")
		}
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"empty report path", func(c *Config) { c.ReportPath = "" }, true},
		{"negative verbosity", func(c *Config) { c.Verbosity = -1 }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "chatty" }, true},
		{"debug log level", func(c *Config) { c.LogLevel = "debug" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Paths(t *testing.T) {
	cfg := &Config{ReportPath: "/tmp/out/report.html", TestPath: "./pkg/../pkg"}

	if got := cfg.GetReportPath(); got != "/tmp/out/report.html" {
		t.Errorf("unexpected report path %s", got)
	}
	if got := cfg.GetJSONPath(); got != "" {
		t.Errorf("expected JSON report disabled, got %s", got)
	}
	cfg.ReportJSONPath = "report.json"
	if got := cfg.GetJSONPath(); !filepath.IsAbs(got) {
		t.Errorf("expected absolute JSON path, got %s", got)
	}
	if got := cfg.GetTestPath(); got != "pkg" {
		t.Errorf("expected cleaned test path, got %s", got)
	}
	cfg.TestPath = ""
	if got := cfg.GetTestPath(); got != DefaultTestPath {
		t.Errorf("expected default test path, got %s", got)
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
