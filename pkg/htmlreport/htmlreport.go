// Package htmlreport runs Go test functions in process and writes the
// results as an HTML report.
//
//	cfg := htmlreport.NewConfig()
//	cfg.ReportPath = "out/report.html"
//
//	r := htmlreport.New(cfg).
//		Add(htmlreport.Class{Name: "Cart"}, "test_total", "Totals add up.", testTotal)
//	result, err := r.Run(ctx)
//
// Code that caches a writer before the run, such as a logger, should be
// given Stdout or Stderr. Writes through them land in the output of the test
// that is running, and go to the real stream between tests.
package htmlreport

import (
	"context"
	"io"

	"htmlreporter/internal/capture"
	"htmlreporter/internal/collector"
	"htmlreporter/internal/config"
	"htmlreporter/internal/domain"
	"htmlreporter/internal/runner"
	"htmlreporter/internal/suite"
)

type (
	// Config holds the report settings
	Config = config.Config
	// Class groups tests in the report
	Class = domain.Class
	// T is handed to every test function
	T = suite.T
	// Func is a test function
	Func = suite.Func
	// Result holds the counts and outcomes of a run
	Result = collector.Result
	// Outcome is the recorded result of one test
	Outcome = domain.TestOutcome
	// Status is the outcome class of a test
	Status = domain.Status
)

const (
	StatusPass  = domain.StatusPass
	StatusFail  = domain.StatusFail
	StatusError = domain.StatusError
	StatusSkip  = domain.StatusSkip
)

var (
	// Stdout writes to the captured standard output of the running test
	Stdout io.Writer = capture.StdoutRedirector
	// Stderr writes to the captured standard error of the running test
	Stderr io.Writer = capture.StderrRedirector
)

// NewConfig returns the default settings
func NewConfig() *Config {
	return config.New()
}

// Runner runs registered test functions and writes their report
type Runner struct {
	config  *Config
	streams *capture.Streams
	suite   *suite.Suite
	run     *runner.Runner
}

// New creates a Runner. A nil cfg uses the defaults. The run's start time
// is taken here.
func New(cfg *Config) *Runner {
	if cfg == nil {
		cfg = NewConfig()
	}
	return &Runner{
		config:  cfg,
		streams: capture.Std,
		suite:   suite.New(capture.Std),
		run:     runner.New(cfg),
	}
}

// WithOutput sends the process-visible output of the run, progress and
// everything written outside a test, to out and errOut instead of the
// process streams. It must be called before Add.
func (r *Runner) WithOutput(out, errOut io.Writer) *Runner {
	r.streams = capture.NewStreams(out, errOut)
	r.suite = suite.New(r.streams)
	r.run.WithStreams(r.streams)
	return r
}

// Add registers fn as method of class. The first line of doc is the test's
// short description.
func (r *Runner) Add(class Class, method, doc string, fn Func) *Runner {
	r.suite.Add(class, method, doc, fn)
	return r
}

// Run runs the tests one after another and writes the report. Tests whose
// id does not match the config's filter are left out.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	s := r.suite
	if pattern := r.config.Flags.Filter; pattern != "" {
		s = s.Filter(pattern)
	}
	return r.run.Run(ctx, s)
}

// ReportPath returns the path of the written report
func (r *Runner) ReportPath() string {
	return r.run.ReportPath()
}
