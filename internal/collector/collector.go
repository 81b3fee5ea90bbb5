// Package collector records the outcome of every test a host framework runs.
package collector

import (
	"time"

	"github.com/sirupsen/logrus"

	"htmlreporter/internal/capture"
	"htmlreporter/internal/domain"
)

// Options configures a Result
type Options struct {
	// Verbosity 0 prints nothing, 1 one character per test and above 1 one
	// line per test
	Verbosity int
	// Descriptions appends a test's short description to the verbose line
	Descriptions bool
	// CaptureOS also captures writes to os.Stdout and os.Stderr
	CaptureOS bool
	// FailFast requests a stop after the first failure or error
	FailFast bool
	// Streams defaults to capture.Std
	Streams *capture.Streams
	// Echo defaults to a TextEcho on the real error stream
	Echo Echo
	// Now defaults to time.Now
	Now func() time.Time
}

// Result receives lifecycle callbacks from a host framework and keeps the
// outcome of each test in completion order.
type Result struct {
	streams      *capture.Streams
	echo         Echo
	now          func() time.Time
	descriptions bool
	captureOS    bool
	failFast     bool

	buffer  *capture.Buffer
	osCap   *capture.OSCapture
	started time.Time
	elapsed time.Duration

	testsRun   int
	counts     domain.RunCounts
	outcomes   []domain.TestOutcome
	shouldStop bool
}

// New creates a Result
func New(opts Options) *Result {
	r := &Result{
		streams:      opts.Streams,
		echo:         opts.Echo,
		now:          opts.Now,
		descriptions: opts.Descriptions,
		captureOS:    opts.CaptureOS,
		failFast:     opts.FailFast,
	}
	if r.streams == nil {
		r.streams = capture.Std
	}
	if r.now == nil {
		r.now = time.Now
	}
	if r.echo == nil {
		if opts.Verbosity <= 0 {
			r.echo = Silent()
		} else {
			r.echo = NewTextEcho(r.streams.RealStderr, opts.Verbosity > 1)
		}
	}
	return r
}

func (r *Result) description(tc domain.TestCase) string {
	if doc := tc.ShortDescription(); r.descriptions && doc != "" {
		return tc.ID() + "\n" + doc
	}
	return tc.ID()
}

// StartTest is called when tc is about to run
func (r *Result) StartTest(tc domain.TestCase) {
	r.testsRun++
	r.echo.Start(r.description(tc))

	// one buffer for both streams
	r.buffer = capture.NewBuffer()
	capture.StdoutRedirector.Bind(r.buffer)
	capture.StderrRedirector.Bind(r.buffer)
	r.streams.Swap(capture.StdoutRedirector, capture.StderrRedirector)

	if r.captureOS {
		c, err := capture.StartOSCapture(capture.StdoutRedirector, capture.StderrRedirector)
		if err != nil {
			logrus.WithError(err).WithField("Test", tc.ID()).Warn("OS stream capture unavailable")
		}
		r.osCap = c
	}
	r.started = r.now()
}

// completeOutput disconnects redirection and returns the captured text.
// Safe to call multiple times.
func (r *Result) completeOutput() string {
	if r.osCap != nil {
		r.osCap.Restore()
		r.osCap = nil
	}
	if r.streams.Restore() {
		capture.StdoutRedirector.Unbind()
		capture.StderrRedirector.Unbind()
	}
	if r.buffer == nil {
		return ""
	}
	return r.buffer.String()
}

// StopTest is called after tc has run, whatever its outcome. The host may
// reach it without a completion callback, so redirection is torn down here
// as well.
func (r *Result) StopTest(tc domain.TestCase) {
	r.completeOutput()
}

// AddSuccess records a passing test
func (r *Result) AddSuccess(tc domain.TestCase) {
	r.record(domain.StatusPass, tc, "")
}

// AddFailure records a test whose assertions failed
func (r *Result) AddFailure(tc domain.TestCase, detail string) {
	r.record(domain.StatusFail, tc, detail)
}

// AddError records a test that broke with an unexpected error
func (r *Result) AddError(tc domain.TestCase, detail string) {
	r.record(domain.StatusError, tc, detail)
}

// AddSkip records a skipped test
func (r *Result) AddSkip(tc domain.TestCase, reason string) {
	r.record(domain.StatusSkip, tc, reason)
}

func (r *Result) record(status domain.Status, tc domain.TestCase, detail string) {
	r.counts.Add(status)
	output := r.completeOutput()

	duration := r.elapsed
	if duration == 0 && !r.started.IsZero() {
		duration = r.now().Sub(r.started)
	}
	r.started = time.Time{}
	r.elapsed = 0

	r.outcomes = append(r.outcomes, domain.TestOutcome{
		Status:   status,
		Test:     tc,
		Output:   output,
		Detail:   detail,
		Duration: duration,
	})
	r.buffer = nil

	if r.failFast && (status == domain.StatusFail || status == domain.StatusError) {
		r.shouldStop = true
	}
	r.echo.Done(status, detail)
}

// SetElapsed records a duration measured by the host for the running test,
// replacing the collector's own wall-clock measurement
func (r *Result) SetElapsed(d time.Duration) {
	r.elapsed = d
}

// Counts returns the per-status totals
func (r *Result) Counts() domain.RunCounts {
	return r.counts
}

// Outcomes returns a copy of the recorded outcomes in completion order
func (r *Result) Outcomes() []domain.TestOutcome {
	out := make([]domain.TestOutcome, len(r.outcomes))
	copy(out, r.outcomes)
	return out
}

// TestsRun returns the number of StartTest calls
func (r *Result) TestsRun() int {
	return r.testsRun
}

// WasSuccessful reports whether no test failed or errored
func (r *Result) WasSuccessful() bool {
	return r.counts.Fail == 0 && r.counts.Error == 0
}

// Stop asks the host to stop after the current test
func (r *Result) Stop() {
	r.shouldStop = true
}

// ShouldStop reports whether the host should stop running tests
func (r *Result) ShouldStop() bool {
	return r.shouldStop
}
