// Package runner runs a host against a result collector and turns the
// collected outcomes into the HTML report.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/browser"
	"github.com/sirupsen/logrus"

	"htmlreporter/internal/capture"
	"htmlreporter/internal/collector"
	"htmlreporter/internal/config"
	"htmlreporter/internal/render"
	"htmlreporter/internal/report"
	"htmlreporter/internal/storage"
	"htmlreporter/internal/ui"
)

// Host is anything that drives the collector's lifecycle callbacks
type Host interface {
	Run(ctx context.Context, r *collector.Result) error
}

// Counter is implemented by hosts that know how many tests they will run
type Counter interface {
	Count() int
}

// Runner times a run and writes its report
type Runner struct {
	config  *config.Config
	streams *capture.Streams
	storage storage.Storage
	echo    collector.Echo
	now     func() time.Time
	open    func(url string) error

	startTime  time.Time
	stopTime   time.Time
	data       render.Data
	reportPath string
}

// New creates a Runner. The start time is taken here, so setup done
// between New and Run counts towards the elapsed time.
func New(cfg *config.Config) *Runner {
	r := &Runner{
		config:  cfg,
		streams: capture.Std,
		storage: storage.NewFileStorage(cfg),
		now:     time.Now,
		open:    browser.OpenURL,
	}
	r.startTime = r.now()
	return r
}

// WithStreams sets the Streams swapped while tests run
func (r *Runner) WithStreams(s *capture.Streams) *Runner {
	r.streams = s
	return r
}

// WithStorage replaces the report storage
func (r *Runner) WithStorage(s storage.Storage) *Runner {
	r.storage = s
	return r
}

// WithEcho replaces the progress echo
func (r *Runner) WithEcho(e collector.Echo) *Runner {
	r.echo = e
	return r
}

// WithClock replaces time.Now and restarts the clock
func (r *Runner) WithClock(now func() time.Time) *Runner {
	r.now = now
	r.startTime = now()
	return r
}

// WithBrowser replaces the function that opens the report
func (r *Runner) WithBrowser(open func(url string) error) *Runner {
	r.open = open
	return r
}

// Run runs host, then writes the report for whatever was collected. Report
// errors are returned first; a host error is returned after the report is
// written.
func (r *Runner) Run(ctx context.Context, host Host) (*collector.Result, error) {
	opts := collector.Options{
		Verbosity:    r.config.Verbosity,
		Descriptions: r.config.Descriptions,
		CaptureOS:    r.config.CaptureOS,
		FailFast:     r.config.FailFast,
		Streams:      r.streams,
		Echo:         r.echo,
		Now:          r.now,
	}
	var bar *ui.ProgressBar
	if opts.Echo == nil && r.config.Flags.Progress {
		if c, ok := host.(Counter); ok && c.Count() > 0 {
			bar = ui.NewProgressBar(c.Count(), r.streams.RealStderr())
			opts.Echo = bar
		}
	}

	result := collector.New(opts)
	hostErr := host.Run(ctx, result)
	if bar != nil {
		bar.Finish()
	}
	r.stopTime = r.now()

	if err := r.generateReport(result); err != nil {
		return result, err
	}
	fmt.Fprintf(r.streams.RealStderr(), "\nTime Elapsed: %s\n", r.stopTime.Sub(r.startTime))

	if r.config.OpenInBrowser {
		fmt.Fprintln(r.streams.RealStderr(), "Opening file in browser...")
		if err := r.open("file://" + r.reportPath); err != nil {
			logrus.WithError(err).WithField("File", r.reportPath).Warn("Failed to open report in browser")
		}
	}
	return result, hostErr
}

func (r *Runner) generateReport(result *collector.Result) error {
	groups := report.Build(result.Outcomes(), r.config.MainModule)
	r.data = render.Data{
		Title:       r.config.Title,
		Description: r.config.Description,
		RunID:       uuid.NewString(),
		Result:      result.Counts(),
		StartTime:   r.startTime,
		StopTime:    r.stopTime,
		Summary:     report.Summarize(result.Counts(), r.startTime, r.stopTime),
		Groups:      groups,
	}

	html, err := render.RenderHTML(r.config.TemplatePath, r.data)
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}
	path, err := r.storage.SaveHTML(html)
	if err != nil {
		return err
	}
	r.reportPath = path
	logrus.WithField("File", path).Debug("Report written")

	if r.config.ReportJSONPath == "" {
		return nil
	}
	js, err := render.RenderJSON(r.data)
	if err != nil {
		return err
	}
	jsonPath, err := r.storage.SaveJSON(js)
	if err != nil {
		return err
	}
	logrus.WithField("File", jsonPath).Debug("JSON report written")
	return nil
}

// Data returns the data the last report was rendered from
func (r *Runner) Data() render.Data {
	return r.data
}

// ReportPath returns where the last HTML report was written
func (r *Runner) ReportPath() string {
	return r.reportPath
}

// StartTime returns when the Runner was created
func (r *Runner) StartTime() time.Time {
	return r.startTime
}
