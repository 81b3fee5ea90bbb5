package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"htmlreporter/internal/capture"
	"htmlreporter/internal/collector"
	"htmlreporter/internal/config"
	"htmlreporter/internal/domain"
	"htmlreporter/internal/render"
	"htmlreporter/internal/suite"
)

var classA = domain.Class{Module: domain.DefaultMainModule, Name: "A", Doc: "Doc A"}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

type hostFunc func(ctx context.Context, r *collector.Result) error

func (f hostFunc) Run(ctx context.Context, r *collector.Result) error {
	return f(ctx, r)
}

type fixture struct {
	cfg     *config.Config
	streams *capture.Streams
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
	clock   *fakeClock
}

func newFixture(t *testing.T) *fixture {
	dir := t.TempDir()
	cfg := config.New()
	cfg.ReportPath = filepath.Join(dir, "out", "report.html")
	cfg.ReportJSONPath = filepath.Join(dir, "out", "report.json")

	f := &fixture{
		cfg:    cfg,
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		clock:  &fakeClock{now: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)},
	}
	f.streams = capture.NewStreams(f.stdout, f.stderr)
	return f
}

func (f *fixture) runner() *Runner {
	return New(f.cfg).WithStreams(f.streams).WithClock(f.clock.Now)
}

func (f *fixture) suite() *suite.Suite {
	return suite.New(f.streams).
		Add(classA, "test_pass", "", func(t *suite.T) { t.Log("hello") }).
		Add(classA, "test_fail", "", func(t *suite.T) {
			t.Error("broken")
			f.clock.now = f.clock.now.Add(2 * time.Second)
		})
}

func TestRunner_WritesReports(t *testing.T) {
	f := newFixture(t)
	r := f.runner()

	result, err := r.Run(context.Background(), f.suite())
	require.NoError(t, err)
	assert.Equal(t, domain.RunCounts{Pass: 1, Fail: 1}, result.Counts())

	html, err := os.ReadFile(f.cfg.ReportPath)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Unit Test Report")
	assert.Contains(t, string(html), "pt1.1")
	assert.Contains(t, string(html), "ft1.2")
	assert.Equal(t, f.cfg.GetReportPath(), r.ReportPath())

	raw, err := os.ReadFile(f.cfg.ReportJSONPath)
	require.NoError(t, err)
	var data render.Data
	require.NoError(t, json.Unmarshal(raw, &data))
	require.Len(t, data.Groups, 1)
	assert.Equal(t, "A: Doc A", data.Groups[0].Desc)
	assert.Equal(t, 2, data.Groups[0].Total())
	_, err = uuid.Parse(data.RunID)
	assert.NoError(t, err)
	assert.Equal(t, r.Data().RunID, data.RunID)

	assert.Contains(t, f.stderr.String(), "\nTime Elapsed: 2s\n")
	assert.NotContains(t, f.stdout.String(), "hello")
}

func TestRunner_EmptyRun(t *testing.T) {
	f := newFixture(t)
	f.cfg.ReportJSONPath = ""

	result, err := f.runner().Run(context.Background(), suite.New(f.streams))
	require.NoError(t, err)
	assert.True(t, result.WasSuccessful())

	html, err := os.ReadFile(f.cfg.ReportPath)
	require.NoError(t, err)
	assert.Contains(t, string(html), "none")
	assert.NoFileExists(t, filepath.Join(filepath.Dir(f.cfg.ReportPath), "report.json"))
}

func TestRunner_OpensBrowser(t *testing.T) {
	f := newFixture(t)
	f.cfg.OpenInBrowser = true

	var opened string
	r := f.runner().WithBrowser(func(url string) error {
		opened = url
		return errors.New("no browser")
	})

	_, err := r.Run(context.Background(), f.suite())
	require.NoError(t, err)
	assert.Equal(t, "file://"+f.cfg.GetReportPath(), opened)
	assert.True(t, strings.HasSuffix(f.stderr.String(), "\nTime Elapsed: 2s\nOpening file in browser...\n"))
	assert.Empty(t, f.stdout.String())
}

func TestRunner_HostErrorStillWritesReport(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("host broke")

	host := hostFunc(func(ctx context.Context, r *collector.Result) error {
		tc := domain.Case{Method: "test_one", Owner: classA}
		r.StartTest(tc)
		r.AddSuccess(tc)
		r.StopTest(tc)
		return boom
	})

	result, err := f.runner().Run(context.Background(), host)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, result.Counts().Pass)
	assert.FileExists(t, f.cfg.ReportPath)
}

func TestRunner_TemplateError(t *testing.T) {
	f := newFixture(t)
	tmpl := filepath.Join(t.TempDir(), "bad.html.tmpl")
	require.NoError(t, os.WriteFile(tmpl, []byte("{{ .Title "), 0644))
	f.cfg.TemplatePath = tmpl

	_, err := f.runner().Run(context.Background(), f.suite())
	assert.ErrorIs(t, err, render.ErrTemplate)
	assert.NotContains(t, f.stderr.String(), "Time Elapsed")
	assert.NoFileExists(t, f.cfg.ReportPath)
}

func TestRunner_Progress(t *testing.T) {
	f := newFixture(t)
	f.cfg.Flags.Progress = true

	_, err := f.runner().Run(context.Background(), f.suite())
	require.NoError(t, err)
	assert.Contains(t, f.stderr.String(), "Running tests")
}

func TestRunner_Echo(t *testing.T) {
	f := newFixture(t)

	_, err := f.runner().WithEcho(collector.Silent()).Run(context.Background(), f.suite())
	require.NoError(t, err)
	assert.Equal(t, "\nTime Elapsed: 2s\n", f.stderr.String())
}
