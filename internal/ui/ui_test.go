package ui

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"htmlreporter/internal/config"
	"htmlreporter/internal/discovery"
	"htmlreporter/internal/domain"
	"htmlreporter/internal/report"
)

func init() {
	color.NoColor = true
}

func strptr(s string) *string {
	return &s
}

func sampleGroups() []report.GroupReport {
	return []report.GroupReport{
		{
			ID: "c1", Desc: "example.com/calc", Pass: 1, Fail: 1,
			Cases: []report.CaseReport{
				{ID: "pt1.1", Desc: "TestAdd", Status: domain.StatusPass, Duration: 0.5},
				{ID: "ft1.2", Desc: "TestSub", Status: domain.StatusFail, Detail: strptr("ft1.2: want [1]"), Duration: 0.25},
			},
		},
		{
			ID: "c2", Desc: "example.com/calc/big", Error: 1, Skip: 1,
			Cases: []report.CaseReport{
				{ID: "et2.1", Desc: "TestMul", Status: domain.StatusError, Detail: strptr("et2.1: panic")},
				{ID: "st2.2", Desc: "TestDiv", Status: domain.StatusSkip, Detail: strptr("st2.2: later")},
			},
		},
	}
}

func TestFailures(t *testing.T) {
	failures := Failures(sampleGroups())
	require.Len(t, failures, 2)
	assert.Equal(t, "example.com/calc", failures[0].Group)
	assert.Equal(t, "ft1.2", failures[0].Case.ID)
	assert.Equal(t, "et2.1", failures[1].Case.ID)

	assert.Empty(t, Failures(nil))
}

func TestFormatter_PrintSummary(t *testing.T) {
	var out bytes.Buffer
	f := NewFormatter(config.New(), discovery.NewParser(), &out)

	counts := domain.RunCounts{Pass: 1, Fail: 1, Error: 1, Skip: 1}
	start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	f.PrintSummary(report.Summarize(counts, start, start.Add(2*time.Second)), sampleGroups())

	s := out.String()
	assert.Contains(t, s, "Unit Test Report")
	assert.Contains(t, s, "TOTAL")
	assert.Contains(t, s, "25.0%")
	assert.Contains(t, s, "0.75s")
	assert.Contains(t, s, "✗ 1 test(s) failed, 1 error(s)")
	assert.Contains(t, s, "└── big")
	assert.Contains(t, s, "ft1.2 TestSub")
	assert.Contains(t, s, "et2.1 TestMul")
	assert.NotContains(t, s, "st2.2 TestDiv")
}

func TestFormatter_PrintSummaryPassed(t *testing.T) {
	var out bytes.Buffer
	f := NewFormatter(config.New(), discovery.NewParser(), &out)

	f.PrintSummary(report.Summarize(domain.RunCounts{Pass: 2}, time.Time{}, time.Time{}), nil)
	assert.Contains(t, out.String(), "✓ All tests passed!")

	out.Reset()
	f.PrintSummary(report.Summarize(domain.RunCounts{}, time.Time{}, time.Time{}), nil)
	assert.Contains(t, out.String(), "No tests were run")
}

func TestFormatter_PrintPackageList(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "pay"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "pay", "pay_test.go"),
		[]byte("package pay\n\nimport \"testing\"\n\nfunc TestCharge(t *testing.T) {}\n"), 0644))

	cfg := config.New()
	cfg.TestPath = root

	var out bytes.Buffer
	f := NewFormatter(cfg, discovery.NewParser(), &out)

	require.NoError(t, f.PrintPackageList([]string{"./pay"}, false))
	assert.Equal(t, "Found 1 package(s) with tests:\n\n└── ./pay\n", out.String())

	out.Reset()
	require.NoError(t, f.PrintPackageList([]string{"./pay"}, true))
	assert.Contains(t, out.String(), "    └── TestCharge")

	n, err := f.CountTestCases([]string{"./pay"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestProgressBar(t *testing.T) {
	var out bytes.Buffer
	bar := NewProgressBar(3, &out)

	bar.Start("main.A.test_a")
	bar.Done(domain.StatusPass, "")
	bar.Done(domain.StatusFail, "")
	bar.Done(domain.StatusSkip, "later")
	bar.Finish()

	assert.Equal(t, domain.RunCounts{Pass: 1, Fail: 1, Skip: 1}, bar.Counts())
	assert.Contains(t, out.String(), "Running tests")
}

func TestFormatFailureDetails(t *testing.T) {
	f := Failure{
		Group: "example.com/calc",
		Case:  report.CaseReport{ID: "ft1.2", Desc: "TestSub", Status: domain.StatusFail, Detail: strptr("ft1.2: want [1]"), Duration: 0.25},
	}

	details := formatFailureDetails(f)
	assert.True(t, strings.HasPrefix(details, "[red]✗ FAIL: TestSub"))
	assert.Contains(t, details, "Duration: 0.250s")
	// brackets in captured text are escaped for tview
	assert.Contains(t, details, "want [1[]")

	assert.Contains(t, formatFailureStats(f), "ft1.2")
}

func TestErrorViewer_NoFailures(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, NewErrorViewer(&out).View(nil))
	assert.Equal(t, "✓ No test failures found!\n", out.String())
}
