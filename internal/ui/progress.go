package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"htmlreporter/internal/domain"
)

// ProgressBar reports run progress as a bar. It is a collector.Echo for
// hosts that know their test count up front.
type ProgressBar struct {
	bar    *progressbar.ProgressBar
	counts domain.RunCounts
}

// NewProgressBar creates a new progress bar for count tests writing to w
func NewProgressBar(count int, w io.Writer) *ProgressBar {
	bar := progressbar.NewOptions(count,
		progressbar.OptionSetDescription(describe(domain.RunCounts{})),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(w),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(w, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)

	return &ProgressBar{bar: bar}
}

func describe(c domain.RunCounts) string {
	return color.CyanString("Running tests: ") +
		color.GreenString("[success: %d", c.Pass) +
		" | " +
		color.RedString("failed: %d", c.Fail+c.Error) +
		" | " +
		color.YellowString("skipped: %d]", c.Skip)
}

// Start is a no-op; the bar moves when a test completes
func (p *ProgressBar) Start(description string) {}

// Done advances the bar and updates the counts
func (p *ProgressBar) Done(status domain.Status, reason string) {
	p.counts.Add(status)
	p.bar.Describe(describe(p.counts))
	_ = p.bar.Add(1)
}

// Counts returns what the bar has seen so far
func (p *ProgressBar) Counts() domain.RunCounts {
	return p.counts
}

// Finish completes the progress bar
func (p *ProgressBar) Finish() {
	_ = p.bar.Finish()
}
