package collector

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"htmlreporter/internal/domain"
)

// Echo reports progress while the run is going
type Echo interface {
	// Start is called before a test's output is redirected
	Start(description string)
	// Done is called after a test's output has been restored
	Done(status domain.Status, reason string)
}

// TextEcho writes progress to the real error stream: one status character
// per test, or a full line per test when verbose.
type TextEcho struct {
	out     func() io.Writer
	verbose bool
}

// NewTextEcho creates a TextEcho. out is resolved on every write so the
// caller can hand in the real stream of a Streams.
func NewTextEcho(out func() io.Writer, verbose bool) *TextEcho {
	return &TextEcho{out: out, verbose: verbose}
}

// Start prints the test description in verbose mode
func (e *TextEcho) Start(description string) {
	if !e.verbose {
		return
	}
	fmt.Fprintf(e.out(), "%s ... ", description)
}

// Done prints the status line or character
func (e *TextEcho) Done(status domain.Status, reason string) {
	w := e.out()
	if e.verbose {
		switch status {
		case domain.StatusPass:
			color.New(color.FgGreen).Fprintln(w, "ok")
		case domain.StatusFail:
			color.New(color.FgRed).Fprintln(w, "FAIL")
		case domain.StatusError:
			color.New(color.FgRed, color.Bold).Fprintln(w, "ERROR")
		case domain.StatusSkip:
			color.New(color.FgYellow).Fprintf(w, "skipped %q\n", reason)
		}
		return
	}

	switch status {
	case domain.StatusPass:
		color.New(color.FgGreen).Fprint(w, ".")
	case domain.StatusFail:
		color.New(color.FgRed).Fprint(w, "F")
	case domain.StatusError:
		color.New(color.FgRed, color.Bold).Fprint(w, "E")
	case domain.StatusSkip:
		color.New(color.FgYellow).Fprint(w, "S")
	}
}

type silentEcho struct{}

func (silentEcho) Start(string)                {}
func (silentEcho) Done(domain.Status, string) {}

// Silent returns an Echo that prints nothing
func Silent() Echo {
	return silentEcho{}
}
