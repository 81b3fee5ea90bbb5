package parser

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"htmlreporter/internal/capture"
	"htmlreporter/internal/collector"
	"htmlreporter/internal/domain"
)

// PackageTest is the method name of the synthetic case recorded when a
// package fails without any of its tests failing (build errors, TestMain
// exits, timeouts)
const PackageTest = "(package)"

const maxLineSize = 16 * 1024 * 1024

type pendingTest struct {
	name  string
	lines []string
}

type packageState struct {
	tests      map[string]*pendingTest
	finished   map[string]bool
	order      []string
	output     []string
	testFailed bool
}

// Replay is a host that feeds a test2json stream to a collector. Output is
// buffered per top-level test and the lifecycle callbacks are made once the
// test's terminal event arrives, so parallel tests never interleave.
// Subtests are folded into their top-level test.
type Replay struct {
	r       io.Reader
	streams *capture.Streams
	parser  Parser

	packages map[string]*packageState
	builds   map[string][]string
	order    []string
	events   int
	skipped  int
}

// NewReplay creates a Replay reading events from r. streams must be the
// Streams the collector swaps (capture.Std when nil).
func NewReplay(r io.Reader, streams *capture.Streams) *Replay {
	if streams == nil {
		streams = capture.Std
	}
	return &Replay{
		r:        r,
		streams:  streams,
		parser:   NewGoTestParser(),
		packages: make(map[string]*packageState),
		builds:   make(map[string][]string),
	}
}

// Events returns the number of events decoded so far
func (p *Replay) Events() int {
	return p.events
}

// Malformed returns the number of lines skipped because they were not events
func (p *Replay) Malformed() int {
	return p.skipped
}

// Run reads the stream to the end, replaying every finished test into r.
// Tests still running when the stream ends are recorded as errors.
func (p *Replay) Run(ctx context.Context, r *collector.Result) error {
	scanner := bufio.NewScanner(p.r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		e, err := ParseEvent(line)
		if err != nil {
			if errors.Is(err, ErrMalformedEvent) {
				p.skipped++
				logrus.WithError(err).WithField("Line", string(line)).Debug("Skipping line")
				continue
			}
			return err
		}
		p.events++
		p.handle(e, r)

		if r.ShouldStop() {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read test events: %w", err)
	}

	for _, pkg := range append([]string(nil), p.order...) {
		p.finishPackage(pkg, nil, r)
		if r.ShouldStop() {
			break
		}
	}
	return nil
}

func (p *Replay) pkg(name string) *packageState {
	st, ok := p.packages[name]
	if !ok {
		st = &packageState{
			tests:    make(map[string]*pendingTest),
			finished: make(map[string]bool),
		}
		p.packages[name] = st
		p.order = append(p.order, name)
	}
	return st
}

func (p *Replay) test(st *packageState, name string) *pendingTest {
	t, ok := st.tests[name]
	if !ok {
		t = &pendingTest{name: name}
		st.tests[name] = t
		st.order = append(st.order, name)
	}
	return t
}

func (p *Replay) handle(e Event, r *collector.Result) {
	switch e.Action {
	case ActionBuildOutput:
		p.builds[e.ImportPath] = append(p.builds[e.ImportPath], e.Output)
		return
	case ActionBuildFail, ActionBench, ActionPause, ActionCont:
		return
	}
	if e.Package == "" {
		return
	}

	st := p.pkg(e.Package)
	if e.Test == "" {
		switch e.Action {
		case ActionOutput:
			st.output = append(st.output, e.Output)
		case ActionPass, ActionFail, ActionSkip:
			p.finishPackage(e.Package, &e, r)
		}
		return
	}

	if st.finished[e.TopLevel()] {
		if e.Action == ActionOutput {
			st.output = append(st.output, e.Output)
		}
		return
	}

	t := p.test(st, e.TopLevel())
	switch e.Action {
	case ActionOutput:
		t.lines = append(t.lines, e.Output)
	case ActionPass, ActionFail, ActionSkip:
		if e.IsSubtest() {
			return
		}
		p.finishTest(e.Package, st, t, e, r)
	}
}

func (p *Replay) finishTest(pkg string, st *packageState, t *pendingTest, e Event, r *collector.Result) {
	delete(st.tests, t.name)
	st.finished[t.name] = true
	parsed := p.parser.ParseResult(e.Action, t.lines)
	if parsed.Status == domain.StatusFail || parsed.Status == domain.StatusError {
		st.testFailed = true
	}
	p.replay(caseFor(pkg, t.name), parsed, e.Duration(), r)
}

// finishPackage records unfinished tests and, when the package failed with
// no failing test, a synthetic package case. e is the package's terminal
// event, or nil when the stream ended first.
func (p *Replay) finishPackage(pkg string, e *Event, r *collector.Result) {
	st, ok := p.packages[pkg]
	if !ok {
		return
	}

	for _, name := range st.order {
		t, ok := st.tests[name]
		if !ok {
			continue
		}
		delete(st.tests, name)
		st.testFailed = true
		parsed := p.parser.ParseResult(ActionFail, t.lines)
		parsed.Status = domain.StatusError
		parsed.Detail += "test did not finish\n"
		p.replay(caseFor(pkg, name), parsed, 0, r)
	}

	if e != nil && e.Action == ActionFail && !st.testFailed {
		build := p.builds[pkg]
		if e.FailedBuild != "" {
			build = append(build, p.builds[e.FailedBuild]...)
		}
		detail := joinRaw(build) + joinRaw(st.output)
		p.replay(caseFor(pkg, PackageTest), Parsed{Status: domain.StatusError, Detail: detail}, e.Duration(), r)
	}

	delete(p.packages, pkg)
	for i, name := range p.order {
		if name == pkg {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}

// replay drives the collector through one test's lifecycle. The captured
// output is written through the swapped stdout so it lands in the
// collector's buffer.
func (p *Replay) replay(tc domain.Case, parsed Parsed, elapsed time.Duration, r *collector.Result) {
	r.StartTest(tc)
	defer r.StopTest(tc)

	if parsed.Output != "" {
		io.WriteString(p.streams.Stdout(), parsed.Output)
	}
	r.SetElapsed(elapsed)

	switch parsed.Status {
	case domain.StatusPass:
		r.AddSuccess(tc)
	case domain.StatusFail:
		r.AddFailure(tc, parsed.Detail)
	case domain.StatusError:
		r.AddError(tc, parsed.Detail)
	case domain.StatusSkip:
		r.AddSkip(tc, parsed.Detail)
	}
}

// caseFor identifies a Go test: the package is the class, the top-level
// test function the method
func caseFor(pkg, test string) domain.Case {
	return domain.Case{Method: test, Owner: domain.Class{Name: pkg}}
}

func joinRaw(chunks []string) string {
	var b strings.Builder
	for _, c := range chunks {
		b.WriteString(c)
	}
	return b.String()
}
