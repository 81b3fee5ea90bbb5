// Package suite is an in-process test host. Test functions are registered
// under a class and run one after another, reporting every lifecycle event
// to a collector.
package suite

import (
	"context"
	"fmt"
	"runtime/debug"

	"htmlreporter/internal/capture"
	"htmlreporter/internal/collector"
	"htmlreporter/internal/discovery"
	"htmlreporter/internal/domain"
)

// Func is a suite test body
type Func func(t *T)

type entry struct {
	tc domain.Case
	fn Func
}

// Suite is an ordered list of tests
type Suite struct {
	streams *capture.Streams
	tests   []entry
}

// New creates an empty Suite whose tests write to streams (capture.Std when
// nil). It must be the Streams the collector swaps.
func New(streams *capture.Streams) *Suite {
	if streams == nil {
		streams = capture.Std
	}
	return &Suite{streams: streams}
}

// Add registers fn as method of class. doc is the test's doc string; its
// first line becomes the short description.
func (s *Suite) Add(class domain.Class, method, doc string, fn Func) *Suite {
	s.tests = append(s.tests, entry{
		tc: domain.Case{Method: method, Doc: doc, Owner: class},
		fn: fn,
	})
	return s
}

// Filter returns a Suite holding only the tests whose id matches pattern
func (s *Suite) Filter(pattern string) *Suite {
	filter := discovery.NewFilter()
	out := &Suite{streams: s.streams}
	for _, e := range s.tests {
		if filter.Match(e.tc.ID(), pattern) {
			out.tests = append(out.tests, e)
		}
	}
	return out
}

// Count returns the number of registered tests
func (s *Suite) Count() int {
	return len(s.tests)
}

// Cases returns the registered test cases in order
func (s *Suite) Cases() []domain.Case {
	cases := make([]domain.Case, len(s.tests))
	for i, e := range s.tests {
		cases[i] = e.tc
	}
	return cases
}

// Run executes the tests serially. It stops early when the context is
// cancelled or the collector asks to stop.
func (s *Suite) Run(ctx context.Context, r *collector.Result) error {
	for _, e := range s.tests {
		if err := ctx.Err(); err != nil {
			return err
		}
		if r.ShouldStop() {
			return nil
		}
		s.runOne(r, e)
	}
	return nil
}

type finish struct {
	panicked bool
	detail   string
}

func (s *Suite) runOne(r *collector.Result, e entry) {
	r.StartTest(e.tc)
	defer r.StopTest(e.tc)

	t := newT(s.streams)
	done := make(chan finish, 1)
	go func() {
		var f finish
		// runs on return, panic and runtime.Goexit alike
		defer func() {
			if rec := recover(); rec != nil {
				f.panicked = true
				f.detail = fmt.Sprintf("panic: %v\n\n%s", rec, debug.Stack())
			}
			done <- f
		}()
		e.fn(t)
	}()
	f := <-done

	switch {
	case f.panicked:
		r.AddError(e.tc, f.detail)
	case t.Failed():
		r.AddFailure(e.tc, t.detail(e.tc.ID()))
	case t.skipped:
		r.AddSkip(e.tc, t.reason)
	default:
		r.AddSuccess(e.tc)
	}
}
