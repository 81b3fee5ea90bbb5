package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrMalformedEvent is returned for lines that are not test2json events
var ErrMalformedEvent = errors.New("malformed test2json event")

// Actions emitted by test2json
const (
	ActionStart       = "start"
	ActionRun         = "run"
	ActionPause       = "pause"
	ActionCont        = "cont"
	ActionPass        = "pass"
	ActionFail        = "fail"
	ActionSkip        = "skip"
	ActionOutput      = "output"
	ActionBench       = "bench"
	ActionBuildOutput = "build-output"
	ActionBuildFail   = "build-fail"
)

// Event is one line of `go test -json` output
type Event struct {
	Time        time.Time `json:"Time"`
	Action      string    `json:"Action"`
	Package     string    `json:"Package"`
	Test        string    `json:"Test"`
	Elapsed     float64   `json:"Elapsed"` // seconds
	Output      string    `json:"Output"`
	ImportPath  string    `json:"ImportPath"`
	FailedBuild string    `json:"FailedBuild"`
}

// ParseEvent decodes a single test2json line
func ParseEvent(line []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(line, &e); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if e.Action == "" {
		return Event{}, fmt.Errorf("%w: no action", ErrMalformedEvent)
	}
	return e, nil
}

// TopLevel returns the top-level test of a possibly nested test name
func (e Event) TopLevel() string {
	if i := strings.IndexByte(e.Test, '/'); i >= 0 {
		return e.Test[:i]
	}
	return e.Test
}

// IsSubtest reports whether the event belongs to a subtest
func (e Event) IsSubtest() bool {
	return strings.IndexByte(e.Test, '/') >= 0
}

// Duration returns Elapsed as a time.Duration
func (e Event) Duration() time.Duration {
	return time.Duration(e.Elapsed * float64(time.Second))
}
