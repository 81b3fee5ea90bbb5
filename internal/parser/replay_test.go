package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"htmlreporter/internal/capture"
	"htmlreporter/internal/collector"
	"htmlreporter/internal/domain"
)

const pkgCalc = "example.com/calc"

// stream builds a test2json stream, one event per line
type stream struct {
	lines []string
}

func (s *stream) add(e Event) *stream {
	b, err := json.Marshal(e)
	if err != nil {
		panic(err)
	}
	s.lines = append(s.lines, string(b))
	return s
}

func (s *stream) raw(line string) *stream {
	s.lines = append(s.lines, line)
	return s
}

func (s *stream) out(test, output string) *stream {
	return s.add(Event{Action: ActionOutput, Package: pkgCalc, Test: test, Output: output})
}

func (s *stream) action(action, test string, elapsed float64) *stream {
	return s.add(Event{Action: action, Package: pkgCalc, Test: test, Elapsed: elapsed})
}

func (s *stream) String() string {
	return strings.Join(s.lines, "\n") + "\n"
}

func replay(t *testing.T, s *stream, opts collector.Options) (*collector.Result, *Replay) {
	t.Helper()
	streams := capture.NewStreams(&bytes.Buffer{}, &bytes.Buffer{})
	opts.Streams = streams
	opts.Echo = collector.Silent()
	r := collector.New(opts)

	p := NewReplay(strings.NewReader(s.String()), streams)
	require.NoError(t, p.Run(context.Background(), r))
	assert.False(t, streams.Redirected())
	return r, p
}

func TestReplay_Statuses(t *testing.T) {
	s := (&stream{}).
		action(ActionStart, "", 0).
		action(ActionRun, "TestAdd", 0).
		out("TestAdd", "=== RUN   TestAdd\n").
		out("TestAdd", "hello\n").
		out("TestAdd", "--- PASS: TestAdd (0.50s)\n").
		action(ActionPass, "TestAdd", 0.5).
		action(ActionRun, "TestSub", 0).
		out("TestSub", "=== RUN   TestSub\n").
		out("TestSub", "    calc_test.go:12: want 1, got 2\n").
		out("TestSub", "--- FAIL: TestSub (0.00s)\n").
		action(ActionFail, "TestSub", 0).
		action(ActionRun, "TestSkip", 0).
		out("TestSkip", "=== RUN   TestSkip\n").
		out("TestSkip", "    calc_test.go:20: needs network\n").
		out("TestSkip", "--- SKIP: TestSkip (0.00s)\n").
		action(ActionSkip, "TestSkip", 0).
		out("", "FAIL\n").
		out("", "FAIL\texample.com/calc\t0.52s\n").
		action(ActionFail, "", 0.52)

	r, p := replay(t, s, collector.Options{})

	outcomes := r.Outcomes()
	require.Len(t, outcomes, 3)

	assert.Equal(t, "example.com/calc.TestAdd", outcomes[0].Test.ID())
	assert.Equal(t, domain.Class{Name: pkgCalc}, outcomes[0].Test.Class())
	assert.Equal(t, domain.StatusPass, outcomes[0].Status)
	assert.Equal(t, "hello\n", outcomes[0].Output)
	assert.Equal(t, 500*time.Millisecond, outcomes[0].Duration)

	assert.Equal(t, domain.StatusFail, outcomes[1].Status)
	assert.Equal(t, "", outcomes[1].Output)
	assert.Equal(t, "    calc_test.go:12: want 1, got 2\n--- FAIL: TestSub (0.00s)\n", outcomes[1].Detail)

	assert.Equal(t, domain.StatusSkip, outcomes[2].Status)
	assert.Equal(t, "needs network", outcomes[2].Detail)

	assert.Equal(t, domain.RunCounts{Pass: 1, Fail: 1, Skip: 1}, r.Counts())
	assert.Equal(t, 19, p.Events())
	assert.Zero(t, p.Malformed())
}

func TestReplay_PanicIsError(t *testing.T) {
	s := (&stream{}).
		action(ActionRun, "TestBoom", 0).
		out("TestBoom", "=== RUN   TestBoom\n").
		out("TestBoom", "--- FAIL: TestBoom (0.00s)\n").
		out("TestBoom", "panic: boom [recovered]\n").
		out("TestBoom", "\tpanic: boom\n").
		out("TestBoom", "\n").
		out("TestBoom", "goroutine 7 [running]:\n").
		action(ActionFail, "TestBoom", 0).
		out("", "FAIL\texample.com/calc\t0.01s\n").
		action(ActionFail, "", 0.01)

	r, _ := replay(t, s, collector.Options{})

	outcomes := r.Outcomes()
	require.Len(t, outcomes, 1)
	assert.Equal(t, domain.StatusError, outcomes[0].Status)
	assert.Equal(t, "panic: boom [recovered]\n\tpanic: boom\n\ngoroutine 7 [running]:\n", outcomes[0].Detail)
	assert.Empty(t, outcomes[0].Output)
}

func TestReplay_BuildFailure(t *testing.T) {
	const pkg = "example.com/broken"
	const build = "example.com/broken [example.com/broken.test]"
	s := (&stream{}).
		add(Event{Action: ActionBuildOutput, ImportPath: build, Output: "# example.com/broken\n"}).
		add(Event{Action: ActionBuildOutput, ImportPath: build, Output: "./broken_test.go:5:2: undefined: foo\n"}).
		add(Event{Action: ActionBuildFail, ImportPath: build}).
		add(Event{Action: ActionStart, Package: pkg}).
		add(Event{Action: ActionOutput, Package: pkg, Output: "FAIL\texample.com/broken [build failed]\n"}).
		add(Event{Action: ActionFail, Package: pkg, FailedBuild: build})

	r, _ := replay(t, s, collector.Options{})

	outcomes := r.Outcomes()
	require.Len(t, outcomes, 1)
	assert.Equal(t, "example.com/broken.(package)", outcomes[0].Test.ID())
	assert.Equal(t, PackageTest, domain.MethodName(outcomes[0].Test))
	assert.Equal(t, domain.StatusError, outcomes[0].Status)
	assert.Equal(t,
		"# example.com/broken\n./broken_test.go:5:2: undefined: foo\nFAIL\texample.com/broken [build failed]\n",
		outcomes[0].Detail)
}

func TestReplay_PassingPackageAddsNothing(t *testing.T) {
	s := (&stream{}).
		action(ActionRun, "TestAdd", 0).
		action(ActionPass, "TestAdd", 0).
		out("", "PASS\n").
		out("", "ok  \texample.com/calc\t0.01s\n").
		action(ActionPass, "", 0.01)

	r, _ := replay(t, s, collector.Options{})
	assert.Equal(t, domain.RunCounts{Pass: 1}, r.Counts())
}

func TestReplay_UnfinishedTest(t *testing.T) {
	s := (&stream{}).
		action(ActionRun, "TestHang", 0).
		out("TestHang", "=== RUN   TestHang\n").
		out("TestHang", "working\n")

	r, _ := replay(t, s, collector.Options{})

	outcomes := r.Outcomes()
	require.Len(t, outcomes, 1)
	assert.Equal(t, domain.StatusError, outcomes[0].Status)
	assert.Equal(t, "working\n", outcomes[0].Output)
	assert.Equal(t, "test did not finish\n", outcomes[0].Detail)
}

func TestReplay_SubtestsAreFolded(t *testing.T) {
	s := (&stream{}).
		action(ActionRun, "TestA", 0).
		action(ActionRun, "TestA/one", 0).
		out("TestA/one", "=== RUN   TestA/one\n").
		out("TestA/one", "        a_test.go:5: inner\n").
		out("TestA/one", "    --- FAIL: TestA/one (0.00s)\n").
		action(ActionFail, "TestA/one", 0).
		out("TestA", "--- FAIL: TestA (0.00s)\n").
		action(ActionFail, "TestA", 0)

	r, _ := replay(t, s, collector.Options{})

	outcomes := r.Outcomes()
	require.Len(t, outcomes, 1)
	assert.Equal(t, "example.com/calc.TestA", outcomes[0].Test.ID())
	assert.Equal(t, domain.StatusFail, outcomes[0].Status)
	assert.Equal(t,
		"        a_test.go:5: inner\n    --- FAIL: TestA/one (0.00s)\n--- FAIL: TestA (0.00s)\n",
		outcomes[0].Detail)
}

func TestReplay_ParallelOutputIsNotInterleaved(t *testing.T) {
	s := (&stream{}).
		action(ActionRun, "TestB", 0).
		action(ActionRun, "TestC", 0).
		out("TestB", "b1\n").
		out("TestC", "c1\n").
		out("TestB", "b2\n").
		action(ActionPass, "TestC", 0).
		action(ActionPass, "TestB", 0)

	r, _ := replay(t, s, collector.Options{})

	outcomes := r.Outcomes()
	require.Len(t, outcomes, 2)
	assert.Equal(t, "example.com/calc.TestC", outcomes[0].Test.ID())
	assert.Equal(t, "c1\n", outcomes[0].Output)
	assert.Equal(t, "b1\nb2\n", outcomes[1].Output)
}

func TestReplay_MalformedLinesAreSkipped(t *testing.T) {
	s := (&stream{}).
		raw("not json").
		raw("{}").
		action(ActionRun, "TestAdd", 0).
		action(ActionPass, "TestAdd", 0)

	r, p := replay(t, s, collector.Options{})
	assert.Equal(t, 2, p.Malformed())
	assert.Equal(t, 2, p.Events())
	assert.Equal(t, domain.RunCounts{Pass: 1}, r.Counts())
}

func TestReplay_FailFast(t *testing.T) {
	s := (&stream{}).
		action(ActionRun, "TestA", 0).
		action(ActionFail, "TestA", 0).
		action(ActionRun, "TestB", 0).
		action(ActionFail, "TestB", 0)

	r, _ := replay(t, s, collector.Options{FailFast: true})
	assert.Len(t, r.Outcomes(), 1)
	assert.True(t, r.ShouldStop())
}

func TestReplay_Cancelled(t *testing.T) {
	s := (&stream{}).action(ActionRun, "TestA", 0)
	r := collector.New(collector.Options{Echo: collector.Silent()})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewReplay(strings.NewReader(s.String()), nil).Run(ctx, r)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseEvent(t *testing.T) {
	e, err := ParseEvent([]byte(`{"Time":"2024-01-02T03:04:05Z","Action":"pass","Package":"p","Test":"TestX/sub","Elapsed":1.5}`))
	require.NoError(t, err)
	assert.Equal(t, ActionPass, e.Action)
	assert.Equal(t, "TestX", e.TopLevel())
	assert.True(t, e.IsSubtest())
	assert.Equal(t, 1500*time.Millisecond, e.Duration())

	for _, line := range []string{"", "garbage", `{"Package":"p"}`} {
		_, err := ParseEvent([]byte(line))
		assert.ErrorIs(t, err, ErrMalformedEvent, "line %q", line)
	}
}
