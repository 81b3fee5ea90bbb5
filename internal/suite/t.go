package suite

import (
	"fmt"
	"io"
	"runtime"
	"strings"
	"sync"

	"htmlreporter/internal/capture"
)

// T is handed to every suite test. Its methods mirror testing.T: Error and
// Fatal mark the test FAIL, Skip marks it SKIP, and Log writes to the
// captured standard output.
type T struct {
	streams *capture.Streams

	mu       sync.Mutex
	failed   bool
	skipped  bool
	reason   string
	messages []string
}

func newT(streams *capture.Streams) *T {
	return &T{streams: streams}
}

// Stdout returns the writer standing in for standard output
func (t *T) Stdout() io.Writer {
	return t.streams.Stdout()
}

// Stderr returns the writer standing in for standard error
func (t *T) Stderr() io.Writer {
	return t.streams.Stderr()
}

// Log prints its arguments to standard output, like fmt.Println
func (t *T) Log(args ...any) {
	fmt.Fprintln(t.Stdout(), args...)
}

// Logf prints a formatted line to standard output
func (t *T) Logf(format string, args ...any) {
	t.Log(fmt.Sprintf(format, args...))
}

// Fail marks the test as failed and keeps running
func (t *T) Fail() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failed = true
}

// Failed reports whether the test has failed
func (t *T) Failed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.failed
}

// Error records a failure message and marks the test as failed
func (t *T) Error(args ...any) {
	t.fail(strings.TrimSuffix(fmt.Sprintln(args...), "\n"))
}

// Errorf records a formatted failure message
func (t *T) Errorf(format string, args ...any) {
	t.fail(fmt.Sprintf(format, args...))
}

// Fatal is Error followed by FailNow
func (t *T) Fatal(args ...any) {
	t.Error(args...)
	t.FailNow()
}

// Fatalf is Errorf followed by FailNow
func (t *T) Fatalf(format string, args ...any) {
	t.Errorf(format, args...)
	t.FailNow()
}

// FailNow marks the test as failed and stops it. It must be called from the
// goroutine running the test.
func (t *T) FailNow() {
	t.Fail()
	runtime.Goexit()
}

// Skip records a reason and stops the test as skipped
func (t *T) Skip(args ...any) {
	t.mu.Lock()
	t.reason = strings.TrimSuffix(fmt.Sprintln(args...), "\n")
	t.mu.Unlock()
	t.SkipNow()
}

// Skipf is Skip with a formatted reason
func (t *T) Skipf(format string, args ...any) {
	t.mu.Lock()
	t.reason = fmt.Sprintf(format, args...)
	t.mu.Unlock()
	t.SkipNow()
}

// SkipNow stops the test as skipped
func (t *T) SkipNow() {
	t.mu.Lock()
	t.skipped = true
	t.mu.Unlock()
	runtime.Goexit()
}

func (t *T) fail(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failed = true
	t.messages = append(t.messages, msg)
}

// detail returns the failure messages, one per line. A test failed without
// a message gets a "--- FAIL: <id>" line.
func (t *T) detail(id string) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.messages) == 0 {
		return "--- FAIL: " + id + "\n"
	}
	return strings.Join(t.messages, "\n") + "\n"
}
