// Package capture redirects test output into per-test buffers.
//
// Code that caches an output stream before a run starts (for example a
// logger configured at start-up) should be pointed at StdoutRedirector or
// StderrRedirector. Their binding is retargeted at every test boundary, so
// the cached reference keeps working and its output lands in the running
// test's capture buffer.
package capture

import (
	"io"
	"os"
	"sync"
)

// Redirector forwards writes to the currently bound writer
type Redirector struct {
	mu       sync.Mutex
	fallback io.Writer
	w        io.Writer
}

// StdoutRedirector and StderrRedirector are the shared redirectors for the
// two standard streams. Outside a test they write to the real streams.
var (
	StdoutRedirector = NewRedirector(os.Stdout)
	StderrRedirector = NewRedirector(os.Stderr)
)

// NewRedirector creates a Redirector that writes to fallback while unbound.
// A nil fallback discards unbound writes.
func NewRedirector(fallback io.Writer) *Redirector {
	return &Redirector{fallback: fallback}
}

// Bind retargets the redirector at w
func (r *Redirector) Bind(w io.Writer) {
	r.mu.Lock()
	r.w = w
	r.mu.Unlock()
}

// Unbind drops the current binding
func (r *Redirector) Unbind() {
	r.Bind(nil)
}

// Bound reports whether a writer is bound
func (r *Redirector) Bound() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.w != nil
}

// Write appends p to the bound writer
func (r *Redirector) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w := r.w
	if w == nil {
		w = r.fallback
	}
	if w == nil {
		return len(p), nil
	}
	return w.Write(p)
}

// WriteString implements io.StringWriter
func (r *Redirector) WriteString(s string) (int, error) {
	return r.Write([]byte(s))
}

// Flush forwards to the bound writer's Flush or Sync, if it has one
func (r *Redirector) Flush() error {
	r.mu.Lock()
	w := r.w
	r.mu.Unlock()

	switch f := w.(type) {
	case interface{ Flush() error }:
		return f.Flush()
	case interface{ Sync() error }:
		return f.Sync()
	}
	return nil
}

// Buffer is a capture buffer safe for concurrent writers
type Buffer struct {
	mu  sync.Mutex
	buf []byte
}

// NewBuffer returns an empty Buffer
func NewBuffer() *Buffer {
	return &Buffer{}
}

func (b *Buffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	b.buf = append(b.buf, p...)
	b.mu.Unlock()
	return len(p), nil
}

// String returns everything written so far
func (b *Buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.buf)
}

// Len returns the number of bytes written so far
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.buf)
}
