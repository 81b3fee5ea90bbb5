package capture

import (
	"io"
	"os"
	"sync"
)

// Streams holds the process-visible output streams. Anything that writes
// test output should take a *Streams (or use Std) instead of os.Stdout.
type Streams struct {
	mu     sync.Mutex
	stdout io.Writer
	stderr io.Writer

	// real pair saved by Swap, nil when not redirected
	savedOut io.Writer
	savedErr io.Writer
}

// Std is the shared Streams instance
var Std = NewStreams(os.Stdout, os.Stderr)

// NewStreams creates a Streams writing to out and err
func NewStreams(out, err io.Writer) *Streams {
	return &Streams{stdout: out, stderr: err}
}

// Stdout returns the current standard output writer
func (s *Streams) Stdout() io.Writer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stdout
}

// Stderr returns the current standard error writer
func (s *Streams) Stderr() io.Writer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stderr
}

// RealStderr returns the error stream that was in place before redirection
func (s *Streams) RealStderr() io.Writer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.savedErr != nil {
		return s.savedErr
	}
	return s.stderr
}

// RealStdout returns the output stream that was in place before redirection
func (s *Streams) RealStdout() io.Writer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.savedOut != nil {
		return s.savedOut
	}
	return s.stdout
}

// Swap installs out and err as the visible streams. The pair in place before
// the first Swap is kept so Restore always returns to the real streams.
func (s *Streams) Swap(out, err io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.savedOut == nil {
		s.savedOut, s.savedErr = s.stdout, s.stderr
	}
	s.stdout, s.stderr = out, err
}

// Restore puts back the real streams. It reports whether anything was
// restored; calling it when not redirected is a no-op.
func (s *Streams) Restore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.savedOut == nil {
		return false
	}
	s.stdout, s.stderr = s.savedOut, s.savedErr
	s.savedOut, s.savedErr = nil, nil
	return true
}

// Redirected reports whether Swap is in effect
func (s *Streams) Redirected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.savedOut != nil
}
