package capture

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// OSCapture replaces os.Stdout and os.Stderr with pipes copied into the
// given writers, so output from fmt.Print and friends is captured too.
type OSCapture struct {
	mu       sync.Mutex
	origOut  *os.File
	origErr  *os.File
	outW     *os.File
	errW     *os.File
	wg       sync.WaitGroup
	restored bool
}

// StartOSCapture swaps the process file handles. Call Restore to undo.
func StartOSCapture(out, err io.Writer) (*OSCapture, error) {
	outR, outW, pipeErr := os.Pipe()
	if pipeErr != nil {
		return nil, fmt.Errorf("create stdout pipe: %w", pipeErr)
	}
	errR, errW, pipeErr := os.Pipe()
	if pipeErr != nil {
		outR.Close()
		outW.Close()
		return nil, fmt.Errorf("create stderr pipe: %w", pipeErr)
	}

	c := &OSCapture{
		origOut: os.Stdout,
		origErr: os.Stderr,
		outW:    outW,
		errW:    errW,
	}
	c.wg.Add(2)
	go c.copy(out, outR)
	go c.copy(err, errR)

	os.Stdout = outW
	os.Stderr = errW
	return c, nil
}

func (c *OSCapture) copy(dst io.Writer, src *os.File) {
	defer c.wg.Done()
	defer src.Close()
	_, _ = io.Copy(dst, src)
}

// Restore reinstates the original file handles and waits until everything
// written to the pipes has been copied. Safe to call more than once.
func (c *OSCapture) Restore() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.restored {
		return
	}
	c.restored = true

	os.Stdout = c.origOut
	os.Stderr = c.origErr
	c.outW.Close()
	c.errW.Close()
	c.wg.Wait()
}
