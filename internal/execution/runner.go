// Package execution runs `go test -json` as a subprocess and replays its
// event stream into a collector.
package execution

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"htmlreporter/internal/capture"
	"htmlreporter/internal/collector"
	"htmlreporter/internal/config"
	"htmlreporter/internal/discovery"
	"htmlreporter/internal/parser"
)

// Runner is a host that runs the tests of a set of Go packages
type Runner struct {
	config   *config.Config
	packages []string
	streams  *capture.Streams
	command  CommandFunc
}

// NewRunner creates a new Runner for packages. The output of the tests is
// written through streams, which must be the Streams the collector swaps
// (capture.Std when nil).
func NewRunner(cfg *config.Config, packages []string, streams *capture.Streams) *Runner {
	if streams == nil {
		streams = capture.Std
	}
	return &Runner{
		config:   cfg,
		packages: packages,
		streams:  streams,
		command:  exec.CommandContext,
	}
}

// WithCommand replaces the function used to build the subprocess
func (r *Runner) WithCommand(fn CommandFunc) *Runner {
	r.command = fn
	return r
}

// Args returns the arguments passed to the go command
func (r *Runner) Args() []string {
	args := []string{"test", "-json"}
	if expr := discovery.NewFilter().RunPattern(r.config.Flags.Filter); expr != "" {
		args = append(args, "-run", expr)
	}
	if r.config.FailFast {
		args = append(args, "-failfast")
	}
	args = append(args, r.config.Flags.GoTestArgs...)
	return append(args, r.packages...)
}

// Count returns the number of top-level tests the run is expected to
// report, found by reading the packages' test files. It returns 0 when a
// package pattern cannot be resolved to a single directory.
func (r *Runner) Count() int {
	parser := discovery.NewParser()
	filter := discovery.NewFilter()

	total := 0
	for _, pkg := range r.packages {
		if strings.Contains(pkg, "...") || !(pkg == "." || strings.HasPrefix(pkg, "./") || strings.HasPrefix(pkg, "../")) {
			return 0
		}
		cases, err := parser.FindPackageTestCases(filepath.Join(r.config.GetTestPath(), pkg))
		if err != nil {
			return 0
		}
		total += len(filter.FilterByName(cases, r.config.Flags.Filter))
	}
	return total
}

// Run executes go test and replays its events into result. A non-zero exit
// status is expected when tests fail and is only an error when the command
// produced no events at all.
func (r *Runner) Run(ctx context.Context, result *collector.Result) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	args := r.Args()
	cmd := r.command(ctx, GoBinary, args...)
	cmd.Dir = r.config.GetTestPath()

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to open go test output: %w", err)
	}

	logrus.WithField("Args", strings.Join(args, " ")).Debug("Starting go test")
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start go test: %w", err)
	}

	replay := parser.NewReplay(stdout, r.streams)
	replayErr := replay.Run(ctx, result)
	if result.ShouldStop() {
		// stop the remaining tests
		cancel()
	}
	// drain so the process can exit
	_, _ = io.Copy(io.Discard, stdout)
	waitErr := cmd.Wait()

	if replayErr != nil && !errors.Is(replayErr, context.Canceled) {
		return replayErr
	}
	if err := ctx.Err(); err != nil && !result.ShouldStop() {
		return err
	}

	if waitErr != nil {
		var exitErr *exec.ExitError
		if replay.Events() == 0 || !errors.As(waitErr, &exitErr) {
			if result.ShouldStop() {
				return nil
			}
			return fmt.Errorf("go test failed: %w: %s", waitErr, strings.TrimSpace(stderr.String()))
		}
		logrus.WithField("ExitCode", exitErr.ExitCode()).Debug("go test exited")
	}
	if stderr.Len() > 0 {
		logrus.WithField("Stderr", strings.TrimSpace(stderr.String())).Debug("go test wrote to stderr")
	}
	return nil
}
