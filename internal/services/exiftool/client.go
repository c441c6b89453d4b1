package exiftool

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"filmtag/internal/services"
)

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string, onLine func(string)) error
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client wraps exiftool CLI interactions.
type Client struct {
	binary string
	exec   Executor
}

// New constructs an exiftool client.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("exiftool binary required")
	}
	client := &Client{
		binary: binary,
		exec:   commandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Apply executes one payload argfile and reconciles the tool's output into
// per-file results. taskCount is the number of -execute units in the
// argfile; results are positional in that order.
//
// A non-zero exit with fully parseable output is not an error: the tool
// exits non-zero whenever any file is rejected, and per-file granularity is
// the whole point of parsing. Only timeouts, startup failures, and output
// that cannot be correlated back to tasks are reported as errors.
func (c *Client) Apply(ctx context.Context, argfilePath string, taskCount int) ([]FileResult, error) {
	if argfilePath == "" {
		return nil, services.Wrap(services.ErrValidation, "execute", "apply", "argfile path required", nil)
	}
	if taskCount <= 0 {
		return nil, services.Wrap(services.ErrValidation, "execute", "apply", "task count must be positive", nil)
	}

	parser := newApplyParser()
	runErr := c.exec.Run(ctx, c.binary, []string{"-@", argfilePath}, parser.feed)

	if ctx.Err() != nil {
		return nil, services.Wrap(services.ErrTimeout, "execute", "apply", "payload deadline exceeded", ctx.Err())
	}

	results := parser.results()
	if len(results) == taskCount {
		return results, nil
	}
	if runErr != nil {
		return nil, services.Wrap(services.ErrExternalTool, "execute", "apply",
			fmt.Sprintf("tool failed after %d of %d results", len(results), taskCount), runErr)
	}
	return nil, services.Wrap(services.ErrExternalTool, "execute", "apply",
		fmt.Sprintf("unparseable output: %d results for %d tasks", len(results), taskCount), nil)
}

type commandExecutor struct{}

// Run merges stdout and stderr into one pipe before scanning. The tool
// writes error detail and the matching summary line sequentially, so a
// single ordered stream keeps each detail attached to its own execute
// unit and delivers lines to onLine from one goroutine.
func (commandExecutor) Run(ctx context.Context, binary string, args []string, onLine func(string)) error {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	pr, pw, err := os.Pipe()
	if err != nil {
		return fmt.Errorf("output pipe: %w", err)
	}
	cmd.Stdout = pw
	cmd.Stderr = pw
	if err := cmd.Start(); err != nil {
		_ = pr.Close()
		_ = pw.Close()
		return fmt.Errorf("start command: %w", err)
	}
	_ = pw.Close()

	scanner := bufio.NewScanner(pr)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if onLine != nil {
			onLine(line)
		} else {
			fmt.Fprintln(os.Stderr, line)
		}
	}
	scanErr := scanner.Err()
	_ = pr.Close()

	if scanErr != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return fmt.Errorf("scan output: %w", scanErr)
	}
	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("wait command: %w", err)
	}
	return nil
}
