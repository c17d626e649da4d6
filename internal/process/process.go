// Package process runs external tools (doxygen, doxysphinx) behind a small
// Runner abstraction so orchestration logic can be exercised with a fake.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"git.home.luguber.info/inful/autodox/internal/logfields"
)

// ErrExecutableNotFound indicates the requested executable was not detected on PATH.
var ErrExecutableNotFound = errors.New("executable not found")

// Command describes one invocation: executable, arguments and working directory.
type Command struct {
	Name string
	Args []string
	Dir  string
}

// String renders the command line for logs and error messages.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Result is what a finished invocation produced.
type Result struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// ExitError reports an invocation that ran but exited non-zero.
type ExitError struct {
	Command Command
	Result  Result
}

func (e *ExitError) Error() string {
	output := strings.TrimSpace(string(e.Result.Stderr))
	if output == "" {
		output = strings.TrimSpace(string(e.Result.Stdout))
	}
	if output != "" {
		return fmt.Sprintf("%s exited with status %d: %s", e.Command.Name, e.Result.ExitCode, output)
	}
	return fmt.Sprintf("%s exited with status %d", e.Command.Name, e.Result.ExitCode)
}

// Runner executes a Command and waits for it to finish.
//
// Contract: a nil error means exit status zero. A non-zero exit returns the
// Result together with an *ExitError; a missing executable wraps
// ErrExecutableNotFound.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// ExecRunner runs commands with os/exec. Output is captured, never streamed.
type ExecRunner struct {
	Logger *slog.Logger
}

// NewExecRunner returns an ExecRunner logging through logger (slog.Default when nil).
func NewExecRunner(logger *slog.Logger) *ExecRunner {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExecRunner{Logger: logger}
}

func (r *ExecRunner) Run(ctx context.Context, cmd Command) (Result, error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if _, err := exec.LookPath(cmd.Name); err != nil {
		return Result{ExitCode: -1}, fmt.Errorf("%w: %s: %w", ErrExecutableNotFound, cmd.Name, err)
	}

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	logger.Debug("Invoking external tool",
		logfields.Executable(cmd.Name),
		logfields.Args(cmd.Args),
		logfields.Dir(cmd.Dir))

	err := c.Run()
	res := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if c.ProcessState != nil {
		res.ExitCode = c.ProcessState.ExitCode()
	}

	if errStr := strings.TrimSpace(stderr.String()); errStr != "" {
		logger.Debug("external tool stderr", logfields.Executable(cmd.Name), slog.String("error_output", errStr))
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return res, &ExitError{Command: cmd, Result: res}
		}
		// Start failures and context cancellation land here.
		return res, fmt.Errorf("run %s: %w", cmd.Name, err)
	}
	return res, nil
}
