// Package processtest provides a recording fake for process.Runner.
package processtest

import (
	"context"
	"fmt"
	"sync"

	"git.home.luguber.info/inful/autodox/internal/process"
)

// Handler decides what a faked invocation returns.
type Handler func(cmd process.Command) (process.Result, error)

// Runner records every invocation and answers through Handler.
// A nil Handler succeeds with empty output.
type Runner struct {
	mu       sync.Mutex
	Handler  Handler
	commands []process.Command
}

// NewRunner returns a fake runner answering with h.
func NewRunner(h Handler) *Runner {
	return &Runner{Handler: h}
}

func (r *Runner) Run(_ context.Context, cmd process.Command) (process.Result, error) {
	r.mu.Lock()
	cp := cmd
	cp.Args = append([]string(nil), cmd.Args...)
	r.commands = append(r.commands, cp)
	h := r.Handler
	r.mu.Unlock()

	if h == nil {
		return process.Result{}, nil
	}
	return h(cp)
}

// Commands returns a copy of the recorded invocations in order.
func (r *Runner) Commands() []process.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]process.Command(nil), r.commands...)
}

// Count returns how many recorded invocations used the given executable.
func (r *Runner) Count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.commands {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Exit builds the result/error pair of a command that exited with code.
func Exit(cmd process.Command, code int, stderr string) (process.Result, error) {
	res := process.Result{ExitCode: code, Stderr: []byte(stderr)}
	if code == 0 {
		return res, nil
	}
	return res, &process.ExitError{Command: cmd, Result: res}
}

// NotFound mimics a missing executable.
func NotFound(cmd process.Command) (process.Result, error) {
	return process.Result{ExitCode: -1}, fmt.Errorf("%w: %s", process.ErrExecutableNotFound, cmd.Name)
}
