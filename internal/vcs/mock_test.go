package vcs

import (
	"context"
	"strings"
	"sync"
)

// call is one recorded Run invocation.
type call struct {
	Dir  string
	Name string
	Args []string
}

// response is one scripted Run result.
type response struct {
	lines []string
	err   error
}

// sequentialRunner returns scripted responses in order and records every call.
type sequentialRunner struct {
	mu        sync.Mutex
	responses []response
	calls     []call
}

func newSequentialRunner() *sequentialRunner {
	return &sequentialRunner{}
}

// AddOutput scripts the next call to print out and return err.
func (r *sequentialRunner) AddOutput(out string, err error) {
	r.responses = append(r.responses, response{lines: splitLines(out), err: err})
}

// AddFailure scripts the next call to fail with combined output.
func (r *sequentialRunner) AddFailure(output string) {
	r.responses = append(r.responses, response{err: &Error{Op: "run git", Output: output, Err: errExit}})
}

func (r *sequentialRunner) Run(_ context.Context, dir, name string, args ...string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, call{Dir: dir, Name: name, Args: args})

	if len(r.responses) == 0 {
		return nil, nil
	}

	next := r.responses[0]
	r.responses = r.responses[1:]

	return next.lines, next.err
}

// Commands renders the recorded calls as command lines.
func (r *sequentialRunner) Commands() []string {
	out := make([]string, 0, len(r.calls))
	for _, c := range r.calls {
		out = append(out, c.Name+" "+strings.Join(c.Args, " "))
	}

	return out
}
