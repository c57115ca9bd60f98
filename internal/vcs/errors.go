package vcs

import (
	"errors"
	"strings"
)

var (
	// ErrBranchExists indicates `git checkout -b` found the branch already present.
	ErrBranchExists = errors.New("branch already exists")
	// ErrNothingToCommit indicates the working tree had no changes to commit.
	ErrNothingToCommit = errors.New("nothing to commit")
	// ErrTokenRequired is returned when no credential is given for the push URL.
	ErrTokenRequired = errors.New("token must be provided")
)

// Error wraps a failed git invocation.
type Error struct {
	Op     string // Operation that failed, e.g. "commit".
	Cmd    string // Command line that was run, with credentials redacted.
	Output string // Combined output of the command.
	Err    error  // Underlying error.
}

func (e *Error) Error() string {
	if out := strings.TrimSpace(e.Output); out != "" {
		return e.Op + ": " + out
	}

	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}
