package vcs

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// gitBinary is the executable the repository commands run.
const gitBinary = "git"

// Repo runs git commands in a working tree.
type Repo struct {
	dir     string
	runner  Runner
	secrets []string
}

// Option configures a Repo.
type Option func(*Repo)

// WithRunner replaces the os/exec runner, mainly for tests.
func WithRunner(runner Runner) Option {
	return func(r *Repo) {
		r.runner = runner
	}
}

// NewRepo returns a Repo for the working tree at dir.
func NewRepo(dir string, opts ...Option) *Repo {
	r := &Repo{
		dir:    dir,
		runner: NewExecRunner(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// AuthenticatedURL returns the https remote URL of owner/repo on host carrying
// user and token as credentials.
func AuthenticatedURL(host, owner, repo, user, token string) (string, error) {
	if token == "" {
		return "", ErrTokenRequired
	}

	u := &url.URL{
		Scheme: "https",
		User:   url.UserPassword(user, token),
		Host:   host,
		Path:   "/" + owner + "/" + repo + ".git",
	}

	return u.String(), nil
}

// SetRemoteURL points remote at rawURL. A password embedded in rawURL is
// redacted from later error messages.
func (r *Repo) SetRemoteURL(ctx context.Context, remote, rawURL string) error {
	if u, err := url.Parse(rawURL); err == nil && u.User != nil {
		if password, ok := u.User.Password(); ok && password != "" {
			r.secrets = append(r.secrets, password)
		}
	}

	if _, err := r.git(ctx, "set remote url", "remote", "set-url", remote, rawURL); err != nil {
		return err
	}

	return nil
}

// ConfigureIdentity sets the commit author for this working tree.
func (r *Repo) ConfigureIdentity(ctx context.Context, name, email string) error {
	if _, err := r.git(ctx, "configure user name", "config", "user.name", name); err != nil {
		return err
	}

	if email == "" {
		return nil
	}

	if _, err := r.git(ctx, "configure user email", "config", "user.email", email); err != nil {
		return err
	}

	return nil
}

// CheckoutBranch creates branch and switches to it. When the branch already
// exists it switches to it instead; created reports which happened.
func (r *Repo) CheckoutBranch(ctx context.Context, branch string) (created bool, err error) {
	_, err = r.git(ctx, "create branch", "checkout", "-b", branch)
	if err == nil {
		return true, nil
	}

	if !strings.Contains(err.Error(), "already exists") {
		return false, err
	}

	if _, err = r.git(ctx, "checkout", "checkout", branch); err != nil {
		return false, fmt.Errorf("%w: %w", ErrBranchExists, err)
	}

	return false, nil
}

// StageAll stages every change in the working tree.
func (r *Repo) StageAll(ctx context.Context) error {
	if _, err := r.git(ctx, "stage all", "add", "--all"); err != nil {
		return err
	}

	return nil
}

// Commit records staged and tracked changes with message.
// Returns ErrNothingToCommit when git reports a clean tree.
func (r *Repo) Commit(ctx context.Context, message string) error {
	if _, err := r.git(ctx, "commit", "commit", "--all", "--message", message); err != nil {
		if strings.Contains(err.Error(), "nothing to commit") {
			return ErrNothingToCommit
		}

		return err
	}

	return nil
}

// Push pushes branch to remote and sets it as upstream.
func (r *Repo) Push(ctx context.Context, remote, branch string) error {
	if _, err := r.git(ctx, "push", "push", "--set-upstream", remote, branch); err != nil {
		return err
	}

	return nil
}

// HeadCommit returns the SHA of HEAD.
func (r *Repo) HeadCommit(ctx context.Context) (string, error) {
	lines, err := r.git(ctx, "get HEAD commit", "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}

	if len(lines) == 0 {
		return "", &Error{Op: "get HEAD commit", Err: errors.New("empty output")}
	}

	return lines[0], nil
}

// git runs one git command and wraps failures with op.
func (r *Repo) git(ctx context.Context, op string, args ...string) ([]string, error) {
	lines, err := r.runner.Run(ctx, r.dir, gitBinary, args...)
	if err == nil {
		return lines, nil
	}

	wrapped := &Error{
		Op:  op,
		Cmd: commandLine(gitBinary, args),
		Err: err,
	}

	var runErr *Error
	if errors.As(err, &runErr) {
		wrapped.Output = runErr.Output
	}

	wrapped.Output = r.scrub(wrapped.Output)
	wrapped.Cmd = r.scrub(wrapped.Cmd)

	return nil, wrapped
}

// scrub replaces known secrets in s.
func (r *Repo) scrub(s string) string {
	for _, secret := range r.secrets {
		s = strings.ReplaceAll(s, secret, "***")
	}

	return s
}
