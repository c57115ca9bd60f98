package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	gh "github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

var (
	// ErrTokenRequired is returned when no API token is given.
	ErrTokenRequired = errors.New("github token is required")
	// ErrRepositoryRequired is returned when owner or repository is empty.
	ErrRepositoryRequired = errors.New("owner and repository are required")
	// ErrPullRequestExists is returned when the branch already has an open pull request.
	ErrPullRequestExists = errors.New("pull request already exists")
	// ErrNoChanges is returned when the head branch has no commits over the base.
	ErrNoChanges = errors.New("no commits between base and head")
)

// Client talks to the GitHub API for one repository.
type Client struct {
	api   *gh.Client
	owner string
	repo  string
}

// PullRequest is the subset of a created pull request the release run reports.
type PullRequest struct {
	Number int
	URL    string
}

// Option configures a Client.
type Option func(*Client) error

// WithBaseURL points the client at a different API endpoint, such as GitHub
// Enterprise or a test server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) error {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}

		parsed, err := c.api.BaseURL.Parse(baseURL)
		if err != nil {
			return fmt.Errorf("parse base url: %w", err)
		}

		c.api.BaseURL = parsed

		return nil
	}
}

// NewClient returns a client authenticated with token.
func NewClient(ctx context.Context, token, owner, repo string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, ErrTokenRequired
	}

	if owner == "" || repo == "" {
		return nil, ErrRepositoryRequired
	}

	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})

	c := &Client{
		api:   gh.NewClient(oauth2.NewClient(ctx, source)),
		owner: owner,
		repo:  repo,
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// OpenPullRequest opens a pull request merging head into base.
func (c *Client) OpenPullRequest(ctx context.Context, title, body, head, base string) (*PullRequest, error) {
	pr, resp, err := c.api.PullRequests.Create(ctx, c.owner, c.repo, &gh.NewPullRequest{
		Title: gh.String(title),
		Body:  gh.String(body),
		Head:  gh.String(head),
		Base:  gh.String(base),
	})
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnprocessableEntity {
			switch {
			case strings.Contains(err.Error(), "A pull request already exists"):
				return nil, ErrPullRequestExists
			case strings.Contains(err.Error(), "No commits between"):
				return nil, ErrNoChanges
			}
		}

		return nil, fmt.Errorf("create pull request: %w", err)
	}

	return &PullRequest{
		Number: pr.GetNumber(),
		URL:    pr.GetHTMLURL(),
	}, nil
}
