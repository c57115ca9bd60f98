package release

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bazel-io/release-updates/internal/config"
	"github.com/bazel-io/release-updates/internal/domain/artifact"
	"github.com/bazel-io/release-updates/internal/hosting/github"
	"github.com/bazel-io/release-updates/internal/logger"
	"github.com/bazel-io/release-updates/internal/manifest"
	manifestrepo "github.com/bazel-io/release-updates/internal/repository/manifest"
	"github.com/bazel-io/release-updates/internal/vcs"
)

// Options are the inputs of a release run.
type Options struct {
	// ConfigPath is an optional YAML settings file.
	ConfigPath string
	// Artifacts is the release builder output, one "<path> <checksum>" per line.
	Artifacts string
	// Token authenticates pushes and API calls against the code host.
	Token string
	// ManifestPath overrides the manifest location from the settings.
	ManifestPath string
	// LogLevel overrides the log level from the settings.
	LogLevel string
	// OpenPullRequest opens a pull request after pushing.
	OpenPullRequest bool
}

// pullRequestOpener opens the release pull request.
type pullRequestOpener interface {
	OpenPullRequest(ctx context.Context, title, body, head, base string) (*github.PullRequest, error)
}

// releaser holds the state of one run. Callers use Run.
type releaser struct {
	cfg   *config.Config
	token string
	// table is the parsed builder output.
	table *artifact.Table
	// version is the release version read from the generic artifact.
	version string
	repo    *vcs.Repo
	store   manifest.Store
	// pulls is nil unless a pull request was requested.
	pulls pullRequestOpener
}

var (
	// errArtifactsRequired is returned when the builder output is empty.
	errArtifactsRequired = errors.New("artifacts must be provided")
	// errTokenRequired is returned when no token is given.
	errTokenRequired = errors.New("token must be provided")
)

// Run executes the release update.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "release-updates")

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	rel, err := newReleaser(ctx, cfg, opts, vcs.NewRepo(cfg.RepoDir), manifestrepo.NewFileRepository(cfg.ManifestFile()))
	if err != nil {
		return fmt.Errorf("initialize release: %w", err)
	}

	if opts.OpenPullRequest {
		rel.pulls, err = github.NewClient(ctx, opts.Token, cfg.Owner, cfg.Repository)
		if err != nil {
			return fmt.Errorf("initialize github client: %w", err)
		}
	}

	if err = rel.Run(ctx); err != nil {
		return fmt.Errorf("release failed: %w", err)
	}

	logger.InfoKV(ctx, "Release update completed", "version", rel.version)

	return nil
}

// loadConfig reads settings and applies command line overrides.
func loadConfig(opts *Options) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	if opts.ManifestPath != "" {
		cfg.ManifestPath = opts.ManifestPath
	}

	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	if err = config.Validate(cfg); err != nil {
		return nil, err
	}

	if level, ok := logger.ParseLogLevel(cfg.LogLevel); ok {
		logger.SetLevel(level)
	}

	return cfg, nil
}

// newReleaser validates the inputs and parses the artifact table.
func newReleaser(
	ctx context.Context,
	cfg *config.Config,
	opts *Options,
	repo *vcs.Repo,
	store manifest.Store,
) (*releaser, error) {
	if strings.TrimSpace(opts.Artifacts) == "" {
		return nil, errArtifactsRequired
	}

	if opts.Token == "" {
		return nil, errTokenRequired
	}

	logger.DebugKV(ctx, "Received artifacts", "artifacts", opts.Artifacts)

	table, err := artifact.ParseTable(opts.Artifacts)
	if err != nil {
		return nil, fmt.Errorf("parse artifacts: %w", err)
	}

	version, err := table.Version()
	if err != nil {
		return nil, err
	}

	logger.InfoKV(ctx, "Parsed artifacts",
		"version", version,
		"release_candidate", table.IsReleaseCandidate(),
		"count", len(table.Names()))

	return &releaser{
		cfg:     cfg,
		token:   opts.Token,
		table:   table,
		version: version,
		repo:    repo,
		store:   store,
	}, nil
}

// Run switches to the release branch, updates the manifest and publishes it.
func (r *releaser) Run(ctx context.Context) error {
	branch := r.cfg.BranchName(r.version)

	if err := r.prepareBranch(ctx, branch); err != nil {
		return err
	}

	if err := r.updateManifest(ctx); err != nil {
		return err
	}

	if err := r.publish(ctx, branch); err != nil {
		return err
	}

	if r.pulls != nil {
		r.openPullRequest(ctx, branch)
	}

	return nil
}

// prepareBranch points the remote at a credentialed URL and checks out branch.
func (r *releaser) prepareBranch(ctx context.Context, branch string) error {
	logger.InfoKV(ctx, "Creating a new branch", "branch", branch)

	remoteURL, err := vcs.AuthenticatedURL(r.cfg.RemoteHost, r.cfg.Owner, r.cfg.Repository, r.cfg.BotUser, r.token)
	if err != nil {
		return err
	}

	if err = r.repo.SetRemoteURL(ctx, r.cfg.Remote, remoteURL); err != nil {
		return err
	}

	created, err := r.repo.CheckoutBranch(ctx, branch)
	if err != nil {
		return err
	}

	if !created {
		logger.WarnKV(ctx, "Branch already existed, switched to it", "branch", branch)
	}

	return nil
}

// updateManifest rewrites every artifact block in memory and saves the file once.
func (r *releaser) updateManifest(ctx context.Context) error {
	logger.InfoKV(ctx, "Updating manifest", "path", r.cfg.ManifestFile())

	contents, err := r.store.Load(ctx)
	if err != nil {
		return err
	}

	doc := manifest.NewDocument(string(contents), manifest.WithHosts(manifest.Hosts{
		Mirror:        r.cfg.MirrorPrefix,
		SourceControl: r.cfg.SourceControlPrefix,
		Release:       r.cfg.ReleaseHost,
	}))

	for _, name := range r.table.Names() {
		rng, err := doc.Update(r.table, name)
		if err != nil {
			return fmt.Errorf("update %s: %w", name, err)
		}

		logger.DebugKV(ctx, "Updated block", "artifact", name.String(), "lines", rng.String())
	}

	if err = r.store.Save(ctx, doc.Bytes()); err != nil {
		return err
	}

	return nil
}

// publish commits the manifest and pushes branch.
func (r *releaser) publish(ctx context.Context, branch string) error {
	logger.Info(ctx, "Committing updates")

	if err := r.repo.ConfigureIdentity(ctx, r.cfg.BotUser, r.cfg.BotEmail); err != nil {
		return err
	}

	if err := r.repo.StageAll(ctx); err != nil {
		return err
	}

	if err := r.repo.Commit(ctx, r.commitMessage()); err != nil {
		return err
	}

	if sha, err := r.repo.HeadCommit(ctx); err == nil {
		logger.InfoKV(ctx, "Created commit", "sha", sha)
	}

	logger.InfoKV(ctx, "Pushing branch", "remote", r.cfg.Remote, "branch", branch)

	return r.repo.Push(ctx, r.cfg.Remote, branch)
}

// openPullRequest opens the release pull request. Failures are logged only:
// the branch is already pushed and can be proposed by hand.
func (r *releaser) openPullRequest(ctx context.Context, branch string) {
	pr, err := r.pulls.OpenPullRequest(ctx, r.commitMessage(), r.pullRequestBody(), branch, r.cfg.BaseBranch)

	switch {
	case errors.Is(err, github.ErrPullRequestExists):
		logger.WarnKV(ctx, "Pull request already exists", "branch", branch)
	case err != nil:
		logger.ErrorKV(ctx, "Opening pull request failed", "error", err)
	default:
		logger.InfoKV(ctx, "Opened pull request", "number", pr.Number, "url", pr.URL)
	}
}

// commitMessage returns the configured message followed by the version.
func (r *releaser) commitMessage() string {
	return r.cfg.CommitMessage + " " + r.version
}

// pullRequestBody lists the released artifacts and their checksums.
func (r *releaser) pullRequestBody() string {
	var builder strings.Builder

	builder.WriteString("Updates ")
	builder.WriteString(r.cfg.ManifestPath)
	builder.WriteString(" to java_tools ")
	builder.WriteString(r.version)
	builder.WriteString(".\n\n")

	for _, name := range r.table.Names() {
		record, err := r.table.Get(name)
		if err != nil {
			continue
		}

		fmt.Fprintf(&builder, "- `%s`: `%s` (sha256 `%s`)\n", name, record.Path, record.Checksum)
	}

	return builder.String()
}
