package integration

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bazel-io/release-updates/internal/domain/artifact"
	"github.com/bazel-io/release-updates/internal/manifest"
	manifestrepo "github.com/bazel-io/release-updates/internal/repository/manifest"
	"github.com/bazel-io/release-updates/internal/vcs"
)

const seed = `def java_tools_repos():
    maybe(
        http_archive,
        name = "remote_java_tools",
        sha256 = "old",
        urls = [
            "https://mirror.bazel.build/bazel_java_tools/releases/java/v11.6/java_tools-v11.6.zip",
            "https://github.com/bazelbuild/java_tools/releases/download/java_11.6/java_tools-11.6.zip",
        ],
    )
`

// git runs a setup command and fails the test on error.
func git(ctx context.Context, t *testing.T, dir string, args ...string) []string {
	t.Helper()

	lines, err := vcs.NewExecRunner().Run(ctx, dir, "git", args...)
	require.NoError(t, err, strings.Join(args, " "))

	return lines
}

// TestRelease_CommitsAndPushesToLocalRemote patches a manifest in a real
// working tree and pushes the release branch to a bare repository.
func TestRelease_CommitsAndPushesToLocalRemote(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git is not installed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	root := t.TempDir()
	remote := filepath.Join(root, "remote.git")
	work := filepath.Join(root, "work")

	git(ctx, t, root, "init", "--bare", remote)
	git(ctx, t, root, "init", work)
	git(ctx, t, work, "remote", "add", "origin", "https://example.invalid/placeholder.git")

	path := filepath.Join(work, "repositories.bzl")
	require.NoError(t, os.WriteFile(path, []byte(seed), 0o644))

	repo := vcs.NewRepo(work)
	require.NoError(t, repo.ConfigureIdentity(ctx, "bazel-io", "bazel-io@example.com"))
	require.NoError(t, repo.StageAll(ctx))
	require.NoError(t, repo.Commit(ctx, "seed"))

	// Point origin at the bare repository, as the release does with the credentialed URL.
	require.NoError(t, repo.SetRemoteURL(ctx, "origin", remote))

	created, err := repo.CheckoutBranch(ctx, "java_tools-12.0-rc1")
	require.NoError(t, err)
	require.True(t, created)

	// Switching back and forth exercises the already-exists fallback.
	git(ctx, t, work, "checkout", "-")

	created, err = repo.CheckoutBranch(ctx, "java_tools-12.0-rc1")
	require.NoError(t, err)
	require.False(t, created)

	records := make(map[artifact.Name]artifact.Record)
	for _, name := range artifact.Names() {
		records[name] = artifact.Record{
			Path:     "releases/java/v12.0-rc1/" + string(name) + "-v12.0-rc1.zip",
			Checksum: "sum-" + string(name),
		}
	}

	table, err := artifact.NewTable(records)
	require.NoError(t, err)

	store := manifestrepo.NewFileRepository(path)
	rng, err := manifest.Locate(seed, artifact.JavaTools)
	require.NoError(t, err)
	require.NoError(t, manifest.UpdateFile(ctx, store, rng, table, artifact.JavaTools))

	require.NoError(t, repo.StageAll(ctx))
	require.NoError(t, repo.Commit(ctx, "Update java_tools 12.0-rc1"))
	require.ErrorIs(t, repo.Commit(ctx, "again"), vcs.ErrNothingToCommit)
	require.NoError(t, repo.Push(ctx, "origin", "java_tools-12.0-rc1"))

	head, err := repo.HeadCommit(ctx)
	require.NoError(t, err)

	pushed := git(ctx, t, root, "--git-dir", remote, "rev-parse", "java_tools-12.0-rc1")
	require.Equal(t, []string{head}, pushed)

	shown := git(ctx, t, root, "--git-dir", remote, "show", "java_tools-12.0-rc1:repositories.bzl")
	text := strings.Join(shown, "\n")
	require.Contains(t, text, `sha256 = "sum-java_tools",`)
	require.Contains(t, text, "releases/java/v12.0-rc1/java_tools-v12.0-rc1.zip")
	require.NotContains(t, text, "https://github.com")
}
