package manifest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bazel-io/release-updates/internal/domain/artifact"
)

const (
	mirrorBase  = "https://mirror.bazel.build/bazel_java_tools/"
	releaseBase = "https://github.com/bazelbuild/java_tools/releases/download/"
)

// manifestHeader precedes the java_tools blocks and includes an unrelated
// block closed by the same marker.
const manifestHeader = `"""Development and production dependencies of rules_java."""

load("@bazel_tools//tools/build_defs/repo:http.bzl", "http_archive")
load("@bazel_tools//tools/build_defs/repo:utils.bzl", "maybe")

def rules_cc_repo():
    maybe(
        http_archive,
        name = "rules_cc",
        sha256 = "cc-sha",
        urls = ["https://github.com/bazelbuild/rules_cc/releases/download/0.0.9/rules_cc-0.0.9.tar.gz"],
    )

def java_tools_repos():
    """Declares the remote java_tools repositories"""
`

const manifestFooter = `
def rules_java_dependencies():
    # Registers the java_tools repositories.
    java_tools_repos()
`

// block renders one java_tools declaration block for version.
func block(name artifact.Name, checksum, version string, withRelease bool) string {
	var builder strings.Builder

	builder.WriteString("    maybe(\n")
	builder.WriteString("        http_archive,\n")
	fmt.Fprintf(&builder, "        name = %q,\n", "remote_"+string(name))
	fmt.Fprintf(&builder, "        sha256 = %q,\n", checksum)
	builder.WriteString("        urls = [\n")
	fmt.Fprintf(&builder, "            %q,\n", mirrorBase+archivePath(name, version))

	if withRelease {
		fmt.Fprintf(&builder, "            %q,\n", fmt.Sprintf("%sjava_%s/%s-%s.zip", releaseBase, version, name, version))
	}

	builder.WriteString("        ],\n")
	builder.WriteString("    )\n")

	return builder.String()
}

// archivePath is the bucket path of an artifact, as printed by the release builder.
func archivePath(name artifact.Name, version string) string {
	return fmt.Sprintf("releases/java/v%s/%s-v%s.zip", version, name, version)
}

// manifestText renders a complete manifest with one block per artifact.
func manifestText(version string, withRelease bool) string {
	var builder strings.Builder

	builder.WriteString(manifestHeader)

	for _, name := range artifact.Names() {
		builder.WriteString(block(name, "old-"+string(name), version, withRelease))
		builder.WriteString("\n")
	}

	builder.WriteString(manifestFooter)

	return builder.String()
}

// releaseTable returns a table for version whose checksums are "<prefix>-<name>".
func releaseTable(t *testing.T, version, prefix string) *artifact.Table {
	t.Helper()

	records := make(map[artifact.Name]artifact.Record)
	for _, name := range artifact.Names() {
		records[name] = artifact.Record{
			Path:     archivePath(name, version),
			Checksum: prefix + "-" + string(name),
		}
	}

	table, err := artifact.NewTable(records)
	require.NoError(t, err)

	return table
}

// bucketRecords returns records laid out the way the release builder prints
// them, with no "release" segment in the path.
func bucketRecords(version string) map[artifact.Name]artifact.Record {
	records := make(map[artifact.Name]artifact.Record)
	for i, name := range artifact.Names() {
		records[name] = artifact.Record{
			Path:     fmt.Sprintf("bucket/v%s/%s-v%s.zip", version, name, version),
			Checksum: fmt.Sprintf("sum-%d", i),
		}
	}

	return records
}

// trimBlock drops the trailing newline the block helper adds.
func trimBlock(s string) string {
	return strings.TrimSuffix(s, "\n")
}
