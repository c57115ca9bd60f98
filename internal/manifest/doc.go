// Package manifest locates and rewrites artifact declaration blocks in a
// Starlark dependency manifest such as rules_java's repositories.bzl.
//
// A declaration block spans from a `maybe(` line to the first `)` line after
// the block's `"remote_<name>"` identifier. Within a block the patcher
// updates the sha256 field and the multi-line urls list, leaving every other
// byte untouched:
//
//	maybe(
//	    http_archive,
//	    name = "remote_java_tools_linux",
//	    sha256 = "...",
//	    urls = [
//	        "https://mirror.bazel.build/bazel_java_tools/releases/java/v12.0/java_tools_linux-v12.0.zip",
//	        "https://github.com/bazelbuild/java_tools/releases/download/java_12.0/java_tools_linux-12.0.zip",
//	    ],
//	)
//
// Edits are applied to an in-memory Document so a run writes the file once.
package manifest
