// Command release-updates rewrites the java_tools blocks of repositories.bzl
// for a new release and pushes the change to a release branch.
package main

import "github.com/bazel-io/release-updates/cmd/release-updates/cmd"

func main() {
	cmd.Execute()
}
