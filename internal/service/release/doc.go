// Package release runs the java_tools release update: it parses the builder
// output, switches to the release branch, rewrites every artifact block of
// the manifest, commits and pushes, and optionally opens a pull request.
package release
