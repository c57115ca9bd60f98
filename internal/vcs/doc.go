// Package vcs drives the git binary for the release branch workflow:
// pointing the push remote at a credentialed URL, switching to the release
// branch, committing the manifest and pushing it.
//
// Commands go through a Runner so tests can script git's responses.
package vcs
