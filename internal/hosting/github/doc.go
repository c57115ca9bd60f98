// Package github opens the release pull request on GitHub once the release
// branch has been pushed.
package github
