package version

import "fmt"

var (
	// Version is the release of this tool, overridden via -ldflags "-X".
	Version = "0.1.0"
	// Commit is the short git SHA of the build, or "none".
	Commit = "none"
	// BuildTime is the UTC build timestamp, or "unknown".
	BuildTime = "unknown"
)

// Short returns the bare version string.
func Short() string {
	return Version
}

// Full returns the version together with commit and build time.
func Full() string {
	return fmt.Sprintf("release-updates %s (commit %s, built %s)", Version, Commit, BuildTime)
}
