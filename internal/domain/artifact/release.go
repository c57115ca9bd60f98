package artifact

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// versionMarker opens the version segment of an artifact path.
	versionMarker = "/v"
	// productMarker follows the version segment.
	productMarker = "/java_"
	// candidateMarker marks pre-release builds.
	candidateMarker = "-rc"
)

// ErrVersionNotFound is returned when the generic path lacks the /v<VERSION>/java_ layout.
var ErrVersionNotFound = errors.New("release version not found in artifact path")

// Version returns the release version embedded in the generic artifact's path:
// the text between "/v" and the following "/java_".
func (t *Table) Version() (string, error) {
	record, err := t.Get(Generic)
	if err != nil {
		return "", err
	}

	return VersionFromPath(record.Path)
}

// IsReleaseCandidate reports whether the generic artifact is a pre-release build.
func (t *Table) IsReleaseCandidate() bool {
	record, err := t.Get(Generic)
	if err != nil {
		return false
	}

	return IsReleaseCandidatePath(record.Path)
}

// VersionFromPath extracts the version segment from an artifact path.
func VersionFromPath(path string) (string, error) {
	start := strings.Index(path, versionMarker)
	if start < 0 {
		return "", fmt.Errorf("%w: %q has no %q", ErrVersionNotFound, path, versionMarker)
	}

	start += len(versionMarker)

	end := strings.Index(path[start:], productMarker)
	if end <= 0 {
		return "", fmt.Errorf("%w: %q has no %q after the version", ErrVersionNotFound, path, productMarker)
	}

	return path[start : start+end], nil
}

// IsReleaseCandidatePath reports whether path contains the "-rc" marker.
func IsReleaseCandidatePath(path string) bool {
	return strings.Contains(path, candidateMarker)
}
