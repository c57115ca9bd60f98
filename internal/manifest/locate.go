package manifest

import (
	"fmt"
	"strings"

	"github.com/bazel-io/release-updates/internal/domain/artifact"
)

const (
	// openMarker starts a declaration block.
	openMarker = "maybe("
	// closeMarker ends a declaration block once its identifier has been seen.
	closeMarker = ")"
)

// Range is an inclusive, 1-indexed line range.
type Range struct {
	Start int
	End   int
}

// Identifier returns the quoted token naming the block of an artifact.
func Identifier(name artifact.Name) string {
	return `"remote_` + string(name) + `"`
}

// Locate finds the lines of the declaration block owning name.
//
// The most recent open marker before the identifier line is the start; the
// first close marker on or after the identifier line is the end.
func Locate(text string, name artifact.Name) (Range, error) {
	var (
		identifier = Identifier(name)
		start      int
		closing    bool
	)

	for i, line := range strings.Split(text, "\n") {
		lineNo := i + 1

		if strings.Contains(line, openMarker) {
			start = lineNo
		}

		if strings.Contains(line, identifier) {
			if start == 0 {
				return Range{}, fmt.Errorf("%w: %s has no %q before line %d", ErrBlockNotFound, name, openMarker, lineNo)
			}

			closing = true
		}

		if closing && strings.Contains(line, closeMarker) {
			return Range{Start: start, End: lineNo}, nil
		}
	}

	if closing {
		return Range{}, fmt.Errorf("%w: %s block is not closed", ErrBlockNotFound, name)
	}

	return Range{}, fmt.Errorf("%w: no %s identifier", ErrBlockNotFound, identifier)
}

// Slice returns the text of lines Start..End joined without a trailing newline.
func (r Range) Slice(text string) (string, error) {
	lines := strings.Split(text, "\n")
	if r.Start < 1 || r.End < r.Start || r.End > len(lines) {
		return "", fmt.Errorf("%w: %d-%d of %d lines", ErrInvalidRange, r.Start, r.End, len(lines))
	}

	return strings.Join(lines[r.Start-1:r.End], "\n"), nil
}

func (r Range) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}
