package manifest

import "errors"

var (
	// ErrBlockNotFound is returned when no well-formed block owns the artifact identifier.
	ErrBlockNotFound = errors.New("declaration block not found")
	// ErrInvalidRange is returned when a range does not fit the manifest text.
	ErrInvalidRange = errors.New("invalid block range")
	// ErrChecksumField is returned unless the block has exactly one sha256 field.
	ErrChecksumField = errors.New("block must have exactly one sha256 field")
	// ErrURLList is returned when the block has no multi-line urls list.
	ErrURLList = errors.New("urls list not found")
	// ErrMirrorEntry is returned when the urls list has no mirror entry to anchor on.
	ErrMirrorEntry = errors.New("mirror url not found")
	// ErrArchiveName is returned when no url carries a release archive name to substitute.
	ErrArchiveName = errors.New("release archive url not found")
)
