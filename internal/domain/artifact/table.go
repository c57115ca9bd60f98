package artifact

import (
	"errors"
	"fmt"
	"strings"
)

// Record is one uploaded artifact.
type Record struct {
	// Path is the storage locator, containing a /v<VERSION>/ segment.
	Path string
	// Checksum is the hex sha256 digest of the archive.
	Checksum string
}

// Table maps every known artifact name to its record. It is not modified after ParseTable.
type Table struct {
	records map[Name]Record
}

var (
	// ErrMalformedLine is returned for payload lines that are not "<path> <checksum>"
	// or "<name> <path> <checksum>".
	ErrMalformedLine = errors.New("malformed artifact line")
	// ErrUnknownName is returned when a named line uses an unknown artifact name.
	ErrUnknownName = errors.New("unknown artifact name")
	// ErrDuplicateName is returned when the same artifact appears twice.
	ErrDuplicateName = errors.New("duplicate artifact")
	// ErrMixedLines is returned when positional and named lines are combined.
	ErrMixedLines = errors.New("positional and named artifact lines cannot be mixed")
	// ErrCountMismatch is returned when the payload does not cover every artifact exactly once.
	ErrCountMismatch = errors.New("artifact count mismatch")
	// ErrNotFound is returned by Get for names missing from the table.
	ErrNotFound = errors.New("artifact not found")
)

// ParseTable builds a Table from the release builder output.
//
// Each non-blank line is either "<path> <checksum>", matched to Names() by
// position, or "<name> <path> <checksum>", matched by name.
func ParseTable(raw string) (*Table, error) {
	var (
		names   = Names()
		records = make(map[Name]Record, len(names))
		named   int
		index   int
	)

	for lineNo, line := range strings.Split(raw, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		var name Name

		switch len(fields) {
		case 2:
			if index >= len(names) {
				return nil, fmt.Errorf("%w: more than %d lines", ErrCountMismatch, len(names))
			}

			name = names[index]
		case 3:
			name = Name(fields[0])
			if !name.Known() {
				return nil, fmt.Errorf("line %d: %w: %q", lineNo+1, ErrUnknownName, fields[0])
			}

			fields = fields[1:]
			named++
		default:
			return nil, fmt.Errorf("line %d: %w: %q", lineNo+1, ErrMalformedLine, line)
		}

		if named != 0 && named != index+1 {
			return nil, fmt.Errorf("line %d: %w", lineNo+1, ErrMixedLines)
		}

		if _, exists := records[name]; exists {
			return nil, fmt.Errorf("line %d: %w: %s", lineNo+1, ErrDuplicateName, name)
		}

		records[name] = Record{
			Path:     fields[0],
			Checksum: fields[1],
		}
		index++
	}

	if len(records) != len(names) {
		return nil, fmt.Errorf("%w: got %d lines, want %d", ErrCountMismatch, len(records), len(names))
	}

	return &Table{records: records}, nil
}

// NewTable builds a Table from records keyed by name. Every known name must be present.
func NewTable(records map[Name]Record) (*Table, error) {
	copied := make(map[Name]Record, len(records))

	for name, record := range records {
		if !name.Known() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownName, name)
		}

		copied[name] = record
	}

	if len(copied) != len(Names()) {
		return nil, fmt.Errorf("%w: got %d records, want %d", ErrCountMismatch, len(copied), len(Names()))
	}

	return &Table{records: copied}, nil
}

// Get returns the record for name.
func (t *Table) Get(name Name) (Record, error) {
	record, ok := t.records[name]
	if !ok {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	return record, nil
}

// Names returns the table's names in positional order.
func (t *Table) Names() []Name {
	out := make([]Name, 0, len(t.records))

	for _, name := range Names() {
		if _, ok := t.records[name]; ok {
			out = append(out, name)
		}
	}

	return out
}
