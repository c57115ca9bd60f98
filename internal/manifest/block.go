package manifest

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// checksumPattern matches the sha256 field; group 1 is the digest.
	checksumPattern = regexp.MustCompile(`sha256 = "(.+?)",`)
	// urlsOpenPattern matches a urls list whose entries start on the next line.
	urlsOpenPattern = regexp.MustCompile(`urls = \[\s*$`)
	// urlsClosePattern matches the line closing a urls list.
	urlsClosePattern = regexp.MustCompile(`^\s*\],`)
	// entryPattern splits a list line into indentation, url literal and the rest.
	entryPattern = regexp.MustCompile(`^(\s*)"([^"]*)"(,.*)$`)
)

// Block is a parsed declaration block. Lines outside the checksum field and
// the urls list are kept verbatim.
type Block struct {
	lines []string

	// checksumLine is the index in lines of the sha256 field.
	checksumLine int
	// checksum is the current digest value.
	checksum string

	// urlsOpen and urlsClose are the indexes of the `urls = [` and `],` lines.
	urlsOpen  int
	urlsClose int
	// URLs are the lines between urlsOpen and urlsClose.
	URLs URLList
}

// URLList is the ordered content of a urls list.
type URLList []Entry

// Entry is one line of a urls list. Lines that are not string literals
// (comments, blanks) have an empty URL and are re-emitted from Raw.
type Entry struct {
	Indent string
	URL    string
	// Suffix is everything after the closing quote, starting with the comma.
	Suffix string
	Raw    string

	literal bool
}

// NewEntry returns a url literal line.
func NewEntry(indent, url string) Entry {
	return Entry{
		Indent:  indent,
		URL:     url,
		Suffix:  ",",
		literal: true,
	}
}

// NewEntryLike returns a url literal line with the indentation and line
// ending of neighbor.
func NewEntryLike(neighbor Entry, url string) Entry {
	entry := NewEntry(neighbor.Indent, url)
	if strings.HasSuffix(neighbor.Suffix, "\r") {
		entry.Suffix += "\r"
	}

	return entry
}

// ParseBlock parses block text into a Block.
func ParseBlock(text string) (*Block, error) {
	b := &Block{
		lines:        strings.Split(text, "\n"),
		checksumLine: -1,
		urlsOpen:     -1,
		urlsClose:    -1,
	}

	for i, line := range b.lines {
		matches := checksumPattern.FindAllStringSubmatch(line, -1)
		if len(matches) == 0 {
			continue
		}

		if b.checksumLine >= 0 || len(matches) > 1 {
			return nil, fmt.Errorf("%w: found more than one", ErrChecksumField)
		}

		b.checksumLine = i
		b.checksum = matches[0][1]
	}

	if b.checksumLine < 0 {
		return nil, fmt.Errorf("%w: found none", ErrChecksumField)
	}

	if err := b.parseURLs(); err != nil {
		return nil, err
	}

	return b, nil
}

// parseURLs finds the first multi-line urls list and splits its entries.
func (b *Block) parseURLs() error {
	for i, line := range b.lines {
		if b.urlsOpen < 0 {
			if urlsOpenPattern.MatchString(line) {
				b.urlsOpen = i
			}

			continue
		}

		if urlsClosePattern.MatchString(line) {
			b.urlsClose = i
			break
		}

		b.URLs = append(b.URLs, parseEntry(line))
	}

	if b.urlsOpen < 0 || b.urlsClose < 0 {
		return ErrURLList
	}

	return nil
}

// parseEntry splits one list line.
func parseEntry(line string) Entry {
	m := entryPattern.FindStringSubmatch(line)
	if m == nil {
		return Entry{Raw: line}
	}

	return Entry{
		Indent:  m[1],
		URL:     m[2],
		Suffix:  m[3],
		Raw:     line,
		literal: true,
	}
}

// SetChecksum replaces the sha256 field value.
func (b *Block) SetChecksum(checksum string) {
	line := b.lines[b.checksumLine]
	loc := checksumPattern.FindStringSubmatchIndex(line)

	b.lines[b.checksumLine] = line[:loc[2]] + checksum + line[loc[3]:]
	b.checksum = checksum
}

// String renders the block, re-emitting unchanged lines byte for byte.
func (b *Block) String() string {
	out := make([]string, 0, len(b.lines)+1)
	out = append(out, b.lines[:b.urlsOpen+1]...)

	for _, entry := range b.URLs {
		out = append(out, entry.String())
	}

	out = append(out, b.lines[b.urlsClose:]...)

	return strings.Join(out, "\n")
}

// IsLiteral reports whether the entry is a quoted url.
func (e Entry) IsLiteral() bool {
	return e.literal
}

func (e Entry) String() string {
	if !e.IsLiteral() {
		return e.Raw
	}

	return e.Indent + `"` + e.URL + `"` + e.Suffix
}

// Index returns the position of the first literal whose url starts with prefix, or -1.
func (l URLList) Index(prefix string) int {
	for i, entry := range l {
		if entry.IsLiteral() && strings.HasPrefix(entry.URL, prefix) {
			return i
		}
	}

	return -1
}

// IndexSuffix returns the position of the first literal whose url ends with suffix, or -1.
func (l URLList) IndexSuffix(suffix string) int {
	for i, entry := range l {
		if entry.IsLiteral() && strings.HasSuffix(entry.URL, suffix) {
			return i
		}
	}

	return -1
}

// WithoutPrefix returns the list minus every literal whose url starts with prefix.
func (l URLList) WithoutPrefix(prefix string) URLList {
	out := make(URLList, 0, len(l))

	for _, entry := range l {
		if entry.IsLiteral() && strings.HasPrefix(entry.URL, prefix) {
			continue
		}

		out = append(out, entry)
	}

	return out
}

// InsertAfter returns the list with entry inserted right after position i.
func (l URLList) InsertAfter(i int, entry Entry) URLList {
	out := make(URLList, 0, len(l)+1)
	out = append(out, l[:i+1]...)
	out = append(out, entry)
	out = append(out, l[i+1:]...)

	return out
}
