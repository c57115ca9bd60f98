package manifest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bazel-io/release-updates/internal/domain/artifact"
)

// TestParseBlock_RoundTrip verifies that an untouched block renders byte for byte.
func TestParseBlock_RoundTrip(t *testing.T) {
	t.Parallel()

	text := `    maybe(
        http_archive,
        name = "remote_java_tools",
        sha256 = "abc",  # pinned
        urls = [
            # primary
            "https://mirror.bazel.build/bazel_java_tools/releases/java/v1.0/java_tools-v1.0.zip",

            "https://github.com/bazelbuild/java_tools/releases/download/java_1.0/java_tools-1.0.zip",  # secondary
        ],
        build_file = "@rules_java//:BUILD.java_tools",
    )`

	b, err := ParseBlock(text)
	require.NoError(t, err)
	require.Equal(t, "abc", b.checksum)
	require.Equal(t, text, b.String())

	require.Len(t, b.URLs, 4)
	require.False(t, b.URLs[0].IsLiteral())
	require.True(t, b.URLs[1].IsLiteral())
	require.False(t, b.URLs[2].IsLiteral())
	require.Equal(t, ",  # secondary", b.URLs[3].Suffix)
	require.Equal(t, "            ", b.URLs[1].Indent)
}

// TestParseBlock_Errors covers missing or ambiguous fields.
func TestParseBlock_Errors(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		text string
		want error
	}{
		"no checksum": {
			text: "maybe(\n    urls = [\n        \"u\",\n    ],\n)",
			want: ErrChecksumField,
		},
		"two checksums": {
			text: "maybe(\n    sha256 = \"a\",\n    sha256 = \"b\",\n    urls = [\n    ],\n)",
			want: ErrChecksumField,
		},
		"single line urls": {
			text: "maybe(\n    sha256 = \"a\",\n    urls = [\"u\"],\n)",
			want: ErrURLList,
		},
		"unterminated urls": {
			text: "maybe(\n    sha256 = \"a\",\n    urls = [\n        \"u\",\n)",
			want: ErrURLList,
		},
	}

	for name, tc := range cases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			b, err := ParseBlock(tc.text)
			require.ErrorIs(t, err, tc.want)
			require.Nil(t, b)
		})
	}
}

// TestBlock_SetChecksum is idempotent and touches only the digest.
func TestBlock_SetChecksum(t *testing.T) {
	t.Parallel()

	text := trimBlock(block(artifact.JavaTools, "old", "1.0", false))

	b, err := ParseBlock(text)
	require.NoError(t, err)

	b.SetChecksum("new")
	once := b.String()

	b.SetChecksum("new")
	require.Equal(t, once, b.String())
	require.Equal(t, trimBlock(block(artifact.JavaTools, "new", "1.0", false)), once)
}

// TestNewEntryLike copies indentation and a CRLF line ending.
func TestNewEntryLike(t *testing.T) {
	t.Parallel()

	crlf := parseEntry("    \"https://mirror.example/a.zip\",\r")
	require.Equal(t, "    \"https://code.example/b.zip\",\r", NewEntryLike(crlf, "https://code.example/b.zip").String())

	lf := parseEntry("  \"https://mirror.example/a.zip\",  # primary")
	require.Equal(t, "  \"https://code.example/b.zip\",", NewEntryLike(lf, "https://code.example/b.zip").String())
}

// TestURLList_Helpers exercises lookup, removal and insertion.
func TestURLList_Helpers(t *testing.T) {
	t.Parallel()

	urls := URLList{
		NewEntry("  ", "https://mirror.example/a.zip"),
		{Raw: "  # note"},
		NewEntry("  ", "https://code.example/b.zip"),
	}

	require.Equal(t, 0, urls.Index("https://mirror.example"))
	require.Equal(t, -1, urls.Index("  # note"))
	require.Equal(t, 2, urls.IndexSuffix("/b.zip"))
	require.Equal(t, -1, urls.IndexSuffix("/c.zip"))
	require.Equal(t, -1, urls.IndexSuffix("note"))

	trimmed := urls.WithoutPrefix("https://code.example")
	require.Len(t, trimmed, 2)
	require.Len(t, urls, 3)

	inserted := trimmed.InsertAfter(0, NewEntry("  ", "https://code.example/c.zip"))
	require.Equal(t, []string{
		`  "https://mirror.example/a.zip",`,
		`  "https://code.example/c.zip",`,
		"  # note",
	}, []string{inserted[0].String(), inserted[1].String(), inserted[2].String()})
}
