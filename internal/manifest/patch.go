package manifest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bazel-io/release-updates/internal/domain/artifact"
)

const (
	// DefaultMirrorPrefix identifies the mirror download entry.
	DefaultMirrorPrefix = "https://mirror.bazel.build"
	// DefaultSourceControlPrefix identifies code host download entries.
	DefaultSourceControlPrefix = "https://github.com"
	// DefaultReleaseHost is the project serving java_tools release archives.
	DefaultReleaseHost = "https://github.com/bazelbuild/java_tools"
)

// archivePattern matches the release archive part of a mirror url.
var archivePattern = regexp.MustCompile(`release.*\.zip`)

// Hosts configures which urls the patcher treats as mirror and code host entries.
type Hosts struct {
	// Mirror is the prefix of the always-present mirror url.
	Mirror string
	// SourceControl is the prefix of code host urls, dropped for release candidates.
	SourceControl string
	// Release is the code host project whose releases/download urls are inserted.
	Release string
}

// DefaultHosts returns the hosts used by the java_tools release.
func DefaultHosts() Hosts {
	return Hosts{
		Mirror:        DefaultMirrorPrefix,
		SourceControl: DefaultSourceControlPrefix,
		Release:       DefaultReleaseHost,
	}
}

// Patcher rewrites the declaration block of one artifact.
type Patcher struct {
	table *artifact.Table
	name  artifact.Name
	hosts Hosts
}

// Option configures a Patcher.
type Option func(*Patcher)

// WithHosts overrides the mirror and code host prefixes. Empty fields keep their defaults.
func WithHosts(hosts Hosts) Option {
	return func(p *Patcher) {
		if hosts.Mirror != "" {
			p.hosts.Mirror = hosts.Mirror
		}

		if hosts.SourceControl != "" {
			p.hosts.SourceControl = hosts.SourceControl
		}

		if hosts.Release != "" {
			p.hosts.Release = hosts.Release
		}
	}
}

// NewPatcher returns a patcher for the block of name, using table for the new values.
func NewPatcher(table *artifact.Table, name artifact.Name, opts ...Option) *Patcher {
	p := &Patcher{
		table: table,
		name:  name,
		hosts: DefaultHosts(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Patch returns block with the checksum, the urls list and the archive path
// updated for the new release.
func (p *Patcher) Patch(block string) (string, error) {
	record, err := p.table.Get(p.name)
	if err != nil {
		return "", err
	}

	b, err := ParseBlock(block)
	if err != nil {
		return "", fmt.Errorf("%s: %w", p.name, err)
	}

	b.SetChecksum(record.Checksum)

	if p.table.IsReleaseCandidate() {
		b.URLs = b.URLs.WithoutPrefix(p.hosts.SourceControl)
	} else if err = p.addReleaseURL(b); err != nil {
		return "", fmt.Errorf("%s: %w", p.name, err)
	}

	if err = p.substituteArchive(b.URLs, record.Path); err != nil {
		return "", fmt.Errorf("%s: %w", p.name, err)
	}

	return b.String(), nil
}

// ReleaseURL returns the code host download url of the artifact for version.
func (p *Patcher) ReleaseURL(version string) string {
	return fmt.Sprintf("%s/releases/download/java_%s/%s-%s.zip", p.hosts.Release, version, p.name, version)
}

// addReleaseURL leaves exactly one code host entry, right after the mirror entry.
func (p *Patcher) addReleaseURL(b *Block) error {
	version, err := p.table.Version()
	if err != nil {
		return err
	}

	urls := b.URLs.WithoutPrefix(p.hosts.SourceControl)

	mirror := urls.Index(p.hosts.Mirror)
	if mirror < 0 {
		return fmt.Errorf("%w: no entry starts with %s", ErrMirrorEntry, p.hosts.Mirror)
	}

	b.URLs = urls.InsertAfter(mirror, NewEntryLike(urls[mirror], p.ReleaseURL(version)))

	return nil
}

// substituteArchive points the first non code host url naming a release archive at path.
// A url already ending with path means an earlier run did it.
func (p *Patcher) substituteArchive(urls URLList, path string) error {
	if i := urls.IndexSuffix("/" + path); i >= 0 && !strings.HasPrefix(urls[i].URL, p.hosts.SourceControl) {
		return nil
	}

	for i, entry := range urls {
		if !entry.IsLiteral() || strings.HasPrefix(entry.URL, p.hosts.SourceControl) {
			continue
		}

		loc := archivePattern.FindStringIndex(entry.URL)
		if loc == nil {
			continue
		}

		urls[i].URL = entry.URL[:loc[0]] + path + entry.URL[loc[1]:]

		return nil
	}

	return ErrArchiveName
}
