package manifest

import (
	"context"
	"fmt"
	"strings"

	"github.com/bazel-io/release-updates/internal/domain/artifact"
)

// Store loads and saves the manifest contents.
type Store interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, contents []byte) error
}

// Document is a manifest held in memory while its blocks are rewritten.
type Document struct {
	text string
	opts []Option
}

// NewDocument wraps manifest text. opts are passed to every Patcher it creates.
func NewDocument(text string, opts ...Option) *Document {
	return &Document{
		text: text,
		opts: opts,
	}
}

// Update locates the block of name and rewrites it from table.
func (d *Document) Update(table *artifact.Table, name artifact.Name) (Range, error) {
	rng, err := Locate(d.text, name)
	if err != nil {
		return Range{}, err
	}

	return rng, d.UpdateRange(rng, table, name)
}

// UpdateRange rewrites the block spanning rng. The first occurrence of the
// block's text in the document is replaced.
func (d *Document) UpdateRange(rng Range, table *artifact.Table, name artifact.Name) error {
	old, err := rng.Slice(d.text)
	if err != nil {
		return err
	}

	patched, err := NewPatcher(table, name, d.opts...).Patch(old)
	if err != nil {
		return err
	}

	d.text = strings.Replace(d.text, old, patched, 1)

	return nil
}

// String returns the current manifest text.
func (d *Document) String() string {
	return d.text
}

// Bytes returns the current manifest text as bytes.
func (d *Document) Bytes() []byte {
	return []byte(d.text)
}

// UpdateFile rewrites the block of name spanning rng in the manifest behind store.
func UpdateFile(
	ctx context.Context,
	store Store,
	rng Range,
	table *artifact.Table,
	name artifact.Name,
	opts ...Option,
) error {
	contents, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load manifest: %w", err)
	}

	doc := NewDocument(string(contents), opts...)
	if err = doc.UpdateRange(rng, table, name); err != nil {
		return err
	}

	if err = store.Save(ctx, doc.Bytes()); err != nil {
		return fmt.Errorf("save manifest: %w", err)
	}

	return nil
}
