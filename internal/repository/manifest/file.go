package manifest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// defaultFileMode is used when the manifest does not exist yet.
const defaultFileMode fs.FileMode = 0o644

// ErrNotFound is returned when the manifest file does not exist.
var ErrNotFound = errors.New("manifest not found")

// FileRepository stores the manifest as a file on disk.
type FileRepository struct {
	// path is the filesystem location of the manifest.
	path string
	// mu serializes loads and saves issued through this repository.
	mu sync.Mutex
}

// NewFileRepository creates a repository for the manifest at path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Load reads the manifest contents.
func (r *FileRepository) Load(_ context.Context) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, r.path)
		}

		return nil, fmt.Errorf("read manifest: %w", err)
	}

	return contents, nil
}

// Save replaces the manifest contents. The file is renamed into place so a
// failed write leaves the previous contents intact.
func (r *FileRepository) Save(_ context.Context, contents []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	mode := defaultFileMode
	if info, err := os.Stat(r.path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), "."+filepath.Base(r.path)+".*")
	if err != nil {
		return fmt.Errorf("create temporary manifest: %w", err)
	}

	tmpName := tmp.Name()

	// Best-effort cleanup; after a successful rename the file is already gone.
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err = tmp.Write(contents); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temporary manifest: %w", err)
	}

	if err = tmp.Chmod(mode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temporary manifest: %w", err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temporary manifest: %w", err)
	}

	if err = os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("replace manifest: %w", err)
	}

	return nil
}
