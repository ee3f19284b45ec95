// Package library keeps copies of imported books in a directory, never
// overwriting an existing file.
package library

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// maxSuffix bounds the search for a free name.
const maxSuffix = 10000

// ErrNoFreeName is returned when every candidate name up to maxSuffix is taken.
var ErrNoFreeName = errors.New("library: no free file name")

// Store persists book files under Dir on an afero filesystem.
type Store struct {
	fs  afero.Fs
	Dir string
}

// New returns a Store rooted at dir on the OS filesystem.
func New(dir string) *Store {
	return NewWithFs(afero.NewOsFs(), dir)
}

// NewWithFs returns a Store rooted at dir on fs.
func NewWithFs(fs afero.Fs, dir string) *Store {
	return &Store{fs: fs, Dir: dir}
}

// UniquePath returns a path in the library for name that does not exist
// yet. When name is taken, "-1", "-2", ... is inserted before the final
// extension: "book.epub" becomes "book-1.epub".
func (s *Store) UniquePath(name string) (string, error) {
	name = filepath.Base(name)
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	candidate := filepath.Join(s.Dir, name)
	for i := 1; i <= maxSuffix; i++ {
		exists, err := afero.Exists(s.fs, candidate)
		if err != nil {
			return "", fmt.Errorf("library: stat %s: %w", candidate, err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = filepath.Join(s.Dir, fmt.Sprintf("%s-%d%s", stem, i, ext))
	}
	return "", fmt.Errorf("%w: %s", ErrNoFreeName, name)
}

// Import writes data into the library under a unique variant of name and
// returns the path written.
func (s *Store) Import(name string, data []byte) (string, error) {
	if err := s.fs.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("library: create %s: %w", s.Dir, err)
	}

	dest, err := s.UniquePath(name)
	if err != nil {
		return "", err
	}

	// O_EXCL so a file created since UniquePath is never overwritten.
	f, err := s.fs.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("library: create %s: %w", dest, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		s.fs.Remove(dest)
		return "", fmt.Errorf("library: write %s: %w", dest, err)
	}
	if err := f.Close(); err != nil {
		s.fs.Remove(dest)
		return "", fmt.Errorf("library: close %s: %w", dest, err)
	}
	return dest, nil
}

// List returns the file names in the library directory.
func (s *Store) List() ([]string, error) {
	infos, err := afero.ReadDir(s.fs, s.Dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("library: read %s: %w", s.Dir, err)
	}
	var names []string
	for _, info := range infos {
		if !info.IsDir() {
			names = append(names, info.Name())
		}
	}
	return names, nil
}
