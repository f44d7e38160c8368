// Package storage keeps candidate portraits in a local directory.
package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// AllowedExtensions are the accepted portrait file types (lower case, no dot)
var AllowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
}

var ErrInvalidFilename = errors.New("invalid file name")

// AllowedFile reports whether filename has an allowed image extension
func AllowedFile(filename string) bool {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return false
	}
	return AllowedExtensions[strings.ToLower(filename[i+1:])]
}

// SanitizeFilename strips directory components and any character outside
// [A-Za-z0-9._-]; whitespace becomes "_" and leading dots or underscores
// are removed. The result never contains a path separator.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}

	var b strings.Builder
	lastUnderscore := false
	for _, r := range name {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '-'):
			b.WriteRune(r)
			lastUnderscore = false
		case r == '_' || unicode.IsSpace(r):
			if !lastUnderscore {
				b.WriteRune('_')
				lastUnderscore = true
			}
		}
	}

	out := strings.TrimLeft(b.String(), "._")
	out = strings.TrimRight(out, "_")
	return out
}

// LocalImageStore saves files under a single directory
type LocalImageStore struct {
	dir string
}

// NewLocalImageStore creates the directory if needed
func NewLocalImageStore(dir string) (*LocalImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %s: %w", dir, err)
	}
	return &LocalImageStore{dir: dir}, nil
}

// Save writes r under a unique name built from the sanitized filename and
// returns the stored name
func (s *LocalImageStore) Save(filename string, r io.Reader) (string, error) {
	base := SanitizeFilename(filename)
	if base == "" {
		return "", ErrInvalidFilename
	}
	name := uuid.NewString() + "_" + base

	path := filepath.Join(s.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", err
	}
	return name, nil
}

// Delete removes a stored file; a missing file is not an error
func (s *LocalImageStore) Delete(name string) error {
	clean := SanitizeFilename(name)
	if clean == "" || clean != name {
		return ErrInvalidFilename
	}

	err := os.Remove(filepath.Join(s.dir, clean))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
