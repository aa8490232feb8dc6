// Package uploads stores uploaded files on local disk under the static tree.
package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ErrUnsafeName is returned for names that would escape the upload directory.
var ErrUnsafeName = errors.New("unsafe upload name")

// LocalStore writes files into Dir and serves them under PublicPrefix.
type LocalStore struct {
	Dir          string // e.g. static/uploads
	PublicPrefix string // e.g. /static/uploads
}

// NewLocalStore creates the upload directory if needed.
// POST: dir exists
func NewLocalStore(dir, publicPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{Dir: dir, PublicPrefix: strings.TrimRight(publicPrefix, "/")}, nil
}

// Save copies r into a new file called name and returns its public path.
// An existing file with the same name is never overwritten.
// PRE: name is a sanitized base name
// POST: File exists on disk, or nothing was left behind
func (s *LocalStore) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", ErrUnsafeName
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	full := filepath.Join(s.Dir, name)
	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(full)
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(full)
		return "", fmt.Errorf("close %s: %w", name, err)
	}
	return path.Join(s.PublicPrefix, name), nil
}

// Remove deletes a stored file by public path. Missing files are not an error.
func (s *LocalStore) Remove(_ context.Context, publicPath string) error {
	name := path.Base(publicPath)
	if name == "." || name == "/" {
		return ErrUnsafeName
	}
	err := os.Remove(filepath.Join(s.Dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
