// Package filestore delivers generated transfer files to a directory or a stream.
package filestore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DirStore writes transfer files into a directory. Files appear atomically: the
// payload goes to a temporary file in the same directory which is then renamed.
type DirStore struct {
	dir  string
	perm os.FileMode
}

// NewDirStore creates a store rooted at dir, creating the directory if needed.
func NewDirStore(dir string) (*DirStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &DirStore{dir: dir, perm: 0o640}, nil
}

// Save writes payload to <dir>/<name> and returns the path.
func (s *DirStore) Save(ctx context.Context, name string, payload []byte) (string, error) {
	if err := validName(name); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(s.dir, "."+name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write transfer file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to sync transfer file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close transfer file: %w", err)
	}
	if err := os.Chmod(tmpName, s.perm); err != nil {
		return "", fmt.Errorf("failed to set file mode: %w", err)
	}

	target := filepath.Join(s.dir, name)
	if err := os.Rename(tmpName, target); err != nil {
		return "", fmt.Errorf("failed to move transfer file into place: %w", err)
	}
	committed = true
	return target, nil
}

func validName(name string) error {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name {
		return fmt.Errorf("invalid transfer file name %q", name)
	}
	return nil
}

// WriterStore writes transfer files to a stream such as stdout.
type WriterStore struct {
	w     io.Writer
	label string
}

// NewWriterStore returns a store that writes every payload to w. label is reported
// as the location.
func NewWriterStore(w io.Writer, label string) *WriterStore {
	return &WriterStore{w: w, label: label}
}

func (s *WriterStore) Save(ctx context.Context, _ string, payload []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	n, err := s.w.Write(payload)
	if err == nil && n != len(payload) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return "", fmt.Errorf("failed to write transfer file to %s: %w", s.label, err)
	}
	return s.label, nil
}
