package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Local is a filesystem-backed Storage rooted at a base directory.
// Suitable for single-instance deployments where session files are
// short-lived anyway.
type Local struct {
	base string
}

// NewLocal creates a local storage rooted at base, creating the
// directory if needed.
func NewLocal(base string) (*Local, error) {
	if base == "" {
		return nil, fmt.Errorf("%w: empty base directory", ErrInvalidConfig)
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return &Local{base: base}, nil
}

// Healthcheck verifies the base directory is still there, for readiness
// checks.
func (l *Local) Healthcheck(_ context.Context) error {
	info, err := os.Stat(l.base)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrInvalidConfig, l.base)
	}
	return nil
}

// Put stores the reader's content under key.
func (l *Local) Put(_ context.Context, key string, r io.Reader, _ int64) (*Blob, error) {
	path, err := l.resolve(key)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	contentType, body := DetectMIME(r)

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	written, err := io.Copy(f, body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	return &Blob{Key: key, ContentType: contentType, Size: written}, nil
}

// Get opens the file at key.
func (l *Local) Get(_ context.Context, key string) (io.ReadCloser, error) {
	path, err := l.resolve(key)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", key, err)
	}
	return f, nil
}

// Delete removes the file at key. Missing files are not an error.
func (l *Local) Delete(_ context.Context, key string) error {
	path, err := l.resolve(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %v", ErrDeleteFailed, err)
	}
	return nil
}

// DeletePrefix removes every file under a key prefix, used by session
// cleanup to drop a whole working directory in one call.
func (l *Local) DeletePrefix(_ context.Context, prefix string) error {
	path, err := l.resolve(prefix)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("%w: %v", ErrDeleteFailed, err)
	}
	return nil
}

// resolve maps a storage key onto the base directory, rejecting keys
// that would escape it.
func (l *Local) resolve(key string) (string, error) {
	if key == "" || strings.Contains(key, "\\") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	for part := range strings.SplitSeq(key, "/") {
		if part == "" || part == "." || part == ".." {
			return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
		}
	}
	return filepath.Join(l.base, filepath.FromSlash(key)), nil
}
