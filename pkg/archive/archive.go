// Package archive packages rendered invitation batches into ZIP files
// for download.
package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dmitrymomot/cardforge/pkg/render"
)

// ErrNoFiles is returned when a batch has nothing to package.
var ErrNoFiles = errors.New("archive: no files to package")

// Write streams the rendered files into w as a ZIP archive, preserving
// batch order. Entries use Deflate; PNG data barely compresses but the
// archive stays standard.
func Write(w io.Writer, files []render.File) error {
	if len(files) == 0 {
		return ErrNoFiles
	}

	zw := zip.NewWriter(w)
	now := time.Now()

	for _, f := range files {
		hdr := &zip.FileHeader{
			Name:     f.Name,
			Method:   zip.Deflate,
			Modified: now,
		}
		entry, err := zw.CreateHeader(hdr)
		if err != nil {
			return fmt.Errorf("archive: create entry %q: %w", f.Name, err)
		}
		if _, err := entry.Write(f.Data); err != nil {
			return fmt.Errorf("archive: write entry %q: %w", f.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("archive: finalize: %w", err)
	}
	return nil
}

// Bytes packages the rendered files into an in-memory ZIP archive.
func Bytes(files []render.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, files); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
