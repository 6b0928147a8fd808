package storage

import (
	"bytes"
	"io"
	"net/http"
	"strings"
)

// MIME type constants.
const (
	MIMEOctetStream    = "application/octet-stream"
	mimeDetectionBytes = 512 // http.DetectContentType reads up to 512 bytes
)

// modelImageTypes are the MIME types accepted for model image uploads.
// PDF models are deliberately absent: rasterizing PDF templates is not
// supported.
var modelImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
}

// guestListTypes are the MIME types accepted for guest list uploads.
// docx and xlsx sniff as application/zip; the extension-based format
// dispatch in pkg/extract disambiguates them.
var guestListTypes = map[string]struct{}{
	"text/plain":      {},
	"application/pdf": {},
	"application/zip": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":       {},
}

// DetectMIME sniffs the content type from the reader's first bytes and
// returns the type together with a reader that replays the full stream.
func DetectMIME(r io.Reader) (string, io.Reader) {
	buf := make([]byte, mimeDetectionBytes)
	n, _ := io.ReadFull(r, buf)
	buf = buf[:n]

	contentType := http.DetectContentType(buf)
	// Strip parameters like "; charset=utf-8".
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}

	return contentType, io.MultiReader(bytes.NewReader(buf), r)
}

// IsAllowedModelType reports whether the MIME type is accepted for a
// model image upload.
func IsAllowedModelType(contentType string) bool {
	_, ok := modelImageTypes[contentType]
	return ok
}

// IsAllowedListType reports whether the MIME type is accepted for a
// guest list upload.
func IsAllowedListType(contentType string) bool {
	_, ok := guestListTypes[contentType]
	return ok
}
