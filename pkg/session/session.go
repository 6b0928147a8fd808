package session

import (
	"time"

	"github.com/dmitrymomot/cardforge/pkg/records"
	"github.com/dmitrymomot/cardforge/pkg/render"
)

// Session correlates one user's uploads with their generated batch.
// All fields are managed under the store's lock; callers mutate a
// session only inside Store.Update.
type Session struct {
	// ID is the opaque session identifier handed to the client.
	ID string `json:"id"`

	// CreatedAt is the session creation time.
	CreatedAt time.Time `json:"created_at"`

	// ModelKey is the storage key of the uploaded model image, empty
	// until a model has been uploaded.
	ModelKey string `json:"-"`

	// ModelName is the original file name of the model image.
	ModelName string `json:"model_name,omitempty"`

	// Records is the current guest list, as extracted or as corrected
	// by the client.
	Records []records.Record `json:"records,omitempty"`

	// Layout is the text layout used for the last generation.
	Layout *render.Layout `json:"layout,omitempty"`

	// ArchiveKey is the storage key of the generated ZIP, empty until
	// a batch has been generated.
	ArchiveKey string `json:"-"`

	// Rendered is the number of files in the generated archive.
	Rendered int `json:"rendered,omitempty"`

	// GeneratedAt is when the archive was produced.
	GeneratedAt time.Time `json:"generated_at,omitzero"`
}

// HasModel reports whether a model image has been uploaded.
func (s *Session) HasModel() bool { return s.ModelKey != "" }

// HasArchive reports whether a batch has been generated.
func (s *Session) HasArchive() bool { return s.ArchiveKey != "" }

// Keys returns all storage keys owned by the session, used by eviction
// cleanup to delete the session's files.
func (s *Session) Keys() []string {
	var keys []string
	if s.ModelKey != "" {
		keys = append(keys, s.ModelKey)
	}
	if s.ArchiveKey != "" {
		keys = append(keys, s.ArchiveKey)
	}
	return keys
}
