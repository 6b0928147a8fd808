package storage_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cardforge/pkg/storage"
)

func TestDetectMIME(t *testing.T) {
	t.Parallel()

	t.Run("detects png", func(t *testing.T) {
		t.Parallel()

		pngHeader := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}
		ct, r := storage.DetectMIME(bytes.NewReader(pngHeader))
		assert.Equal(t, "image/png", ct)

		// The returned reader replays the sniffed bytes.
		replay, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, pngHeader, replay)
	})

	t.Run("strips charset parameter", func(t *testing.T) {
		t.Parallel()

		ct, _ := storage.DetectMIME(strings.NewReader("John Doe = Table 1\n"))
		assert.Equal(t, "text/plain", ct)
	})

	t.Run("short input", func(t *testing.T) {
		t.Parallel()

		ct, r := storage.DetectMIME(strings.NewReader("hi"))
		assert.Equal(t, "text/plain", ct)

		replay, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, "hi", string(replay))
	})
}

func TestAllowedTypes(t *testing.T) {
	t.Parallel()

	assert.True(t, storage.IsAllowedModelType("image/png"))
	assert.True(t, storage.IsAllowedModelType("image/jpeg"))
	assert.False(t, storage.IsAllowedModelType("application/pdf"), "pdf models are not rasterized")
	assert.False(t, storage.IsAllowedModelType("image/gif"))

	assert.True(t, storage.IsAllowedListType("text/plain"))
	assert.True(t, storage.IsAllowedListType("application/pdf"))
	assert.True(t, storage.IsAllowedListType("application/zip"), "docx and xlsx sniff as zip")
	assert.False(t, storage.IsAllowedListType("image/png"))
}
