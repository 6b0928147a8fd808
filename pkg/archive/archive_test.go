package archive_test

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cardforge/pkg/archive"
	"github.com/dmitrymomot/cardforge/pkg/render"
)

func TestBytes(t *testing.T) {
	t.Parallel()

	files := []render.File{
		{Name: "001-john-doe.png", Data: []byte("png-one")},
		{Name: "002-jane-smith.png", Data: []byte("png-two")},
	}

	data, err := archive.Bytes(files)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)

	// Entry order must match batch order.
	assert.Equal(t, "001-john-doe.png", zr.File[0].Name)
	assert.Equal(t, "002-jane-smith.png", zr.File[1].Name)

	rc, err := zr.File[1].Open()
	require.NoError(t, err)
	defer rc.Close()

	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-two"), content)
}

func TestBytesEmptyBatch(t *testing.T) {
	t.Parallel()

	_, err := archive.Bytes(nil)
	assert.ErrorIs(t, err, archive.ErrNoFiles)
}
