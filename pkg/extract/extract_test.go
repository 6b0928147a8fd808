package extract_test

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/dmitrymomot/cardforge/pkg/extract"
	"github.com/dmitrymomot/cardforge/pkg/records"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		filename string
		format   extract.Format
		wantErr  bool
	}{
		{filename: "guests.txt", format: extract.FormatTXT},
		{filename: "guests.TXT", format: extract.FormatTXT},
		{filename: "guests.docx", format: extract.FormatDocx},
		{filename: "guests.pdf", format: extract.FormatPDF},
		{filename: "guests.xlsx", format: extract.FormatXLSX},
		{filename: "guests.doc", wantErr: true},
		{filename: "guests.csv", wantErr: true},
		{filename: "guests", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			t.Parallel()

			format, err := extract.Detect(tt.filename)
			if tt.wantErr {
				require.ErrorIs(t, err, extract.ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.format, format)
		})
	}
}

func TestRecordsFromText(t *testing.T) {
	t.Parallel()

	data := []byte("John Doe = Table 1\nJane Smith : Table 5\nListe\n")

	recs, err := extract.Records(data, "guests.txt")
	require.NoError(t, err)

	assert.Equal(t, []records.Record{
		{Name: "John Doe", Table: "Table 1"},
		{Name: "Jane Smith", Table: "Table 5"},
	}, recs)
}

func TestRecordsFromDocx(t *testing.T) {
	t.Parallel()

	doc := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>John Doe = Table 1</w:t></w:r></w:p>
    <w:p><w:r><w:t>Alice</w:t><w:tab/><w:t>Table 2</w:t></w:r></w:p>
    <w:p><w:r><w:t>Liste</w:t></w:r></w:p>
    <w:p/>
  </w:body>
</w:document>`

	recs, err := extract.Records(buildDocx(t, doc), "guests.docx")
	require.NoError(t, err)

	assert.Equal(t, []records.Record{
		{Name: "John Doe", Table: "Table 1"},
		{Name: "Alice", Table: "Table 2"},
	}, recs)
}

func TestRecordsFromDocxSplitRuns(t *testing.T) {
	t.Parallel()

	// Word splits a single typed line across runs after edits; the
	// paragraph must still come out as one line.
	doc := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>John </w:t></w:r><w:r><w:t>Doe = </w:t></w:r><w:r><w:t>Table 1</w:t></w:r></w:p>
  </w:body>
</w:document>`

	recs, err := extract.Records(buildDocx(t, doc), "guests.docx")
	require.NoError(t, err)

	assert.Equal(t, []records.Record{
		{Name: "John Doe", Table: "Table 1"},
	}, recs)
}

func TestRecordsFromCorruptDocx(t *testing.T) {
	t.Parallel()

	_, err := extract.Records([]byte("not a zip archive"), "guests.docx")
	assert.ErrorIs(t, err, extract.ErrCorruptDocument)
}

func TestRecordsFromDocxMissingDocument(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/other.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte("<x/>"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = extract.Records(buf.Bytes(), "guests.docx")
	assert.ErrorIs(t, err, extract.ErrCorruptDocument)
}

func TestRecordsFromXLSX(t *testing.T) {
	t.Parallel()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(sheet, "A1", "Liste"))
	require.NoError(t, f.SetCellValue(sheet, "A2", "John Doe"))
	require.NoError(t, f.SetCellValue(sheet, "B2", "Table 1"))
	require.NoError(t, f.SetCellValue(sheet, "A3", "Jane Smith = Table 5"))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	recs, err := extract.Records(buf.Bytes(), "guests.xlsx")
	require.NoError(t, err)

	assert.Equal(t, []records.Record{
		{Name: "John Doe", Table: "Table 1"},
		{Name: "Jane Smith", Table: "Table 5"},
	}, recs)
}

func TestRecordsFromCorruptPDF(t *testing.T) {
	t.Parallel()

	_, err := extract.Records([]byte("%PDF-1.4 garbage"), "guests.pdf")
	assert.ErrorIs(t, err, extract.ErrCorruptDocument)
}

func TestTextRejectsSpreadsheet(t *testing.T) {
	t.Parallel()

	_, err := extract.Text(nil, "guests.xlsx")
	assert.ErrorIs(t, err, extract.ErrUnsupportedFormat)
}

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	return buf.Bytes()
}
