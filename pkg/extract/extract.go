package extract

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dmitrymomot/cardforge/pkg/records"
)

// Format identifies a supported guest-list file format.
type Format string

const (
	FormatTXT  Format = "txt"
	FormatDocx Format = "docx"
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

// Detect returns the list format for a file name based on its extension.
func Detect(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".text":
		return FormatTXT, nil
	case ".docx":
		return FormatDocx, nil
	case ".pdf":
		return FormatPDF, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

// SupportedExtensions lists the accepted upload extensions.
func SupportedExtensions() []string {
	return []string{".txt", ".docx", ".pdf", ".xlsx"}
}

// Records extracts guest records from an uploaded list file.
//
// Spreadsheets keep their tabular shape and go through the two-column row
// parser; everything else is reduced to plain text first. The returned
// slice preserves source order.
func Records(data []byte, filename string) ([]records.Record, error) {
	format, err := Detect(filename)
	if err != nil {
		return nil, err
	}

	if format == FormatXLSX {
		rows, err := extractRows(data)
		if err != nil {
			return nil, err
		}
		return records.ParseTabular(rows), nil
	}

	text, err := Text(data, filename)
	if err != nil {
		return nil, err
	}
	return records.Parse(text), nil
}

// Text extracts the raw text content of a list file. Spreadsheets are not
// text; use Records for them.
func Text(data []byte, filename string) (string, error) {
	format, err := Detect(filename)
	if err != nil {
		return "", err
	}

	switch format {
	case FormatTXT:
		return string(data), nil
	case FormatDocx:
		return extractDocx(data)
	case FormatPDF:
		return extractPDF(data)
	default:
		return "", fmt.Errorf("%w: %s is not a text format", ErrUnsupportedFormat, format)
	}
}
