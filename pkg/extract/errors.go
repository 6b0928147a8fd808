package extract

import "errors"

// Sentinel errors for extraction operations.
var (
	ErrUnsupportedFormat = errors.New("extract: unsupported file format")
	ErrCorruptDocument   = errors.New("extract: document cannot be read")
	ErrNoWorksheet       = errors.New("extract: workbook has no worksheets")
)
