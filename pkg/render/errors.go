package render

import "errors"

// Sentinel errors for rendering operations.
var (
	ErrInvalidModel  = errors.New("render: model image cannot be decoded")
	ErrInvalidLayout = errors.New("render: invalid layout")
	ErrInvalidColor  = errors.New("render: invalid color")
	ErrFontNotFound  = errors.New("render: font file cannot be loaded")
	ErrEncodeFailed  = errors.New("render: png encoding failed")
)
