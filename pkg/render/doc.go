// Package render composites invitee names and table assignments onto a
// model invitation image.
//
// A Renderer is built once per session from the uploaded model image and a
// Layout describing where and how the text is drawn. Rendering one record
// produces a PNG; RenderBatch fans the whole guest list out across a
// bounded worker pool and returns one file per record, named after the
// invitee.
//
// Drawing is done with github.com/fogleman/gg. When no font file is
// configured the library's built-in bitmap face is used, which keeps the
// service usable without bundled assets.
package render
