// Package storage persists session files: uploaded model images,
// uploaded guest lists, and generated batch archives.
//
// Two backends implement the same Storage interface: a local-disk
// backend (the default, since sessions are short-lived) and an
// S3-compatible backend for deployments that park files on object
// storage. Keys are caller-chosen, slash-separated paths scoped per
// session, e.g. "sessions/<id>/model.png".
//
// The package also carries the upload-side MIME sniffing used to accept
// or reject model images and guest lists before they reach storage.
package storage
