// Package session holds the short-lived, in-process state that ties an
// uploaded model image, an extracted guest list, and the generated batch
// archive together.
//
// Sessions live only in memory and expire on a TTL. An eviction callback
// lets the caller delete the session's stored files when the session
// goes away, whether through expiry, explicit deletion, or store
// shutdown. There is deliberately no external persistence: a lost
// session simply means re-uploading.
package session
