// Package gallery owns the saved-image state: the in-memory ImageRecord
// table and the download-and-save path for image files.
//
// # Lifecycle
//
// A record is created when a save is requested, before the download is
// attempted. Records are never updated (apart from a one-shot color
// enrichment after a successful write) and never deleted; they live
// until process exit. The image file itself is durable and independent
// of the table, so a record without a file, or a file without a record,
// is an expected state that listings must tolerate.
//
// # Concurrency
//
// The Store is safe for concurrent use. The transport layer usually
// delivers calls sequentially, but nothing here assumes it.
package gallery
