// Package file reads theory content files from a local directory.
//
// Content files follow the convention "{theory}.{definitions|theorems}.json"
// and contain either a mapping from content-id to document, or — for
// legacy compatibility — an array of documents each carrying its own id.
// Both shapes normalize to the ordered mapping form.
//
// The package also provides an fsnotify-based watcher that reports
// changed theories so the caller can trigger reloads.
package file
