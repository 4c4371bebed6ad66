// Package load maps a parsed document onto instances of registered schema classifiers.
//
// A Resource runs one load at a time. Each load walks the document depth-first
// with an explicit stack of frames, creates instances as elements resolve to
// classifiers, assigns attribute values immediately and queues cross-references.
// When the document ends the queued references are resolved once against the
// identifier index, and anything left over becomes a warning.
//
// Loads never fail on mapping problems; they are recorded as diagnostics. Only a
// malformed document aborts a load.
package load
