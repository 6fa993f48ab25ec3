// Package ttscache persists synthesized audio fragments in a local SQLite
// database so re-running a document does not repeat paid synthesis calls.
// Entries are keyed by a digest of model, voice, and chunk text, and pruned
// by age.
package ttscache
