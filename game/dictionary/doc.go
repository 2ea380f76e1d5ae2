// Package dictionary provides word-membership lookup for the word game.
//
// The Manager discovers word lists (plain text, one word per line) in a
// dictionaries directory. Each list is identified by its filename without
// extension and is loaded lazily on first lookup, then cached immutable for
// the lifetime of the process. The cache is safe for concurrent readers.
//
// Lookups are case-insensitive and trim surrounding whitespace, so
// IsValid("casa", "ro") and IsValid(" CASA ", "ro") agree.
//
// The engine does not call the validator during move application; word
// legality is an unimplemented extension point. The validator backs the
// standalone word-check operation.
package dictionary
