// Package letters models the shared letter supply for the word game.
//
// The package owns the Romanian tile distribution table and the operations
// on a bag of tiles:
//   - Build creates a shuffled bag truncated to a requested size
//   - Deal removes tiles from the tail of a bag
//   - Return appends tiles back for future exchange support
//
// Determinism:
//
// Build takes an explicit *rand.Rand so that tests can fix a seed and get a
// reproducible bag. Deal and Return are pure slice operations.
package letters
