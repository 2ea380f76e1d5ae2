package letters

import (
	"math/rand"
	"sort"
)

// Blank is the joker tile, playable as any letter.
const Blank = "?"

// TileInfo describes one letter in the distribution table.
type TileInfo struct {
	Points int
	Count  int
}

// Distribution is the Romanian letter set: point value and tile count per
// letter, plus two blanks. The full set holds 101 tiles.
var Distribution = map[string]TileInfo{
	"A": {1, 11}, "B": {9, 2}, "C": {1, 5}, "D": {2, 4}, "E": {1, 9},
	"F": {8, 2}, "G": {9, 2}, "H": {10, 1}, "I": {1, 10}, "J": {10, 1},
	"L": {1, 4}, "M": {4, 3}, "N": {1, 6}, "O": {1, 5}, "P": {2, 4},
	"R": {1, 7}, "S": {1, 6}, "T": {1, 7}, "U": {1, 6}, "V": {8, 2},
	"X": {10, 1}, "Z": {10, 1}, Blank: {0, 2},
}

// Points returns the point value of a letter, or 0 for unknown letters and
// blanks. Scoring is not implemented by the engine; the table is exported so
// a future scorer can use it.
func Points(letter string) int {
	return Distribution[letter].Points
}

// Build creates a new shuffled bag of at most bagSize tiles.
//
// Letters are taken in canonical (sorted) order, appending each letter's full
// count while the running total stays below bagSize; the letter that would
// overflow contributes only the remaining deficit and iteration stops. The
// result is shuffled with rng, so a fixed seed yields a fixed bag.
func Build(bagSize int, rng *rand.Rand) []string {
	if bagSize <= 0 {
		return []string{}
	}

	keys := make([]string, 0, len(Distribution))
	for letter := range Distribution {
		keys = append(keys, letter)
	}
	sort.Strings(keys)

	bag := make([]string, 0, bagSize)
	for _, letter := range keys {
		count := Distribution[letter].Count
		if remaining := bagSize - len(bag); count > remaining {
			count = remaining
		}
		for i := 0; i < count; i++ {
			bag = append(bag, letter)
		}
		if len(bag) == bagSize {
			break
		}
	}

	rng.Shuffle(len(bag), func(i, j int) {
		bag[i], bag[j] = bag[j], bag[i]
	})

	return bag
}

// Deal removes up to n tiles from the tail of bag. It returns the dealt
// tiles and the remaining bag. An empty or short bag deals what it has.
func Deal(bag []string, n int) (dealt, rest []string) {
	if n < 0 {
		n = 0
	}
	if n > len(bag) {
		n = len(bag)
	}

	cut := len(bag) - n
	dealt = make([]string, n)
	for i := 0; i < n; i++ {
		dealt[i] = bag[len(bag)-1-i]
	}
	rest = bag[:cut]
	return dealt, rest
}

// Return appends tiles back to the bag. No current flow discards or
// exchanges tiles; the operation exists for future extension.
func Return(bag []string, tiles []string) []string {
	return append(bag, tiles...)
}

// TotalCount returns the number of tiles in the full distribution.
func TotalCount() int {
	total := 0
	for _, info := range Distribution {
		total += info.Count
	}
	return total
}
