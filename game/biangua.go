package game

import (
	"fmt"
	"strings"
)

// LineSet is a set of changing-line indices in [0,6), encoded as a bitmask.
type LineSet uint8

const lineSetMask = 0b111111

// FullLineSet returns the set containing all six line indices.
func FullLineSet() LineSet {
	return lineSetMask
}

// With returns the set extended with index i.
func (s LineSet) With(i int) LineSet {
	return s | 1<<i
}

// Has reports whether index i is in the set.
func (s LineSet) Has(i int) bool {
	return s&(1<<i) != 0
}

// Empty reports whether no lines are set.
func (s LineSet) Empty() bool {
	return s&lineSetMask == 0
}

// Count returns the number of changing lines in the set.
func (s LineSet) Count() int {
	n := 0
	for i := 0; i < 6; i++ {
		if s.Has(i) {
			n++
		}
	}
	return n
}

func (s LineSet) Valid() bool {
	return s&^LineSet(lineSetMask) == 0
}

func (s LineSet) String() string {
	var parts []string
	for i := 0; i < 6; i++ {
		if s.Has(i) {
			parts = append(parts, fmt.Sprintf("%d", i))
		}
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// Transform applies the biangua rule: flip every changing line of source and
// look the result up in the catalog. The empty set is the identity; the full
// set yields the source's opposite. Applying the same set twice restores the
// source.
func Transform(source Hexagram, changing LineSet) (Hexagram, error) {
	if source.id == 0 {
		return Hexagram{}, fmt.Errorf("%w: zero-value source", ErrInvalidHexagramSpec)
	}
	if !changing.Valid() {
		return Hexagram{}, fmt.Errorf("%w: changing lines %08b out of range", ErrInvalidHexagramSpec, uint8(changing))
	}
	lines := source.lines
	for i := 0; i < 6; i++ {
		if changing.Has(i) {
			lines[i] = lines[i].Flip()
		}
	}
	return HexagramFromLines(lines)
}
