package game

import "fmt"

// Hexagram is one of the 64 six-line figures. Values are handed out by the
// catalog; construct them through HexagramFromLines or the transform
// functions, never by hand.
type Hexagram struct {
	id    int     // catalog identity, 1..64
	lines [6]Line // bottom-up
}

// NumHexagrams is the size of the catalog.
const NumHexagrams = 64

// catalog is indexed by identity-1. Built once at init; immutable afterwards.
var catalog [NumHexagrams]Hexagram

// byPattern maps the 6-bit line pattern (bit 0 = bottom line) to identity.
var byPattern [NumHexagrams]int

func init() {
	// Identity 1 is the all-yang figure and identities descend with the
	// binary value of the yang bits, so flipping the bottom line of #1
	// yields #2. Every 6-bit pattern is cataloged exactly once.
	for pattern := 0; pattern < NumHexagrams; pattern++ {
		id := NumHexagrams - pattern
		var lines [6]Line
		for i := 0; i < 6; i++ {
			lines[i] = Line(pattern>>i) & 1
		}
		catalog[id-1] = Hexagram{id: id, lines: lines}
		byPattern[pattern] = id
	}
}

// HexagramFromLines looks up the figure for six lines given bottom-up.
// Lines outside {Yin, Yang} fail with ErrInvalidHexagramSpec.
func HexagramFromLines(lines [6]Line) (Hexagram, error) {
	pattern := 0
	for i, l := range lines {
		if !l.Valid() {
			return Hexagram{}, fmt.Errorf("%w: line %d is %d", ErrInvalidHexagramSpec, i, l)
		}
		pattern |= int(l) << i
	}
	return catalog[byPattern[pattern]-1], nil
}

// HexagramByID returns the cataloged figure for identity 1..64.
func HexagramByID(id int) (Hexagram, error) {
	if id < 1 || id > NumHexagrams {
		return Hexagram{}, fmt.Errorf("%w: identity %d out of range", ErrInvalidHexagramSpec, id)
	}
	return catalog[id-1], nil
}

// HexagramFromTrigrams composes a figure from its lower and upper halves.
func HexagramFromTrigrams(lower, upper Trigram) Hexagram {
	var lines [6]Line
	for i := 0; i < 3; i++ {
		lines[i] = lower.Line(i)
		lines[i+3] = upper.Line(i)
	}
	h, err := HexagramFromLines(lines)
	if err != nil {
		panic(err) // trigrams are already validated
	}
	return h
}

// ID returns the catalog identity, 1..64, or 0 for the zero value.
func (h Hexagram) ID() int {
	return h.id
}

// Lines returns the six lines bottom-up.
func (h Hexagram) Lines() [6]Line {
	return h.lines
}

// Line returns the line at index i (0 = bottom, 5 = top).
func (h Hexagram) Line(i int) Line {
	return h.lines[i]
}

// Lower returns the inner trigram (lines 0..2).
func (h Hexagram) Lower() Trigram {
	t, _ := TrigramFromLines([3]Line{h.lines[0], h.lines[1], h.lines[2]})
	return t
}

// Upper returns the outer trigram (lines 3..5).
func (h Hexagram) Upper() Trigram {
	t, _ := TrigramFromLines([3]Line{h.lines[3], h.lines[4], h.lines[5]})
	return t
}

// Opposite returns the figure with every line inverted.
func (h Hexagram) Opposite() Hexagram {
	out, _ := Transform(h, FullLineSet())
	return out
}

// ChangedLines returns the indices at which h and other differ.
func (h Hexagram) ChangedLines(other Hexagram) LineSet {
	var set LineSet
	for i := 0; i < 6; i++ {
		if h.lines[i] != other.lines[i] {
			set = set.With(i)
		}
	}
	return set
}

func (h Hexagram) String() string {
	return fmt.Sprintf("#%d %s/%s", h.id, h.Upper(), h.Lower())
}
