package game

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// Oracle produces hexagram draws for the divine action. Draws are six
// independent line casts with a configurable yang probability. The same seed
// and call count always reproduce the same sequence.
type Oracle struct {
	rng      *rand.Rand
	yangBias float64
	draws    int
}

// NewOracle seeds an oracle. bias is the per-line probability of yang;
// values outside (0,1) fall back to the even default.
func NewOracle(seed uint64, bias float64) *Oracle {
	if bias <= 0 || bias >= 1 {
		bias = 0.5
	}
	return &Oracle{
		rng:      rand.New(rand.NewSource(seed)),
		yangBias: bias,
	}
}

// Draw casts six lines and returns the cataloged hexagram.
func (o *Oracle) Draw() Hexagram {
	var lines [6]Line
	for i := range lines {
		if o.rng.Float64() < o.yangBias {
			lines[i] = Yang
		}
	}
	o.draws++
	h, err := HexagramFromLines(lines)
	if err != nil {
		panic(fmt.Sprintf("oracle cast uncataloged lines: %v", err))
	}
	return h
}

// Draws returns how many casts have been made.
func (o *Oracle) Draws() int {
	return o.draws
}
