package game

// Position is one of the eleven board slots: the eight bagua slots of the
// later-heaven circle plus the three realm slots.
type Position int

const (
	PosKan  Position = iota // north
	PosGen                  // northeast
	PosZhen                 // east
	PosXun                  // southeast
	PosLi                   // south
	PosKun                  // southwest
	PosDui                  // west
	PosQian                 // northwest
	PosEarth
	PosHuman
	PosHeaven
	NumPositions
)

// NoPosition marks an event whose action touched no board slot.
const NoPosition Position = -1

var positionNames = [NumPositions]string{
	"kan", "gen", "zhen", "xun", "li", "kun", "dui", "qian",
	"earth", "human", "heaven",
}

var positionTrigrams = map[Position]Trigram{
	PosKan:  Kan,
	PosGen:  Gen,
	PosZhen: Zhen,
	PosXun:  Xun,
	PosLi:   Li,
	PosKun:  Kun,
	PosDui:  Dui,
	PosQian: Qian,
}

// realmBalanceShift is the balance cost of placing a card on a realm slot.
var realmBalanceShift = map[Position]int{
	PosHeaven: 2,
	PosEarth:  -2,
	PosHuman:  0,
}

func (p Position) Valid() bool {
	return p >= 0 && p < NumPositions
}

func (p Position) String() string {
	if !p.Valid() {
		return "none"
	}
	return positionNames[p]
}

// IsBagua reports whether p is one of the eight trigram slots.
func (p Position) IsBagua() bool {
	_, ok := positionTrigrams[p]
	return ok
}

// IsRealm reports whether p is one of the heaven/human/earth slots.
func (p Position) IsRealm() bool {
	return p == PosHeaven || p == PosHuman || p == PosEarth
}

// TrigramForPosition returns the trigram bound to a bagua slot.
func TrigramForPosition(p Position) (Trigram, bool) {
	t, ok := positionTrigrams[p]
	return t, ok
}

// IsInner reports whether a bagua slot belongs to the inner (cardinal)
// group. The card standing in the inner group supplies the lower trigram of
// the hexagram in play; the outer (corner) group supplies the upper.
func (p Position) IsInner() bool {
	switch p {
	case PosKan, PosZhen, PosLi, PosDui:
		return true
	}
	return false
}

// IsOuter reports whether a bagua slot belongs to the outer (corner) group.
func (p Position) IsOuter() bool {
	switch p {
	case PosGen, PosXun, PosKun, PosQian:
		return true
	}
	return false
}

// Adjacent reports whether a marker may step between p and q in one move.
// Bagua slots connect when their trigrams differ in exactly one line. Heaven
// borders the yang-majority trigrams, earth the yin-majority ones, and the
// human realm mediates between everything. The relation is symmetric.
func Adjacent(p, q Position) bool {
	if p == q || !p.Valid() || !q.Valid() {
		return false
	}
	if p == PosHuman || q == PosHuman {
		return true
	}
	pt, pBagua := positionTrigrams[p]
	qt, qBagua := positionTrigrams[q]
	if pBagua && qBagua {
		return oneLineApart(pt, qt)
	}
	if pBagua != qBagua { // one realm, one bagua
		realm, t := p, qt
		if pBagua {
			realm, t = q, pt
		}
		switch realm {
		case PosHeaven:
			return t.Polarity() > 0
		case PosEarth:
			return t.Polarity() < 0
		}
	}
	// heaven and earth never touch directly
	return false
}

func oneLineApart(a, b Trigram) bool {
	diff := a ^ b
	return diff != 0 && diff&(diff-1) == 0
}

// Neighbors returns every position reachable from p in one move, in slot
// order.
func Neighbors(p Position) []Position {
	var out []Position
	for q := Position(0); q < NumPositions; q++ {
		if Adjacent(p, q) {
			out = append(out, q)
		}
	}
	return out
}
