package game

// Line is a single yao: yin (broken) or yang (solid).
type Line uint8

const (
	Yin  Line = 0
	Yang Line = 1
)

func (l Line) Valid() bool {
	return l == Yin || l == Yang
}

// Flip returns the opposite line value.
func (l Line) Flip() Line {
	return l ^ 1
}

// Trigram is one of the eight three-line figures. The value encodes the
// lines bottom-up: bit 0 is the bottom line, bit 2 the top line.
type Trigram uint8

const (
	Kun  Trigram = 0b000 // earth
	Zhen Trigram = 0b001 // thunder
	Kan  Trigram = 0b010 // water
	Dui  Trigram = 0b011 // lake
	Gen  Trigram = 0b100 // mountain
	Li   Trigram = 0b101 // fire
	Xun  Trigram = 0b110 // wind
	Qian Trigram = 0b111 // heaven
)

// Element is the wuxing association of a trigram.
type Element int

const (
	Metal Element = iota
	Wood
	Water
	Fire
	Earth
)

func (e Element) String() string {
	return [...]string{"metal", "wood", "water", "fire", "earth"}[e]
}

var trigramNames = map[Trigram]string{
	Kun:  "kun",
	Zhen: "zhen",
	Kan:  "kan",
	Dui:  "dui",
	Gen:  "gen",
	Li:   "li",
	Xun:  "xun",
	Qian: "qian",
}

var trigramElements = map[Trigram]Element{
	Qian: Metal,
	Dui:  Metal,
	Li:   Fire,
	Zhen: Wood,
	Xun:  Wood,
	Kan:  Water,
	Gen:  Earth,
	Kun:  Earth,
}

// Trigrams lists all eight trigrams in ascending line-pattern order.
var Trigrams = []Trigram{Kun, Zhen, Kan, Dui, Gen, Li, Xun, Qian}

// TrigramFromLines builds a trigram from three lines, bottom first.
func TrigramFromLines(lines [3]Line) (Trigram, error) {
	var t Trigram
	for i, l := range lines {
		if !l.Valid() {
			return 0, ErrInvalidHexagramSpec
		}
		t |= Trigram(l) << i
	}
	return t, nil
}

func (t Trigram) Valid() bool {
	return t <= Qian
}

func (t Trigram) String() string {
	if name, ok := trigramNames[t]; ok {
		return name
	}
	return "invalid"
}

// Line returns the line at index i (0 = bottom, 2 = top).
func (t Trigram) Line(i int) Line {
	return Line(t>>i) & 1
}

// Lines returns the three lines bottom-up.
func (t Trigram) Lines() [3]Line {
	return [3]Line{t.Line(0), t.Line(1), t.Line(2)}
}

func (t Trigram) Element() Element {
	return trigramElements[t]
}

// YangCount returns how many of the three lines are yang.
func (t Trigram) YangCount() int {
	n := 0
	for i := 0; i < 3; i++ {
		if t.Line(i) == Yang {
			n++
		}
	}
	return n
}

// Polarity is +1 for a yang-majority trigram and -1 for a yin-majority one.
// Playing a card onto a bagua slot shifts its owner's balance by the card
// trigram's polarity.
func (t Trigram) Polarity() int {
	if t.YangCount() >= 2 {
		return 1
	}
	return -1
}

// shengTargets maps each element to the one it generates: metal begets
// water, water wood, wood fire, fire earth, earth metal.
var shengTargets = map[Element]Element{
	Metal: Water,
	Water: Wood,
	Wood:  Fire,
	Fire:  Earth,
	Earth: Metal,
}

// keTargets maps each element to the one it overcomes: metal cuts wood,
// wood breaks earth, earth dams water, water quenches fire, fire melts metal.
var keTargets = map[Element]Element{
	Metal: Wood,
	Wood:  Earth,
	Earth: Water,
	Water: Fire,
	Fire:  Metal,
}

// Generates reports whether e generates other in the wuxing cycle.
func (e Element) Generates(other Element) bool {
	return shengTargets[e] == other
}

// Overcomes reports whether e overcomes other in the wuxing cycle.
func (e Element) Overcomes(other Element) bool {
	return keTargets[e] == other
}
