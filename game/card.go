package game

import "fmt"

// PlayerID identifies one of the two parties, 1 or 2.
type PlayerID int

const (
	NoPlayer PlayerID = 0
	Player1  PlayerID = 1
	Player2  PlayerID = 2
)

func (p PlayerID) Valid() bool {
	return p == Player1 || p == Player2
}

// Other returns the opposing party.
func (p PlayerID) Other() PlayerID {
	if p == Player1 {
		return Player2
	}
	return Player1
}

func (p PlayerID) String() string {
	if !p.Valid() {
		return "nobody"
	}
	return fmt.Sprintf("player%d", p)
}

// Card is a gua token. It belongs to exactly one player and carries a
// trigram influence. The influence is fixed at deal time and only changes
// when a biangua retunes the card to the target figure's trigram.
type Card struct {
	ID      int
	Owner   PlayerID
	Trigram Trigram
}

func (c Card) String() string {
	return fmt.Sprintf("card%d(%s,%s)", c.ID, c.Owner, c.Trigram)
}

// dealHands creates the full set of cards for a match: one card per trigram
// per player, in ascending trigram order. Card IDs are unique across the
// match.
func dealHands() (hand1, hand2 []Card) {
	id := 0
	for _, t := range Trigrams {
		hand1 = append(hand1, Card{ID: id, Owner: Player1, Trigram: t})
		id++
	}
	for _, t := range Trigrams {
		hand2 = append(hand2, Card{ID: id, Owner: Player2, Trigram: t})
		id++
	}
	return hand1, hand2
}
