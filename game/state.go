package game

import (
	"encoding/binary"
	"hash/fnv"
)

// PlayerState is one party's side of the match.
type PlayerState struct {
	ID      PlayerID `json:"id"`
	DaoXing int      `json:"dao_xing"` // cultivation progress, never negative
	Balance int      `json:"balance"`  // yin-yang balance in [-bound, bound]
	Hand    []Card   `json:"hand"`     // ordered by deal/return
	Marker  Position `json:"marker"`   // the player's location on the board
	Actions int      `json:"actions"`  // action budget left this turn
}

// HandCard returns the hand card with the given ID.
func (p *PlayerState) HandCard(id int) (Card, bool) {
	for _, c := range p.Hand {
		if c.ID == id {
			return c, true
		}
	}
	return Card{}, false
}

func (p *PlayerState) removeFromHand(id int) (Card, bool) {
	for i, c := range p.Hand {
		if c.ID == id {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return c, true
		}
	}
	return Card{}, false
}

// TerminationReason explains why a match ended.
type TerminationReason string

const (
	ReasonThreshold  TerminationReason = "threshold reached"
	ReasonImbalance  TerminationReason = "balance extreme"
	ReasonTurnLimit  TerminationReason = "turn limit reached"
	ReasonConcession TerminationReason = "concession"
)

// MatchResult is the terminal outcome. Winner is NoPlayer for a draw.
type MatchResult struct {
	Winner PlayerID          `json:"winner"`
	Reason TerminationReason `json:"reason"`
	Turn   int               `json:"turn"`
}

// BoardState is the whole dynamic state of one match. It is mutated only
// through ActionEngine-validated deltas; reads are free.
type BoardState struct {
	Rules   Rules                  `json:"rules"`
	Players [2]*PlayerState        `json:"players"`
	Board   [NumPositions]*Card    `json:"board"` // placed cards, nil = empty
	Active  PlayerID               `json:"active"`
	Turn    int                    `json:"turn"` // applied actions so far
	History []ActionEvent          `json:"history"`
	Result  *MatchResult           `json:"result,omitempty"`
}

// NewBoardState deals full hands onto an empty board. Player 1 opens.
func NewBoardState(rules Rules) *BoardState {
	hand1, hand2 := dealHands()
	return &BoardState{
		Rules: rules,
		Players: [2]*PlayerState{
			{ID: Player1, Hand: hand1, Marker: PosEarth, Actions: 1},
			{ID: Player2, Hand: hand2, Marker: PosEarth, Actions: 1},
		},
		Active: Player1,
	}
}

// Player returns the state of one party.
func (s *BoardState) Player(id PlayerID) *PlayerState {
	return s.Players[id-1]
}

// At returns the card placed at a position, if any.
func (s *BoardState) At(p Position) (Card, bool) {
	if !p.Valid() || s.Board[p] == nil {
		return Card{}, false
	}
	return *s.Board[p], true
}

// CurrentHexagram derives the hexagram in play from board contents: defined
// only when exactly one card stands in the inner bagua group and exactly one
// in the outer. It is never cached.
func (s *BoardState) CurrentHexagram() (Hexagram, bool) {
	var inner, outer *Card
	innerCount, outerCount := 0, 0
	for p := Position(0); p < NumPositions; p++ {
		c := s.Board[p]
		if c == nil {
			continue
		}
		if p.IsInner() {
			inner = c
			innerCount++
		} else if p.IsOuter() {
			outer = c
			outerCount++
		}
	}
	if innerCount != 1 || outerCount != 1 {
		return Hexagram{}, false
	}
	return HexagramFromTrigrams(inner.Trigram, outer.Trigram), true
}

// contributesToHexagram reports whether the card at p is one of the two
// slots the current hexagram reads from.
func (s *BoardState) contributesToHexagram(p Position) bool {
	if _, defined := s.CurrentHexagram(); !defined {
		return false
	}
	return s.Board[p] != nil && (p.IsInner() || p.IsOuter())
}

// Over reports whether a terminal result has been produced.
func (s *BoardState) Over() bool {
	return s.Result != nil
}

// Copy deep-copies the state. The rules are value types and shared.
func (s *BoardState) Copy() *BoardState {
	out := &BoardState{
		Rules:  s.Rules,
		Active: s.Active,
		Turn:   s.Turn,
	}
	for i, p := range s.Players {
		pc := *p
		pc.Hand = make([]Card, len(p.Hand))
		copy(pc.Hand, p.Hand)
		out.Players[i] = &pc
	}
	for i, c := range s.Board {
		if c != nil {
			cc := *c
			out.Board[i] = &cc
		}
	}
	if len(s.History) > 0 {
		out.History = make([]ActionEvent, len(s.History))
		copy(out.History, s.History)
	}
	if s.Result != nil {
		rc := *s.Result
		out.Result = &rc
	}
	return out
}

// StateHash identifies a board position for comparisons and replay checks.
type StateHash uint64

// Hash folds the whole observable state, history excluded, into one value.
func (s *BoardState) Hash() StateHash {
	hasher := fnv.New64a()

	binary.Write(hasher, binary.LittleEndian, int64(s.Active))
	binary.Write(hasher, binary.LittleEndian, int64(s.Turn))

	for _, p := range s.Players {
		binary.Write(hasher, binary.LittleEndian, int64(p.DaoXing))
		binary.Write(hasher, binary.LittleEndian, int64(p.Balance))
		binary.Write(hasher, binary.LittleEndian, int64(p.Marker))
		binary.Write(hasher, binary.LittleEndian, int64(p.Actions))
		for _, c := range p.Hand {
			binary.Write(hasher, binary.LittleEndian, int64(c.ID))
			binary.Write(hasher, binary.LittleEndian, int64(c.Trigram))
		}
	}
	for i, c := range s.Board {
		if c == nil {
			continue
		}
		binary.Write(hasher, binary.LittleEndian, int64(i))
		binary.Write(hasher, binary.LittleEndian, int64(c.ID))
		binary.Write(hasher, binary.LittleEndian, int64(c.Owner))
		binary.Write(hasher, binary.LittleEndian, int64(c.Trigram))
	}
	return StateHash(hasher.Sum64())
}
