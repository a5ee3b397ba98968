package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewBoardState(t *testing.T) {
	s := NewBoardState(DefaultRules())

	require.Equal(t, Player1, s.Active)
	require.Equal(t, 0, s.Turn)
	require.Nil(t, s.Result)

	for _, p := range s.Players {
		require.Len(t, p.Hand, 8, "each player is dealt one card per trigram")
		require.Equal(t, 0, p.DaoXing)
		require.Equal(t, 0, p.Balance)
		require.Equal(t, PosEarth, p.Marker)
		seen := make(map[Trigram]bool)
		for _, c := range p.Hand {
			require.Equal(t, p.ID, c.Owner)
			seen[c.Trigram] = true
		}
		require.Len(t, seen, 8)
	}

	for p := Position(0); p < NumPositions; p++ {
		_, occupied := s.At(p)
		require.False(t, occupied, "the board starts empty")
	}
	_, defined := s.CurrentHexagram()
	require.False(t, defined, "no hexagram in play on an empty board")
}

func TestApplyAtomicity(t *testing.T) {
	s := NewBoardState(DefaultRules())
	cardID := s.Players[0].Hand[0].ID

	before := s.Copy()
	beforeHash := s.Hash()

	// the last delta violates the balance bound, so the whole set must
	// reject with the earlier placement rolled back
	err := s.Apply([]Delta{
		{Kind: DeltaPlaceCard, Player: Player1, CardID: cardID, Pos: PosKan},
		{Kind: DeltaBalance, Player: Player1, Amount: s.Rules.BalanceBound + 1},
	})
	require.ErrorIs(t, err, ErrActionRejected)
	require.Equal(t, beforeHash, s.Hash(), "a rejected delta set must leave the state unchanged")
	require.Equal(t, before, s)
}

func TestApplyDeltaValidation(t *testing.T) {
	tests := []struct {
		name   string
		deltas []Delta
	}{
		{"card not in hand", []Delta{{Kind: DeltaPlaceCard, Player: Player1, CardID: 999, Pos: PosKan}}},
		{"position out of range", []Delta{{Kind: DeltaPlaceCard, Player: Player1, CardID: 0, Pos: NumPositions}}},
		{"remove from empty slot", []Delta{{Kind: DeltaRemoveCard, Player: Player1, Pos: PosLi}}},
		{"negative dao-xing", []Delta{{Kind: DeltaDaoXing, Player: Player1, Amount: -1}}},
		{"balance beyond bound", []Delta{{Kind: DeltaBalance, Player: Player1, Amount: 99}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewBoardState(DefaultRules())
			before := s.Hash()
			err := s.Apply(tt.deltas)
			require.ErrorIs(t, err, ErrActionRejected)
			require.Equal(t, before, s.Hash())
		})
	}
}

func TestCardMovesBetweenHandAndBoard(t *testing.T) {
	s := NewBoardState(DefaultRules())
	cardID := s.Players[0].Hand[0].ID

	require.NoError(t, s.Apply([]Delta{{Kind: DeltaPlaceCard, Player: Player1, CardID: cardID, Pos: PosZhen}}))

	_, inHand := s.Player(Player1).HandCard(cardID)
	require.False(t, inHand, "a placed card leaves the hand")
	placed, ok := s.At(PosZhen)
	require.True(t, ok)
	require.Equal(t, cardID, placed.ID)

	// double occupancy is rejected
	otherID := s.Players[0].Hand[0].ID
	err := s.Apply([]Delta{{Kind: DeltaPlaceCard, Player: Player1, CardID: otherID, Pos: PosZhen}})
	require.ErrorIs(t, err, ErrActionRejected)

	require.NoError(t, s.Apply([]Delta{{Kind: DeltaRemoveCard, Player: Player1, Pos: PosZhen}}))
	_, inHand = s.Player(Player1).HandCard(cardID)
	require.True(t, inHand, "a removed card returns to its owner's hand")
	require.Len(t, s.Player(Player1).Hand, 8)
}

func TestCurrentHexagramDerivation(t *testing.T) {
	s := NewBoardState(DefaultRules())

	place := func(p PlayerID, tr Trigram, pos Position) {
		var id int
		for _, c := range s.Player(p).Hand {
			if c.Trigram == tr {
				id = c.ID
				break
			}
		}
		require.NoError(t, s.Apply([]Delta{{Kind: DeltaPlaceCard, Player: p, CardID: id, Pos: pos}}))
	}

	place(Player1, Qian, PosLi) // inner slot, qian card
	_, defined := s.CurrentHexagram()
	require.False(t, defined, "one half is not enough")

	place(Player2, Qian, PosKun) // outer slot, qian card
	h, defined := s.CurrentHexagram()
	require.True(t, defined)
	require.Equal(t, 1, h.ID(), "qian over qian is #1")

	// a second inner card makes the figure ambiguous, hence undefined
	place(Player1, Kan, PosDui)
	_, defined = s.CurrentHexagram()
	require.False(t, defined)
}

func TestCopyIsDeep(t *testing.T) {
	s := NewBoardState(DefaultRules())
	cardID := s.Players[0].Hand[0].ID
	require.NoError(t, s.Apply([]Delta{{Kind: DeltaPlaceCard, Player: Player1, CardID: cardID, Pos: PosKan}}))

	c := s.Copy()
	require.Equal(t, s, c)
	require.Equal(t, s.Hash(), c.Hash())

	c.Players[0].DaoXing = 7
	c.Board[PosKan].Trigram = Qian
	c.History = append(c.History, ActionEvent{Type: ActionPass})

	require.Equal(t, 0, s.Players[0].DaoXing, "copies must not share player state")
	require.NotEqual(t, c.Board[PosKan].Trigram, s.Board[PosKan].Trigram)
	require.Empty(t, s.History)
}
