package game

import "fmt"

// DeltaKind enumerates the primitive state mutations.
type DeltaKind int

const (
	DeltaPlaceCard DeltaKind = iota
	DeltaRemoveCard
	DeltaRetuneCard
	DeltaDaoXing
	DeltaBalance
	DeltaMoveMarker
	DeltaHistory
)

// Delta is one primitive mutation. An action compiles into a delta set that
// either commits whole or rejects whole.
type Delta struct {
	Kind    DeltaKind
	Player  PlayerID
	CardID  int
	Pos     Position
	Amount  int
	Trigram Trigram
	Event   ActionEvent
}

// Apply validates the whole delta set against the board invariants and
// commits it atomically: on any violation the receiver is left untouched and
// the error wraps ErrActionRejected.
func (s *BoardState) Apply(deltas []Delta) error {
	staged := s.Copy()
	for _, d := range deltas {
		if err := staged.applyOne(d); err != nil {
			return err
		}
	}
	*s = *staged
	return nil
}

func (s *BoardState) applyOne(d Delta) error {
	switch d.Kind {
	case DeltaPlaceCard:
		if !d.Pos.Valid() {
			return Rejectf("position %d does not exist", d.Pos)
		}
		if s.Board[d.Pos] != nil {
			return Rejectf("position %s is occupied", d.Pos)
		}
		card, ok := s.Player(d.Player).removeFromHand(d.CardID)
		if !ok {
			return Rejectf("card %d is not in %s's hand", d.CardID, d.Player)
		}
		c := card
		s.Board[d.Pos] = &c

	case DeltaRemoveCard:
		card := s.Board[d.Pos]
		if card == nil {
			return Rejectf("position %s is empty", d.Pos)
		}
		if card.Owner != d.Player {
			return Rejectf("card at %s belongs to %s", d.Pos, card.Owner)
		}
		owner := s.Player(card.Owner)
		owner.Hand = append(owner.Hand, *card)
		s.Board[d.Pos] = nil

	case DeltaRetuneCard:
		card := s.Board[d.Pos]
		if card == nil {
			return Rejectf("position %s holds no card to retune", d.Pos)
		}
		if !d.Trigram.Valid() {
			return Rejectf("trigram %d does not exist", d.Trigram)
		}
		card.Trigram = d.Trigram

	case DeltaDaoXing:
		p := s.Player(d.Player)
		if p.DaoXing+d.Amount < 0 {
			return Rejectf("%s's dao-xing would drop below zero", d.Player)
		}
		p.DaoXing += d.Amount

	case DeltaBalance:
		p := s.Player(d.Player)
		next := p.Balance + d.Amount
		if next > s.Rules.BalanceBound || next < -s.Rules.BalanceBound {
			return Rejectf("%s's balance would leave [-%d, %d]",
				d.Player, s.Rules.BalanceBound, s.Rules.BalanceBound)
		}
		p.Balance = next

	case DeltaMoveMarker:
		if !d.Pos.Valid() {
			return Rejectf("position %d does not exist", d.Pos)
		}
		s.Player(d.Player).Marker = d.Pos

	case DeltaHistory:
		s.History = append(s.History, d.Event)

	default:
		return fmt.Errorf("%w: unknown delta kind %d", ErrActionRejected, d.Kind)
	}
	return nil
}
