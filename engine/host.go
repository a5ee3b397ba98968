package engine

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"tianji/config"
	"tianji/game"
)

// Host keeps the running matches for the external layers: the CLI launcher
// submits actions and queries through it by match ID. Matches are fully
// independent of each other; the host only guards its own registry.
type Host struct {
	mu      sync.RWMutex
	matches map[uuid.UUID]*Match
}

func NewHost() *Host {
	return &Host{matches: make(map[uuid.UUID]*Match)}
}

// StartMatch creates and registers a match. aiSeats lists the seats the
// engine plays; leave a seat out to drive it through SubmitAction.
func (h *Host) StartMatch(cfg config.Config, aiSeats ...game.PlayerID) (*Match, error) {
	m, err := NewMatch(cfg, aiSeats...)
	if err != nil {
		return nil, err
	}
	h.mu.Lock()
	h.matches[m.ID] = m
	h.mu.Unlock()
	return m, nil
}

func (h *Host) match(id uuid.UUID) (*Match, error) {
	h.mu.RLock()
	m, ok := h.matches[id]
	h.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no match %s", id)
	}
	return m, nil
}

// SubmitAction forwards one action to a match.
func (h *Host) SubmitAction(id uuid.UUID, a game.Action) (game.ActionEvent, error) {
	m, err := h.match(id)
	if err != nil {
		return game.ActionEvent{}, err
	}
	return m.Submit(a)
}

// QueryState returns a snapshot of a match's board.
func (h *Host) QueryState(id uuid.UUID) (*game.BoardState, error) {
	m, err := h.match(id)
	if err != nil {
		return nil, err
	}
	return m.Snapshot(), nil
}

// QueryHistory returns a match's applied actions in order.
func (h *Host) QueryHistory(id uuid.UUID) ([]game.ActionEvent, error) {
	m, err := h.match(id)
	if err != nil {
		return nil, err
	}
	return m.History(), nil
}

// Concede ends a match on the given seat's behalf.
func (h *Host) Concede(id uuid.UUID, seat game.PlayerID) (game.MatchResult, error) {
	m, err := h.match(id)
	if err != nil {
		return game.MatchResult{}, err
	}
	return m.Concede(seat)
}

// Drop forgets a finished or abandoned match.
func (h *Host) Drop(id uuid.UUID) {
	h.mu.Lock()
	delete(h.matches, id)
	h.mu.Unlock()
}
