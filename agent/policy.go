package agent

import (
	"encoding/json"
	"fmt"

	"golang.org/x/exp/rand"

	"tianji/game"
)

// Style selects the scoring heuristic.
type Style string

const (
	StyleAggressive Style = "aggressive"
	StyleDefensive  Style = "defensive"
	StyleBalanced   Style = "balanced"
)

// Cadence selects when learned weights are updated.
type Cadence string

const (
	CadenceTurn  Cadence = "turn"
	CadenceMatch Cadence = "match"
)

// Config tunes one policy instance.
type Config struct {
	Style           Style
	ExplorationRate float64 // chance of a uniform random pick, in [0,1]
	LearningRate    float64 // weight update step, in [0,1]
	MemorySize      int     // FIFO window size, >= 0
	LearnCadence    Cadence
	Seed            uint64
}

// aggressive play chases dao-xing gain and board disruption; defensive play
// guards its own balance; balanced averages the two.
var baseWeights = map[Style]map[game.ActionType]float64{
	StyleAggressive: {
		game.ActionStudy:    1.0,
		game.ActionBiangGua: 0.8,
		game.ActionPlay:     0.6,
		game.ActionMove:     0.3,
		game.ActionMeditate: 0.2,
		game.ActionDivine:   0.1,
		game.ActionPass:     0.0,
	},
	StyleDefensive: {
		game.ActionMeditate: 1.0,
		game.ActionStudy:    0.6,
		game.ActionMove:     0.4,
		game.ActionPlay:     0.3,
		game.ActionBiangGua: 0.2,
		game.ActionDivine:   0.1,
		game.ActionPass:     0.0,
	},
}

func baseWeight(style Style, t game.ActionType) float64 {
	if style == StyleBalanced {
		return (baseWeights[StyleAggressive][t] + baseWeights[StyleDefensive][t]) / 2
	}
	return baseWeights[style][t]
}

// Policy chooses actions for the non-human party: scored exploitation with
// epsilon exploration and a bounded move memory. Deterministic for a fixed
// seed and update order.
type Policy struct {
	cfg     Config
	rng     *rand.Rand
	mem     *memory
	weights map[game.ActionType]float64
}

// New validates the configuration and seeds the policy.
func New(cfg Config) (*Policy, error) {
	switch cfg.Style {
	case StyleAggressive, StyleDefensive, StyleBalanced:
	case "":
		cfg.Style = StyleBalanced
	default:
		return nil, fmt.Errorf("unknown strategy style %q", cfg.Style)
	}
	if cfg.ExplorationRate < 0 || cfg.ExplorationRate > 1 {
		return nil, fmt.Errorf("exploration rate %v outside [0,1]", cfg.ExplorationRate)
	}
	if cfg.LearningRate < 0 || cfg.LearningRate > 1 {
		return nil, fmt.Errorf("learning rate %v outside [0,1]", cfg.LearningRate)
	}
	if cfg.MemorySize < 0 {
		return nil, fmt.Errorf("memory size %d must not be negative", cfg.MemorySize)
	}
	switch cfg.LearnCadence {
	case CadenceTurn, CadenceMatch:
	case "":
		cfg.LearnCadence = CadenceTurn
	default:
		return nil, fmt.Errorf("unknown learn cadence %q", cfg.LearnCadence)
	}
	return &Policy{
		cfg:     cfg,
		rng:     rand.New(rand.NewSource(cfg.Seed)),
		mem:     newMemory(cfg.MemorySize),
		weights: make(map[game.ActionType]float64),
	}, nil
}

// Cadence returns when the scheduler should feed outcomes back.
func (p *Policy) Cadence() Cadence {
	return p.cfg.LearnCadence
}

// ChooseAction picks one action from the engine's legal set. An empty legal
// set is an internal consistency violation (pass is always legal) and comes
// back as an error, never a silent default.
func (p *Policy) ChooseAction(e *game.ActionEngine, id game.PlayerID) (game.Action, error) {
	legal := e.LegalActions(id)
	if len(legal) == 0 {
		return game.Action{}, fmt.Errorf("no legal actions for %s: board state is inconsistent", id)
	}

	if p.rng.Float64() < p.cfg.ExplorationRate {
		return legal[p.rng.Intn(len(legal))], nil
	}

	best := legal[0]
	bestScore := p.score(e.State, id, best)
	for _, a := range legal[1:] {
		s := p.score(e.State, id, a)
		// ties break on the fixed action-type priority, then keep the
		// earlier candidate
		if s > bestScore || (s == bestScore && a.Type < best.Type) {
			best, bestScore = a, s
		}
	}
	return best, nil
}

// score is the style-dependent heuristic over one candidate.
func (p *Policy) score(s *game.BoardState, id game.PlayerID, a game.Action) float64 {
	score := baseWeight(p.cfg.Style, a.Type) + p.weights[a.Type]

	self := s.Player(id)
	opp := s.Player(id.Other())
	bound := float64(s.Rules.BalanceBound)

	switch a.Type {
	case game.ActionStudy:
		// the closer to the threshold, the more a step is worth
		score += float64(self.DaoXing) / float64(s.Rules.DaoXingWinThreshold)
	case game.ActionMeditate:
		score += abs(float64(self.Balance)) / bound
	case game.ActionBiangGua:
		// disruption value when trailing the opponent
		if opp.DaoXing > self.DaoXing {
			score += 0.3
		}
	case game.ActionPlay:
		if _, defined := s.CurrentHexagram(); !defined && a.Pos.IsBagua() {
			score += 0.2 // completing the figure unlocks biangua
		}
		score += elementAffinity(s, id, a)
	}
	return score
}

// elementAffinity values a placement by the wuxing cycle: a card that
// generates a neighboring own card is harmonious, one that overcomes a
// neighboring opponent card is disruptive. Each favorable neighbor adds a
// small bonus.
func elementAffinity(s *game.BoardState, id game.PlayerID, a game.Action) float64 {
	if !a.Pos.IsBagua() {
		return 0
	}
	card, ok := s.Player(id).HandCard(a.CardID)
	if !ok {
		return 0
	}
	elem := card.Trigram.Element()

	affinity := 0.0
	for _, n := range game.Neighbors(a.Pos) {
		occupant, ok := s.At(n)
		if !ok {
			continue
		}
		other := occupant.Trigram.Element()
		if occupant.Owner == id && elem.Generates(other) {
			affinity += 0.1
		}
		if occupant.Owner != id && elem.Overcomes(other) {
			affinity += 0.1
		}
	}
	return affinity
}

// OutcomeSignal measures how much an applied action improved the acting
// player's stance: own progress gained minus opponent progress gained.
func OutcomeSignal(before, after *game.BoardState, id game.PlayerID) float64 {
	return stance(after, id) - stance(before, id) -
		(stance(after, id.Other()) - stance(before, id.Other()))
}

func stance(s *game.BoardState, id game.PlayerID) float64 {
	p := s.Player(id)
	progress := float64(p.DaoXing) / float64(s.Rules.DaoXingWinThreshold)
	stability := 1 - abs(float64(p.Balance))/float64(s.Rules.BalanceBound)
	return progress + 0.5*stability
}

// Observe records one (action, signal) pair and refreshes the per-type
// weight as a moving average over the FIFO window.
func (p *Policy) Observe(t game.ActionType, signal float64) {
	p.mem.push(observation{Type: t, Signal: signal})
	if avg, ok := p.mem.average(t); ok {
		lr := p.cfg.LearningRate
		p.weights[t] = (1-lr)*p.weights[t] + lr*avg
	}
}

// Weight exposes the learned adjustment for one action type.
func (p *Policy) Weight(t game.ActionType) float64 {
	return p.weights[t]
}

// MemoryLen reports how many observations the window currently holds.
func (p *Policy) MemoryLen() int {
	return p.mem.len()
}

// memoryBlob is the serialized form of the policy's learned state.
type memoryBlob struct {
	Weights map[game.ActionType]float64 `json:"weights"`
	Entries []observation               `json:"entries"`
}

// MarshalMemory serializes the learned weights and window for persistence.
// The blob is opaque to callers.
func (p *Policy) MarshalMemory() ([]byte, error) {
	return json.Marshal(memoryBlob{Weights: p.weights, Entries: p.mem.snapshot()})
}

// RestoreMemory loads a blob produced by MarshalMemory.
func (p *Policy) RestoreMemory(data []byte) error {
	var blob memoryBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		return fmt.Errorf("restore policy memory: %w", err)
	}
	if blob.Weights != nil {
		p.weights = blob.Weights
	}
	p.mem.restore(blob.Entries)
	return nil
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
