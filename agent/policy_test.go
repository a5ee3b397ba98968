package agent

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tianji/game"
)

func validConfig() Config {
	return Config{
		Style:           StyleBalanced,
		ExplorationRate: 0,
		LearningRate:    0.5,
		MemorySize:      8,
		LearnCadence:    CadenceTurn,
		Seed:            1,
	}
}

func newEngine() *game.ActionEngine {
	return game.NewActionEngine(game.NewBoardState(game.DefaultRules()), game.NewOracle(1, 0.5))
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"exploration above one", func(c *Config) { c.ExplorationRate = 1.1 }},
		{"exploration below zero", func(c *Config) { c.ExplorationRate = -0.1 }},
		{"learning above one", func(c *Config) { c.LearningRate = 2 }},
		{"negative memory", func(c *Config) { c.MemorySize = -1 }},
		{"unknown style", func(c *Config) { c.Style = "reckless" }},
		{"unknown cadence", func(c *Config) { c.LearnCadence = "hourly" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			_, err := New(cfg)
			require.Error(t, err)
		})
	}

	t.Run("defaults fill empty style and cadence", func(t *testing.T) {
		cfg := validConfig()
		cfg.Style = ""
		cfg.LearnCadence = ""
		p, err := New(cfg)
		require.NoError(t, err)
		require.Equal(t, CadenceTurn, p.Cadence())
	})
}

func TestChooseActionDeterministicWithoutExploration(t *testing.T) {
	cfg := validConfig()
	cfg.ExplorationRate = 0

	e := newEngine()
	p, err := New(cfg)
	require.NoError(t, err)

	first, err := p.ChooseAction(e, game.Player1)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		got, err := p.ChooseAction(e, game.Player1)
		require.NoError(t, err)
		require.Equal(t, first, got, "identical state and memory must select the same action")
	}
}

func TestChooseActionSeededExplorationReproducible(t *testing.T) {
	cfg := validConfig()
	cfg.ExplorationRate = 1

	run := func() []game.Action {
		e := newEngine()
		p, err := New(cfg)
		require.NoError(t, err)

		var picks []game.Action
		for i := 0; i < 15; i++ {
			a, err := p.ChooseAction(e, e.State.Active)
			require.NoError(t, err)
			picks = append(picks, a)
			_, err = e.Apply(a)
			require.NoError(t, err)
			if e.State.Over() {
				break
			}
		}
		return picks
	}

	require.Equal(t, run(), run(), "a fixed seed must reproduce the action sequence")
}

func TestChooseActionPrefersStudyEarly(t *testing.T) {
	// with balanced weights and an untouched board, study carries the top
	// base weight and the priority tie-break
	e := newEngine()
	p, err := New(validConfig())
	require.NoError(t, err)

	a, err := p.ChooseAction(e, game.Player1)
	require.NoError(t, err)
	require.Equal(t, game.ActionStudy, a.Type)
}

func cardWithTrigram(t *testing.T, s *game.BoardState, p game.PlayerID, tr game.Trigram) int {
	t.Helper()
	for _, c := range s.Player(p).Hand {
		if c.Trigram == tr {
			return c.ID
		}
	}
	t.Fatalf("%s has no %s card in hand", p, tr)
	return -1
}

func TestScoreFavorsElementAffinity(t *testing.T) {
	p, err := New(validConfig())
	require.NoError(t, err)

	playAt := func(s *game.BoardState, cardID int, pos game.Position) float64 {
		return p.score(s, game.Player1, game.Action{
			Type: game.ActionPlay, Player: game.Player1, CardID: cardID, Pos: pos,
		})
	}

	t.Run("overcoming an adjacent opponent card", func(t *testing.T) {
		s := game.NewBoardState(game.DefaultRules())
		s.Board[game.PosLi] = &game.Card{ID: 90, Owner: game.Player2, Trigram: game.Li}
		water := cardWithTrigram(t, s, game.Player1, game.Kan)

		// water quenches fire: the slot bordering li outscores a distant one
		require.Greater(t, playAt(s, water, game.PosGen), playAt(s, water, game.PosKun))
	})

	t.Run("generating an adjacent own card", func(t *testing.T) {
		s := game.NewBoardState(game.DefaultRules())
		s.Board[game.PosZhen] = &game.Card{ID: 91, Owner: game.Player1, Trigram: game.Zhen}
		water := cardWithTrigram(t, s, game.Player1, game.Kan)

		// water feeds wood: the slot bordering zhen outscores a distant one
		require.Greater(t, playAt(s, water, game.PosKun), playAt(s, water, game.PosXun))
	})
}

func TestObserveUpdatesWeights(t *testing.T) {
	p, err := New(validConfig())
	require.NoError(t, err)
	require.Zero(t, p.Weight(game.ActionStudy))

	p.Observe(game.ActionStudy, 1.0)
	require.InDelta(t, 0.5, p.Weight(game.ActionStudy), 1e-9, "weight moves by learningRate x signal average")

	p.Observe(game.ActionStudy, 1.0)
	require.InDelta(t, 0.75, p.Weight(game.ActionStudy), 1e-9)
}

func TestMemoryWindowEviction(t *testing.T) {
	m := newMemory(3)
	for i := 0; i < 5; i++ {
		m.push(observation{Type: game.ActionPass, Signal: float64(i)})
	}
	require.Equal(t, 3, m.len(), "the window never grows past capacity")

	avg, ok := m.average(game.ActionPass)
	require.True(t, ok)
	require.InDelta(t, 3.0, avg, 1e-9, "the oldest entries evict first")

	_, ok = m.average(game.ActionStudy)
	require.False(t, ok)
}

func TestZeroMemoryNeverLearns(t *testing.T) {
	cfg := validConfig()
	cfg.MemorySize = 0
	p, err := New(cfg)
	require.NoError(t, err)

	p.Observe(game.ActionStudy, 1.0)
	require.Zero(t, p.Weight(game.ActionStudy))
	require.Zero(t, p.MemoryLen())
}

func TestMemoryRoundTrip(t *testing.T) {
	p, err := New(validConfig())
	require.NoError(t, err)
	p.Observe(game.ActionStudy, 1.0)
	p.Observe(game.ActionMeditate, -0.5)

	blob, err := p.MarshalMemory()
	require.NoError(t, err)

	q, err := New(validConfig())
	require.NoError(t, err)
	require.NoError(t, q.RestoreMemory(blob))

	require.Equal(t, p.Weight(game.ActionStudy), q.Weight(game.ActionStudy))
	require.Equal(t, p.Weight(game.ActionMeditate), q.Weight(game.ActionMeditate))
	require.Equal(t, p.MemoryLen(), q.MemoryLen())

	require.Error(t, q.RestoreMemory([]byte("not json")))
}

func TestOutcomeSignal(t *testing.T) {
	before := game.NewBoardState(game.DefaultRules())
	after := before.Copy()
	after.Players[0].DaoXing = 1

	require.Greater(t, OutcomeSignal(before, after, game.Player1), 0.0,
		"own progress reads positive")
	require.Less(t, OutcomeSignal(before, after, game.Player2), 0.0,
		"opponent progress reads negative")
}
