package engine

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"tianji/agent"
	"tianji/config"
	"tianji/game"
)

// Match is one running game: the authoritative scheduler over a BoardState.
// Seats with an attached policy are played by the AI; the others receive
// their actions through Submit. A match is single-threaded: callers drive it
// one action at a time.
type Match struct {
	ID       uuid.UUID
	Config   config.Config
	engine   *game.ActionEngine
	policies map[game.PlayerID]*agent.Policy
	learned  bool // match-cadence feedback already applied
}

// NewMatch validates the configuration and deals a fresh board. Each listed
// AI seat gets its own policy seeded independently so concurrent matches
// never share state.
func NewMatch(cfg config.Config, aiSeats ...game.PlayerID) (*Match, error) {
	seatCfgs := make(map[game.PlayerID]agent.Config, len(aiSeats))
	for _, seat := range aiSeats {
		seatCfgs[seat] = cfg.AgentConfig()
	}
	return NewMatchSeats(cfg, seatCfgs)
}

// NewMatchSeats is NewMatch with a distinct agent configuration per AI
// seat, for style-vs-style experiments.
func NewMatchSeats(cfg config.Config, seatCfgs map[game.PlayerID]agent.Config) (*Match, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Match{
		ID:       uuid.New(),
		Config:   cfg,
		engine:   game.NewActionEngine(game.NewBoardState(cfg.Rules()), game.NewOracle(cfg.Seed, cfg.OracleYangBias)),
		policies: make(map[game.PlayerID]*agent.Policy),
	}
	for seat, agentCfg := range seatCfgs {
		if !seat.Valid() {
			return nil, fmt.Errorf("%w: unknown seat %d", config.ErrConfiguration, seat)
		}
		agentCfg.Seed = cfg.Seed + uint64(seat) // distinct stream per seat
		policy, err := agent.New(agentCfg)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", config.ErrConfiguration, err)
		}
		m.policies[seat] = policy
	}
	return m, nil
}

// Policy returns the policy attached to a seat, if any.
func (m *Match) Policy(seat game.PlayerID) (*agent.Policy, bool) {
	p, ok := m.policies[seat]
	return p, ok
}

// Snapshot returns a deep copy of the board for external inspection.
func (m *Match) Snapshot() *game.BoardState {
	return m.engine.State.Copy()
}

// History returns the applied actions in order.
func (m *Match) History() []game.ActionEvent {
	history := make([]game.ActionEvent, len(m.engine.State.History))
	copy(history, m.engine.State.History)
	return history
}

// Result returns the terminal outcome once the match is over.
func (m *Match) Result() (game.MatchResult, bool) {
	if r := m.engine.State.Result; r != nil {
		return *r, true
	}
	return game.MatchResult{}, false
}

// Active returns whose turn it is.
func (m *Match) Active() game.PlayerID {
	return m.engine.State.Active
}

// LegalActions enumerates the active player's options, for the external
// input layer.
func (m *Match) LegalActions(seat game.PlayerID) []game.Action {
	return m.engine.LegalActions(seat)
}

// Submit forwards one externally chosen action - the human seat's path. AI
// seats must not be driven from outside.
func (m *Match) Submit(a game.Action) (game.ActionEvent, error) {
	if _, isAI := m.policies[a.Player]; isAI {
		return game.ActionEvent{}, game.Rejectf("%s is played by the engine", a.Player)
	}
	return m.apply(a)
}

// Step lets the AI seat take its turn. It is an error to call Step when the
// active seat has no attached policy.
func (m *Match) Step() (game.ActionEvent, error) {
	seat := m.engine.State.Active
	policy, ok := m.policies[seat]
	if !ok {
		return game.ActionEvent{}, fmt.Errorf("active seat %s has no policy", seat)
	}
	if m.engine.State.Over() {
		return game.ActionEvent{}, game.ErrMatchAlreadyOver
	}

	action, err := policy.ChooseAction(m.engine, seat)
	if err != nil {
		return game.ActionEvent{}, err
	}
	return m.apply(action)
}

func (m *Match) apply(a game.Action) (game.ActionEvent, error) {
	// only turn-cadence learners need the pre-action state
	policy, isAI := m.policies[a.Player]
	var before *game.BoardState
	if isAI && policy.Cadence() == agent.CadenceTurn {
		before = m.engine.State.Copy()
	}

	event, err := m.engine.Apply(a)
	if err != nil {
		return game.ActionEvent{}, err
	}

	log.Info().
		Str("match", m.ID.String()).
		Int("turn", event.Turn).
		Stringer("actor", event.Actor).
		Stringer("action", event.Type).
		Int("dao_xing_delta", event.DaoXingDelta).
		Int("balance_delta", event.BalanceDelta).
		Msg("action applied")

	if before != nil {
		policy.Observe(a.Type, agent.OutcomeSignal(before, m.engine.State, a.Player))
	}
	if m.engine.State.Over() {
		m.learnFromResult()
	}
	return event, nil
}

// Concede ends the match in the opponent's favor, a host-level request
// rather than a turn action.
func (m *Match) Concede(seat game.PlayerID) (game.MatchResult, error) {
	if _, err := m.engine.Concede(seat); err != nil {
		return game.MatchResult{}, err
	}
	result := *m.engine.State.Result
	m.learnFromResult()
	log.Info().
		Str("match", m.ID.String()).
		Stringer("winner", result.Winner).
		Str("reason", string(result.Reason)).
		Msg("match conceded")
	return result, nil
}

// Run drives an AI-vs-AI match to completion and returns the result. Both
// seats must carry policies.
func (m *Match) Run() (game.MatchResult, error) {
	log.Info().Str("match", m.ID.String()).Msgf("%s is starting", m.engine.State.Active)

	for !m.engine.State.Over() {
		if _, err := m.Step(); err != nil {
			return game.MatchResult{}, err
		}
	}

	result := *m.engine.State.Result
	log.Info().
		Str("match", m.ID.String()).
		Stringer("winner", result.Winner).
		Str("reason", string(result.Reason)).
		Int("turns", result.Turn).
		Msg("match over")
	return result, nil
}

// learnFromResult applies match-cadence feedback: every one of a policy's
// applied actions is scored with the terminal outcome.
func (m *Match) learnFromResult() {
	if m.learned {
		return
	}
	m.learned = true

	result := m.engine.State.Result
	for seat, policy := range m.policies {
		if policy.Cadence() != agent.CadenceMatch {
			continue
		}
		signal := 0.0
		if result.Winner == seat {
			signal = 1
		} else if result.Winner == seat.Other() {
			signal = -1
		}
		for _, event := range m.engine.State.History {
			if event.Actor == seat && event.Type != game.ActionConcede {
				policy.Observe(event.Type, signal)
			}
		}
	}
}
