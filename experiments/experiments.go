// Package experiments runs batched AI-vs-AI matchups and records the
// outcomes as CSV for offline analysis.
package experiments

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"tianji/agent"
	"tianji/config"
	"tianji/engine"
	"tianji/game"
)

// NumGames is how many games each matchup plays.
const NumGames = 30

// Matchup pairs two strategy styles: Style1 sits at seat 1, Style2 at
// seat 2.
type Matchup struct {
	Style1 agent.Style
	Style2 agent.Style
}

// GameRecord is one finished game's outcome row.
type GameRecord struct {
	ID     int
	Style1 agent.Style
	Style2 agent.Style
	Winner int
	Reason string
	Turns  int
}

// MoveRecord is one applied action within a game.
type MoveRecord struct {
	GameID       int
	Turn         int
	Actor        int
	Action       string
	DaoXingDelta int
	BalanceDelta int
}

// StyleMatchups pits every style against every other, itself included.
func StyleMatchups() []Matchup {
	styles := []agent.Style{agent.StyleAggressive, agent.StyleDefensive, agent.StyleBalanced}
	var out []Matchup
	for _, s1 := range styles {
		for _, s2 := range styles {
			out = append(out, Matchup{Style1: s1, Style2: s2})
		}
	}
	return out
}

// RunStyleExperiment plays every style matchup and writes the records under
// a timestamped results directory.
func RunStyleExperiment(base config.Config) error {
	matchups := StyleMatchups()

	log.Info().Msgf("starting style experiment: %d matchups x %d games...", len(matchups), NumGames)

	count := 0
	var records []GameRecord
	var moves []MoveRecord
	for mi, matchup := range matchups {
		log.Info().Msgf("starting matchup %d of %d: %s vs %s...",
			mi+1, len(matchups), matchup.Style1, matchup.Style2)

		for i := 0; i < NumGames; i++ {
			cfg := base
			cfg.Seed = base.Seed + uint64(count) // vary games, keep runs reproducible

			result, history, err := runGame(cfg, matchup)
			if err != nil {
				return fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}
			count++
			records = append(records, GameRecord{
				ID:     count,
				Style1: matchup.Style1,
				Style2: matchup.Style2,
				Winner: int(result.Winner),
				Reason: string(result.Reason),
				Turns:  result.Turn,
			})
			for _, event := range history {
				moves = append(moves, MoveRecord{
					GameID:       count,
					Turn:         event.Turn,
					Actor:        int(event.Actor),
					Action:       event.Type.String(),
					DaoXingDelta: event.DaoXingDelta,
					BalanceDelta: event.BalanceDelta,
				})
			}
		}
	}

	writer, err := NewWriter()
	if err != nil {
		return err
	}
	if err := writer.WriteGameRecords(records); err != nil {
		return err
	}
	if err := writer.WriteMoveRecords(moves); err != nil {
		return err
	}

	log.Info().Msgf("finished style experiment: %d games recorded in %s", count, writer.BaseDir())
	return nil
}

func runGame(cfg config.Config, matchup Matchup) (game.MatchResult, []game.ActionEvent, error) {
	cfg1 := cfg.AgentConfig()
	cfg1.Style = matchup.Style1
	cfg2 := cfg.AgentConfig()
	cfg2.Style = matchup.Style2

	m, err := engine.NewMatchSeats(cfg, map[game.PlayerID]agent.Config{
		game.Player1: cfg1,
		game.Player2: cfg2,
	})
	if err != nil {
		return game.MatchResult{}, nil, err
	}
	result, err := m.Run()
	if err != nil {
		return game.MatchResult{}, nil, err
	}
	return result, m.History(), nil
}
