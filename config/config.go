// Package config carries the explicit configuration record passed into
// match start. Nothing here is process-global: callers load a Config,
// validate it, and hand it down.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"tianji/agent"
	"tianji/game"
)

// ErrConfiguration reports out-of-range tuning values. Match start fails
// fast on it.
var ErrConfiguration = errors.New("configuration error")

// Difficulty is a named preset tuning the AI's exploration and thinking
// budget.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
)

// Config is the full tuning record for one match.
type Config struct {
	Difficulty Difficulty `yaml:"difficulty" env:"TIANJI_DIFFICULTY"`

	AIStrategyStyle   agent.Style   `yaml:"ai_strategy_style" env:"TIANJI_AI_STYLE"`
	AIExplorationRate float64       `yaml:"ai_exploration_rate" env:"TIANJI_AI_EXPLORATION_RATE"`
	AILearningRate    float64       `yaml:"ai_learning_rate" env:"TIANJI_AI_LEARNING_RATE"`
	AIMemorySize      int           `yaml:"ai_memory_size" env:"TIANJI_AI_MEMORY_SIZE"`
	AILearnCadence    agent.Cadence `yaml:"ai_learn_cadence" env:"TIANJI_AI_LEARN_CADENCE"`
	// AIThinkingBudget caps how long the host waits for the AI; scheduling
	// around it is the host's concern, not the core's.
	AIThinkingBudget time.Duration `yaml:"ai_thinking_budget" env:"TIANJI_AI_THINKING_BUDGET"`

	BalanceBound        int                   `yaml:"balance_bound" env:"TIANJI_BALANCE_BOUND"`
	DaoXingWinThreshold int                   `yaml:"dao_xing_win_threshold" env:"TIANJI_DAO_XING_WIN_THRESHOLD"`
	TurnLimit           int                   `yaml:"turn_limit" env:"TIANJI_TURN_LIMIT"`
	MeditateStep        int                   `yaml:"meditate_step" env:"TIANJI_MEDITATE_STEP"`
	StudyBalanceWindow  int                   `yaml:"study_balance_window" env:"TIANJI_STUDY_BALANCE_WINDOW"`
	BiangGuaCost        int                   `yaml:"biangua_cost" env:"TIANJI_BIANGUA_COST"`
	BiangGuaCostMode    game.BiangGuaCostMode `yaml:"biangua_cost_mode" env:"TIANJI_BIANGUA_COST_MODE"`

	OracleYangBias float64 `yaml:"oracle_yang_bias" env:"TIANJI_ORACLE_YANG_BIAS"`
	Seed           uint64  `yaml:"seed" env:"TIANJI_SEED"`
}

// Default returns the normal-difficulty record the demos and tests start
// from.
func Default() Config {
	rules := game.DefaultRules()
	return Config{
		Difficulty:          DifficultyNormal,
		AIStrategyStyle:     agent.StyleBalanced,
		AIExplorationRate:   0.1,
		AILearningRate:      0.2,
		AIMemorySize:        32,
		AILearnCadence:      agent.CadenceTurn,
		AIThinkingBudget:    time.Second,
		BalanceBound:        rules.BalanceBound,
		DaoXingWinThreshold: rules.DaoXingWinThreshold,
		TurnLimit:           rules.TurnLimit,
		MeditateStep:        rules.MeditateStep,
		StudyBalanceWindow:  rules.StudyBalanceWindow,
		BiangGuaCost:        rules.BiangGuaCost,
		BiangGuaCostMode:    rules.BiangGuaCostMode,
		OracleYangBias:      0.5,
		Seed:                1,
	}
}

// easier opponents explore more and think less.
var difficultyPresets = map[Difficulty]struct {
	exploration float64
	budget      time.Duration
}{
	DifficultyEasy:   {exploration: 0.4, budget: 250 * time.Millisecond},
	DifficultyNormal: {exploration: 0.1, budget: time.Second},
	DifficultyHard:   {exploration: 0.02, budget: 3 * time.Second},
}

// ApplyDifficulty overwrites the AI tunables with the named preset.
func (c *Config) ApplyDifficulty(d Difficulty) error {
	preset, ok := difficultyPresets[d]
	if !ok {
		return fmt.Errorf("%w: unknown difficulty %q", ErrConfiguration, d)
	}
	c.Difficulty = d
	c.AIExplorationRate = preset.exploration
	c.AIThinkingBudget = preset.budget
	return nil
}

// Load reads a YAML file over the defaults and then applies environment
// overrides. A difficulty named in the file or environment expands to its
// preset first, so explicit keys at the same level still win over it.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		var preset struct {
			Difficulty Difficulty `yaml:"difficulty"`
		}
		if err := yaml.Unmarshal(data, &preset); err != nil {
			return Config{}, fmt.Errorf("%w: parse %s: %v", ErrConfiguration, path, err)
		}
		if preset.Difficulty != "" {
			if err := cfg.ApplyDifficulty(preset.Difficulty); err != nil {
				return Config{}, err
			}
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("%w: parse %s: %v", ErrConfiguration, path, err)
		}
	}
	if d := Difficulty(os.Getenv("TIANJI_DIFFICULTY")); d != "" {
		if err := cfg.ApplyDifficulty(d); err != nil {
			return Config{}, err
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: environment: %v", ErrConfiguration, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate fails fast on out-of-range tuning values.
func (c Config) Validate() error {
	if c.Difficulty != "" {
		if _, ok := difficultyPresets[c.Difficulty]; !ok {
			return fmt.Errorf("%w: unknown difficulty %q", ErrConfiguration, c.Difficulty)
		}
	}
	if c.AIExplorationRate < 0 || c.AIExplorationRate > 1 {
		return fmt.Errorf("%w: exploration rate %v outside [0,1]", ErrConfiguration, c.AIExplorationRate)
	}
	if c.AILearningRate < 0 || c.AILearningRate > 1 {
		return fmt.Errorf("%w: learning rate %v outside [0,1]", ErrConfiguration, c.AILearningRate)
	}
	if c.AIMemorySize < 0 {
		return fmt.Errorf("%w: memory size %d must not be negative", ErrConfiguration, c.AIMemorySize)
	}
	if c.OracleYangBias <= 0 || c.OracleYangBias >= 1 {
		return fmt.Errorf("%w: oracle yang bias %v outside (0,1)", ErrConfiguration, c.OracleYangBias)
	}
	if err := c.Rules().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	if _, err := agent.New(c.AgentConfig()); err != nil {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	return nil
}

// Rules extracts the board tunables.
func (c Config) Rules() game.Rules {
	return game.Rules{
		BalanceBound:        c.BalanceBound,
		DaoXingWinThreshold: c.DaoXingWinThreshold,
		TurnLimit:           c.TurnLimit,
		MeditateStep:        c.MeditateStep,
		StudyBalanceWindow:  c.StudyBalanceWindow,
		BiangGuaCost:        c.BiangGuaCost,
		BiangGuaCostMode:    c.BiangGuaCostMode,
	}
}

// AgentConfig extracts the AI tunables.
func (c Config) AgentConfig() agent.Config {
	return agent.Config{
		Style:           c.AIStrategyStyle,
		ExplorationRate: c.AIExplorationRate,
		LearningRate:    c.AILearningRate,
		MemorySize:      c.AIMemorySize,
		LearnCadence:    c.AILearnCadence,
		Seed:            c.Seed,
	}
}
