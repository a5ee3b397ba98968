package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"tianji/config"
	"tianji/engine"
	"tianji/experiments"
	"tianji/store"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	dbPath := flag.String("db", "tianji.db", "match database")
	runExperiment := flag.Bool("experiment", false, "run the style experiment instead of a single demo match")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("loading configuration")
	}

	if *runExperiment {
		if err := experiments.RunStyleExperiment(cfg); err != nil {
			log.Fatal().Err(err).Msg("style experiment failed")
		}
		return
	}

	runDemoMatch(cfg, *dbPath)
}

// runDemoMatch plays one AI-vs-AI game and records the outcome.
func runDemoMatch(cfg config.Config, dbPath string) {
	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("opening match database")
	}
	defer db.Close()

	host := engine.NewHost()
	m, err := host.StartMatch(cfg, 1, 2)
	if err != nil {
		log.Fatal().Err(err).Msg("starting match")
	}

	result, err := m.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("running match")
	}

	if err := db.SaveResult(m.ID.String(), result, cfg); err != nil {
		log.Error().Err(err).Msg("saving match result")
	}
	if policy, ok := m.Policy(1); ok {
		if blob, err := policy.MarshalMemory(); err == nil {
			if err := db.SaveSnapshot(m.ID.String(), m.Snapshot(), blob); err != nil {
				log.Error().Err(err).Msg("saving match snapshot")
			}
		}
	}

	log.Info().
		Stringer("winner", result.Winner).
		Str("reason", string(result.Reason)).
		Int("turns", result.Turn).
		Msg("demo match finished")
}
