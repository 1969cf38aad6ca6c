package main

import (
	"fmt"
	"os"

	"epl-api/config"
	"epl-api/fixtures"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Read()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	config.SetupLogger(cfg.LogLevel, cfg.Server.GinMode)

	if len(os.Args) < 2 {
		printUsage()
		return
	}

	config.ConnectDatabase(cfg.Database)
	loc, err := cfg.League.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid league timezone")
	}
	f := fixtures.NewFixtures(config.DB, clockwork.NewRealClock(), loc)

	switch command := os.Args[1]; command {
	case "generate":
		if err := f.GenerateTestData(); err != nil {
			log.Fatal().Err(err).Msg("Failed to generate fixtures")
		}
	case "clear":
		if err := f.ClearAllData(); err != nil {
			log.Fatal().Err(err).Msg("Failed to clear fixtures")
		}
	case "regenerate":
		if err := f.ClearAllData(); err != nil {
			log.Fatal().Err(err).Msg("Failed to clear fixtures")
		}
		if err := f.GenerateTestData(); err != nil {
			log.Fatal().Err(err).Msg("Failed to generate fixtures")
		}
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  go run ./cmd/fixtures generate    - Seed an admin, teams, players, a season and its fixtures")
	fmt.Println("  go run ./cmd/fixtures clear       - Delete all league and user data")
	fmt.Println("  go run ./cmd/fixtures regenerate  - Clear then generate")
}
