package main

import (
	"fmt"
	"os"
	"strconv"

	"epl-api/config"
	"epl-api/migrations"

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
	migrator, err := migrations.NewMigrator(config.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("Migrator setup failed")
	}
	migrator.AddMigration(migrations.All()...)

	switch command := os.Args[1]; command {
	case "migrate":
		if err := migrator.Migrate(); err != nil {
			log.Fatal().Err(err).Msg("Migration failed")
		}
	case "rollback":
		steps := 1
		if len(os.Args) > 2 {
			if s, err := strconv.Atoi(os.Args[2]); err == nil {
				steps = s
			}
		}
		if err := migrator.Rollback(steps); err != nil {
			log.Fatal().Err(err).Msg("Rollback failed")
		}
	case "status":
		showStatus(migrator)
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  go run ./cmd/migrate migrate          - Run pending migrations")
	fmt.Println("  go run ./cmd/migrate rollback [steps] - Roll back the latest batches (default: 1)")
	fmt.Println("  go run ./cmd/migrate status           - Show applied migrations")
}

func showStatus(m *migrations.Migrator) {
	applied, err := m.Status()
	if err != nil {
		log.Fatal().Err(err).Msg("Reading migration status failed")
	}
	if len(applied) == 0 {
		fmt.Println("No migrations have been run yet.")
		return
	}

	fmt.Println("Batch | Name")
	fmt.Println("------|-----")
	for _, migration := range applied {
		fmt.Printf("%-5d | %s\n", migration.Batch, migration.Name)
	}
}
