package main

import (
	"context"
	"database/sql"
	"os"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"listing_portal/internal/adapters/observability"
	"listing_portal/internal/app"
	"listing_portal/internal/shared"
	mysqlrepo "listing_portal/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, nil)

	log.Info().
		Str("file", cfg.SeedFile).
		Str("owner", cfg.SeedOwner).
		Int("workers", cfg.SeedWorkers).
		Msg("seeder starting")

	f, err := os.Open(cfg.SeedFile)
	if err != nil {
		log.Fatal().Err(err).Msg("open fixture failed")
	}
	recs, err := app.ReadFixture(f)
	_ = f.Close()
	if err != nil {
		log.Fatal().Err(err).Msg("read fixture failed")
	}

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	if cfg.SeedToken == "" {
		log.Warn().Msg("SEED_TOKEN is empty; no session will be created")
	}
	n, err := app.NewSeeder(mysqlrepo.New(db), cfg.SeedWorkers).Seed(ctx, cfg.SeedOwner, cfg.SeedToken, recs)
	if err != nil {
		log.Fatal().Err(err).Int("written", n).Msg("seeding failed")
	}
	log.Info().Int("written", n).Msg("seeding completed")
}
