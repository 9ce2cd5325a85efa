// seed loads the demo VASPs and wallets into the directory database. It upserts, so
// running it twice leaves the same rows.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"trisa-demo/relay/internal/config"
	"trisa-demo/relay/internal/db"
	"trisa-demo/relay/internal/logging"
	"trisa-demo/relay/internal/vasp/fixtures"
	"trisa-demo/relay/internal/vasp/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; run migrations first, then seed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sqlDB, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("seed: open database")
	}
	defer sqlDB.Close()

	vasps, err := fixtures.VASPs()
	if err != nil {
		log.WithError(err).Fatal("seed: load vasps")
	}
	wallets, err := fixtures.Wallets()
	if err != nil {
		log.WithError(err).Fatal("seed: load wallets")
	}

	if err := repository.Seed(ctx, repository.NewPostgresRepository(sqlDB), vasps, wallets); err != nil {
		log.WithError(err).Fatal("seed")
	}
	log.WithField("vasps", len(vasps)).WithField("wallets", len(wallets)).Info("seed complete")
}
