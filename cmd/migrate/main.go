// migrate applies the VASP directory schema from embedded SQL: go run ./cmd/migrate -direction up
package main

import (
	"flag"
	"fmt"
	"os"

	"trisa-demo/relay/internal/config"
	"trisa-demo/relay/internal/db/migrate"
	"trisa-demo/relay/internal/logging"
)

func main() {
	direction := flag.String("direction", "up", "Migration direction: up or down")
	flag.Parse()

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
		log.Fatal("DATABASE_URL is not set; create a .env or export DATABASE_URL")
	}

	if err := migrate.Run(cfg.DatabaseURL, *direction, log); err != nil {
		log.WithError(err).Fatal("migrate")
	}
	version, dirty, err := migrate.Version(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("migrate: read version")
	}
	log.WithField("version", version).WithField("dirty", dirty).Info("migrations applied")
}
