// bff serves the TRISA demo UI: the /ws relay to rVASP LiveUpdates streams, the /vasps
// directory listing and /health. Configure via env or .env (see internal/config).
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"trisa-demo/relay/internal/config"
	"trisa-demo/relay/internal/db"
	healthhandler "trisa-demo/relay/internal/health/handler"
	"trisa-demo/relay/internal/logging"
	"trisa-demo/relay/internal/relay/broadcast"
	"trisa-demo/relay/internal/relay/registry"
	"trisa-demo/relay/internal/relay/service"
	"trisa-demo/relay/internal/rvasp/client"
	"trisa-demo/relay/internal/server"
	"trisa-demo/relay/internal/telemetry"
	"trisa-demo/relay/internal/telemetry/otel"
	"trisa-demo/relay/internal/telemetry/producer"
	"trisa-demo/relay/internal/vasp/fixtures"
	vasphandler "trisa-demo/relay/internal/vasp/handler"
	"trisa-demo/relay/internal/vasp/repository"
	"trisa-demo/relay/internal/ws"
)

const shutdownTimeout = 15 * time.Second

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
	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("bff exited")
	}
}

func run(cfg *config.Config, log *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	providers, err := otel.NewProviders(ctx, cfg.OTelEndpoint, cfg.OTelServiceName, cfg.OTelInsecureOverride())
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	providers.SetGlobal()
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := providers.Shutdown(sctx); err != nil {
			log.WithError(err).Warn("otel shutdown")
		}
	}()

	metrics, err := otel.NewMetrics(providers.MeterProvider.Meter("trisa-demo/relay"))
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	emitters := []telemetry.EventEmitter{otel.NewEventEmitter(providers.LoggerProvider)}
	if kp := producer.NewKafkaProducer(cfg.KafkaBrokersList(), cfg.KafkaTopic); kp != nil {
		var exporter producer.Producer = kp
		emitters = append(emitters, exporter)
		defer exporter.Close()
		log.WithField("topic", cfg.KafkaTopic).Info("exporting relay events to kafka")
	}
	emitter := telemetry.Multi(emitters...)

	var (
		directory repository.Repository
		pinger    healthhandler.Pinger
	)
	if cfg.DatabaseURL != "" {
		sqlDB, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer sqlDB.Close()
		directory = repository.NewPostgresRepository(sqlDB)
		pinger = sqlDB
		log.Info("vasp directory: postgres")
	} else {
		vasps, err := fixtures.VASPs()
		if err != nil {
			return err
		}
		wallets, err := fixtures.Wallets()
		if err != nil {
			return err
		}
		directory = repository.NewMemoryRepository(vasps, wallets)
		log.Info("vasp directory: embedded fixtures")
	}

	dialer := &client.Dialer{
		DialTimeout: cfg.DialTimeout(),
		SendTimeout: cfg.SendTimeout(),
		TLS:         cfg.RVASPTLS,
		CAFile:      cfg.RVASPCAFile,
		Logger:      log,
	}
	hub := broadcast.NewHub(log)
	relay := service.New(directory, hub, registry.StreamDialer(dialer),
		service.WithMetrics(metrics),
		service.WithEmitter(emitter),
		service.WithLogger(log),
		service.WithClientName(cfg.RVASPClientName),
	)
	defer relay.Close()

	gateway := ws.NewGateway(relay, ws.Config{
		WriteTimeout:   cfg.WriteTimeout(),
		SendBuffer:     cfg.WSSendBuffer,
		AllowedOrigins: cfg.AllowedOrigins(),
	}, log)

	srv := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: server.NewRouter(server.HTTPDeps{
			Health:         healthhandler.NewHandler(pinger, relay.Bindings),
			VASPs:          vasphandler.NewHandler(directory, log).List,
			Gateway:        gateway,
			AllowedOrigins: cfg.AllowedOrigins(),
			Logger:         log,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("bff listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down bff...")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return err
	}
	log.Info("bff stopped")
	return nil
}
