// mockvasp serves the rVASP TRISADemo LiveUpdates API for one demo VASP so the BFF can
// run without the real rVASP fleet. Set MOCK_VASP_NAME and MOCK_GRPC_ADDR.
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trisa-demo/relay/internal/config"
	"trisa-demo/relay/internal/logging"
	"trisa-demo/relay/internal/rvasp/mock"
	"trisa-demo/relay/internal/server"
	"trisa-demo/relay/internal/telemetry/otel"
	"trisa-demo/relay/internal/vasp/fixtures"
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	providers, err := otel.NewProviders(ctx, cfg.OTelEndpoint, cfg.MockVaspName, cfg.OTelInsecureOverride())
	if err != nil {
		log.WithError(err).Fatal("otel")
	}
	providers.SetGlobal()
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = providers.Shutdown(sctx)
	}()

	wallets, err := fixtures.Wallets()
	if err != nil {
		log.WithError(err).Fatal("load wallets")
	}
	srv := mock.New(cfg.MockVaspName, mock.NewLedgerFromWallets(wallets),
		mock.WithLogger(log.WithField("vasp", cfg.MockVaspName)),
		mock.WithPause(750*time.Millisecond),
	)

	deps := server.GRPCDeps{
		Logger:     log,
		Emitter:    otel.NewEventEmitter(providers.LoggerProvider),
		Reflection: cfg.Env == "development",
	}
	s := server.NewGRPCServer(deps)
	hs := server.RegisterServices(s, srv, deps)

	lis, err := net.Listen("tcp", cfg.MockGRPCAddr)
	if err != nil {
		log.WithError(err).Fatal("listen")
	}
	defer lis.Close()

	go func() {
		log.WithField("addr", cfg.MockGRPCAddr).WithField("vasp", cfg.MockVaspName).Info("mock rVASP listening")
		if err := s.Serve(lis); err != nil {
			log.WithError(err).Fatal("serve")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down mock rVASP...")
	hs.Shutdown()
	s.GracefulStop()
	log.Info("mock rVASP stopped")
}
