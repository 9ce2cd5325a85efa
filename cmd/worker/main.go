// Worker consumes relay events from Kafka and ships them to Loki in batches, committing
// offsets only after Loki accepts a batch.
// Set KAFKA_BROKERS, RELAY_KAFKA_TOPIC, KAFKA_GROUP_ID, and LOKI_URL.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"

	"trisa-demo/relay/internal/config"
	"trisa-demo/relay/internal/logging"
	"trisa-demo/relay/internal/telemetry/loki"
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

	brokers := cfg.KafkaBrokersList()
	if len(brokers) == 0 {
		log.Fatal("worker: KAFKA_BROKERS is required")
	}
	if cfg.LokiURL == "" {
		log.Fatal("worker: LOKI_URL is required")
	}

	lokiClient, err := loki.New(cfg.LokiURL)
	if err != nil {
		log.WithError(err).Fatal("worker: invalid LOKI_URL")
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    cfg.KafkaTopic,
		GroupID:  cfg.KafkaGroupID,
		MinBytes: 1,
		MaxBytes: 10e6, // 10MB
		MaxWait:  1 * time.Second,
	})
	defer reader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithField("topic", cfg.KafkaTopic).WithField("group", cfg.KafkaGroupID).WithField("loki", cfg.LokiURL).Info("worker: consuming")
	if err := loki.NewShipper(reader, lokiClient, log).Run(ctx); err != nil {
		log.WithError(err).Error("worker: shipper stopped")
	}
	log.Info("worker: stopped")
}
