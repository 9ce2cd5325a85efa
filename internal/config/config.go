// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// HTTPAddr is the address the BFF serves /ws, /vasps and /health on (e.g. :5000).
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	// DatabaseURL is the Postgres DSN for the VASP directory. When empty the BFF serves
	// the embedded fixtures from memory.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// Env is the application environment (e.g. "development", "production").
	Env string `mapstructure:"APP_ENV"`

	// RVASPClientName is the client identifier stamped on every rVASP command.
	RVASPClientName string `mapstructure:"RVASP_CLIENT_NAME"`
	// RVASPDialTimeout bounds connecting to an rVASP server (e.g. "30s").
	RVASPDialTimeout string `mapstructure:"RVASP_DIAL_TIMEOUT"`
	// RVASPSendTimeout bounds each command send (e.g. "30s").
	RVASPSendTimeout string `mapstructure:"RVASP_SEND_TIMEOUT"`
	// RVASPTLS enables TLS to rVASP servers; RVASPCAFile optionally pins the CA bundle.
	RVASPTLS    bool   `mapstructure:"RVASP_TLS"`
	RVASPCAFile string `mapstructure:"RVASP_CA_FILE"`

	// CORSAllowedOrigins is a comma-separated origin list; "*" allows any.
	CORSAllowedOrigins string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	// WSWriteTimeout bounds each frame written to a browser (e.g. "10s").
	WSWriteTimeout string `mapstructure:"WS_WRITE_TIMEOUT"`
	// WSSendBuffer is the number of events buffered per browser session before drops.
	WSSendBuffer int `mapstructure:"WS_SEND_BUFFER"`

	// LogLevel is a logrus level name; LogFormat is "text" or "json".
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// OTel (optional). When the endpoint is empty traces, metrics and logs are not exported.
	OTelEndpoint    string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTelInsecure    string `mapstructure:"OTEL_EXPORTER_OTLP_INSECURE"`
	OTelServiceName string `mapstructure:"OTEL_SERVICE_NAME"`

	// Relay events (optional). When Kafka brokers are set, relay events are exported to Kafka.
	// KafkaBrokers is a comma-separated list of Kafka broker addresses (e.g. "localhost:9092").
	KafkaBrokers string `mapstructure:"KAFKA_BROKERS"`
	// KafkaTopic is the Kafka topic for relay events.
	KafkaTopic string `mapstructure:"RELAY_KAFKA_TOPIC"`

	// Worker-only: Loki URL for the relay event worker to push logs (e.g. http://localhost:3100).
	LokiURL string `mapstructure:"LOKI_URL"`
	// KafkaGroupID is the consumer group ID for the relay event worker.
	KafkaGroupID string `mapstructure:"KAFKA_GROUP_ID"`

	// Mock rVASP only: listen address and the VASP id it answers for.
	MockGRPCAddr string `mapstructure:"MOCK_GRPC_ADDR"`
	MockVaspName string `mapstructure:"MOCK_VASP_NAME"`
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Missing .env is ignored (e.g. in CI). Env vars override .env. Returns an error if required fields are invalid.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()
	v.AllowEmptyEnv(true)

	v.SetDefault("HTTP_ADDR", ":5000")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("APP_ENV", "")
	v.SetDefault("RVASP_CLIENT_NAME", "trisa-demo-bff")
	v.SetDefault("RVASP_DIAL_TIMEOUT", "30s")
	v.SetDefault("RVASP_SEND_TIMEOUT", "30s")
	v.SetDefault("RVASP_TLS", false)
	v.SetDefault("RVASP_CA_FILE", "")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("WS_WRITE_TIMEOUT", "10s")
	v.SetDefault("WS_SEND_BUFFER", 64)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("OTEL_EXPORTER_OTLP_INSECURE", "")
	v.SetDefault("OTEL_SERVICE_NAME", "trisa-demo-bff")
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("RELAY_KAFKA_TOPIC", "trisa-relay-events")
	v.SetDefault("LOKI_URL", "")
	v.SetDefault("KAFKA_GROUP_ID", "trisa-relay-worker")
	v.SetDefault("MOCK_GRPC_ADDR", ":4434")
	v.SetDefault("MOCK_VASP_NAME", "api.bob.vaspbot.net")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("config: HTTP_ADDR must be set")
	}
	if cfg.RVASPClientName == "" {
		return nil, errors.New("config: RVASP_CLIENT_NAME must be set")
	}
	if cfg.RVASPCAFile != "" && !cfg.RVASPTLS {
		return nil, errors.New("config: RVASP_CA_FILE requires RVASP_TLS=true")
	}
	if cfg.WSSendBuffer <= 0 {
		cfg.WSSendBuffer = 64
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, errors.New("config: LOG_FORMAT must be text or json")
	}

	return &cfg, nil
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// DialTimeout parses RVASPDialTimeout. Returns 30s if unset or invalid.
func (c *Config) DialTimeout() time.Duration {
	return parseDuration(c.RVASPDialTimeout, 30*time.Second)
}

// SendTimeout parses RVASPSendTimeout. Returns 30s if unset or invalid.
func (c *Config) SendTimeout() time.Duration {
	return parseDuration(c.RVASPSendTimeout, 30*time.Second)
}

// WriteTimeout parses WSWriteTimeout. Returns 10s if unset or invalid.
func (c *Config) WriteTimeout() time.Duration {
	return parseDuration(c.WSWriteTimeout, 10*time.Second)
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// KafkaBrokersList returns Kafka broker addresses from the comma-separated config.
// Used to decide if event export is enabled (non-empty list) and to create the producer.
func (c *Config) KafkaBrokersList() []string {
	if c == nil {
		return nil
	}
	return splitList(c.KafkaBrokers)
}

// AllowedOrigins returns the CORS and WebSocket origin allow-list.
func (c *Config) AllowedOrigins() []string {
	if c == nil {
		return nil
	}
	return splitList(c.CORSAllowedOrigins)
}

// OTelInsecureOverride reports whether OTEL_EXPORTER_OTLP_INSECURE forces a plaintext
// collector connection. Unset or unparseable values are false.
func (c *Config) OTelInsecureOverride() bool {
	ok, err := strconv.ParseBool(strings.TrimSpace(c.OTelInsecure))
	return err == nil && ok
}
