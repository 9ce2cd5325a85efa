package config

import (
	"os"
	"reflect"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":5000" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":5000")
	}
	if cfg.RVASPClientName != "trisa-demo-bff" {
		t.Errorf("RVASPClientName = %q, want trisa-demo-bff", cfg.RVASPClientName)
	}
	if cfg.DialTimeout() != 30*time.Second || cfg.SendTimeout() != 30*time.Second {
		t.Errorf("timeouts = %v/%v, want 30s/30s", cfg.DialTimeout(), cfg.SendTimeout())
	}
	if cfg.WriteTimeout() != 10*time.Second {
		t.Errorf("WriteTimeout = %v, want 10s", cfg.WriteTimeout())
	}
	if cfg.WSSendBuffer != 64 {
		t.Errorf("WSSendBuffer = %d, want 64", cfg.WSSendBuffer)
	}
	if cfg.RVASPTLS {
		t.Error("RVASPTLS should default to false")
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("log = %q/%q, want info/text", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.KafkaTopic != "trisa-relay-events" {
		t.Errorf("KafkaTopic = %q, want trisa-relay-events", cfg.KafkaTopic)
	}
	if cfg.KafkaGroupID != "trisa-relay-worker" {
		t.Errorf("KafkaGroupID = %q, want trisa-relay-worker", cfg.KafkaGroupID)
	}
	if cfg.MockGRPCAddr != ":4434" || cfg.MockVaspName != "api.bob.vaspbot.net" {
		t.Errorf("mock = %q/%q", cfg.MockGRPCAddr, cfg.MockVaspName)
	}
	if got := cfg.AllowedOrigins(); !reflect.DeepEqual(got, []string{"*"}) {
		t.Errorf("AllowedOrigins = %v, want [*]", got)
	}
	if cfg.KafkaBrokersList() != nil {
		t.Errorf("KafkaBrokersList = %v, want nil", cfg.KafkaBrokersList())
	}
}

func TestLoad_EnvVarOverride(t *testing.T) {
	os.Clearenv()
	os.Setenv("HTTP_ADDR", ":9090")
	os.Setenv("RVASP_DIAL_TIMEOUT", "5s")
	os.Setenv("RVASP_TLS", "true")
	os.Setenv("WS_SEND_BUFFER", "8")
	os.Setenv("LOG_FORMAT", "json")
	os.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, http://localhost:3001")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Errorf("HTTPAddr = %q, want :9090", cfg.HTTPAddr)
	}
	if cfg.DialTimeout() != 5*time.Second {
		t.Errorf("DialTimeout = %v, want 5s", cfg.DialTimeout())
	}
	if !cfg.RVASPTLS {
		t.Error("RVASPTLS should be true")
	}
	if cfg.WSSendBuffer != 8 {
		t.Errorf("WSSendBuffer = %d, want 8", cfg.WSSendBuffer)
	}
	want := []string{"http://localhost:3000", "http://localhost:3001"}
	if got := cfg.AllowedOrigins(); !reflect.DeepEqual(got, want) {
		t.Errorf("AllowedOrigins = %v, want %v", got, want)
	}
}

func TestLoad_Validation(t *testing.T) {
	testCases := []struct {
		name string
		env  map[string]string
	}{
		{"empty http addr", map[string]string{"HTTP_ADDR": ""}},
		{"empty client name", map[string]string{"RVASP_CLIENT_NAME": ""}},
		{"ca file without tls", map[string]string{"RVASP_CA_FILE": "/etc/ca.pem"}},
		{"bad log format", map[string]string{"LOG_FORMAT": "xml"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			os.Clearenv()
			for k, v := range tc.env {
				os.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Error("Load should return error")
			}
		})
	}
}

func TestLoad_NonPositiveSendBufferFallsBack(t *testing.T) {
	os.Clearenv()
	os.Setenv("WS_SEND_BUFFER", "0")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.WSSendBuffer != 64 {
		t.Errorf("WSSendBuffer = %d, want 64", cfg.WSSendBuffer)
	}
}

func TestDurations_FallBackOnInvalid(t *testing.T) {
	testCases := []struct {
		name  string
		value string
	}{
		{"invalid", "soon"},
		{"zero", "0"},
		{"negative", "-5m"},
		{"empty", ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{RVASPDialTimeout: tc.value, RVASPSendTimeout: tc.value, WSWriteTimeout: tc.value}
			if cfg.DialTimeout() != 30*time.Second {
				t.Errorf("DialTimeout = %v, want 30s", cfg.DialTimeout())
			}
			if cfg.SendTimeout() != 30*time.Second {
				t.Errorf("SendTimeout = %v, want 30s", cfg.SendTimeout())
			}
			if cfg.WriteTimeout() != 10*time.Second {
				t.Errorf("WriteTimeout = %v, want 10s", cfg.WriteTimeout())
			}
		})
	}
}

func TestKafkaBrokersList(t *testing.T) {
	testCases := []struct {
		name string
		cfg  *Config
		want []string
	}{
		{"nil config", nil, nil},
		{"empty", &Config{}, nil},
		{"single", &Config{KafkaBrokers: "localhost:9092"}, []string{"localhost:9092"}},
		{"trims and skips blanks", &Config{KafkaBrokers: " a:9092, ,b:9092 "}, []string{"a:9092", "b:9092"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.cfg.KafkaBrokersList(); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("KafkaBrokersList = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestOTelInsecureOverride(t *testing.T) {
	for in, want := range map[string]bool{"": false, "true": true, " 1 ": true, "false": false, "nope": false} {
		c := &Config{OTelInsecure: in}
		if got := c.OTelInsecureOverride(); got != want {
			t.Errorf("OTelInsecureOverride(%q) = %v, want %v", in, got, want)
		}
	}
}
