package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
service_name = "orderdesk"
version = "1.0.0"
environment = "dev"

[http]
port = 8081

[database]
dsn = "root:root@tcp(localhost:3306)/orderdesk"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ServiceName != "orderdesk" {
		t.Errorf("expected service name orderdesk, got %s", cfg.ServiceName)
	}
	if cfg.HTTP.Port != 8081 {
		t.Errorf("expected port 8081, got %d", cfg.HTTP.Port)
	}
	// Unset values fall back to defaults
	if cfg.HTTP.ReadTimeout != 30 {
		t.Errorf("expected default read timeout 30, got %d", cfg.HTTP.ReadTimeout)
	}
	if cfg.Database.MaxOpenConns != 25 {
		t.Errorf("expected default max open conns 25, got %d", cfg.Database.MaxOpenConns)
	}
	if cfg.Kafka.Topic != "orderdesk.events" {
		t.Errorf("expected default kafka topic, got %s", cfg.Kafka.Topic)
	}
}

func TestLoadMissingServiceName(t *testing.T) {
	path := writeConfig(t, `
[http]
port = 8081
`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for missing service_name")
	}
}

func TestLoadKafkaEnabledWithoutBrokers(t *testing.T) {
	path := writeConfig(t, `
service_name = "orderdesk"

[kafka]
enabled = true
brokers = []
`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for enabled kafka without brokers")
	}
}
