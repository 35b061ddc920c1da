package config

import (
	"os"
	"testing"
)

func validConfig() Config {
	return Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{DSN: "host=localhost dbname=talent"},
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingDSN(t *testing.T) {
	cfg := validConfig()
	cfg.Database.DSN = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing dsn")
	}
}

func TestValidate_EmbeddingEnabledRequiresProvider(t *testing.T) {
	cfg := validConfig()
	cfg.Embedding = EmbeddingConfig{Enabled: true, Model: "text-embedding-3-small"}
	cfg.Vector.Addrs = []string{"localhost:6379"}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing embedding provider")
	}

	cfg.Embedding.Provider = "openai"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_EmbeddingEnabledRequiresVectorAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Embedding = EmbeddingConfig{Enabled: true, Provider: "openai", Model: "text-embedding-3-small"}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing vector addrs")
	}
}

func TestValidate_EmbeddingDisabledSkipsVectorChecks(t *testing.T) {
	cfg := validConfig()
	cfg.Embedding = EmbeddingConfig{Enabled: false}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 30 {
		t.Errorf("expected WriteTimeoutSec=30, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Database.MaxOpenConns != 20 {
		t.Errorf("expected MaxOpenConns=20, got %d", cfg.Database.MaxOpenConns)
	}
	if cfg.Vector.KeyPrefix != "talent:" {
		t.Errorf("expected KeyPrefix='talent:', got %q", cfg.Vector.KeyPrefix)
	}
	if cfg.Vector.HNSWM != 16 {
		t.Errorf("expected HNSWM=16, got %d", cfg.Vector.HNSWM)
	}
	if cfg.Vector.HNSWEFConstruct != 200 {
		t.Errorf("expected HNSWEFConstruct=200, got %d", cfg.Vector.HNSWEFConstruct)
	}
	if cfg.Search.CacheSize != 1024 {
		t.Errorf("expected CacheSize=1024, got %d", cfg.Search.CacheSize)
	}
	if cfg.Search.CacheTTLSec != 600 {
		t.Errorf("expected CacheTTLSec=600, got %d", cfg.Search.CacheTTLSec)
	}
	if cfg.Search.DefaultPageSize != 20 {
		t.Errorf("expected DefaultPageSize=20, got %d", cfg.Search.DefaultPageSize)
	}
	if cfg.Completion.Model != "gpt-4o-mini" {
		t.Errorf("expected default completion model, got %q", cfg.Completion.Model)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:   HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Vector: VectorConfig{KeyPrefix: "custom:", HNSWM: 32, HNSWEFConstruct: 400},
		Search: SearchConfig{CacheSize: 16, CacheTTLSec: 30},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Vector.KeyPrefix != "custom:" {
		t.Errorf("expected KeyPrefix='custom:', got %q", cfg.Vector.KeyPrefix)
	}
	if cfg.Vector.HNSWM != 32 {
		t.Errorf("expected HNSWM=32, got %d", cfg.Vector.HNSWM)
	}
	if cfg.Search.CacheSize != 16 {
		t.Errorf("expected CacheSize=16, got %d", cfg.Search.CacheSize)
	}
}

func TestExpandEnvVars(t *testing.T) {
	os.Setenv("TALENT_TEST_VAR", "secret")
	defer os.Unsetenv("TALENT_TEST_VAR")

	in := []byte("api_key: ${TALENT_TEST_VAR}\nmodel: ${TALENT_TEST_MISSING:-fallback}\nempty: ${TALENT_TEST_MISSING}")
	out := string(expandEnvVars(in))

	want := "api_key: secret\nmodel: fallback\nempty: "
	if out != want {
		t.Errorf("unexpected expansion:\ngot:  %q\nwant: %q", out, want)
	}
}
