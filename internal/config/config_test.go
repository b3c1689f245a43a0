package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// validEnv sets the minimum required env vars for a valid config.
func validEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_DSN", "postgres://u:p@localhost:5432/testdb")
	t.Setenv("AUTH_JWT_SECRET", "this-is-a-very-long-jwt-secret-for-testing-32+")
}

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"
  write_timeout: "15s"
  idle_timeout: "30s"
  shutdown_timeout: "5s"

database:
  dsn: "postgres://u:p@localhost:5432/testdb"
  max_conns: 10
  min_conns: 2

auth:
  jwt_secret: "this-is-a-very-long-jwt-secret-for-testing-32+"
  access_token_ttl: "8h"
  bcrypt_cost: 12

farm:
  min_password_length: 10
  list_default_limit: 25
  list_max_limit: 100
  audit_history_limit: 50

log:
  level: "debug"
  format: "text"
`

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("server.host = %q, want 127.0.0.1", cfg.Server.Host)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Database.MaxConns != 10 {
		t.Errorf("database.max_conns = %d, want 10", cfg.Database.MaxConns)
	}
	if cfg.Auth.AccessTokenTTL != 8*time.Hour {
		t.Errorf("auth.access_token_ttl = %v, want 8h", cfg.Auth.AccessTokenTTL)
	}
	if cfg.Auth.BcryptCost != 12 {
		t.Errorf("auth.bcrypt_cost = %d, want 12", cfg.Auth.BcryptCost)
	}
	if cfg.Farm.MinPasswordLength != 10 {
		t.Errorf("farm.min_password_length = %d, want 10", cfg.Farm.MinPasswordLength)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoad_EnvOnly_Defaults(t *testing.T) {
	validEnv(t)
	t.Setenv("CONFIG_PATH", "")
	// Run from a temp dir so no stray ./config.yaml is picked up.
	dir := t.TempDir()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server.port default = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Auth.AccessTokenTTL != 12*time.Hour {
		t.Errorf("auth.access_token_ttl default = %v, want 12h", cfg.Auth.AccessTokenTTL)
	}
	if cfg.Farm.ListDefaultLimit != 50 || cfg.Farm.ListMaxLimit != 200 {
		t.Errorf("farm list limits = %d/%d, want 50/200", cfg.Farm.ListDefaultLimit, cfg.Farm.ListMaxLimit)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("log.format default = %q, want json", cfg.Log.Format)
	}
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "7001")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Port != 7001 {
		t.Errorf("server.port = %d, want env override 7001", cfg.Server.Port)
	}
}

func TestLoad_MissingDSN(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "this-is-a-very-long-jwt-secret-for-testing-32+")
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("CONFIG_PATH", "")
	dir := t.TempDir()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })

	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail without DATABASE_DSN")
	}
}

func TestValidate_ShortJWTSecret(t *testing.T) {
	validEnv(t)
	t.Setenv("AUTH_JWT_SECRET", "short")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail for a short jwt secret")
	}
}

func TestValidate_BadBcryptCost(t *testing.T) {
	validEnv(t)
	t.Setenv("AUTH_BCRYPT_COST", "50")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail for bcrypt cost > 31")
	}
}

func TestValidate_FarmLimits(t *testing.T) {
	validEnv(t)
	t.Setenv("FARM_LIST_MAX_LIMIT", "10")
	t.Setenv("FARM_LIST_DEFAULT_LIMIT", "50")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail when list_max_limit < list_default_limit")
	}
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	validEnv(t)
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail for an explicit missing config file")
	}
}
