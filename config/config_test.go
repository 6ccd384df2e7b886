package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	configContent := `
api:
  base_url: "http://api.adcu.test/api"
  timeout: 15s
  upload_timeout: 90s
  analysis_timeout: 10m
session:
  path: "/tmp/adcu-session.json"
log:
  level: "debug"
  format: "json"
stub:
  port: 9090
  jwt_secret: "test-secret"
  token_expire_hours: 48
  rate_limit: 50
  minio:
    endpoint: "localhost:9000"
    access_key: "minioadmin"
    secret_key: "minioadmin"
    bucket: "adcu-docs"
  users:
    - email: "admin@adcu.test"
      password: "adminpass"
      name: "Admin"
      role: "admin"
`
	tmpFile := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(tmpFile, []byte(configContent), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(tmpFile)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.API.BaseURL != "http://api.adcu.test/api" {
		t.Errorf("Expected base URL, got %s", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 15*time.Second {
		t.Errorf("Expected 15s timeout, got %v", cfg.API.Timeout)
	}
	if cfg.API.UploadTimeout != 90*time.Second {
		t.Errorf("Expected 90s upload timeout, got %v", cfg.API.UploadTimeout)
	}
	if cfg.API.AnalysisTimeout != 10*time.Minute {
		t.Errorf("Expected 10m analysis timeout, got %v", cfg.API.AnalysisTimeout)
	}
	if cfg.Session.Path != "/tmp/adcu-session.json" {
		t.Errorf("Expected session path, got %s", cfg.Session.Path)
	}
	if cfg.Stub.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.Stub.Port)
	}
	if cfg.Stub.TokenExpireHours != 48 {
		t.Errorf("Expected 48h token expiry, got %d", cfg.Stub.TokenExpireHours)
	}
	if len(cfg.Stub.Users) != 1 || cfg.Stub.Users[0].Email != "admin@adcu.test" {
		t.Errorf("Expected seeded admin user, got %v", cfg.Stub.Users)
	}
	if cfg.Stub.Minio.Bucket != "adcu-docs" {
		t.Errorf("Expected minio bucket, got %s", cfg.Stub.Minio.Bucket)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Expected missing config to load defaults, got %v", err)
	}

	if cfg.API.Timeout != 10*time.Second {
		t.Errorf("Expected default 10s timeout, got %v", cfg.API.Timeout)
	}
	if cfg.API.UploadTimeout != 120*time.Second {
		t.Errorf("Expected default 120s upload timeout, got %v", cfg.API.UploadTimeout)
	}
	if cfg.API.AnalysisTimeout != 20*time.Minute {
		t.Errorf("Expected default 20m analysis timeout, got %v", cfg.API.AnalysisTimeout)
	}
	if cfg.Stub.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", cfg.Stub.Port)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Expected default log level info, got %s", cfg.Log.Level)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ADCU_API_URL", "http://override.adcu.test/api")
	t.Setenv("ADCU_SESSION_PATH", "/tmp/override-session.json")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.API.BaseURL != "http://override.adcu.test/api" {
		t.Errorf("Expected env override for base URL, got %s", cfg.API.BaseURL)
	}
	if cfg.Session.Path != "/tmp/override-session.json" {
		t.Errorf("Expected env override for session path, got %s", cfg.Session.Path)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(tmpFile, []byte("api: [not a map"), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := Load(tmpFile); err == nil {
		t.Error("Expected error for invalid YAML")
	}
}
