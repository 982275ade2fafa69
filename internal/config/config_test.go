package config

import (
	"os"
	"strings"
	"testing"
)

func TestLoad_Success(t *testing.T) {
	envVars := map[string]string{
		"FIREBASE_API_KEY":      "test_api_key",
		"IDENTITY_BASE_URL":     "https://identity.test",
		"DATABASE_BASE_URL":     "https://db.test",
		"WORTMONITOR_DATA_DIR":  "/tmp/wortmonitor-test",
		"WORTMONITOR_LOG_LEVEL": "debug",
	}

	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"FirebaseAPIKey", cfg.FirebaseAPIKey, "test_api_key"},
		{"IdentityBaseURL", cfg.IdentityBaseURL, "https://identity.test"},
		{"DatabaseBaseURL", cfg.DatabaseBaseURL, "https://db.test"},
		{"DataDir", cfg.DataDir, "/tmp/wortmonitor-test"},
		{"LogLevel", cfg.LogLevel, "debug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.expected)
			}
		})
	}
}

func TestLoad_WithDefaults(t *testing.T) {
	t.Setenv("FIREBASE_API_KEY", "test_api_key")

	for _, key := range []string{
		"IDENTITY_BASE_URL",
		"DATABASE_BASE_URL",
		"WORTMONITOR_LOG_LEVEL",
	} {
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if want := "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"; cfg.IdentityBaseURL != want {
		t.Errorf("IdentityBaseURL = %q, want %q", cfg.IdentityBaseURL, want)
	}

	if !strings.HasPrefix(cfg.DatabaseBaseURL, "https://") {
		t.Errorf("DatabaseBaseURL = %q, want production default", cfg.DatabaseBaseURL)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}

	if cfg.DataDir == "" {
		t.Error("DataDir is empty, want a default")
	}
}

func TestLoad_MissingAPIKey(t *testing.T) {
	os.Unsetenv("FIREBASE_API_KEY")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() expected error, got nil")
	}

	if !strings.Contains(err.Error(), "FIREBASE_API_KEY") {
		t.Errorf("Load() error = %q, want error naming FIREBASE_API_KEY", err.Error())
	}
}
