package config

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
)

func TestLoad_Defaults(t *testing.T) {
	// Clear relevant env vars to test defaults
	envVars := []string{
		"CLASSSCAN_LOG_LEVEL", "CLASSSCAN_LOG_JSON",
		"CLASSSCAN_FORMAT", "CLASSSCAN_METHOD_SCANNER",
	}
	for _, v := range envVars {
		t.Setenv(v, "")
		os.Unsetenv(v)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %s, want info", cfg.LogLevel)
	}
	if cfg.LogJSON {
		t.Error("LogJSON should default to false")
	}
	if cfg.Format != "text" {
		t.Errorf("Format = %s, want text", cfg.Format)
	}
	if cfg.MethodScanner != "method" {
		t.Errorf("MethodScanner = %s, want method", cfg.MethodScanner)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("CLASSSCAN_LOG_LEVEL", "DEBUG")
	t.Setenv("CLASSSCAN_LOG_JSON", "true")
	t.Setenv("CLASSSCAN_FORMAT", "yaml")
	t.Setenv("CLASSSCAN_METHOD_SCANNER", "signature")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	level, err := cfg.Level()
	if err != nil {
		t.Fatalf("Level() error = %v", err)
	}
	if level != zerolog.DebugLevel {
		t.Errorf("Level() = %v, want debug", level)
	}
	if !cfg.LogJSON {
		t.Error("LogJSON should be true")
	}
	if cfg.Format != "yaml" {
		t.Errorf("Format = %s, want yaml", cfg.Format)
	}
	if cfg.MethodScanner != "signature" {
		t.Errorf("MethodScanner = %s, want signature", cfg.MethodScanner)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{LogLevel: "warn", Format: "json"}, false},
		{"bad level", Config{LogLevel: "loud", Format: "text"}, true},
		{"bad format", Config{LogLevel: "info", Format: "xml"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
