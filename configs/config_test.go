package configs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestDefaultsFromConfigFile tests the checked-in config.yaml loads with defaults
func TestDefaultsFromConfigFile(t *testing.T) {
	if err := InitViper(".", ""); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	cfg := GetViper()

	if cfg.App.Port != "9089" {
		t.Errorf("expected App.Port to be 9089, got %s", cfg.App.Port)
	}
	if cfg.Workflow.Timeout != 30*time.Second {
		t.Errorf("expected Workflow.Timeout to be 30s, got %v", cfg.Workflow.Timeout)
	}
	if cfg.Session.IdleTimeout != 30*time.Minute {
		t.Errorf("expected Session.IdleTimeout to be 30m, got %v", cfg.Session.IdleTimeout)
	}
	if cfg.Postgres.Enabled {
		t.Error("expected Postgres archive to be disabled by default")
	}
	if cfg.Line.Enabled {
		t.Error("expected LINE channel to be disabled by default")
	}
}

// TestEnvironmentOverridesConfigFile tests env vars take precedence over config.yaml
func TestEnvironmentOverridesConfigFile(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("WORKFLOW_URL", "https://n8n.example.com/webhook/chat")
	t.Setenv("WORKFLOW_TIMEOUT", "45s")
	t.Setenv("SESSION_IDLE_TIMEOUT", "10m")
	t.Setenv("LINE_ENABLED", "true")

	if err := InitViper(".", "test"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	cfg := GetViper()

	if cfg.App.Port != "8080" {
		t.Errorf("expected App.Port to be 8080, got %s", cfg.App.Port)
	}
	if cfg.App.Env != "test" {
		t.Errorf("expected App.Env to be test, got %s", cfg.App.Env)
	}
	if cfg.Workflow.URL != "https://n8n.example.com/webhook/chat" {
		t.Errorf("unexpected Workflow.URL %s", cfg.Workflow.URL)
	}
	if cfg.Workflow.Timeout != 45*time.Second {
		t.Errorf("expected Workflow.Timeout to be 45s, got %v", cfg.Workflow.Timeout)
	}
	if cfg.Session.IdleTimeout != 10*time.Minute {
		t.Errorf("expected Session.IdleTimeout to be 10m, got %v", cfg.Session.IdleTimeout)
	}
	if !cfg.Line.Enabled {
		t.Error("expected LINE channel to be enabled")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}
}

// TestMissingConfigFileUsesDefaults tests env-only deployments
func TestMissingConfigFileUsesDefaults(t *testing.T) {
	t.Setenv("WORKFLOW_URL", "http://localhost:5678/webhook/chat")

	if err := InitViper(t.TempDir(), ""); err != nil {
		t.Fatalf("expected no error without config file, got %v", err)
	}

	cfg := GetViper()
	if cfg.App.Port != DefaultAppPort {
		t.Errorf("expected default port %s, got %s", DefaultAppPort, cfg.App.Port)
	}
	if cfg.Workflow.Timeout != DefaultWorkflowTimeout {
		t.Errorf("expected default timeout %v, got %v", DefaultWorkflowTimeout, cfg.Workflow.Timeout)
	}
	if cfg.Workflow.URL != "http://localhost:5678/webhook/chat" {
		t.Errorf("unexpected Workflow.URL %s", cfg.Workflow.URL)
	}
}

// TestEnvOverlayFile tests config.<env>.yaml is merged over config.yaml
func TestEnvOverlayFile(t *testing.T) {
	dir := t.TempDir()
	base := "app:\n  port: \"7000\"\nworkflow:\n  url: http://base.example.com/hook\n"
	overlay := "workflow:\n  url: http://staging.example.com/hook\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(base), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.staging.yaml"), []byte(overlay), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := InitViper(dir, "staging"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	cfg := GetViper()
	if cfg.Workflow.URL != "http://staging.example.com/hook" {
		t.Errorf("expected overlay URL, got %s", cfg.Workflow.URL)
	}
	if cfg.App.Port != "7000" {
		t.Errorf("expected base port to survive the overlay, got %s", cfg.App.Port)
	}
}

// TestMalformedConfigFile tests a broken file is reported, not ignored
func TestMalformedConfigFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("app: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := InitViper(dir, ""); err == nil {
		t.Fatal("expected error for malformed config file")
	}
}

// TestValidateWorkflowURL tests the one required key
func TestValidateWorkflowURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr error
	}{
		{name: "missing", url: "", wantErr: ErrMissingWorkflowURL},
		{name: "blank", url: "   ", wantErr: ErrMissingWorkflowURL},
		{name: "relative", url: "webhook/chat", wantErr: ErrInvalidWorkflowURL},
		{name: "wrong scheme", url: "ftp://example.com/hook", wantErr: ErrInvalidWorkflowURL},
		{name: "http", url: "http://localhost:5678/webhook/chat"},
		{name: "https", url: "https://n8n.example.com/webhook/abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Workflow: Workflow{URL: tt.url}}
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
