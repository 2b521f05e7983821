package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoadTraits(t *testing.T) {
	table, err := loadTraits(&TraitsConfig{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Version < 1 {
		t.Fatalf("expected a versioned built-in table, got version %d", table.Version)
	}

	if _, err := loadTraits(&TraitsConfig{KeywordsFile: filepath.Join(t.TempDir(), "missing.yaml")}); err == nil {
		t.Fatal("expected error for a missing keywords file")
	}
}

func TestPetfinderCredentials(t *testing.T) {
	secretFile := filepath.Join(t.TempDir(), "secret")
	if err := os.WriteFile(secretFile, []byte("  from-file\n"), 0o600); err != nil {
		t.Fatalf("writing secret: %v", err)
	}

	creds, err := petfinderCredentials(&PetfinderConfig{APIKey: " key ", Secret: "inline", SecretFile: secretFile})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if creds.APIKey != "key" || creds.Secret != "from-file" {
		t.Fatalf("unexpected credentials: %+v", creds)
	}

	creds, err = petfinderCredentials(&PetfinderConfig{})
	if err != nil {
		t.Fatalf("missing credentials should not fail: %v", err)
	}
	if creds.Configured() {
		t.Fatal("expected unconfigured credentials")
	}
}

func TestNewAdvisorDisabled(t *testing.T) {
	if a := newAdvisor(context.Background(), &AIConfig{Enabled: false}, zap.NewNop()); a != nil {
		t.Fatal("expected no advisor when disabled")
	}

	core, observed := observer.New(zapcore.WarnLevel)
	cfg := &AIConfig{Enabled: true, Gemini: &GeminiConfig{}}
	if a := newAdvisor(context.Background(), cfg, zap.New(core)); a != nil {
		t.Fatal("expected no advisor without an api key")
	}
	if observed.FilterMessage("advisor disabled").Len() != 1 {
		t.Fatalf("expected a warning, got %v", observed.All())
	}
}
