package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.User != "default" {
		t.Errorf("user = %q, want default", cfg.User)
	}
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for an explicitly named missing file")
	}
}

func TestLoad_FileValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("user: alice\ndb: /tmp/ll.db\nllm:\n  provider: openai\n  openai:\n    model: gpt-4o\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.User != "alice" {
		t.Errorf("user = %q, want alice", cfg.User)
	}
	if cfg.DB != "/tmp/ll.db" {
		t.Errorf("db = %q", cfg.DB)
	}

	llmCfg := cfg.ProviderConfig()
	if llmCfg.Provider != "openai" {
		t.Errorf("provider = %q, want openai", llmCfg.Provider)
	}
	if llmCfg.OpenAI.Model != "gpt-4o" {
		t.Errorf("model = %q, want gpt-4o", llmCfg.OpenAI.Model)
	}
}

func TestProviderConfig_EnvFallback(t *testing.T) {
	t.Setenv("LEARNLOOP_LLM_PROVIDER", "gemini")
	t.Setenv("LEARNLOOP_GEMINI_API_KEY", "test-key")

	cfg := &Config{}
	llmCfg := cfg.ProviderConfig()
	if llmCfg.Provider != "gemini" {
		t.Errorf("provider = %q, want gemini", llmCfg.Provider)
	}
	if llmCfg.Gemini.APIKey != "test-key" {
		t.Errorf("api key not taken from env")
	}
}
