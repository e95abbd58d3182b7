package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitConfigCreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, err := InitConfig(path)
	if err != nil {
		t.Fatalf("InitConfig: %v", err)
	}
	if cfg.Server.MaxLimit != DefaultConfig().Server.MaxLimit {
		t.Errorf("MaxLimit = %d, want default %d", cfg.Server.MaxLimit, DefaultConfig().Server.MaxLimit)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file was not created: %v", err)
	}

	// Second call loads the file it just wrote.
	again, err := InitConfig(path)
	if err != nil {
		t.Fatalf("InitConfig reload: %v", err)
	}
	if *again != *cfg {
		t.Errorf("reloaded config %+v differs from %+v", again, cfg)
	}
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	partial := "[server]\nmax_limit = 5\n"
	if err := os.WriteFile(path, []byte(partial), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.MaxLimit != 5 {
		t.Errorf("MaxLimit = %d, want 5 from file", cfg.Server.MaxLimit)
	}
	if cfg.Server.MaxQueryLen != DefaultConfig().Server.MaxQueryLen {
		t.Errorf("MaxQueryLen = %d, want default", cfg.Server.MaxQueryLen)
	}
	if !cfg.Recommend.CacheEnabled {
		t.Error("CacheEnabled should default to true")
	}
}

func TestLoadConfigClampsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	bad := "[server]\nmax_limit = -3\nmax_query_len = 0\n[cli]\ndefault_limit = 0\n"
	if err := os.WriteFile(path, []byte(bad), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	def := DefaultConfig()
	if cfg.Server.MaxLimit != def.Server.MaxLimit {
		t.Errorf("MaxLimit = %d, want clamped default %d", cfg.Server.MaxLimit, def.Server.MaxLimit)
	}
	if cfg.Server.MaxQueryLen != def.Server.MaxQueryLen {
		t.Errorf("MaxQueryLen = %d, want clamped default %d", cfg.Server.MaxQueryLen, def.Server.MaxQueryLen)
	}
	if cfg.CLI.DefaultLimit != def.CLI.DefaultLimit {
		t.Errorf("DefaultLimit = %d, want clamped default %d", cfg.CLI.DefaultLimit, def.CLI.DefaultLimit)
	}
}
