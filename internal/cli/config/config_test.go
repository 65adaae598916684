// Package config defines the CLI configuration structure.
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.DefaultServer != "127.0.0.1:6379" {
		t.Errorf("DefaultServer = %q, want %q", cfg.DefaultServer, "127.0.0.1:6379")
	}
	if cfg.DefaultOutput != "table" {
		t.Errorf("DefaultOutput = %q, want %q", cfg.DefaultOutput, "table")
	}
	if cfg.Connections == nil {
		t.Error("Connections should not be nil")
	}
	if len(cfg.Connections) != 0 {
		t.Errorf("Connections should be empty, got %d", len(cfg.Connections))
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()

	if path == "" {
		t.Error("DefaultConfigPath should not be empty")
	}
	if !filepath.IsAbs(path) {
		t.Error("Path should be absolute")
	}

	expected := filepath.Join(".ferrodb", "cli.yaml")
	if !containsSuffix(path, expected) {
		t.Errorf("Path = %q, should end with %q", path, expected)
	}
}

func containsSuffix(s, suffix string) bool {
	return len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix
}

func TestLoad_NonExistentFile(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Errorf("Load should not error for nonexistent file: %v", err)
	}
	if cfg == nil {
		t.Error("Load should return default config")
	}
	if cfg.DefaultServer != "127.0.0.1:6379" {
		t.Error("Should return default config for nonexistent file")
	}
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Errorf("Load should not error: %v", err)
	}
	if cfg == nil {
		t.Error("Load should return config")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subdir", "cli.yaml")

	cfg := Default()
	cfg.DefaultServer = "10.0.0.5:6379"
	cfg.Connections["prod"] = ConnectionConfig{Server: "10.0.0.9:6379"}

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	parentDir := filepath.Dir(path)
	if _, err := os.Stat(parentDir); os.IsNotExist(err) {
		t.Fatal("Directory should have been created")
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.DefaultServer != "10.0.0.5:6379" {
		t.Errorf("DefaultServer = %q, want %q", loaded.DefaultServer, "10.0.0.5:6379")
	}
	if loaded.Connections["prod"].Server != "10.0.0.9:6379" {
		t.Errorf("Connections[prod].Server = %q, want %q", loaded.Connections["prod"].Server, "10.0.0.9:6379")
	}
}

func TestMerge(t *testing.T) {
	cfg := Default()

	env := map[string]string{
		"FERRODB_CLI_SERVER": "example.com:6379",
	}
	flags := map[string]string{
		"output": "json",
	}

	result := Merge(cfg, env, flags)
	if result.DefaultServer != "example.com:6379" {
		t.Errorf("DefaultServer = %q, want env override", result.DefaultServer)
	}
	if result.DefaultOutput != "json" {
		t.Errorf("DefaultOutput = %q, want flag override", result.DefaultOutput)
	}
}

func TestMerge_FlagOverridesEnv(t *testing.T) {
	cfg := Default()

	env := map[string]string{"FERRODB_CLI_SERVER": "from-env:6379"}
	flags := map[string]string{"server": "from-flag:6379"}

	result := Merge(cfg, env, flags)
	if result.DefaultServer != "from-flag:6379" {
		t.Errorf("DefaultServer = %q, want flag to win over env", result.DefaultServer)
	}
}

func TestCLIConfig_Struct(t *testing.T) {
	cfg := CLIConfig{
		DefaultServer:     "10.0.0.1:6379",
		DefaultOutput:     "json",
		CurrentConnection: "prod",
		Connections: map[string]ConnectionConfig{
			"prod": {Server: "10.0.0.2:6379"},
			"dev":  {Server: "127.0.0.1:6379"},
		},
	}

	if cfg.DefaultServer != "10.0.0.1:6379" {
		t.Error("DefaultServer not set correctly")
	}
	if len(cfg.Connections) != 2 {
		t.Error("Connections count incorrect")
	}
}
