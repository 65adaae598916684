// Package config defines the server configuration structure.
package config

import (
	"os"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Bind != DefaultBind {
		t.Errorf("Server.Bind = %q, want %q", cfg.Server.Bind, DefaultBind)
	}
	if cfg.Server.Port != DefaultPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Server.ReadTimeout != DefaultReadTimeout {
		t.Errorf("Server.ReadTimeout = %v, want %v", cfg.Server.ReadTimeout, DefaultReadTimeout)
	}

	if cfg.Storage.DataDir != DefaultDataDir {
		t.Errorf("DataDir = %q, want %q", cfg.Storage.DataDir, DefaultDataDir)
	}
	if cfg.Storage.AppendOnly != DefaultAppendOnly {
		t.Errorf("AppendOnly = %v, want %v", cfg.Storage.AppendOnly, DefaultAppendOnly)
	}
	if cfg.Storage.SnapshotKeep != DefaultSnapshotKeep {
		t.Errorf("SnapshotKeep = %d, want %d", cfg.Storage.SnapshotKeep, DefaultSnapshotKeep)
	}
	if len(cfg.Storage.SaveRules) != len(DefaultSaveRules) {
		t.Errorf("SaveRules = %v, want %v", cfg.Storage.SaveRules, DefaultSaveRules)
	}

	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, DefaultLogLevel)
	}
	if cfg.Log.Format != DefaultLogFormat {
		t.Errorf("Log.Format = %q, want %q", cfg.Log.Format, DefaultLogFormat)
	}
}

func TestDefault_SaveRulesAreIndependentCopies(t *testing.T) {
	cfg := Default()
	cfg.Storage.SaveRules[0] = "mutated"

	cfg2 := Default()
	if cfg2.Storage.SaveRules[0] == "mutated" {
		t.Error("Default() should return an independent copy of SaveRules each call")
	}
}

func TestSanitize(t *testing.T) {
	cfg := &ServerConfig{
		Server: ServerSection{Bind: "127.0.0.1", Port: 6379},
	}

	sanitized := Sanitize(cfg)

	if sanitized.Server.Bind != cfg.Server.Bind || sanitized.Server.Port != cfg.Server.Port {
		t.Error("Sanitize should preserve non-sensitive fields")
	}
	if sanitized == cfg {
		t.Error("Sanitize should return a copy, not the same pointer")
	}
}

func TestVerify_ValidConfig(t *testing.T) {
	dir := t.TempDir()

	cfg := &ServerConfig{
		Server: ServerSection{
			Bind: "127.0.0.1",
			Port: 6379,
		},
		Storage: StorageSection{
			DataDir:      dir,
			SnapshotKeep: 3,
			SaveRules:    []string{"900:1"},
		},
	}

	if err := Verify(cfg); err != nil {
		t.Errorf("Verify failed: %v", err)
	}
}

func TestVerify_EmptyDataDir(t *testing.T) {
	cfg := &ServerConfig{
		Server:  ServerSection{Bind: "127.0.0.1", Port: 6379},
		Storage: StorageSection{DataDir: "", SnapshotKeep: 3},
	}

	err := Verify(cfg)
	if err == nil {
		t.Error("Expected error for empty data_dir")
	}
}

func TestVerify_InvalidSnapshotKeep(t *testing.T) {
	dir := t.TempDir()

	cfg := &ServerConfig{
		Server:  ServerSection{Bind: "127.0.0.1", Port: 6379},
		Storage: StorageSection{DataDir: dir, SnapshotKeep: 0},
	}

	err := Verify(cfg)
	if err == nil {
		t.Error("Expected error for invalid snapshot_keep")
	}
}

func TestVerify_InvalidPort(t *testing.T) {
	dir := t.TempDir()

	cfg := &ServerConfig{
		Server:  ServerSection{Bind: "127.0.0.1", Port: 70000},
		Storage: StorageSection{DataDir: dir, SnapshotKeep: 1},
	}

	if err := Verify(cfg); err == nil {
		t.Error("Expected error for out-of-range port")
	}
}

func TestVerify_InvalidSaveRule(t *testing.T) {
	dir := t.TempDir()

	cfg := &ServerConfig{
		Server:  ServerSection{Bind: "127.0.0.1", Port: 6379},
		Storage: StorageSection{DataDir: dir, SnapshotKeep: 1, SaveRules: []string{"not-a-rule"}},
	}

	if err := Verify(cfg); err == nil {
		t.Error("Expected error for malformed save rule")
	}
}

func TestVerify_CreateDataDir(t *testing.T) {
	dir := t.TempDir()
	newDir := dir + "/subdir/data"

	cfg := &ServerConfig{
		Server:  ServerSection{Bind: "127.0.0.1", Port: 6379},
		Storage: StorageSection{DataDir: newDir, SnapshotKeep: 1},
	}

	if err := Verify(cfg); err != nil {
		t.Errorf("Verify failed: %v", err)
	}

	if _, err := os.Stat(newDir); os.IsNotExist(err) {
		t.Error("Data directory should have been created")
	}
}

func TestConstants(t *testing.T) {
	if DefaultBind != "127.0.0.1" {
		t.Errorf("DefaultBind = %q", DefaultBind)
	}
	if DefaultPort != 6379 {
		t.Errorf("DefaultPort = %d", DefaultPort)
	}
	if DefaultLogLevel != "info" {
		t.Errorf("DefaultLogLevel = %q", DefaultLogLevel)
	}
	if DefaultLogFormat != "json" {
		t.Errorf("DefaultLogFormat = %q", DefaultLogFormat)
	}
}

func TestServerConfig_Struct(t *testing.T) {
	cfg := ServerConfig{
		Server: ServerSection{
			Bind: "0.0.0.0",
			Port: 6379,
		},
		Storage: StorageSection{
			DataDir:      "/data",
			AppendOnly:   true,
			SnapshotKeep: 5,
		},
		Log: LogSection{
			Level:  "debug",
			Format: "text",
		},
	}

	if cfg.Server.Bind != "0.0.0.0" {
		t.Error("Bind not set correctly")
	}
	if !cfg.Storage.AppendOnly {
		t.Error("AppendOnly should be true")
	}
}
