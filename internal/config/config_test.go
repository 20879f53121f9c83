// ABOUTME: Tests for mapty configuration management.
// ABOUTME: Covers load, save, defaults, backend selection, logger and path expansion.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestGetBackendDefault(t *testing.T) {
	cfg := &Config{}
	if got := cfg.GetBackend(); got != "badger" {
		t.Errorf("GetBackend() = %q, want %q", got, "badger")
	}
}

func TestGetBackendExplicit(t *testing.T) {
	cfg := &Config{Backend: "memory"}
	if got := cfg.GetBackend(); got != "memory" {
		t.Errorf("GetBackend() = %q, want %q", got, "memory")
	}
}

func TestGetDataDirDefault(t *testing.T) {
	cfg := &Config{}

	// GetDataDir with empty DataDir should return storage.DataDir()
	got := cfg.GetDataDir()
	if got == "" {
		t.Error("GetDataDir() returned empty string")
	}
}

func TestGetDataDirExplicit(t *testing.T) {
	cfg := &Config{DataDir: "/tmp/mapty-test"}
	if got := cfg.GetDataDir(); got != "/tmp/mapty-test" {
		t.Errorf("GetDataDir() = %q, want %q", got, "/tmp/mapty-test")
	}
}

func TestExpandPathEmpty(t *testing.T) {
	if got := ExpandPath(""); got != "" {
		t.Errorf("ExpandPath(\"\") = %q, want %q", got, "")
	}
}

func TestExpandPathAbsolute(t *testing.T) {
	if got := ExpandPath("/tmp/foo"); got != "/tmp/foo" {
		t.Errorf("ExpandPath(\"/tmp/foo\") = %q, want %q", got, "/tmp/foo")
	}
}

func TestExpandPathTilde(t *testing.T) {
	home, _ := os.UserHomeDir()

	got := ExpandPath("~")
	if got != home {
		t.Errorf("ExpandPath(\"~\") = %q, want %q", got, home)
	}
}

func TestExpandPathTildeSlash(t *testing.T) {
	home, _ := os.UserHomeDir()

	got := ExpandPath("~/data/mapty")
	want := filepath.Join(home, "data/mapty")
	if got != want {
		t.Errorf("ExpandPath(\"~/data/mapty\") = %q, want %q", got, want)
	}
}

func TestExpandPathRelative(t *testing.T) {
	if got := ExpandPath("data/mapty"); got != "data/mapty" {
		t.Errorf("ExpandPath(\"data/mapty\") = %q, want %q", got, "data/mapty")
	}
}

func TestGetDataDirExpandsTilde(t *testing.T) {
	home, _ := os.UserHomeDir()

	cfg := &Config{DataDir: "~/mapty-data"}
	got := cfg.GetDataDir()
	want := filepath.Join(home, "mapty-data")
	if got != want {
		t.Errorf("GetDataDir() = %q, want %q", got, want)
	}
}

func TestLoadNonExistentConfig(t *testing.T) {
	// Set XDG_CONFIG_HOME to a temp dir with no config file
	tmpDir, err := os.MkdirTemp("", "mapty-config-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	originalXDG := os.Getenv("XDG_CONFIG_HOME")
	os.Setenv("XDG_CONFIG_HOME", tmpDir)
	defer os.Setenv("XDG_CONFIG_HOME", originalXDG)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with no config file should not error: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}

	// Should return defaults
	if cfg.Backend != "" {
		t.Errorf("Expected empty Backend, got %q", cfg.Backend)
	}
	if cfg.DataDir != "" {
		t.Errorf("Expected empty DataDir, got %q", cfg.DataDir)
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "mapty-config-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	originalXDG := os.Getenv("XDG_CONFIG_HOME")
	os.Setenv("XDG_CONFIG_HOME", tmpDir)
	defer os.Setenv("XDG_CONFIG_HOME", originalXDG)

	// Save config
	cfg := &Config{
		Backend: "memory",
		DataDir: "/tmp/mapty-data",
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	// Load config
	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if loaded.Backend != "memory" {
		t.Errorf("Backend mismatch: got %q, want %q", loaded.Backend, "memory")
	}
	if loaded.DataDir != "/tmp/mapty-data" {
		t.Errorf("DataDir mismatch: got %q, want %q", loaded.DataDir, "/tmp/mapty-data")
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "mapty-config-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	// Point to a non-existent subdirectory
	originalXDG := os.Getenv("XDG_CONFIG_HOME")
	os.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "nonexistent"))
	defer os.Setenv("XDG_CONFIG_HOME", originalXDG)

	cfg := &Config{Backend: "sqlite"}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() should create directory: %v", err)
	}

	// Verify directory was created
	configDir := filepath.Join(tmpDir, "nonexistent", "mapty")
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		t.Error("Expected config directory to be created")
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "mapty-config-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	originalXDG := os.Getenv("XDG_CONFIG_HOME")
	os.Setenv("XDG_CONFIG_HOME", tmpDir)
	defer os.Setenv("XDG_CONFIG_HOME", originalXDG)

	// Write invalid JSON
	configDir := filepath.Join(tmpDir, "mapty")
	os.MkdirAll(configDir, 0755)
	os.WriteFile(filepath.Join(configDir, "config.json"), []byte("invalid json"), 0600)

	_, err = Load()
	if err == nil {
		t.Error("Expected error for invalid JSON config")
	}
}

func TestGetConfigPath(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "mapty-config-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	originalXDG := os.Getenv("XDG_CONFIG_HOME")
	os.Setenv("XDG_CONFIG_HOME", tmpDir)
	defer os.Setenv("XDG_CONFIG_HOME", originalXDG)

	got := GetConfigPath()
	want := filepath.Join(tmpDir, "mapty", "config.json")
	if got != want {
		t.Errorf("GetConfigPath() = %q, want %q", got, want)
	}
}

func TestOpenStorageSQLite(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "mapty-config-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	cfg := &Config{
		Backend: "sqlite",
		DataDir: tmpDir,
	}

	slot, err := cfg.OpenStorage()
	if err != nil {
		t.Fatalf("OpenStorage() for sqlite failed: %v", err)
	}
	defer slot.Close()

	if slot == nil {
		t.Error("Expected non-nil slotsitory")
	}

	// Verify database file was created
	dbPath := filepath.Join(tmpDir, "mapty.db")
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Expected mapty.db to be created")
	}
}

func TestOpenStorageMemory(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "mapty-config-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	cfg := &Config{
		Backend: "memory",
		DataDir: tmpDir,
	}

	slot, err := cfg.OpenStorage()
	if err != nil {
		t.Fatalf("OpenStorage() for memory failed: %v", err)
	}
	defer slot.Close()

	if slot == nil {
		t.Error("Expected non-nil slotsitory")
	}
}

func TestOpenStorageInvalidBackend(t *testing.T) {
	cfg := &Config{
		Backend: "invalid",
		DataDir: "/tmp",
	}

	_, err := cfg.OpenStorage()
	if err == nil {
		t.Error("Expected error for invalid backend")
	}
}

func TestConfigJSONSerialization(t *testing.T) {
	cfg := &Config{
		Backend: "memory",
		DataDir: "~/mapty-data",
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var loaded Config
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if loaded.Backend != cfg.Backend {
		t.Errorf("Backend mismatch: got %q, want %q", loaded.Backend, cfg.Backend)
	}
	if loaded.DataDir != cfg.DataDir {
		t.Errorf("DataDir mismatch: got %q, want %q", loaded.DataDir, cfg.DataDir)
	}
}

func TestCharmManualSyncKey(t *testing.T) {
	var cfg Config
	if err := json.Unmarshal([]byte(`{"backend":"charm","charm_manual_sync":true}`), &cfg); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !cfg.CharmManualSync {
		t.Error("charm_manual_sync not read")
	}
}

func TestConfigJSONOmitsEmpty(t *testing.T) {
	cfg := &Config{}

	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	// Empty config should result in "{}" since fields have omitempty
	if string(data) != "{}" {
		t.Errorf("Expected empty JSON object, got %s", string(data))
	}
}

func TestOpenStorageDefaultBackend(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "mapty-config-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	// Empty config should use the badger backend by default
	cfg := &Config{
		DataDir: tmpDir,
	}

	slot, err := cfg.OpenStorage()
	if err != nil {
		t.Fatalf("OpenStorage() with default backend failed: %v", err)
	}
	defer slot.Close()

	if slot == nil {
		t.Error("Expected non-nil slotsitory")
	}
}

func TestOpenStorageDefaultCreatesBadgerDir(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := &Config{DataDir: tmpDir}
	slot, err := cfg.OpenStorage()
	if err != nil {
		t.Fatalf("OpenStorage() failed: %v", err)
	}
	defer slot.Close()

	if _, err := os.Stat(filepath.Join(tmpDir, "badger")); os.IsNotExist(err) {
		t.Error("Expected badger directory to be created")
	}
}

func TestMapDefaults(t *testing.T) {
	cfg := &Config{}

	if got := cfg.GetListen(); got != DefaultListen {
		t.Errorf("GetListen() = %q, want %q", got, DefaultListen)
	}
	if got := cfg.GetTileURL(); got != "https://{s}.tile.openstreetmap.fr/hot/{z}/{x}/{y}.png" {
		t.Errorf("GetTileURL() = %q", got)
	}
	if got := cfg.GetAttribution(); got != DefaultAttribution {
		t.Errorf("GetAttribution() = %q", got)
	}
	if got := cfg.GetZoom(); got != 14 {
		t.Errorf("GetZoom() = %d, want 14", got)
	}
	if cfg.GetLocation() != nil {
		t.Error("GetLocation() should be nil when unset")
	}
}

func TestMapOverrides(t *testing.T) {
	cfg := &Config{
		Listen:   ":9000",
		Zoom:     10,
		Location: &Location{Lat: 10, Lng: 20},
	}

	if got := cfg.GetListen(); got != ":9000" {
		t.Errorf("GetListen() = %q, want :9000", got)
	}
	if got := cfg.GetZoom(); got != 10 {
		t.Errorf("GetZoom() = %d, want 10", got)
	}
	loc := cfg.GetLocation()
	if loc == nil || loc.Lat != 10 || loc.Lng != 20 {
		t.Errorf("GetLocation() = %v, want 10,20", loc)
	}
}

func TestNewLogger(t *testing.T) {
	logger, err := (&Config{LogLevel: "debug"}).NewLogger()
	if err != nil {
		t.Fatalf("NewLogger() failed: %v", err)
	}
	if !logger.Desugar().Core().Enabled(-1) {
		t.Error("expected debug level to be enabled")
	}

	if _, err := (&Config{LogLevel: "loud"}).NewLogger(); err == nil {
		t.Error("expected error for unknown log level")
	}
}
