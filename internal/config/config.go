// ABOUTME: mapty configuration management with backend selection.
// ABOUTME: Handles settings, map defaults, and the storage backend factory.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/mapty/internal/app"
	"github.com/harperreed/mapty/internal/charm"
	"github.com/harperreed/mapty/internal/models"
	"github.com/harperreed/mapty/internal/storage"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	DefaultListen      = "127.0.0.1:8080"
	DefaultTileURL     = app.DefaultTileURL
	DefaultAttribution = app.DefaultAttribution
	DefaultZoom        = app.DefaultZoom
)

// Location is a fixed position used where no browser geolocation exists.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Config stores mapty configuration.
type Config struct {
	// Backend selects the storage backend: "badger" (default), "sqlite",
	// "charm" or "memory".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for data storage.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/mapty.
	DataDir string `json:"data_dir,omitempty"`

	// CharmHost overrides the charm server for the "charm" backend.
	CharmHost string `json:"charm_host,omitempty"`

	// CharmManualSync turns off the push after every write; run
	// "mapty sync now" instead.
	CharmManualSync bool `json:"charm_manual_sync,omitempty"`

	// Listen is the web server address.
	Listen string `json:"listen,omitempty"`

	// Location answers geolocation requests from the CLI and MCP server.
	Location *Location `json:"location,omitempty"`

	TileURL     string `json:"tile_url,omitempty"`
	Attribution string `json:"attribution,omitempty"`
	Zoom        int    `json:"zoom,omitempty"`

	// LogLevel is a zap level name: debug, info, warn, error.
	LogLevel string `json:"log_level,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "badger".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return "badger"
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetListen returns the web server address.
func (c *Config) GetListen() string {
	if c.Listen == "" {
		return DefaultListen
	}
	return c.Listen
}

// GetTileURL returns the map tile URL template.
func (c *Config) GetTileURL() string {
	if c.TileURL == "" {
		return DefaultTileURL
	}
	return c.TileURL
}

// GetAttribution returns the tile layer attribution HTML.
func (c *Config) GetAttribution() string {
	if c.Attribution == "" {
		return DefaultAttribution
	}
	return c.Attribution
}

// GetZoom returns the map zoom level.
func (c *Config) GetZoom() int {
	if c.Zoom <= 0 {
		return DefaultZoom
	}
	return c.Zoom
}

// GetLocation returns the configured fixed position, or nil.
func (c *Config) GetLocation() *models.Coords {
	if c.Location == nil {
		return nil
	}
	return &models.Coords{Lat: c.Location.Lat, Lng: c.Location.Lng}
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage creates a Slot implementation based on the configured backend.
func (c *Config) OpenStorage() (storage.Slot, error) {
	backend := c.GetBackend()
	dataDir := c.GetDataDir()

	switch backend {
	case "badger":
		return storage.OpenBadger(filepath.Join(dataDir, "badger"))
	case "sqlite":
		return storage.Open(filepath.Join(dataDir, "mapty.db"))
	case "charm":
		client, err := charm.InitClient(c.CharmHost)
		if err != nil {
			return nil, err
		}
		client.SetAutoSync(!c.CharmManualSync)
		return client, nil
	case "memory":
		return storage.NewMemorySlot(), nil
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// NewLogger builds a zap logger at the configured level.
func (c *Config) NewLogger() (*zap.SugaredLogger, error) {
	level := zapcore.InfoLevel
	if c.LogLevel != "" {
		if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
			return nil, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
		}
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger.Sugar(), nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "mapty", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// AppOptions returns the map settings and logger as App options.
func (c *Config) AppOptions(logger *zap.SugaredLogger) app.Options {
	return app.Options{
		TileURL:     c.GetTileURL(),
		Attribution: c.GetAttribution(),
		Zoom:        c.GetZoom(),
		Logger:      logger,
	}
}
