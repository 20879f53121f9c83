// ABOUTME: CLI commands for viewing and editing mapty configuration.
// ABOUTME: Prints the config file and sets the default location and storage backend.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/mapty/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:         "config",
	Short:       "View or edit configuration",
	Annotations: map[string]string{skipStorage: ""},
	Long: `View or edit ~/.config/mapty/config.json.

KEYS:

  backend       badger (default), sqlite, charm, memory
  data_dir      data directory (default ~/.local/share/mapty)
  charm_host    charm server for the charm backend
  charm_manual_sync
                true to sync only on 'mapty sync now'
  listen        web server address (default 127.0.0.1:8080)
  location      {lat, lng} used by 'add' and the MCP server
  tile_url      map tile URL template
  attribution   tile attribution HTML
  zoom          map zoom (default 14)
  log_level     debug, info, warn, error`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(color.New(color.Faint).Sprint(config.GetConfigPath()))
		fmt.Println(string(data))
		return nil
	},
}

var configSetLocationCmd = &cobra.Command{
	Use:   "set-location <lat,lng>",
	Short: "Set the default workout location",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := parseCoords(args[0])
		if err != nil {
			return err
		}
		saved, err := config.Load()
		if err != nil {
			return err
		}
		saved.Location = &config.Location{Lat: c.Lat, Lng: c.Lng}
		if err := saved.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		color.Green("✓ Location set to %s", c)
		return nil
	},
}

var configSetBackendCmd = &cobra.Command{
	Use:       "set-backend <badger|sqlite|charm|memory>",
	Short:     "Set the storage backend",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"badger", "sqlite", "charm", "memory"},
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "badger", "sqlite", "charm", "memory":
		default:
			return fmt.Errorf("unknown backend: %s", args[0])
		}
		saved, err := config.Load()
		if err != nil {
			return err
		}
		saved.Backend = args[0]
		if err := saved.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		color.Green("✓ Backend set to %s", args[0])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSetLocationCmd)
	configCmd.AddCommand(configSetBackendCmd)
	rootCmd.AddCommand(configCmd)
}
