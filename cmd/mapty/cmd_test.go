// ABOUTME: Tests for CLI helper functions and command execution.
// ABOUTME: Runs commands against temp XDG directories and checks the stored workouts.
package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/harperreed/mapty/internal/config"
	"github.com/harperreed/mapty/internal/models"
	"github.com/harperreed/mapty/internal/storage"
)

func TestParseCoords(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    models.Coords
		wantErr bool
	}{
		{name: "plain", input: "51.5,-0.12", want: models.Coords{Lat: 51.5, Lng: -0.12}},
		{name: "spaces", input: " 10 , 20 ", want: models.Coords{Lat: 10, Lng: 20}},
		{name: "one value", input: "51.5", wantErr: true},
		{name: "three values", input: "1,2,3", wantErr: true},
		{name: "bad latitude", input: "north,20", wantErr: true},
		{name: "bad longitude", input: "10,east", wantErr: true},
		{name: "latitude out of range", input: "91,0", wantErr: true},
		{name: "longitude out of range", input: "0,181", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCoords(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseCoords(%q) expected error, got nil", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseCoords(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("parseCoords(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolveLocation(t *testing.T) {
	fallback := &models.Coords{Lat: 1, Lng: 2}

	got, err := resolveLocation("10,20", fallback)
	if err != nil || got != (models.Coords{Lat: 10, Lng: 20}) {
		t.Errorf("flag should win: got %v, %v", got, err)
	}

	got, err = resolveLocation("", fallback)
	if err != nil || got != *fallback {
		t.Errorf("expected fallback: got %v, %v", got, err)
	}

	if _, err := resolveLocation("", nil); err == nil {
		t.Error("expected error without any location")
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("abc", 6); got != "abc   " {
		t.Errorf("padRight = %q", got)
	}
	if got := padRight("abcdef", 3); got != "abcdef" {
		t.Errorf("padRight should not truncate, got %q", got)
	}
}

func TestTrimFloat(t *testing.T) {
	tests := map[float64]string{5: "5", 5.5: "5.5", 5.25: "5.25", 0.125: "0.13"}
	for in, want := range tests {
		if got := trimFloat(in); got != want {
			t.Errorf("trimFloat(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestRootCmd(t *testing.T) {
	if rootCmd.Use != "mapty" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "mapty")
	}
	for _, name := range []string{"backend", "data-dir", "ephemeral"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("Expected --%s persistent flag", name)
		}
	}

	want := []string{"add", "list", "show", "reset", "export", "import", "serve", "mcp", "config", "sync"}
	have := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		have[c.Name()] = true
	}
	for _, name := range want {
		if !have[name] {
			t.Errorf("Expected %s command to be registered", name)
		}
	}
}

func TestListCmdFlags(t *testing.T) {
	if listCmd.Flags().Lookup("type") == nil {
		t.Error("Expected --type flag on list command")
	}
	limitFlag := listCmd.Flags().Lookup("limit")
	if limitFlag == nil {
		t.Fatal("Expected --limit flag on list command")
	}
	if limitFlag.DefValue != "20" {
		t.Errorf("Expected default limit 20, got %s", limitFlag.DefValue)
	}
}

func TestNeedsStorage(t *testing.T) {
	if needsStorage(configSetLocationCmd) {
		t.Error("config subcommands should not open storage")
	}
	if needsStorage(syncStatusCmd) {
		t.Error("sync subcommands open charm themselves")
	}
	if !needsStorage(addCmd) {
		t.Error("add needs storage")
	}
}

// setupTestCLI points XDG directories at a temp dir and resets flag state.
func setupTestCLI(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmpDir, "data"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))

	flagBackend, flagDataDir, flagEphemeral = "sqlite", "", false
	addAt = ""
	listType, listLimit = "", 20
	exportFormat, exportOutput = "json", ""
	t.Cleanup(func() { flagBackend = "" })

	return tmpDir
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(append(args, "--backend", "sqlite"))
	return rootCmd.Execute()
}

// stored opens the sqlite slot the CLI wrote to.
func stored(t *testing.T) []*models.Workout {
	t.Helper()
	db, err := storage.Open(filepath.Join(os.Getenv("XDG_DATA_HOME"), "mapty", "mapty.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	return storage.NewWorkoutStore(db).Load()
}

func TestAddCmdRunning(t *testing.T) {
	setupTestCLI(t)

	if err := run(t, "add", "running", "5", "25", "180", "--at", "10,20"); err != nil {
		t.Fatalf("add command failed: %v", err)
	}

	workouts := stored(t)
	if len(workouts) != 1 {
		t.Fatalf("Expected 1 workout, got %d", len(workouts))
	}
	w := workouts[0]
	if w.Type != models.WorkoutRunning || w.Running.Pace != 5.0 {
		t.Errorf("Unexpected workout: %+v %+v", w, w.Running)
	}
	if w.Coords != (models.Coords{Lat: 10, Lng: 20}) {
		t.Errorf("Coords = %v", w.Coords)
	}
}

func TestAddCmdCyclingUsesConfiguredLocation(t *testing.T) {
	setupTestCLI(t)
	cfg := &config.Config{Location: &config.Location{Lat: 3, Lng: 4}}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save config: %v", err)
	}

	if err := run(t, "add", "cycling", "20", "60", "150"); err != nil {
		t.Fatalf("add command failed: %v", err)
	}

	workouts := stored(t)
	if len(workouts) != 1 {
		t.Fatalf("Expected 1 workout, got %d", len(workouts))
	}
	if workouts[0].Cycling.Speed != 20.0 {
		t.Errorf("Speed = %f, want 20", workouts[0].Cycling.Speed)
	}
	if workouts[0].Coords != (models.Coords{Lat: 3, Lng: 4}) {
		t.Errorf("Coords = %v", workouts[0].Coords)
	}
}

func TestAddCmdRejectsInvalidInput(t *testing.T) {
	tests := [][]string{
		{"add", "running", "-5", "25", "180", "--at", "10,20"},
		{"add", "running", "5", "abc", "180", "--at", "10,20"},
		{"add", "running", "5", "25", "0", "--at", "10,20"},
		{"add", "swimming", "1", "1", "1", "--at", "10,20"},
		{"add", "running", "5", "25", "180"},
	}

	for _, args := range tests {
		setupTestCLI(t)
		if err := run(t, args...); err == nil {
			t.Errorf("%v: expected error", args)
		}
		if n := len(stored(t)); n != 0 {
			t.Errorf("%v: expected nothing stored, got %d", args, n)
		}
	}
}

func TestListAndShowCmd(t *testing.T) {
	setupTestCLI(t)
	if err := run(t, "add", "running", "5", "25", "180", "--at", "10,20"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	addAt = ""
	if err := run(t, "list"); err != nil {
		t.Errorf("list failed: %v", err)
	}
	if err := run(t, "list", "--type", "cycling"); err != nil {
		t.Errorf("list --type failed: %v", err)
	}
	if err := run(t, "list", "--type", "rowing"); err == nil {
		t.Error("expected error for unknown type")
	}
	listType = ""

	w := stored(t)[0]
	if err := run(t, "show", w.ShortID()); err != nil {
		t.Errorf("show failed: %v", err)
	}
	if err := run(t, "show", "nonexistent"); err == nil {
		t.Error("expected error for unknown id")
	}
}

func TestResetCmd(t *testing.T) {
	setupTestCLI(t)
	if err := run(t, "add", "running", "5", "25", "180", "--at", "10,20"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := run(t, "reset"); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if n := len(stored(t)); n != 0 {
		t.Errorf("Expected empty store after reset, got %d", n)
	}
}

func TestExportImportCmd(t *testing.T) {
	tmpDir := setupTestCLI(t)
	if err := run(t, "add", "cycling", "20", "60", "150", "--at", "10,20"); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	backup := filepath.Join(tmpDir, "backup.json")
	if err := run(t, "export", "-o", backup); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if info, err := os.Stat(backup); err != nil || info.Size() == 0 {
		t.Fatalf("Expected non-empty export file: %v", err)
	}

	exportOutput = ""
	if err := run(t, "export", "--format", "yaml"); err != nil {
		t.Errorf("yaml export failed: %v", err)
	}
	if err := run(t, "export", "--format", "markdown"); err == nil {
		t.Error("expected error for unknown format")
	}
	exportFormat = "json"

	if err := run(t, "reset"); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if err := run(t, "import", backup); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if err := run(t, "import", backup); err != nil {
		t.Fatalf("second import failed: %v", err)
	}
	workouts := stored(t)
	if len(workouts) != 1 {
		t.Fatalf("Expected 1 workout after double import, got %d", len(workouts))
	}
	if workouts[0].Cycling.Speed != 20.0 {
		t.Errorf("Speed = %f, want 20", workouts[0].Cycling.Speed)
	}
}

func TestConfigSetLocationCmd(t *testing.T) {
	setupTestCLI(t)
	if err := run(t, "config", "set-location", "51.5,-0.12"); err != nil {
		t.Fatalf("config set-location failed: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load config: %v", err)
	}
	loc := cfg.GetLocation()
	if loc == nil || *loc != (models.Coords{Lat: 51.5, Lng: -0.12}) {
		t.Errorf("Location = %v", loc)
	}

	if err := run(t, "config", "set-backend", "floppy"); err == nil {
		t.Error("expected error for unknown backend")
	}
}
