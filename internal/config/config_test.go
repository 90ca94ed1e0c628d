package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	c, err := Load(filepath.Join(dir, "config.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if c.DataDir != dir {
		t.Errorf("DataDir = %q, want %q", c.DataDir, dir)
	}
	if c.DBPath != filepath.Join(dir, "solver.db") {
		t.Errorf("DBPath = %q", c.DBPath)
	}
	if c.TableDir != filepath.Join(dir, "tables") {
		t.Errorf("TableDir = %q", c.TableDir)
	}
	if !c.Pruning || c.Workers < 1 || len(c.Tables) != 3 {
		t.Errorf("unexpected defaults: %+v", c)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	data := `
data_dir = "` + filepath.ToSlash(filepath.Join(dir, "data")) + `"
workers = 2
pruning = false
max_depth = 18
tables = ["corners"]
build_max_depth = 9
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Workers != 2 || c.Pruning || c.MaxDepth != 18 || c.BuildMaxDepth != 9 {
		t.Errorf("values not applied: %+v", c)
	}
	if len(c.Tables) != 1 || c.Tables[0] != "corners" {
		t.Errorf("Tables = %v", c.Tables)
	}
	if c.TableDir != filepath.Join(dir, "data", "tables") {
		t.Errorf("TableDir = %q, want it under data_dir", c.TableDir)
	}
	if c.BuildWorkers != 3 {
		t.Errorf("BuildWorkers = %d, want default 3", c.BuildWorkers)
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "workers = "},
		{"workers", "workers = 0"},
		{"depth", "max_depth = -1"},
		{"build depth", "build_max_depth = 300"},
		{"tables", "tables = []"},
	}
	for _, tt := range tests {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte(tt.data), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("%s: expected an error", tt.name)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")

	c := Default(dir)
	c.Workers = 5
	c.MaxDepth = 20
	c.Tables = []string{"edges1", "edges2"}
	if err := c.Save(path); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Workers != 5 || got.MaxDepth != 20 || len(got.Tables) != 2 {
		t.Errorf("round trip lost values: %+v", got)
	}
	if got.DBPath != c.DBPath {
		t.Errorf("DBPath = %q, want %q", got.DBPath, c.DBPath)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := expandHome("~/x"); got != filepath.Join(home, "x") {
		t.Errorf("expandHome(~/x) = %q", got)
	}
	if got := expandHome("/abs"); got != "/abs" {
		t.Errorf("expandHome(/abs) = %q", got)
	}
}
