package main

import (
	"bytes"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/maloquacious/arrowtower/internal/store"
)

// run executes the command tree with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), err
}

func routeCount(t *testing.T, path string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM "Route"`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	return n
}

func TestVersionSkipsConfig(t *testing.T) {
	chdir(t, t.TempDir())
	if err := os.WriteFile("arrowtower.yaml", []byte("store: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "schema "+schemaVersion) {
		t.Errorf("got %q", out)
	}

	if _, err := run(t, "db", "create"); err == nil {
		t.Error("db create: expected config error")
	}
}

func TestCreateSeedDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	tests := []struct {
		name   string
		args   []string
		routes int
	}{
		{"db create does not seed", []string{"db", "create"}, 0},
		{"db create --seed", []string{"db", "create", "--seed"}, 1},
		{"no arguments seeds", nil, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "test.db")
			out, err := run(t, append([]string{"--db", path}, tt.args...)...)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(out, "created successfully") {
				t.Errorf("got %q", out)
			}
			if n := routeCount(t, path); n != tt.routes {
				t.Errorf("got %d routes, want %d", n, tt.routes)
			}
		})
	}
}

func TestConfigSeedApplies(t *testing.T) {
	chdir(t, t.TempDir())
	if err := os.WriteFile("arrowtower.yaml", []byte("store:\n  seed: true\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := run(t, "db", "create"); err != nil {
		t.Fatal(err)
	}
	if n := routeCount(t, store.DefaultDBFile); n != 1 {
		t.Errorf("got %d routes, want 1", n)
	}
}

func TestDBDirectory(t *testing.T) {
	dir := t.TempDir()

	if _, err := run(t, "--db", dir, "db", "create"); err != nil {
		t.Fatal(err)
	}
	if ok, err := store.CheckExists(dir); err != nil || !ok {
		t.Fatalf("exists=%v err=%v", ok, err)
	}

	out, err := run(t, "--db", dir, "db", "verify")
	if err != nil {
		t.Fatalf("verify: %v\n%s", err, out)
	}
	if !strings.Contains(out, `"ok": true`) {
		t.Errorf("got %s", out)
	}
}

func TestRequireStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.db")
	if _, err := run(t, "--db", path, "db", "verify"); err == nil {
		t.Error("expected error for missing datastore")
	}
	if ok, _ := store.CheckExists(path); ok {
		t.Error("verify created the datastore")
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent to testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
