package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCheckExists(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name      string
		setup     func(string) error
		wantExist bool
		wantError bool
	}{
		{
			name: "database exists",
			setup: func(dir string) error {
				f, err := os.Create(GetDBPath(dir))
				if err != nil {
					return err
				}
				return f.Close()
			},
			wantExist: true,
		},
		{
			name:      "database does not exist",
			setup:     func(dir string) error { return nil },
			wantExist: false,
		},
		{
			name: "database path is directory",
			setup: func(dir string) error {
				return os.Mkdir(GetDBPath(dir), 0755)
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testDir := filepath.Join(tmpDir, tt.name)
			if err := os.Mkdir(testDir, 0755); err != nil {
				t.Fatalf("failed to create test dir: %v", err)
			}

			if err := tt.setup(testDir); err != nil {
				t.Fatalf("setup failed: %v", err)
			}

			exists, err := CheckExists(testDir)

			if tt.wantError && err == nil {
				t.Error("expected error but got none")
			}
			if !tt.wantError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if exists != tt.wantExist {
				t.Errorf("got exists=%v, want %v", exists, tt.wantExist)
			}

			if !tt.wantError {
				fileExists, _ := CheckExists(GetDBPath(testDir))
				if fileExists != exists {
					t.Errorf("file path gives exists=%v, directory gives %v", fileExists, exists)
				}
			}
		})
	}
}

func TestGetDBPath(t *testing.T) {
	if got, want := GetDBPath(GetStorePath()), DefaultDBFile; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestResolveDBPath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "custom.db")

	tests := []struct {
		name string
		path string
		want string
	}{
		{"empty uses store dir", "", GetDBPath(GetStorePath())},
		{"directory", dir, filepath.Join(dir, DefaultDBFile)},
		{"missing file", file, file},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveDBPath(tt.path); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStoreStateString(t *testing.T) {
	tests := map[StoreState]string{
		StateMissing:         "missing",
		StateUninitialized:   "uninitialized",
		StateVersionMismatch: "version-mismatch",
		StateReady:           "ready",
		StoreState(42):       "unknown",
	}
	for state, want := range tests {
		if got := state.String(); got != want {
			t.Errorf("%d: got %q, want %q", state, got, want)
		}
	}
}
