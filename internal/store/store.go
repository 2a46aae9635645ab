package store

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	DefaultDBFile = "arrowtower.db"
)

// CheckExists verifies if the datastore exists at the given path.
// The path names either the store directory or the database file.
// Returns true if the store exists, false otherwise.
func CheckExists(storePath string) (bool, error) {
	dbPath := ResolveDBPath(storePath)
	info, err := os.Stat(dbPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check store existence: %w", err)
	}
	if info.IsDir() {
		return false, fmt.Errorf("datastore path is a directory, expected file: %s", dbPath)
	}
	return true, nil
}

// GetStorePath returns the path to the datastore directory.
// Defaults to the current working directory.
func GetStorePath() string {
	return "."
}

// GetDBPath returns the full path to the database file.
func GetDBPath(storePath string) string {
	return filepath.Join(storePath, DefaultDBFile)
}

// ResolveDBPath maps a configured path to the database file. An empty
// path means the default store directory; an existing directory holds
// DefaultDBFile; anything else is taken as the file itself.
func ResolveDBPath(path string) string {
	if path == "" {
		return GetDBPath(GetStorePath())
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return GetDBPath(path)
	}
	return path
}
