package store

import (
	"context"
	"errors"

	"github.com/maloquacious/arrowtower/internal/model"
)

// ErrNotOpen is returned by operations on a store that has not been opened.
var ErrNotOpen = errors.New("database not opened")

// StoreState represents the initialization state of the datastore.
type StoreState int

const (
	StateMissing         StoreState = iota // File doesn't exist
	StateUninitialized                     // File exists but no schema
	StateVersionMismatch                   // Schema exists but wrong version
	StateReady                             // Initialized and correct version
)

func (s StoreState) String() string {
	switch s {
	case StateMissing:
		return "missing"
	case StateUninitialized:
		return "uninitialized"
	case StateVersionMismatch:
		return "version-mismatch"
	case StateReady:
		return "ready"
	}
	return "unknown"
}

// InitOptions controls InitSchema.
type InitOptions struct {
	// Version is recorded in schema_migrations.
	Version string
	// Seed inserts the baseline route and POI when the Route table is empty.
	Seed bool
}

// Report is the result of a schema verification.
type Report struct {
	Version        string   `json:"version"`
	State          string   `json:"state"`
	ForeignKeys    bool     `json:"foreignKeys"`
	MissingTables  []string `json:"missingTables"`
	MissingIndexes []string `json:"missingIndexes"`
	FKViolations   int      `json:"fkViolations"`
	OK             bool     `json:"ok"`
}

// Store defines the check-in datastore contract.
// Implementations hold a single connection and are not meant for concurrent writers.
type Store interface {
	// Open opens the datastore connection with foreign keys enforced
	Open(ctx context.Context) error

	// Close closes the datastore connection
	Close() error

	// InitSchema creates tables and indexes if absent, records the version and optionally seeds
	InitSchema(ctx context.Context, opts InitOptions) error

	// CheckState returns the current state of the datastore
	CheckState(ctx context.Context) (StoreState, error)

	// GetSchemaVersion returns the current schema version from the database
	GetSchemaVersion(ctx context.Context) (string, error)

	// Verify inspects tables, indexes and foreign-key integrity
	Verify(ctx context.Context) (Report, error)

	// EnsureAdmin creates or re-points the admin user and returns its id
	EnsureAdmin(ctx context.Context, wallet string, walletType model.WalletType) (string, error)

	// Reset deletes every row, keeping the schema
	Reset(ctx context.Context) error

	InsertUser(ctx context.Context, u model.User) error
	InsertRoute(ctx context.Context, r model.Route) error
	InsertPOI(ctx context.Context, p model.POI) error
	InsertCheckin(ctx context.Context, c model.Checkin) error
	InsertVoucher(ctx context.Context, v model.Voucher) error
}
