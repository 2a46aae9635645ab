package sqlite

import (
	"context"
	"fmt"

	"github.com/maloquacious/arrowtower/internal/store"
)

// Verify inspects the schema without changing it.
func (s *SQLiteStore) Verify(ctx context.Context) (store.Report, error) {
	var r store.Report
	if s.db == nil {
		return r, store.ErrNotOpen
	}

	state, err := s.CheckState(ctx)
	if err != nil {
		return r, err
	}
	r.State = state.String()
	if state == store.StateReady || state == store.StateVersionMismatch {
		if r.Version, err = s.GetSchemaVersion(ctx); err != nil {
			return r, err
		}
	}

	var fk int
	if err := s.db.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&fk); err != nil {
		return r, fmt.Errorf("failed to read foreign_keys pragma: %w", err)
	}
	r.ForeignKeys = fk == 1

	tables, err := s.objects(ctx, "table")
	if err != nil {
		return r, fmt.Errorf("failed to list tables: %w", err)
	}
	r.MissingTables = missing(domainTables, tables)

	indexes, err := s.objects(ctx, "index")
	if err != nil {
		return r, fmt.Errorf("failed to list indexes: %w", err)
	}
	r.MissingIndexes = missing(domainIndexes, indexes)

	rows, err := s.db.QueryContext(ctx, "PRAGMA foreign_key_check")
	if err != nil {
		return r, fmt.Errorf("failed to run foreign_key_check: %w", err)
	}
	for rows.Next() {
		r.FKViolations++
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return r, fmt.Errorf("failed to run foreign_key_check: %w", err)
	}
	rows.Close()

	r.OK = state == store.StateReady &&
		r.ForeignKeys &&
		len(r.MissingTables) == 0 &&
		len(r.MissingIndexes) == 0 &&
		r.FKViolations == 0
	return r, nil
}

func missing(want []string, have map[string]bool) []string {
	out := []string{}
	for _, name := range want {
		if !have[name] {
			out = append(out, name)
		}
	}
	return out
}
