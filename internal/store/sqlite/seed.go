package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/maloquacious/arrowtower/internal/model"
)

func ptr[T any](v T) *T { return &v }

// Baseline rows for manual verification of a fresh database.
var (
	seedRoute = model.Route{
		ID:            "route_1",
		Name:          "Great Wall Expedition",
		Description:   ptr("Explore the historic ruins of the Badaling Great Wall"),
		EstimatedTime: 120,
		POICount:      ptr(3),
		IsActive:      ptr(true),
	}
	seedPOI = model.POI{
		ID:        "poi_1",
		RouteID:   "route_1",
		Name:      "Badaling Entrance",
		Latitude:  40.3786,
		Longitude: 116.0156,
		Radius:    ptr(50),
		TaskType:  model.TaskPhoto,
		Order:     1,
	}
)

// seed inserts the baseline route and POI unless routes already exist.
// It reports whether anything was written.
func (s *SQLiteStore) seed(ctx context.Context, tx *sql.Tx) (bool, error) {
	var n int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM "Route"`).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to count routes: %w", err)
	}
	if n > 0 {
		return false, nil
	}
	if err := s.insertRoute(ctx, tx, seedRoute); err != nil {
		return false, err
	}
	if err := s.insertPOI(ctx, tx, seedPOI); err != nil {
		return false, err
	}
	return true, nil
}
