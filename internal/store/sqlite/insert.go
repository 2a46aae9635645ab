package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/maloquacious/arrowtower/internal/model"
	"github.com/maloquacious/arrowtower/internal/store"
)

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// insert builds a single-row INSERT, leaving out columns that were not set.
type insert struct {
	table string
	cols  []string
	args  []any
}

func newInsert(table string) *insert {
	return &insert{table: table}
}

func (i *insert) set(col string, v any) *insert {
	i.cols = append(i.cols, `"`+col+`"`)
	i.args = append(i.args, v)
	return i
}

func (i *insert) setIf(ok bool, col string, v any) *insert {
	if ok {
		i.set(col, v)
	}
	return i
}

func (i *insert) sql() string {
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(i.cols)), ", ")
	return fmt.Sprintf(`INSERT INTO "%s" (%s) VALUES (%s)`, i.table, strings.Join(i.cols, ", "), marks)
}

func (i *insert) exec(ctx context.Context, x execer) error {
	_, err := x.ExecContext(ctx, i.sql(), i.args...)
	if err != nil {
		return fmt.Errorf("insert %s: %w", i.table, err)
	}
	return nil
}

// timestamp matches the CURRENT_TIMESTAMP layout.
func timestamp(t time.Time) string {
	return t.UTC().Format(time.DateTime)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// checkEnum validates a non-empty value; an empty one falls back to the column default.
func (s *SQLiteStore) checkEnum(field model.Field, value string) error {
	if value == "" {
		return nil
	}
	return s.enums.Check(field, value)
}

func (s *SQLiteStore) InsertUser(ctx context.Context, u model.User) error {
	if s.db == nil {
		return store.ErrNotOpen
	}
	return s.insertUser(ctx, s.db, u)
}

func (s *SQLiteStore) insertUser(ctx context.Context, x execer, u model.User) error {
	if err := s.checkEnum(model.FieldWalletType, string(u.WalletType)); err != nil {
		return err
	}
	if err := s.checkEnum(model.FieldRole, string(u.Role)); err != nil {
		return err
	}
	return newInsert("User").
		set("id", u.ID).
		set("walletAddress", u.WalletAddress).
		setIf(u.WalletType != "", "walletType", string(u.WalletType)).
		setIf(u.Nickname != nil, "nickname", u.Nickname).
		setIf(u.Role != "", "role", string(u.Role)).
		setIf(u.Avatar != nil, "avatar", u.Avatar).
		setIf(u.TotalRoutes != nil, "totalRoutes", u.TotalRoutes).
		setIf(!u.CreatedAt.IsZero(), "createdAt", timestamp(u.CreatedAt)).
		exec(ctx, x)
}

func (s *SQLiteStore) InsertRoute(ctx context.Context, r model.Route) error {
	if s.db == nil {
		return store.ErrNotOpen
	}
	return s.insertRoute(ctx, s.db, r)
}

func (s *SQLiteStore) insertRoute(ctx context.Context, x execer, r model.Route) error {
	if err := s.checkEnum(model.FieldDifficulty, string(r.Difficulty)); err != nil {
		return err
	}
	ins := newInsert("Route").
		set("id", r.ID).
		set("name", r.Name).
		setIf(r.Description != nil, "description", r.Description).
		setIf(r.CoverImage != nil, "coverImage", r.CoverImage).
		setIf(r.Difficulty != "", "difficulty", string(r.Difficulty)).
		set("estimatedTime", r.EstimatedTime).
		setIf(r.POICount != nil, "poiCount", r.POICount).
		setIf(r.NFTCollection != nil, "nftCollection", r.NFTCollection)
	if r.IsActive != nil {
		ins.set("isActive", boolInt(*r.IsActive))
	}
	return ins.exec(ctx, x)
}

func (s *SQLiteStore) InsertPOI(ctx context.Context, p model.POI) error {
	if s.db == nil {
		return store.ErrNotOpen
	}
	return s.insertPOI(ctx, s.db, p)
}

func (s *SQLiteStore) insertPOI(ctx context.Context, x execer, p model.POI) error {
	if err := s.checkEnum(model.FieldTaskType, string(p.TaskType)); err != nil {
		return err
	}
	return newInsert("POI").
		set("id", p.ID).
		set("routeId", p.RouteID).
		set("name", p.Name).
		setIf(p.Description != nil, "description", p.Description).
		set("latitude", p.Latitude).
		set("longitude", p.Longitude).
		setIf(p.Radius != nil, "radius", p.Radius).
		setIf(p.TaskType != "", "taskType", string(p.TaskType)).
		setIf(p.TaskContent != nil, "taskContent", p.TaskContent).
		set("order", p.Order).
		exec(ctx, x)
}

func (s *SQLiteStore) InsertCheckin(ctx context.Context, c model.Checkin) error {
	if s.db == nil {
		return store.ErrNotOpen
	}
	if err := s.checkEnum(model.FieldCheckinStatus, string(c.Status)); err != nil {
		return err
	}
	return newInsert("Checkin").
		set("id", c.ID).
		set("userId", c.UserID).
		set("routeId", c.RouteID).
		set("poiId", c.POIID).
		set("signature", c.Signature).
		set("message", c.Message).
		setIf(c.TaskData != nil, "taskData", c.TaskData).
		setIf(c.Status != "", "status", string(c.Status)).
		setIf(!c.CreatedAt.IsZero(), "createdAt", timestamp(c.CreatedAt)).
		exec(ctx, s.db)
}

func (s *SQLiteStore) InsertVoucher(ctx context.Context, v model.Voucher) error {
	if s.db == nil {
		return store.ErrNotOpen
	}
	if err := s.checkEnum(model.FieldVoucherStatus, string(v.Status)); err != nil {
		return err
	}
	return newInsert("Voucher").
		set("id", v.ID).
		set("userId", v.UserID).
		set("routeId", v.RouteID).
		setIf(v.Status != "", "status", string(v.Status)).
		setIf(v.NFTTokenID != nil, "nftTokenId", v.NFTTokenID).
		setIf(v.MintTxHash != nil, "mintTxHash", v.MintTxHash).
		setIf(v.Metadata != nil, "metadata", v.Metadata).
		setIf(!v.CreatedAt.IsZero(), "createdAt", timestamp(v.CreatedAt)).
		exec(ctx, s.db)
}
