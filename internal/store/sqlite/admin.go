package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/maloquacious/arrowtower/internal/model"
	"github.com/maloquacious/arrowtower/internal/store"
)

// EnsureAdmin makes wallet the admin's address. An existing admin user is
// re-pointed to the new address; otherwise a new admin is created.
// The wallet address is trimmed and lower-cased first.
func (s *SQLiteStore) EnsureAdmin(ctx context.Context, wallet string, walletType model.WalletType) (string, error) {
	if s.db == nil {
		return "", store.ErrNotOpen
	}
	wallet = strings.ToLower(strings.TrimSpace(wallet))
	if wallet == "" {
		return "", errors.New("admin wallet address is empty")
	}
	if walletType == "" {
		walletType = model.WalletPolkaVM
	}
	if err := s.checkEnum(model.FieldWalletType, string(walletType)); err != nil {
		return "", err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var id string
	err = tx.QueryRowContext(ctx, `SELECT "id" FROM "User" WHERE "role" = ? ORDER BY "createdAt" LIMIT 1`, string(model.RoleAdmin)).Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		id = "admin_" + uuid.NewString()
		err = s.insertUser(ctx, tx, model.User{
			ID:            id,
			WalletAddress: wallet,
			WalletType:    walletType,
			Nickname:      ptr("System Administrator"),
			Role:          model.RoleAdmin,
			Avatar:        ptr(""),
			TotalRoutes:   ptr(0),
		})
		if err != nil {
			return "", err
		}
		s.log.Debug("created admin %s", id)
	case err != nil:
		return "", fmt.Errorf("failed to find admin: %w", err)
	default:
		if _, err := tx.ExecContext(ctx, `UPDATE "User" SET "walletAddress" = ? WHERE "id" = ?`, wallet, id); err != nil {
			return "", fmt.Errorf("failed to update admin wallet: %w", err)
		}
		s.log.Debug("updated admin %s", id)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}
	return id, nil
}

// Reset deletes every domain row, children first. The schema and the
// recorded version are kept.
func (s *SQLiteStore) Reset(ctx context.Context) error {
	if s.db == nil {
		return store.ErrNotOpen
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"Voucher", "Checkin", "POI", "Route", "User"} {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM "%s"`, table)); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
