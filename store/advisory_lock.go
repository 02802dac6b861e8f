package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ErrLockHeld is returned when another process holds the named lock.
var ErrLockHeld = errors.New("advisory lock held by another session")

// AcquireLock takes a MySQL advisory lock without waiting. The lock lives on one pooled
// connection, which is held until release is called. An empty name disables locking.
func AcquireLock(ctx context.Context, db *gorm.DB, name string) (release func() error, err error) {
	if strings.TrimSpace(name) == "" {
		return func() error { return nil }, nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("reserve connection: %w", err)
	}

	var ok sql.NullInt64
	if err := conn.QueryRowContext(ctx, "SELECT GET_LOCK(?, 0)", name).Scan(&ok); err != nil {
		conn.Close()
		return nil, fmt.Errorf("get lock %s: %w", name, err)
	}
	if !ok.Valid || ok.Int64 != 1 {
		conn.Close()
		return nil, ErrLockHeld
	}

	return func() error {
		defer conn.Close()
		var released sql.NullInt64
		if err := conn.QueryRowContext(context.Background(), "SELECT RELEASE_LOCK(?)", name).Scan(&released); err != nil {
			return fmt.Errorf("release lock %s: %w", name, err)
		}
		return nil
	}, nil
}
