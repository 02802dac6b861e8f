package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireLock(t *testing.T) {
	t.Run("acquire and release", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("SELECT GET_LOCK\\(\\?, 0\\)").
			WithArgs("followup_reminders").
			WillReturnRows(sqlmock.NewRows([]string{"ok"}).AddRow(1))
		mock.ExpectQuery("SELECT RELEASE_LOCK\\(\\?\\)").
			WithArgs("followup_reminders").
			WillReturnRows(sqlmock.NewRows([]string{"ok"}).AddRow(1))

		release, err := AcquireLock(context.Background(), db, "followup_reminders")
		require.NoError(t, err)
		require.NoError(t, release())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("held elsewhere", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("SELECT GET_LOCK\\(\\?, 0\\)").
			WillReturnRows(sqlmock.NewRows([]string{"ok"}).AddRow(0))

		_, err := AcquireLock(context.Background(), db, "followup_reminders")
		assert.ErrorIs(t, err, ErrLockHeld)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty name skips locking", func(t *testing.T) {
		db, mock := newMockDB(t)

		release, err := AcquireLock(context.Background(), db, " ")
		require.NoError(t, err)
		assert.NoError(t, release())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
