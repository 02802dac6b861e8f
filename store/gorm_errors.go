package store

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"crm-api/errs"
)

const mysqlDuplicateEntry = 1062

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry
}

// Translate maps driver errors onto the errs taxonomy.
func Translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errs.NewNotFound("%s", op)
	case isDuplicateKey(err):
		return errs.NewConflict("%s: duplicate key", op)
	default:
		return errs.NewStorage(op, err)
	}
}
