package mysql

import (
	"database/sql"
	"errors"
	"log"

	"github.com/ccontarino/apluz-backend/internal/repository/db"
	"github.com/go-sql-driver/mysql"
)

var (
	ErrDup      = db.ErrDuplicateKey
	ErrNoRecord = db.ErrNoRecord
)

// handleError translates MySQL errors to typed errors / Traduit les erreurs MySQL en erreurs typées
func handleError(err error) error {
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNoRecord
		}
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) {
			switch mysqlErr.Number {
			case 1062: // ER_DUP_ENTRY
				return ErrDup
			case 1452: // ER_NO_REFERENCED_ROW_2
				return db.ErrForeignKeyViolation
			}
			log.Printf("MySQL error code: %d, message: %s", mysqlErr.Number, mysqlErr.Message)
		}
	}
	return err
}
