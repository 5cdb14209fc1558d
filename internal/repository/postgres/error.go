package postgres

import (
	"database/sql"
	"errors"
	"log"

	"github.com/ccontarino/apluz-backend/internal/repository/db"
	"github.com/lib/pq"
)

var (
	ErrDup      = db.ErrDuplicateKey
	ErrNoRecord = db.ErrNoRecord
)

// handleError translates PostgreSQL errors to typed errors / Traduit les erreurs PostgreSQL en erreurs typées
func handleError(err error) error {
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNoRecord
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23505": // unique_violation
				return ErrDup
			case "23503": // foreign_key_violation
				return db.ErrForeignKeyViolation
			}
			log.Printf("PostgreSQL error code: %s, message: %s", pqErr.Code, pqErr.Message)
		}
	}
	return err
}
