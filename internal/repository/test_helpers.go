package repository

import (
	"database/sql"

	"github.com/ccontarino/apluz-backend/internal/ports"
	"github.com/ccontarino/apluz-backend/internal/repository/sqlite"
)

// NewSQLiteProperty exposes the SQLite repository for integration tests
// Expose le repository SQLite pour les tests d'intégration
func NewSQLiteProperty(db *sql.DB) ports.PropertyRepository {
	return sqlite.NewPropertyRepository(db)
}
