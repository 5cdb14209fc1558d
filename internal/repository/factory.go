package repository

import (
	"database/sql"

	"github.com/ccontarino/apluz-backend/internal/ports"
)

// DatabaseFactory builds the repositories for one dialect
// Construit les repositories d'un dialecte
type DatabaseFactory interface {
	NewPropertyRepository(db *sql.DB) ports.PropertyRepository
}
