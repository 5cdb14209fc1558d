package postgres

import (
	"database/sql"

	"github.com/ccontarino/apluz-backend/internal/ports"
)

// Factory implements DatabaseFactory for PostgreSQL / Implémente DatabaseFactory pour PostgreSQL
type Factory struct{}

// NewPropertyRepository creates the property repository / Crée le repository des propriétés
func (f *Factory) NewPropertyRepository(db *sql.DB) ports.PropertyRepository {
	return NewPropertyRepository(db)
}
