package sqlite

import (
	"database/sql"

	"github.com/ccontarino/apluz-backend/internal/ports"
)

// Factory implements DatabaseFactory for SQLite / Implémente DatabaseFactory pour SQLite
// The compile-time check lives in adapter.go to avoid import cycles
// La vérification à la compilation est dans adapter.go pour éviter les cycles d'imports
type Factory struct{}

// NewPropertyRepository creates the property repository / Crée le repository des propriétés
func (f *Factory) NewPropertyRepository(db *sql.DB) ports.PropertyRepository {
	return NewPropertyRepository(db)
}
