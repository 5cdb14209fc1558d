package repository

import (
	"github.com/ccontarino/apluz-backend/internal/repository/db"
	"github.com/ccontarino/apluz-backend/internal/repository/mysql"
	"github.com/ccontarino/apluz-backend/internal/repository/postgres"
	"github.com/ccontarino/apluz-backend/internal/repository/sqlite"
)

var (
	_ DatabaseFactory = (*sqlite.Factory)(nil)
	_ DatabaseFactory = (*mysql.Factory)(nil)
	_ DatabaseFactory = (*postgres.Factory)(nil)
)

var factoryRegistry = map[db.DatabaseType]func() DatabaseFactory{
	db.SQLite:     func() DatabaseFactory { return &sqlite.Factory{} },
	db.MySQL:      func() DatabaseFactory { return &mysql.Factory{} },
	db.PostgreSQL: func() DatabaseFactory { return &postgres.Factory{} },
}

// NewAdapter returns the factory for a database type, defaulting to SQLite
// Retourne la factory d'un type de BD, SQLite par défaut
func NewAdapter(dbType db.DatabaseType) DatabaseFactory {
	if factory, exists := factoryRegistry[dbType]; exists {
		return factory()
	}
	return &sqlite.Factory{}
}
