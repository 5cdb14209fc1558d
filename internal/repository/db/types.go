package db

// DatabaseType represents supported database engines / Représente les moteurs de BD supportés
type DatabaseType string

const (
	SQLite     DatabaseType = "sqlite"
	MySQL      DatabaseType = "mysql"
	PostgreSQL DatabaseType = "postgres"
)

// String returns string representation / Retourne la représentation en chaîne
func (dt DatabaseType) String() string {
	return string(dt)
}

// IsValid checks if database type is supported / Vérifie si le type de BD est supporté
func (dt DatabaseType) IsValid() bool {
	switch dt {
	case SQLite, MySQL, PostgreSQL:
		return true
	default:
		return false
	}
}
