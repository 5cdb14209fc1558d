package repository

import "github.com/ccontarino/apluz-backend/internal/repository/db"

// Re-exported typed errors so callers never import dialect packages
// Erreurs typées ré-exportées pour que les appelants n'importent jamais les paquets dialectes
var (
	ErrNoRecord            = db.ErrNoRecord
	ErrDuplicateKey        = db.ErrDuplicateKey
	ErrForeignKeyViolation = db.ErrForeignKeyViolation
)
