package db

import "errors"

// Common database errors shared by every dialect / Erreurs communes à tous les dialectes
var (
	ErrNoRecord            = errors.New("no matching record found")
	ErrDuplicateKey        = errors.New("duplicate key value")
	ErrForeignKeyViolation = errors.New("foreign key constraint violation")
)
