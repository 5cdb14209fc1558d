package ports

import (
	"context"

	"github.com/ccontarino/apluz-backend/internal/domain"
)

// PropertyReader reads property data / Lit les données des propriétés
type PropertyReader interface {
	// FindByID retrieves property by unique ID / Récupère la propriété par ID unique
	FindByID(ctx context.Context, id int64) (*domain.Property, error)

	// FindAll retrieves all properties, newest first / Récupère toutes les propriétés, plus récentes d'abord
	FindAll(ctx context.Context) ([]*domain.Property, error)

	// FindByCity retrieves properties matching a city exactly / Récupère les propriétés d'une ville
	FindByCity(ctx context.Context, city string) ([]*domain.Property, error)

	// FindByType retrieves properties of one type / Récupère les propriétés d'un type
	FindByType(ctx context.Context, propertyType domain.PropertyType) ([]*domain.Property, error)

	// FindByStatus retrieves properties in one status / Récupère les propriétés d'un statut
	FindByStatus(ctx context.Context, status domain.PropertyStatus) ([]*domain.Property, error)

	// ExistsByID checks record presence / Vérifie la présence de l'enregistrement
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

// PropertyWriter creates, updates and deletes properties / Crée, met à jour et supprime les propriétés
type PropertyWriter interface {
	// Save inserts when ID is unset, otherwise updates the matching row.
	// The returned property carries the assigned ID on insert.
	// Insère si l'ID est absent, sinon met à jour la ligne correspondante.
	Save(ctx context.Context, property *domain.Property) (*domain.Property, error)

	// DeleteByID removes the row unconditionally; deleting an absent ID is a no-op.
	// Supprime la ligne sans condition ; un ID absent est un no-op.
	DeleteByID(ctx context.Context, id int64) error
}

// PropertyRepository is the composite interface for all property operations
// Interface composite pour toutes les opérations sur les propriétés
type PropertyRepository interface {
	PropertyReader
	PropertyWriter
}
