package sqlite

import (
	"context"
	"database/sql"

	"github.com/ccontarino/apluz-backend/internal/domain"
	"github.com/ccontarino/apluz-backend/internal/ports"
)

var _ ports.PropertyRepository = (*propertyRepository)(nil)

// propertyRepository implements PropertyRepository for SQLite / Implémente PropertyRepository pour SQLite
type propertyRepository struct {
	db ports.DBTX
}

// NewPropertyRepository creates the property repository / Crée le repository des propriétés
func NewPropertyRepository(db *sql.DB) ports.PropertyRepository {
	return &propertyRepository{db: db}
}

const propertyColumns = `id, title, description, type, status, price, address, city, state, zip_code,
	       area, bedrooms, bathrooms, parking_spaces, created_at, updated_at`

// scanProperty maps one row onto the entity / Mappe une ligne sur l'entité
func scanProperty(scan func(dest ...any) error) (*domain.Property, error) {
	p := &domain.Property{}
	err := scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Type,
		&p.Status,
		&p.Price,
		&p.Address,
		&p.City,
		&p.State,
		&p.ZipCode,
		&p.Area,
		&p.Bedrooms,
		&p.Bathrooms,
		&p.ParkingSpaces,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Save inserts or updates depending on ID presence / Insère ou met à jour selon la présence de l'ID
func (r *propertyRepository) Save(ctx context.Context, property *domain.Property) (*domain.Property, error) {
	if property.IsTransient() {
		return r.insert(ctx, property)
	}
	return r.update(ctx, property)
}

// insert persists a new row and assigns the ID / Persiste une nouvelle ligne et assigne l'ID
func (r *propertyRepository) insert(ctx context.Context, property *domain.Property) (*domain.Property, error) {
	query := `
		INSERT INTO properties (title, description, type, status, price, address, city, state,
		                        zip_code, area, bedrooms, bathrooms, parking_spaces, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		property.Title,
		property.Description,
		string(property.Type),
		string(property.Status),
		property.Price,
		property.Address,
		property.City,
		property.State,
		property.ZipCode,
		property.Area,
		property.Bedrooms,
		property.Bathrooms,
		property.ParkingSpaces,
		property.CreatedAt,
		property.UpdatedAt,
	)
	if err != nil {
		return nil, handleError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, handleError(err)
	}

	property.ID = id
	return property, nil
}

// update overwrites the row matching the ID; created_at is never touched
// Écrase la ligne correspondant à l'ID ; created_at n'est jamais modifié
func (r *propertyRepository) update(ctx context.Context, property *domain.Property) (*domain.Property, error) {
	query := `
		UPDATE properties
		SET title = ?, description = ?, type = ?, status = ?, price = ?, address = ?,
		    city = ?, state = ?, zip_code = ?, area = ?, bedrooms = ?, bathrooms = ?,
		    parking_spaces = ?, updated_at = ?
		WHERE id = ?
	`
	_, err := r.db.ExecContext(ctx, query,
		property.Title,
		property.Description,
		string(property.Type),
		string(property.Status),
		property.Price,
		property.Address,
		property.City,
		property.State,
		property.ZipCode,
		property.Area,
		property.Bedrooms,
		property.Bathrooms,
		property.ParkingSpaces,
		property.UpdatedAt,
		property.ID,
	)
	if err != nil {
		return nil, handleError(err)
	}
	return property, nil
}

// FindByID retrieves a property by ID / Récupère une propriété par ID
func (r *propertyRepository) FindByID(ctx context.Context, id int64) (*domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	property, err := scanProperty(row.Scan)
	if err != nil {
		return nil, handleError(err)
	}
	return property, nil
}

// FindAll retrieves every property, newest first / Récupère toutes les propriétés, plus récentes d'abord
func (r *propertyRepository) FindAll(ctx context.Context) ([]*domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties ORDER BY created_at DESC`
	return r.queryProperties(ctx, query)
}

// FindByCity filters by exact city match / Filtre par correspondance exacte de ville
func (r *propertyRepository) FindByCity(ctx context.Context, city string) ([]*domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE city = ? ORDER BY created_at DESC`
	return r.queryProperties(ctx, query, city)
}

// FindByType filters by property type / Filtre par type de propriété
func (r *propertyRepository) FindByType(ctx context.Context, propertyType domain.PropertyType) ([]*domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE type = ? ORDER BY created_at DESC`
	return r.queryProperties(ctx, query, string(propertyType))
}

// FindByStatus filters by listing status / Filtre par statut de l'annonce
func (r *propertyRepository) FindByStatus(ctx context.Context, status domain.PropertyStatus) ([]*domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE status = ? ORDER BY created_at DESC`
	return r.queryProperties(ctx, query, string(status))
}

// queryProperties runs a list query and scans all rows / Exécute une requête liste et scanne les lignes
func (r *propertyRepository) queryProperties(ctx context.Context, query string, args ...any) ([]*domain.Property, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, handleError(err)
	}
	defer rows.Close()

	var properties []*domain.Property
	for rows.Next() {
		property, err := scanProperty(rows.Scan)
		if err != nil {
			return nil, handleError(err)
		}
		properties = append(properties, property)
	}

	if err := rows.Err(); err != nil {
		return nil, handleError(err)
	}

	return properties, nil
}

// ExistsByID checks record presence / Vérifie la présence de l'enregistrement
func (r *propertyRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM properties WHERE id = ?)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, handleError(err)
	}
	return exists, nil
}

// DeleteByID removes the row; an absent ID is a no-op / Supprime la ligne ; un ID absent est un no-op
func (r *propertyRepository) DeleteByID(ctx context.Context, id int64) error {
	query := `DELETE FROM properties WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	return handleError(err)
}
