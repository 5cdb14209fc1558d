package postgres

import (
	"context"
	"database/sql"

	"github.com/ccontarino/apluz-backend/internal/domain"
	"github.com/ccontarino/apluz-backend/internal/ports"
)

var _ ports.PropertyRepository = (*propertyRepository)(nil)

// propertyRepository implements PropertyRepository for PostgreSQL
// Implémente PropertyRepository pour PostgreSQL
type propertyRepository struct {
	db ports.DBTX
}

// NewPropertyRepository creates the property repository / Crée le repository des propriétés
func NewPropertyRepository(db *sql.DB) ports.PropertyRepository {
	return &propertyRepository{db: db}
}

const propertyColumns = `id, title, description, type, status, price, address, city, state, zip_code,
	       area, bedrooms, bathrooms, parking_spaces, created_at, updated_at`

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

func (r *propertyRepository) Save(ctx context.Context, property *domain.Property) (*domain.Property, error) {
	if property.IsTransient() {
		return r.insert(ctx, property)
	}
	return r.update(ctx, property)
}

// insert uses RETURNING since lib/pq does not support LastInsertId
// Utilise RETURNING car lib/pq ne supporte pas LastInsertId
func (r *propertyRepository) insert(ctx context.Context, property *domain.Property) (*domain.Property, error) {
	query := `
		INSERT INTO properties (title, description, type, status, price, address, city, state,
		                        zip_code, area, bedrooms, bathrooms, parking_spaces, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
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
	).Scan(&property.ID)
	if err != nil {
		return nil, handleError(err)
	}
	return property, nil
}

func (r *propertyRepository) update(ctx context.Context, property *domain.Property) (*domain.Property, error) {
	query := `
		UPDATE properties
		SET title = $1, description = $2, type = $3, status = $4, price = $5, address = $6,
		    city = $7, state = $8, zip_code = $9, area = $10, bedrooms = $11, bathrooms = $12,
		    parking_spaces = $13, updated_at = $14
		WHERE id = $15
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

func (r *propertyRepository) FindByID(ctx context.Context, id int64) (*domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)
	property, err := scanProperty(row.Scan)
	if err != nil {
		return nil, handleError(err)
	}
	return property, nil
}

func (r *propertyRepository) FindAll(ctx context.Context) ([]*domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties ORDER BY created_at DESC`
	return r.queryProperties(ctx, query)
}

func (r *propertyRepository) FindByCity(ctx context.Context, city string) ([]*domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE city = $1 ORDER BY created_at DESC`
	return r.queryProperties(ctx, query, city)
}

func (r *propertyRepository) FindByType(ctx context.Context, propertyType domain.PropertyType) ([]*domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE type = $1 ORDER BY created_at DESC`
	return r.queryProperties(ctx, query, string(propertyType))
}

func (r *propertyRepository) FindByStatus(ctx context.Context, status domain.PropertyStatus) ([]*domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE status = $1 ORDER BY created_at DESC`
	return r.queryProperties(ctx, query, string(status))
}

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

func (r *propertyRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM properties WHERE id = $1)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, handleError(err)
	}
	return exists, nil
}

func (r *propertyRepository) DeleteByID(ctx context.Context, id int64) error {
	query := `DELETE FROM properties WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return handleError(err)
}
