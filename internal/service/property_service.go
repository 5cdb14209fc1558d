package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ccontarino/apluz-backend/internal/config"
	"github.com/ccontarino/apluz-backend/internal/domain"
	"github.com/ccontarino/apluz-backend/internal/ports"
	"github.com/ccontarino/apluz-backend/internal/repository"
)

// ErrPropertyNotFound is the sentinel for missing records / Sentinelle pour les enregistrements manquants
// Callers use errors.Is; the concrete error carries the offending ID.
var ErrPropertyNotFound = errors.New("property not found")

// PropertyNotFoundError signals that no property exists at the given ID
// Signale qu'aucune propriété n'existe pour cet ID
type PropertyNotFoundError struct {
	ID int64
}

// Error implements the error interface / Implémente l'interface error
func (e *PropertyNotFoundError) Error() string {
	return fmt.Sprintf("property with id %d not found", e.ID)
}

// Is matches the ErrPropertyNotFound sentinel / Correspond à la sentinelle ErrPropertyNotFound
func (e *PropertyNotFoundError) Is(target error) bool {
	return target == ErrPropertyNotFound
}

// PropertyService handles property management operations / Gère les opérations de gestion des propriétés
type PropertyService struct {
	reader ports.PropertyReader
	writer ports.PropertyWriter
	conf   *config.Config
	clock  Clock
}

// NewPropertyService creates property management service instance / Crée une instance de service de gestion des propriétés
func NewPropertyService(repo ports.PropertyRepository, conf *config.Config) *PropertyService {
	return NewPropertyServiceWithClock(repo, conf, systemClock{})
}

// NewPropertyServiceWithClock creates service with injected clock / Crée le service avec horloge injectée
// Tests inject a fake clock so timestamp behavior stays deterministic.
func NewPropertyServiceWithClock(repo ports.PropertyRepository, conf *config.Config, clock Clock) *PropertyService {
	return &PropertyService{
		reader: repo,
		writer: repo,
		conf:   conf,
		clock:  clock,
	}
}

// Create persists a new property / Persiste une nouvelle propriété
// Stamps both timestamps and defaults the status to available when unset.
// Field presence validation belongs to the transport layer, not here.
func (s *PropertyService) Create(ctx context.Context, property *domain.Property) (*domain.Property, error) {
	now := s.clock.Now()
	property.CreatedAt = now
	property.UpdatedAt = now

	if property.Status == "" {
		property.Status = domain.StatusAvailable
	}

	created, err := s.writer.Save(ctx, property)
	if err != nil {
		slog.Error("failed to create property", "err", err)
		return nil, err
	}

	return created, nil
}

// GetByID retrieves a property by its ID / Récupère une propriété par son ID
// Absence is an expected outcome here: it yields a nil property, not an error.
func (s *PropertyService) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	property, err := s.reader.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNoRecord) {
			return nil, nil
		}
		return nil, err
	}
	return property, nil
}

// ListAll retrieves every property, newest first / Récupère toutes les propriétés, plus récentes d'abord
func (s *PropertyService) ListAll(ctx context.Context) ([]*domain.Property, error) {
	properties, err := s.reader.FindAll(ctx)
	if err != nil {
		slog.Error("failed to list properties", "err", err)
		return nil, err
	}
	return properties, nil
}

// ListByCity retrieves properties in a city / Récupère les propriétés d'une ville
func (s *PropertyService) ListByCity(ctx context.Context, city string) ([]*domain.Property, error) {
	properties, err := s.reader.FindByCity(ctx, city)
	if err != nil {
		slog.Error("failed to list properties by city", "err", err, "city", city)
		return nil, err
	}
	return properties, nil
}

// ListByType retrieves properties of a type / Récupère les propriétés d'un type
func (s *PropertyService) ListByType(ctx context.Context, propertyType domain.PropertyType) ([]*domain.Property, error) {
	properties, err := s.reader.FindByType(ctx, propertyType)
	if err != nil {
		slog.Error("failed to list properties by type", "err", err, "type", propertyType)
		return nil, err
	}
	return properties, nil
}

// ListByStatus retrieves properties in a status / Récupère les propriétés d'un statut
func (s *PropertyService) ListByStatus(ctx context.Context, status domain.PropertyStatus) ([]*domain.Property, error) {
	properties, err := s.reader.FindByStatus(ctx, status)
	if err != nil {
		slog.Error("failed to list properties by status", "err", err, "status", status)
		return nil, err
	}
	return properties, nil
}

// Update replaces every mutable field wholesale / Remplace intégralement chaque champ modifiable
// ID and CreatedAt are preserved from the stored record; UpdatedAt is refreshed.
// The caller-supplied status is authoritative, no defaulting happens on update.
func (s *PropertyService) Update(ctx context.Context, id int64, replacement *domain.Property) (*domain.Property, error) {
	existing, err := s.reader.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNoRecord) {
			return nil, &PropertyNotFoundError{ID: id}
		}
		return nil, err
	}

	existing.Title = replacement.Title
	existing.Description = replacement.Description
	existing.Type = replacement.Type
	existing.Status = replacement.Status
	existing.Price = replacement.Price
	existing.Address = replacement.Address
	existing.City = replacement.City
	existing.State = replacement.State
	existing.ZipCode = replacement.ZipCode
	existing.Area = replacement.Area
	existing.Bedrooms = replacement.Bedrooms
	existing.Bathrooms = replacement.Bathrooms
	existing.ParkingSpaces = replacement.ParkingSpaces
	existing.UpdatedAt = s.clock.Now()

	updated, err := s.writer.Save(ctx, existing)
	if err != nil {
		slog.Error("failed to update property", "property_id", id, "err", err)
		return nil, err
	}

	return updated, nil
}

// UpdateStatus mutates only the status / Ne modifie que le statut
// Every other field keeps its stored value; UpdatedAt is refreshed.
func (s *PropertyService) UpdateStatus(ctx context.Context, id int64, status domain.PropertyStatus) (*domain.Property, error) {
	existing, err := s.reader.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNoRecord) {
			return nil, &PropertyNotFoundError{ID: id}
		}
		return nil, err
	}

	existing.Status = status
	existing.UpdatedAt = s.clock.Now()

	updated, err := s.writer.Save(ctx, existing)
	if err != nil {
		slog.Error("failed to update property status", "property_id", id, "status", status, "err", err)
		return nil, err
	}

	return updated, nil
}

// Delete permanently removes a property / Supprime définitivement une propriété
// The existence probe and the delete are two statements, not one: under
// concurrent deletion of the same ID one caller can win the race.
func (s *PropertyService) Delete(ctx context.Context, id int64) error {
	exists, err := s.reader.ExistsByID(ctx, id)
	if err != nil {
		slog.Error("failed to check property existence", "property_id", id, "err", err)
		return err
	}
	if !exists {
		return &PropertyNotFoundError{ID: id}
	}

	if err := s.writer.DeleteByID(ctx, id); err != nil {
		slog.Error("failed to delete property", "property_id", id, "err", err)
		return err
	}

	return nil
}
