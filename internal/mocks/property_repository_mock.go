package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/ccontarino/apluz-backend/internal/domain"
	"github.com/ccontarino/apluz-backend/internal/ports"
	"github.com/ccontarino/apluz-backend/internal/repository"
)

var _ ports.PropertyRepository = (*MockPropertyRepository)(nil)

// MockPropertyRepository is an in-memory PropertyRepository for unit tests
// Repository en mémoire pour les tests unitaires
type MockPropertyRepository struct {
	mu         sync.Mutex
	properties map[int64]*domain.Property
	nextID     int64

	// Error injection / Injection d'erreurs
	SaveError     error
	FindByIDError error
	FindAllError  error
	ExistsError   error
	DeleteError   error

	// Call counters / Compteurs d'appels
	SaveCalls     int
	FindByIDCalls int
	FindAllCalls  int
	ExistsCalls   int
	DeleteCalls   int
}

// NewMockPropertyRepository creates an empty mock / Crée un mock vide
func NewMockPropertyRepository() *MockPropertyRepository {
	return &MockPropertyRepository{
		properties: make(map[int64]*domain.Property),
		nextID:     1,
	}
}

func copyProperty(p *domain.Property) *domain.Property {
	clone := *p
	return &clone
}

func (m *MockPropertyRepository) Save(_ context.Context, property *domain.Property) (*domain.Property, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SaveCalls++
	if m.SaveError != nil {
		return nil, m.SaveError
	}

	stored := copyProperty(property)
	if stored.IsTransient() {
		stored.ID = m.nextID
		m.nextID++
	}
	m.properties[stored.ID] = stored

	return copyProperty(stored), nil
}

func (m *MockPropertyRepository) FindByID(_ context.Context, id int64) (*domain.Property, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.FindByIDCalls++
	if m.FindByIDError != nil {
		return nil, m.FindByIDError
	}

	property, exists := m.properties[id]
	if !exists {
		return nil, repository.ErrNoRecord
	}
	return copyProperty(property), nil
}

func (m *MockPropertyRepository) FindAll(_ context.Context) ([]*domain.Property, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.FindAllCalls++
	if m.FindAllError != nil {
		return nil, m.FindAllError
	}

	return m.sortedLocked(func(*domain.Property) bool { return true }), nil
}

func (m *MockPropertyRepository) FindByCity(_ context.Context, city string) ([]*domain.Property, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FindAllError != nil {
		return nil, m.FindAllError
	}
	return m.sortedLocked(func(p *domain.Property) bool { return p.City == city }), nil
}

func (m *MockPropertyRepository) FindByType(_ context.Context, propertyType domain.PropertyType) ([]*domain.Property, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FindAllError != nil {
		return nil, m.FindAllError
	}
	return m.sortedLocked(func(p *domain.Property) bool { return p.Type == propertyType }), nil
}

func (m *MockPropertyRepository) FindByStatus(_ context.Context, status domain.PropertyStatus) ([]*domain.Property, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FindAllError != nil {
		return nil, m.FindAllError
	}
	return m.sortedLocked(func(p *domain.Property) bool { return p.Status == status }), nil
}

func (m *MockPropertyRepository) ExistsByID(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ExistsCalls++
	if m.ExistsError != nil {
		return false, m.ExistsError
	}

	_, exists := m.properties[id]
	return exists, nil
}

func (m *MockPropertyRepository) DeleteByID(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DeleteCalls++
	if m.DeleteError != nil {
		return m.DeleteError
	}

	delete(m.properties, id)
	return nil
}

// sortedLocked returns matching copies, newest first; caller holds the lock
// Retourne des copies triées, plus récentes d'abord ; l'appelant tient le verrou
func (m *MockPropertyRepository) sortedLocked(match func(*domain.Property) bool) []*domain.Property {
	var result []*domain.Property
	for _, p := range m.properties {
		if match(p) {
			result = append(result, copyProperty(p))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

// Count returns the number of stored properties / Retourne le nombre de propriétés stockées
func (m *MockPropertyRepository) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.properties)
}

// Seed stores a property as-is, assigning its ID when missing
// Stocke une propriété telle quelle, en assignant un ID si absent
func (m *MockPropertyRepository) Seed(property *domain.Property) *domain.Property {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := copyProperty(property)
	if stored.IsTransient() {
		stored.ID = m.nextID
		m.nextID++
	} else if stored.ID >= m.nextID {
		m.nextID = stored.ID + 1
	}
	m.properties[stored.ID] = stored
	return copyProperty(stored)
}
