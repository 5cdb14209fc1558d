package dto

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ccontarino/apluz-backend/internal/domain"
)

// PropertyRequest is DTO for create/update requests / Est le DTO pour les demandes de création/mise à jour
// Numeric required fields use pointers so that a valid zero can be told apart from an absent field.
type PropertyRequest struct {
	Title         string   `json:"title"`                   // Listing title / Titre de l'annonce
	Description   string   `json:"description,omitempty"`   // Free-form description / Description libre
	Type          string   `json:"type"`                    // Property type / Type de propriété
	Status        string   `json:"status,omitempty"`        // Listing status, defaults to available / Statut de l'annonce
	Price         *float64 `json:"price"`                   // Asking price / Prix demandé
	Address       string   `json:"address"`                 // Street address / Adresse
	City          string   `json:"city"`                    // City / Ville
	State         string   `json:"state,omitempty"`         // State or province / État ou province
	ZipCode       string   `json:"zipCode,omitempty"`       // Postal code / Code postal
	Area          *float64 `json:"area"`                    // Surface in square meters / Surface en m²
	Bedrooms      *int     `json:"bedrooms"`                // Number of bedrooms / Nombre de chambres
	Bathrooms     *int     `json:"bathrooms"`               // Number of bathrooms / Nombre de salles de bain
	ParkingSpaces *int     `json:"parkingSpaces,omitempty"` // Parking spaces / Places de parking
}

// Validate checks required fields and value ranges / Vérifie les champs requis et les plages de valeurs
func (r *PropertyRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("title is required")
	}
	if strings.TrimSpace(r.Type) == "" {
		return errors.New("type is required")
	}
	if _, err := domain.ParsePropertyType(r.Type); err != nil {
		return err
	}
	if r.Status != "" {
		if _, err := domain.ParsePropertyStatus(r.Status); err != nil {
			return err
		}
	}
	if r.Price == nil {
		return errors.New("price is required")
	}
	if *r.Price <= 0 {
		return errors.New("price must be positive")
	}
	if strings.TrimSpace(r.Address) == "" {
		return errors.New("address is required")
	}
	if strings.TrimSpace(r.City) == "" {
		return errors.New("city is required")
	}
	if r.Area == nil {
		return errors.New("area is required")
	}
	if *r.Area <= 0 {
		return errors.New("area must be positive")
	}
	if r.Bedrooms == nil {
		return errors.New("bedrooms is required")
	}
	if *r.Bedrooms < 0 {
		return errors.New("bedrooms cannot be negative")
	}
	if r.Bathrooms == nil {
		return errors.New("bathrooms is required")
	}
	if *r.Bathrooms < 0 {
		return errors.New("bathrooms cannot be negative")
	}
	if r.ParkingSpaces != nil && *r.ParkingSpaces < 0 {
		return errors.New("parkingSpaces cannot be negative")
	}
	return nil
}

// ToDomain builds the domain entity; Validate must have passed
// Construit l'entité domaine ; Validate doit avoir réussi
func (r *PropertyRequest) ToDomain() *domain.Property {
	propertyType, _ := domain.ParsePropertyType(r.Type)

	var status domain.PropertyStatus
	if r.Status != "" {
		status, _ = domain.ParsePropertyStatus(r.Status)
	}

	parkingSpaces := 0
	if r.ParkingSpaces != nil {
		parkingSpaces = *r.ParkingSpaces
	}

	return &domain.Property{
		Title:         strings.TrimSpace(r.Title),
		Description:   r.Description,
		Type:          propertyType,
		Status:        status,
		Price:         *r.Price,
		Address:       strings.TrimSpace(r.Address),
		City:          strings.TrimSpace(r.City),
		State:         r.State,
		ZipCode:       r.ZipCode,
		Area:          *r.Area,
		Bedrooms:      *r.Bedrooms,
		Bathrooms:     *r.Bathrooms,
		ParkingSpaces: parkingSpaces,
	}
}

// PropertyResponse is DTO for property responses / Est le DTO pour les réponses de propriété
type PropertyResponse struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Type          string    `json:"type"`
	Status        string    `json:"status"`
	Price         float64   `json:"price"`
	Address       string    `json:"address"`
	City          string    `json:"city"`
	State         string    `json:"state,omitempty"`
	ZipCode       string    `json:"zipCode,omitempty"`
	Area          float64   `json:"area"`
	Bedrooms      int       `json:"bedrooms"`
	Bathrooms     int       `json:"bathrooms"`
	ParkingSpaces int       `json:"parkingSpaces"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// PropertyToDTO converts domain.Property to PropertyResponse / Convertit domain.Property en PropertyResponse
func PropertyToDTO(property *domain.Property) *PropertyResponse {
	return &PropertyResponse{
		ID:            property.ID,
		Title:         property.Title,
		Description:   property.Description,
		Type:          string(property.Type),
		Status:        string(property.Status),
		Price:         property.Price,
		Address:       property.Address,
		City:          property.City,
		State:         property.State,
		ZipCode:       property.ZipCode,
		Area:          property.Area,
		Bedrooms:      property.Bedrooms,
		Bathrooms:     property.Bathrooms,
		ParkingSpaces: property.ParkingSpaces,
		CreatedAt:     property.CreatedAt,
		UpdatedAt:     property.UpdatedAt,
	}
}

// PropertiesToDTO converts a slice of properties / Convertit une liste de propriétés
func PropertiesToDTO(properties []*domain.Property) []*PropertyResponse {
	result := make([]*PropertyResponse, 0, len(properties))
	for _, property := range properties {
		result = append(result, PropertyToDTO(property))
	}
	return result
}

// StatusUpdateRequest is DTO for status transitions / Est le DTO pour les transitions de statut
type StatusUpdateRequest struct {
	Status string `json:"status"` // Target status / Statut cible
}

// Validate checks the target status / Vérifie le statut cible
func (r *StatusUpdateRequest) Validate() error {
	if strings.TrimSpace(r.Status) == "" {
		return errors.New("status is required")
	}
	if _, err := domain.ParsePropertyStatus(r.Status); err != nil {
		return fmt.Errorf("invalid status: %w", err)
	}
	return nil
}
