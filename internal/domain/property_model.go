package domain

import (
	"fmt"
	"strings"
	"time"
)

// PropertyType classifies a property listing / Classifie une annonce immobilière
type PropertyType string

const (
	TypeHouse      PropertyType = "house"      // Single-family house / Maison individuelle
	TypeApartment  PropertyType = "apartment"  // Apartment unit / Appartement
	TypeCondo      PropertyType = "condo"      // Condominium / Copropriété
	TypeTownhouse  PropertyType = "townhouse"  // Townhouse / Maison de ville
	TypeLand       PropertyType = "land"       // Undeveloped land / Terrain
	TypeCommercial PropertyType = "commercial" // Commercial space / Local commercial
	TypeOffice     PropertyType = "office"     // Office space / Bureau
)

// IsValid checks if type is valid / Vérifie si le type est valide
func (t PropertyType) IsValid() bool {
	switch t {
	case TypeHouse, TypeApartment, TypeCondo, TypeTownhouse, TypeLand, TypeCommercial, TypeOffice:
		return true
	default:
		return false
	}
}

// String returns string representation / Retourne la représentation en chaîne
func (t PropertyType) String() string {
	return string(t)
}

// ParsePropertyType parses type from external input / Analyse le type depuis une entrée externe
func ParsePropertyType(s string) (PropertyType, error) {
	t := PropertyType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("invalid property type: %q", s)
	}
	return t, nil
}

// PropertyStatus represents the listing status / Représente le statut de l'annonce
// There is no transition graph: any status may replace any other.
type PropertyStatus string

const (
	StatusAvailable PropertyStatus = "available" // Open for sale or rent / Disponible à la vente ou location
	StatusSold      PropertyStatus = "sold"      // Sale completed / Vente conclue
	StatusRented    PropertyStatus = "rented"    // Rented out / Loué
	StatusReserved  PropertyStatus = "reserved"  // Held for a buyer / Réservé pour un acheteur
	StatusInactive  PropertyStatus = "inactive"  // Retired from listings / Retiré des annonces
)

// IsValid checks if status is valid / Vérifie si le statut est valide
func (s PropertyStatus) IsValid() bool {
	switch s {
	case StatusAvailable, StatusSold, StatusRented, StatusReserved, StatusInactive:
		return true
	default:
		return false
	}
}

// String returns string representation / Retourne la représentation en chaîne
func (s PropertyStatus) String() string {
	return string(s)
}

// ParsePropertyStatus parses status from external input / Analyse le statut depuis une entrée externe
func ParsePropertyStatus(s string) (PropertyStatus, error) {
	st := PropertyStatus(strings.ToLower(strings.TrimSpace(s)))
	if !st.IsValid() {
		return "", fmt.Errorf("invalid property status: %q", s)
	}
	return st, nil
}

// Property represents the domain property entity / Représente l'entité propriété du domaine
type Property struct {
	ID            int64
	Title         string
	Description   string
	Type          PropertyType
	Status        PropertyStatus
	Price         float64 // Currency-agnostic / Indépendant de la devise
	Address       string
	City          string
	State         string
	ZipCode       string
	Area          float64 // Area units implicit / Unités de surface implicites
	Bedrooms      int
	Bathrooms     int
	ParkingSpaces int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsTransient checks if the property was never persisted / Vérifie si la propriété n'a jamais été persistée
func (p *Property) IsTransient() bool {
	return p.ID == 0
}

// IsAvailable checks listing availability / Vérifie la disponibilité de l'annonce
func (p *Property) IsAvailable() bool {
	return p.Status == StatusAvailable
}

// HasStatus checks exact status match / Vérifie la correspondance exacte du statut
func (p *Property) HasStatus(status PropertyStatus) bool {
	return p.Status == status
}
