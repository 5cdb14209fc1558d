package dto

import (
	"testing"
	"time"

	"github.com/ccontarino/apluz-backend/internal/domain"
)

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func validRequest() *PropertyRequest {
	return &PropertyRequest{
		Title:     "Piso centro",
		Type:      "apartment",
		Price:     floatPtr(250000),
		Address:   "Calle Mayor 1",
		City:      "Madrid",
		Area:      floatPtr(85.5),
		Bedrooms:  intPtr(2),
		Bathrooms: intPtr(1),
	}
}

func TestPropertyRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *PropertyRequest)
		wantErr bool
	}{
		{"Valid request", func(r *PropertyRequest) {}, false},
		{"Valid with explicit status", func(r *PropertyRequest) { r.Status = "reserved" }, false},
		{"Valid with zero bedrooms", func(r *PropertyRequest) { r.Bedrooms = intPtr(0) }, false},
		{"Missing title", func(r *PropertyRequest) { r.Title = "  " }, true},
		{"Missing type", func(r *PropertyRequest) { r.Type = "" }, true},
		{"Unknown type", func(r *PropertyRequest) { r.Type = "castle" }, true},
		{"Unknown status", func(r *PropertyRequest) { r.Status = "pending" }, true},
		{"Missing price", func(r *PropertyRequest) { r.Price = nil }, true},
		{"Zero price", func(r *PropertyRequest) { r.Price = floatPtr(0) }, true},
		{"Negative price", func(r *PropertyRequest) { r.Price = floatPtr(-1) }, true},
		{"Missing address", func(r *PropertyRequest) { r.Address = "" }, true},
		{"Missing city", func(r *PropertyRequest) { r.City = "" }, true},
		{"Missing area", func(r *PropertyRequest) { r.Area = nil }, true},
		{"Zero area", func(r *PropertyRequest) { r.Area = floatPtr(0) }, true},
		{"Missing bedrooms", func(r *PropertyRequest) { r.Bedrooms = nil }, true},
		{"Negative bedrooms", func(r *PropertyRequest) { r.Bedrooms = intPtr(-1) }, true},
		{"Missing bathrooms", func(r *PropertyRequest) { r.Bathrooms = nil }, true},
		{"Negative parking", func(r *PropertyRequest) { r.ParkingSpaces = intPtr(-1) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			err := req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPropertyRequest_ToDomain(t *testing.T) {
	req := validRequest()
	req.Status = "RESERVED"
	req.ParkingSpaces = intPtr(2)

	property := req.ToDomain()

	if property.Type != domain.TypeApartment {
		t.Errorf("Type = %q, want %q", property.Type, domain.TypeApartment)
	}
	if property.Status != domain.StatusReserved {
		t.Errorf("Status = %q, want %q", property.Status, domain.StatusReserved)
	}
	if property.Price != 250000 {
		t.Errorf("Price = %v, want 250000", property.Price)
	}
	if property.ParkingSpaces != 2 {
		t.Errorf("ParkingSpaces = %d, want 2", property.ParkingSpaces)
	}
}

func TestPropertyRequest_ToDomain_UnsetStatusStaysEmpty(t *testing.T) {
	property := validRequest().ToDomain()

	// Status defaulting belongs to the service, not the DTO
	if property.Status != "" {
		t.Errorf("Status = %q, want empty", property.Status)
	}
}

func TestPropertyRequest_ToDomain_DefaultsParkingSpaces(t *testing.T) {
	property := validRequest().ToDomain()
	if property.ParkingSpaces != 0 {
		t.Errorf("ParkingSpaces = %d, want 0", property.ParkingSpaces)
	}
}

func TestPropertyToDTO(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	property := &domain.Property{
		ID:        7,
		Title:     "Casa",
		Type:      domain.TypeHouse,
		Status:    domain.StatusAvailable,
		Price:     450000,
		City:      "Madrid",
		CreatedAt: now,
		UpdatedAt: now,
	}

	resp := PropertyToDTO(property)

	if resp.ID != 7 || resp.Type != "house" || resp.Status != "available" {
		t.Errorf("unexpected mapping: %+v", resp)
	}
	if !resp.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v, want %v", resp.CreatedAt, now)
	}
}

func TestPropertiesToDTO_EmptySlice(t *testing.T) {
	resp := PropertiesToDTO(nil)
	if resp == nil {
		t.Fatal("PropertiesToDTO(nil) should return an empty slice, not nil")
	}
	if len(resp) != 0 {
		t.Errorf("len = %d, want 0", len(resp))
	}
}

func TestStatusUpdateRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		wantErr bool
	}{
		{"Valid sold", "sold", false},
		{"Valid uppercase", "AVAILABLE", false},
		{"Empty", "", true},
		{"Unknown", "pending", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &StatusUpdateRequest{Status: tt.status}
			err := req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%q) error = %v, wantErr %v", tt.status, err, tt.wantErr)
			}
		})
	}
}
