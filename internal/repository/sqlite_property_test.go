package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/ccontarino/apluz-backend/internal/domain"
	"github.com/ccontarino/apluz-backend/internal/ports"
	"github.com/ccontarino/apluz-backend/internal/repository"
	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	schema := `
	CREATE TABLE properties (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		type TEXT NOT NULL,
		status TEXT NOT NULL,
		price REAL NOT NULL,
		address TEXT NOT NULL,
		city TEXT NOT NULL,
		state TEXT NOT NULL DEFAULT '',
		zip_code TEXT NOT NULL DEFAULT '',
		area REAL NOT NULL,
		bedrooms INTEGER NOT NULL,
		bathrooms INTEGER NOT NULL,
		parking_spaces INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);
	CREATE INDEX idx_properties_city ON properties(city);
	CREATE INDEX idx_properties_type ON properties(type);
	CREATE INDEX idx_properties_status ON properties(status);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	return db
}

func newTestProperty(title, city string, createdAt time.Time) *domain.Property {
	return &domain.Property{
		Title:         title,
		Description:   "Bright and well connected",
		Type:          domain.TypeApartment,
		Status:        domain.StatusAvailable,
		Price:         250000,
		Address:       "Calle Mayor 1",
		City:          city,
		State:         "Madrid",
		ZipCode:       "28001",
		Area:          85.5,
		Bedrooms:      2,
		Bathrooms:     1,
		ParkingSpaces: 1,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
}

func mustSave(t *testing.T, repo ports.PropertyRepository, p *domain.Property) *domain.Property {
	t.Helper()
	saved, err := repo.Save(context.Background(), p)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	return saved
}

func TestPropertyRepository_SaveInsert(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewSQLiteProperty(db)

	property := newTestProperty("Piso centro", "Madrid", time.Now().UTC())
	saved := mustSave(t, repo, property)

	if saved.ID == 0 {
		t.Error("expected a generated ID after insert")
	}

	found, err := repo.FindByID(context.Background(), saved.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if found.Title != "Piso centro" {
		t.Errorf("Title = %q, want %q", found.Title, "Piso centro")
	}
	if found.Type != domain.TypeApartment {
		t.Errorf("Type = %q, want %q", found.Type, domain.TypeApartment)
	}
	if found.Price != 250000 {
		t.Errorf("Price = %v, want %v", found.Price, 250000)
	}
}

func TestPropertyRepository_SaveUpdate(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewSQLiteProperty(db)

	saved := mustSave(t, repo, newTestProperty("Piso centro", "Madrid", time.Now().UTC()))

	saved.Title = "Piso reformado"
	saved.Price = 300000
	saved.Status = domain.StatusReserved
	if _, err := repo.Save(context.Background(), saved); err != nil {
		t.Fatalf("Save() update error = %v", err)
	}

	found, err := repo.FindByID(context.Background(), saved.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if found.Title != "Piso reformado" {
		t.Errorf("Title = %q, want %q", found.Title, "Piso reformado")
	}
	if found.Price != 300000 {
		t.Errorf("Price = %v, want %v", found.Price, 300000)
	}
	if found.Status != domain.StatusReserved {
		t.Errorf("Status = %q, want %q", found.Status, domain.StatusReserved)
	}
}

func TestPropertyRepository_FindByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewSQLiteProperty(db)

	_, err := repo.FindByID(context.Background(), 999)
	if !errors.Is(err, repository.ErrNoRecord) {
		t.Errorf("FindByID() error = %v, want ErrNoRecord", err)
	}
}

func TestPropertyRepository_FindAllOrdering(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewSQLiteProperty(db)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mustSave(t, repo, newTestProperty("Oldest", "Madrid", base))
	mustSave(t, repo, newTestProperty("Middle", "Madrid", base.Add(time.Hour)))
	mustSave(t, repo, newTestProperty("Newest", "Madrid", base.Add(2*time.Hour)))

	all, err := repo.FindAll(context.Background())
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("FindAll() returned %d properties, want 3", len(all))
	}

	wantOrder := []string{"Newest", "Middle", "Oldest"}
	for i, want := range wantOrder {
		if all[i].Title != want {
			t.Errorf("position %d = %q, want %q", i, all[i].Title, want)
		}
	}
}

func TestPropertyRepository_FindByCity(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewSQLiteProperty(db)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mustSave(t, repo, newTestProperty("Madrid A", "Madrid", base))
	mustSave(t, repo, newTestProperty("Barcelona A", "Barcelona", base.Add(time.Hour)))
	mustSave(t, repo, newTestProperty("Madrid B", "Madrid", base.Add(2*time.Hour)))

	madrid, err := repo.FindByCity(context.Background(), "Madrid")
	if err != nil {
		t.Fatalf("FindByCity() error = %v", err)
	}
	if len(madrid) != 2 {
		t.Fatalf("FindByCity(Madrid) returned %d, want 2", len(madrid))
	}
	if madrid[0].Title != "Madrid B" || madrid[1].Title != "Madrid A" {
		t.Errorf("FindByCity ordering wrong: got %q, %q", madrid[0].Title, madrid[1].Title)
	}

	// Exact match only, no normalization
	lower, err := repo.FindByCity(context.Background(), "madrid")
	if err != nil {
		t.Fatalf("FindByCity() error = %v", err)
	}
	if len(lower) != 0 {
		t.Errorf("FindByCity(madrid) returned %d, want 0", len(lower))
	}
}

func TestPropertyRepository_FindByTypeAndStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewSQLiteProperty(db)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	house := newTestProperty("Casa", "Madrid", base)
	house.Type = domain.TypeHouse
	house.Status = domain.StatusSold
	mustSave(t, repo, house)

	flat := newTestProperty("Piso", "Madrid", base.Add(time.Hour))
	mustSave(t, repo, flat)

	houses, err := repo.FindByType(context.Background(), domain.TypeHouse)
	if err != nil {
		t.Fatalf("FindByType() error = %v", err)
	}
	if len(houses) != 1 || houses[0].Title != "Casa" {
		t.Errorf("FindByType(house) = %d results, want only Casa", len(houses))
	}

	sold, err := repo.FindByStatus(context.Background(), domain.StatusSold)
	if err != nil {
		t.Fatalf("FindByStatus() error = %v", err)
	}
	if len(sold) != 1 || sold[0].Title != "Casa" {
		t.Errorf("FindByStatus(sold) = %d results, want only Casa", len(sold))
	}
}

func TestPropertyRepository_ExistsByID(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewSQLiteProperty(db)

	saved := mustSave(t, repo, newTestProperty("Piso", "Madrid", time.Now().UTC()))

	exists, err := repo.ExistsByID(context.Background(), saved.ID)
	if err != nil {
		t.Fatalf("ExistsByID() error = %v", err)
	}
	if !exists {
		t.Error("ExistsByID() = false for a saved property")
	}

	exists, err = repo.ExistsByID(context.Background(), 999)
	if err != nil {
		t.Fatalf("ExistsByID() error = %v", err)
	}
	if exists {
		t.Error("ExistsByID(999) = true, want false")
	}
}

func TestPropertyRepository_DeleteByID(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewSQLiteProperty(db)

	saved := mustSave(t, repo, newTestProperty("Piso", "Madrid", time.Now().UTC()))

	if err := repo.DeleteByID(context.Background(), saved.ID); err != nil {
		t.Fatalf("DeleteByID() error = %v", err)
	}

	exists, err := repo.ExistsByID(context.Background(), saved.ID)
	if err != nil {
		t.Fatalf("ExistsByID() error = %v", err)
	}
	if exists {
		t.Error("property still exists after DeleteByID")
	}

	// Deleting an absent ID is a silent no-op
	if err := repo.DeleteByID(context.Background(), 999); err != nil {
		t.Errorf("DeleteByID(999) error = %v, want nil", err)
	}
}

func TestPropertyRepository_DuplicateKey(t *testing.T) {
	db := setupTestDB(t)
	if _, err := db.Exec("CREATE UNIQUE INDEX idx_properties_title ON properties(title)"); err != nil {
		t.Fatalf("failed to create unique index: %v", err)
	}
	repo := repository.NewSQLiteProperty(db)

	mustSave(t, repo, newTestProperty("Piso centro", "Madrid", time.Now().UTC()))

	_, err := repo.Save(context.Background(), newTestProperty("Piso centro", "Madrid", time.Now().UTC()))
	if err == nil {
		t.Fatal("Save() should fail on a duplicate unique key")
	}
	// Callers match on the shared sentinel, never on driver error codes
	if !errors.Is(err, repository.ErrDuplicateKey) {
		t.Errorf("Save() error = %v, want ErrDuplicateKey", err)
	}
}
