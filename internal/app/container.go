package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ccontarino/apluz-backend/internal/config"
	"github.com/ccontarino/apluz-backend/internal/metrics"
	"github.com/ccontarino/apluz-backend/internal/ports"
	"github.com/ccontarino/apluz-backend/internal/repository"
	"github.com/ccontarino/apluz-backend/internal/repository/db"
	"github.com/ccontarino/apluz-backend/internal/service"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/go-sql-driver/mysql"                   // MySQL driver
	_ "github.com/golang-migrate/migrate/v4/source/file" // Required for file-based migrations
	_ "github.com/lib/pq"                                // PostgreSQL driver
	_ "modernc.org/sqlite"                               // SQLite driver
)

// Container holds application dependencies / Contient les dépendances de l'application
type Container struct {
	DB           *sql.DB
	PropertyRepo ports.PropertyRepository
	PropertySvc  *service.PropertyService
	Config       *config.Config
	Metrics      *metrics.Metrics
	ctxCancel    context.CancelFunc
}

// NewContainer initializes application container / Initialise le conteneur de l'application
func NewContainer(cfg *config.Config) (*Container, error) {
	c := &Container{}
	c.Config = cfg

	// Initialize metrics first (no dependencies)
	c.Metrics = metrics.NewMetrics(nil)

	if err := c.initDatabase(); err != nil {
		return nil, fmt.Errorf("database init: %w", err)
	}

	if err := c.runMigrations(); err != nil {
		c.Close() // Ensure database connection is closed on migration failure
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	c.initRepositories()
	c.initServices()

	// Update database connection metrics
	c.updateDatabaseMetrics()

	return c, nil
}

// initDatabase initializes database connection / Initialise la connexion à la base de données
func (c *Container) initDatabase() error {
	dbType := db.DatabaseType(strings.ToLower(c.Config.Database.Type))
	if dbType == "" {
		dbType = db.SQLite
	}

	dbConfig := db.DatabaseConfig{
		Type:         dbType,
		DSN:          c.Config.Database.DSN,
		MaxOpenConns: c.Config.Database.MaxOpenConns,
		MaxIdleConns: c.Config.Database.MaxIdleConns,
	}

	initializer := db.NewDatabaseInitializer(dbType)

	database, err := initializer.Initialize(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize %s database: %w", dbType, err)
	}

	c.DB = database
	return nil
}

// runMigrations applies database migrations / Applique les migrations de base de données
func (c *Container) runMigrations() error {
	dbType := db.DatabaseType(strings.ToLower(c.Config.Database.Type))
	if dbType == "" {
		dbType = db.SQLite
	}

	registry := db.NewMigrationDriverRegistry()

	driverFactory, err := registry.GetFactory(dbType)
	if err != nil {
		return err
	}

	driver, err := driverFactory.CreateDriver(c.DB)
	if err != nil {
		return fmt.Errorf("could not create %s migration driver: %w", dbType, err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://"+c.Config.Database.MigrationsPath,
		driverFactory.DriverName(),
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	log.Printf("Applying %s database migrations...", dbType)
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Println("Database migrations applied successfully.")
	return nil
}

// initRepositories initializes repositories / Initialise les repositories
func (c *Container) initRepositories() {
	dbType := db.DatabaseType(strings.ToLower(c.Config.Database.Type))

	factory := repository.NewAdapter(dbType)
	c.PropertyRepo = factory.NewPropertyRepository(c.DB)

	log.Printf("Repositories initialized for %s database", c.Config.Database.Type)
}

// initServices initializes application services / Initialise les services applicatifs
func (c *Container) initServices() {
	c.PropertySvc = service.NewPropertyService(c.PropertyRepo, c.Config)

	ctx, cancel := context.WithCancel(context.Background())
	c.ctxCancel = cancel

	// Start automatic backup goroutine if enabled / Démarre la goroutine de backup automatique si activée
	if c.Config.Backup.Enabled {
		c.startBackupRoutine(ctx)
	}
}

// updateDatabaseMetrics updates database metrics / Met à jour les métriques de la BD
func (c *Container) updateDatabaseMetrics() {
	stats := c.DB.Stats()
	c.Metrics.UpdateDatabaseConnections(stats.OpenConnections)
}

// startBackupRoutine starts automatic backup routine / Démarre la routine de backup automatique
func (c *Container) startBackupRoutine(ctx context.Context) {
	go func() {
		c.Metrics.SetBackgroundTaskStatus("database_backup", true)
		ticker := time.NewTicker(c.Config.Backup.Interval)
		defer ticker.Stop()

		log.Printf("Automatic database backup enabled (interval: %s, retention: %d days)",
			c.Config.Backup.Interval, c.Config.Backup.RetentionDays)

		for {
			select {
			case <-ticker.C:
				if err := c.performBackup(); err != nil {
					log.Printf("backup failed: %v", err)
				} else {
					log.Println("database backup completed successfully")
				}
				// Clean old backups after creating new one / Nettoie les anciens backups après création
				if err := c.cleanOldBackups(); err != nil {
					log.Printf("backup cleanup failed: %v", err)
				}
			case <-ctx.Done():
				c.Metrics.SetBackgroundTaskStatus("database_backup", false)
				log.Println("backup goroutine stopped")
				return
			}
		}
	}()
}

// performBackup creates database backup / Crée un backup de la base de données
// Only supported for SQLite which can snapshot itself with VACUUM INTO.
func (c *Container) performBackup() error {
	if err := os.MkdirAll(c.Config.Backup.Path, 0755); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}

	// Extract database filename from DSN / Extrait le nom du fichier depuis le DSN
	dbName := c.Config.Database.DSN
	if idx := strings.Index(dbName, "?"); idx > 0 {
		dbName = dbName[:idx]
	}
	if dbName == "" || dbName == ":memory:" {
		return fmt.Errorf("cannot backup in-memory database")
	}

	// Generate backup filename with timestamp / Génère le nom du fichier avec horodatage
	timestamp := time.Now().Format("20060102-150405")
	backupFilename := fmt.Sprintf("%s.backup-%s.db", filepath.Base(dbName), timestamp)
	backupPath := filepath.Join(c.Config.Backup.Path, backupFilename)

	// Use VACUUM INTO to create backup (SQLite 3.27.0+) / Utilise VACUUM INTO pour créer le backup
	query := fmt.Sprintf("VACUUM INTO '%s'", backupPath)
	if _, err := c.DB.Exec(query); err != nil {
		return fmt.Errorf("backup execution failed: %w", err)
	}

	log.Printf("Database backup created: %s", backupPath)
	return nil
}

// cleanOldBackups removes old backups / Supprime les anciens backups
func (c *Container) cleanOldBackups() error {
	if c.Config.Backup.RetentionDays <= 0 {
		return nil // No cleanup if retention is 0 or negative / Pas de nettoyage si rétention <= 0
	}

	cutoffTime := time.Now().AddDate(0, 0, -c.Config.Backup.RetentionDays)

	entries, err := os.ReadDir(c.Config.Backup.Path)
	if err != nil {
		return fmt.Errorf("failed to read backup directory: %w", err)
	}

	deletedCount := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		// Only delete .backup-*.db files / Ne supprime que les fichiers .backup-*.db
		if !strings.Contains(entry.Name(), ".backup-") || !strings.HasSuffix(entry.Name(), ".db") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			log.Printf("failed to get file info for %s: %v", entry.Name(), err)
			continue
		}

		if info.ModTime().Before(cutoffTime) {
			backupPath := filepath.Join(c.Config.Backup.Path, entry.Name())
			if err := os.Remove(backupPath); err != nil {
				log.Printf("failed to delete old backup %s: %v", entry.Name(), err)
			} else {
				deletedCount++
				log.Printf("Deleted old backup: %s (age: %d days)",
					entry.Name(), int(time.Since(info.ModTime()).Hours()/24))
			}
		}
	}

	if deletedCount > 0 {
		log.Printf("Cleaned up %d old backup(s)", deletedCount)
	}

	return nil
}

// Close performs graceful shutdown / Effectue un arrêt gracieux
func (c *Container) Close() error {
	if c.ctxCancel != nil {
		c.ctxCancel()
	}
	if c.DB != nil {
		log.Println("Closing database...")
		return c.DB.Close()
	}
	return nil
}
