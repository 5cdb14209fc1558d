package db

import (
	"database/sql"
	"fmt"
	"log"
)

// DatabaseConfig holds database connection config / Contient la config de connexion BD
type DatabaseConfig struct {
	Type         DatabaseType
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
}

// DatabaseInitializer opens and configures connections / Ouvre et configure les connexions
type DatabaseInitializer interface {
	Initialize(config DatabaseConfig) (*sql.DB, error)
	ConfigureConnection(db *sql.DB, config DatabaseConfig) error
	Type() DatabaseType
}

// InitializerRegistry maps database types to initializer factories
// Associe les types de BD aux factories d'initialiseurs
type InitializerRegistry[T DatabaseInitializer] struct {
	factories map[DatabaseType]func() T
}

// NewInitializerRegistry creates an empty registry / Crée un registre vide
func NewInitializerRegistry[T DatabaseInitializer]() *InitializerRegistry[T] {
	return &InitializerRegistry[T]{
		factories: make(map[DatabaseType]func() T),
	}
}

// Register adds an initializer factory / Ajoute une factory d'initialiseur
func (r *InitializerRegistry[T]) Register(dbType DatabaseType, factory func() T) {
	r.factories[dbType] = factory
}

// Get retrieves an initializer, falling back when the type is unknown
// Récupère l'initialiseur, avec repli quand le type est inconnu
func (r *InitializerRegistry[T]) Get(dbType DatabaseType, fallback func() T) T {
	if factory, exists := r.factories[dbType]; exists {
		return factory()
	}
	return fallback()
}

var initializerRegistry = func() *InitializerRegistry[DatabaseInitializer] {
	registry := NewInitializerRegistry[DatabaseInitializer]()
	registry.Register(SQLite, func() DatabaseInitializer { return &sqliteInitializer{} })
	registry.Register(MySQL, func() DatabaseInitializer { return &mysqlInitializer{} })
	registry.Register(PostgreSQL, func() DatabaseInitializer { return &postgresInitializer{} })
	return registry
}()

// NewDatabaseInitializer creates the initializer for a database type / Crée l'initialiseur pour un type de BD
// SQLite is the default engine when the type is unknown.
func NewDatabaseInitializer(dbType DatabaseType) DatabaseInitializer {
	return initializerRegistry.Get(dbType, func() DatabaseInitializer { return &sqliteInitializer{} })
}

// baseInitializer carries the shared pool settings / Porte les réglages de pool communs
type baseInitializer struct{}

func (b *baseInitializer) setConnectionPool(db *sql.DB, config DatabaseConfig) {
	maxOpen := config.MaxOpenConns
	if maxOpen == 0 {
		maxOpen = 25
	}
	maxIdle := config.MaxIdleConns
	if maxIdle == 0 {
		maxIdle = 5
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
}

func (b *baseInitializer) open(driver string, config DatabaseConfig, configure func(*sql.DB) error) (*sql.DB, error) {
	database, err := sql.Open(driver, config.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", driver, err)
	}

	if err := configure(database); err != nil {
		database.Close()
		return nil, err
	}

	if err := database.Ping(); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", driver, err)
	}

	return database, nil
}

// SQLite initializer / Initialiseur SQLite
type sqliteInitializer struct {
	baseInitializer
}

func (i *sqliteInitializer) Initialize(config DatabaseConfig) (*sql.DB, error) {
	database, err := i.open("sqlite", config, func(db *sql.DB) error {
		return i.ConfigureConnection(db, config)
	})
	if err != nil {
		return nil, err
	}
	log.Println("SQLite database connected successfully")
	return database, nil
}

func (i *sqliteInitializer) ConfigureConnection(db *sql.DB, config DatabaseConfig) error {
	i.setConnectionPool(db, config)

	// WAL and a busy timeout keep concurrent readers from tripping on writers
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA trusted_schema=OFF;",
		"PRAGMA cache_size=10000;",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			log.Printf("Warning: failed to execute pragma (%s): %v", pragma, err)
		}
	}

	return nil
}

func (i *sqliteInitializer) Type() DatabaseType {
	return SQLite
}

// MySQL initializer / Initialiseur MySQL
type mysqlInitializer struct {
	baseInitializer
}

func (i *mysqlInitializer) Initialize(config DatabaseConfig) (*sql.DB, error) {
	database, err := i.open("mysql", config, func(db *sql.DB) error {
		return i.ConfigureConnection(db, config)
	})
	if err != nil {
		return nil, err
	}
	log.Println("MySQL database connected successfully")
	return database, nil
}

func (i *mysqlInitializer) ConfigureConnection(db *sql.DB, config DatabaseConfig) error {
	i.setConnectionPool(db, config)

	if _, err := db.Exec("SET SESSION sql_mode='TRADITIONAL'"); err != nil {
		log.Printf("Warning: failed to set MySQL sql_mode: %v", err)
	}

	return nil
}

func (i *mysqlInitializer) Type() DatabaseType {
	return MySQL
}

// PostgreSQL initializer / Initialiseur PostgreSQL
type postgresInitializer struct {
	baseInitializer
}

func (i *postgresInitializer) Initialize(config DatabaseConfig) (*sql.DB, error) {
	database, err := i.open("postgres", config, func(db *sql.DB) error {
		return i.ConfigureConnection(db, config)
	})
	if err != nil {
		return nil, err
	}
	log.Println("PostgreSQL database connected successfully")
	return database, nil
}

func (i *postgresInitializer) ConfigureConnection(db *sql.DB, config DatabaseConfig) error {
	i.setConnectionPool(db, config)

	if _, err := db.Exec("SET TIME ZONE 'UTC'"); err != nil {
		log.Printf("Warning: failed to set PostgreSQL timezone: %v", err)
	}

	return nil
}

func (i *postgresInitializer) Type() DatabaseType {
	return PostgreSQL
}
