// Package database opens the storage backend selected by configuration and
// exposes it as a set of repositories.
package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"storefront/internal/config"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store is an open storage handle. Close it once at shutdown.
type Store struct {
	Products repositories.ProductRepository
	Carts    repositories.CartRepository
	Orders   repositories.OrderRepository
	Users    repositories.UserRepository

	driver  string
	gormDB  *gorm.DB
	mongoDB *mongo.Database
}

// Driver returns the configured backend name.
func (s *Store) Driver() string {
	return s.driver
}

// Open connects to the backend named by cfg.DBDriver.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.DBDriver {
	case config.DriverSQLite:
		return openGORM(sqlite.Open(cfg.DatabaseDSN), cfg.DBDriver)
	case config.DriverPostgres:
		return openGORM(postgres.Open(cfg.DatabaseDSN), cfg.DBDriver)
	case config.DriverMongo:
		return openMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	case config.DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}

// OpenGORM opens a GORM handle with duplicate-key translation enabled.
func OpenGORM(dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func openGORM(dialector gorm.Dialector, driver string) (*Store, error) {
	db, err := OpenGORM(dialector)
	if err != nil {
		return nil, err
	}
	return NewGORMStore(db, driver), nil
}

// NewGORMStore wraps an open GORM handle.
func NewGORMStore(db *gorm.DB, driver string) *Store {
	return &Store{
		Products: repositories.NewGORMProductRepository(db),
		Carts:    repositories.NewGORMCartRepository(db),
		Orders:   repositories.NewGORMOrderRepository(db),
		Users:    repositories.NewGORMUserRepository(db),
		driver:   driver,
		gormDB:   db,
	}
}

func openMongo(ctx context.Context, uri, name string) (*Store, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return NewMongoStore(client.Database(name)), nil
}

// NewMongoStore wraps an open Mongo database.
func NewMongoStore(db *mongo.Database) *Store {
	return &Store{
		Products: repositories.NewMongoProductRepository(db),
		Carts:    repositories.NewMongoCartRepository(db),
		Orders:   repositories.NewMongoOrderRepository(db),
		Users:    repositories.NewMongoUserRepository(db),
		driver:   config.DriverMongo,
		mongoDB:  db,
	}
}

// NewMemoryStore returns a store that keeps everything in process memory.
func NewMemoryStore() *Store {
	return &Store{
		Products: repositories.NewMockProductRepository(),
		Carts:    repositories.NewMockCartRepository(),
		Orders:   repositories.NewMockOrderRepository(),
		Users:    repositories.NewMockUserRepository(),
		driver:   config.DriverMemory,
	}
}

// Migrate brings the schema up to date: tables for GORM backends, indexes for Mongo.
func (s *Store) Migrate(ctx context.Context) error {
	switch {
	case s.gormDB != nil:
		err := s.gormDB.WithContext(ctx).AutoMigrate(&models.Product{}, &models.CartItem{}, &models.Order{}, &models.User{})
		if err != nil {
			return fmt.Errorf("failed to auto-migrate database: %w", err)
		}
	case s.mongoDB != nil:
		if err := repositories.EnsureMongoIndexes(ctx, s.mongoDB); err != nil {
			return err
		}
	}
	log.Printf("Database schema is up to date (driver: %s)", s.driver)
	return nil
}

// Close releases the underlying connection.
func (s *Store) Close(ctx context.Context) error {
	switch {
	case s.gormDB != nil:
		sqlDB, err := s.gormDB.DB()
		if err != nil {
			return fmt.Errorf("failed to get database handle: %w", err)
		}
		return sqlDB.Close()
	case s.mongoDB != nil:
		return s.mongoDB.Client().Disconnect(ctx)
	}
	return nil
}
