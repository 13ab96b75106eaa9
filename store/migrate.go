package store

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mongodb"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.mongodb.org/mongo-driver/mongo"
)

//go:embed migrations/*.json
var migrations embed.FS

// Migrate applies the embedded migrations to dbName. An up to date database
// is not an error.
func Migrate(client *mongo.Client, dbName string) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("can't open migrations: %w", err)
	}

	instance, err := mongodb.WithInstance(client, &mongodb.Config{DatabaseName: dbName})
	if err != nil {
		return fmt.Errorf("can't create migrate driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, dbName, instance)
	if err != nil {
		return fmt.Errorf("can't create migrate instance: %w", err)
	}

	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}
