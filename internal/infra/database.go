package infra

import (
	"fmt"

	"arkos/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs AutoMigrate
// to create / update all tables. gen_random_uuid() requires PostgreSQL 13+.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return db, nil
}

// RunMigrations creates the schema. Join tables are migrated through their
// explicit models so both columns form the composite primary key.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Color{},
		&model.TipoTela{},
		&model.Proveedor{},
		&model.Estampado{},
		&model.Combinacion{},
		&model.CombinacionColor{},
		&model.CombinacionTela{},
		&model.CombinacionProveedor{},
		&model.CombinacionEstampado{},
		&model.CombinacionImagen{},
		&model.Precio{},
		&model.Venta{},
		&model.DetalleVenta{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return nil
}
