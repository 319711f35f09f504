package infra

import (
	"fmt"
	"time"

	"github.com/jaramilloedison985-tech/trabajo-final-backend-fumc/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens the Postgres connection pool and runs schema migrations.
// TranslateError lets the repositories surface gorm.ErrDuplicatedKey on
// unique-index violations instead of a raw pgconn error.
func NewDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("conectando a postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := db.AutoMigrate(
		&model.Producto{},
		&model.Cliente{},
		&model.HistorialAuditoria{},
	); err != nil {
		return nil, fmt.Errorf("migrando esquema: %w", err)
	}
	return db, nil
}
