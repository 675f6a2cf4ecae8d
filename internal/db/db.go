package db

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"storefront/internal/config"
	"storefront/internal/model"
)

// gormConfig turns on dialect error translation so uniqueness violations
// surface as gorm.ErrDuplicatedKey regardless of the driver.
func gormConfig(quiet bool) *gorm.Config {
	cfg := &gorm.Config{TranslateError: true}
	if quiet {
		cfg.Logger = logger.Default.LogMode(logger.Silent)
	}
	return cfg
}

// Open connects to the database selected by cfg.DBDriver.
func Open(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case "mysql":
		return NewMySQL(cfg.MySQLDSN, cfg.IsProduction())
	case "sqlite":
		return NewSQLite(cfg.SQLitePath, cfg.IsProduction())
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

// NewMySQL returns a connected GORM DB instance.
func NewMySQL(dsn string, quiet bool) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), gormConfig(quiet))
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	return db, nil
}

// NewSQLite opens a SQLite database; ":memory:" is accepted for tests and local runs.
func NewSQLite(path string, quiet bool) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), gormConfig(quiet))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the schema. When reset is set every table is dropped first.
func Migrate(db *gorm.DB, reset bool) error {
	models := model.All()
	if reset {
		// Drop in reverse so dependents go first.
		for i := len(models) - 1; i >= 0; i-- {
			if err := db.Migrator().DropTable(models[i]); err != nil {
				return fmt.Errorf("drop table: %w", err)
			}
		}
	}
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
