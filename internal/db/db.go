package db

import (
	"fmt"           // Error wrapping
	"os"            // Directory creation for SQLite files
	"path/filepath" // Parent directory of the SQLite file
	"time"          // Connection lifetimes

	"finance_tracker/internal/config" // Custom import path (Config)

	"gorm.io/driver/mysql"  // MySQL driver for GORM
	"gorm.io/driver/sqlite" // SQLite driver for GORM
	"gorm.io/gorm"          // GORM ORM library
	"gorm.io/gorm/logger"   // GORM logger levels
)

// Open connects to the database selected by cfg.DBDriver
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
		dialector = sqlite.Open(SQLiteDSN(cfg.DBPath))
	case "mysql", "":
		dialector = mysql.Open(cfg.DSN())
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	gormLogger := logger.Default.LogMode(logger.Silent)
	if cfg.DBLog {
		gormLogger = logger.Default.LogMode(logger.Info)
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true, // Map duplicate key and foreign key errors to gorm errors
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	if cfg.DBDriver == "sqlite" {
		sqlDB.SetMaxOpenConns(1) // SQLite allows a single writer
	} else {
		sqlDB.SetMaxOpenConns(20)
		sqlDB.SetMaxIdleConns(5)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)
	return db, nil
}

// SQLiteDSN enables foreign keys on every pooled connection
func SQLiteDSN(path string) string {
	return "file:" + path + "?_foreign_keys=on&_busy_timeout=5000"
}
