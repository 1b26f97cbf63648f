// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file contains database bootstrapping helpers for
// SQLite (pure Go driver) and schema migrations.
package repo

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/Vinayak2k03/NotedAI/internal/domain"
)

// OpenSQLite opens (or creates) a SQLite database and applies PRAGMAs. path
// may be a filesystem path or an in-memory DSN such as
// "file:notedai?mode=memory&cache=shared".
func OpenSQLite(path string) (*gorm.DB, error) {
	inMemory := isMemoryDSN(path)

	// Fail early if parent directory does not exist (instead of sqlite "out of memory (14)" on Windows).
	if !inMemory {
		if dir := filepath.Dir(path); dir != "." {
			if _, err := os.Stat(dir); err != nil {
				return nil, err
			}
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	// Query spans join the request trace; bound values hold meeting notes and
	// stay out of span attributes.
	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics(), tracing.WithoutQueryVariables())); err != nil {
		return nil, err
	}

	// PRAGMAs
	if !inMemory {
		db.Exec("PRAGMA journal_mode=WAL;")
	}
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("PRAGMA busy_timeout=5000;")

	// Pool
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		if !inMemory {
			// A shared-cache memory DB disappears with its last connection.
			sqlDB.SetConnMaxIdleTime(5 * time.Minute)
			sqlDB.SetConnMaxLifetime(30 * time.Minute)
		}
	}

	return db, nil
}

// AutoMigrate creates or updates every table the service owns.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Collection{},
		&domain.Idempotency{},
	)
}

func isMemoryDSN(path string) bool {
	return path == ":memory:" || strings.Contains(path, "mode=memory")
}
