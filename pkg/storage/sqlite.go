// Package storage opens the shared SQLite database. Every module owns its own
// GORM handle; they all point at the same file so foreign keys between module
// tables hold.
package storage

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultPath is used when DB_PATH is not set.
const DefaultPath = "taskmanager.db"

// connParams are per-connection SQLite settings. Pragmas set via Exec reach
// only the one pooled connection the statement runs on, so they ride in the
// DSN where the driver applies them to every connection the pool opens:
// foreign keys for owner-delete cascades, a busy timeout because several
// modules share the file.
const connParams = "_foreign_keys=on&_busy_timeout=5000"

// memorySeq names in-memory databases so separate Opens stay isolated.
var memorySeq atomic.Int64

// PathFromEnv returns the configured database path.
func PathFromEnv() string {
	if path := os.Getenv("DB_PATH"); path != "" {
		return path
	}
	return DefaultPath
}

// DebugFromEnv reports whether debug mode is enabled.
func DebugFromEnv() bool {
	return os.Getenv("DEBUG") == "true"
}

// dsn builds the driver DSN for path, carrying the connection params. A plain
// ":memory:" would give each pooled connection its own empty database, so
// in-memory databases get a unique shared-cache name instead: all connections
// of one Open share it, while separate Opens stay isolated.
func dsn(path string) string {
	if path == ":memory:" {
		return fmt.Sprintf("file:inmem%d?mode=memory&cache=shared&%s", memorySeq.Add(1), connParams)
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + connParams
}

// Open connects to the SQLite database at path. Debug mode enables GORM query
// logging.
func Open(path string, debug bool) (*gorm.DB, error) {
	logLevel := logger.Silent
	if debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(dsn(path)), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// Close closes the underlying sql.DB of a GORM handle.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
