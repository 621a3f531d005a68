// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"path/filepath"        // Database file path
	"testing"              // Test helpers
	"todo_app/internal/db" // Schema and store

	"github.com/glebarez/sqlite"          // Pure Go SQLite driver for GORM
	"github.com/stretchr/testify/require" // Assertions
	"gorm.io/gorm"                        // GORM ORM library
	"gorm.io/gorm/logger"                 // GORM logger
)

// NewDB opens a throwaway SQLite database with the application schema applied.
// The file lives in t.TempDir and disappears with the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "todo.db") // Per test database file
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		TranslateError: true,                                  // Map driver errors to gorm errors
		Logger:         logger.Default.LogMode(logger.Silent), // Keep test output quiet
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB() // Underlying connection pool
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)                // SQLite allows a single writer
	t.Cleanup(func() { _ = sqlDB.Close() }) // Close with the test
	require.NoError(t, db.Migrate(gdb))     // Create tables
	return gdb
}

// NewStore returns a Store backed by NewDB
func NewStore(t *testing.T) *db.GormStore {
	t.Helper()
	return db.NewStore(NewDB(t))
}
