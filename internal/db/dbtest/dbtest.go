// Package dbtest opens migrated throwaway databases for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"finance_tracker/internal/config"
	"finance_tracker/internal/db"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Open returns a migrated SQLite database living in the test's temp dir
func Open(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := db.Open(&config.Config{
		DBDriver: "sqlite",
		DBPath:   filepath.Join(t.TempDir(), "finance.db"),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return conn
}
