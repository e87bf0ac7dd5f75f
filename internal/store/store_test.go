package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/notevault/internal/config"
	"github.com/MKhiriev/notevault/internal/logger"
)

// newTestDB opens a migrated in-memory sqlite database.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewConnectSQLite(context.Background(), config.ClientDB{DSN: ":memory:"}, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// newMockDB wraps a sqlmock connection for error-path tests.
func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return &DB{DB: conn, logger: logger.Nop()}, mock, conn
}
