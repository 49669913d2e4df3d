package store

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

const defaultTestDSN = "user:pass@(localhost:3306)/products?charset=utf8mb4&parseTime=true"

// newTestDB connects to the local test database and empties every table.
// Tests are skipped when the database is unreachable.
func newTestDB(t *testing.T) *MYSQLStore {
	t.Helper()
	dsn := os.Getenv("MYSQL_TEST_DSN")
	if dsn == "" {
		dsn = defaultTestDSN
	}
	db, err := New(context.Background(), Config{
		DSN:         dsn,
		Automigrate: true,
	})
	if err != nil {
		t.Skipf("mysql is not available: %v", err)
	}
	t.Cleanup(db.Close)

	ctx := context.Background()
	_, err = db.db.ExecContext(ctx, "SET FOREIGN_KEY_CHECKS = 0")
	require.NoError(t, err)
	for _, table := range []string{
		"serial_item",
		"product",
		"barcode_model_code",
		"supplier_code",
		"sequence_counter",
		"send_email_request",
		"subcategory",
		"category",
		"brand",
		"item_type",
		"vendor",
	} {
		_, err = db.db.ExecContext(ctx, "DELETE FROM "+table)
		require.NoError(t, err)
	}
	_, err = db.db.ExecContext(ctx, "SET FOREIGN_KEY_CHECKS = 1")
	require.NoError(t, err)

	return db
}
