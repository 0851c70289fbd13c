package testutil

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"gitlab.com/dirk.krummacker/customer-dashboard/internal/config"
	"gitlab.com/dirk.krummacker/customer-dashboard/internal/database"
)

// NewTestDB opens a SQLite database in a temporary directory with all migrations applied. It is
// closed when the test ends.
func NewTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := database.Open(config.Database{
		Driver: "sqlite3",
		Name:   filepath.Join(t.TempDir(), "customer.db"),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
