package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/dirk.krummacker/customer-dashboard/internal/config"
)

// TestMigrateSQLite applies the migrations twice to an in-memory database and verifies that the
// customer table exists afterwards.
func TestMigrateSQLite(t *testing.T) {
	db, err := Open(config.Database{Driver: "sqlite3", Name: ":memory:"})
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db), "a second run must be a no-op")

	var columns []string
	rows, err := db.Query(`SELECT name FROM pragma_table_info('CUSTOMER')`)
	require.NoError(t, err)
	defer rows.Close()
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		columns = append(columns, name)
	}
	assert.Equal(t, []string{
		"ID", "FIRST_NAME", "MIDDLE_NAME", "LAST_NAME",
		"CREATED_DATETIME", "CREATED_BY", "MODIFIED_DATETIME", "MODIFIED_BY",
	}, columns)
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := Open(config.Database{Driver: "oracle"})
	assert.Error(t, err)
}

func TestSchema(t *testing.T) {
	s, err := Schema("postgres")
	require.NoError(t, err)
	assert.Contains(t, s, "BIGSERIAL")
	_, err = Schema("oracle")
	assert.Error(t, err)
}

// TestWithTxCommit verifies that a successful function commits.
func TestWithTxCommit(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()
	db := sqlx.NewDb(sqlDB, "mysql")

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE CUSTOMER").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = WithTx(context.Background(), db, nil, func(tx *sqlx.Tx) error {
		_, err := tx.Exec("UPDATE CUSTOMER SET first_name = 'x'")
		return err
	})
	assert.NoError(t, err)
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

// TestWithTxRollback verifies that a failing function rolls back and its error is returned.
func TestWithTxRollback(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()
	db := sqlx.NewDb(sqlDB, "mysql")

	mock.ExpectBegin()
	mock.ExpectRollback()

	failure := errors.New("failure")
	err = WithTx(context.Background(), db, ReadOnly, func(tx *sqlx.Tx) error {
		return failure
	})
	assert.ErrorIs(t, err, failure)
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}
