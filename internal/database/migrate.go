package database

import (
	"fmt"
	"strings"

	"github.com/GuiaBolso/darwin"
	"github.com/jmoiron/sqlx"
	"gitlab.com/dirk.krummacker/customer-dashboard/internal/logging"
)

// schema holds the table definition per driver. The column names are fixed, only the types of
// the generated id and the timestamps differ.
// *NEVER* change a released step, darwin stores a checksum of every script.
var schema = map[string][]darwin.Migration{
	"mysql": {
		{Version: 1.00, Description: "Create Table 'CUSTOMER'", Script: `
		CREATE TABLE IF NOT EXISTS CUSTOMER (
			ID BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			FIRST_NAME VARCHAR(150) NOT NULL,
			MIDDLE_NAME VARCHAR(255),
			LAST_NAME VARCHAR(150) NOT NULL,
			CREATED_DATETIME DATETIME(6) NOT NULL,
			CREATED_BY VARCHAR(255) NOT NULL,
			MODIFIED_DATETIME DATETIME(6),
			MODIFIED_BY VARCHAR(255)
		);`},
	},
	"postgres": {
		{Version: 1.00, Description: "Create Table 'CUSTOMER'", Script: `
		CREATE TABLE IF NOT EXISTS CUSTOMER (
			ID BIGSERIAL PRIMARY KEY,
			FIRST_NAME VARCHAR(150) NOT NULL,
			MIDDLE_NAME VARCHAR(255),
			LAST_NAME VARCHAR(150) NOT NULL,
			CREATED_DATETIME TIMESTAMP NOT NULL,
			CREATED_BY VARCHAR(255) NOT NULL,
			MODIFIED_DATETIME TIMESTAMP,
			MODIFIED_BY VARCHAR(255)
		);`},
	},
	"sqlite3": {
		{Version: 1.00, Description: "Create Table 'CUSTOMER'", Script: `
		CREATE TABLE IF NOT EXISTS CUSTOMER (
			ID INTEGER PRIMARY KEY AUTOINCREMENT,
			FIRST_NAME VARCHAR(150) NOT NULL,
			MIDDLE_NAME VARCHAR(255),
			LAST_NAME VARCHAR(150) NOT NULL,
			CREATED_DATETIME DATETIME NOT NULL,
			CREATED_BY VARCHAR(255) NOT NULL,
			MODIFIED_DATETIME DATETIME,
			MODIFIED_BY VARCHAR(255)
		);`},
	},
}

func dialect(driver string) (darwin.Dialect, error) {
	switch driver {
	case "mysql":
		return darwin.MySQLDialect{}, nil
	case "postgres":
		return darwin.PostgresDialect{}, nil
	case "sqlite3":
		return darwin.SqliteDialect{}, nil
	}
	return nil, fmt.Errorf("no migrations for driver %q", driver)
}

// Migrate brings the schema of db up to date.
func Migrate(db *sqlx.DB) error {
	logger := logging.NewPackageLogger("database")
	d, err := dialect(db.DriverName())
	if err != nil {
		return err
	}
	migrations := schema[db.DriverName()]
	infoChan := make(chan darwin.MigrationInfo, len(migrations))
	m := darwin.New(darwin.NewGenericDriver(db.DB, d), migrations, infoChan)
	err = m.Migrate()
	close(infoChan)
	prog := progress(infoChan)
	if err != nil {
		return fmt.Errorf("migration error: %w\n%s", err, prog)
	}
	logger.Info().Str("driver", db.DriverName()).Msg(strings.TrimSpace("schema is current\n" + prog))
	return nil
}

// progress returns the steps attempted during this migration
func progress(ch <-chan darwin.MigrationInfo) string {
	var b strings.Builder
	for info := range ch {
		_, _ = fmt.Fprintf(&b, "v%.2f: \"%s\" (%s) Error: %v\n",
			info.Migration.Version, info.Migration.Description, info.Status.String(), info.Error)
	}
	return b.String()
}

// Schema returns the migration scripts of a driver for display.
func Schema(driver string) (string, error) {
	migrations, ok := schema[driver]
	if !ok {
		return "", fmt.Errorf("no migrations for driver %q", driver)
	}
	var b strings.Builder
	for _, m := range migrations {
		_, _ = fmt.Fprintf(&b, "-- %s (%.2f)\n%s\n\n", m.Description, m.Version, m.Script)
	}
	return b.String(), nil
}
