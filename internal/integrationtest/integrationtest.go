// Package integrationtest provides db helpers used in integration tests.
package integrationtest

import (
	"database/sql"
	"testing"

	"github.com/go-petr/bank-accounts/pkg/configpkg"
	"github.com/go-petr/bank-accounts/pkg/dbpkg"
)

// LoadConfig loads the application config from configPath for testing.
//
// The test is skipped when the config or the database it points to is not available,
// integration tests are meant to run against a local PostgreSQL only.
func LoadConfig(t *testing.T, configPath string) configpkg.Config {
	t.Helper()

	config, err := configpkg.Load(configPath)
	if err != nil {
		t.Skipf("configpkg.Load(%q) returned error: %v", configPath, err)
	}

	return config
}

// Flush flushes all db tables without droping.
func Flush(t *testing.T, db *sql.DB) {
	t.Helper()

	if _, err := db.Exec(`TRUNCATE TABLE accounts RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("db cleanup failed. err: %v", err)
	}
}

// SetupDB sets up a migrated database connection for testing and cleans it up afterwards.
func SetupDB(t *testing.T, config configpkg.Config, migrationURL string) *sql.DB {
	t.Helper()

	db, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		t.Skipf("db initialization failed. err: %v", err)
	}

	if err := dbpkg.Migrate(db, migrationURL); err != nil {
		t.Fatalf("dbpkg.Migrate(db, %q) returned error: %v", migrationURL, err)
	}

	t.Cleanup(func() {
		Flush(t, db)

		if err := db.Close(); err != nil {
			t.Fatalf("db cleanup failed. err: %v", err)
		}
	})

	return db
}

// SetupTX sets up a database transaction to be used in tests.
//
// Once the tests are done it will rollback the transaction.
func SetupTX(t *testing.T, config configpkg.Config, migrationURL string) *sql.Tx {
	t.Helper()

	db, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		t.Skipf("db initialization failed. err: %v", err)
	}

	if err := dbpkg.Migrate(db, migrationURL); err != nil {
		t.Fatalf("dbpkg.Migrate(db, %q) returned error: %v", migrationURL, err)
	}

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("db.Begin() failed: %v", err)
	}

	t.Cleanup(func() {
		if err := tx.Rollback(); err != nil {
			t.Fatalf("tx.Rollback() failed: %v", err)
		}
		if err := db.Close(); err != nil {
			t.Fatalf("db.Close() failed: %v", err)
		}
	})

	return tx
}
