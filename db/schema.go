package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type Schema map[uint32]string

// Versions are applied in order, each exactly once. Never edit a released
// version; append a new one instead.
var sqliteSchema = Schema{
	1: `CREATE TABLE IF NOT EXISTS script (
			script_id INTEGER PRIMARY KEY AUTOINCREMENT,
			name VARCHAR(255) NOT NULL,
			vocabulary VARCHAR(32) NOT NULL,
			source TEXT NOT NULL,
			timestamp BIGINT NOT NULL
	);`,
	2: `CREATE INDEX IF NOT EXISTS script_name_idx ON script (name, script_id);`,
}

var mysqlSchema = Schema{
	1: `CREATE TABLE IF NOT EXISTS script (
			script_id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			name VARCHAR(255) NOT NULL,
			vocabulary VARCHAR(32) NOT NULL,
			source MEDIUMTEXT NOT NULL,
			timestamp BIGINT NOT NULL,
			PRIMARY KEY (script_id)
	);`,
	2: `CREATE INDEX script_name_idx ON script (name, script_id);`,
}

// syncSchema brings db up to the newest version in defs. Every version runs
// in its own serializable transaction together with the bump of
// schema_version, so a crash leaves the database at some whole version.
func syncSchema(db *sqlx.DB, defs Schema) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INT NOT NULL)`); err != nil {
		return fmt.Errorf("failed to create schema_version: %w", err)
	}
	latest := uint32(len(defs))
	for v := uint32(1); v <= latest; v++ {
		def, ok := defs[v]
		if !ok {
			return fmt.Errorf("schema version %d is missing", v)
		}
		if err := applyVersion(db, v, def); err != nil {
			return fmt.Errorf("failed to apply schema version %d: %w", v, err)
		}
	}
	return nil
}

func applyVersion(db *sqlx.DB, v uint32, def string) error {
	tx, err := db.BeginTxx(context.Background(), &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return err
	}
	// no-op once committed
	defer tx.Rollback()

	curr, err := currentVersion(tx)
	if err != nil {
		return err
	}
	if curr >= v {
		return nil
	}
	if v-curr > 1 {
		return fmt.Errorf("database is at version %d, can not skip to %d", curr, v)
	}
	if _, err := tx.Exec(def); err != nil {
		return err
	}
	if curr == 0 {
		_, err = tx.Exec("INSERT INTO schema_version VALUES (?);", v)
	} else {
		_, err = tx.Exec("UPDATE schema_version SET version = ?;", v)
	}
	if err != nil {
		return err
	}
	return tx.Commit()
}

// currentVersion is 0 for a database that has never been synced.
func currentVersion(tx *sqlx.Tx) (uint32, error) {
	var version sql.NullInt32
	err := tx.Get(&version, "SELECT version FROM schema_version;")
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}
	if !version.Valid {
		return 0, nil
	}
	return uint32(version.Int32), nil
}

func schemaVersion(db *sqlx.DB) (uint32, error) {
	tx, err := db.Beginx()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()
	return currentVersion(tx)
}
