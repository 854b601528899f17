package db

import (
	"fmt"
	"os"
	"path/filepath"

	"quarteto/resource"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

type Connection struct {
	config resource.Config
	*sqlx.DB
}

var _ resource.Resource = Connection{}

// Teardown closes the connection and, for SQLite, removes the database file.
func (c Connection) Teardown() error {
	if err := c.DB.Close(); err != nil {
		return err
	}
	if config, ok := c.config.(SQLiteConfig); ok {
		return os.Remove(config.Path)
	}
	return nil
}

func (c Connection) Close() error {
	return c.DB.Close()
}

func (c Connection) Type() resource.Type {
	return resource.DBConnection
}

//=================================
// SQLite config for db connection
//=================================

type SQLiteConfig struct {
	Path string
}

var _ resource.Config = SQLiteConfig{}

// Materialize opens the database at Path, creating the file and its parent
// directory when missing, and brings the schema up to date.
func (conf SQLiteConfig) Materialize() (resource.Resource, error) {
	if conf.Path == "" {
		return nil, fmt.Errorf("sqlite path not set")
	}
	if dir := filepath.Dir(conf.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	DB, err := sqlx.Open("sqlite3", fmt.Sprintf("file:%s?_foreign_keys=on", conf.Path))
	if err != nil {
		return nil, err
	}
	// sqlite allows a single writer
	DB.SetMaxOpenConns(1)
	conn := Connection{config: conf, DB: DB}
	if err = syncSchema(DB, sqliteSchema); err != nil {
		_ = DB.Close()
		return nil, fmt.Errorf("failed to sync schema of %s: %w", conf.Path, err)
	}
	return conn, nil
}

//=================================
// MySQL config for db connection
//=================================

type MySQLConfig struct {
	DBname   string
	Username string
	Password string
	Host     string
}

var _ resource.Config = MySQLConfig{}

func (conf MySQLConfig) Materialize() (resource.Resource, error) {
	connectStr := fmt.Sprintf(
		"%s:%s@tcp(%s)/%s?parseTime=true",
		conf.Username, conf.Password, conf.Host, conf.DBname,
	)

	DB, err := sqlx.Open("mysql", connectStr)
	if err != nil {
		return nil, err
	}
	conn := Connection{config: conf, DB: DB}
	if err = syncSchema(DB, mysqlSchema); err != nil {
		_ = DB.Close()
		return nil, fmt.Errorf("failed to sync schema of %s: %w", conf.DBname, err)
	}
	return conn, nil
}
