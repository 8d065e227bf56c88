package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DB is the global database connection
var DB *sqlx.DB

// Connect establishes a connection to the database under dataDir.
// DB_TYPE=postgres with DATABASE_URL switches to PostgreSQL; the
// default is a SQLite file in the data directory.
func Connect(dataDir string) error {
	dbType := os.Getenv("DB_TYPE")
	if dbType == "postgres" {
		url := os.Getenv("DATABASE_URL")
		if url == "" {
			return fmt.Errorf("DATABASE_URL environment variable is not set")
		}
		db, err := sqlx.Connect("postgres", url)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %v", err)
		}
		DB = db
		return initializeSchema()
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dataDir, "vocab.db")
	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %v", err)
	}

	// SQLite doesn't support multiple writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	DB = db

	return initializeSchema()
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// initializeSchema creates necessary tables if they don't exist.
// The DDL is kept portable between SQLite and PostgreSQL.
func initializeSchema() error {
	_, err := DB.Exec(`
		CREATE TABLE IF NOT EXISTS attempts (
			date TEXT PRIMARY KEY,
			word TEXT NOT NULL,
			notes TEXT NOT NULL DEFAULT '',
			recall_pass BOOLEAN NOT NULL DEFAULT FALSE,
			recall_response TEXT NOT NULL DEFAULT '',
			define_pass BOOLEAN NOT NULL DEFAULT FALSE,
			define_response TEXT NOT NULL DEFAULT '',
			sentence_pass BOOLEAN NOT NULL DEFAULT FALSE,
			sentence_response TEXT NOT NULL DEFAULT '',
			completed BOOLEAN NOT NULL DEFAULT FALSE,
			completed_at TEXT NOT NULL DEFAULT ''
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create attempts table: %v", err)
	}

	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS words_seen (
			word TEXT PRIMARY KEY,
			first_shown TEXT NOT NULL,
			last_shown TEXT NOT NULL,
			times_shown INTEGER NOT NULL DEFAULT 0,
			consecutive_recalls INTEGER NOT NULL DEFAULT 0,
			mastered BOOLEAN NOT NULL DEFAULT FALSE,
			enrichment TEXT NOT NULL DEFAULT ''
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create words_seen table: %v", err)
	}

	return nil
}
