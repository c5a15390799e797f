package data

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // SQLite driver, imported for its registration side effect
)

var DB *sqlx.DB // application-wide connection pool

const DefaultDbName = "TaskManager.db"

// InitDB opens the SQLite database at the given path, applies the schema and
// runs column upgrades for databases created by older builds.
func InitDB(dataSourceName string) error {
	if dataSourceName == "" {
		dataSourceName = DefaultDbName
	}
	log.Printf("Using database file at: %s", dataSourceName)

	var err error
	DB, err = sqlx.Connect("sqlite3", dataSourceName+"?_foreign_keys=on")
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err = DB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	log.Println("Successfully connected to the database.")

	if _, err = DB.Exec(GetSchema()); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	log.Println("Database schema applied successfully.")

	if err = EnsureSystemTaskSchemaUpgrade(); err != nil {
		return fmt.Errorf("failed to upgrade system task schema: %w", err)
	}
	if err = EnsureTaskSchemaUpgrade(); err != nil {
		return fmt.Errorf("failed to upgrade task schema: %w", err)
	}

	return nil
}

// GetDB returns the current database connection pool.
func GetDB() *sqlx.DB {
	return DB
}

// columnExists checks pragma_table_info for a column in a table.
func columnExists(table, column string) (bool, error) {
	var exists bool
	err := DB.Get(&exists, `
		SELECT COUNT(*) > 0
		FROM pragma_table_info(?)
		WHERE name = ?
	`, table, column)
	return exists, err
}

// EnsureSystemTaskSchemaUpgrade adds columns introduced after the first
// SystemTaskTemplates release (MonthOfYear for yearly/interval schedules).
func EnsureSystemTaskSchemaUpgrade() error {
	exists, err := columnExists("SystemTaskTemplates", "MonthOfYear")
	if err != nil {
		log.Printf("Error checking MonthOfYear column: %v", err)
		return nil
	}
	if !exists {
		if _, err = DB.Exec(`ALTER TABLE SystemTaskTemplates ADD COLUMN MonthOfYear INTEGER`); err != nil {
			return fmt.Errorf("failed to add MonthOfYear column: %w", err)
		}
		log.Printf("Added MonthOfYear column to SystemTaskTemplates")
	}
	return nil
}

// EnsureTaskSchemaUpgrade adds the CompletedAt column to Tasks.
func EnsureTaskSchemaUpgrade() error {
	exists, err := columnExists("Tasks", "CompletedAt")
	if err != nil {
		log.Printf("Error checking CompletedAt column: %v", err)
		return nil
	}
	if !exists {
		if _, err = DB.Exec(`ALTER TABLE Tasks ADD COLUMN CompletedAt DATETIME`); err != nil {
			return fmt.Errorf("failed to add CompletedAt column: %w", err)
		}
		log.Printf("Added CompletedAt column to Tasks")
	}
	return nil
}
