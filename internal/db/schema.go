package db

import (
	"context"
	_ "embed"
	"fmt"
	"log"
	"os"
)

//go:embed schema.sql
var schemaSQL string

// SchemaSQL returns the embedded schema script
func SchemaSQL() string {
	return schemaSQL
}

// LoadSchema returns the schema script at path, or the embedded one when path is empty
func LoadSchema(path string) (string, error) {
	if path == "" {
		return schemaSQL, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read schema file: %w", err)
	}
	return string(b), nil
}

// InitSchema applies the schema script when the products table does not exist yet
func (db *Database) InitSchema(ctx context.Context, schemaFile string) error {
	var exists bool
	err := db.Pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = current_schema() AND table_name = 'products'
		)`).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check schema: %w", err)
	}
	if exists {
		log.Println("[SC-DB] Schema already present")
		return nil
	}

	script, err := LoadSchema(schemaFile)
	if err != nil {
		return err
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, script); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	log.Println("[SC-DB] Schema initialized")
	return nil
}
