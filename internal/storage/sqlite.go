package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"mealplex/internal/database"
)

// SQLiteGateway persists keys as JSON blobs in a single app_state table.
type SQLiteGateway struct {
	db *database.DB
}

// NewSQLiteGateway opens (and migrates) the database at dbPath.
func NewSQLiteGateway(dbPath string) (*SQLiteGateway, error) {
	db, err := database.NewDB(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}
	return &SQLiteGateway{db: db}, nil
}

// Save upserts the serialized value under key.
func (g *SQLiteGateway) Save(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}

	_, err = g.db.SQL.ExecContext(ctx,
		`INSERT INTO app_state (key, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		key, string(data), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// Load reads the value stored under key into out.
func (g *SQLiteGateway) Load(ctx context.Context, key string, out any) (bool, error) {
	var data string
	err := g.db.SQL.QueryRowContext(ctx,
		`SELECT data FROM app_state WHERE key = ?`, key).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("failed to load %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return true, nil
}

// Close closes the underlying database.
func (g *SQLiteGateway) Close() error {
	return g.db.Close()
}
