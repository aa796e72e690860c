package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Gateway persists named JSON-serializable values to durable local storage.
// Load reports found=false when the key was never saved; a value that exists
// but cannot be deserialized comes back as an error, which consumers treat
// the same as "nothing persisted".
type Gateway interface {
	Save(ctx context.Context, key string, value any) error
	Load(ctx context.Context, key string, out any) (bool, error)
	Close() error
}

// FileGateway stores each key as a JSON file under a base directory.
type FileGateway struct {
	basePath string
}

// NewFileGateway creates a FileGateway and ensures the base directory exists.
func NewFileGateway(basePath string) (*FileGateway, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	return &FileGateway{basePath: basePath}, nil
}

func (g *FileGateway) path(key string) string {
	return filepath.Join(g.basePath, key+".json")
}

// Save serializes value to <basePath>/<key>.json.
func (g *FileGateway) Save(_ context.Context, key string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := os.WriteFile(g.path(key), data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Load deserializes <basePath>/<key>.json into out.
func (g *FileGateway) Load(_ context.Context, key string, out any) (bool, error) {
	data, err := os.ReadFile(g.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return true, nil
}

// Close is a no-op for the file backend.
func (g *FileGateway) Close() error { return nil }
