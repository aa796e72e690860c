package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryGateway is a map-backed Gateway used in tests. Values round-trip
// through JSON so stores see the same shapes they would get from disk.
type MemoryGateway struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemoryGateway creates an empty MemoryGateway.
func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{data: make(map[string][]byte)}
}

// Save serializes value under key.
func (g *MemoryGateway) Save(_ context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.data[key] = data
	return nil
}

// Load deserializes the value stored under key into out.
func (g *MemoryGateway) Load(_ context.Context, key string, out any) (bool, error) {
	g.mu.Lock()
	data, ok := g.data[key]
	g.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return true, nil
}

// Close is a no-op.
func (g *MemoryGateway) Close() error { return nil }
