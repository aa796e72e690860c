package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

type payload struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

func TestFileGateway(t *testing.T) {
	ctx := context.Background()

	tempDir, err := os.MkdirTemp("", "storage_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	gw, err := NewFileGateway(tempDir)
	if err != nil {
		t.Fatalf("Failed to create FileGateway: %v", err)
	}

	t.Run("Load-NeverSaved", func(t *testing.T) {
		var out payload
		found, err := gw.Load(ctx, "planner", &out)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if found {
			t.Error("Expected key 'planner' to be absent, but it was found")
		}
	})

	t.Run("Save", func(t *testing.T) {
		in := payload{Name: "week", Items: []string{"Milk", "Rice"}}
		if err := gw.Save(ctx, "planner", in); err != nil {
			t.Fatalf("Failed to save: %v", err)
		}

		filePath := filepath.Join(tempDir, "planner.json")
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			t.Errorf("Expected file '%s' to be created, but it wasn't", filePath)
		}
	})

	t.Run("Load", func(t *testing.T) {
		var out payload
		found, err := gw.Load(ctx, "planner", &out)
		if err != nil {
			t.Fatalf("Failed to load: %v", err)
		}
		if !found {
			t.Fatal("Expected key 'planner' to be found")
		}
		if out.Name != "week" {
			t.Errorf("Expected name 'week', got '%s'", out.Name)
		}
		if len(out.Items) != 2 {
			t.Errorf("Expected 2 items, got %d", len(out.Items))
		}
	})

	t.Run("Load-Corrupt", func(t *testing.T) {
		if err := os.WriteFile(filepath.Join(tempDir, "broken.json"), []byte("{not json"), 0644); err != nil {
			t.Fatalf("Failed to write corrupt file: %v", err)
		}
		var out payload
		_, err := gw.Load(ctx, "broken", &out)
		if err == nil {
			t.Fatal("Expected an error for corrupt data, got nil")
		}
	})
}

func TestMemoryGateway(t *testing.T) {
	ctx := context.Background()
	gw := NewMemoryGateway()

	var out payload
	found, err := gw.Load(ctx, "reminders", &out)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if found {
		t.Error("Expected key 'reminders' to be absent")
	}

	if err := gw.Save(ctx, "reminders", payload{Name: "r"}); err != nil {
		t.Fatalf("Failed to save: %v", err)
	}

	found, err = gw.Load(ctx, "reminders", &out)
	if err != nil {
		t.Fatalf("Failed to load: %v", err)
	}
	if !found {
		t.Fatal("Expected key 'reminders' to be found")
	}
	if out.Name != "r" {
		t.Errorf("Expected name 'r', got '%s'", out.Name)
	}
}
