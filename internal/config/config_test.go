package config

import "testing"

func TestNewFromEnvDefaults(t *testing.T) {
	t.Setenv("MEALPLEX_DATA_DIR", "")
	t.Setenv("MEALPLEX_BACKEND", "")
	t.Setenv("MEALPLEX_DB_PATH", "")
	t.Setenv("HTTP_ADDR", "")

	cfg, err := NewFromEnv()
	if err != nil {
		t.Fatalf("NewFromEnv failed: %v", err)
	}
	if cfg.DataDir != "./data" {
		t.Errorf("Expected default data dir './data', got %q", cfg.DataDir)
	}
	if cfg.Backend != "file" {
		t.Errorf("Expected default backend 'file', got %q", cfg.Backend)
	}
	if cfg.DBPath != "./data/mealplex.db" {
		t.Errorf("Expected db path under data dir, got %q", cfg.DBPath)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("Expected default addr ':8080', got %q", cfg.HTTPAddr)
	}
}

func TestNewFromEnvSqliteBackend(t *testing.T) {
	t.Setenv("MEALPLEX_DATA_DIR", "/tmp/mp")
	t.Setenv("MEALPLEX_BACKEND", "sqlite")
	t.Setenv("MEALPLEX_DB_PATH", "")

	cfg, err := NewFromEnv()
	if err != nil {
		t.Fatalf("NewFromEnv failed: %v", err)
	}
	if cfg.Backend != "sqlite" {
		t.Errorf("Expected backend 'sqlite', got %q", cfg.Backend)
	}
	if cfg.DBPath != "/tmp/mp/mealplex.db" {
		t.Errorf("Expected db path under data dir, got %q", cfg.DBPath)
	}
}

func TestNewFromEnvBadBackend(t *testing.T) {
	t.Setenv("MEALPLEX_BACKEND", "redis")

	if _, err := NewFromEnv(); err == nil {
		t.Error("Expected error for unknown backend")
	}
}

func TestNewFromEnvBadAllowUserID(t *testing.T) {
	// A malformed allow-list id must fail loud: parsing it to 0 would turn
	// the allow-list off for everyone.
	t.Setenv("MEALPLEX_BACKEND", "")
	t.Setenv("TELEGRAM_ALLOW_USER_ID", "not-a-number")

	if _, err := NewFromEnv(); err == nil {
		t.Error("Expected error for unparseable TELEGRAM_ALLOW_USER_ID")
	}
}

func TestNewFromEnvTelegram(t *testing.T) {
	t.Setenv("MEALPLEX_BACKEND", "")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_ALLOW_USER_ID", "4242")

	cfg, err := NewFromEnv()
	if err != nil {
		t.Fatalf("NewFromEnv failed: %v", err)
	}
	if cfg.TelegramBotToken != "123:abc" {
		t.Errorf("Expected bot token, got %q", cfg.TelegramBotToken)
	}
	if cfg.TelegramAllowUserID != 4242 {
		t.Errorf("Expected allow user id 4242, got %d", cfg.TelegramAllowUserID)
	}
}
