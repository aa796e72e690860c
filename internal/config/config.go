package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the configuration for the application.
type Config struct {
	DataDir    string
	Backend    string
	DBPath     string
	MealDBBase string
	HTTPAddr   string
	GeminiKey  string
	GroqKey    string

	// Telegram Config
	TelegramBotToken    string
	TelegramAllowUserID int64
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	dataDir := os.Getenv("MEALPLEX_DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}

	backend := os.Getenv("MEALPLEX_BACKEND")
	if backend == "" {
		backend = "file"
	}
	if backend != "file" && backend != "sqlite" {
		return nil, fmt.Errorf("MEALPLEX_BACKEND must be 'file' or 'sqlite', got %q", backend)
	}

	dbPath := os.Getenv("MEALPLEX_DB_PATH")
	if dbPath == "" {
		dbPath = dataDir + "/mealplex.db"
	}

	httpAddr := os.Getenv("HTTP_ADDR")
	if httpAddr == "" {
		httpAddr = ":8080"
	}

	// AI keys are optional: the assistant and clipper are disabled without
	// them, the stores keep working.
	geminiKey := os.Getenv("GEMINI_API_KEY")
	groqKey := os.Getenv("GROQ_API_KEY")

	// Telegram Config (Optional for CLI, required for Bot)
	telegramBotToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	telegramAllowUserIDStr := os.Getenv("TELEGRAM_ALLOW_USER_ID")
	var telegramAllowUserID int64
	if telegramAllowUserIDStr != "" {
		// A zero id disables the allow-list, so a typo here must not be let
		// through silently.
		var err error
		telegramAllowUserID, err = strconv.ParseInt(telegramAllowUserIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("TELEGRAM_ALLOW_USER_ID must be a numeric user id, got %q", telegramAllowUserIDStr)
		}
	}

	return &Config{
		DataDir:             dataDir,
		Backend:             backend,
		DBPath:              dbPath,
		MealDBBase:          os.Getenv("MEALDB_BASE_URL"),
		HTTPAddr:            httpAddr,
		GeminiKey:           geminiKey,
		GroqKey:             groqKey,
		TelegramBotToken:    telegramBotToken,
		TelegramAllowUserID: telegramAllowUserID,
	}, nil
}
