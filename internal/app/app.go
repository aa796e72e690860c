// Package app wires the stores, persistence gateway, and AI services
// together for both binaries.
package app

import (
	"context"
	"fmt"
	"log"

	"mealplex/internal/assistant"
	"mealplex/internal/clipper"
	"mealplex/internal/config"
	"mealplex/internal/dish"
	"mealplex/internal/favorites"
	"mealplex/internal/llm"
	"mealplex/internal/mealdb"
	"mealplex/internal/planner"
	"mealplex/internal/preferences"
	"mealplex/internal/reminders"
	"mealplex/internal/shopping"
	"mealplex/internal/storage"
)

// App holds the application's dependencies.
type App struct {
	Cfg *config.Config

	Gateway storage.Gateway

	Planner     *planner.Store
	Shopping    *shopping.Store
	Reminders   *reminders.Store
	Favorites   *favorites.Store
	Preferences *preferences.Store

	MealDB    *mealdb.Client
	Assistant *assistant.Assistant
	Clipper   *clipper.Clipper

	textGen llm.TextGenerator
}

// New builds the full dependency graph from configuration and loads
// persisted state into every store.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	gateway, err := newGateway(cfg)
	if err != nil {
		return nil, err
	}

	a := &App{
		Cfg:         cfg,
		Gateway:     gateway,
		Planner:     planner.NewStore(gateway),
		Shopping:    shopping.NewStore(gateway),
		Reminders:   reminders.NewStore(gateway),
		Favorites:   favorites.NewStore(gateway),
		Preferences: preferences.NewStore(gateway),
		MealDB:      mealdb.NewClient(cfg.MealDBBase),
	}

	a.Planner.Init(ctx)
	a.Shopping.Init(ctx)
	a.Reminders.Init(ctx)
	a.Favorites.Init(ctx)
	a.Preferences.Init(ctx)

	if textGen, err := newTextGenerator(ctx, cfg); err != nil {
		log.Printf("AI features disabled: %v", err)
	} else {
		a.textGen = textGen
		a.Assistant = assistant.New(textGen, a.Planner, a.Shopping)
		a.Clipper = clipper.NewClipper(a.Planner, textGen)
	}

	return a, nil
}

// DishName resolves a dish id against the custom dishes and the built-in
// catalog, for callers that only need the display name.
func (a *App) DishName(id string) (string, bool) {
	d, ok := dish.Resolve(a.Planner.CustomDishes(), id)
	if !ok {
		return "", false
	}
	return d.Name, true
}

// Close flushes pending persistence writes and releases the gateway.
func (a *App) Close() error {
	a.Planner.Flush()
	a.Shopping.Flush()
	a.Reminders.Flush()
	a.Favorites.Flush()
	a.Preferences.Flush()

	if closer, ok := a.textGen.(llm.Closer); ok {
		if err := closer.Close(); err != nil {
			log.Printf("Failed to close AI client: %v", err)
		}
	}
	return a.Gateway.Close()
}

func newGateway(cfg *config.Config) (storage.Gateway, error) {
	switch cfg.Backend {
	case "sqlite":
		return storage.NewSQLiteGateway(cfg.DBPath)
	case "file":
		return storage.NewFileGateway(cfg.DataDir)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

func newTextGenerator(ctx context.Context, cfg *config.Config) (llm.TextGenerator, error) {
	if cfg.GeminiKey != "" {
		return llm.NewGeminiClient(ctx, cfg.GeminiKey)
	}
	if cfg.GroqKey != "" {
		return llm.NewGroqClient(cfg.GroqKey), nil
	}
	return nil, fmt.Errorf("no GEMINI_API_KEY or GROQ_API_KEY configured")
}
