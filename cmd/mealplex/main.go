package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"mealplex/internal/api"
	"mealplex/internal/app"
	"mealplex/internal/calendar"
	"mealplex/internal/config"
	"mealplex/internal/dish"
	"mealplex/internal/shopping"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	application, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer application.Close()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		runServer(application, cfg)
	case "plan":
		printPlan(application)
	case "shopping":
		printShopping(application)
	case "generate":
		generateCmd := flag.NewFlagSet("generate", flag.ExitOnError)
		start := generateCmd.String("start", "", "Start date (YYYY-MM-DD, defaults to today)")
		days := generateCmd.Int("days", 7, "Number of days to cover")
		generateCmd.Parse(os.Args[2:])

		startDate := parseDateOrNow(*start)
		count := application.Shopping.GenerateFromPlan(application.Planner.Plan(), application.Planner.CustomDishes(), startDate, *days)
		fmt.Printf("Generated %d shopping items from the plan.\n", count)
	case "search":
		if len(os.Args) < 3 {
			fmt.Println("Usage: mealplex search <query>")
			os.Exit(1)
		}
		results, err := application.MealDB.Search(ctx, os.Args[2])
		if err != nil {
			log.Fatalf("Search failed: %v", err)
		}
		if len(results) == 0 {
			fmt.Println("No recipes found.")
			return
		}
		for _, d := range results {
			fmt.Printf("%-8s %-35s %s (%s)\n", d.ID, d.Name, d.Cuisine, d.Diet)
		}
	case "clip":
		if len(os.Args) < 3 {
			fmt.Println("Usage: mealplex clip <url>")
			os.Exit(1)
		}
		if application.Clipper == nil {
			log.Fatal("Clipping requires GEMINI_API_KEY or GROQ_API_KEY")
		}
		clipped, err := application.Clipper.ClipURL(ctx, os.Args[2])
		if err != nil {
			log.Fatalf("Clip failed: %v", err)
		}
		fmt.Printf("Saved %q (%d ingredients) as dish %s.\n", clipped.Name, len(clipped.Ingredients), clipped.ID)
	case "export":
		exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
		out := exportCmd.String("out", "mealplex-week.ics", "Output .ics path")
		start := exportCmd.String("start", "", "Start date (YYYY-MM-DD, defaults to today)")
		days := exportCmd.Int("days", 7, "Number of days to cover")
		exportCmd.Parse(os.Args[2:])

		result := calendar.ExportWeek(*out, application.Planner.Plan(), parseDateOrNow(*start), *days, application.DishName)
		if result.Err != nil {
			log.Fatalf("Export failed: %v", result.Err)
		}
		fmt.Printf("Exported %d meals to %s.\n", result.Count, *out)
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runServer(application *app.App, cfg *config.Config) {
	router := api.NewRouter(api.NewHandler(application))

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		log.Printf("API server listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}

func printPlan(application *app.App) {
	plan := application.Planner.Plan()
	if len(plan) == 0 {
		fmt.Println("Nothing planned yet.")
		return
	}

	dates := make([]string, 0, len(plan))
	for date := range plan {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	for _, date := range dates {
		fmt.Println(date)
		for _, slot := range dish.Slots {
			for _, id := range plan[date][slot] {
				name, ok := application.DishName(id)
				if !ok {
					name = id
				}
				fmt.Printf("  %-10s %s\n", slot, name)
			}
		}
	}
}

func printShopping(application *app.App) {
	grouped := application.Shopping.ItemsByCategory()
	total := 0
	for _, cat := range shopping.Categories {
		items := grouped[cat]
		if len(items) == 0 {
			continue
		}
		fmt.Printf("%s:\n", cat)
		for _, item := range items {
			mark := " "
			if item.Checked {
				mark = "x"
			}
			fmt.Printf("  [%s] %s\n", mark, item.Name)
			total++
		}
	}
	if total == 0 {
		fmt.Println("The shopping list is empty.")
	}
}

func parseDateOrNow(s string) time.Time {
	if s == "" {
		return time.Now()
	}
	parsed, err := time.Parse("2006-01-02", s)
	if err != nil {
		log.Fatalf("Invalid date %q, expected YYYY-MM-DD", s)
	}
	return parsed
}

func printUsage() {
	fmt.Println("Usage: mealplex <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  serve       Run the HTTP API server")
	fmt.Println("  plan        Print the meal plan")
	fmt.Println("  shopping    Print the shopping list")
	fmt.Println("  generate    Rebuild the shopping list from the plan")
	fmt.Println("  search      Search TheMealDB for recipes")
	fmt.Println("  clip        Import a recipe from a URL")
	fmt.Println("  export      Write the week's meals to an .ics file")
}
