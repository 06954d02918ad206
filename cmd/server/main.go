package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"fuel-logistics-service/internal/adapters/cache"
	"fuel-logistics-service/internal/adapters/distance"
	"fuel-logistics-service/internal/adapters/repositories"
	"fuel-logistics-service/internal/adapters/solver"
	"fuel-logistics-service/internal/api"
	"fuel-logistics-service/internal/api/handlers"
	"fuel-logistics-service/internal/jobs"
	"fuel-logistics-service/internal/platform/db"
	"fuel-logistics-service/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, Redis/Postgres caches, routing API,
// external solver) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := getEnv("DB_PATH", "data/app.db")
	seedPath := getEnv("SEED_PATH", "data/seeds/fleet.json")
	port := getEnv("PORT", "8080")
	jobsDir := getEnv("JOBS_DIR", "data/jobs")

	conn, err := db.OpenSqlite(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	// Initialize schema and seed demo data on startup for local runs.
	if err := initAndSeed(conn, seedPath); err != nil {
		log.Fatal(err)
	}

	repo := repositories.NewSqliteFleetRepository(conn)

	locations, err := repo.ListLocations(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	travelCache, err := openTravelCache(conn)
	if err != nil {
		log.Fatal(err)
	}

	// An empty ROUTING_API_KEY is allowed: estimates fall back to the
	// haversine heuristic instead of the routing service.
	estimator, err := distance.NewRoutingProvider(os.Getenv("ROUTING_API_KEY"), travelCache, locations)
	if err != nil {
		log.Fatal(err)
	}

	// Warm the cache with the triangle's legs so the first distance lookups
	// skip the external API round trip.
	go func() {
		if err := estimator.Prefetch(context.Background()); err != nil {
			log.Printf("travel cache prefetch failed: %v", err)
		}
	}()

	retention := jobs.DefaultRetention
	if v := os.Getenv("JOB_RETENTION_MINUTES"); v != "" {
		minutes, err := strconv.Atoi(v)
		if err != nil || minutes <= 0 {
			log.Fatalf("JOB_RETENTION_MINUTES must be a positive integer, got %q", v)
		}
		retention = time.Duration(minutes) * time.Minute
	}
	orch := jobs.NewOrchestrator(jobsDir, retention)

	strategies := map[string]jobs.Strategy{
		"simulator": jobs.SimulatorStrategy{},
	}
	defaultStrategy := "simulator"
	var checker handlers.PlanSelfChecker
	if bin := os.Getenv("SOLVER_BIN"); bin != "" {
		sub := solver.NewSubprocess(bin)
		strategies["solver"] = sub
		defaultStrategy = "solver"
		checker = sub
	}

	router := api.NewRouter(repo, estimator, checker, orch, strategies, defaultStrategy)

	// Timeouts are tuned for cold-cache distance lookups (external API latency);
	// long-running optimizations go through the async job endpoints instead.
	log.Printf("Server listening addr=:%s default_strategy=%s", port, defaultStrategy)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// openTravelCache selects the travel-cache backend via TRAVEL_CACHE:
// sqlite (default, shares the record store), postgres, or redis.
func openTravelCache(conn *sql.DB) (ports.TravelCache, error) {
	switch backend := getEnv("TRAVEL_CACHE", "sqlite"); backend {
	case "sqlite":
		return cache.NewSqliteTravelCache(conn), nil

	case "postgres":
		databaseURL := os.Getenv("DATABASE_URL")
		if databaseURL == "" {
			return nil, fmt.Errorf("open travel cache: DATABASE_URL is required for the postgres backend")
		}
		pg, err := db.OpenPostgres(databaseURL)
		if err != nil {
			return nil, fmt.Errorf("open travel cache: %w", err)
		}
		return cache.NewSQLTravelCache(pg), nil

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			return nil, fmt.Errorf("open travel cache: verify redis connection: %w", err)
		}
		return cache.NewRedisTravelCache(client, 24*time.Hour), nil

	default:
		return nil, fmt.Errorf("open travel cache: unknown backend %q", backend)
	}
}

func initAndSeed(conn *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedFromJSON(conn, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
