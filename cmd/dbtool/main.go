package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"fuel-logistics-service/internal/adapters/repositories"
	"fuel-logistics-service/internal/platform/db"
)

// dbtool initializes the record-store schema and loads seed data outside the
// server process, for fresh environments and CI.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := flag.String("db", getEnv("DB_PATH", "data/app.db"), "path to the sqlite database file")
	seedPath := flag.String("seed", getEnv("SEED_PATH", "data/seeds/fleet.json"), "path to the JSON seed file")
	flag.Parse()

	conn, err := db.OpenSqlite(*dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	log.Println("Seeding database...")
	if err := repositories.SeedFromJSON(conn, *seedPath); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
