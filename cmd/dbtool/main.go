package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"range-ring-service/internal/adapters/repositories"
	"range-ring-service/internal/config"
	"range-ring-service/internal/domain"
	"range-ring-service/internal/platform/db"
	"range-ring-service/internal/ports"
	"range-ring-service/internal/services"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

// dbtool creates the schema and loads demo ring sets from a seed file of
// named centers.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()

	pool, err := db.Open(ctx, databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(pool); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	seedPath := config.Get("SEED_PATH", "data/seeds/centers.json")
	log.Println("Seeding ring sets...")
	n, err := seedRingSets(ctx, repositories.NewPostgresRingSetRepository(pool), seedPath)
	if err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Printf("Seeding complete. ring_sets=%d", n)
}

type centerSeed struct {
	Name        string    `json:"name"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Distances   []float64 `json:"distances"`
	StepDegrees float64   `json:"step_degrees"`
}

// seedRingSets generates and stores one ring set per seed entry.
func seedRingSets(ctx context.Context, repo ports.RingSetRepository, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("seed ring sets: read %q: %w", path, err)
	}

	var seeds []centerSeed
	if err := json.Unmarshal(raw, &seeds); err != nil {
		return 0, fmt.Errorf("seed ring sets: parse json: %w", err)
	}

	for i, s := range seeds {
		if strings.TrimSpace(s.Name) == "" {
			return 0, fmt.Errorf("seed ring sets: entry %d: name cannot be empty", i+1)
		}
		if len(s.Distances) == 0 {
			return 0, fmt.Errorf("seed ring sets: entry %q: distances cannot be empty", s.Name)
		}

		set, err := services.GenerateRingSet(ctx, services.RingSetRequest{
			Center:      domain.Coordinate{Lat: s.Latitude, Lon: s.Longitude},
			Distances:   s.Distances,
			StepDegrees: s.StepDegrees,
			Name:        s.Name,
		}, nil)
		if err != nil {
			return 0, fmt.Errorf("seed ring sets: entry %q: %w", s.Name, err)
		}

		if _, err := repo.SaveRingSet(ctx, set); err != nil {
			return 0, fmt.Errorf("seed ring sets: entry %q: %w", s.Name, err)
		}
	}

	return len(seeds), nil
}
