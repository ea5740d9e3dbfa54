package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"waste-routing-service/internal/adapters/cache"
	"waste-routing-service/internal/adapters/repositories"
	"waste-routing-service/internal/api"
	"waste-routing-service/internal/platform/db"
	"waste-routing-service/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (Postgres or Mongo, optional Redis) behind
// ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := getEnv("PORT", "8080")
	maxPerCollector, err := strconv.Atoi(getEnv("MAX_PER_COLLECTOR", "10"))
	if err != nil || maxPerCollector < 1 {
		log.Fatal("MAX_PER_COLLECTOR must be a positive integer")
	}

	reports, collectors, cleanup, err := openRepositories()
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	// Stats caching is optional: without REDIS_ADDR every stats request
	// hits the repository directly.
	var statsCache ports.StatsCache
	if addr := os.Getenv("REDIS_ADDR"); strings.TrimSpace(addr) != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("verify redis connection to %q: %v", addr, err)
		}
		statsCache = cache.NewRedisStatsCache(client, 30*time.Second)
		log.Printf("stats cache enabled addr=%s", addr)
	}

	router := api.NewRouter(reports, collectors, ports.SystemClock{}, statsCache, maxPerCollector)

	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// openRepositories selects the persistence backend: MONGO_URI wins when
// set, otherwise DATABASE_URL selects Postgres.
func openRepositories() (ports.ReportRepository, ports.CollectorRepository, func(), error) {
	if uri := os.Getenv("MONGO_URI"); strings.TrimSpace(uri) != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if err != nil {
			return nil, nil, nil, err
		}
		if err := client.Ping(ctx, nil); err != nil {
			return nil, nil, nil, err
		}

		repo := repositories.NewMongoRepository(client, getEnv("MONGO_DATABASE", "wasteroutes"))
		cleanup := func() { _ = client.Disconnect(context.Background()) }
		log.Println("using mongo repositories")
		return repo, repo, cleanup, nil
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL or MONGO_URI is required")
	}

	pg, err := db.Open(databaseURL)
	if err != nil {
		return nil, nil, nil, err
	}

	log.Println("using postgres repositories")
	return repositories.NewPostgresReportRepository(pg),
		repositories.NewPostgresCollectorRepository(pg),
		func() { _ = pg.Close() },
		nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
