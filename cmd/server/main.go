package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"

	"github.com/DanielCayresFilho/midpainel-sub000/internal/api"
	"github.com/DanielCayresFilho/midpainel-sub000/internal/audience"
	"github.com/DanielCayresFilho/midpainel-sub000/internal/config"
	"github.com/DanielCayresFilho/midpainel-sub000/internal/dispatch"
	"github.com/DanielCayresFilho/midpainel-sub000/internal/pkg/distlock"
	"github.com/DanielCayresFilho/midpainel-sub000/internal/repository/postgres"
	"github.com/DanielCayresFilho/midpainel-sub000/internal/segment"
	"github.com/DanielCayresFilho/midpainel-sub000/internal/service/campaign"

	_ "github.com/lib/pq" // PostgreSQL driver
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	cfg, err := config.LoadFromEnv(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Database.URL == "" {
		log.Fatal("database.url (or DATABASE_URL) is required")
	}

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelPing()
	if err := db.PingContext(pingCtx); err != nil {
		log.Fatalf("Database unreachable: %v", err)
	}
	log.Println("[main] database connection established")

	// Redis is optional. Without it the catalog runs uncached and the
	// execution lock falls back to a Postgres advisory lock.
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Printf("[main] redis unreachable, continuing without cache: %v", err)
			redisClient = nil
		}
	}

	var catalogCache *segment.CatalogCache
	if redisClient != nil {
		catalogCache = segment.NewCatalogCache(redisClient, cfg.Catalog.CacheTTL())
	}
	catalog := segment.NewCatalog(postgres.NewCatalogRepo(db), catalogCache)

	svc := campaign.NewService(campaign.Deps{
		Engine:      audience.NewEngine(postgres.NewAudienceRepo(db)),
		Baits:       audience.NewInjector(postgres.NewBaitRepo(db)),
		Distributor: dispatch.NewDistributor(),
		Renderer:    dispatch.NewRenderer(),
		Recurring:   postgres.NewRecurringRepo(db),
		Dispatches:  postgres.NewDispatchRepo(db),
		Templates:   postgres.NewTemplateRepo(db),
		Mappings:    postgres.NewMappingRepo(db),
		BaitRepo:    postgres.NewBaitRepo(db),
		Locks: func(key string) distlock.DistLock {
			return distlock.NewLock(redisClient, db, key, cfg.Campaign.LockTTL())
		},
	})

	server := api.NewServer(svc, catalog, db.Ping)

	corsMiddleware := cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.GetHost(), cfg.Server.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      corsMiddleware(server),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // audience scans can be slow
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("[main] listening on %s", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-done
	log.Println("[main] shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("[main] shutdown error: %v", err)
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	_ = db.Close()
}
