package main

import (
	"context"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"gohoras/adapters/postgres"
	"gohoras/app"
	"gohoras/internal/api"
	"gohoras/internal/auth"
	"gohoras/internal/config"
	"gohoras/internal/migration"
	"gohoras/internal/ops"
	"gohoras/internal/upload"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := migration.NewRunner().Run(ctx, db); err != nil {
		cancel()
		log.Fatalf("Failed to run migrations: %v", err)
	}
	cancel()

	uploads, err := upload.NewStore(cfg.Uploads.Dir, cfg.Uploads.MaxFileSize)
	if err != nil {
		log.Fatalf("Failed to initialize upload store: %v", err)
	}

	users := postgres.NewUserRepository(db)
	contests := postgres.NewContestRepository(db)
	entries := postgres.NewTimeEntryRepository(db)
	notifications := postgres.NewNotificationRepository(db)

	server := api.NewServer(cfg, api.Deps{
		Tokens:        auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		Uploads:       uploads,
		Users:         users,
		Contests:      contests,
		Notifications: notifications,
		Tracker:       app.NewTrackerService(contests, entries),
		Stats:         app.NewStatsService(contests, entries),
		Notifier:      app.NewNotificationService(users, notifications),
	})

	if cfg.Ops.Enabled {
		go func() {
			if err := ops.NewServer(cfg.Ops.Port, db).Run(); err != nil {
				log.Fatalf("Ops server failed: %v", err)
			}
		}()
	}

	if err := server.Run(); err != nil {
		log.Fatalf("API server failed: %v", err)
	}
}
