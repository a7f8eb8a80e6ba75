package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"gohoras/adapters/postgres"
	"gohoras/internal/auth"
	"gohoras/internal/migration"
	"gohoras/internal/testkit"
)

// seed populates a development database with a synthetic contest so the
// statistics endpoints have something interesting to chew on.
func main() {
	_ = godotenv.Load()

	var (
		members  = flag.Int("members", 8, "number of roster members")
		weeks    = flag.Int("weeks", 6, "contest length in weeks")
		target   = flag.Float64("target", 100, "contest target hours")
		seed     = flag.Uint64("seed", 42, "random seed")
		password = flag.String("password", "password123", "password for every seeded account")
	)
	flag.Parse()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL must be set")
	}

	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := migration.NewRunner().Run(ctx, db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	config := testkit.DefaultSeedConfig()
	config.MemberCount = *members
	config.Weeks = *weeks
	config.TargetHours = *target
	config.Seed = *seed

	fixture, err := testkit.NewSeedGenerator(config).Generate()
	if err != nil {
		log.Fatalf("Failed to generate fixture: %v", err)
	}

	hash, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	users := postgres.NewUserRepository(db)
	contests := postgres.NewContestRepository(db)
	entries := postgres.NewTimeEntryRepository(db)

	for _, user := range fixture.Users {
		user.PasswordHash = hash
		if err := users.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user %s: %v", user.Username, err)
		}
	}

	if err := contests.Create(ctx, fixture.Contest); err != nil {
		log.Fatalf("Failed to create contest: %v", err)
	}
	for _, member := range fixture.Contest.Members {
		if err := contests.AddMember(ctx, fixture.Contest.ID, member.ID); err != nil {
			log.Fatalf("Failed to add member %s: %v", member.Username, err)
		}
	}

	for _, entry := range fixture.Entries {
		if err := entries.Create(ctx, entry); err != nil {
			log.Fatalf("Failed to create entry: %v", err)
		}
	}

	log.Printf("Seeded %d users, 1 contest, %d entries (password %q)",
		len(fixture.Users), len(fixture.Entries), *password)
}
