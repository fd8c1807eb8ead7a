package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log"
	"os"
	"time"

	"thinkabout/internal/config"
	"thinkabout/internal/database/migration"
	dbpostgres "thinkabout/internal/database/postgres"
	"thinkabout/internal/database/seeder"
	"thinkabout/internal/repository"

	"github.com/joho/godotenv"
)

func main() {
	dir := flag.String("dir", "", "migrations directory (defaults to MIGRATIONS_DIR)")
	verify := flag.Bool("verify", true, "check required columns after applying")
	seed := flag.Bool("seed", false, "insert demo users and questions")
	flag.Parse()

	logger := log.New(os.Stdout, "", log.LstdFlags)

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Printf("Config | .env not loaded err=%v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	if *dir == "" {
		*dir = cfg.App.MigrationsDir
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Fatalf("failed to connect: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	r := migration.Runner{Dir: *dir, Logger: logger}
	if err := r.Run(ctx, db.SQLDB()); err != nil {
		logger.Fatalf("migration failed: %v", err)
	}

	if *verify {
		if err := migration.VerifySchema(ctx, db); err != nil {
			logger.Fatalf("schema verification failed: %v", err)
		}
	}
	logger.Printf("Migration | done dir=%s", *dir)

	if *seed {
		sr := seeder.Runner{Seeders: seeder.Defaults(), Logger: logger}
		repos := seeder.Repos{
			Users:     repository.NewPostgresUserRepository(db),
			Questions: repository.NewPostgresQuestionRepository(db),
		}
		if err := sr.Run(ctx, repos); err != nil {
			logger.Fatalf("seed failed: %v", err)
		}
	}
}
