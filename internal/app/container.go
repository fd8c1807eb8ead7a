package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"thinkabout/internal/config"
	"thinkabout/internal/database"
	"thinkabout/internal/database/migration"
	dbpostgres "thinkabout/internal/database/postgres"
	"thinkabout/internal/delivery/http/routes"
	"thinkabout/internal/infrastructure/cache"
	"thinkabout/internal/pkg/jwt"
	"thinkabout/internal/repository"
)

// Container owns the process-wide data-access handles. It is built once at
// startup, passed explicitly, and closed at shutdown.
type Container struct {
	Config config.Config
	Logger *log.Logger
	DB     database.DB
	Redis  *cache.Redis
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	runner := migration.Runner{Dir: cfg.App.MigrationsDir, Logger: logger}
	if err := runner.Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	if err := migration.VerifySchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Redis:  cache.NewRedis(cfg.Redis, logger),
	}, nil
}

// RouteDeps wires the Postgres repositories and the Redis attempt counter.
func (c *Container) RouteDeps() routes.Deps {
	return routes.Deps{
		Users:     repository.NewPostgresUserRepository(c.DB),
		Questions: repository.NewPostgresQuestionRepository(c.DB),
		Answers:   repository.NewPostgresAnswerRepository(c.DB),
		Tokens:    jwt.NewHMACService(c.Config.JWT.Secret, c.Config.JWT.ExpiresIn),
		Attempts:  c.Redis,
		Login:     c.Config.Login,
		Health:    c.DB,
		Logger:    c.Logger,
	}
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	var errs []error
	if c.Redis != nil {
		errs = append(errs, c.Redis.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
