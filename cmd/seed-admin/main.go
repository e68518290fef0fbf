// Command seed-admin creates the initial superadmin account from SEED_ADMIN_*
// environment variables. An existing account with the same email is left
// untouched.
package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/cipco/cms-backend/internal/core/domain"
	"github.com/cipco/cms-backend/internal/core/ports"
	"github.com/cipco/cms-backend/internal/core/service"
	mongodb "github.com/cipco/cms-backend/internal/infrastructure/db/mongo"
	"github.com/cipco/cms-backend/internal/pkg/config"
	"github.com/cipco/cms-backend/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cfg, err := config.LoadSeed(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	l := logger.Init(logger.Options{Output: os.Stdout, Service: "seed-admin"})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		l.Fatal().Err(err).Msg("mongodb connect failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	users := mongodb.NewUserRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		l.Fatal().Err(err).Msg("ensure user indexes failed")
	}

	svc := service.NewUserService(users, l)
	user, err := svc.Create(ctx, ports.CreateUserInput{
		Email:    cfg.Email,
		Password: cfg.Password,
		Name:     cfg.Name,
		Role:     cfg.Role,
	})
	switch {
	case errors.Is(err, domain.ErrConflict):
		l.Info().Str("email", domain.NormalizeEmail(cfg.Email)).Msg("account already exists, nothing to do")
	case err != nil:
		l.Fatal().Err(err).Msg("seed failed")
	default:
		l.Info().Str("id", user.ID).Str("email", user.Email).Str("role", user.Role).Msg("account created")
	}
}
