// @title                       CIPCO CMS API
// @version                     1.0
// @description                 Content management backend: blogs, team, contact inquiries and administrator accounts.
// @BasePath                    /
// @securityDefinitions.apikey  AuthToken
// @in                          header
// @name                        x-auth-token
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cipco/cms-backend/internal/api"
	"github.com/cipco/cms-backend/internal/api/handler"
	"github.com/cipco/cms-backend/internal/core/ports"
	"github.com/cipco/cms-backend/internal/core/service"
	mongodb "github.com/cipco/cms-backend/internal/infrastructure/db/mongo"
	redisdb "github.com/cipco/cms-backend/internal/infrastructure/db/redis"
	"github.com/cipco/cms-backend/internal/infrastructure/queue"
	"github.com/cipco/cms-backend/internal/infrastructure/storage"
	"github.com/cipco/cms-backend/internal/pkg/config"
	"github.com/cipco/cms-backend/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	l := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Output:  os.Stdout,
		Service: "cms-api",
	})

	if err := run(ctx, cfg, l); err != nil {
		l.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, l zerolog.Logger) error {
	tokens, err := service.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return err
	}

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(dctx)
	}()
	l.Info().Str("database", cfg.Mongo.Database).Msg("mongodb connected")

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()
	l.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")

	uploader, err := newUploader(ctx, cfg.Images)
	if err != nil {
		return err
	}

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	blogRepo := mongodb.NewBlogRepository(db)
	contactRepo := mongodb.NewContactRepository(db)
	teamRepo := mongodb.NewTeamRepository(db)

	if err := mongodb.EnsureIndexes(ctx, userRepo, blogRepo, contactRepo, teamRepo); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	// --- Background workers ---
	views := queue.NewDispatcher(cfg.Views.Workers, blogRepo, logger.Component(l, "views"))
	views.Start(ctx)

	// --- Services ---
	throttle := redisdb.NewLoginThrottle(rdb, cfg.Login.MaxAttempts, cfg.Login.Window)

	e, err := api.NewRouter(api.Deps{
		Config:   cfg,
		Log:      logger.Component(l, "http"),
		Tokens:   tokens,
		Users:    userRepo,
		Auth:     service.NewAuthService(userRepo, tokens, throttle, logger.Component(l, "auth")),
		UserMgmt: service.NewUserService(userRepo, logger.Component(l, "users")),
		Blogs:    service.NewBlogService(blogRepo, uploader, views, logger.Component(l, "blogs")),
		Contacts: service.NewContactService(contactRepo, logger.Component(l, "contacts")),
		Teams:    service.NewTeamService(teamRepo, uploader, logger.Component(l, "teams")),
		Stats:    service.NewStatsService(blogRepo, contactRepo, userRepo),
		Health: map[string]handler.Pinger{
			"mongodb": handler.MongoPinger(db),
			"redis":   handler.RedisPinger(rdb),
		},
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		l.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	l.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func newUploader(ctx context.Context, cfg config.ImageConfig) (ports.ImageUploader, error) {
	switch cfg.Provider {
	case config.ImageProviderS3:
		return storage.NewS3Uploader(ctx, storage.S3Config{
			Bucket:        cfg.S3.Bucket,
			Region:        cfg.S3.Region,
			Endpoint:      cfg.S3.Endpoint,
			AccessKey:     cfg.S3.AccessKey,
			SecretKey:     cfg.S3.SecretKey,
			PublicBaseURL: cfg.S3.PublicBaseURL,
			UsePathStyle:  cfg.S3.UsePathStyle,
			Folder:        cfg.Folder,
		})
	default:
		return storage.NewCloudinaryUploader(storage.CloudinaryConfig{
			CloudName: cfg.Cloudinary.CloudName,
			APIKey:    cfg.Cloudinary.APIKey,
			APISecret: cfg.Cloudinary.APISecret,
			Folder:    cfg.Folder,
		})
	}
}
