package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/helpdesk/faq-portal/internal/api"
	"github.com/helpdesk/faq-portal/internal/core/service"
	"github.com/helpdesk/faq-portal/internal/infrastructure/config"
	mongodb "github.com/helpdesk/faq-portal/internal/infrastructure/db/mongo"
	redisdb "github.com/helpdesk/faq-portal/internal/infrastructure/db/redis"
	"github.com/helpdesk/faq-portal/internal/infrastructure/queue"
	"github.com/helpdesk/faq-portal/pkg/logger"
)

// @title        FAQ Portal API
// @version      1.0
// @description  Internal FAQ portal: published FAQ catalog, user question lifecycle and helpful votes.
// @BasePath     /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	lg := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		lg.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		_ = client.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		lg.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	faqRepo := mongodb.NewFAQRepository(db)
	questionRepo := mongodb.NewQuestionRepository(db)
	userRepo := mongodb.NewUserRepository(db)

	for name, idx := range map[string]interface {
		EnsureIndexes(context.Context) error
	}{
		"faqs":           faqRepo,
		"user_questions": questionRepo,
		"users":          userRepo,
	} {
		if err := idx.EnsureIndexes(ctx); err != nil {
			lg.Fatal().Err(err).Str("collection", name).Msg("index creation failed")
		}
	}

	dispatcher := queue.NewDispatcher(0, faqRepo, logger.Component("view-dispatcher"))
	dispatcher.Start(ctx)

	viewDedup := redisdb.NewViewDedup(rdb)

	faqService := service.NewFAQService(faqRepo, userRepo, viewDedup, dispatcher, logger.Component("faq-service"))
	questionService := service.NewQuestionService(questionRepo, faqRepo, logger.Component("question-service"))
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, 24*time.Hour)
	profileService := service.NewProfileService(userRepo, questionRepo, faqRepo, logger.Component("profile-service"))

	e := api.NewRouter(api.Dependencies{
		FAQService:      faqService,
		QuestionService: questionService,
		AuthService:     authService,
		ProfileService:  profileService,
		DB:              db,
		Redis:           rdb,
		JWTSecret:       cfg.JWTSecret,
		Logger:          logger.Component("http"),
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			lg.Fatal().Err(err).Msg("server start failed")
		}
	}()
	lg.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("faq portal listening")

	waitForShutdown(lg)

	shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
	defer done()
	if err := e.Shutdown(shutdownCtx); err != nil {
		lg.Error().Err(err).Msg("server shutdown failed")
	}
	cancel() // stop the view dispatcher workers
}

func waitForShutdown(lg zerolog.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	lg.Info().Str("signal", sig.String()).Msg("shutting down")
}
