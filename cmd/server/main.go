package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/stucom/basketball-fans-service/internal/auth"
	"github.com/stucom/basketball-fans-service/internal/config"
	"github.com/stucom/basketball-fans-service/internal/handler"
	"github.com/stucom/basketball-fans-service/internal/logger"
	"github.com/stucom/basketball-fans-service/internal/repository"
	"github.com/stucom/basketball-fans-service/internal/repository/postgres"
	"github.com/stucom/basketball-fans-service/internal/service"
)

func main() {
	// Local runs keep secrets in .env; in containers the env is already set.
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("config loading failed: %v", err)
	}

	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("logger initialization failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, err := repository.New(ctx, cfg, &appLogger)
	if err != nil {
		log.Fatalf("postgres connection failed: %v", err)
	}
	defer repo.Close()
	pool := repo.Pool()

	games := postgres.NewGameRepository(pool)
	players := postgres.NewPlayerRepository(pool)
	users := postgres.NewUserRepository(pool)
	ratings := postgres.NewRatingRepository(pool)
	favourites := postgres.NewFavouriteRepository(pool)
	tx := postgres.NewTxManager(pool)

	gameSvc := service.NewGameService(games, tx, appLogger)
	playerSvc := service.NewPlayerService(players, appLogger)
	ratingSvc := service.NewRatingService(ratings, games, users, appLogger)
	favSvc := service.NewFavouriteService(favourites, players, users, appLogger)

	if cfg.App.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		handler.RequestID(),
		auth.Middleware(auth.Verifier{Secret: []byte(cfg.Auth.JWTSecret)}),
	)
	handler.Register(engine, postgres.NewPinger(pool), gameSvc, playerSvc, ratingSvc, favSvc)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info().Int("port", cfg.App.Port).Msg("service started")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		appLogger.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error().Err(err).Msg("http server failed")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error().Err(err).Msg("graceful shutdown failed")
	}
	appLogger.Info().Msg("service stopped")
}
