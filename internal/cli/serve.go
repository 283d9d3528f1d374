package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/arens/quizdeck/internal/api"
	"github.com/arens/quizdeck/internal/auth"
	"github.com/arens/quizdeck/internal/db"
	"github.com/arens/quizdeck/internal/repository/sqlite"
	"github.com/arens/quizdeck/internal/services"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the QuizDeck API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	log.Info("===========================================")
	log.Info("QuizDeck Server Starting")
	log.Info("===========================================")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("token_ttl=%v", cfg.TokenTTL)
	log.Debug("leaderboard_limit=%d", cfg.LeaderboardLimit)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		return err
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	srv := &api.Server{
		DB:        database.DB,
		Tokens:    tokens,
		Auth:      services.NewAuthService(sqlite.NewUserRepository(database.DB), tokens),
		Scores:    services.NewScoreService(sqlite.NewScoreRepository(database.DB), cfg.LeaderboardLimit),
		Quizzes:   services.NewQuizService(sqlite.NewQuizRepository(database.DB)),
		Questions: services.NewQuestionService(sqlite.NewQuestionRepository(database.DB)),
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Error("HTTP server error: %v", err)
		return err
	case sig := <-stop:
		log.Info("received signal %v, initiating graceful shutdown", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("===========================================")
	log.Info("QuizDeck Server Stopped")
	log.Info("===========================================")
	return nil
}
