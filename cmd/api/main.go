package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/emotionplay/emotionplay-server/internal/adapters/inference"
	"github.com/emotionplay/emotionplay-server/internal/adapters/rest"
	"github.com/emotionplay/emotionplay-server/internal/adapters/spotify"
	"github.com/emotionplay/emotionplay-server/internal/adapters/sqlite"
	"github.com/emotionplay/emotionplay-server/internal/auth"
	"github.com/emotionplay/emotionplay-server/internal/config"
	"github.com/emotionplay/emotionplay-server/internal/core/ports"
	"github.com/emotionplay/emotionplay-server/internal/core/services"
	"github.com/emotionplay/emotionplay-server/internal/worker"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// A .env file is optional; real environments export variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	// Driven adapters first, then the core, then the HTTP surface.
	store, err := sqlite.NewAdapter(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer store.Close()

	session := auth.NewLoopbackSession(cfg.RedirectURL, logger)
	manager := auth.NewManager(auth.Config{
		ClientID:    cfg.SpotifyClientID,
		AuthURL:     cfg.SpotifyAuthURL,
		TokenURL:    cfg.SpotifyTokenURL,
		RedirectURL: cfg.RedirectURL,
		Scopes:      cfg.Scopes,
	}, session, logger)

	spotifyClient := spotify.NewClient(nil, cfg.SpotifyAPIURL, manager, logger)
	manager.OnDisconnect(spotifyClient.InvalidateUser)

	var inferencer ports.MoodInferencer
	if cfg.UseRemoteInference() {
		inferencer = inference.NewRemoteClient(cfg.InferenceBaseURL, cfg.InferenceModelID, cfg.InferenceAPIKey, logger)
		logger.Info("using remote mood inference", "model", cfg.InferenceModelID)
	} else {
		inferencer = inference.NewLocalClient()
		logger.Info("using local mood inference")
	}

	pool := worker.NewPool(spotifyClient, store, logger, cfg.CoverQueueSize)
	pool.Start(cfg.CoverWorkers)
	defer pool.Stop()

	svc := services.NewOrchestrator(spotifyClient, inferencer, manager, store, store, store, pool, logger)
	svc.SetTrackLimit(cfg.TrackLimit)

	handler := rest.NewHandler(svc, manager, manager, store, store, store, logger)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	logger.Info("emotionplay api listening", "addr", srv.Addr)

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}
	return nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
