package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shoaibhussa1n/Futsal-Connect/config"
	"github.com/shoaibhussa1n/Futsal-Connect/db"
	"github.com/shoaibhussa1n/Futsal-Connect/handlers"
	"github.com/shoaibhussa1n/Futsal-Connect/live"
	"github.com/shoaibhussa1n/Futsal-Connect/middleware"
	"github.com/shoaibhussa1n/Futsal-Connect/repositories"
	"github.com/shoaibhussa1n/Futsal-Connect/routes"
	"github.com/shoaibhussa1n/Futsal-Connect/services"
	"github.com/shoaibhussa1n/Futsal-Connect/storage"
)

const schedulerInterval = 30 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		}
	}()
	logger.Info("database connection established")

	uploader, err := storage.NewCloudflareR2Uploader(storage.CloudflareR2Config{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	})
	if err != nil {
		logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Cloudflare R2 uploader initialized")

	hub := live.NewHub(logger)
	go hub.Run()
	logger.Info("live event hub started")

	profileRepo := repositories.NewPostgresProfileRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	memberRepo := repositories.NewPostgresMemberRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	scorerRepo := repositories.NewPostgresGoalScorerRepository(dbConn)
	requestRepo := repositories.NewPostgresMatchRequestRepository(dbConn)
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	invitationRepo := repositories.NewPostgresInvitationRepository(dbConn)

	profileService := services.NewProfileService(profileRepo, uploader)
	playerService := services.NewPlayerService(playerRepo, profileRepo, uploader)
	teamService := services.NewTeamService(teamRepo, memberRepo, uploader)
	ratingService := services.NewRatingService(matchRepo, teamRepo, playerRepo, memberRepo, logger)
	matchService := services.NewMatchService(dbConn, matchRepo, scorerRepo, teamRepo, ratingService, hub, logger)
	requestService := services.NewMatchRequestService(requestRepo, teamRepo, matchService)
	tournamentService := services.NewTournamentService(tournamentRepo, logger)
	invitationService := services.NewInvitationService(invitationRepo, teamRepo, memberRepo)
	leaderboardService := services.NewLeaderboardService(teamRepo, playerRepo, uploader)
	logger.Info("services initialized")

	// Moves approved tournaments past their start date to in_progress.
	go func() {
		ticker := time.NewTicker(schedulerInterval)
		defer ticker.Stop()
		logger.Info("tournament scheduler started", slog.Duration("interval", schedulerInterval))

		if err := tournamentService.StartDue(context.Background()); err != nil {
			logger.Error("scheduler: initial run failed", slog.Any("error", err))
		}
		for range ticker.C {
			if err := tournamentService.StartDue(context.Background()); err != nil {
				logger.Error("scheduler: periodic run failed", slog.Any("error", err))
			}
		}
	}()

	authenticator := middleware.NewAuthenticator(cfg.JWTSecretKey)

	router := routes.InitRoutes(routes.Handlers{
		Profile:     handlers.NewProfileHandler(profileService),
		Player:      handlers.NewPlayerHandler(playerService),
		Team:        handlers.NewTeamHandler(teamService, playerService),
		Match:       handlers.NewMatchHandler(matchService, playerService),
		Request:     handlers.NewMatchRequestHandler(requestService, playerService),
		Tournament:  handlers.NewTournamentHandler(tournamentService, playerService),
		Invitation:  handlers.NewInvitationHandler(invitationService, playerService),
		Leaderboard: handlers.NewLeaderboardHandler(leaderboardService),
		WebSocket:   handlers.NewWebSocketHandler(hub),
	}, authenticator, cfg.CORSOrigins)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
}
