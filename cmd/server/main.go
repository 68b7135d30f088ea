package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tallara/ozquiz/internal/api"
	"github.com/tallara/ozquiz/internal/config"
	"github.com/tallara/ozquiz/internal/db"
	"github.com/tallara/ozquiz/internal/jobs"
	"github.com/tallara/ozquiz/internal/logger"
	"github.com/tallara/ozquiz/internal/repository/sqlite"
	"github.com/tallara/ozquiz/internal/services"
	"github.com/tallara/ozquiz/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("OzQuiz Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("heart_refill=%s", cfg.HeartRefill)
	log.Debug("daily_quest_count=%d", cfg.DailyQuestCount)
	log.Debug("event_worker_count=%d", cfg.EventWorkerCount)
	log.Debug("event_queue_size=%d", cfg.EventQueueSize)
	log.Debug("league_top_size=%d", cfg.LeagueTopSize)
	log.Debug("recent_activity_limit=%d", cfg.RecentActivity)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Initialize repositories
	profileRepo := sqlite.NewProfileRepository(database.DB)
	attemptRepo := sqlite.NewAttemptRepository(database.DB)
	questRepo := sqlite.NewQuestRepository(database.DB)
	achievementRepo := sqlite.NewAchievementRepository(database.DB)
	topicRepo := sqlite.NewTopicRepository(database.DB)
	leagueRepo := sqlite.NewLeagueRepository(database.DB)
	xpLogRepo := sqlite.NewXPLogRepository(database.DB)

	// Initialize worker pool and job queue
	pool := worker.NewPool(cfg.EventWorkerCount, cfg.EventQueueSize)

	// Initialize services
	questService := services.NewQuestService(questRepo, profileRepo, xpLogRepo, cfg.DailyQuestCount)
	achievementService := services.NewAchievementService(achievementRepo, profileRepo, xpLogRepo)
	topicService := services.NewTopicService(topicRepo)
	leagueService := services.NewLeagueService(leagueRepo, cfg.LeagueTopSize)
	queue := jobs.NewWorkerQueue(pool, questService, achievementService)
	profileService := services.NewProfileService(profileRepo, queue)
	progressService := services.NewProgressService(
		profileRepo, attemptRepo, xpLogRepo,
		questService, achievementService, topicService, leagueService,
		cfg.HeartRefill,
	)
	activityService := services.NewActivityService(xpLogRepo)
	dashboardService := services.NewDashboardService(
		profileService, progressService, questService, topicService, leagueService,
		activityService, cfg.RecentActivity,
	)
	socialService := services.NewSocialService(profileRepo, achievementService)

	srv := api.NewServer(
		database.DB,
		profileService,
		progressService,
		questService,
		achievementService,
		leagueService,
		socialService,
		dashboardService,
		queue,
	)

	ctx, cancel := context.WithCancel(context.Background())
	pool.Start(ctx)

	// Seed the quest and achievement catalogs in the background.
	if err := queue.EnqueueCatalogSeed(); err != nil {
		log.Error("failed to enqueue catalog seed: %v", err)
		os.Exit(1)
	}

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping worker pool")
	cancel()
	pool.Stop()

	log.Info("===========================================")
	log.Info("OzQuiz Server Stopped")
	log.Info("===========================================")
}
