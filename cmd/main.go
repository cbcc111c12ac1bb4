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

	"github.com/Dosada05/hackhub/config"
	"github.com/Dosada05/hackhub/handlers"
	"github.com/Dosada05/hackhub/live"
	"github.com/Dosada05/hackhub/middleware"
	api "github.com/Dosada05/hackhub/routes"
	"github.com/Dosada05/hackhub/services"
	"github.com/Dosada05/hackhub/session"
	"github.com/Dosada05/hackhub/upstream"
	"github.com/go-chi/chi/v5"
)

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	// Клиент бэкенда
	upstream.SetLogger(logger)
	apiClient, err := upstream.NewDefaultClient(upstream.Config{
		BaseURL:   cfg.UpstreamAPIURL,
		Timeout:   cfg.UpstreamTimeout,
		UserAgent: "hackhub-gateway",
	})
	if err != nil {
		logger.Error("failed to initialize upstream client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := apiClient.Close(); err != nil {
			logger.Error("failed to close upstream client", slog.Any("error", err))
		}
	}()
	logger.Info("upstream client initialized", slog.String("base_url", cfg.UpstreamAPIURL))

	// Сессии
	codec, err := session.NewCodec(cfg.SessionSecret)
	if err != nil {
		logger.Error("failed to initialize session codec", slog.Any("error", err))
		os.Exit(1)
	}
	sessionAuth := middleware.NewSessionAuth(codec, session.NewGuard(), cfg.SecureCookies, logger)

	// Инициализация WebSocket Hub
	wsHub := live.NewHub(logger)
	go wsHub.Run()
	logger.Info("WebSocket Hub started")

	// Инициализация сервисов
	authService := services.NewAuthService(apiClient)
	catalogService := services.NewCatalogService(apiClient)
	teamService := services.NewTeamService(apiClient)
	submissionService := services.NewSubmissionService(apiClient, cfg.UploadsBaseURL)
	judgeService := services.NewJudgeService(apiClient, wsHub, logger)
	notificationService := services.NewNotificationService(apiClient, wsHub)
	logger.Info("Services initialized")

	// Инициализация обработчиков HTTP
	handlers.SetLogger(logger)
	handlers.SetSessionAuth(sessionAuth)

	authHandler := handlers.NewAuthHandler(authService, sessionAuth)
	sessionHandler := handlers.NewSessionHandler(catalogService, sessionAuth)
	dashboardHandler := handlers.NewDashboardHandler(authService, teamService, catalogService, submissionService, notificationService)
	hackathonHandler := handlers.NewHackathonHandler(catalogService)
	teamHandler := handlers.NewTeamHandler(teamService)
	submissionHandler := handlers.NewSubmissionHandler(submissionService)
	judgeHandler := handlers.NewJudgeHandler(judgeService, catalogService, authService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub, logger)
	logger.Info("HTTP handlers initialized")

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.AllowedOrigins,
		sessionAuth,
		authHandler,
		sessionHandler,
		dashboardHandler,
		hackathonHandler,
		teamHandler,
		submissionHandler,
		judgeHandler,
		notificationHandler,
		webSocketHandler,
	)
	logger.Info("Routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		} else {
			logger.Info("server stopped gracefully")
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		} else {
			logger.Info("server shutdown complete")
		}
	}
	logger.Info("application exited")
}
