package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"viz-ai/backend/internal/api"
	"viz-ai/backend/internal/config"
	"viz-ai/backend/internal/database"
	"viz-ai/backend/internal/llm"
	"viz-ai/backend/internal/repository"
	"viz-ai/backend/internal/service"
)

const (
	ollamaRetryInterval = 3 * time.Second
	shutdownTimeout     = 15 * time.Second
)

// App holds the wired server and the resources it owns.
type App struct {
	Config *config.Config
	DB     *sql.DB
	Server *http.Server

	provider llm.LLMProvider
	settings *service.SettingsService
	models   *service.ModelService
}

// NewApp opens the database and wires services, handlers and the router. It
// does not contact Ollama.
func NewApp(cfg *config.Config) (*App, error) {
	db, err := database.InitDB(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	slog.Info("Successfully connected to SQLite database.", "path", cfg.DatabasePath)

	var opts []llm.Option
	if cfg.OllamaTimeout > 0 {
		opts = append(opts, llm.WithTimeout(cfg.OllamaTimeout))
	}
	if cfg.OllamaMaxRPS > 0 {
		opts = append(opts, llm.WithRateLimit(cfg.OllamaMaxRPS))
	}
	ollamaProvider := llm.NewOllamaProvider(cfg.OllamaURL, opts...)

	repo := repository.NewSQLiteRepository(db)
	settingsService := service.NewSettingsService(db, ollamaProvider)
	generator := llm.NewVisualizationGenerator(ollamaProvider, cfg.Temperature, cfg.MaxTokens)

	chatService := service.NewChatService(repo, generator, settingsService)
	modelService := service.NewModelService(ollamaProvider, repo, settingsService, cfg.OllamaURL)
	fileService := service.NewFileService(repo, cfg.UploadDir, service.DefaultParseWorkers)

	chatHandler := api.NewChatHandler(chatService, settingsService)
	modelHandler := api.NewModelHandler(modelService)
	fileHandler := api.NewFileHandler(fileService, cfg.MaxUploadBytes())
	router := api.NewRouter(chatHandler, modelHandler, fileHandler, cfg.CORSOrigins)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      0, // Disabled for chat turns and pull streams
		IdleTimeout:       120 * time.Second,
	}

	return &App{
		Config:   cfg,
		DB:       db,
		Server:   server,
		provider: ollamaProvider,
		settings: settingsService,
		models:   modelService,
	}, nil
}

// Start prepares settings and the model list, then serves until ctx is
// cancelled.
func (a *App) Start(ctx context.Context) error {
	if waitForOllama(ctx, a.provider, a.Config.OllamaStartupWait) {
		if configs, err := a.models.AutoDetect(ctx); err != nil {
			slog.Warn("Model auto-detection failed", "error", err)
		} else {
			slog.Info("Detected Ollama models", "count", len(configs))
		}
	}

	appSettings, err := a.settings.InitAndGet(ctx, a.Config.InitialSystemPrompt)
	if err != nil {
		return fmt.Errorf("failed to initialize application settings: %w", err)
	}
	slog.Info("Loaded application settings", "active_model", appSettings.ActiveModel)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "addr", a.Server.Addr)
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return <-errCh
}

func (a *App) Close() error {
	return a.DB.Close()
}

func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		// slog is not yet configured, so use the default logger for this critical error.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	setupLogger(cfg.LogLevel)
	logConfigSource(cfg)

	app, err := NewApp(cfg)
	if err != nil {
		slog.Error("Failed to build application", "error", err)
		return 1
	}
	defer func() {
		if err := app.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Start(ctx); err != nil {
		slog.Error("Server failed", "error", err)
		return 1
	}
	slog.Info("Server stopped.")
	return 0
}

func logConfigSource(cfg *config.Config) {
	if cfg.ConfigFileUsed != "" {
		slog.Info("Successfully loaded configuration from file.", "file", cfg.ConfigFileUsed)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func parseLevel(logLevel string) slog.Level {
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func setupLogger(logLevel string) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(logLevel),
	}))
	slog.SetDefault(logger)
}

// waitForOllama polls Ollama until it answers, maxWait passes or ctx ends.
// The server starts either way; it reports whether Ollama became ready.
func waitForOllama(ctx context.Context, provider llm.LLMProvider, maxWait time.Duration) bool {
	slog.Info("Waiting for Ollama to be ready...", "max_wait", maxWait)
	deadline := time.Now().Add(maxWait)
	for {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := provider.Ping(pingCtx)
		cancel()
		if err == nil {
			slog.Info("Ollama is ready.")
			return true
		}
		if time.Now().Add(ollamaRetryInterval).After(deadline) {
			slog.Warn("Ollama did not become ready, continuing without it", "error", err)
			return false
		}
		slog.Debug("Ollama not ready yet, retrying...", "retry_in", ollamaRetryInterval, "error", err)
		select {
		case <-ctx.Done():
			return false
		case <-time.After(ollamaRetryInterval):
		}
	}
}
