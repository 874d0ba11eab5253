package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"wanderlust/backend/internal/api"
	"wanderlust/backend/internal/config"
	"wanderlust/backend/internal/database"
	"wanderlust/backend/internal/llm"
	"wanderlust/backend/internal/locale"
	"wanderlust/backend/internal/model"
	"wanderlust/backend/internal/repository"
	"wanderlust/backend/internal/service"
	"wanderlust/backend/internal/store"
)

// App holds the wired dependencies of the HTTP server.
type App struct {
	Config   *config.Config
	Repo     repository.Repository
	Session  *service.SessionService
	Location *time.Location
	Server   *http.Server
}

// Session is a ready-to-use conversation with its storage backend.
type Session struct {
	Repo     repository.Repository
	Service  *service.SessionService
	Location *time.Location
	Restored bool
}

// Close releases the storage backend.
func (s *Session) Close() error {
	return s.Repo.Close()
}

func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		// slog is not yet configured, so use the default logger for this critical error.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	SetupLogger(cfg.LogLevel, os.Stdout)
	logConfigSource(cfg)

	app, err := NewApp(cfg)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		return 1
	}
	defer func() {
		if err := app.Repo.Close(); err != nil {
			slog.Error("Failed to close storage backend", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "port", cfg.AppPort)
		errCh <- app.Server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			return 1
		}
	case <-ctx.Done():
		slog.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.Server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown failed", "error", err)
			return 1
		}
	}

	return 0
}

// NewApp wires storage, the model client, the session and the HTTP server.
func NewApp(cfg *config.Config) (*App, error) {
	session, err := NewSession(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	handler := api.NewSessionHandler(session.Service, session.Location)
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           api.NewRouter(handler),
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      0, // model turns are not bounded by the server
		IdleTimeout:       120 * time.Second,
	}

	return &App{
		Config:   cfg,
		Repo:     session.Repo,
		Session:  session.Service,
		Location: session.Location,
		Server:   server,
	}, nil
}

// NewSession opens the configured storage backend and restores (or seeds)
// the conversation stored under cfg.SessionKey.
func NewSession(ctx context.Context, cfg *config.Config) (*Session, error) {
	loc, err := loadLocation(cfg.ExportTimezone)
	if err != nil {
		return nil, err
	}

	quickReplies, err := locale.LoadQuickReplies(cfg.QuickRepliesFile)
	if err != nil {
		return nil, err
	}

	if cfg.GeminiAPIKey == "" {
		slog.Warn("GEMINI_API_KEY is not set; every reply will be an apology")
	}

	repo, err := openRepository(ctx, cfg)
	if err != nil {
		return nil, err
	}

	lang, _ := model.ParseLanguage(cfg.DefaultLanguage)
	provider := llm.NewGeminiProvider(cfg.GeminiBaseURL, cfg.GeminiAPIKey)
	svc := service.NewSessionService(
		store.NewMessageStore(repo, cfg.SessionKey),
		service.NewConversationClient(provider, cfg.GeminiModel, cfg.Temperature),
		service.SessionOptions{Language: lang, QuickReplies: quickReplies},
	)
	restored := svc.Init(ctx)
	slog.Info("Session ready", "key", cfg.SessionKey, "storage", cfg.StorageDriver, "restored", restored, "language", svc.Language())

	return &Session{Repo: repo, Service: svc, Location: loc, Restored: restored}, nil
}

func openRepository(ctx context.Context, cfg *config.Config) (repository.Repository, error) {
	switch cfg.StorageDriver {
	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		slog.Info("Successfully connected to Redis.", "addr", cfg.RedisAddr)
		return repository.NewRedisRepository(rdb), nil
	case "bolt":
		repo, err := repository.OpenBoltRepository(cfg.BoltPath)
		if err != nil {
			return nil, err
		}
		slog.Info("Opened bolt database.", "path", cfg.BoltPath)
		return repo, nil
	case "sqlite", "":
		db, err := database.InitDB(cfg.DatabasePath)
		if err != nil {
			return nil, err
		}
		slog.Info("Successfully connected to SQLite database.", "path", cfg.DatabasePath)
		return repository.NewSQLiteRepository(db), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" || strings.EqualFold(name, "Local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid EXPORT_TIMEZONE %q: %w", name, err)
	}
	return loc, nil
}

func logConfigSource(cfg *config.Config) {
	if cfg.ConfigFile != "" {
		slog.Info("Successfully loaded configuration from file.", "file", cfg.ConfigFile)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

// SetupLogger installs a JSON slog logger writing to w at the named level.
func SetupLogger(logLevel string, w io.Writer) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
