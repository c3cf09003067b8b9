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

	"golang.org/x/sync/errgroup"

	"duovocab/internal/config"
	"duovocab/internal/database"
	"duovocab/internal/handlers"
	"duovocab/internal/logging"
	"duovocab/internal/repository"
	"duovocab/internal/security"
	"duovocab/internal/service"
	"duovocab/internal/templates"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Log)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.UsesDefaultSecret() {
		logger.Warn("using the built-in session secret, set SESSION_SECRET outside development")
	}

	keys, err := security.DeriveKeys(cfg.Session.Secret)
	if err != nil {
		return fmt.Errorf("derive keys: %w", err)
	}

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	tmpl, err := templates.Load(cfg.Server.TemplatesPath)
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}
	logger.Info("templates loaded", "dir", cfg.Server.TemplatesPath)

	vocab := repository.NewVocabRepository(cfg.Vocab.Path, logger)
	progress := service.NewProgressService(store, logger)
	practice := service.NewPracticeService(vocab, logger)
	dictionary := service.NewDictionaryService(vocab)

	limiter := security.NewRateLimiter(ctx, cfg.RateLimit.Requests, cfg.RateLimit.Window)
	mw := handlers.NewMiddleware(
		security.NewSessionManager(keys.Session, cfg.Session.Duration),
		security.NewCSRFGenerator(keys.CSRF),
		limiter,
		logger,
	)

	router := handlers.NewRouter(handlers.Handlers{
		Lessons:    handlers.NewLessonHandler(vocab, progress, mw, tmpl, vocab.Path(), logger),
		Dictionary: handlers.NewDictionaryHandler(dictionary, mw, tmpl),
		Practice:   handlers.NewPracticeHandler(practice, progress, mw, tmpl, cfg.CORS.AllowedOrigins, logger),
		Middleware: mw,
	}, cfg.CORS.AllowedOrigins, logger)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server starting", "addr", server.Addr, "vocab", cfg.Vocab.Path, "store", cfg.Session.Store)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("server shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// openStore picks the completion store. The returned func releases it.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repository.CompletionStore, func(), error) {
	if !cfg.UsesDatabase() {
		logger.Info("completion state kept in memory")
		return repository.NewMemoryCompletionStore(), func() {}, nil
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.RunMigrations(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("database connection established", "type", cfg.Database.Type)

	return repository.NewCompletionRepository(db), func() { db.Close() }, nil
}
