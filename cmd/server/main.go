package main

import (
	"alcyxob/exercise-tracker/internal/api"
	"alcyxob/exercise-tracker/internal/config"
	"alcyxob/exercise-tracker/internal/logger"
	"alcyxob/exercise-tracker/internal/repository"
	"alcyxob/exercise-tracker/internal/repository/memory"
	"alcyxob/exercise-tracker/internal/repository/mongo"
	"alcyxob/exercise-tracker/internal/service"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

// @title Exercise Tracker API
// @version 1.0
// @description Register users, record exercises and query activity logs.
// @BasePath /api
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("could not load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	slog.SetDefault(log)
	log.Info("configuration loaded", "address", cfg.Server.Address, "driver", cfg.Database.Driver)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
	log.Info("server exiting")
}

// stores is the record store wiring chosen by configuration.
type stores struct {
	users     repository.UserRepository
	exercises repository.ExerciseRepository
	pinger    repository.Pinger
	close     func()
}

func openStores(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (*stores, error) {
	switch cfg.Driver {
	case "memory":
		log.Warn("using in-memory store; data is lost on restart")
		store := memory.NewStore()
		return &stores{
			users:     store.Users(),
			exercises: store.Exercises(),
			pinger:    store,
			close:     func() {},
		}, nil

	case "mongo", "":
		client, err := mongo.ConnectDB(ctx, cfg.URI)
		if err != nil {
			return nil, fmt.Errorf("connect to MongoDB: %w", err)
		}
		db := client.Database(cfg.Name)
		log.Info("database connection established", "database", cfg.Name)

		// Index creation does not block startup.
		stopIndexing := inBackground(ctx, time.Minute, func(ctx context.Context) {
			if err := mongo.EnsureIndexes(ctx, db); err != nil {
				log.Warn("failed to create indexes", "error", err)
				return
			}
			log.Info("index creation completed")
		})

		return &stores{
			users:     mongo.NewMongoUserRepository(db),
			exercises: mongo.NewMongoExerciseRepository(db),
			pinger:    mongo.NewPinger(client),
			close: func() {
				stopIndexing()
				log.Info("disconnecting MongoDB")
				if err := mongo.DisconnectDB(client); err != nil {
					log.Error("failed to disconnect MongoDB", "error", err)
				}
			},
		}, nil

	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// inBackground runs fn in its own goroutine with a context derived from
// parent and bounded by timeout. The returned stop cancels that context and
// blocks until fn has returned.
func inBackground(parent context.Context, timeout time.Duration, fn func(ctx context.Context)) (stop func()) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer cancel()
		fn(ctx)
	}()
	return func() {
		cancel()
		<-done
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Record store ---
	st, err := openStores(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer st.close()

	// --- Services ---
	userService := service.NewUserService(st.users)
	exerciseService := service.NewExerciseService(st.users, st.exercises)
	logService := service.NewLogService(st.users, st.exercises)

	// --- Router ---
	gin.SetMode(cfg.Server.Mode)
	router := api.NewRouter(api.Dependencies{
		Logger:          log,
		UserService:     userService,
		ExerciseService: exerciseService,
		LogService:      logService,
		Store:           st.pinger,
		AllowedOrigins:  cfg.CORS.AllowedOrigins,
		ViewsDir:        cfg.Server.ViewsDir,
		PublicDir:       cfg.Server.PublicDir,
	})

	// --- HTTP server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "address", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	return nil
}
