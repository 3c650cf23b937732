package api

import (
	"alcyxob/exercise-tracker/internal/repository"
	"alcyxob/exercise-tracker/internal/service"
	"context"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies bundles what the routes need.
type Dependencies struct {
	Logger          *slog.Logger
	UserService     service.UserService
	ExerciseService service.ExerciseService
	LogService      service.LogService
	Store           repository.Pinger
	AllowedOrigins  []string
	ViewsDir        string // index.html is served at / when present
	PublicDir       string // served under /public when present
}

// NewRouter builds a gin engine with the middleware chain and all routes.
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger(deps.Logger), Metrics(), CORS(deps.AllowedOrigins))
	SetupRoutes(router, deps)
	return router
}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	userHandler := NewUserHandler(deps.UserService, deps.Logger)
	exerciseHandler := NewExerciseHandler(deps.ExerciseService, deps.Logger)
	logHandler := NewLogHandler(deps.LogService, deps.Logger)

	router.GET("/healthz", healthz(deps.Store))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if index := filepath.Join(deps.ViewsDir, "index.html"); deps.ViewsDir != "" && fileExists(index) {
		router.StaticFile("/", index)
	}
	if deps.PublicDir != "" && fileExists(deps.PublicDir) {
		router.Static("/public", deps.PublicDir)
	}

	apiGroup := router.Group("/api")
	{
		userGroup := apiGroup.Group("/users")
		{
			userGroup.GET("", userHandler.ListUsers)
			userGroup.POST("", userHandler.CreateUser)
			userGroup.POST("/:id/exercises", exerciseHandler.AddExercise)
			userGroup.GET("/:id/logs", logHandler.GetLogs)
		}
	}
}

func healthz(store repository.Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			abortWithError(c, http.StatusServiceUnavailable, "store unreachable")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
