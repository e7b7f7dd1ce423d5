package router

import (
	"net/http"
	"time"

	"github.com/donelist-dev/donelist/internal/config"
	"github.com/donelist-dev/donelist/internal/handlers"
	"github.com/donelist-dev/donelist/internal/middleware"
	"github.com/donelist-dev/donelist/internal/services"
	"github.com/donelist-dev/donelist/internal/session"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func NewRouter(cfg *config.Config, logger *zap.Logger, store session.Store, notifier *services.Notifier) *gin.Engine {
	r := gin.New()

	r.Use(middleware.LoggerMiddleware(logger))
	r.Use(middleware.RecoveryMiddleware(logger, cfg.IsProduction(), notifier))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(middleware.SessionMiddleware(store))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws", middleware.RequireAuth(), handlers.WebSocket)

		auth := api.Group("/auth")
		{
			auth.GET("/google", handlers.GoogleLogin)
			auth.GET("/google/callback", handlers.GoogleCallback)
			auth.POST("/register", handlers.Register)
			auth.POST("/login", handlers.Login)
			auth.POST("/logout", handlers.Logout)
			auth.GET("/me", middleware.RequireAuth(), handlers.Me)
		}

		todos := api.Group("/todos", middleware.RequireAuth())
		{
			todos.POST("", handlers.CreateTodo)
			todos.GET("", handlers.ListTodos)
			todos.GET("/:id", handlers.GetTodo)
			todos.PUT("/:id", handlers.UpdateTodo)
			todos.DELETE("/:id", handlers.DeleteTodo)
		}

		categories := api.Group("/categories", middleware.RequireAuth())
		{
			categories.POST("", handlers.CreateCategory)
			categories.GET("", handlers.ListCategories)
			categories.DELETE("/:id", handlers.DeleteCategory)
		}

		tags := api.Group("/tags", middleware.RequireAuth())
		{
			tags.POST("", handlers.CreateTag)
			tags.GET("", handlers.ListTags)
			tags.DELETE("/:id", handlers.DeleteTag)
		}
	}

	// Unmatched routes fall through to a JSON not-found body.
	r.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "No data found."})
	})

	return r
}
