package routes

import (
	"time"

	"miniblog/config"
	"miniblog/handlers"
	"miniblog/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(h *handlers.Handler, cfg *config.Config) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Credential endpoints get a per-IP limiter on top of being public
	authLimiter := middleware.NewIPRateLimiter(20, time.Minute)

	auth := router.Group("/auth")
	{
		auth.POST("/signup", middleware.RateLimit(authLimiter), h.Signup)
		auth.POST("/login", middleware.RateLimit(authLimiter), h.Login)
		auth.GET("/profile", middleware.RequireAuth(cfg.JWTSecret), h.Profile)
	}

	posts := router.Group("/posts")
	{
		posts.POST("", middleware.RequireAuth(cfg.JWTSecret), h.CreatePost)
		posts.POST("/:id/comments", middleware.RequireAuth(cfg.JWTSecret), h.AddComment)
		posts.GET("", middleware.OptionalAuth(cfg.JWTSecret), h.ListPosts)
	}

	analytics := router.Group("/analytics")
	{
		analytics.GET("/top-authors", h.TopAuthors)
		analytics.GET("/top-commented", h.TopCommented)
		analytics.GET("/posts-per-day", h.PostsPerDay)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"error": "Endpoint not found", "path": c.Request.URL.Path})
	})

	return router
}
