package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"catalog-backend/internal/shared/access"
	"catalog-backend/internal/shared/middleware"
	"catalog-backend/pkg/container"
)

// Role policies, parse một lần lúc setup route
var (
	adminOnly = access.MustParseRoles("Admin")
	anyRole   = access.MustParseRoles("Admin, Reader,User")
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares. ErrorHandler phải đứng trước mọi middleware auth.
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.ClientIP(),
		middleware.Logger(),
		middleware.ErrorHandler(),
	)

	api := router.Group("/api")
	{
		api.GET("/health", healthCheckHandler(c))

		setupUserRoutes(api, c)
		setupBookRoutes(api, c)
	}

	return router
}

// ========================================
// USER ROUTES (public)
// ========================================
func setupUserRoutes(api *gin.RouterGroup, c *container.Container) {
	users := api.Group("/user")
	{
		users.POST("", c.AccountHandler.Register)
		users.POST("/login", c.AccountHandler.Login)
	}
}

// ========================================
// BOOK ROUTES (authenticated)
// ========================================
func setupBookRoutes(api *gin.RouterGroup, c *container.Container) {
	books := api.Group("/book", middleware.Authenticate(c.JWTManager))
	{
		books.GET("", middleware.RequireRoles(anyRole), c.BookHandler.ListBooks)
		books.GET("/:id", middleware.RequireRoles(anyRole), c.BookHandler.GetBook)
		books.POST("", middleware.RequireRoles(adminOnly), c.BookHandler.CreateBook)
		books.DELETE("/:id", middleware.RequireRoles(adminOnly), c.BookHandler.DeleteBook)
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
		defer cancel()

		status := http.StatusOK
		checks := gin.H{}

		// Database
		if c.DB == nil {
			checks["database"] = "in-memory"
		} else if err := c.DB.Ping(checkCtx); err != nil {
			checks["database"] = "unhealthy: " + err.Error()
			status = http.StatusServiceUnavailable
		} else {
			checks["database"] = "healthy"
			if stats, err := c.DB.Stats(); err == nil {
				checks["database_pool"] = stats
			}
		}

		// Redis không bắt buộc, lỗi chỉ báo degraded
		if c.Cache == nil {
			checks["redis"] = "disabled"
		} else if err := c.Cache.Ping(checkCtx); err != nil {
			checks["redis"] = "unhealthy: " + err.Error()
		} else {
			checks["redis"] = "healthy"
		}

		overall := "ok"
		if status != http.StatusOK {
			overall = "unavailable"
		}
		ctx.JSON(status, gin.H{
			"status":  overall,
			"version": c.Config.App.Version,
			"checks":  checks,
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	}
}
