// Package server wires the gin engine exposing the service's three
// routes: a health check and two pass-through aggregation routes.
package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RouterConfig collects everything the router needs.
type RouterConfig struct {
	Handler      *Handler
	Log          *zap.Logger
	AllowOrigins []string
}

// NewRouter builds the gin engine with the fixed route set. No routes
// beyond these three exist.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(RequestLogger(cfg.Log))

	if len(cfg.AllowOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins: cfg.AllowOrigins,
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{"Content-Type", "X-Requested-With"},
		}))
	}

	router.GET("/", cfg.Handler.Health)

	api := router.Group("/api")
	{
		api.GET("/user/:id", cfg.Handler.UserAggregate)
		api.POST("/create-post", cfg.Handler.CreatePost)
	}

	return router
}
