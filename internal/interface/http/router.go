package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/skycast/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler, logger *slog.Logger) *http.Server {
	gin.SetMode(gin.ReleaseMode)
	httpLogger := logger.With("component", "http.router")

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(httpLogger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		errorHandlingMiddleware(httpLogger),
	)

	router.GET("/healthz", handler.Health)

	api := router.Group("/api/v1")
	{
		api.GET("/weather", handler.Weather)

		sessions := api.Group("/sessions")
		sessions.POST("", handler.OpenSession)
		sessions.GET("/:id", handler.GetSession)
		sessions.POST("/:id/load", handler.ReloadSession)
		sessions.POST("/:id/search", handler.Search)
		sessions.POST("/:id/locate", handler.Locate)
		sessions.GET("/:id/stream", handler.Stream(cfg.HTTP.AllowedOrigins))
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
