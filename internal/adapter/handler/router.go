package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/johnquangdev/meeting-facilitator/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg     *config.Config
	analyze *Analyze
	live    *LiveSession
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, analyze *Analyze, live *LiveSession) *Router {
	return &Router{
		cfg:     cfg,
		analyze: analyze,
		live:    live,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Stateful live session: one MeetingState per connection
	e.GET("/ws", rt.live.Serve)

	// Stateless API: the client round-trips the state
	v1 := e.Group("/v1")
	v1.POST("/analyze", rt.analyze.Handle)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
