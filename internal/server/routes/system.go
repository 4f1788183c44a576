package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mlanys/roomsignal/internal/db"
)

// SystemRoutes exposes liveness and internal diagnostics.
type SystemRoutes struct {
	database *db.Database
}

// NewSystemRoutes constructs system routes.
func NewSystemRoutes(database *db.Database) *SystemRoutes {
	return &SystemRoutes{database: database}
}

// RegisterRoutes registers system endpoints.
func (s *SystemRoutes) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.handleHealth)
	e.GET("/_internal/metrics/queries", s.handleQueryMetrics)
}

func (s *SystemRoutes) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *SystemRoutes) handleQueryMetrics(c echo.Context) error {
	return c.JSON(http.StatusOK, s.database.QueryLatencyStats())
}
