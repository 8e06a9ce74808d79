package router

import (
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/chislo/manuscripthub/internal/handler"
	"github.com/chislo/manuscripthub/internal/server"
)

// registerSystemRoutes registers the endpoints that are not business
// logic: health status, the app's HTML page, and static assets.
func registerSystemRoutes(r *echo.Echo, s *server.Server, h *handler.Handlers, page string) {
	r.GET("/status", h.Health.CheckHealth)

	if dir := s.App.StaticDir; dir != "" {
		r.File("/", filepath.Join(dir, page))
		r.Static("/static", dir)
	}
}
