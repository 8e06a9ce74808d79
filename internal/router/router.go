// Package router initializes the Echo router for each app: it wires
// the middleware stack and maps routes to handlers.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chislo/manuscripthub/internal/handler"
	"github.com/chislo/manuscripthub/internal/middleware"
	"github.com/chislo/manuscripthub/internal/server"
)

// newRouter builds an Echo instance with the shared middleware stack.
func newRouter(s *server.Server, mws *middleware.Middlewares) *echo.Echo {
	r := echo.New()
	r.HideBanner = true
	r.HidePort = true

	r.HTTPErrorHandler = mws.Global.GlobalErrorHandler

	r.Use(mws.Global.Recover())
	r.Use(mws.Global.BodyLimit())
	r.Use(mws.Global.Secure())
	r.Use(mws.Global.CORS())
	r.Use(middleware.RequestID())
	r.Use(mws.ContextEnhancer.EnhanceContext())
	r.Use(mws.Global.RequestLogger())

	return r
}

// NewFinderRouter builds the journal finder app router.
func NewFinderRouter(s *server.Server, mws *middleware.Middlewares, h *handler.Handlers) *echo.Echo {
	r := newRouter(s, mws)
	registerSystemRoutes(r, s, h, "finder.html")

	api := r.Group("/api")
	api.GET("/journals", h.Finder.ListJournals)
	api.GET("/journals/:name", h.Finder.GetJournal)
	api.GET("/stats", h.Finder.Stats)

	api.POST("/recommend",
		handler.Handle(handler.NewHandler(s), h.Finder.Recommend, http.StatusOK,
			func() *handler.RecommendRequest { return &handler.RecommendRequest{} }),
		mws.RateLimit.AIThrottle())

	export := api.Group("/export")
	export.POST("/csv",
		handler.HandleFile(handler.NewHandler(s), h.Finder.ExportCSV, http.StatusOK,
			func() *handler.ExportRequest { return &handler.ExportRequest{} },
			"journal_recommendations.csv", "text/csv"))
	export.POST("/text",
		handler.HandleFile(handler.NewHandler(s), h.Finder.ExportText, http.StatusOK,
			func() *handler.ExportRequest { return &handler.ExportRequest{} },
			"journal_recommendations.txt", "text/plain"))
	export.POST("/pdf",
		handler.HandleFile(handler.NewHandler(s), h.Finder.ExportPDF, http.StatusOK,
			func() *handler.ExportRequest { return &handler.ExportRequest{} },
			"journal_recommendations.pdf", "application/pdf"))

	return r
}

// NewCheckerRouter builds the manuscript checker app router.
func NewCheckerRouter(s *server.Server, mws *middleware.Middlewares, h *handler.Handlers) *echo.Echo {
	r := newRouter(s, mws)
	registerSystemRoutes(r, s, h, "checker.html")

	api := r.Group("/api")
	api.POST("/extract", h.Checker.Extract)
	api.GET("/guidelines", h.Checker.Guidelines)

	api.POST("/check",
		handler.Handle(handler.NewHandler(s), h.Checker.Check, http.StatusOK,
			func() *handler.CheckRequest { return &handler.CheckRequest{} }),
		mws.RateLimit.AIThrottle())
	api.POST("/check/pdf",
		handler.HandleFile(handler.NewHandler(s), h.Checker.CheckPDF, http.StatusOK,
			func() *handler.CheckRequest { return &handler.CheckRequest{} },
			"readiness_report.pdf", "application/pdf"),
		mws.RateLimit.AIThrottle())

	return r
}
