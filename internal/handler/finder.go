package handler

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/chislo/manuscripthub/internal/analytics"
	"github.com/chislo/manuscripthub/internal/errs"
	"github.com/chislo/manuscripthub/internal/journal"
	"github.com/chislo/manuscripthub/internal/recommend"
	"github.com/chislo/manuscripthub/internal/report"
	"github.com/chislo/manuscripthub/internal/server"
)

var validate = validator.New()

// recentEventLimit caps the recent-events list in /api/stats.
const recentEventLimit = 20

// FinderHandler serves the journal finder endpoints: dataset lookups,
// recommendations, and report exports.
type FinderHandler struct {
	Handler
	engine *recommend.Engine
}

func NewFinderHandler(s *server.Server, engine *recommend.Engine) *FinderHandler {
	return &FinderHandler{
		Handler: NewHandler(s),
		engine:  engine,
	}
}

// ListJournals returns journal names, optionally filtered by the `q`
// substring.
func (h *FinderHandler) ListJournals(c echo.Context) error {
	names := h.server.Journals.Names(c.QueryParam("q"))
	return c.JSON(200, map[string]interface{}{
		"count":    len(names),
		"journals": names,
	})
}

// GetJournal returns the full dataset record for one journal.
func (h *FinderHandler) GetJournal(c echo.Context) error {
	name := c.Param("name")
	j, ok := h.server.Journals.Get(name)
	if !ok {
		return errs.NewNotFoundError(fmt.Sprintf("Journal %q is not in the database", name), true, nil)
	}
	return c.JSON(200, j)
}

// RecommendRequest is the POST /api/recommend payload.
type RecommendRequest struct {
	Title      string             `json:"title" validate:"required,max=500"`
	Abstract   string             `json:"abstract" validate:"required,min=50,max=10000"`
	Field      string             `json:"field"`
	Preset     string             `json:"preset"`
	Weights    *recommend.Weights `json:"weights"`
	ScopusOnly bool               `json:"scopus_only"`
	Quartiles  []string           `json:"quartiles" validate:"dive,oneof=Q1 Q2 Q3 Q4"`
	Cost       string             `json:"cost" validate:"omitempty,oneof=any no_submission_fee free_to_publish diamond_oa"`
}

func (r *RecommendRequest) Validate() error {
	return validate.Struct(r)
}

// toEngineRequest resolves preset vs manual weights and assembles the
// hard filter.
func (r *RecommendRequest) toEngineRequest() recommend.Request {
	weights := recommend.PresetWeights(r.Preset)
	if r.Weights != nil {
		weights = *r.Weights
	}

	field := r.Field
	if field == "" {
		field = recommend.FieldAuto
	}

	cost := journal.CostPreference(r.Cost)
	if cost == "" {
		cost = journal.CostAny
	}

	return recommend.Request{
		Title:       r.Title,
		Abstract:    r.Abstract,
		FieldChoice: field,
		Weights:     weights,
		Filter: journal.Filter{
			Quartiles: r.Quartiles,
			Scopus:    r.ScopusOnly,
			Cost:      cost,
		},
	}
}

// Recommend runs a recommendation query and records a SEARCH event.
func (h *FinderHandler) Recommend(c echo.Context, req *RecommendRequest) (map[string]interface{}, error) {
	ctx := c.Request().Context()

	recs, err := h.engine.Recommend(ctx, req.toEngineRequest())
	if err != nil {
		return nil, errs.NewBadGatewayError("The recommendation service is unavailable right now. Please try again.")
	}

	h.server.Record(ctx, analytics.EventSearch,
		fmt.Sprintf("field=%s results=%d", req.Field, len(recs)))

	return map[string]interface{}{
		"count":           len(recs),
		"recommendations": recs,
	}, nil
}

// ExportRequest is the payload for the report export endpoints: the
// recommendations to render plus manuscript context.
type ExportRequest struct {
	Title           string                     `json:"title" validate:"required,max=500"`
	Field           string                     `json:"field"`
	Recommendations []recommend.Recommendation `json:"recommendations" validate:"required,min=1"`
}

func (r *ExportRequest) Validate() error {
	return validate.Struct(r)
}

func (h *FinderHandler) export(req *ExportRequest) *report.RecommendationExport {
	return &report.RecommendationExport{
		Title:           req.Title,
		Field:           req.Field,
		Recommendations: req.Recommendations,
		Store:           h.server.Journals,
		GeneratedAt:     time.Now(),
	}
}

// ExportCSV renders the recommendations as a CSV download.
func (h *FinderHandler) ExportCSV(c echo.Context, req *ExportRequest) ([]byte, error) {
	var buf bytes.Buffer
	if err := h.export(req).WriteCSV(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportText renders the recommendations as a plain-text report.
func (h *FinderHandler) ExportText(c echo.Context, req *ExportRequest) ([]byte, error) {
	var buf bytes.Buffer
	if err := h.export(req).WriteText(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportPDF renders the recommendations as a PDF report.
func (h *FinderHandler) ExportPDF(c echo.Context, req *ExportRequest) ([]byte, error) {
	var buf bytes.Buffer
	if err := h.export(req).WritePDF(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Stats returns dataset coverage and usage counts.
func (h *FinderHandler) Stats(c echo.Context) error {
	stats := map[string]interface{}{
		"journal_count": h.server.Journals.Len(),
		"fields":        recommend.Fields,
	}

	if h.server.Analytics != nil {
		ctx := c.Request().Context()
		if summary, err := h.server.Analytics.Summary(ctx); err == nil {
			stats["usage"] = summary
		}
		if recent, err := h.server.Analytics.Recent(ctx, recentEventLimit); err == nil {
			stats["recent"] = recent
		}
	}

	return c.JSON(200, stats)
}
