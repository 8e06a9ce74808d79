package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chislo/manuscripthub/internal/analytics"
	"github.com/chislo/manuscripthub/internal/journal"
	"github.com/chislo/manuscripthub/internal/recommend"
	"github.com/chislo/manuscripthub/internal/server"
)

func f(v float64) *float64 { return &v }

func testServer() *server.Server {
	logger := zerolog.Nop()
	store := journal.NewStore(map[string]*journal.Journal{
		"Journal of Development Economics": {
			Field:           "Economics",
			Scope:           "Development economics and policy",
			SJR:             f(3.2),
			Quartile:        "Q1",
			AcceptanceRate:  f(8),
			AvgReviewMonths: f(4),
			Scopus:          true,
			HomepageURL:     "https://example.org/jde",
		},
		"Finance Research Letters": {
			Field:    "Finance",
			SJR:      f(2.1),
			Quartile: "Q1",
			Scopus:   true,
		},
	})
	return &server.Server{Logger: &logger, Journals: store}
}

func newGetContext(t *testing.T, target string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestListJournals(t *testing.T) {
	h := NewFinderHandler(testServer(), nil)
	c, rec := newGetContext(t, "/api/journals")

	require.NoError(t, h.ListJournals(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Count    int      `json:"count"`
		Journals []string `json:"journals"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)
	assert.Contains(t, body.Journals, "Finance Research Letters")
}

func TestListJournalsFiltered(t *testing.T) {
	h := NewFinderHandler(testServer(), nil)
	c, rec := newGetContext(t, "/api/journals?q=finance")

	require.NoError(t, h.ListJournals(c))

	var body struct {
		Journals []string `json:"journals"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"Finance Research Letters"}, body.Journals)
}

func TestGetJournal(t *testing.T) {
	h := NewFinderHandler(testServer(), nil)
	c, rec := newGetContext(t, "/api/journals/x")
	c.SetParamNames("name")
	c.SetParamValues("Journal of Development Economics")

	require.NoError(t, h.GetJournal(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var j journal.Journal
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &j))
	assert.Equal(t, "Journal of Development Economics", j.Name)
	assert.Equal(t, "Q1", j.Quartile)
}

func TestGetJournalNotFound(t *testing.T) {
	h := NewFinderHandler(testServer(), nil)
	c, _ := newGetContext(t, "/api/journals/x")
	c.SetParamNames("name")
	c.SetParamValues("Annals of Improbable Research")

	err := h.GetJournal(c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not in the database")
}

func TestStats(t *testing.T) {
	h := NewFinderHandler(testServer(), nil)
	c, rec := newGetContext(t, "/api/stats")

	require.NoError(t, h.Stats(c))

	var body struct {
		JournalCount int      `json:"journal_count"`
		Fields       []string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.JournalCount)
	assert.Contains(t, body.Fields, "Economics")
}

func TestStatsIncludesUsage(t *testing.T) {
	s := testServer()

	logger := zerolog.Nop()
	events, err := analytics.New(filepath.Join(t.TempDir(), "analytics.db"), &logger)
	require.NoError(t, err)
	t.Cleanup(func() { events.Close() })
	s.Analytics = events

	ctx := context.Background()
	events.Record(ctx, analytics.EventSearch, "field=Economics results=10")
	events.Record(ctx, analytics.EventManuscriptCheck, "journal=AER depth=Standard score=55")

	h := NewFinderHandler(s, nil)
	c, rec := newGetContext(t, "/api/stats")
	require.NoError(t, h.Stats(c))

	var body struct {
		Usage  map[string]int `json:"usage"`
		Recent []struct {
			Type    string `json:"event_type"`
			Details string `json:"details"`
		} `json:"recent"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Usage[analytics.EventSearch])
	require.Len(t, body.Recent, 2)
	assert.Equal(t, analytics.EventManuscriptCheck, body.Recent[0].Type)
	assert.Equal(t, "field=Economics results=10", body.Recent[1].Details)
}

func TestRecommendRequestToEngineRequest(t *testing.T) {
	req := RecommendRequest{
		Title:      "Remittances and Rural Credit Access",
		Abstract:   strings.Repeat("remittances and credit ", 5),
		Preset:     recommend.PresetFastestReview,
		ScopusOnly: true,
		Quartiles:  []string{"Q1", "Q2"},
	}

	engineReq := req.toEngineRequest()
	assert.Equal(t, recommend.PresetWeights(recommend.PresetFastestReview), engineReq.Weights)
	assert.Equal(t, recommend.FieldAuto, engineReq.FieldChoice)
	assert.True(t, engineReq.Filter.Scopus)
	assert.Equal(t, journal.CostAny, engineReq.Filter.Cost)
	assert.Equal(t, []string{"Q1", "Q2"}, engineReq.Filter.Quartiles)
}

func TestRecommendRequestManualWeightsWin(t *testing.T) {
	req := RecommendRequest{
		Title:    "T",
		Abstract: "A",
		Preset:   recommend.PresetBalanced,
		Weights:  &recommend.Weights{Fit: 1},
	}

	engineReq := req.toEngineRequest()
	assert.Equal(t, recommend.Weights{Fit: 1}, engineReq.Weights)
}

func TestRecommendRequestValidation(t *testing.T) {
	short := RecommendRequest{Title: "T", Abstract: "too short"}
	assert.Error(t, short.Validate())

	ok := RecommendRequest{
		Title:    "Remittances and Rural Credit Access",
		Abstract: strings.Repeat("remittances and rural credit access ", 3),
	}
	assert.NoError(t, ok.Validate())

	badQuartile := ok
	badQuartile.Quartiles = []string{"Q5"}
	assert.Error(t, badQuartile.Validate())
}

func TestRecommendRecordsNothingWithoutAnalytics(t *testing.T) {
	logger := zerolog.Nop()
	s := testServer()
	// Record on a server without an analytics store must be a no-op.
	s.Logger = &logger
	s.Record(context.Background(), "SEARCH", "field=Economics results=1")
}

func TestExportCSVHandler(t *testing.T) {
	h := NewFinderHandler(testServer(), nil)
	c, _ := newGetContext(t, "/api/export/csv")

	data, err := h.ExportCSV(c, &ExportRequest{
		Title: "Remittances and Rural Credit Access",
		Recommendations: []recommend.Recommendation{
			{Journal: "Journal of Development Economics", Rank: 1, FitScore: 0.8},
		},
	})
	require.NoError(t, err)
	assert.Contains(t, string(data), "Rank,Journal,Field")
	assert.Contains(t, string(data), "Journal of Development Economics")
}

func TestExportPDFHandler(t *testing.T) {
	h := NewFinderHandler(testServer(), nil)
	c, _ := newGetContext(t, "/api/export/pdf")

	data, err := h.ExportPDF(c, &ExportRequest{
		Title: "Remittances and Rural Credit Access",
		Recommendations: []recommend.Recommendation{
			{Journal: "Journal of Development Economics", Rank: 1, FitScore: 0.8},
		},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}
