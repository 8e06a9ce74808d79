package handler

import (
	"bytes"
	"fmt"
	"io"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/chislo/manuscripthub/internal/analytics"
	"github.com/chislo/manuscripthub/internal/checker"
	"github.com/chislo/manuscripthub/internal/errs"
	"github.com/chislo/manuscripthub/internal/guidelines"
	"github.com/chislo/manuscripthub/internal/manuscript"
	"github.com/chislo/manuscripthub/internal/report"
	"github.com/chislo/manuscripthub/internal/server"
)

// maxUploadBytes caps manuscript uploads at 25 MB.
const maxUploadBytes = 25 << 20

// CheckerHandler serves the manuscript checker endpoints: text
// extraction, readiness checks, and live guidelines lookups.
type CheckerHandler struct {
	Handler
	checks     *checker.Service
	guidelines *guidelines.Fetcher
}

func NewCheckerHandler(s *server.Server, checks *checker.Service, gl *guidelines.Fetcher) *CheckerHandler {
	return &CheckerHandler{
		Handler:    NewHandler(s),
		checks:     checks,
		guidelines: gl,
	}
}

// Extract accepts a manuscript upload (PDF, DOCX, TXT, MD) and returns
// the structural analysis.
func (h *CheckerHandler) Extract(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return errs.NewBadRequestError("Upload a manuscript file in the `file` form field", true, nil, nil, nil)
	}
	if fileHeader.Size > maxUploadBytes {
		return errs.NewBadRequestError("File is too large (25 MB limit)", true, nil, nil, nil)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "could not open uploaded file")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return errors.Wrap(err, "could not read uploaded file")
	}

	text, err := manuscript.ExtractText(fileHeader.Filename, data)
	if err != nil {
		if errors.Is(err, manuscript.ErrUnsupportedType) {
			return errs.NewUnprocessableError("Unsupported file type. Upload a PDF, DOCX, TXT, or MD file.")
		}
		return errs.NewUnprocessableError("Could not read the manuscript text from this file.")
	}

	return c.JSON(200, map[string]interface{}{
		"analysis": manuscript.Analyze(text),
		"text":     text,
	})
}

// CheckRequest is the POST /api/check payload. Text is the full
// manuscript text, typically the output of a prior extraction.
type CheckRequest struct {
	Text      string `json:"text" validate:"required,min=200"`
	Journal   string `json:"journal"`
	Depth     string `json:"depth" validate:"omitempty,oneof='Quick Check' Standard 'Deep Analysis'"`
	LiveCheck bool   `json:"live_check"`
}

func (r *CheckRequest) Validate() error {
	return validate.Struct(r)
}

// Check runs a readiness check and records a MANUSCRIPT_CHECK event.
func (h *CheckerHandler) Check(c echo.Context, req *CheckRequest) (*checker.Report, error) {
	return h.runCheck(c, req)
}

// CheckPDF runs a readiness check and returns the report as a PDF.
func (h *CheckerHandler) CheckPDF(c echo.Context, req *CheckRequest) ([]byte, error) {
	analysis := manuscript.Analyze(req.Text)

	result, err := h.check(c, req, analysis)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := report.WriteReadinessPDF(&buf, analysis.Title, result); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (h *CheckerHandler) runCheck(c echo.Context, req *CheckRequest) (*checker.Report, error) {
	return h.check(c, req, manuscript.Analyze(req.Text))
}

func (h *CheckerHandler) check(c echo.Context, req *CheckRequest, analysis *manuscript.Analysis) (*checker.Report, error) {
	ctx := c.Request().Context()

	result, err := h.checks.Check(ctx, checker.Request{
		Manuscript: analysis,
		Journal:    req.Journal,
		Depth:      req.Depth,
		LiveCheck:  req.LiveCheck,
	})
	if err != nil {
		return nil, errs.NewBadGatewayError("The readiness check service is unavailable right now. Please try again.")
	}

	h.server.Record(ctx, analytics.EventManuscriptCheck,
		fmt.Sprintf("journal=%s depth=%s score=%d", req.Journal, req.Depth, result.ReadinessScore))

	return result, nil
}

// Guidelines returns live submission requirements scraped from the
// journal's website.
func (h *CheckerHandler) Guidelines(c echo.Context) error {
	name := c.QueryParam("journal")
	if name == "" {
		return errs.NewBadRequestError("The `journal` query parameter is required", true, nil, nil, nil)
	}

	j, ok := h.server.Journals.Get(name)
	if !ok {
		return errs.NewNotFoundError(fmt.Sprintf("Journal %q is not in the database", name), true, nil)
	}
	if j.HomepageURL == "" {
		return errs.NewNotFoundError(fmt.Sprintf("No homepage known for %q", j.Name), true, nil)
	}

	reqs, err := h.guidelines.Fetch(c.Request().Context(), j.Name, j.HomepageURL)
	if err != nil {
		return errs.NewBadGatewayError("Could not fetch the journal's submission guidelines right now.")
	}

	return c.JSON(200, map[string]interface{}{
		"journal":      j.Name,
		"requirements": reqs,
	})
}
