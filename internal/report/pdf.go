package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"

	"github.com/chislo/manuscripthub/internal/checker"
	"github.com/chislo/manuscripthub/internal/journal"
)

// WritePDF renders the recommendations as a PDF report.
func (e *RecommendationExport) WritePDF(w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Journal Recommendation Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Manuscript: %s", clip(e.Title, 90)), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated: %s", e.GeneratedAt.Format("2006-01-02 15:04 MST")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	for _, r := range e.rows() {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, fmt.Sprintf("#%d  %s", r.rec.Rank, r.rec.Journal), "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(0, 5, fmt.Sprintf("Fit: %s (%s)   Prestige: %s   Speed: %s   Acceptance: %s",
			journal.FitLabel(r.rec.FitScore), pct(r.rec.FitScore),
			pct(r.rec.PrestigeScore), pct(r.rec.SpeedScore), pct(r.rec.AcceptanceScore)),
			"", 1, "L", false, 0, "")
		pdf.CellFormat(0, 5, fmt.Sprintf("SJR: %s   Quartile: %s   Acceptance rate: %s   Review time: %s",
			journal.FormatSJR(r.j.SJR), orDash(r.j.Quartile),
			journal.FormatAcceptanceRate(r.j.AcceptanceRate),
			journal.FormatReviewTime(r.j.AvgReviewMonths)),
			"", 1, "L", false, 0, "")
		pdf.CellFormat(0, 5, fmt.Sprintf("Open access: %s   Submission fee: %s   Scopus: %s",
			yesNo(r.j.OpenAccess), yesNo(r.j.SubmissionFee), yesNo(r.j.Scopus)),
			"", 1, "L", false, 0, "")
		if r.j.HomepageURL != "" {
			pdf.CellFormat(0, 5, "Homepage: "+clip(r.j.HomepageURL, 100), "", 1, "L", false, 0, "")
		}
		if r.rec.Reason != "" {
			pdf.MultiCell(0, 5, "Why it fits: "+r.rec.Reason, "", "L", false)
		}
		pdf.Ln(3)
	}

	return errors.Wrap(pdf.Output(w), "could not render recommendations PDF")
}

// WriteReadinessPDF renders a manuscript readiness report as a PDF.
func WriteReadinessPDF(w io.Writer, title string, report *checker.Report) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Submission Readiness Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, clip(title, 90), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, fmt.Sprintf("Readiness Score: %d / 100", report.ReadinessScore), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, report.OverallVerdict, "", "L", false)
	pdf.Ln(2)

	section(pdf, "Abstract", report.AbstractFeedback.Score, append(report.AbstractFeedback.Issues, report.AbstractFeedback.Suggestion))
	section(pdf, "Structure", report.StructureFeedback.Score, structureLines(report.StructureFeedback))
	section(pdf, "Content", report.ContentFeedback.Score, contentLines(report.ContentFeedback))

	if len(report.ComplianceChecklist) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, "Compliance Checklist", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		for _, item := range report.ComplianceChecklist {
			pdf.MultiCell(0, 5, fmt.Sprintf("[%s] %s: %s", strings.ToUpper(item.Status), item.Item, item.Note), "", "L", false)
		}
		pdf.Ln(2)
	}

	if len(report.ActionItems) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, "Action Items", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		for i, item := range report.ActionItems {
			pdf.MultiCell(0, 5, fmt.Sprintf("%d. %s", i+1, item), "", "L", false)
		}
		pdf.Ln(2)
	}

	if report.JournalFitAssessment != "" {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, "Journal Fit", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(0, 5, report.JournalFitAssessment, "", "L", false)
	}

	return errors.Wrap(pdf.Output(w), "could not render readiness PDF")
}

func section(pdf *fpdf.Fpdf, name string, score int, lines []string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("%s (%d/10)", name, score), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, line := range lines {
		if line == "" {
			continue
		}
		pdf.MultiCell(0, 5, "- "+line, "", "L", false)
	}
	pdf.Ln(2)
}

func structureLines(f checker.StructureFeedback) []string {
	var lines []string
	if len(f.MissingCritical) > 0 {
		lines = append(lines, "Missing critical: "+strings.Join(f.MissingCritical, ", "))
	}
	if len(f.MissingRecommended) > 0 {
		lines = append(lines, "Missing recommended: "+strings.Join(f.MissingRecommended, ", "))
	}
	return append(lines, f.Suggestion)
}

func contentLines(f checker.SectionFeedback) []string {
	var lines []string
	for _, s := range f.Strengths {
		lines = append(lines, "Strength: "+s)
	}
	for _, s := range f.Weaknesses {
		lines = append(lines, "Weakness: "+s)
	}
	return append(lines, f.Suggestion)
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
