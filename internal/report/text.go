package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/chislo/manuscripthub/internal/journal"
)

// WriteText renders the recommendations as a plain-text report.
func (e *RecommendationExport) WriteText(w io.Writer) error {
	var sb strings.Builder
	sb.WriteString("JOURNAL RECOMMENDATION REPORT\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n\n")
	fmt.Fprintf(&sb, "Manuscript: %s\n", e.Title)
	if e.Field != "" {
		fmt.Fprintf(&sb, "Field: %s\n", e.Field)
	}
	fmt.Fprintf(&sb, "Generated: %s\n\n", e.GeneratedAt.Format("2006-01-02 15:04 MST"))

	for _, r := range e.rows() {
		fmt.Fprintf(&sb, "#%d  %s\n", r.rec.Rank, r.rec.Journal)
		sb.WriteString(strings.Repeat("-", 60) + "\n")
		fmt.Fprintf(&sb, "Fit: %s (%s)   Prestige: %s   Speed: %s   Acceptance: %s\n",
			journal.FitLabel(r.rec.FitScore), pct(r.rec.FitScore),
			pct(r.rec.PrestigeScore), pct(r.rec.SpeedScore), pct(r.rec.AcceptanceScore))
		fmt.Fprintf(&sb, "SJR: %s   Quartile: %s   Acceptance rate: %s   Review time: %s\n",
			journal.FormatSJR(r.j.SJR), orDash(r.j.Quartile),
			journal.FormatAcceptanceRate(r.j.AcceptanceRate),
			journal.FormatReviewTime(r.j.AvgReviewMonths))
		fmt.Fprintf(&sb, "Open access: %s   Submission fee: %s   Scopus: %s\n",
			yesNo(r.j.OpenAccess), yesNo(r.j.SubmissionFee), yesNo(r.j.Scopus))
		if r.j.HomepageURL != "" {
			fmt.Fprintf(&sb, "Homepage: %s\n", r.j.HomepageURL)
		}
		if r.rec.Reason != "" {
			fmt.Fprintf(&sb, "Why it fits: %s\n", r.rec.Reason)
		}
		if r.rec.Assessment != "" {
			fmt.Fprintf(&sb, "Assessment: %s\n", r.rec.Assessment)
		}
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
