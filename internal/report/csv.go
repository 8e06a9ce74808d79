package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

var csvHeader = []string{
	"Rank",
	"Journal",
	"Field",
	"Fit Score",
	"Prestige Score",
	"Speed Score",
	"Acceptance Score",
	"SJR",
	"Quartile",
	"ABDC",
	"Acceptance Rate",
	"Avg Review (months)",
	"Scopus",
	"Open Access",
	"Submission Fee",
	"Homepage",
	"Why It Fits",
}

// WriteCSV renders the recommendations as a spreadsheet.
func (e *RecommendationExport) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return errors.Wrap(err, "could not write CSV header")
	}

	for _, r := range e.rows() {
		record := []string{
			strconv.Itoa(r.rec.Rank),
			r.rec.Journal,
			r.j.Field,
			pct(r.rec.FitScore),
			pct(r.rec.PrestigeScore),
			pct(r.rec.SpeedScore),
			pct(r.rec.AcceptanceScore),
			value(r.j.SJR),
			r.j.Quartile,
			r.j.ABDC,
			value(r.j.AcceptanceRate),
			value(r.j.AvgReviewMonths),
			yesNo(r.j.Scopus),
			yesNo(r.j.OpenAccess),
			yesNo(r.j.SubmissionFee),
			r.j.HomepageURL,
			r.rec.Reason,
		}
		if err := cw.Write(record); err != nil {
			return errors.Wrap(err, "could not write CSV row")
		}
	}

	cw.Flush()
	return errors.Wrap(cw.Error(), "could not flush CSV")
}

func value(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}
