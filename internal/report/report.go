// Package report renders recommendation results and readiness reports
// into downloadable formats.
package report

import (
	"fmt"
	"time"

	"github.com/chislo/manuscripthub/internal/journal"
	"github.com/chislo/manuscripthub/internal/recommend"
)

// RecommendationExport bundles everything the export writers need.
type RecommendationExport struct {
	Title           string
	Field           string
	Recommendations []recommend.Recommendation
	Store           *journal.Store
	GeneratedAt     time.Time
}

// row flattens one recommendation with its dataset record for export.
type row struct {
	rec recommend.Recommendation
	j   *journal.Journal
}

func (e *RecommendationExport) rows() []row {
	rows := make([]row, 0, len(e.Recommendations))
	for _, rec := range e.Recommendations {
		var j *journal.Journal
		if e.Store != nil {
			if found, ok := e.Store.Get(rec.Journal); ok {
				j = found
			}
		}
		if j == nil {
			j = &journal.Journal{Name: rec.Journal, Field: rec.Field, HomepageURL: rec.URL}
		}
		rows = append(rows, row{rec: rec, j: j})
	}
	return rows
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func pct(score float64) string {
	return fmt.Sprintf("%.0f%%", score*100)
}
