// Package journal holds the curated journal dataset: the record type,
// the in-memory store loaded from journal_metadata.json, and the hard
// filter predicates the finder exposes.
package journal

import (
	"fmt"
	"strings"
)

// Journal is one record of the curated dataset.
//
// The JSON tags mirror journal_metadata.json. Numeric fields use
// pointers where the dataset distinguishes "unknown" from zero.
type Journal struct {
	Name            string   `json:"name,omitempty"`
	Publisher       string   `json:"publisher,omitempty"`
	Field           string   `json:"field,omitempty"`
	Discipline      string   `json:"discipline,omitempty"`
	Scope           string   `json:"scope,omitempty"`
	SJR             *float64 `json:"sjr,omitempty"`
	Quartile        string   `json:"quartile,omitempty"`
	ABDC            string   `json:"abdc,omitempty"`
	ABS             string   `json:"abs,omitempty"`
	AcceptanceRate  *float64 `json:"acceptance_rate,omitempty"`
	AvgReviewMonths *float64 `json:"avg_review_months,omitempty"`
	Scopus          bool     `json:"scopus,omitempty"`
	OpenAccess      bool     `json:"open_access,omitempty"`
	APC             bool     `json:"apc,omitempty"`
	SubmissionFee   bool     `json:"submission_fee,omitempty"`
	FreeToAuthor    bool     `json:"free_to_author,omitempty"`
	HomepageURL     string   `json:"homepage_url,omitempty"`
}

// SJRValue returns the SJR score, or 0 when unknown.
func (j *Journal) SJRValue() float64 {
	if j.SJR == nil {
		return 0
	}
	return *j.SJR
}

// CostPreference is the combined cost filter from the finder sidebar.
type CostPreference string

const (
	CostAny             CostPreference = "any"
	CostNoSubmissionFee CostPreference = "no_submission_fee"
	CostFreeToPublish   CostPreference = "free_to_publish"
	CostDiamondOA       CostPreference = "diamond_oa"
)

// Filter captures the hard constraints applied before any scoring.
type Filter struct {
	Field     string
	Quartiles []string
	Scopus    bool
	Cost      CostPreference
}

// Matches reports whether a journal survives every hard constraint.
func (f Filter) Matches(j *Journal) bool {
	if f.Field != "" && !fieldMatches(j.Field, f.Field) {
		return false
	}

	if f.Scopus && !j.Scopus {
		return false
	}

	if len(f.Quartiles) > 0 {
		q := j.Quartile
		if q == "" {
			q = "Q4"
		}
		found := false
		for _, want := range f.Quartiles {
			if q == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	switch f.Cost {
	case CostNoSubmissionFee:
		if j.SubmissionFee {
			return false
		}
	case CostFreeToPublish:
		if !j.FreeToAuthor {
			return false
		}
	case CostDiamondOA:
		// Diamond OA: open access with no APC and no submission fee.
		if !j.OpenAccess || j.APC || j.SubmissionFee {
			return false
		}
	}

	return true
}

// fieldMatches is the loose field filter: substring match, plus the
// cross-disciplinary allowances. Finance papers routinely land in
// Economics journals and Management papers in Business journals, so
// those searches keep the neighboring field's candidates. "Select for
// me" and "Other" are resolved to an empty Field before this point.
func fieldMatches(journalField, filterField string) bool {
	jf := strings.ToLower(journalField)
	ff := strings.ToLower(filterField)

	if strings.Contains(jf, ff) {
		return true
	}
	if strings.Contains(jf, "economics") && strings.Contains(ff, "finance") {
		return true
	}
	if strings.Contains(jf, "business") && strings.Contains(ff, "management") {
		return true
	}
	return false
}

// FitLabel maps a 0..1 fit score to the finder's assessment wording.
func FitLabel(score float64) string {
	switch {
	case score >= 0.7:
		return "Excellent fit"
	case score >= 0.55:
		return "Strong fit"
	case score >= 0.4:
		return "Moderate fit"
	default:
		return "Weak fit"
	}
}

// FormatSJR renders an SJR score with its prestige label, "N/A" when
// unknown.
func FormatSJR(sjr *float64) string {
	if sjr == nil {
		return "N/A"
	}
	s := *sjr
	var label string
	switch {
	case s >= 10:
		label = "World-Leading"
	case s >= 5:
		label = "Top Tier"
	case s >= 2:
		label = "High Impact"
	case s >= 1:
		label = "Good Impact"
	case s >= 0.5:
		label = "Moderate"
	default:
		label = "Emerging"
	}
	return fmt.Sprintf("%.2f (%s)", s, label)
}

// FormatAcceptanceRate renders an acceptance rate (stored as 0..1 or a
// raw percentage) with its selectivity label.
func FormatAcceptanceRate(rate *float64) string {
	if rate == nil {
		return "N/A"
	}
	r := *rate
	pct := r
	if r <= 1 {
		pct = r * 100
	}
	p := int(pct + 0.5)
	var label string
	switch {
	case p <= 5:
		label = "Highly Selective"
	case p <= 15:
		label = "Very Selective"
	case p <= 30:
		label = "Selective"
	case p <= 50:
		label = "Moderate"
	default:
		label = "Accessible"
	}
	return fmt.Sprintf("%d%% (%s)", p, label)
}

// FormatReviewTime renders an average review duration in months with
// its speed label.
func FormatReviewTime(months *float64) string {
	if months == nil {
		return "N/A"
	}
	m := *months
	var label string
	switch {
	case m <= 2:
		label = "Very Fast"
	case m <= 4:
		label = "Fast"
	case m <= 6:
		label = "Average"
	case m <= 9:
		label = "Slow"
	default:
		label = "Very Slow"
	}
	return fmt.Sprintf("%.1f months (%s)", m, label)
}
