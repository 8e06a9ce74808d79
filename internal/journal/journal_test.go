package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func testStore() *Store {
	return NewStore(map[string]*Journal{
		"Journal of Finance": {
			Field:         "Finance",
			SJR:           f(12.3),
			Quartile:      "Q1",
			Scopus:        true,
			SubmissionFee: true,
		},
		"World Development": {
			Field:        "Economics",
			SJR:          f(2.4),
			Quartile:     "Q1",
			Scopus:       true,
			FreeToAuthor: true,
		},
		"Harvard Law Review": {
			Field:      "Law",
			SJR:        f(2.6),
			Quartile:   "Q1",
			Scopus:     true,
			OpenAccess: true,
		},
		"Obscure Review": {
			Field: "Economics",
		},
	})
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Journal of Banking & Finance", "journal of banking and finance"},
		{"Economics,  Law, and Policy", "economics law and policy"},
		{"Micro-Finance Studies", "micro finance studies"},
		{"  The   QUARTERLY  ", "the quarterly"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in))
	}
}

func TestStoreGetNormalizedFallback(t *testing.T) {
	s := testStore()

	j, ok := s.Get("Journal of Finance")
	require.True(t, ok)
	assert.Equal(t, "Journal of Finance", j.Name)

	// LLM output often differs in case and punctuation.
	j, ok = s.Get("journal of finance")
	require.True(t, ok)
	assert.Equal(t, "Journal of Finance", j.Name)

	_, ok = s.Get("Journal of Nothing")
	assert.False(t, ok)

	_, ok = s.Get("")
	assert.False(t, ok)
}

func TestStoreNames(t *testing.T) {
	s := testStore()

	all := s.Names("")
	assert.Len(t, all, 4)
	assert.True(t, sortedStrings(all))

	law := s.Names("law")
	assert.Equal(t, []string{"Harvard Law Review"}, law)

	assert.Empty(t, s.Names("zzz"))
}

func sortedStrings(ss []string) bool {
	for i := 1; i < len(ss); i++ {
		if ss[i-1] > ss[i] {
			return false
		}
	}
	return true
}

func TestFilterMatches(t *testing.T) {
	tests := []struct {
		name    string
		filter  Filter
		journal Journal
		want    bool
	}{
		{
			name:    "empty filter matches anything",
			journal: Journal{Field: "Economics"},
			want:    true,
		},
		{
			name:    "field substring match",
			filter:  Filter{Field: "Econ"},
			journal: Journal{Field: "Economics"},
			want:    true,
		},
		{
			name:    "field mismatch",
			filter:  Filter{Field: "Law"},
			journal: Journal{Field: "Economics"},
			want:    false,
		},
		{
			name:    "finance search keeps economics journals",
			filter:  Filter{Field: "Finance"},
			journal: Journal{Field: "Economics"},
			want:    true,
		},
		{
			name:    "management search keeps business journals",
			filter:  Filter{Field: "Management"},
			journal: Journal{Field: "Business"},
			want:    true,
		},
		{
			name:    "economics search does not widen to finance journals",
			filter:  Filter{Field: "Economics"},
			journal: Journal{Field: "Finance"},
			want:    false,
		},
		{
			name:    "scopus required",
			filter:  Filter{Scopus: true},
			journal: Journal{Scopus: false},
			want:    false,
		},
		{
			name:    "quartile match",
			filter:  Filter{Quartiles: []string{"Q1", "Q2"}},
			journal: Journal{Quartile: "Q2"},
			want:    true,
		},
		{
			name:    "missing quartile defaults to Q4",
			filter:  Filter{Quartiles: []string{"Q4"}},
			journal: Journal{},
			want:    true,
		},
		{
			name:    "missing quartile excluded from Q1 filter",
			filter:  Filter{Quartiles: []string{"Q1"}},
			journal: Journal{},
			want:    false,
		},
		{
			name:    "no submission fee",
			filter:  Filter{Cost: CostNoSubmissionFee},
			journal: Journal{SubmissionFee: true},
			want:    false,
		},
		{
			name:    "free to publish",
			filter:  Filter{Cost: CostFreeToPublish},
			journal: Journal{FreeToAuthor: true},
			want:    true,
		},
		{
			name:    "diamond OA requires open access without fees",
			filter:  Filter{Cost: CostDiamondOA},
			journal: Journal{OpenAccess: true, APC: false, SubmissionFee: false},
			want:    true,
		},
		{
			name:    "diamond OA rejects APC journals",
			filter:  Filter{Cost: CostDiamondOA},
			journal: Journal{OpenAccess: true, APC: true},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(&tt.journal))
		})
	}
}

func TestStoreSelect(t *testing.T) {
	s := testStore()

	scopus := s.Select(Filter{Scopus: true})
	assert.Len(t, scopus, 3)

	econ := s.Select(Filter{Field: "Economics"})
	assert.Len(t, econ, 2)
}

func TestTopBySJR(t *testing.T) {
	s := testStore()
	top := TopBySJR(s.Select(Filter{}), 2)

	require.Len(t, top, 2)
	assert.Equal(t, "Journal of Finance", top[0].Name)
	assert.Equal(t, "Harvard Law Review", top[1].Name)
}

func TestFitLabel(t *testing.T) {
	assert.Equal(t, "Excellent fit", FitLabel(0.85))
	assert.Equal(t, "Excellent fit", FitLabel(0.7))
	assert.Equal(t, "Strong fit", FitLabel(0.6))
	assert.Equal(t, "Moderate fit", FitLabel(0.45))
	assert.Equal(t, "Weak fit", FitLabel(0.39))
}

func TestFormatSJR(t *testing.T) {
	assert.Equal(t, "N/A", FormatSJR(nil))
	assert.Equal(t, "12.30 (World-Leading)", FormatSJR(f(12.3)))
	assert.Equal(t, "5.00 (Top Tier)", FormatSJR(f(5)))
	assert.Equal(t, "2.40 (High Impact)", FormatSJR(f(2.4)))
	assert.Equal(t, "1.10 (Good Impact)", FormatSJR(f(1.1)))
	assert.Equal(t, "0.60 (Moderate)", FormatSJR(f(0.6)))
	assert.Equal(t, "0.30 (Emerging)", FormatSJR(f(0.3)))
}

func TestFormatAcceptanceRate(t *testing.T) {
	assert.Equal(t, "N/A", FormatAcceptanceRate(nil))
	assert.Equal(t, "5% (Highly Selective)", FormatAcceptanceRate(f(5)))
	assert.Equal(t, "12% (Very Selective)", FormatAcceptanceRate(f(12)))
	assert.Equal(t, "25% (Selective)", FormatAcceptanceRate(f(25)))
	assert.Equal(t, "45% (Moderate)", FormatAcceptanceRate(f(45)))
	assert.Equal(t, "60% (Accessible)", FormatAcceptanceRate(f(60)))
	// Fractional rates are treated as 0..1.
	assert.Equal(t, "25% (Selective)", FormatAcceptanceRate(f(0.25)))
}

func TestFormatReviewTime(t *testing.T) {
	assert.Equal(t, "N/A", FormatReviewTime(nil))
	assert.Equal(t, "1.5 months (Very Fast)", FormatReviewTime(f(1.5)))
	assert.Equal(t, "3.0 months (Fast)", FormatReviewTime(f(3)))
	assert.Equal(t, "5.5 months (Average)", FormatReviewTime(f(5.5)))
	assert.Equal(t, "8.0 months (Slow)", FormatReviewTime(f(8)))
	assert.Equal(t, "11.0 months (Very Slow)", FormatReviewTime(f(11)))
}
