package recommend

import (
	"fmt"
	"strings"

	"github.com/chislo/manuscripthub/internal/journal"
)

// recommendationExample is the shape shown to the model when its JSON
// needs repairing.
const recommendationExample = `[
  {"journal": "Name", "rank": 1, "reason": "...", "fit_score": 0.92, "prestige_score": 0.85, "speed_score": 0.65, "acceptance_score": 0.45, "field": "Economics"}
]`

// buildRecommendPrompt renders the ranking prompt. With candidates the
// model selects from the dataset extract; without, it answers from its
// own knowledge of the field.
func buildRecommendPrompt(req Request, field string, candidates []*journal.Journal) string {
	var context strings.Builder
	instruction := "Use your internal knowledge to recommend the top 20 journals globally for this specific topic."
	if len(candidates) > 0 {
		instruction = "Select the top 20 best matching journals from the CANDIDATE LIST below."
		for _, j := range candidates {
			scope := j.Scope
			if len(scope) > 120 {
				scope = scope[:120] + "..."
			}
			fmt.Fprintf(&context, "- **%s**\n", j.Name)
			fmt.Fprintf(&context, "  Field: %s\n", orNA(j.Field))
			fmt.Fprintf(&context, "  Scope: %s\n", orNA(scope))
			fmt.Fprintf(&context, "  SJR: %s | Accept: %s\n", journal.FormatSJR(j.SJR), journal.FormatAcceptanceRate(j.AcceptanceRate))
			fmt.Fprintf(&context, "  Avg review: %s\n\n", journal.FormatReviewTime(j.AvgReviewMonths))
		}
	} else {
		context.WriteString("[NO LOCAL DATABASE FOR THIS FIELD. USE YOUR INTERNAL EXPERT KNOWLEDGE.]")
	}

	w := req.Weights.Normalized()
	f := req.Filter

	return fmt.Sprintf(`You are an expert academic journal recommender.

User paper:
Title: %s
Abstract: %s
Field: %s

Priority weights:
- Fit: %.2f
- Prestige: %.2f
- Speed: %.2f
- Acceptance: %.2f

Filters:
- Scopus Only: %s
- Cost Preference: %s
- Target Quartiles: %s

Information Source:
%s

Task:
1. %s
2. Ensure you respect the user's priority weights and filters in your selection.
3. Calculate scores (0.0-1.0) for each journal.
4. Return ONLY valid JSON.

Format:
[
  {
    "journal": "Exact Name From List (or Global Name if AI mode)",
    "rank": 1,
    "reason": "Brief explanation",
    "fit_score": 0.8,
    "prestige_score": 0.9,
    "speed_score": 0.5,
    "acceptance_score": 0.5,
    "field": "Field Name",
    "oa_status": "Subscription",
    "sub_fee": "No",
    "url": "official journal homepage URL"
  }
]
`,
		req.Title, req.Abstract, field,
		w.Fit, w.Prestige, w.Speed, w.Accept,
		yesOrOptional(f.Scopus), costLabel(f.Cost), quartilesLabel(f.Quartiles),
		context.String(), instruction,
	)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func yesOrOptional(b bool) string {
	if b {
		return "Yes"
	}
	return "Optional"
}

func costLabel(c journal.CostPreference) string {
	switch c {
	case journal.CostNoSubmissionFee:
		return "No Submission Fee"
	case journal.CostFreeToPublish:
		return "Free to Publish (No APC)"
	case journal.CostDiamondOA:
		return "Diamond OA (Fully Free)"
	default:
		return "Any Cost"
	}
}

func quartilesLabel(qs []string) string {
	if len(qs) == 0 {
		return "Any"
	}
	return strings.Join(qs, ", ")
}
