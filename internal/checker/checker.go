// Package checker scores manuscripts for submission readiness against
// a target journal, combining structural analysis with an AI editorial
// review.
package checker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/chislo/manuscripthub/internal/gemini"
	"github.com/chislo/manuscripthub/internal/guidelines"
	"github.com/chislo/manuscripthub/internal/journal"
	"github.com/chislo/manuscripthub/internal/manuscript"
)

// Analysis depths supported by Check.
const (
	DepthQuick    = "Quick Check"
	DepthStandard = "Standard"
	DepthDeep     = "Deep Analysis"
)

var depthInstructions = map[string]string{
	DepthQuick:    "Provide a concise assessment focusing on the most critical issues only.",
	DepthStandard: "Provide a balanced assessment covering structure, content, and compliance.",
	DepthDeep:     "Provide a thorough, detailed assessment. Scrutinize methodology signals, argumentation, and every compliance item.",
}

// Request carries a manuscript analysis plus review options into Check.
type Request struct {
	Manuscript *manuscript.Analysis `json:"manuscript" validate:"required"`
	Journal    string               `json:"journal"`
	Depth      string               `json:"depth"`
	LiveCheck  bool                 `json:"live_check"`
	Guidelines *guidelines.Requirements
}

// SectionFeedback scores one review dimension.
type SectionFeedback struct {
	Score      int      `json:"score"`
	Issues     []string `json:"issues,omitempty"`
	Strengths  []string `json:"strengths,omitempty"`
	Weaknesses []string `json:"weaknesses,omitempty"`
	Suggestion string   `json:"suggestion"`
}

// StructureFeedback reports on missing manuscript sections.
type StructureFeedback struct {
	Score              int      `json:"score"`
	MissingCritical    []string `json:"missing_critical"`
	MissingRecommended []string `json:"missing_recommended"`
	Suggestion         string   `json:"suggestion"`
}

// ChecklistItem is one row of the compliance checklist.
type ChecklistItem struct {
	Item   string `json:"item"`
	Status string `json:"status"`
	Note   string `json:"note"`
}

// Report is the full readiness assessment returned by Check.
type Report struct {
	ReadinessScore       int               `json:"readiness_score"`
	OverallVerdict       string            `json:"overall_verdict"`
	AbstractFeedback     SectionFeedback   `json:"abstract_feedback"`
	StructureFeedback    StructureFeedback `json:"structure_feedback"`
	ContentFeedback      SectionFeedback   `json:"content_feedback"`
	ComplianceChecklist  []ChecklistItem   `json:"compliance_checklist"`
	ActionItems          []string          `json:"action_items"`
	JournalFitAssessment string            `json:"journal_fit_assessment"`
}

// Service runs readiness checks. The guidelines fetcher is optional;
// without it live checks fall back to dataset metadata only.
type Service struct {
	store      *journal.Store
	ai         gemini.Completer
	guidelines *guidelines.Fetcher
	logger     *zerolog.Logger
}

func NewService(store *journal.Store, ai gemini.Completer, gl *guidelines.Fetcher, logger *zerolog.Logger) *Service {
	return &Service{store: store, ai: ai, guidelines: gl, logger: logger}
}

// Check produces a readiness report for the manuscript in req.
func (s *Service) Check(ctx context.Context, req Request) (*Report, error) {
	if s.ai == nil {
		return nil, errors.New("readiness checks require the AI service")
	}
	if req.Manuscript == nil {
		return nil, errors.New("nothing to check")
	}
	if _, ok := depthInstructions[req.Depth]; !ok {
		req.Depth = DepthStandard
	}

	if req.LiveCheck && req.Guidelines == nil && s.guidelines != nil && req.Journal != "" {
		if j, ok := s.store.Get(req.Journal); ok && j.HomepageURL != "" {
			reqs, err := s.guidelines.Fetch(ctx, j.Name, j.HomepageURL)
			if err != nil {
				s.logger.Warn().Err(err).Str("journal", j.Name).Msg("live guidelines unavailable, using dataset metadata")
			} else {
				req.Guidelines = reqs
			}
		}
	}

	prompt := s.buildPrompt(req)
	raw, err := s.ai.Complete(ctx, prompt, 0.15)
	if err != nil {
		return nil, errors.Wrap(err, "readiness check call failed")
	}

	var report Report
	if err := json.Unmarshal([]byte(gemini.ExtractJSONObject(raw)), &report); err != nil {
		return nil, errors.Wrap(err, "readiness check returned invalid JSON")
	}
	return &report, nil
}

func (s *Service) buildPrompt(req Request) string {
	m := req.Manuscript

	present, missing := splitSections(m.DetectedSections)

	var sb strings.Builder
	sb.WriteString("You are a senior journal editor performing a pre-submission review.\n\n")
	sb.WriteString(depthInstructions[req.Depth])
	sb.WriteString("\n\nMANUSCRIPT PROFILE:\n")
	fmt.Fprintf(&sb, "- Title: %s\n", orUnknown(m.Title))
	fmt.Fprintf(&sb, "- Word count: %d\n", m.WordCount)
	fmt.Fprintf(&sb, "- Citation style: %s\n", orUnknown(m.CitationStyle))
	fmt.Fprintf(&sb, "- Reference count: %d\n", m.RefCount)
	fmt.Fprintf(&sb, "- Sections present: %s\n", listOrNone(present))
	fmt.Fprintf(&sb, "- Sections missing: %s\n", listOrNone(missing))
	if m.Keywords != "" {
		fmt.Fprintf(&sb, "- Keywords: %s\n", m.Keywords)
	}

	if m.Abstract != "" {
		fmt.Fprintf(&sb, "\nABSTRACT:\n%s\n", m.Abstract)
	}
	if m.TextPreview != "" {
		fmt.Fprintf(&sb, "\nMANUSCRIPT OPENING (truncated):\n%s\n", m.TextPreview)
	}

	sb.WriteString("\nTARGET JOURNAL:\n")
	sb.WriteString(s.journalContext(req.Journal))

	if req.Guidelines != nil {
		sb.WriteString("\nLIVE SUBMISSION GUIDELINES (scraped from the journal website):\n")
		sb.WriteString(formatGuidelines(req.Guidelines))
		sb.WriteString("Judge compliance against these live guidelines where they conflict with general conventions.\n")
	}

	sb.WriteString(`
TASK: Assess submission readiness. Score honestly; most unpolished drafts should land between 40 and 70.

Return ONLY valid JSON.
Format:
{
  "readiness_score": <0-100>,
  "overall_verdict": "<one sentence>",
  "abstract_feedback": { "score": <0-10>, "issues": ["..."], "suggestion": "..." },
  "structure_feedback": { "score": <0-10>, "missing_critical": ["..."], "missing_recommended": ["..."], "suggestion": "..." },
  "content_feedback": { "score": <0-10>, "strengths": ["..."], "weaknesses": ["..."], "suggestion": "..." },
  "compliance_checklist": [ { "item": "...", "status": "pass|warn|fail", "note": "..." } ],
  "action_items": ["..."],
  "journal_fit_assessment": "..."
}
`)
	return sb.String()
}

// journalContext renders dataset metadata for the target journal, or a
// generic banner when the journal is unknown.
func (s *Service) journalContext(name string) string {
	if name == "" {
		return "No specific journal selected. Assess against general conventions for peer-reviewed economics and business journals.\n"
	}
	j, ok := s.store.Get(name)
	if !ok {
		return fmt.Sprintf("Target journal: %s (not in the local database). Use your own knowledge of this journal's standards.\n", name)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "- Name: %s\n", j.Name)
	fmt.Fprintf(&sb, "- Field: %s\n", j.Field)
	if j.Scope != "" {
		fmt.Fprintf(&sb, "- Scope: %s\n", j.Scope)
	}
	fmt.Fprintf(&sb, "- SJR: %s\n", journal.FormatSJR(j.SJR))
	fmt.Fprintf(&sb, "- Acceptance rate: %s\n", journal.FormatAcceptanceRate(j.AcceptanceRate))
	fmt.Fprintf(&sb, "- Typical review time: %s\n", journal.FormatReviewTime(j.AvgReviewMonths))
	return sb.String()
}

func formatGuidelines(g *guidelines.Requirements) string {
	var sb strings.Builder
	for k, v := range g.WordLimits {
		if v != "" {
			fmt.Fprintf(&sb, "- Word limit (%s): %s\n", k, v)
		}
	}
	if g.CitationStyle != "" {
		fmt.Fprintf(&sb, "- Citation style: %s\n", g.CitationStyle)
	}
	if len(g.RequiredSections) > 0 {
		fmt.Fprintf(&sb, "- Required sections: %s\n", strings.Join(g.RequiredSections, ", "))
	}
	for k, v := range g.Formatting {
		if v != "" {
			fmt.Fprintf(&sb, "- Formatting (%s): %s\n", k, v)
		}
	}
	if g.CoverLetter != "" {
		fmt.Fprintf(&sb, "- Cover letter: %s\n", g.CoverLetter)
	}
	if g.ReviewType != "" {
		fmt.Fprintf(&sb, "- Review type: %s\n", g.ReviewType)
	}
	for _, rule := range g.CriticalRules {
		fmt.Fprintf(&sb, "- Critical rule: %s\n", rule)
	}
	return sb.String()
}

// splitSections partitions the detected-section map into present and
// missing lists, in the analyzer's display order.
func splitSections(detected map[string]bool) (present, missing []string) {
	for _, name := range manuscript.SectionNames {
		if detected[name] {
			present = append(present, name)
		} else {
			missing = append(missing, name)
		}
	}
	return present, missing
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "none detected"
	}
	return strings.Join(items, ", ")
}
