package checker

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chislo/manuscripthub/internal/guidelines"
	"github.com/chislo/manuscripthub/internal/journal"
	"github.com/chislo/manuscripthub/internal/manuscript"
)

type stubAI struct {
	response string
	prompts  []string
}

func (s *stubAI) Complete(ctx context.Context, prompt string, temperature float32) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.response, nil
}

func f(v float64) *float64 { return &v }

func testStore() *journal.Store {
	return journal.NewStore(map[string]*journal.Journal{
		"Journal of Development Economics": {
			Field:           "Economics",
			Scope:           "Development economics and policy",
			SJR:             f(3.2),
			AcceptanceRate:  f(8),
			AvgReviewMonths: f(4),
		},
	})
}

func testAnalysis() *manuscript.Analysis {
	return &manuscript.Analysis{
		WordCount:     4200,
		Title:         "Remittances and Rural Credit Access",
		Abstract:      "We study the effect of remittances on rural credit markets.",
		Keywords:      "remittances, credit, development",
		RefCount:      34,
		CitationStyle: "Author-Date (APA/Harvard)",
		DetectedSections: map[string]bool{
			"Introduction":     true,
			"Methodology/Data": true,
			"Results/Findings": true,
			"Discussion":       true,
		},
		TextPreview: "1. Introduction. Remittance flows to developing countries...",
	}
}

const reportJSON = `{
	"readiness_score": 62,
	"overall_verdict": "A solid draft that needs structural work before submission.",
	"abstract_feedback": {"score": 6, "issues": ["No stated contribution"], "suggestion": "State the contribution explicitly."},
	"structure_feedback": {"score": 5, "missing_critical": ["Conclusion"], "missing_recommended": ["Literature Review"], "suggestion": "Add a conclusion."},
	"content_feedback": {"score": 7, "strengths": ["Clear identification strategy"], "weaknesses": ["Thin robustness checks"], "suggestion": "Expand robustness."},
	"compliance_checklist": [{"item": "Citation style", "status": "pass", "note": "Author-date detected."}],
	"action_items": ["Write a conclusion section"],
	"journal_fit_assessment": "Reasonable fit for a development economics outlet."
}`

func newTestService(ai *stubAI) *Service {
	logger := zerolog.Nop()
	if ai == nil {
		return NewService(testStore(), nil, nil, &logger)
	}
	return NewService(testStore(), ai, nil, &logger)
}

func TestCheckParsesReport(t *testing.T) {
	ai := &stubAI{response: "Here you go:\n" + reportJSON}
	svc := newTestService(ai)

	report, err := svc.Check(context.Background(), Request{
		Manuscript: testAnalysis(),
		Journal:    "Journal of Development Economics",
		Depth:      DepthStandard,
	})
	require.NoError(t, err)

	assert.Equal(t, 62, report.ReadinessScore)
	assert.Equal(t, 6, report.AbstractFeedback.Score)
	assert.Equal(t, []string{"Conclusion"}, report.StructureFeedback.MissingCritical)
	require.Len(t, report.ComplianceChecklist, 1)
	assert.Equal(t, "pass", report.ComplianceChecklist[0].Status)
}

func TestCheckPromptContents(t *testing.T) {
	ai := &stubAI{response: reportJSON}
	svc := newTestService(ai)

	_, err := svc.Check(context.Background(), Request{
		Manuscript: testAnalysis(),
		Journal:    "Journal of Development Economics",
		Depth:      DepthDeep,
	})
	require.NoError(t, err)
	require.Len(t, ai.prompts, 1)
	prompt := ai.prompts[0]

	assert.Contains(t, prompt, "Remittances and Rural Credit Access")
	assert.Contains(t, prompt, "Word count: 4200")
	assert.Contains(t, prompt, "Reference count: 34")
	assert.Contains(t, prompt, depthInstructions[DepthDeep])
	assert.Contains(t, prompt, "Sections present: Introduction, Methodology/Data, Results/Findings, Discussion")
	assert.Contains(t, prompt, "Conclusion")
	assert.Contains(t, prompt, "Name: Journal of Development Economics")
	assert.Contains(t, prompt, "SJR: 3.20 (High Impact)")
	assert.Contains(t, prompt, "Acceptance rate: 8% (Very Selective)")
	assert.Contains(t, prompt, "Return ONLY valid JSON")
}

func TestCheckUnknownDepthDefaultsToStandard(t *testing.T) {
	ai := &stubAI{response: reportJSON}
	svc := newTestService(ai)

	_, err := svc.Check(context.Background(), Request{
		Manuscript: testAnalysis(),
		Depth:      "Exhaustive",
	})
	require.NoError(t, err)
	assert.Contains(t, ai.prompts[0], depthInstructions[DepthStandard])
}

func TestCheckUnknownJournal(t *testing.T) {
	ai := &stubAI{response: reportJSON}
	svc := newTestService(ai)

	_, err := svc.Check(context.Background(), Request{
		Manuscript: testAnalysis(),
		Journal:    "Annals of Improbable Research",
	})
	require.NoError(t, err)
	assert.Contains(t, ai.prompts[0], "not in the local database")
}

func TestCheckNoJournal(t *testing.T) {
	ai := &stubAI{response: reportJSON}
	svc := newTestService(ai)

	_, err := svc.Check(context.Background(), Request{Manuscript: testAnalysis()})
	require.NoError(t, err)
	assert.Contains(t, ai.prompts[0], "No specific journal selected")
}

func TestCheckIncludesGuidelines(t *testing.T) {
	ai := &stubAI{response: reportJSON}
	svc := newTestService(ai)

	_, err := svc.Check(context.Background(), Request{
		Manuscript: testAnalysis(),
		Journal:    "Journal of Development Economics",
		Guidelines: &guidelines.Requirements{
			WordLimits:    map[string]string{"abstract": "150"},
			CitationStyle: "APA",
			CoverLetter:   "Mandatory",
			CriticalRules: []string{"Manuscripts must be anonymized"},
		},
	})
	require.NoError(t, err)
	prompt := ai.prompts[0]

	assert.Contains(t, prompt, "LIVE SUBMISSION GUIDELINES")
	assert.Contains(t, prompt, "Word limit (abstract): 150")
	assert.Contains(t, prompt, "Citation style: APA")
	assert.Contains(t, prompt, "Cover letter: Mandatory")
	assert.Contains(t, prompt, "Critical rule: Manuscripts must be anonymized")
}

func TestCheckRequiresAI(t *testing.T) {
	svc := newTestService(nil)
	_, err := svc.Check(context.Background(), Request{Manuscript: testAnalysis()})
	assert.Error(t, err)
}

func TestCheckRequiresManuscript(t *testing.T) {
	svc := newTestService(&stubAI{response: reportJSON})
	_, err := svc.Check(context.Background(), Request{})
	assert.Error(t, err)
}

func TestCheckInvalidResponse(t *testing.T) {
	svc := newTestService(&stubAI{response: "sorry, I cannot help"})
	_, err := svc.Check(context.Background(), Request{Manuscript: testAnalysis()})
	assert.Error(t, err)
}

func TestSplitSections(t *testing.T) {
	present, missing := splitSections(map[string]bool{"Introduction": true, "Conclusion": true})
	assert.Equal(t, []string{"Introduction", "Conclusion"}, present)
	assert.Contains(t, missing, "Literature Review")
	assert.Contains(t, missing, "JEL Codes")
	assert.Len(t, missing, len(manuscript.SectionNames)-2)
}
