// Package manuscript extracts text from uploaded papers (PDF, DOCX,
// plain text) and derives the structural facts the checker feeds to
// the AI reviewer: word count, detected sections, abstract, keywords,
// citation style, and reference count.
package manuscript

import (
	"regexp"
	"strings"
)

// Caps applied before the text reaches a prompt.
const (
	maxAbstractLen = 2000
	maxPreviewLen  = 5000
)

// citationThreshold is the minimum pattern count before a citation
// style is declared.
const citationThreshold = 5

// Analysis is the structural summary of one manuscript.
type Analysis struct {
	WordCount        int             `json:"word_count"`
	Title            string          `json:"title"`
	Abstract         string          `json:"abstract"`
	Keywords         string          `json:"keywords"`
	RefCount         int             `json:"ref_count"`
	DetectedSections map[string]bool `json:"detected_sections"`
	CitationStyle    string          `json:"citation_style"`
	TextPreview      string          `json:"text_preview"`
}

// SectionNames lists the academic sections the analyzer looks for, in
// display order.
var SectionNames = []string{
	"Introduction",
	"Literature Review",
	"Methodology/Data",
	"Results/Findings",
	"Discussion",
	"Conclusion",
	"JEL Codes",
	"Data Availability Statement",
	"Ethics Statement",
	"Conflict of Interest Statement",
}

var sectionPatterns = map[string]*regexp.Regexp{
	"Introduction":                   regexp.MustCompile(`(?i)^\s*\d*\.?\s*introduction`),
	"Literature Review":              regexp.MustCompile(`(?i)^\s*\d*\.?\s*(literature\s+review|related\s+(work|literature)|background)`),
	"Methodology/Data":               regexp.MustCompile(`(?i)^\s*\d*\.?\s*(method|data|empirical\s+strategy|research\s+design|model)`),
	"Results/Findings":               regexp.MustCompile(`(?i)^\s*\d*\.?\s*(results?|findings?|empirical\s+results?)`),
	"Discussion":                     regexp.MustCompile(`(?i)^\s*\d*\.?\s*discussion`),
	"Conclusion":                     regexp.MustCompile(`(?i)^\s*\d*\.?\s*conclusions?`),
	"JEL Codes":                      regexp.MustCompile(`(?i)(jel\s+(codes?|classification))`),
	"Data Availability Statement":    regexp.MustCompile(`(?i)(data\s+availability|data\s+access)`),
	"Ethics Statement":               regexp.MustCompile(`(?i)(ethics?\s+(statement|approval|declaration))`),
	"Conflict of Interest Statement": regexp.MustCompile(`(?i)(conflict\s+of\s+interest|competing\s+interests?|declaration\s+of\s+interest)`),
}

var (
	abstractRe   = regexp.MustCompile(`(?is)(?:^|\n)\s*abstract\s*[:\n](.+?)(?:\n\s*(?:\d+\.?\s*)?(?:introduction|keywords?|jel)|\n\s*\n)`)
	keywordsRe   = regexp.MustCompile(`(?i)keywords?\s*[:\-]\s*(.+?)(?:\n|$)`)
	authorDateRe = regexp.MustCompile(`\([A-Za-z\s]+,\s*[12][0-9]{3}\)`)
	numericalRe  = regexp.MustCompile(`\[\d+(?:,\s*\d+)*\]`)
	refHeadingRe = regexp.MustCompile(`(?i)^\s*(?:references?|bibliography)\s*$`)
)

// Analyze derives the structural summary from extracted full text.
func Analyze(fullText string) *Analysis {
	lines := strings.Split(fullText, "\n")

	detected := make(map[string]bool, len(SectionNames))
	for _, name := range SectionNames {
		pattern := sectionPatterns[name]
		detected[name] = false
		for _, line := range lines {
			if pattern.MatchString(strings.TrimSpace(line)) {
				detected[name] = true
				break
			}
		}
	}

	abstract := extractAbstract(fullText, lines)
	if len(abstract) > maxAbstractLen {
		abstract = abstract[:maxAbstractLen]
	}

	keywords := ""
	if m := keywordsRe.FindStringSubmatch(fullText); m != nil {
		keywords = strings.TrimSpace(m[1])
	}

	authorDateCount := len(authorDateRe.FindAllString(fullText, -1))
	numericalCount := len(numericalRe.FindAllString(fullText, -1))

	style := "Unknown"
	switch {
	case authorDateCount > numericalCount && authorDateCount > citationThreshold:
		style = "Author-Date (APA/Harvard)"
	case numericalCount > authorDateCount && numericalCount > citationThreshold:
		style = "Numerical (Vancouver/IEEE)"
	}

	refCount := countReferences(lines)
	if refCount == 0 {
		refCount = max(authorDateCount, numericalCount)
	}

	preview := fullText
	if len(preview) > maxPreviewLen {
		preview = preview[:maxPreviewLen]
	}

	return &Analysis{
		WordCount:        len(strings.Fields(fullText)),
		Title:            guessTitle(lines),
		Abstract:         abstract,
		Keywords:         keywords,
		RefCount:         refCount,
		DetectedSections: detected,
		CitationStyle:    style,
		TextPreview:      preview,
	}
}

// extractAbstract looks for a labeled abstract block and falls back to
// the first dense paragraph near the top of the document.
func extractAbstract(fullText string, lines []string) string {
	if m := abstractRe.FindStringSubmatch(fullText); m != nil {
		return strings.TrimSpace(m[1])
	}
	if len(lines) > 5 {
		limit := min(len(lines), 30)
		for _, line := range lines[:limit] {
			if len(strings.Fields(line)) > 40 {
				return strings.TrimSpace(line)
			}
		}
	}
	return ""
}

// countReferences counts plausible entry lines after a References or
// Bibliography heading.
func countReferences(lines []string) int {
	count := 0
	inRefs := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if refHeadingRe.MatchString(trimmed) {
			inRefs = true
			continue
		}
		if inRefs && len(trimmed) > 20 {
			count++
		}
	}
	return count
}

// guessTitle picks the first early line that looks like a title: more
// than 5 characters, at most 25 words.
func guessTitle(lines []string) string {
	limit := min(len(lines), 10)
	for _, line := range lines[:limit] {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) > 5 && len(strings.Fields(trimmed)) <= 25 {
			return trimmed
		}
	}
	return ""
}
