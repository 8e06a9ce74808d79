// Package guidelines locates and parses "Information for Authors"
// pages on journal websites, then uses the AI service to distill the
// raw page into a structured requirements matrix.
package guidelines

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/net/html"

	"github.com/chislo/manuscripthub/internal/gemini"
)

// linkKeywords mark anchors that plausibly lead to submission
// guidelines, checked against both link text and href.
var linkKeywords = []string{
	"submission", "author", "guideline", "instruct", "prepare", "manuscript", "policy",
}

// maxGuidelineChars caps how much scraped text reaches the extraction
// prompt.
const maxGuidelineChars = 6000

// Requirements is the structured matrix extracted from a guidelines
// page.
type Requirements struct {
	WordLimits       map[string]string `json:"word_limits"`
	CitationStyle    string            `json:"citation_style"`
	RequiredSections []string          `json:"required_sections"`
	Formatting       map[string]string `json:"formatting"`
	CoverLetter      string            `json:"cover_letter"`
	ReviewType       string            `json:"review_type"`
	CriticalRules    []string          `json:"critical_rules"`
}

// Fetcher scrapes journal sites for live submission requirements.
// Results are cached per journal so repeated readiness checks against
// the same journal do not re-crawl.
type Fetcher struct {
	client *http.Client
	ai     gemini.Completer
	cache  *cache.Cache
	logger *zerolog.Logger
}

// NewFetcher builds a Fetcher. ttl bounds how long scraped
// requirements stay cached.
func NewFetcher(ai gemini.Completer, timeout, ttl time.Duration, logger *zerolog.Logger) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		ai:     ai,
		cache:  cache.New(ttl, 10*time.Minute),
		logger: logger,
	}
}

// FindGuidelinesURL scans the journal homepage for a link that looks
// like submission guidelines. It returns the homepage itself when no
// better candidate is found, and "" when there is no homepage to scan.
func (f *Fetcher) FindGuidelinesURL(ctx context.Context, homepage string) string {
	if !strings.HasPrefix(homepage, "http") {
		return ""
	}

	body, err := f.fetch(ctx, homepage)
	if err != nil {
		f.logger.Warn().Err(err).Str("homepage", homepage).Msg("could not scan homepage for guidelines link")
		return homepage
	}

	if link := findGuidelinesLink(body, homepage); link != "" {
		return link
	}
	return homepage
}

// Fetch returns the requirements matrix for a journal, scraping and
// extracting when the cache has nothing fresh.
func (f *Fetcher) Fetch(ctx context.Context, journalName, homepage string) (*Requirements, error) {
	if cached, ok := f.cache.Get(journalName); ok {
		return cached.(*Requirements), nil
	}
	if f.ai == nil {
		return nil, errors.New("guidelines extraction requires the AI service")
	}

	guidelinesURL := f.FindGuidelinesURL(ctx, homepage)
	if guidelinesURL == "" {
		return nil, errors.Errorf("no homepage known for %s", journalName)
	}

	body, err := f.fetch(ctx, guidelinesURL)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read guidelines page %s", guidelinesURL)
	}

	text := PageText(body)
	if len(text) > maxGuidelineChars {
		text = text[:maxGuidelineChars]
	}

	reqs, err := f.extract(ctx, text, journalName)
	if err != nil {
		return nil, err
	}

	f.cache.Set(journalName, reqs, cache.DefaultExpiration)
	return reqs, nil
}

// extract asks the model for the structured requirements matrix.
func (f *Fetcher) extract(ctx context.Context, text, journalName string) (*Requirements, error) {
	prompt := fmt.Sprintf(`You are an expert editorial assistant. Extract specific submission requirements for the journal '%s' from the following text excerpt.

TEXT:
---
%s
---

EXTRACT THE FOLLOWING (if mentioned):
1. Word count limits (Abstract, Main Content, Total).
2. Citation Style (APA, Harvard, Vancouver, Chicago, etc.).
3. Required sections (e.g., JEL codes, Disclosure Statement, Data Availability).
4. Formatting (Font size, Spacing, Margins).
5. Cover Letter requirement (Mandatory, Optional, Not required).
6. Review type (Double-blind, Single-blind, Open).
7. Any other critical "desk-rejection" criteria.

Return ONLY valid JSON.
Format:
{
  "word_limits": { "abstract": "...", "main": "...", "total": "..." },
  "citation_style": "...",
  "required_sections": ["...", "..."],
  "formatting": { "font": "...", "spacing": "...", "margins": "..." },
  "cover_letter": "...",
  "review_type": "...",
  "critical_rules": ["...", "..."]
}
`, journalName, text)

	raw, err := f.ai.Complete(ctx, prompt, 0.1)
	if err != nil {
		return nil, errors.Wrap(err, "requirements extraction call failed")
	}

	var reqs Requirements
	if err := json.Unmarshal([]byte(gemini.ExtractJSONObject(raw)), &reqs); err != nil {
		return nil, errors.Wrap(err, "requirements extraction returned invalid JSON")
	}
	return &reqs, nil
}

func (f *Fetcher) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, 4<<20))
}

// findGuidelinesLink returns the first anchor whose text or href hits
// a guidelines keyword, resolved against base.
func findGuidelinesLink(body []byte, base string) string {
	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return ""
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return ""
	}

	var result string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if result != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "a" {
			href := attr(n, "href")
			if href != "" && matchesKeyword(nodeText(n), href) {
				if target, err := baseURL.Parse(href); err == nil {
					result = target.String()
					return
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return result
}

func matchesKeyword(text, href string) bool {
	text = strings.ToLower(text)
	href = strings.ToLower(href)
	for _, kw := range linkKeywords {
		if strings.Contains(text, kw) || strings.Contains(href, kw) {
			return true
		}
	}
	return false
}

// PageText flattens an HTML document into whitespace-collapsed text,
// skipping script and style content.
func PageText(body []byte) string {
	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return ""
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return strings.Join(strings.Fields(sb.String()), " ")
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
