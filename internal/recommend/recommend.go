// Package recommend implements the journal recommendation engine: hard
// filtering over the curated dataset, LLM-backed ranking when a Gemini
// key is configured, and a local keyword scorer otherwise.
package recommend

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/chislo/manuscripthub/internal/gemini"
	"github.com/chislo/manuscripthub/internal/journal"
)

// Fields offered by the finder. FieldAuto asks the model to infer one.
const (
	FieldAuto  = "Select for me"
	FieldOther = "Other"
)

// Fields is the fixed list shown in the finder UI.
var Fields = []string{
	"Business/Management",
	"Economics",
	"Finance",
	"Law",
	"Medicine & Health",
	"STEM (Science/Tech)",
	"Social Sciences",
	"Arts & Humanities",
	"Psychology",
	FieldOther,
}

// datasetFields are the fields the curated dataset actually covers.
// Other fields run in knowledge-only mode: the model recommends from
// its own training data instead of the candidate list.
var datasetFields = map[string]bool{
	"Economics":           true,
	"Law":                 true,
	"Finance":             true,
	"Business/Management": true,
}

// candidateLimit caps how many dataset journals are put in front of
// the model, to keep the prompt small.
const candidateLimit = 80

// Request is a recommendation query after validation.
type Request struct {
	Title       string
	Abstract    string
	FieldChoice string
	Weights     Weights
	Filter      journal.Filter
}

// Recommendation is one ranked result. The score fields are 0..1.
type Recommendation struct {
	Journal         string  `json:"journal"`
	Rank            int     `json:"rank"`
	Reason          string  `json:"reason"`
	FitScore        float64 `json:"fit_score"`
	PrestigeScore   float64 `json:"prestige_score"`
	SpeedScore      float64 `json:"speed_score"`
	AcceptanceScore float64 `json:"acceptance_score"`
	Field           string  `json:"field"`
	OAStatus        string  `json:"oa_status,omitempty"`
	SubFee          string  `json:"sub_fee,omitempty"`
	URL             string  `json:"url,omitempty"`
	Assessment      string  `json:"assessment,omitempty"`
}

// Engine runs recommendation queries. ai may be nil, in which case
// every query uses the local scorer.
type Engine struct {
	store  *journal.Store
	ai     gemini.Completer
	cache  *cache.Cache
	logger *zerolog.Logger
}

// NewEngine builds an engine with a 15-minute result cache.
func NewEngine(store *journal.Store, ai gemini.Completer, logger *zerolog.Logger) *Engine {
	return &Engine{
		store:  store,
		ai:     ai,
		cache:  cache.New(15*time.Minute, 5*time.Minute),
		logger: logger,
	}
}

// Recommend returns ranked journal recommendations for the request.
// Identical requests within the cache TTL return the cached ranking.
func (e *Engine) Recommend(ctx context.Context, req Request) ([]Recommendation, error) {
	key := req.fingerprint()
	if cached, ok := e.cache.Get(key); ok {
		return cached.([]Recommendation), nil
	}

	field := req.FieldChoice
	if field == FieldAuto && e.ai != nil {
		field = e.inferField(ctx, req.Title, req.Abstract)
	}
	if field == FieldAuto {
		field = FieldOther
	}

	// The loose field filter only applies for concrete fields.
	filter := req.Filter
	if field != FieldOther {
		filter.Field = firstFieldToken(field)
	}

	var recs []Recommendation
	var err error
	if e.ai != nil {
		recs, err = e.recommendWithAI(ctx, req, field, filter)
	} else {
		recs = e.recommendLocal(req, filter)
	}
	if err != nil {
		return nil, err
	}

	e.annotate(recs)
	e.cache.Set(key, recs, cache.DefaultExpiration)
	return recs, nil
}

// recommendWithAI filters the dataset, hands the top candidates to the
// model, and parses the ranked JSON it returns.
func (e *Engine) recommendWithAI(ctx context.Context, req Request, field string, filter journal.Filter) ([]Recommendation, error) {
	useDataset := datasetFields[field]

	var candidates []*journal.Journal
	if useDataset {
		candidates = journal.TopBySJR(e.store.Select(filter), candidateLimit)
		if len(candidates) == 0 {
			return []Recommendation{}, nil
		}
	}

	prompt := buildRecommendPrompt(req, field, candidates)

	raw, err := e.ai.Complete(ctx, prompt, 0.1)
	if err != nil {
		return nil, fmt.Errorf("recommendation call failed: %w", err)
	}

	var recs []Recommendation
	if err := gemini.DecodeArrayWithRepair(ctx, e.ai, raw, &recs, recommendationExample, 2); err != nil {
		return nil, err
	}

	// Re-rank defensively: the model occasionally repeats or skips
	// rank numbers.
	sort.SliceStable(recs, func(i, k int) bool { return recs[i].Rank < recs[k].Rank })
	for i := range recs {
		recs[i].Rank = i + 1
	}
	return recs, nil
}

// inferField asks the model to pick one of the fixed fields for the
// paper. Anything unexpected maps to Other.
func (e *Engine) inferField(ctx context.Context, title, abstract string) string {
	prompt := fmt.Sprintf(
		"From these fields: %s, infer the best one for this paper. Return only the field name.\n\nTitle: %s\nAbstract: %s",
		strings.Join(Fields, ", "), title, abstract,
	)
	result, err := e.ai.Complete(ctx, prompt, 0.1)
	if err != nil {
		e.logger.Warn().Err(err).Msg("field inference failed, defaulting to Other")
		return FieldOther
	}
	result = strings.TrimSpace(result)
	for _, f := range Fields {
		if result == f {
			return f
		}
	}
	return FieldOther
}

// annotate backfills metadata-derived fields on each recommendation.
func (e *Engine) annotate(recs []Recommendation) {
	for i := range recs {
		recs[i].Assessment = journal.FitLabel(recs[i].FitScore)
		meta, ok := e.store.Get(recs[i].Journal)
		if !ok {
			continue
		}
		if meta.HomepageURL != "" {
			recs[i].URL = meta.HomepageURL
		}
		if recs[i].Field == "" {
			recs[i].Field = meta.Field
		}
		if meta.OpenAccess {
			recs[i].OAStatus = "Open Access"
		} else {
			recs[i].OAStatus = "Subscription"
		}
		if meta.SubmissionFee {
			recs[i].SubFee = "Yes"
		} else {
			recs[i].SubFee = "No"
		}
	}
}

// fingerprint produces a stable cache key for the request.
func (r Request) fingerprint() string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s|%+v|%+v", r.Title, r.Abstract, r.FieldChoice, r.Weights, r.Filter)
	return hex.EncodeToString(h.Sum(nil))
}

// firstFieldToken reduces a UI field like "Business/Management" to the
// token used for loose matching against dataset fields.
func firstFieldToken(field string) string {
	if i := strings.IndexAny(field, "/("); i > 0 {
		field = field[:i]
	}
	return strings.TrimSpace(field)
}

// --- local fallback scorer ---------------------------------------------

// stopWords excluded from the keyword overlap, plus filler words common
// in abstracts.
var stopWords = map[string]bool{
	"the": true, "and": true, "of": true, "in": true, "to": true,
	"a": true, "is": true, "for": true, "with": true, "on": true,
	"that": true, "by": true, "this": true, "an": true, "are": true,
	"from": true, "as": true, "at": true, "be": true, "or": true,
	"study": true, "paper": true, "research": true, "results": true,
	"analysis": true, "data": true, "using": true, "based": true,
	"model": true,
}

var wordRe = regexp.MustCompile(`\w+`)

// recommendLocal ranks filtered journals without the AI service:
// keyword overlap for fit, SJR for prestige, review months for speed,
// acceptance rate as-is, combined by the normalized weights.
func (e *Engine) recommendLocal(req Request, filter journal.Filter) []Recommendation {
	weights := req.Weights.Normalized()
	queryTokens := tokenize(req.Title + " " + req.Abstract)

	type scored struct {
		rec   Recommendation
		total float64
	}

	var ranked []scored
	for _, j := range e.store.Select(filter) {
		scopeTokens := tokenize(j.Scope + " " + j.Discipline + " " + j.Field)

		overlap := 0
		for t := range queryTokens {
			if scopeTokens[t] {
				overlap++
			}
		}
		fit := float64(overlap) / 5.0
		if fit > 1 {
			fit = 1
		}

		prestige := j.SJRValue() / 4.0
		if prestige > 1 {
			prestige = 1
		}

		months := 12.0
		if j.AvgReviewMonths != nil && *j.AvgReviewMonths > 0 {
			months = *j.AvgReviewMonths
		}
		speed := 1 - months/12.0
		if speed < 0 {
			speed = 0
		}

		accept := 0.1
		if j.AcceptanceRate != nil {
			accept = *j.AcceptanceRate
			// The dataset stores acceptance as a percentage.
			if accept > 1 {
				accept /= 100
			}
		}

		total := fit*weights.Fit + prestige*weights.Prestige + speed*weights.Speed + accept*weights.Accept

		ranked = append(ranked, scored{
			rec: Recommendation{
				Journal:         j.Name,
				Reason:          fmt.Sprintf("Matches keywords in %s. SJR: %s, Review: %s.", j.Field, journal.FormatSJR(j.SJR), journal.FormatReviewTime(j.AvgReviewMonths)),
				FitScore:        fit,
				PrestigeScore:   prestige,
				SpeedScore:      speed,
				AcceptanceScore: accept,
				Field:           j.Field,
			},
			total: total,
		})
	}

	sort.SliceStable(ranked, func(i, k int) bool { return ranked[i].total > ranked[k].total })

	recs := make([]Recommendation, len(ranked))
	for i, s := range ranked {
		recs[i] = s.rec
		recs[i].Rank = i + 1
	}
	return recs
}

// tokenize splits text into the lowercase word set used for overlap
// scoring: stop words and short tokens removed.
func tokenize(text string) map[string]bool {
	tokens := map[string]bool{}
	for _, w := range wordRe.FindAllString(strings.ToLower(text), -1) {
		if len(w) > 3 && !stopWords[w] {
			tokens[w] = true
		}
	}
	return tokens
}
