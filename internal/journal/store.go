package journal

import (
	"encoding/json"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Store is the read-only journal dataset, loaded once at startup.
// Lookups fall back to a normalized name match so LLM-returned names
// with minor punctuation differences still resolve.
type Store struct {
	journals   map[string]*Journal
	normalized map[string]string // normalized name -> canonical name
	names      []string          // canonical names, sorted
}

// Load reads the metadata file (a JSON object keyed by journal name)
// and builds the store.
func Load(path string, logger *zerolog.Logger) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read journal metadata %s", path)
	}

	var raw map[string]*Journal
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrapf(err, "failed to parse journal metadata %s", path)
	}

	store := NewStore(raw)
	logger.Info().Int("journals", store.Len()).Str("file", path).Msg("journal dataset loaded")
	return store, nil
}

// NewStore builds a store from an already-parsed dataset.
func NewStore(raw map[string]*Journal) *Store {
	s := &Store{
		journals:   make(map[string]*Journal, len(raw)),
		normalized: make(map[string]string, len(raw)),
		names:      make([]string, 0, len(raw)),
	}
	for name, j := range raw {
		if j == nil {
			j = &Journal{}
		}
		j.Name = name
		s.journals[name] = j
		s.normalized[Normalize(name)] = name
		s.names = append(s.names, name)
	}
	sort.Strings(s.names)
	return s
}

// Len returns the number of journals in the dataset.
func (s *Store) Len() int {
	return len(s.journals)
}

// Names returns all journal names, sorted. When q is non-empty, only
// names containing it (case-insensitive) are returned.
func (s *Store) Names(q string) []string {
	if q == "" {
		out := make([]string, len(s.names))
		copy(out, s.names)
		return out
	}
	q = strings.ToLower(q)
	var out []string
	for _, name := range s.names {
		if strings.Contains(strings.ToLower(name), q) {
			out = append(out, name)
		}
	}
	return out
}

// Get returns the journal by exact name, falling back to a normalized
// match (case, "&" vs "and", commas, hyphens).
func (s *Store) Get(name string) (*Journal, bool) {
	if name == "" {
		return nil, false
	}
	if j, ok := s.journals[name]; ok {
		return j, true
	}
	if canonical, ok := s.normalized[Normalize(name)]; ok {
		return s.journals[canonical], true
	}
	return nil, false
}

// Select returns the journals that pass every hard filter.
func (s *Store) Select(f Filter) []*Journal {
	var out []*Journal
	for _, name := range s.names {
		j := s.journals[name]
		if f.Matches(j) {
			out = append(out, j)
		}
	}
	return out
}

// TopBySJR returns at most n of the given journals, ordered by SJR
// descending. The input slice is not modified.
func TopBySJR(journals []*Journal, n int) []*Journal {
	sorted := make([]*Journal, len(journals))
	copy(sorted, journals)
	sort.SliceStable(sorted, func(i, k int) bool {
		return sorted[i].SJRValue() > sorted[k].SJRValue()
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Normalize collapses the name variations seen in LLM output: case,
// "&" vs "and", commas, hyphens, and repeated whitespace.
func Normalize(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, "&", "and")
	name = strings.ReplaceAll(name, ",", "")
	name = strings.ReplaceAll(name, "-", " ")
	return strings.Join(strings.Fields(name), " ")
}
