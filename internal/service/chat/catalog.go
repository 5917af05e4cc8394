package chat

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/chat"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Catalog is an ordered list of intents with deterministic matching.
type Catalog struct {
	intents []chat.Intent
}

// DefaultCatalog parses the embedded catalog.yaml
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalog)
}

// ParseCatalog reads a YAML list of intents. Terms are lowercased; ids must be unique.
func ParseCatalog(data []byte) (*Catalog, error) {
	var intents []chat.Intent
	if err := yaml.Unmarshal(data, &intents); err != nil {
		return nil, fmt.Errorf("%w: %v", chat.ErrInvalidCatalog, err)
	}

	seen := make(map[string]bool, len(intents))
	for i := range intents {
		intent := &intents[i]
		if intent.ID == "" || intent.Question == "" {
			return nil, fmt.Errorf("%w: intent %d needs id and question", chat.ErrInvalidCatalog, i)
		}
		if seen[intent.ID] {
			return nil, fmt.Errorf("%w: duplicate intent %q", chat.ErrInvalidCatalog, intent.ID)
		}
		seen[intent.ID] = true

		for g, group := range intent.Keywords {
			if len(group) == 0 {
				return nil, fmt.Errorf("%w: intent %q has an empty keyword group", chat.ErrInvalidCatalog, intent.ID)
			}
			for t, term := range group {
				intent.Keywords[g][t] = strings.ToLower(strings.TrimSpace(term))
			}
		}
	}
	return &Catalog{intents: intents}, nil
}

// Intents returns the catalog in file order
func (c *Catalog) Intents() []chat.Intent {
	return append([]chat.Intent{}, c.intents...)
}

// Samples returns the questions suggested when nothing matches
func (c *Catalog) Samples() []string {
	var samples []string
	for _, intent := range c.intents {
		if intent.Sample {
			samples = append(samples, intent.Question)
		}
	}
	return samples
}

// score ranks a keyword-group match; higher wins
type score struct {
	terms    int
	length   int
	priority int
}

func (s score) beats(o score) bool {
	if s.terms != o.terms {
		return s.terms > o.terms
	}
	if s.length != o.length {
		return s.length > o.length
	}
	return s.priority < o.priority
}

// Match returns the best intent for question. Overlapping keywords are
// resolved by term count, then matched length, then priority, then file order.
func (c *Catalog) Match(question string) (chat.Intent, bool) {
	normalized := Normalize(question)

	var (
		best      chat.Intent
		bestScore score
		found     bool
	)
	for _, intent := range c.intents {
		s, ok := matchIntent(normalized, intent)
		if !ok {
			continue
		}
		if !found || s.beats(bestScore) {
			best, bestScore, found = intent, s, true
		}
	}
	return best, found
}

func matchIntent(question string, intent chat.Intent) (score, bool) {
	var (
		best  score
		found bool
	)
	for _, group := range intent.Keywords {
		s := score{priority: intent.Priority}
		matched := true
		for _, term := range group {
			if !strings.Contains(question, term) {
				matched = false
				break
			}
			s.terms++
			s.length += len(term)
		}
		if matched && (!found || s.beats(best)) {
			best, found = s, true
		}
	}
	return best, found
}

// Normalize lowercases the question and collapses whitespace
func Normalize(question string) string {
	return strings.Join(strings.Fields(strings.ToLower(question)), " ")
}
