// Package classify assigns categories and relevance scores to canonical
// articles using section hints and indicator-term matching.
package classify

import (
	"strings"

	"github.com/cloudflare/ahocorasick"

	"newsstand/internal/config"
	"newsstand/internal/models"
	"newsstand/internal/textutil"
)

// lengthDampTokens is the body length, in word tokens, at which the length
// damp stops reducing scores.
const lengthDampTokens = 200

// Classifier resolves a category from the section hint when one matches,
// and otherwise scans title and body for category indicator terms in a
// single Aho-Corasick pass per category set.
type Classifier struct {
	categories []category
	aliases    map[string]string
}

type category struct {
	name    string
	matcher *ahocorasick.Matcher
	terms   []string
}

// New builds a classifier from the configured category set. Category order
// is priority order: it decides ties deterministically.
func New(categories []config.CategoryConfig) *Classifier {
	c := &Classifier{
		aliases: make(map[string]string),
	}

	for _, cat := range categories {
		c.aliases[textutil.NormalizeTitle(cat.Name)] = cat.Name
		for _, alias := range cat.Aliases {
			c.aliases[textutil.NormalizeTitle(alias)] = cat.Name
		}

		terms := make([]string, 0, len(cat.Terms))
		for _, term := range cat.Terms {
			if normalized := textutil.NormalizeTitle(term); normalized != "" {
				// Pad with spaces so the automaton only matches whole
				// words in the padded text.
				terms = append(terms, " "+normalized+" ")
			}
		}

		c.categories = append(c.categories, category{
			name:    cat.Name,
			matcher: ahocorasick.NewStringMatcher(terms),
			terms:   terms,
		})
	}

	return c
}

// Classify assigns a category and relevance score to the article. It never
// fails: an article that cannot be classified with confidence receives
// CategoryUnknown with score 0.
func (c *Classifier) Classify(a models.Article) models.Classification {
	text := " " + textutil.NormalizeTitle(a.Title+" "+a.Body) + " "
	damp := lengthDamp(a.Body)

	// A section hint that names a category (or one of its aliases) wins
	// outright; indicator terms then only refine the score.
	if hint, ok := c.aliases[textutil.NormalizeTitle(a.SectionHint)]; ok {
		hits := c.distinctHits(hint, text)

		return models.Classification{
			Category: hint,
			Score:    clamp(float64(hits+1) / float64(hits+4) * damp),
		}
	}

	bestHits := 0
	bestName := ""

	for _, cat := range c.categories {
		hits := countDistinct(cat.matcher, text)
		if hits > bestHits {
			bestHits = hits
			bestName = cat.name
		}
	}

	if bestHits == 0 {
		return models.Classification{Category: models.CategoryUnknown, Score: 0.0}
	}

	return models.Classification{
		Category: bestName,
		Score:    clamp(float64(bestHits) / float64(bestHits+3) * damp),
	}
}

// distinctHits counts distinct indicator terms of the named category found
// in the padded text.
func (c *Classifier) distinctHits(name, text string) int {
	for _, cat := range c.categories {
		if cat.name == name {
			return countDistinct(cat.matcher, text)
		}
	}

	return 0
}

func countDistinct(m *ahocorasick.Matcher, text string) int {
	if m == nil {
		return 0
	}

	// Matcher.Match reports each pattern at most once.
	return len(m.Match([]byte(text)))
}

// lengthDamp scales scores down for very short bodies; sub-paragraph
// fragments should not outrank full articles.
func lengthDamp(body string) float64 {
	tokens := len(strings.Fields(body))
	if tokens >= lengthDampTokens {
		return 1.0
	}

	return float64(tokens) / float64(lengthDampTokens)
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
