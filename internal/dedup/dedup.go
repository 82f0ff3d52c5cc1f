// Package dedup collapses republished articles into canonical instances.
package dedup

import (
	"errors"
	"sort"

	"newsstand/internal/models"
	"newsstand/internal/textutil"
)

// ErrNoArticles indicates an empty input set, which is a structural failure:
// the stages downstream of deduplication require at least one article.
var ErrNoArticles = errors.New("no articles to deduplicate")

// Deduplicator partitions articles into canonical instances. Two articles
// are duplicates when their fingerprints match exactly, or when their
// normalized titles match and their token overlap exceeds the threshold.
type Deduplicator struct {
	threshold float64
}

// New creates a deduplicator with the given similarity threshold in (0,1].
func New(threshold float64) *Deduplicator {
	return &Deduplicator{threshold: threshold}
}

// group is a set of equivalent articles under construction. members stays in
// canonical order: earliest issue date first.
type group struct {
	members []models.Article
	tokens  map[string]struct{}
	merged  bool
}

// Partition splits the full article set into canonical articles. Every input
// article lands in exactly one canonical article; the primary of each is the
// earliest-dated member, ties broken by issue id then extraction position.
func (d *Deduplicator) Partition(articles []models.Article) ([]*models.CanonicalArticle, error) {
	if len(articles) == 0 {
		return nil, ErrNoArticles
	}

	ordered := make([]models.Article, len(articles))
	copy(ordered, articles)
	sort.SliceStable(ordered, func(i, j int) bool {
		return articleBefore(ordered[i], ordered[j])
	})

	// Exact phase: one map lookup per article.
	byFingerprint := make(map[string]*group)

	var groups []*group

	for _, a := range ordered {
		if g, ok := byFingerprint[a.Fingerprint]; ok {
			g.members = append(g.members, a)

			continue
		}

		g := &group{members: []models.Article{a}}
		byFingerprint[a.Fingerprint] = g
		groups = append(groups, g)
	}

	// Fuzzy phase: compare only groups sharing a normalized title, which
	// bounds the pairwise work.
	byTitle := make(map[string][]*group)

	for _, g := range groups {
		key := textutil.NormalizeTitle(g.members[0].Title)
		byTitle[key] = append(byTitle[key], g)
	}

	for _, bucket := range byTitle {
		if len(bucket) < 2 {
			continue
		}

		for i := 0; i < len(bucket); i++ {
			if bucket[i].merged {
				continue
			}

			for j := i + 1; j < len(bucket); j++ {
				if bucket[j].merged {
					continue
				}

				if d.similar(bucket[i], bucket[j]) {
					bucket[i].members = append(bucket[i].members, bucket[j].members...)
					bucket[j].merged = true
				}
			}
		}
	}

	canonicals := make([]*models.CanonicalArticle, 0, len(groups))

	for _, g := range groups {
		if g.merged {
			continue
		}

		sort.SliceStable(g.members, func(i, j int) bool {
			return articleBefore(g.members[i], g.members[j])
		})

		canonicals = append(canonicals, &models.CanonicalArticle{
			Primary:    g.members[0],
			Duplicates: g.members[1:],
		})
	}

	return canonicals, nil
}

// similar reports whether two groups' primaries exceed the token-overlap
// threshold. Token sets are computed lazily and cached per group.
func (d *Deduplicator) similar(a, b *group) bool {
	if a.tokens == nil {
		a.tokens = textutil.TokenSet(a.members[0].Body)
	}

	if b.tokens == nil {
		b.tokens = textutil.TokenSet(b.members[0].Body)
	}

	return textutil.OverlapRatio(a.tokens, b.tokens) >= d.threshold
}

// articleBefore is the canonical ordering: publish date, then issue id, then
// extraction position.
func articleBefore(a, b models.Article) bool {
	if !a.IssueDate.Equal(b.IssueDate) {
		return a.IssueDate.Before(b.IssueDate)
	}

	if a.IssueID != b.IssueID {
		return a.IssueID < b.IssueID
	}

	return a.Position < b.Position
}
