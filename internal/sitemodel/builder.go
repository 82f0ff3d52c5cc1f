// Package sitemodel aggregates classified canonical articles into the
// navigable structure the renderer consumes.
package sitemodel

import (
	"errors"
	"fmt"
	"sort"

	"newsstand/internal/models"
	"newsstand/internal/textutil"
)

// ErrEmptySite indicates that no articles reached the builder; downstream
// rendering requires at least one.
var ErrEmptySite = errors.New("site model requires at least one article")

// slugFingerprintRunes is how much of the fingerprint backs a slug when the
// title yields no slug material (e.g. fully non-Latin titles).
const slugFingerprintRunes = 12

// Builder produces SiteModels. The output is deterministic for a given
// input set: every ordering below uses explicit stable sort keys.
type Builder struct {
	relatedCount int
}

// NewBuilder creates a builder that attaches up to relatedCount related
// links per article.
func NewBuilder(relatedCount int) *Builder {
	return &Builder{relatedCount: relatedCount}
}

// Build assembles the site model: slug assignment, issue and category
// grouping, and navigation edges.
func (b *Builder) Build(canonicals []*models.CanonicalArticle) (*models.SiteModel, error) {
	if len(canonicals) == 0 {
		return nil, ErrEmptySite
	}

	ordered := make([]*models.CanonicalArticle, len(canonicals))
	copy(ordered, canonicals)
	sort.SliceStable(ordered, func(i, j int) bool {
		return primaryBefore(ordered[i], ordered[j])
	})

	model := &models.SiteModel{}

	taken := make(map[string]bool)

	for _, c := range ordered {
		model.Articles = append(model.Articles, &models.SiteArticle{
			CanonicalArticle: c,
			Slug:             assignSlug(c, taken),
		})
	}

	b.buildIssues(model)
	b.buildCategories(model)
	b.linkRelated(model)

	return model, nil
}

// assignSlug derives a deterministic unique slug from the primary title,
// falling back to the fingerprint, numbering collisions in canonical order.
func assignSlug(c *models.CanonicalArticle, taken map[string]bool) string {
	base := textutil.Slugify(c.Primary.Title)
	if base == "" {
		base = "article-" + c.Primary.Fingerprint[:slugFingerprintRunes]
	}

	slug := base
	for n := 2; taken[slug]; n++ {
		slug = fmt.Sprintf("%s-%d", base, n)
	}

	taken[slug] = true

	return slug
}

// buildIssues groups articles by originating issue and wires next/previous
// links by extraction position. Issues that only carry republished copies
// still get a group listing the cross-references.
func (b *Builder) buildIssues(model *models.SiteModel) {
	groups := make(map[string]*models.IssueGroup)

	ensure := func(id string, a models.Article) *models.IssueGroup {
		g, ok := groups[id]
		if !ok {
			g = &models.IssueGroup{
				ID:   id,
				Slug: textutil.Slugify(id),
				Date: a.IssueDate,
			}
			groups[id] = g
		}

		return g
	}

	for _, sa := range model.Articles {
		g := ensure(sa.Primary.IssueID, sa.Primary)
		g.Articles = append(g.Articles, sa)

		for _, dup := range sa.Duplicates {
			dg := ensure(dup.IssueID, dup)
			dg.Republished = append(dg.Republished, sa)
		}
	}

	for _, g := range groups {
		sort.SliceStable(g.Articles, func(i, j int) bool {
			return g.Articles[i].Primary.Position < g.Articles[j].Primary.Position
		})
		sort.SliceStable(g.Republished, func(i, j int) bool {
			return duplicatePosition(g.Republished[i], g.ID) < duplicatePosition(g.Republished[j], g.ID)
		})

		for i, sa := range g.Articles {
			if i > 0 {
				sa.PrevSlug = g.Articles[i-1].Slug
			}

			if i < len(g.Articles)-1 {
				sa.NextSlug = g.Articles[i+1].Slug
			}
		}

		model.Issues = append(model.Issues, g)
	}

	sort.SliceStable(model.Issues, func(i, j int) bool {
		a, b := model.Issues[i], model.Issues[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}

		return a.ID < b.ID
	})
}

// buildCategories groups articles by assigned category, ordered by
// descending relevance, then date, then slug.
func (b *Builder) buildCategories(model *models.SiteModel) {
	groups := make(map[string]*models.CategoryGroup)

	for _, sa := range model.Articles {
		name := sa.Class.Category

		g, ok := groups[name]
		if !ok {
			g = &models.CategoryGroup{
				Name: name,
				Slug: textutil.Slugify(name),
			}
			groups[name] = g
		}

		g.Articles = append(g.Articles, sa)
	}

	for _, g := range groups {
		sortByRelevance(g.Articles)
		model.Categories = append(model.Categories, g)
	}

	sort.SliceStable(model.Categories, func(i, j int) bool {
		return model.Categories[i].Name < model.Categories[j].Name
	})
}

// linkRelated attaches up to relatedCount same-category links per article,
// highest relevance first, excluding the article itself.
func (b *Builder) linkRelated(model *models.SiteModel) {
	for _, g := range model.Categories {
		for _, sa := range g.Articles {
			for _, other := range g.Articles {
				if other == sa {
					continue
				}

				sa.Related = append(sa.Related, other.Slug)
				if len(sa.Related) == b.relatedCount {
					break
				}
			}
		}
	}
}

func sortByRelevance(articles []*models.SiteArticle) {
	sort.SliceStable(articles, func(i, j int) bool {
		a, b := articles[i], articles[j]
		if a.Class.Score != b.Class.Score {
			return a.Class.Score > b.Class.Score
		}

		if !a.Primary.IssueDate.Equal(b.Primary.IssueDate) {
			return a.Primary.IssueDate.Before(b.Primary.IssueDate)
		}

		return a.Slug < b.Slug
	})
}

// duplicatePosition finds the extraction position a canonical's duplicate
// held inside the given issue.
func duplicatePosition(sa *models.SiteArticle, issueID string) int {
	for _, dup := range sa.Duplicates {
		if dup.IssueID == issueID {
			return dup.Position
		}
	}

	return 0
}

func primaryBefore(a, b *models.CanonicalArticle) bool {
	if !a.Primary.IssueDate.Equal(b.Primary.IssueDate) {
		return a.Primary.IssueDate.Before(b.Primary.IssueDate)
	}

	if a.Primary.IssueID != b.Primary.IssueID {
		return a.Primary.IssueID < b.Primary.IssueID
	}

	return a.Primary.Position < b.Primary.Position
}
