package models

import "time"

// SiteArticle is a canonical article placed in the site model, carrying its
// slug and navigation edges. Slugs are deterministic functions of titles so
// re-running the pipeline on unchanged input reproduces identical paths.
type SiteArticle struct {
	*CanonicalArticle

	Slug     string
	PrevSlug string
	NextSlug string
	Related  []string
}

// IssueGroup collects the site articles that first appeared in one issue,
// in extraction-position order.
type IssueGroup struct {
	ID       string
	Slug     string
	Date     time.Time
	Articles []*SiteArticle
	// Republished lists articles canonicalized under an earlier issue that
	// this issue carried again.
	Republished []*SiteArticle
}

// CategoryGroup collects the site articles assigned to one category, in
// descending relevance order.
type CategoryGroup struct {
	Name     string
	Slug     string
	Articles []*SiteArticle
}

// SiteModel is the navigable aggregate handed to the renderer. It is built
// once per run and never modified afterwards.
type SiteModel struct {
	Articles   []*SiteArticle
	Issues     []*IssueGroup
	Categories []*CategoryGroup
}

// Article returns the site article with the given slug, or nil.
func (m *SiteModel) Article(slug string) *SiteArticle {
	for _, a := range m.Articles {
		if a.Slug == slug {
			return a
		}
	}

	return nil
}
