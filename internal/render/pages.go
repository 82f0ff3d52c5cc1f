package render

import (
	"newsstand/internal/models"
	"newsstand/internal/textutil"
)

// Page view data. Link URLs are resolved here, relative to the directory
// the page lives in, so templates stay free of path logic.

type pageLink struct {
	Title string
	URL   string
}

type articlePage struct {
	Title       string
	Body        string
	Category    string
	CategoryURL string
	Score       float64
	IssueID     string
	IssueURL    string
	Date        string
	Prev        *pageLink
	Next        *pageLink
	Related     []pageLink
	Republished []string
}

type issueEntry struct {
	Title    string
	URL      string
	Category string
}

type repubEntry struct {
	Title  string
	URL    string
	Origin string
}

type issuePage struct {
	ID          string
	Date        string
	Articles    []issueEntry
	Republished []repubEntry
}

type categoryEntry struct {
	Title   string
	URL     string
	Score   float64
	IssueID string
}

type categoryPage struct {
	Name     string
	Articles []categoryEntry
}

type indexIssue struct {
	ID    string
	URL   string
	Date  string
	Count int
}

type indexCategory struct {
	Name  string
	URL   string
	Count int
}

type indexPage struct {
	Issues     []indexIssue
	Categories []indexCategory
}

func articlePageData(sa *models.SiteArticle, bySlug map[string]*models.SiteArticle) articlePage {
	page := articlePage{
		Title:       sa.Primary.Title,
		Body:        sa.Primary.Body,
		Category:    sa.Class.Category,
		CategoryURL: "../categories/" + textutil.Slugify(sa.Class.Category) + ".html",
		Score:       sa.Class.Score,
		IssueID:     sa.Primary.IssueID,
		IssueURL:    "../issues/" + textutil.Slugify(sa.Primary.IssueID) + ".html",
		Date:        fmtDate(sa.Primary.IssueDate),
		Republished: sa.RepublishedIn(),
	}

	if prev, ok := bySlug[sa.PrevSlug]; ok && sa.PrevSlug != "" {
		page.Prev = &pageLink{Title: prev.Primary.Title, URL: prev.Slug + ".html"}
	}

	if next, ok := bySlug[sa.NextSlug]; ok && sa.NextSlug != "" {
		page.Next = &pageLink{Title: next.Primary.Title, URL: next.Slug + ".html"}
	}

	for _, slug := range sa.Related {
		if rel, ok := bySlug[slug]; ok {
			page.Related = append(page.Related, pageLink{
				Title: rel.Primary.Title,
				URL:   rel.Slug + ".html",
			})
		}
	}

	return page
}

func issuePageData(g *models.IssueGroup) issuePage {
	page := issuePage{
		ID:   g.ID,
		Date: fmtDate(g.Date),
	}

	for _, sa := range g.Articles {
		page.Articles = append(page.Articles, issueEntry{
			Title:    sa.Primary.Title,
			URL:      "../articles/" + sa.Slug + ".html",
			Category: sa.Class.Category,
		})
	}

	for _, sa := range g.Republished {
		page.Republished = append(page.Republished, repubEntry{
			Title:  sa.Primary.Title,
			URL:    "../articles/" + sa.Slug + ".html",
			Origin: sa.Primary.IssueID,
		})
	}

	return page
}

func categoryPageData(g *models.CategoryGroup) categoryPage {
	page := categoryPage{Name: g.Name}

	for _, sa := range g.Articles {
		page.Articles = append(page.Articles, categoryEntry{
			Title:   sa.Primary.Title,
			URL:     "../articles/" + sa.Slug + ".html",
			Score:   sa.Class.Score,
			IssueID: sa.Primary.IssueID,
		})
	}

	return page
}

func indexPageData(model *models.SiteModel) indexPage {
	page := indexPage{}

	for _, g := range model.Issues {
		page.Issues = append(page.Issues, indexIssue{
			ID:    g.ID,
			URL:   "issues/" + g.Slug + ".html",
			Date:  fmtDate(g.Date),
			Count: len(g.Articles),
		})
	}

	for _, g := range model.Categories {
		page.Categories = append(page.Categories, indexCategory{
			Name:  g.Name,
			URL:   "categories/" + g.Slug + ".html",
			Count: len(g.Articles),
		})
	}

	return page
}
