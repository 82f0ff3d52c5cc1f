// Package render writes the static site produced from the site model.
//
// Output paths are deterministic functions of article, issue, and category
// slugs, and pages carry no run-dependent content, so re-rendering an
// unchanged model reproduces a byte-identical tree.
package render

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"newsstand/internal/models"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

//go:embed assets/style.css
var styleCSS []byte

// ErrRenderTemplate indicates a required template is missing. The affected
// page scope is aborted and reported; independent scopes are still written.
var ErrRenderTemplate = errors.New("required template missing")

const (
	articleTemplate  = "article.tmpl"
	issueTemplate    = "issue.tmpl"
	categoryTemplate = "category.tmpl"
	indexTemplate    = "index.tmpl"
)

// PageFailure records one page or scope that could not be written.
type PageFailure struct {
	Path string
	Err  error
}

// Result summarizes a render pass.
type Result struct {
	PagesWritten int
	Failures     []PageFailure
}

// Renderer writes the site tree from a SiteModel.
type Renderer struct {
	tmpl *template.Template
}

// New parses the template set: the embedded defaults, or *.tmpl files from
// templateDir when one is configured. An unparseable or empty template set
// is fatal for the run.
func New(templateDir string) (*Renderer, error) {
	var (
		tmpl *template.Template
		err  error
	)

	if templateDir != "" {
		tmpl, err = template.ParseGlob(filepath.Join(templateDir, "*.tmpl"))
	} else {
		tmpl, err = template.ParseFS(embeddedTemplates, "templates/*.tmpl")
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	return &Renderer{tmpl: tmpl}, nil
}

// WriteSite renders every page of the model into outDir. Per-page and
// per-scope failures are collected in the Result; only an unusable output
// directory is returned as an error.
func (r *Renderer) WriteSite(model *models.SiteModel, outDir string) (*Result, error) {
	for _, sub := range []string{"", "articles", "issues", "categories"} {
		if err := os.MkdirAll(filepath.Join(outDir, sub), 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	res := &Result{}

	r.writeRaw(filepath.Join(outDir, "style.css"), styleCSS, res)

	bySlug := make(map[string]*models.SiteArticle, len(model.Articles))
	for _, sa := range model.Articles {
		bySlug[sa.Slug] = sa
	}

	r.renderScope(articleTemplate, res, func() {
		for _, sa := range model.Articles {
			path := filepath.Join(outDir, "articles", sa.Slug+".html")
			r.writePage(path, articleTemplate, articlePageData(sa, bySlug), res)
		}
	})

	r.renderScope(issueTemplate, res, func() {
		for _, g := range model.Issues {
			path := filepath.Join(outDir, "issues", g.Slug+".html")
			r.writePage(path, issueTemplate, issuePageData(g), res)
		}
	})

	r.renderScope(categoryTemplate, res, func() {
		for _, g := range model.Categories {
			path := filepath.Join(outDir, "categories", g.Slug+".html")
			r.writePage(path, categoryTemplate, categoryPageData(g), res)
		}
	})

	r.renderScope(indexTemplate, res, func() {
		r.writePage(filepath.Join(outDir, "index.html"), indexTemplate, indexPageData(model), res)
	})

	r.writeManifest(filepath.Join(outDir, "manifest.json"), model, res)

	return res, nil
}

// renderScope runs the page writer only when its template exists; a missing
// template aborts the whole scope with a single reported failure.
func (r *Renderer) renderScope(name string, res *Result, write func()) {
	if r.tmpl.Lookup(name) == nil {
		res.Failures = append(res.Failures, PageFailure{
			Path: name,
			Err:  fmt.Errorf("%w: %s", ErrRenderTemplate, name),
		})

		return
	}

	write()
}

func (r *Renderer) writePage(path, tmplName string, data any, res *Result) {
	var buf bytes.Buffer

	if err := r.tmpl.ExecuteTemplate(&buf, tmplName, data); err != nil {
		res.Failures = append(res.Failures, PageFailure{Path: path, Err: err})

		return
	}

	r.writeRaw(path, buf.Bytes(), res)
}

func (r *Renderer) writeRaw(path string, content []byte, res *Result) {
	if err := os.WriteFile(path, content, 0644); err != nil {
		res.Failures = append(res.Failures, PageFailure{Path: path, Err: err})

		return
	}

	res.PagesWritten++
}

// writeManifest emits the machine-readable site listing consumed by
// downstream tooling.
func (r *Renderer) writeManifest(path string, model *models.SiteModel, res *Result) {
	m := manifest{}

	for _, sa := range model.Articles {
		m.Articles = append(m.Articles, manifestArticle{
			Slug:     sa.Slug,
			Title:    sa.Primary.Title,
			Category: sa.Class.Category,
			Score:    sa.Class.Score,
			Issue:    sa.Primary.IssueID,
			Date:     fmtDate(sa.Primary.IssueDate),
			Path:     "articles/" + sa.Slug + ".html",
		})
	}

	for _, g := range model.Issues {
		m.Issues = append(m.Issues, manifestGroup{
			Slug:  g.Slug,
			Title: g.ID,
			Count: len(g.Articles),
			Path:  "issues/" + g.Slug + ".html",
		})
	}

	for _, g := range model.Categories {
		m.Categories = append(m.Categories, manifestGroup{
			Slug:  g.Slug,
			Title: g.Name,
			Count: len(g.Articles),
			Path:  "categories/" + g.Slug + ".html",
		})
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		res.Failures = append(res.Failures, PageFailure{Path: path, Err: err})

		return
	}

	r.writeRaw(path, append(data, '\n'), res)
}

type manifest struct {
	Articles   []manifestArticle `json:"articles"`
	Issues     []manifestGroup   `json:"issues"`
	Categories []manifestGroup   `json:"categories"`
}

type manifestArticle struct {
	Slug     string  `json:"slug"`
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Score    float64 `json:"score"`
	Issue    string  `json:"issue"`
	Date     string  `json:"date,omitempty"`
	Path     string  `json:"path"`
}

type manifestGroup struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
	Count int    `json:"count"`
	Path  string `json:"path"`
}

func fmtDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.Format("2006-01-02")
}
