package render

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsstand/internal/models"
	"newsstand/internal/sitemodel"
	"newsstand/internal/textutil"
)

func testModel(t *testing.T) *models.SiteModel {
	t.Helper()

	week1 := time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)
	week2 := time.Date(2024, 1, 13, 0, 0, 0, 0, time.UTC)

	mk := func(issue string, date time.Time, pos int, title, category string, score float64) *models.CanonicalArticle {
		body := "Body text of " + title + ", long enough to look like prose."

		return &models.CanonicalArticle{
			Primary: models.Article{
				Title:       title,
				Body:        body,
				IssueID:     issue,
				IssueDate:   date,
				Position:    pos,
				Fingerprint: textutil.Fingerprint(body),
			},
			Class: models.Classification{Category: category, Score: score},
		}
	}

	shared := mk("issue-a", week1, 0, "Recurring note", "briefing", 0.3)
	shared.Duplicates = []models.Article{{
		Title: "Recurring note", IssueID: "issue-b", IssueDate: week2, Position: 0,
	}}

	model, err := sitemodel.NewBuilder(3).Build([]*models.CanonicalArticle{
		shared,
		mk("issue-a", week1, 1, "Markets wobble", "finance", 0.8),
		mk("issue-b", week2, 1, "Chips are down", "finance", 0.7),
	})
	require.NoError(t, err)

	return model
}

func TestWriteSite(t *testing.T) {
	model := testModel(t)
	outDir := t.TempDir()

	r, err := New("")
	require.NoError(t, err)

	res, err := r.WriteSite(model, outDir)
	require.NoError(t, err)
	assert.Empty(t, res.Failures)

	expected := []string{
		"index.html",
		"style.css",
		"manifest.json",
		"articles/recurring-note.html",
		"articles/markets-wobble.html",
		"articles/chips-are-down.html",
		"issues/issue-a.html",
		"issues/issue-b.html",
		"categories/finance.html",
		"categories/briefing.html",
	}

	for _, rel := range expected {
		if _, err := os.Stat(filepath.Join(outDir, rel)); err != nil {
			t.Errorf("missing output file %s: %v", rel, err)
		}
	}

	assert.Equal(t, len(expected), res.PagesWritten)

	// Issue B cross-references the republished article.
	issueB, err := os.ReadFile(filepath.Join(outDir, "issues", "issue-b.html"))
	require.NoError(t, err)
	assert.Contains(t, string(issueB), "recurring-note.html")
	assert.Contains(t, string(issueB), "first published in issue-a")

	// Category page lists by descending score.
	finance, err := os.ReadFile(filepath.Join(outDir, "categories", "finance.html"))
	require.NoError(t, err)

	wobble := strings.Index(string(finance), "Markets wobble")
	chips := strings.Index(string(finance), "Chips are down")
	require.True(t, wobble >= 0 && chips >= 0)
	assert.Less(t, wobble, chips, "higher-scored article must come first")
}

func TestWriteSite_Idempotent(t *testing.T) {
	model := testModel(t)

	r, err := New("")
	require.NoError(t, err)

	dir1, dir2 := t.TempDir(), t.TempDir()

	_, err = r.WriteSite(model, dir1)
	require.NoError(t, err)
	_, err = r.WriteSite(model, dir2)
	require.NoError(t, err)

	err = filepath.Walk(dir1, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}

		rel, err := filepath.Rel(dir1, path)
		require.NoError(t, err)

		first, err := os.ReadFile(path)
		require.NoError(t, err)

		second, err := os.ReadFile(filepath.Join(dir2, rel))
		require.NoError(t, err)

		assert.Equal(t, first, second, "output differs for %s", rel)

		return nil
	})
	require.NoError(t, err)
}

func TestWriteSite_MissingTemplateScope(t *testing.T) {
	model := testModel(t)

	// Template dir carrying everything except the category template.
	tmplDir := t.TempDir()

	entries, err := embeddedTemplates.ReadDir("templates")
	require.NoError(t, err)

	for _, e := range entries {
		if e.Name() == categoryTemplate {
			continue
		}

		data, err := embeddedTemplates.ReadFile("templates/" + e.Name())
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(tmplDir, e.Name()), data, 0644))
	}

	r, err := New(tmplDir)
	require.NoError(t, err)

	outDir := t.TempDir()

	res, err := r.WriteSite(model, outDir)
	require.NoError(t, err)

	require.Len(t, res.Failures, 1)
	assert.True(t, errors.Is(res.Failures[0].Err, ErrRenderTemplate))

	// Independent scopes were still written.
	if _, err := os.Stat(filepath.Join(outDir, "index.html")); err != nil {
		t.Errorf("index not written despite independent scope: %v", err)
	}

	if _, err := os.Stat(filepath.Join(outDir, "categories", "finance.html")); err == nil {
		t.Error("category page written despite missing template")
	}
}

func TestNew_MissingTemplateDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
