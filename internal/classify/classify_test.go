package classify

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"newsstand/internal/config"
	"newsstand/internal/models"
)

func testCategories() []config.CategoryConfig {
	return []config.CategoryConfig{
		{
			Name:    "finance",
			Aliases: []string{"finance and economics"},
			Terms:   []string{"inflation", "bank", "interest", "bonds", "currency"},
		},
		{
			Name:    "science",
			Aliases: []string{"science and technology"},
			Terms:   []string{"research", "scientists", "climate", "vaccine", "algorithm"},
		},
	}
}

// padded produces a body long enough to avoid heavy length damping.
func padded(s string) string {
	return s + strings.Repeat(" neutral filler words about nothing in particular", 40)
}

func testArticle(title, hint, body string) models.Article {
	return models.Article{
		Title:       title,
		Body:        body,
		SectionHint: hint,
		IssueID:     "issue-1",
		IssueDate:   time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC),
	}
}

func TestClassify_SectionHintWins(t *testing.T) {
	c := New(testCategories())

	// The hint maps to finance even though the body screams science.
	a := testArticle("Lab notes", "Finance and Economics",
		padded("scientists research climate vaccine algorithm"))

	got := c.Classify(a)
	assert.Equal(t, "finance", got.Category)
	assert.GreaterOrEqual(t, got.Score, 0.0)
	assert.LessOrEqual(t, got.Score, 1.0)
}

func TestClassify_TermFallback(t *testing.T) {
	c := New(testCategories())

	a := testArticle("Untitled", "",
		padded("the bank raised interest rates as inflation lingered and bonds sold off"))

	got := c.Classify(a)
	assert.Equal(t, "finance", got.Category)
	assert.Greater(t, got.Score, 0.0)
}

func TestClassify_Uncategorized(t *testing.T) {
	c := New(testCategories())

	a := testArticle("Gardening column", "",
		padded("roses and tulips flourish in sandy soil with regular watering"))

	got := c.Classify(a)
	assert.Equal(t, models.CategoryUnknown, got.Category)
	assert.Equal(t, 0.0, got.Score)
}

func TestClassify_ScoreMonotonicInDistinctTerms(t *testing.T) {
	c := New(testCategories())

	one := c.Classify(testArticle("t", "", padded("inflation figures moved")))
	three := c.Classify(testArticle("t", "", padded("inflation bank interest figures moved")))
	five := c.Classify(testArticle("t", "", padded("inflation bank interest bonds currency figures moved")))

	assert.Equal(t, "finance", one.Category)
	assert.Less(t, one.Score, three.Score)
	assert.Less(t, three.Score, five.Score)
}

func TestClassify_ScoreBounds(t *testing.T) {
	c := New(testCategories())

	articles := []models.Article{
		testArticle("a", "", ""),
		testArticle("b", "", "inflation"),
		testArticle("c", "science and technology", padded(strings.Repeat("research scientists climate vaccine algorithm ", 100))),
		testArticle("d", "", padded("bank bank bank bank bank")),
	}

	for _, a := range articles {
		got := c.Classify(a)
		assert.GreaterOrEqual(t, got.Score, 0.0)
		assert.LessOrEqual(t, got.Score, 1.0)
	}
}

func TestClassify_RepeatedTermCountsOnce(t *testing.T) {
	c := New(testCategories())

	repeated := c.Classify(testArticle("t", "", padded(strings.Repeat("inflation ", 30))))
	distinct := c.Classify(testArticle("t", "", padded("inflation bank interest")))

	assert.Less(t, repeated.Score, distinct.Score,
		"one term repeated must not outrank several distinct terms")
}
