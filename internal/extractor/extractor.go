// Package extractor turns raw EPUB documents into structured articles.
package extractor

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"newsstand/internal/models"
	"newsstand/internal/textutil"
)

// ErrExtraction indicates an individual document whose markup could not be
// parsed. The document is logged and skipped; the error never propagates
// past the pipeline stage.
var ErrExtraction = errors.New("document extraction failed")

// nonContentSelectors lists elements stripped before body text extraction.
const nonContentSelectors = "script, style, nav, header, footer, aside"

// boilerplateMarkers reject documents whose title or leading text marks them
// as furniture rather than article content.
var boilerplateMarkers = []string{
	"table of contents",
	"masthead",
	"advertisement",
	"copyright",
	"colophon",
	"index of articles",
	"how to subscribe",
}

// navLinkDensity is the anchor-text ratio above which a document is treated
// as navigation even without a nav marker.
const navLinkDensity = 0.5

// Extractor decides whether raw documents are article content and produces
// normalized Articles from the ones that are.
type Extractor struct {
	minRunes int
}

// New creates an extractor. minRunes is the minimum normalized body length
// for a document to count as an article.
func New(minRunes int) *Extractor {
	return &Extractor{minRunes: minRunes}
}

// Extract parses one raw document. It returns (nil, nil) for documents that
// are not article content; those are counted by the caller, not reported as
// failures. ErrExtraction is returned only when the markup itself cannot be
// parsed.
func (e *Extractor) Extract(doc models.RawDocument) (*models.Article, error) {
	if doc.Kind == models.DocNavigation {
		return nil, nil
	}

	if len(bytes.TrimSpace(doc.Content)) == 0 {
		return nil, fmt.Errorf("%w: %s[%d]: empty document", ErrExtraction, doc.IssueID, doc.Index)
	}

	parsed, err := goquery.NewDocumentFromReader(bytes.NewReader(doc.Content))
	if err != nil {
		return nil, fmt.Errorf("%w: %s[%d]: %v", ErrExtraction, doc.IssueID, doc.Index, err)
	}

	parsed.Find(nonContentSelectors).Remove()

	body := textutil.NormalizeWhitespace(parsed.Find("body").Text())
	if body == "" {
		body = textutil.NormalizeWhitespace(parsed.Text())
	}

	title := extractTitle(parsed, body)

	if !e.isArticle(parsed, title, body) {
		return nil, nil
	}

	return &models.Article{
		Title:       title,
		Body:        body,
		SectionHint: extractSectionHint(parsed),
		IssueID:     doc.IssueID,
		IssueDate:   doc.IssueDate,
		Position:    doc.Index,
		Fingerprint: textutil.Fingerprint(body),
	}, nil
}

// isArticle applies the content heuristics: minimum length, boilerplate
// markers, and link density.
func (e *Extractor) isArticle(parsed *goquery.Document, title, body string) bool {
	if utf8.RuneCountInString(body) < e.minRunes {
		return false
	}

	lowerTitle := strings.ToLower(title)
	for _, marker := range boilerplateMarkers {
		if strings.Contains(lowerTitle, marker) {
			return false
		}
	}

	if linkDensity(parsed, body) > navLinkDensity {
		return false
	}

	return true
}

// extractTitle takes the first heading, falling back to the document title,
// falling back to the first non-empty line of body text.
func extractTitle(parsed *goquery.Document, body string) string {
	for _, sel := range []string{"h1", "h2", "h3"} {
		if t := textutil.NormalizeWhitespace(parsed.Find(sel).First().Text()); t != "" {
			return t
		}
	}

	if t := textutil.NormalizeWhitespace(parsed.Find("title").First().Text()); t != "" {
		return t
	}

	// The body is already whitespace-collapsed, so the "first line" is its
	// leading sentence.
	if idx := strings.IndexRune(body, '.'); idx > 0 && idx < 120 {
		return body[:idx]
	}

	return textutil.Truncate(body, 80)
}

// extractSectionHint finds the section name a document declares, if any.
func extractSectionHint(parsed *goquery.Document) string {
	for _, sel := range []string{".section", "[class*='section']", "h4", "meta[name='section']"} {
		node := parsed.Find(sel).First()
		if node.Length() == 0 {
			continue
		}

		if sel == "meta[name='section']" {
			if content, ok := node.Attr("content"); ok {
				return textutil.NormalizeWhitespace(content)
			}

			continue
		}

		if hint := textutil.NormalizeWhitespace(node.Text()); hint != "" {
			return hint
		}
	}

	return ""
}

// linkDensity is the share of body text living inside anchors. Navigation
// pages are nearly all links; articles are nearly none.
func linkDensity(parsed *goquery.Document, body string) float64 {
	if body == "" {
		return 1.0
	}

	var linked int

	parsed.Find("a").Each(func(_ int, a *goquery.Selection) {
		linked += utf8.RuneCountInString(textutil.NormalizeWhitespace(a.Text()))
	})

	return float64(linked) / float64(utf8.RuneCountInString(body))
}
