package pipeline

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Report accumulates run-wide counters and warnings. It is threaded through
// the stages explicitly rather than held as global state, so runs stay
// reproducible and testable in isolation.
type Report struct {
	IssuesLoaded        int
	IssuesSkipped       int
	DocumentsSeen       int
	DocumentsSkipped    int
	ExtractionFailures  int
	ArticlesExtracted   int
	DuplicatesCollapsed int
	CanonicalArticles   int
	PagesWritten        int
	PageFailures        int
	Warnings            []string
}

// Warnf records a formatted warning with identifying context.
func (r *Report) Warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// merge folds one archive's counters into the run totals.
func (r *Report) merge(other *Report) {
	r.IssuesLoaded += other.IssuesLoaded
	r.IssuesSkipped += other.IssuesSkipped
	r.DocumentsSeen += other.DocumentsSeen
	r.DocumentsSkipped += other.DocumentsSkipped
	r.ExtractionFailures += other.ExtractionFailures
	r.ArticlesExtracted += other.ArticlesExtracted
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// Summary renders the report as an aligned two-column table. Column widths
// use display width so counts line up even when warnings carry CJK titles.
func (r *Report) Summary() string {
	rows := [][2]string{
		{"Issues loaded", fmt.Sprintf("%d", r.IssuesLoaded)},
		{"Issues skipped", fmt.Sprintf("%d", r.IssuesSkipped)},
		{"Documents seen", fmt.Sprintf("%d", r.DocumentsSeen)},
		{"Documents skipped", fmt.Sprintf("%d", r.DocumentsSkipped)},
		{"Extraction failures", fmt.Sprintf("%d", r.ExtractionFailures)},
		{"Articles extracted", fmt.Sprintf("%d", r.ArticlesExtracted)},
		{"Duplicates collapsed", fmt.Sprintf("%d", r.DuplicatesCollapsed)},
		{"Canonical articles", fmt.Sprintf("%d", r.CanonicalArticles)},
		{"Pages written", fmt.Sprintf("%d", r.PagesWritten)},
		{"Page failures", fmt.Sprintf("%d", r.PageFailures)},
	}

	labelWidth := 0
	for _, row := range rows {
		if w := runewidth.StringWidth(row[0]); w > labelWidth {
			labelWidth = w
		}
	}

	var b strings.Builder

	for _, row := range rows {
		b.WriteString(row[0])
		b.WriteString(strings.Repeat(" ", labelWidth-runewidth.StringWidth(row[0])))
		b.WriteString("  ")
		b.WriteString(row[1])
		b.WriteString("\n")
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintf(&b, "\nWarnings (%d):\n", len(r.Warnings))

		for _, w := range r.Warnings {
			fmt.Fprintf(&b, "  - %s\n", w)
		}
	}

	return b.String()
}
