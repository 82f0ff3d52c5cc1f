// Package models defines the data structures passed between pipeline stages.
package models

import "time"

// DocumentKind classifies a raw spine document before extraction.
type DocumentKind int

const (
	// DocOther is a document with no recognized role.
	DocOther DocumentKind = iota
	// DocArticle is a document that looks like article content.
	DocArticle
	// DocNavigation is a table-of-contents or navigation document.
	DocNavigation
)

// String returns the string representation of a document kind.
func (k DocumentKind) String() string {
	switch k {
	case DocArticle:
		return "article"
	case DocNavigation:
		return "navigation"
	default:
		return "other"
	}
}

// Issue represents one EPUB archive: a single magazine publication instance.
// An Issue is immutable after the loader creates it and is discarded once
// its documents have been extracted.
type Issue struct {
	ID        string
	Path      string
	Title     string
	Date      time.Time
	Documents []RawDocument
}

// RawDocument is one spine entry of an Issue, in spine order.
type RawDocument struct {
	IssueID   string
	IssueDate time.Time
	Index     int
	Name      string
	Content   []byte
	Kind      DocumentKind
}
