package models

import "time"

// Article is a single article extracted from a RawDocument. Body holds
// markup-stripped, whitespace-collapsed plain text; Fingerprint is the
// SHA-256 hex digest of that normalized body.
type Article struct {
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	SectionHint string    `json:"sectionHint,omitempty"`
	IssueID     string    `json:"issueId"`
	IssueDate   time.Time `json:"issueDate"`
	Position    int       `json:"position"`
	Fingerprint string    `json:"fingerprint"`
}

// Classification is the category and relevance score attached to exactly
// one CanonicalArticle. Score is always within [0,1].
type Classification struct {
	Category string  `json:"category"`
	Score    float64 `json:"score"`
}

// CategoryUnknown is assigned when no category can be determined with
// confidence. It always carries score 0.
const CategoryUnknown = "uncategorized"

// CanonicalArticle is the deduplicated representative of one or more
// republished Article instances. Primary is the earliest-dated member;
// Duplicates are later republications. A CanonicalArticle is never mutated
// after the deduplicator creates it, except to attach its Classification.
type CanonicalArticle struct {
	Primary    Article
	Duplicates []Article
	Class      Classification
}

// Members returns the primary article followed by its duplicates.
func (c *CanonicalArticle) Members() []Article {
	members := make([]Article, 0, 1+len(c.Duplicates))
	members = append(members, c.Primary)
	members = append(members, c.Duplicates...)

	return members
}

// RepublishedIn returns the issue ids of the duplicate members, i.e. the
// issues that carried this article after its first appearance.
func (c *CanonicalArticle) RepublishedIn() []string {
	if len(c.Duplicates) == 0 {
		return nil
	}

	ids := make([]string, 0, len(c.Duplicates))
	for _, d := range c.Duplicates {
		ids = append(ids, d.IssueID)
	}

	return ids
}
