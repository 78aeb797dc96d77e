// Package session holds the in-memory collections the UI mutates: the saved
// query list and the bookmark set. Nothing here is persisted; both live for
// the lifetime of the process only.
package session

import (
	"strings"

	"github.com/samber/lo"

	"github.com/matheuskafuri/newsdesk/internal/newsapi"
)

// DefaultQueries seeds the saved query list at startup.
var DefaultQueries = []string{
	"artificial intelligence",
	"climate change",
	"space exploration",
}

// SavedQueries is an ordered set of search strings. Equality is
// case-sensitive and entries are trimmed on the way in.
type SavedQueries struct {
	queries []string
}

// NewSavedQueries returns a list seeded with the given queries, skipping
// blanks and duplicates.
func NewSavedQueries(seed []string) *SavedQueries {
	s := &SavedQueries{}
	for _, q := range seed {
		s.Add(q)
	}
	return s
}

// Add appends a query to the end of the list. Empty (after trimming) and
// already-present values are ignored.
func (s *SavedQueries) Add(query string) bool {
	query = strings.TrimSpace(query)
	if query == "" || lo.Contains(s.queries, query) {
		return false
	}
	s.queries = append(s.queries, query)
	return true
}

// Remove drops the matching entry, if any.
func (s *SavedQueries) Remove(query string) bool {
	before := len(s.queries)
	s.queries = lo.Reject(s.queries, func(q string, _ int) bool {
		return q == query
	})
	return len(s.queries) != before
}

func (s *SavedQueries) Contains(query string) bool {
	return lo.Contains(s.queries, query)
}

// All returns the queries in insertion order. The caller must not mutate
// the returned slice.
func (s *SavedQueries) All() []string { return s.queries }

func (s *SavedQueries) Len() int { return len(s.queries) }

// Bookmarks is an ordered set of article snapshots keyed by article ID.
type Bookmarks struct {
	articles []newsapi.Article
}

func NewBookmarks() *Bookmarks { return &Bookmarks{} }

// Toggle removes the article if one with the same ID is already bookmarked,
// otherwise stores the given snapshot. Returns true when the article is
// bookmarked after the call.
func (b *Bookmarks) Toggle(article newsapi.Article) bool {
	if b.IsBookmarked(article.ID) {
		b.articles = lo.Reject(b.articles, func(a newsapi.Article, _ int) bool {
			return a.ID == article.ID
		})
		return false
	}
	b.articles = append(b.articles, article)
	return true
}

func (b *Bookmarks) IsBookmarked(id string) bool {
	return lo.ContainsBy(b.articles, func(a newsapi.Article) bool {
		return a.ID == id
	})
}

// All returns the bookmarked articles in the order they were starred.
func (b *Bookmarks) All() []newsapi.Article { return b.articles }

func (b *Bookmarks) Len() int { return len(b.articles) }
