package newsapi

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Article is the normalized record every view renders from. Fallback marks
// the synthetic placeholder produced when a search attempt fails, so
// downstream logic can tell degraded mode from genuine API data.
type Article struct {
	ID          string
	Title       string
	Summary     string
	Source      string
	URL         string
	PublishedAt string
	ImageURL    string
	Sentiment   *float64
	Fallback    bool
}

// Filters holds the user-selected search refinements.
type Filters struct {
	Language      string // ISO 639-1
	SourceCountry string // ISO 3166-1, empty = all
	Sentiment     string // "", "positive", "neutral", "negative"
	SortBy        string // "publish-time" or "relevance"
}

// DefaultFilters matches the initial UI selection.
func DefaultFilters() Filters {
	return Filters{Language: "en", SortBy: "publish-time"}
}

type searchResponse struct {
	News []rawArticle `json:"news"`
}

type rawArticle struct {
	ID          json.Number `json:"id"`
	Title       string      `json:"title"`
	Summary     string      `json:"summary"`
	Text        string      `json:"text"`
	Author      string      `json:"author"`
	URL         string      `json:"url"`
	PublishDate string      `json:"publish_date"`
	Image       string      `json:"image"`
	Sentiment   *float64    `json:"sentiment"`
}

const summaryExcerptLen = 200

func normalize(idx int, r rawArticle) Article {
	id := r.ID.String()
	if id == "" {
		id = strconv.Itoa(idx)
	}

	source := r.Author
	if source == "" {
		source = hostOf(r.URL)
	}

	summary := r.Summary
	if summary == "" {
		summary = excerpt(r.Text, summaryExcerptLen)
	}

	return Article{
		ID:          id,
		Title:       r.Title,
		Summary:     summary,
		Source:      source,
		URL:         r.URL,
		PublishedAt: r.PublishDate,
		ImageURL:    r.Image,
		Sentiment:   r.Sentiment,
	}
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "unknown"
	}
	return u.Host
}

func excerpt(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

// FallbackArticle builds the synthetic placeholder shown after a failed
// search so the result view is never blank. Its ID always carries the
// "demo-" prefix.
func FallbackArticle(query string, cause error) Article {
	return Article{
		ID:          "demo-" + strconv.FormatInt(time.Now().UnixNano(), 10),
		Title:       fmt.Sprintf("Demo result for %q", query),
		Summary:     fmt.Sprintf("The search could not be completed (%v). This placeholder keeps the view populated; fix the connection or credential and search again.", cause),
		Source:      "newsdesk",
		URL:         "https://worldnewsapi.com",
		PublishedAt: time.Now().Format("2006-01-02 15:04:05"),
		Fallback:    true,
	}
}
