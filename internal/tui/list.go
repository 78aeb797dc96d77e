package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/matheuskafuri/newsdesk/internal/newsapi"
)

// publishedLayouts covers the timestamp shapes the API has been seen to
// return.
var publishedLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parsePublished(s string) (time.Time, bool) {
	for _, layout := range publishedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func relativeTime(s string) string {
	t, ok := parsePublished(s)
	if !ok {
		if len(s) > 10 {
			return s[:10]
		}
		return s
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	default:
		return t.Format("Jan 2")
	}
}

func sentimentGlyph(score *float64) string {
	if score == nil {
		return ""
	}
	switch {
	case *score >= 0.1:
		return sentimentUpStyle.Render(fmt.Sprintf("▲%.1f", *score))
	case *score <= -0.1:
		return sentimentDownStyle.Render(fmt.Sprintf("▼%.1f", *score))
	default:
		return itemTimeStyle.Render("·0.0")
	}
}

func renderListItem(a newsapi.Article, selected, starred bool, width int) string {
	if width < 10 {
		width = 30
	}

	star := "  "
	if starred {
		star = itemStarStyle.Render("★ ")
	}

	var title string
	if selected {
		title = itemSelectedStyle.Render("> "+star) + itemSelectedStyle.Render(truncateStr(a.Title, width-6))
	} else {
		title = "  " + star + itemTitleStyle.Render(truncateStr(a.Title, width-6))
	}

	meta := "    " + itemSourceStyle.Render(a.Source) + " " + itemTimeStyle.Render("· "+relativeTime(a.PublishedAt))
	if g := sentimentGlyph(a.Sentiment); g != "" {
		meta += " " + g
	}
	if a.Fallback {
		meta += " " + fallbackBadgeStyle.Render("demo")
	}

	return title + "\n" + meta
}

func truncateStr(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func renderList(articles []newsapi.Article, cursor int, starred func(id string) bool, emptyHint string, height, width int) string {
	if len(articles) == 0 {
		return lipglossCenter(emptyHint, width, height)
	}

	// Each item is 2 lines + 1 blank line = 3 lines
	itemHeight := 3
	visible := height / itemHeight
	if visible < 1 {
		visible = 1
	}

	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > len(articles) {
		end = len(articles)
		start = end - visible
		if start < 0 {
			start = 0
		}
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(renderListItem(articles[i], i == cursor, starred(articles[i].ID), width))
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func lipglossCenter(s string, width, height int) string {
	pad := (width - len(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat("\n", height/3) + strings.Repeat(" ", pad) + s
}
