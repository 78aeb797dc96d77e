package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/matheuskafuri/newsdesk/internal/newsapi"
)

func renderPreview(article *newsapi.Article, starred bool, width, height, scroll int) string {
	if article == nil {
		return lipglossCenter("Select an article", width, height)
	}

	contentWidth := width - 2
	if contentWidth < 10 {
		contentWidth = 10
	}

	titleText := article.Title
	if starred {
		titleText = "★ " + titleText
	}
	title := previewTitleStyle.Width(contentWidth).Render(titleText)

	published, ok := parsePublished(article.PublishedAt)
	dateText := article.PublishedAt
	if ok {
		dateText = published.Format("Jan 2, 2006")
	}
	sourceLine := fmt.Sprintf("%s · %s", article.Source, dateText)
	if g := sentimentGlyph(article.Sentiment); g != "" {
		sourceLine += " " + g
	}
	source := previewSourceStyle.Render(sourceLine)

	summary := article.Summary
	if summary == "" {
		summary = "(No summary available)"
	}

	body := previewBodyStyle.Width(contentWidth).Render(wrapText(summary, contentWidth))
	link := previewLinkStyle.Width(contentWidth).Render("Read more: " + article.URL)

	parts := []string{title, source, "", body, "", link}
	if article.Fallback {
		parts = append([]string{fallbackBadgeStyle.Render("demo result"), ""}, parts...)
	}
	content := lipgloss.JoinVertical(lipgloss.Left, parts...)

	// Apply scroll offset
	lines := strings.Split(content, "\n")
	if scroll > 0 && scroll < len(lines) {
		lines = lines[scroll:]
	}

	// Pad to fill height
	if len(lines) < height {
		lines = append(lines, make([]string, height-len(lines))...)
	} else if len(lines) > height {
		lines = lines[:height]
	}

	return strings.Join(lines, "\n")
}

func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
		} else {
			line += " " + w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}
