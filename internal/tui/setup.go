package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func renderSetup(inputView, errMsg string, canDismiss bool, width, height int) string {
	title := lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Render("API key required")

	hint := helpDimStyle.Render(wrapText(
		"Searches need a World News API key. Get one free at worldnewsapi.com, "+
			"paste it below and press enter. The key is stored locally and never leaves this machine "+
			"except on requests to the API.", 56))

	lines := []string{title, "", hint, "", inputView}
	if errMsg != "" {
		lines = append(lines, "", errorStyle.Render(errMsg))
	}
	footer := "enter save"
	if canDismiss {
		footer += "  esc cancel"
	}
	lines = append(lines, "", helpDimStyle.Render(footer))

	card := setupCardStyle.Render(strings.Join(lines, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
