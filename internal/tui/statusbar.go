package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func renderStatusBar(articleCount int, filterLabel string, width int, typing, searching bool) string {
	left := fmt.Sprintf(" %d articles", articleCount)
	if filterLabel != "All" {
		left += " · " + filterLabel
	}

	right := " / query  f filter  s save  b star  ? help  q quit "
	if typing {
		right = " esc cancel  enter search "
	}
	if searching {
		left += " (searching...)"
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right

	return statusBarStyle.Width(width).Render(bar)
}

func renderBottomBar(hints string, width int) string {
	right := " " + hints + " "

	gap := width - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := fmt.Sprintf("%*s", gap, "") + right

	return statusBarStyle.Width(width).Render(bar)
}
