package tui

import (
	"strings"
)

func renderSavedList(queries []string, cursor, height, width int) string {
	if len(queries) == 0 {
		return lipglossCenter("No saved queries. Press s in the search view to save one.", width, height)
	}

	visible := height
	if visible < 1 {
		visible = 1
	}

	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > len(queries) {
		end = len(queries)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		if i == cursor {
			b.WriteString(itemSelectedStyle.Render("> " + truncateStr(queries[i], width-4)))
		} else {
			b.WriteString("  " + itemTitleStyle.Render(truncateStr(queries[i], width-4)))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
