package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/matheuskafuri/newsdesk/internal/newsapi"
)

var (
	languageValues  = []string{"en", "de", "es", "fr", "it", "pt", "nl", "ru", "zh", "ja"}
	countryValues   = []string{"", "us", "gb", "de", "fr", "in", "au", "ca", "br", "jp"}
	sentimentValues = []string{"", "positive", "neutral", "negative"}
	sortValues      = []string{"publish-time", "relevance"}
)

type filterField struct {
	name   string
	values []string
	idx    int
}

func (f *filterField) value() string { return f.values[f.idx] }

func (f *filterField) label() string {
	v := f.value()
	if v == "" {
		return "any"
	}
	return v
}

func (f *filterField) cycle(dir int) {
	f.idx = (f.idx + dir + len(f.values)) % len(f.values)
}

// filterBar edits the four search filter fields. In filter mode the cursor
// moves between fields and space/enter cycles the selected field's value.
type filterBar struct {
	fields       []filterField
	filterMode   bool
	filterCursor int
}

func newFilterBar(initial newsapi.Filters) filterBar {
	fields := []filterField{
		{name: "lang", values: languageValues},
		{name: "country", values: countryValues},
		{name: "sentiment", values: sentimentValues},
		{name: "sort", values: sortValues},
	}
	pick := func(i int, want string) {
		if idx := lo.IndexOf(fields[i].values, want); idx >= 0 {
			fields[i].idx = idx
		}
	}
	pick(0, initial.Language)
	pick(1, initial.SourceCountry)
	pick(2, initial.Sentiment)
	pick(3, initial.SortBy)
	return filterBar{fields: fields}
}

func (f *filterBar) cycleCurrent(dir int) {
	if f.filterCursor < len(f.fields) {
		f.fields[f.filterCursor].cycle(dir)
	}
}

func (f *filterBar) filters() newsapi.Filters {
	return newsapi.Filters{
		Language:      f.fields[0].value(),
		SourceCountry: f.fields[1].value(),
		Sentiment:     f.fields[2].value(),
		SortBy:        f.fields[3].value(),
	}
}

// activeLabel summarizes the non-default selections for the status bar.
func (f *filterBar) activeLabel() string {
	current := f.filters()
	defaults := newsapi.DefaultFilters()
	label := ""
	add := func(s string) {
		if label != "" {
			label += ", "
		}
		label += s
	}
	if current.Language != defaults.Language {
		add(current.Language)
	}
	if current.SourceCountry != "" {
		add(current.SourceCountry)
	}
	if current.Sentiment != "" && current.Sentiment != "neutral" {
		add(current.Sentiment)
	}
	if current.SortBy != defaults.SortBy {
		add(current.SortBy)
	}
	if label == "" {
		return "All"
	}
	return label
}

func (f *filterBar) render(width int) string {
	sep := tabSeparatorStyle.Render(" · ")
	var parts []string

	for i, field := range f.fields {
		style := tabInactiveStyle
		if field.idx != 0 {
			style = tabActiveStyle
		}
		label := field.name + ":" + field.label()
		if f.filterMode && i == f.filterCursor {
			label = "[" + label + "]"
		}
		parts = append(parts, style.Render(label))
	}

	var row string
	for i, part := range parts {
		candidate := row
		if i > 0 {
			candidate += sep
		}
		candidate += part
		if lipgloss.Width(candidate) > width && row != "" {
			break
		}
		row = candidate
	}

	barStyle := lipgloss.NewStyle().
		Background(colorSurface).
		Width(width).
		PaddingLeft(1)
	return barStyle.Render(row)
}
