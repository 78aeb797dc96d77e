package tui

import (
	"strings"
	"testing"
	"time"
)

func TestTruncateStr(t *testing.T) {
	tests := []struct {
		input string
		n     int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello..."},
		{"abc", 3, "abc"},
		{"abcd", 3, "abc"},
		{"", 5, ""},
		{"test", 0, ""},
	}
	for _, tt := range tests {
		got := truncateStr(tt.input, tt.n)
		if got != tt.want {
			t.Errorf("truncateStr(%q, %d) = %q, want %q", tt.input, tt.n, got, tt.want)
		}
	}
}

func TestTruncateStrUTF8(t *testing.T) {
	got := truncateStr("日本語テスト", 5)
	want := "日本..."
	if got != want {
		t.Errorf("truncateStr(Japanese, 5) = %q, want %q", got, want)
	}
}

func TestParsePublished(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
	}{
		{"2026-08-29 10:30:00", true},
		{"2026-08-29T10:30:00Z", true},
		{"2026-08-29T10:30:00", true},
		{"2026-08-29", true},
		{"yesterday", false},
		{"", false},
	}
	for _, tt := range tests {
		_, ok := parsePublished(tt.input)
		if ok != tt.ok {
			t.Errorf("parsePublished(%q) ok = %v, want %v", tt.input, ok, tt.ok)
		}
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Now().UTC()
	stamp := func(d time.Duration) string {
		return now.Add(-d).Format("2006-01-02 15:04:05")
	}

	tests := []struct {
		input string
		want  string
	}{
		{stamp(30 * time.Second), "just now"},
		{stamp(5 * time.Minute), "5m"},
		{stamp(3 * time.Hour), "3h"},
		{stamp(2 * 24 * time.Hour), "2d"},
	}
	for _, tt := range tests {
		got := relativeTime(tt.input)
		if got != tt.want {
			t.Errorf("relativeTime(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRelativeTimeOld(t *testing.T) {
	got := relativeTime("2025-06-15 08:00:00")
	if got != "Jun 15" {
		t.Errorf("relativeTime(old date) = %q, want %q", got, "Jun 15")
	}
}

func TestRelativeTimeUnparseable(t *testing.T) {
	got := relativeTime("2026-08-29ish, who knows")
	if got != "2026-08-29" {
		t.Errorf("expected first 10 chars of raw value, got %q", got)
	}
	if relativeTime("soon") != "soon" {
		t.Errorf("expected short raw value passed through")
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("one two three four", 9)
	lines := strings.Split(got, "\n")
	for _, l := range lines {
		if len(l) > 9 {
			t.Errorf("line %q exceeds width", l)
		}
	}
	if strings.Join(strings.Fields(got), " ") != "one two three four" {
		t.Errorf("wrapping lost words: %q", got)
	}
}

func TestWrapTextEmpty(t *testing.T) {
	if wrapText("", 10) != "" {
		t.Error("expected empty output for empty input")
	}
}
