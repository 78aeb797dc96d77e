package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matheuskafuri/newsdesk/internal/credential"
	"github.com/matheuskafuri/newsdesk/internal/newsapi"
)

type fakeSearcher struct {
	articles []newsapi.Article
	err      error
	calls    int
}

func (f *fakeSearcher) Search(ctx context.Context, query string, _ newsapi.Filters) ([]newsapi.Article, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.articles, nil
}

type fakeCreds struct {
	key string
}

func (f *fakeCreds) Get() (string, bool) { return f.key, f.key != "" }

func (f *fakeCreds) Set(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return credential.ErrEmptyKey
	}
	f.key = key
	return nil
}

func testApp(searcher Searcher, creds Credentials) *App {
	a := NewApp(RunOpts{
		Client:       searcher,
		Credentials:  creds,
		Filters:      newsapi.DefaultFilters(),
		SavedQueries: []string{"climate change", "space"},
	})
	a.width = 100
	a.height = 30
	return a
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func sampleResults() []newsapi.Article {
	return []newsapi.Article{
		{ID: "42", Title: "First", Source: "Reuters", URL: "https://example.com/1"},
		{ID: "43", Title: "Second", Source: "AP", URL: "https://example.com/2"},
	}
}

func TestNewAppStartsInSetupWithoutKey(t *testing.T) {
	a := testApp(&fakeSearcher{}, &fakeCreds{})
	if a.mode != modeSetup {
		t.Errorf("expected setup mode without key, got %v", a.mode)
	}
}

func TestNewAppStartsInSearchWithKey(t *testing.T) {
	a := testApp(&fakeSearcher{}, &fakeCreds{key: "k"})
	if a.mode != modeSearch {
		t.Errorf("expected search mode with key, got %v", a.mode)
	}
}

func TestStartSearchEmptyQuery(t *testing.T) {
	f := &fakeSearcher{}
	a := testApp(f, &fakeCreds{key: "k"})

	cmd := a.startSearch("   ")
	if cmd != nil {
		t.Error("expected no command for blank query")
	}
	if a.errMsg == "" {
		t.Error("expected a user message for blank query")
	}
	if f.calls != 0 {
		t.Errorf("expected zero search calls, got %d", f.calls)
	}
}

func TestStartSearchIgnoredWhileInFlight(t *testing.T) {
	a := testApp(&fakeSearcher{}, &fakeCreds{key: "k"})

	if cmd := a.startSearch("first"); cmd == nil {
		t.Fatal("expected first search to start")
	}
	if !a.searching {
		t.Fatal("expected loading flag set")
	}
	if cmd := a.startSearch("second"); cmd != nil {
		t.Error("expected overlapping search to be ignored")
	}
}

func TestStartSearchClearsPreviousError(t *testing.T) {
	a := testApp(&fakeSearcher{}, &fakeCreds{key: "k"})
	a.errMsg = "stale message"

	a.startSearch("query")
	if a.errMsg != "" {
		t.Errorf("expected error cleared at call start, got %q", a.errMsg)
	}
}

func TestSearchDoneReplacesResults(t *testing.T) {
	a := testApp(&fakeSearcher{}, &fakeCreds{key: "k"})
	a.results = []newsapi.Article{{ID: "old"}}
	a.cursor = 1
	a.searching = true
	a.degraded = true

	a.Update(searchDoneMsg{articles: sampleResults()})

	if len(a.results) != 2 || a.results[0].ID != "42" {
		t.Errorf("expected results replaced, got %v", a.results)
	}
	if a.cursor != 0 {
		t.Errorf("expected cursor reset, got %d", a.cursor)
	}
	if a.searching || a.degraded {
		t.Error("expected searching and degraded flags cleared")
	}
}

func TestSearchFailureInvalidCredential(t *testing.T) {
	a := testApp(&fakeSearcher{}, &fakeCreds{key: "k"})
	a.searching = true

	a.Update(searchFailedMsg{
		query: "Ukraine war",
		err:   &newsapi.Error{Kind: newsapi.KindInvalidCredential, Status: 401},
	})

	if len(a.results) != 1 {
		t.Fatalf("expected exactly one fallback article, got %d", len(a.results))
	}
	if !strings.HasPrefix(a.results[0].ID, "demo-") {
		t.Errorf("expected demo- id, got %q", a.results[0].ID)
	}
	if !a.results[0].Fallback || !a.degraded {
		t.Error("expected fallback/degraded marks")
	}
	if a.errMsg == "" {
		t.Error("expected user-visible error message")
	}
}

func TestSearchFailureEmptyResultKeepsResults(t *testing.T) {
	a := testApp(&fakeSearcher{}, &fakeCreds{key: "k"})
	a.results = sampleResults()
	a.searching = true

	a.Update(searchFailedMsg{query: "obscure", err: &newsapi.Error{Kind: newsapi.KindEmptyResult}})

	if len(a.results) != 2 {
		t.Errorf("expected results untouched on empty result, got %d", len(a.results))
	}
	if a.degraded {
		t.Error("empty result is not degraded mode")
	}
	if a.errMsg == "" {
		t.Error("expected a hint to adjust the query")
	}
}

func TestSearchFailureMissingCredentialOpensSetup(t *testing.T) {
	a := testApp(&fakeSearcher{}, &fakeCreds{key: "k"})
	a.searching = true

	a.Update(searchFailedMsg{query: "q", err: &newsapi.Error{Kind: newsapi.KindMissingCredential}})

	if a.mode != modeSetup {
		t.Errorf("expected setup mode, got %v", a.mode)
	}
}

func TestViewSwitchingKeys(t *testing.T) {
	a := testApp(&fakeSearcher{}, &fakeCreds{key: "k"})

	a.Update(keyRune('2'))
	if a.mode != modeSaved {
		t.Errorf("expected saved view, got %v", a.mode)
	}
	a.Update(keyRune('3'))
	if a.mode != modeBookmarks {
		t.Errorf("expected bookmarks view, got %v", a.mode)
	}
	a.Update(keyRune('1'))
	if a.mode != modeSearch {
		t.Errorf("expected search view, got %v", a.mode)
	}
}

func TestResultsSurviveViewSwitches(t *testing.T) {
	a := testApp(&fakeSearcher{}, &fakeCreds{key: "k"})
	a.results = sampleResults()

	a.Update(keyRune('2'))
	a.Update(keyRune('3'))
	a.Update(keyRune('1'))

	if len(a.results) != 2 {
		t.Errorf("expected results preserved across views, got %d", len(a.results))
	}
}

func TestBookmarkToggleKey(t *testing.T) {
	a := testApp(&fakeSearcher{}, &fakeCreds{key: "k"})
	a.results = sampleResults()

	a.Update(keyRune('b'))
	if !a.bookmarks.IsBookmarked("42") {
		t.Fatal("expected selected article bookmarked")
	}
	a.Update(keyRune('b'))
	if a.bookmarks.IsBookmarked("42") {
		t.Error("expected second toggle to unbookmark")
	}
}

func TestSaveQueryKey(t *testing.T) {
	a := testApp(&fakeSearcher{}, &fakeCreds{key: "k"})
	a.queryInput.SetValue("fusion energy")

	a.Update(keyRune('s'))
	if !a.saved.Contains("fusion energy") {
		t.Error("expected current query saved")
	}

	a.Update(keyRune('s'))
	if a.saved.Len() != 3 { // two seeds + one new
		t.Errorf("expected duplicate save ignored, got %d entries", a.saved.Len())
	}
}

func TestSavedRunKey(t *testing.T) {
	a := testApp(&fakeSearcher{}, &fakeCreds{key: "k"})
	a.mode = modeSaved
	a.savedCursor = 1 // "space"

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if a.mode != modeSearch {
		t.Errorf("expected switch to search view, got %v", a.mode)
	}
	if a.queryInput.Value() != "space" {
		t.Errorf("expected query field set, got %q", a.queryInput.Value())
	}
	if !a.searching || cmd == nil {
		t.Error("expected search started")
	}
}

func TestSavedDeleteKey(t *testing.T) {
	a := testApp(&fakeSearcher{}, &fakeCreds{key: "k"})
	a.mode = modeSaved

	a.Update(keyRune('d'))
	if a.saved.Contains("climate change") {
		t.Error("expected first saved query deleted")
	}
	if a.saved.Len() != 1 {
		t.Errorf("expected 1 remaining, got %d", a.saved.Len())
	}
}

func TestSetupSaveKey(t *testing.T) {
	creds := &fakeCreds{}
	a := testApp(&fakeSearcher{}, creds)
	a.keyInput.SetValue("  new-key  ")

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected save command")
	}
	msg := cmd()
	a.Update(msg)

	if creds.key != "new-key" {
		t.Errorf("expected trimmed key stored, got %q", creds.key)
	}
	if a.mode != modeSearch {
		t.Errorf("expected setup exited after save, got %v", a.mode)
	}
}

func TestSetupRejectsEmptyKey(t *testing.T) {
	a := testApp(&fakeSearcher{}, &fakeCreds{})

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected save command")
	}
	a.Update(cmd())

	if a.mode != modeSetup {
		t.Error("expected setup to stay open on empty key")
	}
	if a.errMsg == "" {
		t.Error("expected error message for empty key")
	}
}

func TestSetupEscStickyWithoutKey(t *testing.T) {
	a := testApp(&fakeSearcher{}, &fakeCreds{})

	a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if a.mode != modeSetup {
		t.Error("expected setup to be sticky until a key exists")
	}
}

func TestSetupEscDismissableWithKey(t *testing.T) {
	a := testApp(&fakeSearcher{}, &fakeCreds{key: "k"})
	a.mode = modeSetup // user opened settings explicitly

	a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if a.mode != modeSearch {
		t.Errorf("expected setup dismissed, got %v", a.mode)
	}
}

func TestErrorMessagePerKind(t *testing.T) {
	kinds := []newsapi.Kind{
		newsapi.KindMissingCredential,
		newsapi.KindInvalidCredential,
		newsapi.KindQuotaExceeded,
		newsapi.KindRateLimited,
		newsapi.KindTransportFailure,
		newsapi.KindEmptyResult,
	}
	seen := map[string]bool{}
	for _, k := range kinds {
		msg := errorMessage(&newsapi.Error{Kind: k}, k)
		if msg == "" {
			t.Errorf("kind %v: empty message", k)
		}
		if seen[msg] {
			t.Errorf("kind %v: message %q reused", k, msg)
		}
		seen[msg] = true
	}

	apiMsg := errorMessage(&newsapi.Error{Kind: newsapi.KindAPIError, Status: 502}, newsapi.KindAPIError)
	if !strings.Contains(apiMsg, "502") {
		t.Errorf("expected status in api error message, got %q", apiMsg)
	}
}

func TestViewRendersWithoutSize(t *testing.T) {
	a := NewApp(RunOpts{Client: &fakeSearcher{}, Credentials: &fakeCreds{key: "k"}, Filters: newsapi.DefaultFilters()})
	if a.View() == "" {
		t.Error("expected placeholder view before first WindowSizeMsg")
	}
}

func TestViewRendersAllModes(t *testing.T) {
	a := testApp(&fakeSearcher{}, &fakeCreds{key: "k"})
	a.results = sampleResults()

	for _, m := range []mode{modeSearch, modeSaved, modeBookmarks, modeSetup, modeHelp, modeFilter} {
		a.mode = m
		if a.View() == "" {
			t.Errorf("mode %v: empty view", m)
		}
	}
}
