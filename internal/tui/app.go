package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matheuskafuri/newsdesk/internal/browser"
	"github.com/matheuskafuri/newsdesk/internal/newsapi"
	"github.com/matheuskafuri/newsdesk/internal/session"
)

type focusPane int

const (
	focusList focusPane = iota
	focusPreview
)

type mode int

const (
	modeSearch mode = iota
	modeSaved
	modeBookmarks
	modeSetup
	modeFilter
	modeHelp
)

// Searcher is what the app needs from the news API client.
type Searcher interface {
	Search(ctx context.Context, query string, f newsapi.Filters) ([]newsapi.Article, error)
}

// Credentials is what the app needs from the credential store.
type Credentials interface {
	Get() (string, bool)
	Set(key string) error
}

type App struct {
	client Searcher
	creds  Credentials

	results   []newsapi.Article
	degraded  bool // results hold the synthetic fallback article
	saved     *session.SavedQueries
	bookmarks *session.Bookmarks

	mode     mode
	prevMode mode
	focus    focusPane

	cursor         int
	savedCursor    int
	bookmarkCursor int
	previewScroll  int

	width  int
	height int

	// Sub-components
	queryInput textinput.Model
	keyInput   textinput.Model
	spinner    spinner.Model
	filterBar  filterBar

	// State
	typing      bool
	searching   bool
	errMsg      string
	currentDate string
}

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Client       Searcher
	Credentials  Credentials
	Filters      newsapi.Filters
	SavedQueries []string
}

func NewApp(opts RunOpts) *App {
	qi := textinput.New()
	qi.Placeholder = "Search the news..."
	qi.Prompt = searchPromptStyle.Render("/ ")
	qi.CharLimit = 200

	ki := textinput.New()
	ki.Placeholder = "paste API key"
	ki.Prompt = searchPromptStyle.Render("> ")
	ki.EchoMode = textinput.EchoPassword
	ki.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	startMode := modeSearch
	if _, ok := opts.Credentials.Get(); !ok {
		startMode = modeSetup
		ki.Focus()
	}

	seed := opts.SavedQueries
	if len(seed) == 0 {
		seed = session.DefaultQueries
	}

	return &App{
		client:      opts.Client,
		creds:       opts.Credentials,
		saved:       session.NewSavedQueries(seed),
		bookmarks:   session.NewBookmarks(),
		filterBar:   newFilterBar(opts.Filters),
		queryInput:  qi,
		keyInput:    ki,
		spinner:     sp,
		currentDate: time.Now().Format("Jan 2"),
		mode:        startMode,
	}
}

func (a *App) Init() tea.Cmd {
	if a.mode == modeSetup {
		return textinput.Blink
	}
	return nil
}

// startSearch kicks off one search. A search already in flight wins: new
// requests are ignored until it completes (no cancellation, no queueing).
func (a *App) startSearch(query string) tea.Cmd {
	if a.searching {
		return nil
	}
	query = strings.TrimSpace(query)
	if query == "" {
		a.errMsg = "Type a query to search."
		return nil
	}

	a.searching = true
	a.errMsg = ""

	client := a.client
	filters := a.filterBar.filters()
	return tea.Batch(func() tea.Msg {
		articles, err := client.Search(context.Background(), query, filters)
		if err != nil {
			return searchFailedMsg{query: query, err: err}
		}
		return searchDoneMsg{articles: articles}
	}, a.spinner.Tick)
}

func (a *App) saveKeyCmd(key string) tea.Cmd {
	creds := a.creds
	return func() tea.Msg {
		if err := creds.Set(key); err != nil {
			return keySaveFailedMsg{err: err}
		}
		return keySavedMsg{}
	}
}

func openBrowserCmd(url string) tea.Cmd {
	return func() tea.Msg {
		if err := browser.Open(url); err != nil {
			return browserErrMsg{err: err}
		}
		return nil
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case searchDoneMsg:
		a.searching = false
		a.results = msg.articles
		a.degraded = false
		a.cursor = 0
		a.previewScroll = 0
		a.errMsg = ""
		return a, nil

	case searchFailedMsg:
		a.searching = false
		return a.handleSearchFailure(msg)

	case keySavedMsg:
		a.keyInput.SetValue("")
		a.keyInput.Blur()
		a.errMsg = ""
		a.mode = modeSearch
		return a, nil

	case keySaveFailedMsg:
		a.errMsg = msg.err.Error()
		return a, nil

	case browserErrMsg:
		a.errMsg = msg.err.Error()
		return a, nil

	case spinner.TickMsg:
		if a.searching {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

// handleSearchFailure maps each error kind to a user message. Every kind
// except EmptyResult also replaces the results with a single synthetic demo
// article so the view is never blank after an attempted search.
func (a *App) handleSearchFailure(msg searchFailedMsg) (tea.Model, tea.Cmd) {
	if errors.Is(msg.err, newsapi.ErrEmptyQuery) {
		a.errMsg = "Type a query to search."
		return a, nil
	}

	kind, ok := newsapi.KindOf(msg.err)
	if !ok {
		a.errMsg = msg.err.Error()
		return a, nil
	}

	a.errMsg = errorMessage(msg.err, kind)

	switch kind {
	case newsapi.KindEmptyResult:
		// Results stay as they were; the message is enough.
		return a, nil
	case newsapi.KindMissingCredential:
		a.mode = modeSetup
		a.keyInput.Focus()
	}

	a.results = []newsapi.Article{newsapi.FallbackArticle(msg.query, msg.err)}
	a.degraded = true
	a.cursor = 0
	a.previewScroll = 0
	return a, textinput.Blink
}

func errorMessage(err error, kind newsapi.Kind) string {
	switch kind {
	case newsapi.KindMissingCredential:
		return "No API key configured. Add one to search."
	case newsapi.KindInvalidCredential:
		return "The API key was rejected. Update it in settings (c)."
	case newsapi.KindQuotaExceeded:
		return "Daily request quota exceeded."
	case newsapi.KindRateLimited:
		return "Rate limited. Wait a moment and try again."
	case newsapi.KindTransportFailure:
		return "Could not reach the news API. Showing a demo result."
	case newsapi.KindEmptyResult:
		return "No articles found. Try adjusting the query or filters."
	default:
		var e *newsapi.Error
		if errors.As(err, &e) && e.Status != 0 {
			return fmt.Sprintf("The news API returned HTTP %d.", e.Status)
		}
		return err.Error()
	}
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.mode {
	case modeSetup:
		return a.handleSetupKey(msg)
	case modeFilter:
		return a.handleFilterKey(msg)
	case modeHelp:
		if s := msg.String(); s == "?" || s == "esc" || s == "q" {
			a.mode = a.prevMode
		}
		return a, nil
	}

	if a.typing {
		return a.handleQueryKey(msg)
	}

	// View switching works from any browsing mode.
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "1":
		a.mode = modeSearch
		return a, nil
	case "2":
		a.mode = modeSaved
		return a, nil
	case "3":
		a.mode = modeBookmarks
		return a, nil
	case "c":
		a.mode = modeSetup
		a.keyInput.Focus()
		return a, textinput.Blink
	case "?":
		a.prevMode = a.mode
		a.mode = modeHelp
		return a, nil
	}

	switch a.mode {
	case modeSearch:
		return a.handleSearchViewKey(msg)
	case modeSaved:
		return a.handleSavedKey(msg)
	case modeBookmarks:
		return a.handleBookmarksKey(msg)
	}

	return a, nil
}

func (a *App) handleSearchViewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "/":
		a.typing = true
		a.queryInput.Focus()
		return a, textinput.Blink
	case "f":
		a.mode = modeFilter
		a.filterBar.filterMode = true
		return a, nil
	case "j", "down":
		if a.focus == focusList && a.cursor < len(a.results)-1 {
			a.cursor++
			a.previewScroll = 0
		} else if a.focus == focusPreview {
			a.previewScroll++
		}
		return a, nil
	case "k", "up":
		if a.focus == focusList && a.cursor > 0 {
			a.cursor--
			a.previewScroll = 0
		} else if a.focus == focusPreview && a.previewScroll > 0 {
			a.previewScroll--
		}
		return a, nil
	case "tab":
		if a.focus == focusList {
			a.focus = focusPreview
		} else {
			a.focus = focusList
		}
		return a, nil
	case "b", " ":
		if art, ok := a.selectedResult(); ok {
			a.bookmarks.Toggle(*art)
		}
		return a, nil
	case "s":
		if q := strings.TrimSpace(a.queryInput.Value()); q != "" {
			a.saved.Add(q)
		}
		return a, nil
	case "o", "enter":
		if art, ok := a.selectedResult(); ok {
			return a, openBrowserCmd(art.URL)
		}
		return a, nil
	case "r":
		return a, a.startSearch(a.queryInput.Value())
	}
	return a, nil
}

func (a *App) selectedResult() (*newsapi.Article, bool) {
	if len(a.results) == 0 || a.cursor >= len(a.results) {
		return nil, false
	}
	return &a.results[a.cursor], true
}

func (a *App) handleQueryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.typing = false
		a.queryInput.Blur()
		return a, nil
	case "enter":
		a.typing = false
		a.queryInput.Blur()
		return a, a.startSearch(a.queryInput.Value())
	}

	var cmd tea.Cmd
	a.queryInput, cmd = a.queryInput.Update(msg)
	return a, cmd
}

func (a *App) handleSetupKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Setup is sticky until a key exists from some source.
		if _, ok := a.creds.Get(); ok {
			a.keyInput.Blur()
			a.errMsg = ""
			a.mode = modeSearch
		}
		return a, nil
	case "enter":
		return a, a.saveKeyCmd(a.keyInput.Value())
	}

	var cmd tea.Cmd
	a.keyInput, cmd = a.keyInput.Update(msg)
	return a, cmd
}

func (a *App) handleSavedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	queries := a.saved.All()
	switch msg.String() {
	case "j", "down":
		if a.savedCursor < len(queries)-1 {
			a.savedCursor++
		}
		return a, nil
	case "k", "up":
		if a.savedCursor > 0 {
			a.savedCursor--
		}
		return a, nil
	case "d", "x":
		if a.savedCursor < len(queries) {
			a.saved.Remove(queries[a.savedCursor])
			if a.savedCursor >= a.saved.Len() && a.savedCursor > 0 {
				a.savedCursor--
			}
		}
		return a, nil
	case "enter", "r":
		if a.savedCursor < len(queries) {
			q := queries[a.savedCursor]
			a.queryInput.SetValue(q)
			a.mode = modeSearch
			return a, a.startSearch(q)
		}
		return a, nil
	}
	return a, nil
}

func (a *App) handleBookmarksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	marked := a.bookmarks.All()
	switch msg.String() {
	case "j", "down":
		if a.focus == focusList && a.bookmarkCursor < len(marked)-1 {
			a.bookmarkCursor++
			a.previewScroll = 0
		} else if a.focus == focusPreview {
			a.previewScroll++
		}
		return a, nil
	case "k", "up":
		if a.focus == focusList && a.bookmarkCursor > 0 {
			a.bookmarkCursor--
			a.previewScroll = 0
		} else if a.focus == focusPreview && a.previewScroll > 0 {
			a.previewScroll--
		}
		return a, nil
	case "tab":
		if a.focus == focusList {
			a.focus = focusPreview
		} else {
			a.focus = focusList
		}
		return a, nil
	case "b", " ", "d", "x":
		if a.bookmarkCursor < len(marked) {
			a.bookmarks.Toggle(marked[a.bookmarkCursor])
			if a.bookmarkCursor >= a.bookmarks.Len() && a.bookmarkCursor > 0 {
				a.bookmarkCursor--
			}
		}
		return a, nil
	case "o", "enter":
		if a.bookmarkCursor < len(marked) {
			return a, openBrowserCmd(marked[a.bookmarkCursor].URL)
		}
		return a, nil
	}
	return a, nil
}

func (a *App) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "f":
		a.mode = modeSearch
		a.filterBar.filterMode = false
		return a, nil
	case "left", "h":
		if a.filterBar.filterCursor > 0 {
			a.filterBar.filterCursor--
		}
		return a, nil
	case "right", "l":
		if a.filterBar.filterCursor < len(a.filterBar.fields)-1 {
			a.filterBar.filterCursor++
		}
		return a, nil
	case " ", "enter", "j", "down":
		a.filterBar.cycleCurrent(1)
		return a, nil
	case "k", "up":
		a.filterBar.cycleCurrent(-1)
		return a, nil
	}
	return a, nil
}

func (a *App) renderTabs() string {
	sep := tabSeparatorStyle.Render(" · ")
	tab := func(label string, m mode) string {
		active := a.mode == m || (m == modeSearch && (a.mode == modeFilter || a.mode == modeSetup))
		if active {
			return tabActiveStyle.Render(label)
		}
		return tabInactiveStyle.Render(label)
	}

	savedLabel := "2 saved"
	if n := a.saved.Len(); n > 0 {
		savedLabel = fmt.Sprintf("2 saved (%d)", n)
	}
	bookmarksLabel := "3 bookmarks"
	if n := a.bookmarks.Len(); n > 0 {
		bookmarksLabel = fmt.Sprintf("3 bookmarks (%d)", n)
	}

	row := tab("1 search", modeSearch) + sep + tab(savedLabel, modeSaved) + sep + tab(bookmarksLabel, modeBookmarks)
	barStyle := lipgloss.NewStyle().Background(colorSurface).Width(a.width).PaddingLeft(1)
	return barStyle.Render(row)
}

func (a *App) renderHeader() string {
	headerLeft := headerStyle.Render("newsdesk")
	headerRight := headerDateStyle.Render(a.currentDate)
	headerGap := a.width - lipgloss.Width(headerLeft) - lipgloss.Width(headerRight)
	if headerGap < 0 {
		headerGap = 0
	}
	return headerLeft + fmt.Sprintf("%*s", headerGap, "") + headerRight
}

func (a *App) View() string {
	if a.width == 0 {
		return lipgloss.NewStyle().Foreground(colorAccent).Render("  newsdesk")
	}

	header := a.renderHeader()

	if a.mode == modeSetup {
		_, hasKey := a.creds.Get()
		body := renderSetup(a.keyInput.View(), a.errMsg, hasKey, a.width, a.height-2)
		return lipgloss.JoinVertical(lipgloss.Left, header, body)
	}

	if a.mode == modeHelp {
		return a.renderHelp()
	}

	tabs := a.renderTabs()

	switch a.mode {
	case modeSaved:
		return a.renderSavedView(header, tabs)
	case modeBookmarks:
		return a.renderArticleView(header, tabs, a.bookmarks.All(), a.bookmarkCursor,
			"Nothing starred yet. Press b on a result to bookmark it.")
	default:
		return a.renderSearchView(header, tabs)
	}
}

func (a *App) renderSearchView(header, tabs string) string {
	contentHeight := a.height - 9 // header, tabs, query, filter, status, borders
	if contentHeight < 3 {
		contentHeight = 3
	}

	queryLine := a.queryInput.View()
	filterLine := a.filterBar.render(a.width)

	content := a.renderPanes(a.results, a.cursor, contentHeight,
		"No results yet. Press / and type a query.")

	status := renderStatusBar(len(a.results), a.filterBar.activeLabel(), a.width, a.typing, a.searching)
	if a.searching {
		status = a.spinner.View() + " " + status
	}
	if a.errMsg != "" {
		status = errorStyle.Render(a.errMsg)
	} else if a.degraded {
		status = noticeStyle.Render("Demo result shown; the last search failed.") + " " + status
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, tabs, queryLine, filterLine, content, status)
}

func (a *App) renderArticleView(header, tabs string, articles []newsapi.Article, cursor int, emptyHint string) string {
	contentHeight := a.height - 7 // header, tabs, status, borders
	if contentHeight < 3 {
		contentHeight = 3
	}

	content := a.renderPanes(articles, cursor, contentHeight, emptyHint)

	status := renderBottomBar("enter open  b unstar  1 search  q quit", a.width)
	if a.errMsg != "" {
		status = errorStyle.Render(a.errMsg)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, tabs, content, status)
}

func (a *App) renderSavedView(header, tabs string) string {
	contentHeight := a.height - 7
	if contentHeight < 3 {
		contentHeight = 3
	}

	inner := renderSavedList(a.saved.All(), a.savedCursor, contentHeight, a.width-4)
	pane := listPaneActiveStyle.Width(a.width - 2).Height(contentHeight).Render(inner)

	status := renderBottomBar("enter run  d delete  1 search  q quit", a.width)
	if a.errMsg != "" {
		status = errorStyle.Render(a.errMsg)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, tabs, pane, status)
}

// renderPanes draws the shared list + preview layout.
func (a *App) renderPanes(articles []newsapi.Article, cursor, contentHeight int, emptyHint string) string {
	listWidth := int(float64(a.width) * 0.35)
	previewWidth := a.width - listWidth - 1 // gap

	innerListW := listWidth - 4
	listContent := renderList(articles, cursor, a.bookmarks.IsBookmarked, emptyHint, contentHeight, innerListW)

	var listPane string
	if a.focus == focusList {
		listPane = listPaneActiveStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)
	} else {
		listPane = listPaneStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)
	}

	var selected *newsapi.Article
	if len(articles) > 0 && cursor < len(articles) {
		selected = &articles[cursor]
	}
	starred := selected != nil && a.bookmarks.IsBookmarked(selected.ID)
	innerPreviewW := previewWidth - 4
	previewContent := renderPreview(selected, starred, innerPreviewW, contentHeight, a.previewScroll)

	var previewPane string
	if a.focus == focusPreview {
		previewPane = previewPaneActiveStyle.Width(previewWidth - 2).Height(contentHeight).Render(previewContent)
	} else {
		previewPane = previewPaneStyle.Width(previewWidth - 2).Height(contentHeight).Render(previewContent)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, previewPane)
}

func (a *App) renderHelp() string {
	title := lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render("newsdesk")
	dim := helpDimStyle

	help := title + dim.Render(" — Keyboard Shortcuts") + "\n\n" +
		dim.Render("Views") + "\n" +
		"  1             Search results\n" +
		"  2             Saved queries\n" +
		"  3             Bookmarks\n" +
		"  c             API key settings\n\n" +
		dim.Render("Search view") + "\n" +
		"  /             Type a query (enter to search)\n" +
		"  f             Edit filters\n" +
		"  r             Re-run the current query\n" +
		"  s             Save the current query\n" +
		"  b, space      Star / unstar the selected article\n" +
		"  o, enter      Open article in browser\n" +
		"  j/k, tab      Navigate, switch pane\n\n" +
		dim.Render("Saved queries") + "\n" +
		"  enter         Run the selected query\n" +
		"  d, x          Delete it\n\n" +
		dim.Render("General") + "\n" +
		"  ?             Toggle this help\n" +
		"  q, ctrl+c     Quit"

	card := helpCardStyle.Render(help)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

// Run starts the TUI application.
func Run(opts RunOpts) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
