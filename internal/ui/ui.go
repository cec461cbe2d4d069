package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tobyfell/movx/internal/models"
	"github.com/tobyfell/movx/internal/services"
	"github.com/tobyfell/movx/internal/stores"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	SearchView ViewState = iota
	ResultListView
	DetailView
	SaveView
)

// Model represents the TUI application state.
type Model struct {
	ctx            context.Context
	view           ViewState
	searcher       services.Searcher
	movies         *stores.MovieStore
	width          int
	height         int
	searchInput    textinput.Model
	resultList     list.Model
	results        []models.SearchResult
	selectedResult *models.SearchResult
	detail         *models.MovieDetail
	saved          *models.Movie
	err            error
	help           help.Model
	keys           keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, searcher services.Searcher, movies *stores.MovieStore) *Model {
	input := textinput.New()
	input.Placeholder = "Search for a movie..."
	input.Focus()
	input.CharLimit = 120
	input.Width = 50

	return &Model{
		ctx:         ctx,
		view:        SearchView,
		searcher:    searcher,
		movies:      movies,
		searchInput: input,
		help:        help.New(),
		keys:        newKeyMap(),
	}
}

// Init starts the TUI with a blinking cursor in the search input.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.resultList.Width() == 0 {
			m.resultList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case SearchView:
			return m.handleSearchKeys(msg)
		case ResultListView:
			return m.handleResultListKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		case SaveView:
			return m.handleSaveKeys(msg)
		}

	case searchResultsMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = SearchView
			return m, nil
		}
		m.err = nil
		m.results = msg.page.Search
		items := make([]list.Item, len(msg.page.Search))
		for i, result := range msg.page.Search {
			items[i] = resultItem{result: result}
		}
		m.resultList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.resultList.Title = fmt.Sprintf("Results for '%s'", m.searchInput.Value())
		m.resultList.SetSize(m.width-4, m.height-8)
		m.view = ResultListView
		return m, nil

	case detailFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = ResultListView
			return m, nil
		}
		m.err = nil
		m.detail = msg.detail
		m.view = DetailView
		return m, nil

	case movieSavedMsg:
		m.saved = msg.movie
		m.err = msg.err
		m.view = SaveView
		return m, nil
	}

	return m.updateChildren(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case SearchView:
		return m.renderSearch()
	case ResultListView:
		return m.renderResultList()
	case DetailView:
		return m.renderDetail()
	case SaveView:
		return m.renderSave()
	default:
		return ""
	}
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter":
		term := m.searchInput.Value()
		if term != "" {
			return m, m.search(term)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m *Model) handleResultListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = SearchView
		return m, nil
	case "enter":
		selected := m.resultList.SelectedItem()
		if selected != nil {
			if item, ok := selected.(resultItem); ok {
				m.selectedResult = &item.result
				return m, m.fetchDetail(item.result.ImdbID)
			}
		}
	}

	var cmd tea.Cmd
	m.resultList, cmd = m.resultList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "n":
		m.view = ResultListView
		return m, nil
	case "y":
		return m, m.saveMovie()
	}
	return m, nil
}

func (m *Model) handleSaveKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		m.view = SearchView
		m.searchInput.SetValue("")
		m.searchInput.Focus()
		m.selectedResult = nil
		m.detail = nil
		m.saved = nil
		m.err = nil
		return m, textinput.Blink
	case "esc":
		m.view = ResultListView
		return m, nil
	}
	return m, nil
}

func (m *Model) updateChildren(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case SearchView:
		m.searchInput, cmd = m.searchInput.Update(msg)
	case ResultListView:
		m.resultList, cmd = m.resultList.Update(msg)
	}
	return m, cmd
}

func (m *Model) search(term string) tea.Cmd {
	return func() tea.Msg {
		page, err := m.searcher.Search(m.ctx, term)
		return searchResultsMsg{page: page, err: err}
	}
}

func (m *Model) fetchDetail(imdbID string) tea.Cmd {
	return func() tea.Msg {
		detail, err := m.searcher.Detail(m.ctx, imdbID)
		return detailFetchedMsg{detail: detail, err: err}
	}
}

func (m *Model) saveMovie() tea.Cmd {
	return func() tea.Msg {
		movie, err := m.movies.Add(m.ctx, models.MovieFromSearch(*m.selectedResult))
		return movieSavedMsg{movie: movie, err: err}
	}
}

func (m *Model) renderSearch() string {
	title := styles.title.Render("Search Movies")

	var errLine string
	if m.err != nil {
		errLine = styles.error.Render(fmt.Sprintf("\n%v", m.err))
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s%s\n\n%s", title, m.searchInput.View(), errLine, helpView)
}

func (m *Model) renderResultList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.resultList.View(), helpView)
}

func (m *Model) renderDetail() string {
	title := styles.title.Render(fmt.Sprintf("%s (%s)", m.detail.Title, m.detail.Year))

	info := fmt.Sprintf(
		"\nDirector: %s\nGenre: %s\nRuntime: %s\nRating: %s\n\n%s\n",
		m.detail.Director,
		m.detail.Genre,
		m.detail.Runtime,
		m.detail.ImdbRating,
		m.detail.Plot,
	)

	prompt := styles.warning.Render("Save this movie to your catalog?")

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s%s\n%s\n\n%s", title, info, prompt, helpView)
}

func (m *Model) renderSave() string {
	var status string
	if m.err != nil {
		status = styles.error.Render(fmt.Sprintf("✗ Save failed: %v", m.err))
	} else if m.saved != nil {
		status = styles.success.Render(fmt.Sprintf("✓ Saved '%s' to your catalog", m.saved.Title))
	}

	helpKeys := []key.Binding{m.keys.restart, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n\n%s", status, helpView)
}
