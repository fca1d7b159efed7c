package ui

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mthorley/starcat/internal/catalog"
	"github.com/mthorley/starcat/internal/config"
	"github.com/mthorley/starcat/internal/engine"
	"github.com/mthorley/starcat/internal/fetch"
	"github.com/mthorley/starcat/internal/prefs"
)

// Options configure the UI runtime.
type Options struct {
	Engine    *engine.Engine
	Items     *fetch.Items
	Config    config.Config
	Prefs     prefs.Prefs
	PrefsPath string // empty uses the default prefs location
}

type viewKind int

const (
	viewBrowse viewKind = iota
	viewDetail
)

// Run starts the TUI and blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	if opts.Engine == nil {
		return fmt.Errorf("ui requires an engine")
	}
	if opts.Items == nil {
		return fmt.Errorf("ui requires an item fetcher")
	}

	sub, cancel := opts.Engine.Subscribe()
	defer cancel()

	m := newModel(opts, sub)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		// Shutdown via context cancellation is a clean exit.
		return nil
	}
	return err
}

// Model is the bubbletea model for the whole application.
type Model struct {
	eng   *engine.Engine
	items *fetch.Items

	sub     <-chan engine.Selection
	sel     engine.Selection
	pending bool

	view      viewKind
	cursor    int
	searching bool
	input     textinput.Model
	spin      spinner.Model

	detail     catalog.Record
	detailErr  error
	detailBusy bool

	theme  Theme
	styles Styles
	width  int
	height int

	prefs     prefs.Prefs
	prefsPath string
}

func newModel(opts Options, sub <-chan engine.Selection) Model {
	input := textinput.New()
	input.Placeholder = "search the catalog"
	input.Prompt = "/"
	input.CharLimit = 80

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	theme := ThemeByName(opts.Prefs.Theme)

	return Model{
		eng:       opts.Engine,
		items:     opts.Items,
		sub:       sub,
		sel:       opts.Engine.Current(),
		input:     input,
		spin:      spin,
		theme:     theme,
		styles:    theme.Styles(),
		prefs:     opts.Prefs,
		prefsPath: opts.PrefsPath,
	}
}

// Messages.

type selectionMsg engine.Selection

type detailMsg struct {
	record catalog.Record
	err    error
}

// waitForSelection blocks on the engine subscription and delivers the next
// published snapshot as a message. Re-armed after every delivery.
func waitForSelection(sub <-chan engine.Selection) tea.Cmd {
	return func() tea.Msg {
		sel, ok := <-sub
		if !ok {
			return nil
		}
		return selectionMsg(sel)
	}
}

func (m Model) fetchDetail(id string) tea.Cmd {
	items := m.items
	return func() tea.Msg {
		record, err := items.Fetch(context.Background(), id)
		return detailMsg{record: record, err: err}
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForSelection(m.sub), m.spin.Tick)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case selectionMsg:
		m.sel = engine.Selection(msg)
		m.pending = false
		m.clampCursor()
		return m, waitForSelection(m.sub)

	case detailMsg:
		m.detailBusy = false
		m.detail = msg.record
		m.detailErr = msg.err
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}
	if m.view == viewDetail {
		return m.handleDetailKey(msg)
	}
	return m.handleBrowseKey(msg)
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		term := m.input.Value()
		m.searching = false
		m.input.Blur()
		m.pending = true
		m.cursor = 0
		m.eng.Search(term)
		return m, nil
	case "esc":
		m.searching = false
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "backspace":
		m.view = viewBrowse
		m.detailErr = nil
		return m, nil
	}
	return m, nil
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "/":
		m.searching = true
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.rows())-1 {
			m.cursor++
		}
		return m, nil

	case "left", "h":
		if m.browsable() && m.sel.Page > 1 {
			m.pending = true
			m.cursor = 0
			m.eng.GoToPage(m.sel.Page - 1)
		}
		return m, nil

	case "right", "l":
		if m.browsable() && m.sel.Page < m.sel.PagesCount() {
			m.pending = true
			m.cursor = 0
			m.eng.GoToPage(m.sel.Page + 1)
		}
		return m, nil

	case "s":
		if m.browsable() {
			size := nextPageSize(m.sel.PageSize)
			m.pending = true
			m.cursor = 0
			m.eng.SetPageSize(size)
			m.prefs.PageSize = size
			m.savePrefs()
		}
		return m, nil

	case "t":
		m.theme = NextTheme(m.theme.Name)
		m.styles = m.theme.Styles()
		m.prefs.Theme = m.theme.Name
		m.savePrefs()
		return m, nil

	case "enter":
		rows := m.rows()
		if len(rows) == 0 || m.cursor >= len(rows) {
			return m, nil
		}
		m.view = viewDetail
		m.detailBusy = true
		m.detailErr = nil
		m.detail = catalog.Record{}
		return m, tea.Batch(m.fetchDetail(rows[m.cursor].ID), m.spin.Tick)
	}
	return m, nil
}

// browsable reports whether paging actions make sense for the current state.
func (m Model) browsable() bool {
	return !m.sel.Err && !m.sel.Initial
}

// rows returns the records visible on the current page, or nothing while the
// state is not displayable.
func (m Model) rows() []catalog.Record {
	if !m.browsable() {
		return nil
	}
	return m.sel.DisplaySlice()
}

func (m *Model) clampCursor() {
	if n := len(m.rows()); m.cursor >= n {
		if n == 0 {
			m.cursor = 0
		} else {
			m.cursor = n - 1
		}
	}
}

func (m *Model) savePrefs() {
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		log.Printf("save prefs: %v", err)
	}
}
