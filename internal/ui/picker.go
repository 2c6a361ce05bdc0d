// Package ui implements the interactive picker: a filterable, ranked task
// list with a preview pane, a directory-scoped recommendation banner and a
// parameter prompt modal. All state is recomputed wholesale from the query,
// the task collection and the history on every event; the cursor is carried
// across re-ranking by task identity, never by raw index.
package ui

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"cmdpal/internal/config"
	"cmdpal/internal/logging"
	"cmdpal/internal/task"
	"cmdpal/internal/watcher"
)

// tasksChangedMsg reports an external change to the tasks file.
type tasksChangedMsg struct{}

// Model is the picker's Bubble Tea model.
type Model struct {
	cfg       *config.Config
	store     *task.Store
	launchDir string

	tasks   []task.Task
	history []task.HistoryEntry

	input   textinput.Model
	preview viewport.Model
	help    help.Model
	keys    KeyMap
	styles  *Styles

	rows   []task.Task
	cursor int
	scroll int
	banner string
	status string

	form     *paramForm
	watcher  *watcher.Watcher
	renderer *glamour.TermRenderer

	width  int
	height int

	selected  *task.Task
	values    map[string]string
	cancelled bool
}

// New creates a picker over an already-loaded task collection and history.
// The watcher may be nil when live reload is disabled.
func New(cfg *config.Config, store *task.Store, tasks []task.Task, history []task.HistoryEntry, launchDir string, w *watcher.Watcher) Model {
	styles := NewStyles()

	input := textinput.New()
	input.Placeholder = "Filter tasks by name, description or command..."
	input.Prompt = "> "
	input.Focus()

	m := Model{
		cfg:       cfg,
		store:     store,
		launchDir: launchDir,
		tasks:     tasks,
		history:   history,
		input:     input,
		preview:   viewport.New(0, 0),
		help:      help.New(),
		keys:      DefaultKeyMap(),
		styles:    styles,
		watcher:   w,
		cursor:    noSelection,
	}
	m.rows = deriveRows("", tasks, cfg.Search.ScoreCutoff, cfg.Search.Limit)
	m.cursor = nextCursor("", 0, m.rows)
	m.banner = bannerText(history, tasks, launchDir, cfg.Recommend.Count, styles)
	m.refreshPreview()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForFileChange())
}

// Selected returns the confirmed task and its parameter values (nil when
// the task has none). ok is false when the session was cancelled.
func (m Model) Selected() (t task.Task, values map[string]string, ok bool) {
	if m.cancelled || m.selected == nil {
		return task.Task{}, nil, false
	}
	return *m.selected, m.values, true
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.refreshPreview()
		return m, nil

	case tasksChangedMsg:
		m.reload()
		return m, m.waitForFileChange()

	case paramsConfirmedMsg:
		t := msg.task
		m.selected = &t
		m.values = msg.values
		return m, tea.Quit

	case paramsCancelledMsg:
		// Back to browsing; query text and cursor stay exactly as they
		// were when the prompt opened.
		m.form = nil
		return m, nil

	case tea.KeyMsg:
		// Global cancel wins from any state.
		if msg.String() == "ctrl+c" {
			m.cancelled = true
			return m, tea.Quit
		}
		if m.form != nil {
			form, cmd := m.form.Update(msg)
			m.form = &form
			return m, cmd
		}
		return m.updateBrowsing(msg)
	}

	if m.form != nil {
		form, cmd := m.form.Update(msg)
		m.form = &form
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancelled = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.adjustScroll()
			m.refreshPreview()
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
			m.adjustScroll()
			m.refreshPreview()
		}
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		return m.confirm()

	case key.Matches(msg, m.keys.Copy):
		if t, ok := taskAt(m.rows, m.cursor); ok {
			if err := clipboard.WriteAll(t.Command); err != nil {
				logging.Warn("failed to copy command to clipboard", "error", err)
				m.status = "copy failed"
			} else {
				m.status = "command copied"
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.PreviewUp):
		m.preview.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PreviewDown):
		m.preview.HalfViewDown()
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.rerank()
	}
	return m, cmd
}

// confirm resolves the row under the cursor and either opens the parameter
// prompt or finishes the session with the chosen task.
func (m Model) confirm() (tea.Model, tea.Cmd) {
	row, ok := taskAt(m.rows, m.cursor)
	if !ok {
		return m, nil
	}
	// Rows are keyed by id; resolve against the live collection in case
	// the row data is stale.
	t, ok := task.FindByID(m.tasks, row.ID)
	if !ok {
		return m, nil
	}

	if defs := t.ParameterDefs(); len(defs) > 0 {
		form := newParamForm(t, defs, m.styles)
		m.form = &form
		return m, textinput.Blink
	}

	m.selected = &t
	m.values = nil
	return m, tea.Quit
}

// rerank recomputes the rows for the current query, carrying the cursor by
// task identity and refreshing the preview.
func (m *Model) rerank() {
	prevID := ""
	if t, ok := taskAt(m.rows, m.cursor); ok {
		prevID = t.ID
	}
	prevIndex := m.cursor

	m.rows = deriveRows(m.input.Value(), m.tasks, m.cfg.Search.ScoreCutoff, m.cfg.Search.Limit)
	m.cursor = nextCursor(prevID, prevIndex, m.rows)
	m.adjustScroll()
	m.refreshPreview()
}

// reload re-reads the stores after an external change and recomputes the
// whole view through the same path a keystroke takes.
func (m *Model) reload() {
	tasks, needsResave := m.store.Load()
	if needsResave {
		if err := m.store.Save(tasks); err != nil {
			logging.Warn("failed to resave tasks after id generation", "error", err)
		}
	}
	m.tasks = tasks
	m.history = m.store.LoadHistory()
	m.banner = bannerText(m.history, m.tasks, m.launchDir, m.cfg.Recommend.Count, m.styles)
	m.rerank()
}

func (m Model) waitForFileChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	w := m.watcher
	return func() tea.Msg {
		<-w.Events
		return tasksChangedMsg{}
	}
}

func (m *Model) layout() {
	m.help.Width = m.width
	m.input.Width = m.width - 4
	m.preview.Width = m.previewWidth()
	m.preview.Height = m.listHeight()

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(m.previewWidth()-2),
	)
	if err != nil {
		logging.Warn("failed to create markdown renderer", "error", err)
		m.renderer = nil
	} else {
		m.renderer = renderer
	}
}

func (m Model) listWidth() int {
	if m.width <= 0 {
		return 60
	}
	return m.width * 3 / 5
}

func (m Model) previewWidth() int {
	if m.width <= 0 {
		return 40
	}
	w := m.width - m.listWidth() - 2
	if w < 10 {
		w = 10
	}
	return w
}

// listHeight is the number of rows visible in the list pane.
func (m Model) listHeight() int {
	chrome := 6 // title, banner, input, spacing, help
	if m.banner == "" {
		chrome--
	}
	h := m.height - chrome
	if h < 3 {
		h = 3
	}
	return h
}

func (m *Model) adjustScroll() {
	visible := m.listHeight()
	if m.cursor < 0 {
		m.scroll = 0
		return
	}
	if m.cursor < m.scroll {
		m.scroll = m.cursor
	} else if m.cursor >= m.scroll+visible {
		m.scroll = m.cursor - visible + 1
	}
}

// refreshPreview re-renders the preview pane for the task under the cursor.
func (m *Model) refreshPreview() {
	t, ok := taskAt(m.rows, m.cursor)
	if !ok {
		m.preview.SetContent(m.styles.EmptyList.Render("Select a task to see details..."))
		return
	}

	md := previewMarkdown(t)
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(md); err == nil {
			m.preview.SetContent(rendered)
			m.preview.GotoTop()
			return
		}
	}
	m.preview.SetContent(md)
	m.preview.GotoTop()
}

// View implements tea.Model.
func (m Model) View() string {
	if m.form != nil {
		return centerDialog(m.form.View(m.width), m.width, m.height)
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("cmdpal — find and run your commands"))
	b.WriteString("\n")
	if m.banner != "" {
		b.WriteString(m.styles.Banner.Render(m.banner))
		b.WriteString("\n")
	}
	b.WriteString(m.input.View())
	b.WriteString("\n")

	list := m.renderList()
	pane := lipgloss.JoinHorizontal(
		lipgloss.Top,
		lipgloss.NewStyle().Width(m.listWidth()).Render(list),
		m.styles.PreviewPane.Render(m.preview.View()),
	)
	b.WriteString(pane)
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(m.styles.Help.Render(m.status))
		b.WriteString("  ")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderList() string {
	if len(m.rows) == 0 {
		return m.styles.EmptyList.Render("No matching tasks.")
	}

	nameWidth := 24
	descWidth := m.listWidth() - nameWidth - 8
	if descWidth < 10 {
		descWidth = 10
	}

	visible := m.listHeight()
	end := m.scroll + visible
	if end > len(m.rows) {
		end = len(m.rows)
	}

	var b strings.Builder
	for i := m.scroll; i < end; i++ {
		t := m.rows[i]
		name := truncate(t.Name, nameWidth)
		desc := truncate(t.Description, descWidth)

		if i == m.cursor {
			b.WriteString(m.styles.Cursor.Render("▸ "))
			b.WriteString(m.styles.SelectedRow.Render(name))
		} else {
			b.WriteString("  ")
			b.WriteString(m.styles.RowName.Render(name))
		}
		if desc != "" {
			b.WriteString("  ")
			b.WriteString(m.styles.RowDesc.Render(desc))
		}
		b.WriteString("  ")
		b.WriteString(m.styles.RowCwd.Render(truncate(t.Cwd, 20)))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
