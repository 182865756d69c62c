// Package tui is the terminal front end for the todo list. It talks to the
// server only through a Client and never caches beyond the last loaded list.
package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jaekwang-park/todolist/internal/model"
)

const (
	msgLoadFailed   = "Failed to load todos"
	msgCreateFailed = "Failed to create todo"
	msgUpdateFailed = "Failed to update todo"
	msgDeleteFailed = "Failed to delete todo"
)

// Client is the subset of client.Client the UI needs.
type Client interface {
	List(ctx context.Context) ([]model.TodoItem, error)
	Create(ctx context.Context, item model.TodoItem) (model.TodoItem, error)
	Update(ctx context.Context, id int64, item model.TodoItem) error
	Delete(ctx context.Context, id int64) error
}

type itemsLoadedMsg struct{ items []model.TodoItem }

type createdMsg struct{ item model.TodoItem }

// mutatedMsg follows a successful update or delete.
type mutatedMsg struct{}

type errMsg struct {
	text string
	err  error
}

// listItem adapts model.TodoItem to bubbles/list.Item
type listItem struct{ todo model.TodoItem }

func (i listItem) Title() string       { return i.todo.Title }
func (i listItem) Description() string { return i.todo.DescriptionOrEmpty() }
func (i listItem) FilterValue() string { return i.todo.Title }

// itemDelegate renders one line per todo plus its description, if any.
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}

	box := mutedStyle.Render(boxUnchecked)
	text := it.todo.Title
	if it.todo.IsCompleted {
		box = successStyle.Render(boxChecked)
		text = doneStyle.Render(text)
	}
	line := box + " " + text
	if desc := it.todo.DescriptionOrEmpty(); desc != "" {
		line += "  " + mutedStyle.Render(desc)
	}

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}

var keys = struct {
	add, toggle, remove, reload, quit key.Binding
}{
	add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
	remove: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// Model is the Bubble Tea model for the todo screen.
type Model struct {
	ctx    context.Context
	client Client
	logger *slog.Logger
	now    func() time.Time

	list    list.Model
	items   []model.TodoItem
	loading bool
	err     string

	adding      bool
	title       textinput.Model
	description textinput.Model
}

// New builds the model. Nothing is fetched until Init runs.
func New(ctx context.Context, c Client, logger *slog.Logger) Model {
	l := list.New(nil, itemDelegate{}, 80, 20)
	l.SetShowHelp(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("todo", "todos")
	l.KeyMap.Quit.SetEnabled(false)
	extra := func() []key.Binding { return []key.Binding{keys.add, keys.toggle, keys.remove, keys.reload} }
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	title := textinput.New()
	title.Prompt = "Title: "
	title.Placeholder = "What needs doing?"
	title.CharLimit = 200

	description := textinput.New()
	description.Prompt = "Description: "
	description.Placeholder = "optional"
	description.CharLimit = 500

	m := Model{
		ctx:         ctx,
		client:      c,
		logger:      logger,
		now:         time.Now,
		list:        l,
		loading:     true,
		title:       title,
		description: description,
	}
	m.list.Title = m.header()
	return m
}

// Run starts the full-screen program and blocks until the user quits.
func Run(ctx context.Context, c Client, logger *slog.Logger) error {
	p := tea.NewProgram(New(ctx, c, logger), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return m.load()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h := msg.Height - 4
		if m.adding {
			h -= 4
		}
		m.list.SetSize(msg.Width-4, h)
		return m, nil

	case itemsLoadedMsg:
		m.loading = false
		m.err = ""
		m.items = msg.items
		m.list.Title = m.header()
		return m, m.list.SetItems(toListItems(msg.items))

	case createdMsg:
		m.adding = false
		m.title.SetValue("")
		m.description.SetValue("")
		m.title.Blur()
		m.description.Blur()
		m.loading = true
		return m, m.load()

	case mutatedMsg:
		m.loading = true
		return m, m.load()

	case errMsg:
		m.loading = false
		m.err = msg.text
		m.logger.Error(msg.text, "error", msg.err)
		return m, nil

	case tea.KeyMsg:
		if m.adding {
			return m.updateForm(msg)
		}
		if m.list.FilterState() != list.Filtering {
			if next, cmd, handled := m.handleListKey(msg); handled {
				return next, cmd
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit, true
	case key.Matches(msg, keys.add):
		m.adding = true
		m.description.Blur()
		return m, m.title.Focus(), true
	case key.Matches(msg, keys.reload):
		m.loading = true
		return m, m.load(), true
	case key.Matches(msg, keys.toggle):
		it, ok := m.selected()
		if !ok {
			return m, nil, true
		}
		return m, m.update(it.Toggled(m.now())), true
	case key.Matches(msg, keys.remove):
		it, ok := m.selected()
		if !ok {
			return m, nil, true
		}
		return m, m.remove(it.ID), true
	}
	return m, nil, false
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.adding = false
		m.title.Blur()
		m.description.Blur()
		return m, nil
	case "tab", "shift+tab":
		if m.title.Focused() {
			m.title.Blur()
			return m, m.description.Focus()
		}
		m.description.Blur()
		return m, m.title.Focus()
	case "enter":
		title := strings.TrimSpace(m.title.Value())
		if title == "" {
			return m, nil
		}
		return m, m.create(model.TodoItem{
			Title:       title,
			Description: model.StringPtr(strings.TrimSpace(m.description.Value())),
		})
	}

	var cmd tea.Cmd
	if m.description.Focused() {
		m.description, cmd = m.description.Update(msg)
	} else {
		m.title, cmd = m.title.Update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder
	if m.err != "" {
		b.WriteString(errorStyle.Render("✖ "+m.err) + "\n")
	}
	if m.loading {
		b.WriteString(mutedStyle.Render("Loading…") + "\n")
	}
	b.WriteString(m.list.View())

	if m.adding {
		form := "Add new todo\n" + m.title.View() + "\n" + m.description.View()
		b.WriteString("\n" + panelStyle.Render(form))
	}
	return panelStyle.Render(b.String())
}

func (m Model) selected() (model.TodoItem, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return model.TodoItem{}, false
	}
	return it.todo, true
}

func (m Model) header() string {
	done := 0
	for _, it := range m.items {
		if it.IsCompleted {
			done++
		}
	}
	return fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render("Todos"),
		successStyle.Render("✔"), done,
		pendingStyle.Render("•"), len(m.items)-done,
		accentStyle.Render("Total"), len(m.items),
	)
}

func (m Model) load() tea.Cmd {
	ctx, c := m.ctx, m.client
	return func() tea.Msg {
		items, err := c.List(ctx)
		if err != nil {
			return errMsg{text: msgLoadFailed, err: err}
		}
		return itemsLoadedMsg{items: items}
	}
}

func (m Model) create(item model.TodoItem) tea.Cmd {
	ctx, c := m.ctx, m.client
	return func() tea.Msg {
		created, err := c.Create(ctx, item)
		if err != nil {
			return errMsg{text: msgCreateFailed, err: err}
		}
		return createdMsg{item: created}
	}
}

func (m Model) update(item model.TodoItem) tea.Cmd {
	ctx, c := m.ctx, m.client
	return func() tea.Msg {
		if err := c.Update(ctx, item.ID, item); err != nil {
			return errMsg{text: msgUpdateFailed, err: err}
		}
		return mutatedMsg{}
	}
}

func (m Model) remove(id int64) tea.Cmd {
	ctx, c := m.ctx, m.client
	return func() tea.Msg {
		if err := c.Delete(ctx, id); err != nil {
			return errMsg{text: msgDeleteFailed, err: err}
		}
		return mutatedMsg{}
	}
}

func toListItems(items []model.TodoItem) []list.Item {
	out := make([]list.Item, 0, len(items))
	for _, it := range items {
		out = append(out, listItem{todo: it})
	}
	return out
}
