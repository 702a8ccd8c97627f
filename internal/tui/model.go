// Package tui renders the chat client as a Bubble Tea program: the
// conversation on the left, the paginated history panel on the right.
// All view state lives in the conversation, history, and composer
// packages; this package only draws it and translates key presses and
// command results into state transitions.
package tui

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/tripdocs/tripdocs/internal/api"
	"github.com/tripdocs/tripdocs/internal/composer"
	"github.com/tripdocs/tripdocs/internal/conversation"
	"github.com/tripdocs/tripdocs/internal/history"
	"github.com/tripdocs/tripdocs/internal/logger"
)

type focusArea int

const (
	focusInput focusArea = iota
	focusHistory
	focusFilter
)

// Model is the Bubble Tea model for the whole page.
type Model struct {
	client   *api.Client
	userID   string
	examples []string

	conv  *conversation.Conversation
	panel *history.Panel
	comp  *composer.Composer

	// lastRefresh tracks the composer's refresh counter; a change means
	// the history panel re-fetches page 1.
	lastRefresh uint64

	input    textarea.Model
	filter   textinput.Model
	view     viewport.Model
	spin     spinner.Model
	renderer *glamour.TermRenderer

	keys   keyMap
	focus  focusArea
	cursor int
	status string

	width  int
	height int
	ready  bool
}

// New builds the TUI model around an API client.
func New(client *api.Client, userID string, pageSize int, examples []string) Model {
	input := textarea.New()
	input.Placeholder = "Ask about travel documentation requirements..."
	input.CharLimit = api.MaxQueryLen
	input.SetHeight(3)
	input.ShowLineNumbers = false
	input.Focus()

	filter := textinput.New()
	filter.Placeholder = "Search queries..."

	spin := spinner.New(spinner.WithSpinner(spinner.Dot))

	comp := composer.New()
	conv := conversation.New(conversation.Callbacks{
		QuerySubmitted:   func(api.QueryResponse) { comp.QuerySubmitted() },
		SelectionCleared: func() { comp.ClearSelection() },
	})

	return Model{
		client:   client,
		userID:   userID,
		examples: examples,
		conv:     conv,
		panel:    history.NewPanel(pageSize),
		comp:     comp,
		input:    input,
		filter:   filter,
		spin:     spin,
		keys:     defaultKeyMap(),
	}
}

// Init fetches the first history page and starts the spinner.
func (m Model) Init() tea.Cmd {
	seq := m.panel.StartFetch(1, false)
	return tea.Batch(
		m.fetchHistoryCmd(seq, 1),
		m.spin.Tick,
		textarea.Blink,
	)
}

// Update is the single-threaded event loop: every message mutates state
// here and nowhere else.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.resize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case submitResultMsg:
		return m.handleSubmitResult(msg)

	case historyResultMsg:
		m.panel.Apply(msg.seq, msg.page, msg.err)
		m.clampCursor()
		m.syncViewport()
		return m, nil

	case statusExpiredMsg:
		m.status = ""
		return m, nil
	}

	return m.updateChildren(msg)
}

func (m Model) handleSubmitResult(msg submitResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		logger.Warn("query failed", "error", msg.err)
		m.conv.Fail(msg.err)
	} else {
		m.conv.Complete(msg.resp)
	}
	m.syncViewport()

	// The completion hook bumped the refresh counter; consume the signal
	// by re-fetching page 1 without the full-page skeleton.
	if m.comp.RefreshCount() != m.lastRefresh {
		m.lastRefresh = m.comp.RefreshCount()
		seq := m.panel.StartFetch(1, true)
		return m, m.fetchHistoryCmd(seq, 1)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.FocusNext):
		m.cycleFocus()
		return m, nil

	case key.Matches(msg, m.keys.ClearChat):
		m.conv.Clear()
		m.syncViewport()
		return m, nil

	case key.Matches(msg, m.keys.CopyAnswer):
		if answer, ok := m.conv.LastAnswer(); ok {
			if err := clipboard.WriteAll(answer); err != nil {
				return m.flashStatus("Failed to copy to clipboard")
			}
			return m.flashStatus("Copied to clipboard!")
		}
		return m, nil

	case key.Matches(msg, m.keys.Example):
		return m.useExample(msg.String())
	}

	switch m.focus {
	case focusInput:
		return m.handleInputKey(msg)
	case focusHistory:
		return m.handleHistoryKey(msg)
	case focusFilter:
		return m.handleFilterKey(msg)
	}
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Send) {
		return m.submit()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.panel.Filtered())-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		return m.selectHistoryRow()

	case key.Matches(msg, m.keys.PrevPage):
		if m.panel.CanPrev() {
			page := m.panel.Page() - 1
			seq := m.panel.StartFetch(page, false)
			return m, m.fetchHistoryCmd(seq, page)
		}
		return m, nil

	case key.Matches(msg, m.keys.NextPage):
		if m.panel.CanNext() {
			page := m.panel.Page() + 1
			seq := m.panel.StartFetch(page, false)
			return m, m.fetchHistoryCmd(seq, page)
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		seq := m.panel.StartFetch(1, true)
		return m, m.fetchHistoryCmd(seq, 1)

	case key.Matches(msg, m.keys.Filter):
		m.focus = focusFilter
		m.filter.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.LeaveFilter) {
		m.focus = focusHistory
		m.filter.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.panel.SetFilter(m.filter.Value())
	m.clampCursor()
	return m, cmd
}

// submit validates the input locally, seeds the optimistic message pair,
// and dispatches the API call. The in-flight gate inside the
// conversation makes a second Enter a no-op.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.conv.InFlight() {
		return m, nil
	}
	raw := m.input.Value()
	if strings.TrimSpace(raw) == "" {
		return m, nil
	}
	if problem := api.ValidateQuery(raw); problem != "" {
		return m.flashStatus(problem)
	}

	text, ok := m.conv.Begin(raw)
	if !ok {
		return m, nil
	}
	m.input.Reset()
	m.syncViewport()
	return m, m.submitCmd(text)
}

func (m Model) selectHistoryRow() (tea.Model, tea.Cmd) {
	rows := m.panel.Filtered()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return m, nil
	}
	entry := rows[m.cursor]
	m.comp.SelectHistory(entry)
	m.applySelection()
	return m, nil
}

func (m Model) useExample(keyStr string) (tea.Model, tea.Cmd) {
	idx := exampleIndex(keyStr)
	if idx < 0 || idx >= len(m.examples) {
		return m, nil
	}
	m.comp.SelectHistory(api.ExampleTemplate(m.examples[idx]))
	m.applySelection()
	return m, nil
}

// applySelection feeds the composer's current selection into the
// conversation view, branching on the example-template sentinel.
func (m *Model) applySelection() {
	selected, ok := m.comp.Selected()
	if !ok {
		return
	}
	prefill, replaced := m.conv.ApplySelection(selected)
	if replaced {
		m.syncViewport()
		return
	}
	m.input.SetValue(prefill)
	m.focus = focusInput
	m.input.Focus()
	m.filter.Blur()
}

func (m *Model) cycleFocus() {
	switch m.focus {
	case focusInput:
		m.focus = focusHistory
		m.input.Blur()
	default:
		m.focus = focusInput
		m.input.Focus()
		m.filter.Blur()
	}
}

func (m *Model) clampCursor() {
	if n := len(m.panel.Filtered()); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func (m Model) flashStatus(text string) (tea.Model, tea.Cmd) {
	m.status = text
	return m, statusExpiryCmd()
}

func (m Model) updateChildren(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.view, cmd = m.view.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}
