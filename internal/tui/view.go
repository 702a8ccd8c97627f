package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/charmbracelet/bubbles/viewport"

	"github.com/tripdocs/tripdocs/internal/api"
	"github.com/tripdocs/tripdocs/internal/conversation"
)

func (m Model) resize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height

	chatWidth := max(msg.Width-historyPaneWidth-6, 20)
	chatHeight := max(msg.Height-10, 5)

	if !m.ready {
		m.view = viewport.New(chatWidth, chatHeight)
		m.ready = true
	} else {
		m.view.Width = chatWidth
		m.view.Height = chatHeight
	}
	m.input.SetWidth(chatWidth)
	m.filter.Width = historyPaneWidth - 6

	if renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(chatWidth-2),
	); err == nil {
		m.renderer = renderer
	}

	m.syncViewport()
	return m
}

// View draws the page: chat pane, history pane, input, status/help.
func (m Model) View() string {
	if !m.ready {
		return "Starting tripdocs..."
	}

	chat := chatPaneStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("AI Travel Assistant"),
		m.view.View(),
	))
	side := historyPaneStyle.Render(m.renderHistory())

	page := lipgloss.JoinHorizontal(lipgloss.Top, chat, side)

	return lipgloss.JoinVertical(lipgloss.Left,
		page,
		m.input.View(),
		m.renderFooter(),
	)
}

func (m *Model) syncViewport() {
	if !m.ready {
		return
	}
	m.view.SetContent(m.renderMessages())
	m.view.GotoBottom()
}

func (m Model) renderMessages() string {
	msgs := m.conv.Messages()
	if len(msgs) == 0 {
		return m.renderWelcome()
	}

	var b strings.Builder
	for i, msg := range msgs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.renderMessage(msg))
	}
	return b.String()
}

func (m Model) renderMessage(msg conversation.Message) string {
	var b strings.Builder
	switch msg.Role {
	case conversation.RoleUser:
		b.WriteString(userLabelStyle.Render("You"))
	default:
		b.WriteString(assistantLabelStyle.Render("Assistant"))
	}
	b.WriteString(timestampStyle.Render("  " + msg.CreatedAt.Format("15:04:05")))
	b.WriteString("\n")

	if msg.Pending {
		b.WriteString(m.spin.View())
		b.WriteString(pendingStyle.Render("Thinking..."))
		return b.String()
	}

	content := msg.Content
	if msg.Role == conversation.RoleAssistant && m.renderer != nil {
		if rendered, err := m.renderer.Render(content); err == nil {
			content = strings.TrimRight(rendered, "\n")
		}
	}
	b.WriteString(content)
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderWelcome() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Welcome to the AI Travel Assistant"))
	b.WriteString("\n\n")
	b.WriteString("Ask me anything about travel documentation, visa requirements,\nor passport needs.\n")
	if len(m.examples) > 0 {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("Try an example:"))
		b.WriteString("\n")
		for i, example := range m.examples {
			if i >= 4 {
				break
			}
			b.WriteString(fmt.Sprintf("  %s %s\n",
				statusStyle.Render(fmt.Sprintf("alt+%d", i+1)),
				example,
			))
		}
	}
	return b.String()
}

func (m Model) renderHistory() string {
	var b strings.Builder

	header := fmt.Sprintf("%d %s", m.panel.TotalCount(), plural(m.panel.TotalCount(), "query", "queries"))
	if m.panel.Refreshing() {
		header += "  " + m.spin.View()
	}
	b.WriteString(titleStyle.Render("Recent Queries"))
	b.WriteString("  ")
	b.WriteString(mutedStyle.Render(header))
	b.WriteString("\n")
	b.WriteString(m.filter.View())
	b.WriteString("\n\n")

	switch {
	case m.panel.Err() != "":
		b.WriteString(errorStyle.Render("Failed to load query history"))
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(m.panel.Err()))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("press r to try again"))

	case m.panel.Loading():
		b.WriteString(mutedStyle.Render("Loading history..."))

	default:
		b.WriteString(m.renderHistoryRows())
	}

	if pages := m.panel.TotalPages(); pages > 1 {
		b.WriteString("\n\n")
		b.WriteString(m.renderPagination(pages))
	}
	return b.String()
}

func (m Model) renderHistoryRows() string {
	rows := m.panel.Filtered()
	if len(rows) == 0 {
		if strings.TrimSpace(m.panel.Filter()) != "" {
			return mutedStyle.Render("No matching queries found")
		}
		return mutedStyle.Render("No queries yet.\nStart a conversation to see\nyour history here.")
	}

	selectedID, hasSelection := m.comp.SelectedID()

	var b strings.Builder
	for i, entry := range rows {
		dot := successDotStyle.Render("●")
		if !entry.Success {
			dot = failureDotStyle.Render("●")
		}

		line := fmt.Sprintf("%s %s", dot, truncate(entry.Query, historyPaneWidth-8))
		meta := "  " + humanTime(entry.Timestamp)
		if entry.ResponseTime > 0 {
			meta += fmt.Sprintf("  %.2fs", entry.ResponseTime)
		}

		style := rowStyle
		if m.focus != focusInput && i == m.cursor {
			style = rowSelectedStyle
		}
		marker := "  "
		if hasSelection && entry.ID == selectedID {
			marker = "▸ "
		}

		b.WriteString(marker + style.Render(line))
		b.WriteString("\n")
		b.WriteString("  " + timestampStyle.Render(meta))
		b.WriteString("\n")
		if i < len(rows)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderPagination(pages int) string {
	prev := "← prev"
	if !m.panel.CanPrev() {
		prev = mutedStyle.Render(prev)
	}
	next := "next →"
	if !m.panel.CanNext() {
		next = mutedStyle.Render(next)
	}
	return fmt.Sprintf("%s  %s  %s",
		prev,
		mutedStyle.Render(fmt.Sprintf("page %d of %d", m.panel.Page(), pages)),
		next,
	)
}

func (m Model) renderFooter() string {
	count := fmt.Sprintf("%d/%d", len(m.input.Value()), api.MaxQueryLen)

	var left string
	switch {
	case m.status != "":
		left = statusStyle.Render(m.status)
	case m.conv.InFlight():
		left = m.spin.View() + pendingStyle.Render("Waiting for response...")
	default:
		left = helpStyle.Render("enter send • tab panel • ctrl+l clear • ctrl+y copy • ctrl+c quit")
	}
	return left + "  " + mutedStyle.Render(count)
}

func truncate(text string, maxLen int) string {
	if maxLen <= 3 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen-3]) + "..."
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// humanTime formats a timestamp the way the history panel shows it:
// relative for the recent past, date otherwise.
func humanTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("2006-01-02")
	}
}
