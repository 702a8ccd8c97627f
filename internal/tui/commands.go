package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tripdocs/tripdocs/internal/api"
)

// submitResultMsg settles the in-flight query submission.
type submitResultMsg struct {
	resp api.QueryResponse
	err  error
}

// historyResultMsg settles a history fetch. seq is the panel's fence
// sequence; stale results are dropped by Panel.Apply.
type historyResultMsg struct {
	seq  uint64
	page api.HistoryPage
	err  error
}

// statusExpiredMsg clears the transient status line.
type statusExpiredMsg struct{}

const statusDuration = 2 * time.Second

// submitCmd performs the query submission off the event loop. The API
// client owns the 30s timeout; no extra deadline here.
func (m Model) submitCmd(text string) tea.Cmd {
	client, userID := m.client, m.userID
	return func() tea.Msg {
		resp, err := client.SubmitQuery(context.Background(), text, userID)
		return submitResultMsg{resp: resp, err: err}
	}
}

// fetchHistoryCmd fetches one history page off the event loop.
func (m Model) fetchHistoryCmd(seq uint64, page int) tea.Cmd {
	client, userID, pageSize := m.client, m.userID, m.panel.PageSize()
	return func() tea.Msg {
		result, err := client.History(context.Background(), page, pageSize, userID)
		return historyResultMsg{seq: seq, page: result, err: err}
	}
}

func statusExpiryCmd() tea.Cmd {
	return tea.Tick(statusDuration, func(time.Time) tea.Msg {
		return statusExpiredMsg{}
	})
}
