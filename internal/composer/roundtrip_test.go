package composer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tripdocs/tripdocs/internal/api"
	"github.com/tripdocs/tripdocs/internal/conversation"
	"github.com/tripdocs/tripdocs/internal/history"
)

// fakeBackend persists submitted queries and serves them back as
// history, standing in for the remote API.
type fakeBackend struct {
	entries []api.HistoryEntry
	nextID  int64
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/chat/query", func(w http.ResponseWriter, r *http.Request) {
		var req api.QueryRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		b.nextID++
		entry := api.HistoryEntry{
			ID:        b.nextID,
			Query:     req.Query,
			Response:  "No visa needed",
			Timestamp: time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC),
			Success:   true,
		}
		b.entries = append([]api.HistoryEntry{entry}, b.entries...)
		_ = json.NewEncoder(w).Encode(api.QueryResponse{
			ID:        entry.ID,
			Query:     entry.Query,
			Response:  entry.Response,
			Timestamp: entry.Timestamp,
			Success:   true,
		})
	})
	mux.HandleFunc("GET /api/chat/history", func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		size, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
		if page < 1 {
			page = 1
		}
		start := (page - 1) * size
		end := min(start+size, len(b.entries))
		var items []api.HistoryEntry
		if start < len(b.entries) {
			items = b.entries[start:end]
		}
		_ = json.NewEncoder(w).Encode(api.HistoryPage{
			Queries:    items,
			TotalCount: len(b.entries),
			Page:       page,
			PageSize:   size,
		})
	})
	return mux
}

// TestSubmitHistoryClickRoundTrip drives the full wiring: a submitted
// query lands in history, the refresh signal re-fetches page 1, and
// clicking the resulting entry reproduces the exchange in the
// conversation view.
func TestSubmitHistoryClickRoundTrip(t *testing.T) {
	backend := &fakeBackend{}
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	client, err := api.New(nil, server.URL, 0)
	require.NoError(t, err)

	comp := New()
	conv := conversation.New(conversation.Callbacks{
		QuerySubmitted:   func(api.QueryResponse) { comp.QuerySubmitted() },
		SelectionCleared: func() { comp.ClearSelection() },
	})
	panel := history.NewPanel(5)

	ctx := context.Background()

	// Submit.
	text, ok := conv.Begin("Visa for Japan")
	require.True(t, ok)
	resp, err := client.SubmitQuery(ctx, text, "")
	require.NoError(t, err)
	conv.Complete(resp)
	require.Equal(t, uint64(1), comp.RefreshCount(), "completion must raise the refresh signal")

	// The refresh signal drives a page-1 fetch.
	seq := panel.StartFetch(1, true)
	page, err := client.History(ctx, 1, panel.PageSize(), "")
	require.NoError(t, err)
	require.True(t, panel.Apply(seq, page, nil))
	require.Len(t, panel.Entries(), 1)

	// Click the entry.
	clicked := panel.Entries()[0]
	comp.SelectHistory(clicked)
	selected, ok := comp.Selected()
	require.True(t, ok)
	_, replaced := conv.ApplySelection(selected)
	require.True(t, replaced)

	msgs := conv.Messages()
	require.Len(t, msgs, 2)
	require.Equal(t, conversation.RoleUser, msgs[0].Role)
	require.Equal(t, "Visa for Japan", msgs[0].Content)
	require.Equal(t, conversation.RoleAssistant, msgs[1].Role)
	require.Equal(t, "No visa needed", msgs[1].Content)
}
