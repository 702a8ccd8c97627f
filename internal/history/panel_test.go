package history

import (
	"errors"
	"testing"

	"github.com/tripdocs/tripdocs/internal/api"
)

func entriesPage(page, pageSize, total int, entries ...api.HistoryEntry) api.HistoryPage {
	return api.HistoryPage{Queries: entries, TotalCount: total, Page: page, PageSize: pageSize}
}

func TestPaginationBoundaries(t *testing.T) {
	panel := NewPanel(5)
	seq := panel.StartFetch(2, false)
	panel.Apply(seq, entriesPage(2, 5, 12), nil)

	if got := panel.TotalPages(); got != 3 {
		t.Fatalf("TotalPages = %d, want 3", got)
	}
	if !panel.CanPrev() || !panel.CanNext() {
		t.Errorf("page 2 of 3: prev=%v next=%v, want both enabled", panel.CanPrev(), panel.CanNext())
	}

	seq = panel.StartFetch(1, false)
	panel.Apply(seq, entriesPage(1, 5, 12), nil)
	if panel.CanPrev() {
		t.Error("page 1: previous must be disabled")
	}
	if !panel.CanNext() {
		t.Error("page 1 of 3: next must be enabled")
	}

	seq = panel.StartFetch(3, false)
	panel.Apply(seq, entriesPage(3, 5, 12), nil)
	if panel.CanNext() {
		t.Error("last page: next must be disabled")
	}
	if !panel.CanPrev() {
		t.Error("last page: previous must be enabled")
	}
}

func TestFilterIsPageLocalAndCaseInsensitive(t *testing.T) {
	panel := NewPanel(5)
	seq := panel.StartFetch(1, false)
	panel.Apply(seq, entriesPage(1, 5, 12,
		api.HistoryEntry{ID: 1, Query: "Visa for JAPAN", Response: "No visa needed"},
		api.HistoryEntry{ID: 2, Query: "Passport renewal", Response: "Takes six weeks"},
		api.HistoryEntry{ID: 3, Query: "Schengen stay", Response: "90 days per japan treaty"},
	), nil)
	seqBefore := panel.seq

	panel.SetFilter("japan")
	matched := panel.Filtered()
	if len(matched) != 2 {
		t.Fatalf("matched = %d entries, want 2 (query and response matches)", len(matched))
	}
	if matched[0].ID != 1 || matched[1].ID != 3 {
		t.Errorf("matched ids = %d,%d", matched[0].ID, matched[1].ID)
	}

	// Filtering never refetches and never touches the server totals.
	if panel.seq != seqBefore {
		t.Error("filtering dispatched a fetch")
	}
	if panel.TotalCount() != 12 || panel.TotalPages() != 3 {
		t.Errorf("totals changed: count=%d pages=%d", panel.TotalCount(), panel.TotalPages())
	}

	panel.SetFilter("")
	if len(panel.Filtered()) != 3 {
		t.Error("clearing the filter must restore the full page")
	}
}

func TestRefreshUsesNonBlockingIndicator(t *testing.T) {
	panel := NewPanel(5)
	seq := panel.StartFetch(1, false)
	if !panel.Loading() || panel.Refreshing() {
		t.Errorf("initial fetch: loading=%v refreshing=%v", panel.Loading(), panel.Refreshing())
	}
	panel.Apply(seq, entriesPage(1, 5, 2, api.HistoryEntry{ID: 1}), nil)

	seq = panel.StartFetch(1, true)
	if panel.Loading() || !panel.Refreshing() {
		t.Errorf("refresh: loading=%v refreshing=%v", panel.Loading(), panel.Refreshing())
	}
	// The already-displayed page stays visible during the refresh.
	if len(panel.Entries()) != 1 {
		t.Error("refresh must not clear displayed entries")
	}
	panel.Apply(seq, entriesPage(1, 5, 2, api.HistoryEntry{ID: 1}, api.HistoryEntry{ID: 2}), nil)
	if panel.Refreshing() {
		t.Error("refreshing flag must clear after Apply")
	}
	if len(panel.Entries()) != 2 {
		t.Error("successful refresh must replace the displayed page")
	}
}

func TestFailedFetchKeepsDisplayedEntries(t *testing.T) {
	panel := NewPanel(5)
	seq := panel.StartFetch(1, false)
	panel.Apply(seq, entriesPage(1, 5, 6, api.HistoryEntry{ID: 1}), nil)

	seq = panel.StartFetch(2, false)
	panel.Apply(seq, api.HistoryPage{}, errors.New("boom"))

	if panel.Err() == "" {
		t.Fatal("error state not set")
	}
	if len(panel.Entries()) != 1 {
		t.Error("failure must not clear previously displayed entries")
	}
	if panel.Loading() {
		t.Error("loading flag must clear on failure")
	}

	// Retry succeeds and clears the error.
	seq = panel.StartFetch(1, false)
	if panel.Err() != "" {
		t.Error("starting a fetch must clear the error state")
	}
	panel.Apply(seq, entriesPage(1, 5, 6, api.HistoryEntry{ID: 1}), nil)
	if panel.Err() != "" {
		t.Error("error state should stay clear after a successful retry")
	}
}

func TestStaleResultsAreDropped(t *testing.T) {
	panel := NewPanel(5)
	first := panel.StartFetch(2, false)
	second := panel.StartFetch(3, false)

	if applied := panel.Apply(first, entriesPage(2, 5, 20, api.HistoryEntry{ID: 2}), nil); applied {
		t.Fatal("superseded fetch must be dropped")
	}
	if applied := panel.Apply(second, entriesPage(3, 5, 20, api.HistoryEntry{ID: 3}), nil); !applied {
		t.Fatal("latest fetch must land")
	}
	if panel.Page() != 3 {
		t.Errorf("page = %d, want 3", panel.Page())
	}
	entries := panel.Entries()
	if len(entries) != 1 || entries[0].ID != 3 {
		t.Errorf("entries = %+v, want the page-3 result", entries)
	}
}

func TestNewPanelDefaults(t *testing.T) {
	panel := NewPanel(0)
	if panel.PageSize() != DefaultPageSize {
		t.Errorf("page size = %d, want %d", panel.PageSize(), DefaultPageSize)
	}
	if panel.Page() != 1 {
		t.Errorf("page = %d, want 1", panel.Page())
	}
	if panel.CanPrev() || panel.CanNext() {
		t.Error("empty panel has no navigation")
	}
}
