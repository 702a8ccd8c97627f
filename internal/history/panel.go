// Package history holds the view state of the paginated history panel:
// the loaded page of past query/response pairs, the page-local text
// filter, and the loading/refreshing/error flags. Fetching itself stays
// with the caller; StartFetch/Apply bracket each fetch and fence
// overlapping ones so only the most recently dispatched result lands.
// Not goroutine-safe; owned by the UI event loop.
package history

import (
	"strings"

	"github.com/tripdocs/tripdocs/internal/api"
)

// DefaultPageSize is the page size used when none is configured.
const DefaultPageSize = 5

// Panel is the history panel state machine.
type Panel struct {
	entries    []api.HistoryEntry
	page       int
	pageSize   int
	totalCount int
	filter     string

	loading    bool
	refreshing bool
	errText    string

	seq uint64
}

// NewPanel creates a panel with the given page size.
func NewPanel(pageSize int) *Panel {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Panel{page: 1, pageSize: pageSize}
}

// StartFetch begins a fetch of the given 1-indexed page and returns the
// fence sequence to pass back to Apply. A refresh uses the non-blocking
// refreshing indicator; anything else shows the full loading state.
func (p *Panel) StartFetch(page int, refresh bool) uint64 {
	if page < 1 {
		page = 1
	}
	if refresh {
		p.refreshing = true
	} else {
		p.loading = true
	}
	p.errText = ""
	p.seq++
	return p.seq
}

// Apply settles the fetch identified by seq. Results from superseded
// fetches are dropped (last dispatched wins). A failure sets the error
// state but keeps whatever page was displayed before; a success fully
// replaces it.
func (p *Panel) Apply(seq uint64, page api.HistoryPage, err error) bool {
	if seq != p.seq {
		return false
	}
	p.loading = false
	p.refreshing = false

	if err != nil {
		p.errText = api.UserMessage(err)
		return true
	}

	p.entries = page.Queries
	p.totalCount = page.TotalCount
	if page.Page > 0 {
		p.page = page.Page
	}
	if page.PageSize > 0 {
		p.pageSize = page.PageSize
	}
	p.errText = ""
	return true
}

// SetFilter sets the free-text filter. Filtering is page-local and never
// triggers a fetch.
func (p *Panel) SetFilter(term string) {
	p.filter = term
}

// Filter returns the current filter text.
func (p *Panel) Filter() string {
	return p.filter
}

// Entries returns the unfiltered loaded page.
func (p *Panel) Entries() []api.HistoryEntry {
	return p.entries
}

// Filtered returns the loaded entries matching the filter: a
// case-insensitive substring of either query or response text. The
// filter scopes to the loaded page only; pagination totals stay driven
// by the unfiltered server counts.
func (p *Panel) Filtered() []api.HistoryEntry {
	term := strings.ToLower(strings.TrimSpace(p.filter))
	if term == "" {
		return p.entries
	}
	matched := make([]api.HistoryEntry, 0, len(p.entries))
	for _, entry := range p.entries {
		if strings.Contains(strings.ToLower(entry.Query), term) ||
			strings.Contains(strings.ToLower(entry.Response), term) {
			matched = append(matched, entry)
		}
	}
	return matched
}

// Page returns the current 1-indexed page number.
func (p *Panel) Page() int { return p.page }

// PageSize returns the page size.
func (p *Panel) PageSize() int { return p.pageSize }

// TotalCount returns the server-reported total entry count.
func (p *Panel) TotalCount() int { return p.totalCount }

// TotalPages returns ceil(totalCount/pageSize).
func (p *Panel) TotalPages() int {
	return (p.totalCount + p.pageSize - 1) / p.pageSize
}

// CanPrev reports whether a previous page exists.
func (p *Panel) CanPrev() bool { return p.page > 1 }

// CanNext reports whether a next page exists.
func (p *Panel) CanNext() bool { return p.page < p.TotalPages() }

// Loading reports the full-skeleton loading state.
func (p *Panel) Loading() bool { return p.loading }

// Refreshing reports the non-blocking background refresh state.
func (p *Panel) Refreshing() bool { return p.refreshing }

// Err returns the display text of the last failed fetch, empty when the
// last fetch succeeded.
func (p *Panel) Err() string { return p.errText }
