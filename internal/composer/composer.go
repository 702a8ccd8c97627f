// Package composer wires the conversation view and the history panel
// together. It owns exactly two pieces of state: the currently selected
// history item and a monotonically incrementing refresh counter whose
// changes signal the history panel to re-fetch page 1.
package composer

import "github.com/tripdocs/tripdocs/internal/api"

// Composer is the page-level wiring between the two views.
type Composer struct {
	refreshCount uint64
	selected     *api.HistoryEntry
}

// New creates an empty composer.
func New() *Composer {
	return &Composer{}
}

// QuerySubmitted records a completed submission. The counter value is
// meaningless; only its change matters.
func (c *Composer) QuerySubmitted() {
	c.refreshCount++
}

// RefreshCount returns the refresh signal counter.
func (c *Composer) RefreshCount() uint64 {
	return c.refreshCount
}

// SelectHistory sets the clicked history entry (or example template) as
// the current selection for the conversation view to consume.
func (c *Composer) SelectHistory(entry api.HistoryEntry) {
	c.selected = &entry
}

// ClearSelection unsets the current selection.
func (c *Composer) ClearSelection() {
	c.selected = nil
}

// Selected returns the current selection, if any.
func (c *Composer) Selected() (api.HistoryEntry, bool) {
	if c.selected == nil {
		return api.HistoryEntry{}, false
	}
	return *c.selected, true
}

// SelectedID returns the id of the current selection, used to highlight
// the matching history row. The second result is false when nothing is
// selected.
func (c *Composer) SelectedID() (int64, bool) {
	if c.selected == nil {
		return 0, false
	}
	return c.selected.ID, true
}
