package api

import "time"

// ExampleTemplateID marks a HistoryEntry that is a client-side example
// template rather than a persisted record. Server-assigned ids are never
// negative, so the sentinel cannot collide with real data.
const ExampleTemplateID int64 = -1

// QueryRequest is the submit-query request body.
type QueryRequest struct {
	Query  string `json:"query"`
	UserID string `json:"user_id,omitempty"`
}

// QueryResponse is the server's answer to a submitted query.
type QueryResponse struct {
	ID           int64     `json:"id,omitempty"`
	Query        string    `json:"query"`
	Response     string    `json:"response"`
	Timestamp    time.Time `json:"timestamp"`
	ResponseTime float64   `json:"response_time,omitempty"`
	Success      bool      `json:"success"`
}

// HistoryEntry is one persisted past query/response pair. The client
// holds read-only copies; only the server mutates them.
type HistoryEntry struct {
	ID           int64     `json:"id"`
	Query        string    `json:"query"`
	Response     string    `json:"response"`
	Timestamp    time.Time `json:"timestamp"`
	ResponseTime float64   `json:"response_time,omitempty"`
	Success      bool      `json:"success"`
}

// IsExampleTemplate reports whether the entry is an example template
// (sentinel id) rather than a persisted history record.
func (e HistoryEntry) IsExampleTemplate() bool {
	return e.ID == ExampleTemplateID
}

// ExampleTemplate builds a template entry carrying a suggested question.
func ExampleTemplate(query string) HistoryEntry {
	return HistoryEntry{
		ID:        ExampleTemplateID,
		Query:     query,
		Timestamp: time.Now(),
		Success:   true,
	}
}

// HistoryPage is one page of history entries plus pagination totals.
type HistoryPage struct {
	Queries    []HistoryEntry `json:"queries"`
	TotalCount int            `json:"total_count"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
}

// TotalPages returns the number of pages implied by the server-reported
// total count, ceil(totalCount/pageSize).
func (p HistoryPage) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	return (p.TotalCount + p.PageSize - 1) / p.PageSize
}

// SystemStats is the /api/chat/stats response.
type SystemStats struct {
	TotalQueries int64     `json:"total_queries"`
	SystemStatus string    `json:"system_status"`
	APIVersion   string    `json:"api_version"`
	Timestamp    time.Time `json:"timestamp"`
}

// DeleteResult is the response to deleting a history entry.
type DeleteResult struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// HealthStatus is the /health liveness response.
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ChatHealthStatus is the /api/chat/health subsystem response.
type ChatHealthStatus struct {
	Service      string            `json:"service"`
	Status       string            `json:"status"`
	Timestamp    time.Time         `json:"timestamp"`
	Dependencies map[string]string `json:"dependencies"`
}
