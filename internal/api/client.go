// Package api is the HTTP client for the travel documentation Q&A
// service. Every operation translates transport and HTTP failures into a
// classified *Error with a message fit for direct display.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultTimeout bounds every request when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// Client issues requests against the remote Q&A API.
type Client struct {
	baseURL string
	logger  *slog.Logger
	http    *http.Client
}

// New creates a Client for the given base URL. A non-positive timeout
// falls back to DefaultTimeout.
func New(log *slog.Logger, baseURL string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("api client: base url is required")
	}
	if log == nil {
		log = slog.Default()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		logger:  log.With(slog.String("client", "api")),
		http: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// SubmitQuery sends text to the AI backend and returns its answer. The
// text is sent trimmed; rejecting empty input is the caller's job (see
// ValidateQuery).
func (c *Client) SubmitQuery(ctx context.Context, text, userID string) (QueryResponse, error) {
	req := QueryRequest{
		Query:  strings.TrimSpace(text),
		UserID: userID,
	}
	var resp QueryResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/chat/query", req, &resp); err != nil {
		return QueryResponse{}, err
	}
	return resp, nil
}

// History fetches one page of past query/response pairs. Pages are
// 1-indexed.
func (c *Client) History(ctx context.Context, page, pageSize int, userID string) (HistoryPage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("page_size", strconv.Itoa(pageSize))
	if userID != "" {
		params.Set("user_id", userID)
	}
	var resp HistoryPage
	if err := c.doJSON(ctx, http.MethodGet, "/api/chat/history?"+params.Encode(), nil, &resp); err != nil {
		return HistoryPage{}, err
	}
	return resp, nil
}

// Stats fetches system statistics.
func (c *Client) Stats(ctx context.Context) (SystemStats, error) {
	var resp SystemStats
	if err := c.doJSON(ctx, http.MethodGet, "/api/chat/stats", nil, &resp); err != nil {
		return SystemStats{}, err
	}
	return resp, nil
}

// DeleteHistoryEntry removes a persisted history entry by id.
func (c *Client) DeleteHistoryEntry(ctx context.Context, id int64) (DeleteResult, error) {
	var resp DeleteResult
	path := fmt.Sprintf("/api/chat/history/%d", id)
	if err := c.doJSON(ctx, http.MethodDelete, path, nil, &resp); err != nil {
		return DeleteResult{}, err
	}
	return resp, nil
}

// Health checks API liveness.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	var resp HealthStatus
	if err := c.doJSON(ctx, http.MethodGet, "/health", nil, &resp); err != nil {
		return HealthStatus{}, err
	}
	return resp, nil
}

// ChatHealth checks the chat subsystem and its dependencies.
func (c *Client) ChatHealth(ctx context.Context) (ChatHealthStatus, error) {
	var resp ChatHealthStatus
	if err := c.doJSON(ctx, http.MethodGet, "/api/chat/health", nil, &resp); err != nil {
		return ChatHealthStatus{}, err
	}
	return resp, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return newError(KindUnexpected, msgUnexpected, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return newError(KindUnexpected, msgUnexpected, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("api request", slog.String("method", method), slog.String("path", path))

	resp, err := c.http.Do(req)
	if err != nil {
		return translateTransport(err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api response", slog.String("path", path), slog.Int("status", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return translateStatus(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return newError(KindUnexpected, msgUnexpected, err)
	}
	return nil
}

// translateTransport classifies failures where no response was received.
func translateTransport(err error) *Error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return newError(KindTimeout, msgTimeout, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return newError(KindTimeout, msgTimeout, err)
	}
	return newError(KindNetwork, msgNetwork, err)
}

// errorBody is the detail envelope the server attaches to error
// responses.
type errorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

// translateStatus classifies non-2xx responses.
func translateStatus(resp *http.Response) *Error {
	detail := readDetail(resp.Body)
	status := fmt.Errorf("http %d", resp.StatusCode)

	switch {
	case resp.StatusCode >= 500:
		return newError(KindServer, msgServer, status)
	case resp.StatusCode == http.StatusBadRequest:
		if detail != "" {
			return newError(KindValidation, detail, status)
		}
		return newError(KindValidation, msgBadRequest, status)
	default:
		if detail != "" {
			return newError(KindUnexpected, detail, status)
		}
		return newError(KindUnexpected, msgUnexpected, status)
	}
}

func readDetail(r io.Reader) string {
	var parsed errorBody
	if err := json.NewDecoder(io.LimitReader(r, 64*1024)).Decode(&parsed); err != nil {
		return ""
	}
	if strings.TrimSpace(parsed.Detail) != "" {
		return strings.TrimSpace(parsed.Detail)
	}
	return strings.TrimSpace(parsed.Message)
}
