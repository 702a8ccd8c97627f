// Package conversation owns the ordered message list of one chat session
// and reconciles asynchronous responses into it. It is pure state: all
// I/O stays with the caller, which drives Begin/Complete/Fail around the
// actual API call. Not goroutine-safe; it is owned by the UI event loop.
package conversation

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tripdocs/tripdocs/internal/api"
)

// Role identifies the author of a message.
type Role string

// Message roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ErrorPrefix opens every assistant message that stands in for a failed
// response.
const ErrorPrefix = "Sorry, I encountered an error while processing your request."

const fallbackErrorText = "Please try again."

// Message is one entry in the conversation. A pending message is an
// assistant placeholder awaiting its real content; it is replaced, never
// mutated, once the response settles.
type Message struct {
	ID        string
	Role      Role
	Content   string
	CreatedAt time.Time
	Pending   bool
}

// Callbacks are the two outbound event channels of the conversation:
// a completed submission (the history refresh hook) and a cleared
// selection. Either may be nil.
type Callbacks struct {
	QuerySubmitted   func(api.QueryResponse)
	SelectionCleared func()
}

// Conversation holds the message sequence and the single in-flight gate.
type Conversation struct {
	messages  []Message
	inFlight  bool
	selection bool
	callbacks Callbacks

	now   func() time.Time
	newID func() string
}

// New creates an empty conversation.
func New(cb Callbacks) *Conversation {
	return &Conversation{
		callbacks: cb,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Messages returns a copy of the message sequence in append order.
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// InFlight reports whether a submission is outstanding. The send
// affordance must be disabled while true.
func (c *Conversation) InFlight() bool {
	return c.inFlight
}

// Begin starts a submission: it appends the finalized user message and
// the pending assistant placeholder, and sets the in-flight gate. It
// returns the trimmed text to submit and whether the submission may
// proceed; empty input or an outstanding submission is a no-op.
func (c *Conversation) Begin(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || c.inFlight {
		return "", false
	}

	now := c.now()
	c.messages = append(c.messages,
		Message{
			ID:        c.newID(),
			Role:      RoleUser,
			Content:   trimmed,
			CreatedAt: now,
		},
		Message{
			ID:        c.newID(),
			Role:      RoleAssistant,
			CreatedAt: now,
			Pending:   true,
		},
	)
	c.inFlight = true

	if c.selection {
		c.selection = false
		c.notifySelectionCleared()
	}
	return trimmed, true
}

// Complete settles the outstanding submission with the server response:
// the pending placeholder is removed and a finalized assistant message
// appended, keeping the server's id and timestamp when present.
func (c *Conversation) Complete(resp api.QueryResponse) {
	if !c.inFlight {
		return
	}
	defer func() { c.inFlight = false }()

	id := c.newID()
	if resp.ID > 0 {
		id = fmt.Sprintf("assistant-%d", resp.ID)
	}
	ts := resp.Timestamp
	if ts.IsZero() {
		ts = c.now()
	}

	c.dropPending()
	c.messages = append(c.messages, Message{
		ID:        id,
		Role:      RoleAssistant,
		Content:   resp.Response,
		CreatedAt: ts,
	})

	if c.callbacks.QuerySubmitted != nil {
		c.callbacks.QuerySubmitted(resp)
	}
}

// Fail settles the outstanding submission with an error: the pending
// placeholder is removed and a finalized assistant message carrying the
// error text appended. The conversation is never left on the pending
// indicator.
func (c *Conversation) Fail(err error) {
	if !c.inFlight {
		return
	}
	defer func() { c.inFlight = false }()

	detail := api.UserMessage(err)
	if detail == "" {
		detail = fallbackErrorText
	}

	c.dropPending()
	c.messages = append(c.messages, Message{
		ID:        c.newID(),
		Role:      RoleAssistant,
		Content:   ErrorPrefix + " " + detail,
		CreatedAt: c.now(),
	})
}

// ApplySelection consumes a selected history entry. A real entry
// replaces the whole conversation with its stored query/response pair,
// both stamped with the entry's original timestamp. An example template
// leaves the messages untouched and returns its text for the input
// field.
func (c *Conversation) ApplySelection(entry api.HistoryEntry) (prefill string, replaced bool) {
	if entry.IsExampleTemplate() {
		return entry.Query, false
	}

	c.messages = []Message{
		{
			ID:        fmt.Sprintf("user-%d", entry.ID),
			Role:      RoleUser,
			Content:   entry.Query,
			CreatedAt: entry.Timestamp,
		},
		{
			ID:        fmt.Sprintf("assistant-%d", entry.ID),
			Role:      RoleAssistant,
			Content:   entry.Response,
			CreatedAt: entry.Timestamp,
		},
	}
	c.selection = true
	return "", true
}

// Clear empties the conversation and notifies the selection-cleared
// collaborator.
func (c *Conversation) Clear() {
	c.messages = nil
	c.selection = false
	c.notifySelectionCleared()
}

// LastAnswer returns the content of the most recent finalized assistant
// message, for copy-to-clipboard.
func (c *Conversation) LastAnswer() (string, bool) {
	for i := len(c.messages) - 1; i >= 0; i-- {
		msg := c.messages[i]
		if msg.Role == RoleAssistant && !msg.Pending {
			return msg.Content, true
		}
	}
	return "", false
}

func (c *Conversation) dropPending() {
	kept := c.messages[:0]
	for _, msg := range c.messages {
		if !msg.Pending {
			kept = append(kept, msg)
		}
	}
	c.messages = kept
}

func (c *Conversation) notifySelectionCleared() {
	if c.callbacks.SelectionCleared != nil {
		c.callbacks.SelectionCleared()
	}
}
