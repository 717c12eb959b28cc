// Package transcript keeps the ordered chat history of one session. The
// list is the source of truth; rendered output is derived from it.
package transcript

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/interview-assistant/internal/api"
)

// Message is one chat turn.
type Message struct {
	ID        string
	Role      api.Role
	Content   string
	Timestamp time.Time
}

// Transcript is an ordered, append-only list of messages.
type Transcript struct {
	mu       sync.RWMutex
	id       string
	messages []Message
	now      func() time.Time
}

// New creates an empty transcript.
func New() *Transcript {
	return &Transcript{
		id:       uuid.NewString(),
		messages: make([]Message, 0, 16),
		now:      time.Now,
	}
}

// ID identifies the transcript, e.g. in export file names.
func (t *Transcript) ID() string { return t.id }

// Append adds a message at the end and returns it.
func (t *Transcript) Append(role api.Role, content string) Message {
	msg := Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: t.now(),
	}

	t.mu.Lock()
	t.messages = append(t.messages, msg)
	t.mu.Unlock()

	return msg
}

// Messages returns a copy of the messages in posting order.
func (t *Transcript) Messages() []Message {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.messages)
}

// Reset drops every message.
func (t *Transcript) Reset() {
	t.mu.Lock()
	t.messages = t.messages[:0]
	t.mu.Unlock()
}

// History returns the messages as chat request entries, in posting order.
// Roles are kept as recorded; consecutive turns from the same sender stay.
func (t *Transcript) History() []api.ChatMessage {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]api.ChatMessage, 0, len(t.messages)+1)
	for _, m := range t.messages {
		out = append(out, api.ChatMessage{Role: m.Role, Content: m.Content})
	}
	return out
}

// Payload returns History followed by newMessage as a user turn. It does
// not record newMessage.
func (t *Transcript) Payload(newMessage string) []api.ChatMessage {
	return append(t.History(), api.ChatMessage{Role: api.RoleUser, Content: newMessage})
}
