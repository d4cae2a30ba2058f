package response

import (
	"time"

	"github.com/Rohit1301k/dareroom/internal/model"
)

// MessageResponse represents a chat message response. Kind is derived
// from the tagged body form; for media messages Content carries the
// URL and Message the raw tagged body.
type MessageResponse struct {
	ID        string `json:"id"`
	Seq       int64  `json:"seq"`
	Nickname  string `json:"nickname,omitempty"`
	System    bool   `json:"system,omitempty"`
	Message   string `json:"message"`
	Kind      string `json:"kind"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// NewMessageResponse creates a message response from model
func NewMessageResponse(m *model.Message) *MessageResponse {
	kind, content := m.Payload()
	return &MessageResponse{
		ID:        m.ID,
		Seq:       m.Seq,
		Nickname:  m.Nickname,
		System:    m.System,
		Message:   m.Body,
		Kind:      string(kind),
		Content:   content,
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
	}
}

// MessageListResponse represents a page of the room chat log. LastSeq
// is what the client passes back as after_seq on its next poll.
type MessageListResponse struct {
	Messages []*MessageResponse `json:"messages"`
	LastSeq  int64              `json:"last_seq"`
}

// NewMessageListResponse creates a message list response
func NewMessageListResponse(msgs []*model.Message, afterSeq int64) *MessageListResponse {
	out := make([]*MessageResponse, len(msgs))
	lastSeq := afterSeq
	for i, m := range msgs {
		out[i] = NewMessageResponse(m)
		if m.Seq > lastSeq {
			lastSeq = m.Seq
		}
	}
	return &MessageListResponse{
		Messages: out,
		LastSeq:  lastSeq,
	}
}

// TypingResponse represents the typing indicator state
type TypingResponse struct {
	Typing []string `json:"typing"`
}
