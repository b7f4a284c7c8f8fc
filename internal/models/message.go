package models

// Role identifies who authored a conversation message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single chat turn
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// History is the append-only chat log of a session
type History struct {
	messages []Message
}

// Append adds a message at the end of the log
func (h *History) Append(role Role, content string) {
	h.messages = append(h.messages, Message{Role: role, Content: content})
}

// Len returns the number of messages
func (h *History) Len() int {
	return len(h.messages)
}

// Last returns a copy of the most recent n messages
func (h *History) Last(n int) []Message {
	if n <= 0 {
		return []Message{}
	}
	start := len(h.messages) - n
	if start < 0 {
		start = 0
	}
	out := make([]Message, len(h.messages)-start)
	copy(out, h.messages[start:])
	return out
}

// Messages returns a copy of the full log
func (h *History) Messages() []Message {
	return h.Last(len(h.messages))
}
