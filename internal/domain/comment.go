package domain

import "time"

// Comment is an append-only note attached to a ticket.
type Comment struct {
	ID        string
	TicketID  string
	AuthorID  string
	Text      string
	CreatedAt time.Time
}

// ChatMessage is a chat entry on a ticket. Sending is gated to tickets
// that are in progress; the read flag is flipped when the counterpart
// opens the conversation.
type ChatMessage struct {
	ID       string
	TicketID string
	AuthorID string
	Text     string
	SentAt   time.Time
	Read     bool
}
