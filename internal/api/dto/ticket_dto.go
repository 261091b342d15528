package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// CreateTicketRequest payload for opening a ticket.
type CreateTicketRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Category    string `json:"category"`
}

// AssignTechnicianRequest payload for technician assignment.
type AssignTechnicianRequest struct {
	TechnicianID string `json:"technician_id"`
}

// ChangeStatusRequest payload for status transitions. Resolution is
// required when the target status is closed.
type ChangeStatusRequest struct {
	Status     string `json:"status"`
	Resolution string `json:"resolution,omitempty"`
}

// TicketResponse is the wire view of a ticket.
type TicketResponse struct {
	ID           string                `json:"id"`
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	Priority     domain.TicketPriority `json:"priority"`
	Status       domain.TicketStatus   `json:"status"`
	Category     domain.TicketCategory `json:"category"`
	Resolution   *string               `json:"resolution,omitempty"`
	RequesterID  string                `json:"requester_id"`
	TechnicianID *string               `json:"technician_id,omitempty"`
	OpenedAt     time.Time             `json:"opened_at"`
	ClosedAt     *time.Time            `json:"closed_at,omitempty"`
}

// CreateCommentRequest payload for commenting.
type CreateCommentRequest struct {
	Text string `json:"text"`
}

// CommentResponse is the wire view of a comment.
type CommentResponse struct {
	ID        string    `json:"id"`
	TicketID  string    `json:"ticket_id"`
	AuthorID  string    `json:"author_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// SendChatMessageRequest payload for chat.
type SendChatMessageRequest struct {
	Text string `json:"text"`
}

// ChatMessageResponse is the wire view of a chat message.
type ChatMessageResponse struct {
	ID       string    `json:"id"`
	TicketID string    `json:"ticket_id"`
	AuthorID string    `json:"author_id"`
	Text     string    `json:"text"`
	SentAt   time.Time `json:"sent_at"`
	Read     bool      `json:"read"`
}

// StatsResponse aggregates dashboard counters.
type StatsResponse struct {
	TotalTickets      int `json:"total_tickets"`
	OpenTickets       int `json:"open_tickets"`
	InProgressTickets int `json:"in_progress_tickets"`
	ClosedTickets     int `json:"closed_tickets"`
	TotalUsers        int `json:"total_users"`
}
