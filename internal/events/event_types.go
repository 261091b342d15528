package events

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketAssigned      EventType = "ticket_assigned"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventCommentAdded        EventType = "comment_added"
	EventChatMessageSent     EventType = "chat_message_sent"
	EventBookingCreated      EventType = "booking_created"
	EventBookingUpdated      EventType = "booking_updated"
	EventBookingCancelled    EventType = "booking_cancelled"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	TicketID string                `json:"ticket_id"`
	Title    string                `json:"title"`
	Priority domain.TicketPriority `json:"priority"`
	Category domain.TicketCategory `json:"category"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	TicketID     string `json:"ticket_id"`
	TechnicianID string `json:"technician_id"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	TicketID  string              `json:"ticket_id"`
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// CommentAddedPayload payload.
type CommentAddedPayload struct {
	TicketID  string `json:"ticket_id"`
	CommentID string `json:"comment_id"`
}

// ChatMessageSentPayload payload.
type ChatMessageSentPayload struct {
	TicketID  string `json:"ticket_id"`
	MessageID string `json:"message_id"`
}

// BookingPayload payload for booking lifecycle events.
type BookingPayload struct {
	BookingID string             `json:"booking_id"`
	Room      domain.MeetingRoom `json:"room"`
	Date      string             `json:"date"`
	Start     string             `json:"start"`
	End       string             `json:"end"`
}
