package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// Valid reports whether the status is a recognized value.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow      TicketPriority = "low"
	TicketPriorityMedium   TicketPriority = "medium"
	TicketPriorityHigh     TicketPriority = "high"
	TicketPriorityCritical TicketPriority = "critical"
)

// Valid reports whether the priority is a recognized value.
func (p TicketPriority) Valid() bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityCritical:
		return true
	}
	return false
}

// TicketCategory enumerates the kinds of issues a ticket can report.
type TicketCategory string

const (
	TicketCategoryHardware TicketCategory = "hardware"
	TicketCategorySoftware TicketCategory = "software"
	TicketCategoryNetwork  TicketCategory = "network"
	TicketCategoryOther    TicketCategory = "other"
)

// Valid reports whether the category is a recognized value.
func (c TicketCategory) Valid() bool {
	switch c {
	case TicketCategoryHardware, TicketCategorySoftware, TicketCategoryNetwork, TicketCategoryOther:
		return true
	}
	return false
}

// Ticket is the aggregate for support requests. TechnicianID is set on
// assignment and must reference a user with role technician. Resolution
// and ClosedAt are written only when the ticket closes; moving a closed
// ticket back to an earlier state preserves both for audit.
type Ticket struct {
	ID           string
	Title        string
	Description  string
	Priority     TicketPriority
	Status       TicketStatus
	Category     TicketCategory
	Resolution   *string
	RequesterID  string
	TechnicianID *string
	OpenedAt     time.Time
	ClosedAt     *time.Time
}
