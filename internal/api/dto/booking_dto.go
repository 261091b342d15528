package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// BookingRequest payload for creating or updating a room booking.
// Date is YYYY-MM-DD; start/end are HH:MM.
type BookingRequest struct {
	Title     string `json:"title"`
	Subject   string `json:"subject"`
	Date      string `json:"date"`
	Start     string `json:"start"`
	End       string `json:"end"`
	VideoLink string `json:"video_link"`
	Room      string `json:"room"`
}

// BookingResponse is the wire view of a booking.
type BookingResponse struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Subject     string             `json:"subject"`
	Date        string             `json:"date"`
	Start       string             `json:"start"`
	End         string             `json:"end"`
	VideoLink   string             `json:"video_link"`
	Room        domain.MeetingRoom `json:"room"`
	OrganizerID string             `json:"organizer_id"`
	CreatedAt   time.Time          `json:"created_at"`
}
