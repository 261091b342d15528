package domain

import (
	"fmt"
	"time"
)

// MeetingRoom identifies one of the two bookable rooms.
type MeetingRoom string

const (
	MeetingRoom1 MeetingRoom = "room-1"
	MeetingRoom2 MeetingRoom = "room-2"
)

// Valid reports whether the room is a recognized value.
func (r MeetingRoom) Valid() bool {
	return r == MeetingRoom1 || r == MeetingRoom2
}

// TimeOfDay is a wall-clock time expressed as minutes since midnight.
type TimeOfDay int

// ParseTimeOfDay parses an HH:MM string.
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	parsed, err := time.Parse("15:04", value)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", value)
	}
	return TimeOfDay(parsed.Hour()*60 + parsed.Minute()), nil
}

// String renders the time as HH:MM.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// BookingDate layout for calendar days on the wire.
const BookingDateLayout = "2006-01-02"

// Booking reserves a meeting room for a half-open window [Start, End)
// on a single calendar day.
type Booking struct {
	ID          string
	Title       string
	Subject     string
	Date        time.Time
	Start       TimeOfDay
	End         TimeOfDay
	VideoLink   string
	Room        MeetingRoom
	OrganizerID string
	CreatedAt   time.Time
}

// Overlaps reports whether the half-open windows [s1,e1) and [s2,e2)
// intersect. Back-to-back windows sharing a boundary do not overlap.
// Every conflict check in the scheduler goes through this predicate.
func Overlaps(s1, e1, s2, e2 TimeOfDay) bool {
	return s1 < e2 && s2 < e1
}

// ConflictsWith reports whether two bookings collide: same room, same
// day, intersecting windows.
func (b *Booking) ConflictsWith(other *Booking) bool {
	if b.Room != other.Room || !sameDay(b.Date, other.Date) {
		return false
	}
	return Overlaps(b.Start, b.End, other.Start, other.End)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
