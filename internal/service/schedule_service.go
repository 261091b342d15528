package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// ScheduleService maintains a conflict-free set of room bookings and
// scopes visibility by caller role.
type ScheduleService struct {
	bookings   repository.BookingRepository
	dispatcher events.Dispatcher
}

// ScheduleDependencies bundles repositories for the schedule service.
type ScheduleDependencies struct {
	BookingRepo repository.BookingRepository
	Dispatcher  events.Dispatcher
}

// NewScheduleService constructs the service.
func NewScheduleService(deps ScheduleDependencies) *ScheduleService {
	return &ScheduleService{
		bookings:   deps.BookingRepo,
		dispatcher: deps.Dispatcher,
	}
}

// BookingInput carries the raw booking fields as received on the wire.
type BookingInput struct {
	Title     string
	Subject   string
	Date      string
	Start     string
	End       string
	VideoLink string
	Room      string
}

// ListBookings returns bookings visible to the caller. Managers and
// schedulers see everything; everyone else sees only bookings they
// organized. Ordering is (date, start) ascending either way.
func (s *ScheduleService) ListBookings(ctx context.Context, actor *domain.User) ([]domain.Booking, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	if actor.Role == domain.RoleManager || actor.Role == domain.RoleScheduler {
		bookings, err := s.bookings.ListAll(ctx)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		return bookings, nil
	}
	bookings, err := s.bookings.ListByOrganizer(ctx, actor.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return bookings, nil
}

// CreateBooking validates the input, runs the conflict check against
// the target room and day, and persists the booking with the caller as
// organizer.
func (s *ScheduleService) CreateBooking(ctx context.Context, actor *domain.User, input BookingInput) (*domain.Booking, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	booking, err := parseBookingInput(input)
	if err != nil {
		return nil, err
	}
	booking.OrganizerID = actor.ID

	if err := s.bookings.CreateInSlot(ctx, booking, conflictCheck(booking, "")); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.EventBookingCreated, actor.ID, booking)
	return booking, nil
}

// UpdateBooking overwrites all mutable fields of an existing booking.
// Only the organizer or a manager/scheduler may update; the conflict
// check ignores the booking being updated.
func (s *ScheduleService) UpdateBooking(ctx context.Context, actor *domain.User, bookingID string, input BookingInput) (*domain.Booking, error) {
	existing, err := s.getForWrite(ctx, actor, bookingID)
	if err != nil {
		return nil, err
	}

	booking, err := parseBookingInput(input)
	if err != nil {
		return nil, err
	}
	booking.ID = existing.ID
	booking.OrganizerID = existing.OrganizerID
	booking.CreatedAt = existing.CreatedAt

	if err := s.bookings.UpdateInSlot(ctx, booking, conflictCheck(booking, booking.ID)); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.EventBookingUpdated, actor.ID, booking)
	return booking, nil
}

// DeleteBooking removes a booking under the same permission rules as
// update.
func (s *ScheduleService) DeleteBooking(ctx context.Context, actor *domain.User, bookingID string) error {
	booking, err := s.getForWrite(ctx, actor, bookingID)
	if err != nil {
		return err
	}
	if err := s.bookings.Delete(ctx, bookingID); err != nil {
		return apperrors.MapError(err)
	}
	s.publish(ctx, events.EventBookingCancelled, actor.ID, booking)
	return nil
}

func (s *ScheduleService) getForWrite(ctx context.Context, actor *domain.User, bookingID string) (*domain.Booking, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("booking", map[string]any{"booking_id": bookingID})
		}
		return nil, apperrors.MapError(err)
	}
	if booking.OrganizerID != actor.ID &&
		actor.Role != domain.RoleManager && actor.Role != domain.RoleScheduler {
		return nil, apperrors.NewForbidden("not permitted")
	}
	return booking, nil
}

// conflictCheck builds the repository conflict check for a candidate
// booking. Both the create and update paths go through this single
// predicate; excludeID skips the booking being updated.
func conflictCheck(candidate *domain.Booking, excludeID string) repository.ConflictCheck {
	return func(existing []domain.Booking) error {
		for i := range existing {
			if excludeID != "" && existing[i].ID == excludeID {
				continue
			}
			if candidate.ConflictsWith(&existing[i]) {
				return apperrors.NewConflict(
					fmt.Sprintf("%s is already booked from %s to %s on %s",
						existing[i].Room,
						existing[i].Start, existing[i].End,
						existing[i].Date.Format(domain.BookingDateLayout)),
					map[string]any{
						"booking_id": existing[i].ID,
						"room":       existing[i].Room,
						"start":      existing[i].Start.String(),
						"end":        existing[i].End.String(),
					})
			}
		}
		return nil
	}
}

func parseBookingInput(input BookingInput) (*domain.Booking, error) {
	title := strings.TrimSpace(input.Title)
	subject := strings.TrimSpace(input.Subject)
	link := strings.TrimSpace(input.VideoLink)
	if title == "" || subject == "" || link == "" ||
		input.Date == "" || input.Start == "" || input.End == "" || input.Room == "" {
		return nil, apperrors.NewValidationError("all fields are required", nil)
	}

	room := domain.MeetingRoom(input.Room)
	if !room.Valid() {
		return nil, apperrors.NewValidationError("unrecognized room", map[string]any{"room": input.Room})
	}

	date, err := time.Parse(domain.BookingDateLayout, input.Date)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid date: expected YYYY-MM-DD", map[string]any{"date": input.Date})
	}
	start, err := domain.ParseTimeOfDay(input.Start)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error(), map[string]any{"start": input.Start})
	}
	end, err := domain.ParseTimeOfDay(input.End)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error(), map[string]any{"end": input.End})
	}
	if end <= start {
		return nil, apperrors.NewValidationError("end time must be after start time", map[string]any{
			"start": start.String(),
			"end":   end.String(),
		})
	}

	return &domain.Booking{
		Title:     title,
		Subject:   subject,
		Date:      date,
		Start:     start,
		End:       end,
		VideoLink: link,
		Room:      room,
	}, nil
}

func (s *ScheduleService) publish(ctx context.Context, eventType events.EventType, actorID string, booking *domain.Booking) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		ActorID:   actorID,
		Timestamp: time.Now(),
		Payload: events.BookingPayload{
			BookingID: booking.ID,
			Room:      booking.Room,
			Date:      booking.Date.Format(domain.BookingDateLayout),
			Start:     booking.Start.String(),
			End:       booking.End.String(),
		},
	})
}
