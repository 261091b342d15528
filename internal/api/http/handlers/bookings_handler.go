package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// BookingsHandler manages room booking endpoints.
type BookingsHandler struct {
	schedule *service.ScheduleService
}

// NewBookingsHandler constructs handler.
func NewBookingsHandler(schedule *service.ScheduleService) *BookingsHandler {
	return &BookingsHandler{schedule: schedule}
}

// List GET /bookings.
func (h *BookingsHandler) List(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	bookings, err := h.schedule.ListBookings(c.Context(), actor)
	if err != nil {
		return err
	}
	items := make([]dto.BookingResponse, 0, len(bookings))
	for i := range bookings {
		items = append(items, bookingResponse(&bookings[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Create POST /bookings.
func (h *BookingsHandler) Create(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	var req dto.BookingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	booking, err := h.schedule.CreateBooking(c.Context(), actor, bookingInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": bookingResponse(booking)})
}

// Update PUT /bookings/:id.
func (h *BookingsHandler) Update(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	var req dto.BookingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	booking, err := h.schedule.UpdateBooking(c.Context(), actor, c.Params("id"), bookingInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": bookingResponse(booking)})
}

// Delete DELETE /bookings/:id.
func (h *BookingsHandler) Delete(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	if err := h.schedule.DeleteBooking(c.Context(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

func bookingInput(req dto.BookingRequest) service.BookingInput {
	return service.BookingInput{
		Title:     req.Title,
		Subject:   req.Subject,
		Date:      req.Date,
		Start:     req.Start,
		End:       req.End,
		VideoLink: req.VideoLink,
		Room:      req.Room,
	}
}

func bookingResponse(booking *domain.Booking) dto.BookingResponse {
	return dto.BookingResponse{
		ID:          booking.ID,
		Title:       booking.Title,
		Subject:     booking.Subject,
		Date:        booking.Date.Format(domain.BookingDateLayout),
		Start:       booking.Start.String(),
		End:         booking.End.String(),
		VideoLink:   booking.VideoLink,
		Room:        booking.Room,
		OrganizerID: booking.OrganizerID,
		CreatedAt:   booking.CreatedAt,
	}
}
