package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/service"
)

// StatsHandler serves dashboard counters.
type StatsHandler struct {
	tickets *service.TicketService
}

// NewStatsHandler constructs handler.
func NewStatsHandler(tickets *service.TicketService) *StatsHandler {
	return &StatsHandler{tickets: tickets}
}

// Get GET /stats.
func (h *StatsHandler) Get(c *fiber.Ctx) error {
	stats, err := h.tickets.Stats(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.StatsResponse{
		TotalTickets:      stats.TotalTickets,
		OpenTickets:       stats.OpenTickets,
		InProgressTickets: stats.InProgressTickets,
		ClosedTickets:     stats.ClosedTickets,
		TotalUsers:        stats.TotalUsers,
	}})
}
