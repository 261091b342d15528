package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// TicketService coordinates the ticket lifecycle: creation, technician
// assignment and status transitions with role gating.
type TicketService struct {
	tickets           repository.TicketRepository
	users             repository.UserRepository
	dispatcher        events.Dispatcher
	enforceAssignRole bool
}

// TicketDependencies bundles repositories for ticket service.
type TicketDependencies struct {
	TicketRepo        repository.TicketRepository
	UserRepo          repository.UserRepository
	Dispatcher        events.Dispatcher
	EnforceAssignRole bool
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
	Priority    domain.TicketPriority
	Category    domain.TicketCategory
}

// TicketStats aggregates counts for the dashboard.
type TicketStats struct {
	TotalTickets      int
	OpenTickets       int
	InProgressTickets int
	ClosedTickets     int
	TotalUsers        int
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:           deps.TicketRepo,
		users:             deps.UserRepo,
		dispatcher:        deps.Dispatcher,
		enforceAssignRole: deps.EnforceAssignRole,
	}
}

// CreateTicket opens a new ticket for the caller.
func (s *TicketService) CreateTicket(ctx context.Context, actor *domain.User, input TicketCreateInput) (*domain.Ticket, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" {
		return nil, apperrors.NewValidationError("title and description required", nil)
	}
	if !input.Priority.Valid() {
		return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": input.Priority})
	}
	if !input.Category.Valid() {
		return nil, apperrors.NewValidationError("invalid category", map[string]any{"category": input.Category})
	}

	ticket := &domain.Ticket{
		Title:       title,
		Description: description,
		Priority:    input.Priority,
		Status:      domain.TicketStatusOpen,
		Category:    input.Category,
		RequesterID: actor.ID,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.EventTicketCreated, actor.ID, events.TicketCreatedPayload{
		TicketID: ticket.ID,
		Title:    ticket.Title,
		Priority: ticket.Priority,
		Category: ticket.Category,
	})
	return ticket, nil
}

// GetTicket fetches a ticket, enforcing the read-access rule.
func (s *TicketService) GetTicket(ctx context.Context, actor *domain.User, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if err := s.requireReadAccess(ctx, actor, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// ListTickets returns tickets scoped by the caller's role: requesters
// see their own, technicians their assignments, managers their
// section's. Newest first.
func (s *TicketService) ListTickets(ctx context.Context, actor *domain.User) ([]domain.Ticket, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	var (
		tickets []domain.Ticket
		err     error
	)
	switch actor.Role {
	case domain.RoleRequester:
		tickets, err = s.tickets.ListByRequester(ctx, actor.ID)
	case domain.RoleTechnician:
		tickets, err = s.tickets.ListByTechnician(ctx, actor.ID)
	case domain.RoleManager:
		tickets, err = s.tickets.ListBySection(ctx, actor.Section)
	default:
		return nil, apperrors.NewForbidden("not permitted")
	}
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// AssignTechnician sets the ticket's technician reference. The manager
// gate can be relaxed via configuration for local development but
// defaults to enforced. Status is left unchanged.
func (s *TicketService) AssignTechnician(ctx context.Context, actor *domain.User, ticketID, technicianID string) (*domain.Ticket, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	if s.enforceAssignRole && actor.Role != domain.RoleManager {
		return nil, apperrors.NewForbidden("only managers may assign technicians")
	}

	technician, err := s.users.GetByID(ctx, technicianID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("technician", map[string]any{"technician_id": technicianID})
		}
		return nil, apperrors.MapError(err)
	}
	if technician.Role != domain.RoleTechnician {
		return nil, apperrors.NewNotFound("technician", map[string]any{"technician_id": technicianID})
	}

	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	ticket.TechnicianID = &technician.ID
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.EventTicketAssigned, actor.ID, events.TicketAssignedPayload{
		TicketID:     ticket.ID,
		TechnicianID: technician.ID,
	})
	return ticket, nil
}

// ChangeStatus moves a ticket to a new status. Closing requires a
// non-empty resolution and stamps the close time; moving a ticket away
// from closed is reserved to managers and intentionally preserves the
// prior resolution and close timestamp.
func (s *TicketService) ChangeStatus(ctx context.Context, actor *domain.User, ticketID string, newStatus domain.TicketStatus, resolution string) (*domain.Ticket, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	if !newStatus.Valid() {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": newStatus})
	}
	resolution = strings.TrimSpace(resolution)
	if newStatus == domain.TicketStatusClosed && resolution == "" {
		return nil, apperrors.NewValidationError("a resolution is required to close a ticket", nil)
	}

	if actor.Role != domain.RoleManager && actor.Role != domain.RoleTechnician {
		return nil, apperrors.NewForbidden("not permitted")
	}

	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleTechnician {
		if ticket.TechnicianID == nil || *ticket.TechnicianID != actor.ID {
			return nil, apperrors.NewForbidden("only the assigned technician may change this ticket")
		}
	}
	if ticket.Status == domain.TicketStatusClosed && actor.Role != domain.RoleManager {
		return nil, apperrors.NewForbidden("only managers may change closed tickets")
	}

	oldStatus := ticket.Status
	ticket.Status = newStatus
	if newStatus == domain.TicketStatusClosed {
		now := time.Now()
		ticket.ClosedAt = &now
		ticket.Resolution = &resolution
	}
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.EventTicketStatusChanged, actor.ID, events.TicketStatusChangedPayload{
		TicketID:  ticket.ID,
		OldStatus: oldStatus,
		NewStatus: newStatus,
	})
	return ticket, nil
}

// Stats aggregates ticket and user counts.
func (s *TicketService) Stats(ctx context.Context) (*TicketStats, error) {
	stats := &TicketStats{}
	var err error
	if stats.TotalTickets, err = s.tickets.Count(ctx); err != nil {
		return nil, apperrors.MapError(err)
	}
	if stats.OpenTickets, err = s.tickets.CountByStatus(ctx, domain.TicketStatusOpen); err != nil {
		return nil, apperrors.MapError(err)
	}
	if stats.InProgressTickets, err = s.tickets.CountByStatus(ctx, domain.TicketStatusInProgress); err != nil {
		return nil, apperrors.MapError(err)
	}
	if stats.ClosedTickets, err = s.tickets.CountByStatus(ctx, domain.TicketStatusClosed); err != nil {
		return nil, apperrors.MapError(err)
	}
	if stats.TotalUsers, err = s.users.Count(ctx); err != nil {
		return nil, apperrors.MapError(err)
	}
	return stats, nil
}

func (s *TicketService) loadTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

func (s *TicketService) requireReadAccess(ctx context.Context, actor *domain.User, ticket *domain.Ticket) error {
	return requireTicketReadAccess(ctx, s.users, actor, ticket)
}

// requireTicketReadAccess applies the read-access rule shared by ticket
// detail, comments and chat: requesters see only tickets they opened,
// technicians only tickets assigned to them, managers only tickets
// whose requester belongs to their section.
func requireTicketReadAccess(ctx context.Context, users repository.UserRepository, actor *domain.User, ticket *domain.Ticket) error {
	if actor == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	switch actor.Role {
	case domain.RoleRequester:
		if ticket.RequesterID == actor.ID {
			return nil
		}
	case domain.RoleTechnician:
		if ticket.TechnicianID != nil && *ticket.TechnicianID == actor.ID {
			return nil
		}
	case domain.RoleManager:
		requester, err := users.GetByID(ctx, ticket.RequesterID)
		if err != nil {
			return apperrors.MapError(err)
		}
		if requester.Section == actor.Section {
			return nil
		}
	}
	return apperrors.NewForbidden("not permitted")
}

func (s *TicketService) publish(ctx context.Context, eventType events.EventType, actorID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		ActorID:   actorID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
