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

// MessagingService handles ticket comments and the in-progress chat
// channel. Both are append-only; access follows the ticket read rule.
type MessagingService struct {
	tickets    repository.TicketRepository
	users      repository.UserRepository
	comments   repository.CommentRepository
	chat       repository.ChatRepository
	dispatcher events.Dispatcher
}

// MessagingDependencies bundles repositories for the messaging service.
type MessagingDependencies struct {
	TicketRepo  repository.TicketRepository
	UserRepo    repository.UserRepository
	CommentRepo repository.CommentRepository
	ChatRepo    repository.ChatRepository
	Dispatcher  events.Dispatcher
}

// NewMessagingService constructs the service.
func NewMessagingService(deps MessagingDependencies) *MessagingService {
	return &MessagingService{
		tickets:    deps.TicketRepo,
		users:      deps.UserRepo,
		comments:   deps.CommentRepo,
		chat:       deps.ChatRepo,
		dispatcher: deps.Dispatcher,
	}
}

// AddComment appends a comment to a ticket the caller can read. There
// is no status restriction on commenting.
func (m *MessagingService) AddComment(ctx context.Context, actor *domain.User, ticketID, text string) (*domain.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.NewValidationError("comment text required", nil)
	}
	ticket, err := m.accessibleTicket(ctx, actor, ticketID)
	if err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		TicketID: ticket.ID,
		AuthorID: actor.ID,
		Text:     text,
	}
	if err := m.comments.Create(ctx, comment); err != nil {
		return nil, apperrors.MapError(err)
	}
	m.publish(ctx, events.EventCommentAdded, actor.ID, events.CommentAddedPayload{
		TicketID:  ticket.ID,
		CommentID: comment.ID,
	})
	return comment, nil
}

// ListComments returns a ticket's comments in creation order.
func (m *MessagingService) ListComments(ctx context.Context, actor *domain.User, ticketID string) ([]domain.Comment, error) {
	ticket, err := m.accessibleTicket(ctx, actor, ticketID)
	if err != nil {
		return nil, err
	}
	comments, err := m.comments.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return comments, nil
}

// SendChatMessage appends a chat message. Chat is only open while the
// ticket is in progress.
func (m *MessagingService) SendChatMessage(ctx context.Context, actor *domain.User, ticketID, text string) (*domain.ChatMessage, error) {
	ticket, err := m.accessibleTicket(ctx, actor, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Status != domain.TicketStatusInProgress {
		return nil, apperrors.NewInvalidState("chat is only available while the ticket is in progress",
			map[string]any{"status": ticket.Status})
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.NewValidationError("message text required", nil)
	}

	message := &domain.ChatMessage{
		TicketID: ticket.ID,
		AuthorID: actor.ID,
		Text:     text,
	}
	if err := m.chat.Create(ctx, message); err != nil {
		return nil, apperrors.MapError(err)
	}
	m.publish(ctx, events.EventChatMessageSent, actor.ID, events.ChatMessageSentPayload{
		TicketID:  ticket.ID,
		MessageID: message.ID,
	})
	return message, nil
}

// ListChatMessages returns a ticket's chat history in sent order.
func (m *MessagingService) ListChatMessages(ctx context.Context, actor *domain.User, ticketID string) ([]domain.ChatMessage, error) {
	ticket, err := m.accessibleTicket(ctx, actor, ticketID)
	if err != nil {
		return nil, err
	}
	messages, err := m.chat.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return messages, nil
}

// MarkChatRead flags every unread message from other participants as read.
func (m *MessagingService) MarkChatRead(ctx context.Context, actor *domain.User, ticketID string) error {
	ticket, err := m.accessibleTicket(ctx, actor, ticketID)
	if err != nil {
		return err
	}
	if err := m.chat.MarkReadExceptAuthor(ctx, ticket.ID, actor.ID); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func (m *MessagingService) accessibleTicket(ctx context.Context, actor *domain.User, ticketID string) (*domain.Ticket, error) {
	ticket, err := m.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	if err := requireTicketReadAccess(ctx, m.users, actor, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (m *MessagingService) publish(ctx context.Context, eventType events.EventType, actorID string, payload interface{}) {
	if m.dispatcher == nil {
		return
	}
	_ = m.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		ActorID:   actorID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
