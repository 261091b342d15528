package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// ChatRepository persists per-ticket chat messages.
type ChatRepository interface {
	Create(ctx context.Context, message *domain.ChatMessage) error
	ListByTicket(ctx context.Context, ticketID string) ([]domain.ChatMessage, error)
	MarkReadExceptAuthor(ctx context.Context, ticketID, readerID string) error
}

type chatRepository struct {
	pool *pgxpool.Pool
}

// NewChatRepository returns a Postgres-backed implementation.
func NewChatRepository(pool *pgxpool.Pool) ChatRepository {
	return &chatRepository{pool: pool}
}

func (r *chatRepository) Create(ctx context.Context, message *domain.ChatMessage) error {
	const query = `
        INSERT INTO chat_messages (ticket_id, author_id, text)
        VALUES ($1, $2, $3)
        RETURNING id, sent_at, read`
	return r.pool.QueryRow(ctx, query,
		message.TicketID,
		message.AuthorID,
		message.Text,
	).Scan(&message.ID, &message.SentAt, &message.Read)
}

func (r *chatRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.ChatMessage, error) {
	const query = `
        SELECT id, ticket_id, author_id, text, sent_at, read
        FROM chat_messages WHERE ticket_id=$1 ORDER BY sent_at`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ChatMessage
	for rows.Next() {
		var message domain.ChatMessage
		if err := rows.Scan(
			&message.ID,
			&message.TicketID,
			&message.AuthorID,
			&message.Text,
			&message.SentAt,
			&message.Read,
		); err != nil {
			return nil, err
		}
		result = append(result, message)
	}
	return result, rows.Err()
}

func (r *chatRepository) MarkReadExceptAuthor(ctx context.Context, ticketID, readerID string) error {
	const query = `
        UPDATE chat_messages SET read=TRUE
        WHERE ticket_id=$1 AND author_id<>$2 AND read=FALSE`
	_, err := r.pool.Exec(ctx, query, ticketID, readerID)
	return err
}
