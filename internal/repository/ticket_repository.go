package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// TicketRepository encapsulates ticket persistence. Tickets are never
// deleted; the interface deliberately has no delete path.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	ListByRequester(ctx context.Context, requesterID string) ([]domain.Ticket, error)
	ListByTechnician(ctx context.Context, technicianID string) ([]domain.Ticket, error)
	ListBySection(ctx context.Context, section string) ([]domain.Ticket, error)
	CountByStatus(ctx context.Context, status domain.TicketStatus) (int, error)
	Count(ctx context.Context) (int, error)
	CountReferencingUser(ctx context.Context, userID string) (int, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, title, description, priority, status, category, resolution,
               requester_id, technician_id, opened_at, closed_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (title, description, priority, status, category, requester_id)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, opened_at`
	return r.pool.QueryRow(ctx, query,
		ticket.Title,
		ticket.Description,
		ticket.Priority,
		ticket.Status,
		ticket.Category,
		ticket.RequesterID,
	).Scan(&ticket.ID, &ticket.OpenedAt)
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET title=$1, description=$2, priority=$3, status=$4, category=$5,
            resolution=$6, technician_id=$7, closed_at=$8
        WHERE id=$9`
	cmd, err := r.pool.Exec(ctx, query,
		ticket.Title,
		ticket.Description,
		ticket.Priority,
		ticket.Status,
		ticket.Category,
		ticket.Resolution,
		ticket.TechnicianID,
		ticket.ClosedAt,
		ticket.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	const query = `SELECT ` + ticketColumns + ` FROM tickets WHERE id=$1`
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.Title,
		&ticket.Description,
		&ticket.Priority,
		&ticket.Status,
		&ticket.Category,
		&ticket.Resolution,
		&ticket.RequesterID,
		&ticket.TechnicianID,
		&ticket.OpenedAt,
		&ticket.ClosedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) ListByRequester(ctx context.Context, requesterID string) ([]domain.Ticket, error) {
	const query = `SELECT ` + ticketColumns + ` FROM tickets WHERE requester_id=$1 ORDER BY opened_at DESC`
	return r.list(ctx, query, requesterID)
}

func (r *ticketRepository) ListByTechnician(ctx context.Context, technicianID string) ([]domain.Ticket, error) {
	const query = `SELECT ` + ticketColumns + ` FROM tickets WHERE technician_id=$1 ORDER BY opened_at DESC`
	return r.list(ctx, query, technicianID)
}

func (r *ticketRepository) ListBySection(ctx context.Context, section string) ([]domain.Ticket, error) {
	const query = `
        SELECT t.id, t.title, t.description, t.priority, t.status, t.category, t.resolution,
               t.requester_id, t.technician_id, t.opened_at, t.closed_at
        FROM tickets t
        JOIN users u ON u.id = t.requester_id
        WHERE u.section=$1
        ORDER BY t.opened_at DESC`
	return r.list(ctx, query, section)
}

func (r *ticketRepository) list(ctx context.Context, query string, arg any) ([]domain.Ticket, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) CountByStatus(ctx context.Context, status domain.TicketStatus) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tickets WHERE status=$1`, status).Scan(&count)
	return count, err
}

func (r *ticketRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tickets`).Scan(&count)
	return count, err
}

func (r *ticketRepository) CountReferencingUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM tickets WHERE requester_id=$1 OR technician_id=$1`, userID,
	).Scan(&count)
	return count, err
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.Title,
			&ticket.Description,
			&ticket.Priority,
			&ticket.Status,
			&ticket.Category,
			&ticket.Resolution,
			&ticket.RequesterID,
			&ticket.TechnicianID,
			&ticket.OpenedAt,
			&ticket.ClosedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
