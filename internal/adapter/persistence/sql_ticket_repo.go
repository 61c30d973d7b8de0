package persistence

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/n3xa/n3xa/internal/domain"
	"github.com/n3xa/n3xa/internal/ports"
)

// SQLTicketRepository implements TicketRepository on sqlx. Queries are written
// with ? placeholders and rebound for the connected driver.
type SQLTicketRepository struct {
	db *sqlx.DB
}

// NewSQLTicketRepository creates a new ticket repository
func NewSQLTicketRepository(db *sqlx.DB) ports.TicketRepository {
	return &SQLTicketRepository{db: db}
}

type ticketRow struct {
	ID             string         `db:"id"`
	Title          string         `db:"title"`
	Category       string         `db:"category"`
	Description    string         `db:"description"`
	Email          string         `db:"email"`
	AdditionalInfo sql.NullString `db:"additional_info"`
	Summary        sql.NullString `db:"summary"`
	Status         string         `db:"status"`
	CreatedAt      dbTime         `db:"created_at"`
	UpdatedAt      dbTime         `db:"updated_at"`
}

func (r ticketRow) toDomain() *domain.Ticket {
	return &domain.Ticket{
		ID:             r.ID,
		Title:          r.Title,
		Category:       r.Category,
		Description:    r.Description,
		Email:          r.Email,
		AdditionalInfo: mapStringPtr(r.AdditionalInfo),
		Summary:        mapStringPtr(r.Summary),
		Status:         domain.TicketStatus(r.Status),
		CreatedAt:      r.CreatedAt.Time,
		UpdatedAt:      r.UpdatedAt.Time,
	}
}

const ticketColumns = `id, title, category, description, email, additional_info, summary, status, created_at, updated_at`

// Create saves a new ticket
func (r *SQLTicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	query := r.db.Rebind(`
		INSERT INTO tickets (` + ticketColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := r.db.ExecContext(ctx, query,
		ticket.ID,
		ticket.Title,
		ticket.Category,
		ticket.Description,
		ticket.Email,
		nullString(ticket.AdditionalInfo),
		nullString(ticket.Summary),
		string(ticket.Status),
		ticket.CreatedAt.UTC(),
		ticket.UpdatedAt.UTC(),
	)
	if err != nil {
		return domain.ErrStore("create ticket", err)
	}
	return nil
}

// FindByID retrieves a ticket by its ID
func (r *SQLTicketRepository) FindByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query := r.db.Rebind(`SELECT ` + ticketColumns + ` FROM tickets WHERE id = ?`)

	var row ticketRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, domain.ErrStore("find ticket", err)
	}
	return row.toDomain(), nil
}

// Update overwrites every mutable column. The id and created_at never change.
func (r *SQLTicketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	query := r.db.Rebind(`
		UPDATE tickets
		SET title = ?, category = ?, description = ?, email = ?,
			additional_info = ?, summary = ?, status = ?, updated_at = ?
		WHERE id = ?
	`)

	result, err := r.db.ExecContext(ctx, query,
		ticket.Title,
		ticket.Category,
		ticket.Description,
		ticket.Email,
		nullString(ticket.AdditionalInfo),
		nullString(ticket.Summary),
		string(ticket.Status),
		ticket.UpdatedAt.UTC(),
		ticket.ID,
	)
	if err != nil {
		return domain.ErrStore("update ticket", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return domain.ErrStore("update ticket", err)
	}
	if rowsAffected == 0 {
		return domain.ErrTicketNotFound
	}
	return nil
}

// List retrieves tickets matching the filter, newest first
func (r *SQLTicketRepository) List(ctx context.Context, filter domain.TicketFilter) ([]*domain.Ticket, error) {
	where, args := buildWhereClause(filter)
	query := `SELECT ` + ticketColumns + ` FROM tickets ` + where + ` ORDER BY created_at DESC, id`

	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += ` OFFSET ?`
			args = append(args, filter.Offset)
		}
	}

	var rows []ticketRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, domain.ErrStore("list tickets", err)
	}

	tickets := make([]*domain.Ticket, 0, len(rows))
	for _, row := range rows {
		tickets = append(tickets, row.toDomain())
	}
	return tickets, nil
}

// Delete removes a ticket permanently
func (r *SQLTicketRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM tickets WHERE id = ?`), id)
	if err != nil {
		return domain.ErrStore("delete ticket", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return domain.ErrStore("delete ticket", err)
	}
	if rowsAffected == 0 {
		return domain.ErrTicketNotFound
	}
	return nil
}

// Count returns the number of tickets matching the filter
func (r *SQLTicketRepository) Count(ctx context.Context, filter domain.TicketFilter) (int, error) {
	where, args := buildWhereClause(filter)

	var count int
	if err := r.db.GetContext(ctx, &count, r.db.Rebind(`SELECT COUNT(*) FROM tickets `+where), args...); err != nil {
		return 0, domain.ErrStore("count tickets", err)
	}
	return count, nil
}

// CountByStatus returns ticket counts for every status, zero-filled
func (r *SQLTicketRepository) CountByStatus(ctx context.Context) (map[domain.TicketStatus]int, error) {
	var rows []struct {
		Status string `db:"status"`
		N      int    `db:"n"`
	}
	if err := r.db.SelectContext(ctx, &rows, `SELECT status, COUNT(*) AS n FROM tickets GROUP BY status`); err != nil {
		return nil, domain.ErrStore("count tickets by status", err)
	}

	counts := make(map[domain.TicketStatus]int, len(domain.AllTicketStatuses()))
	for _, s := range domain.AllTicketStatuses() {
		counts[s] = 0
	}
	for _, row := range rows {
		counts[domain.TicketStatus(row.Status)] = row.N
	}
	return counts, nil
}

func buildWhereClause(filter domain.TicketFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if filter.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, string(*filter.Status))
	}

	if filter.Category != nil {
		conditions = append(conditions, "category = ?")
		args = append(args, *filter.Category)
	}

	if term := strings.TrimSpace(filter.Search); term != "" {
		pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
		conditions = append(conditions, `(LOWER(title) LIKE ? ESCAPE '\'
			OR LOWER(description) LIKE ? ESCAPE '\'
			OR LOWER(email) LIKE ? ESCAPE '\'
			OR LOWER(COALESCE(summary, '')) LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern, pattern, pattern)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func mapStringPtr(ns sql.NullString) *string {
	if ns.Valid {
		return &ns.String
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
