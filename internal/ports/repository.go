package ports

import (
	"context"

	"github.com/n3xa/n3xa/internal/domain"
)

// TicketRepository defines the interface for ticket persistence
type TicketRepository interface {
	// Create saves a new ticket
	Create(ctx context.Context, ticket *domain.Ticket) error

	// FindByID retrieves a ticket by its ID
	FindByID(ctx context.Context, id string) (*domain.Ticket, error)

	// Update overwrites the mutable fields of an existing ticket
	Update(ctx context.Context, ticket *domain.Ticket) error

	// List retrieves tickets matching the filter, newest first
	List(ctx context.Context, filter domain.TicketFilter) ([]*domain.Ticket, error)

	// Delete removes a ticket permanently
	Delete(ctx context.Context, id string) error

	// Count returns the number of tickets matching the filter, ignoring limit and offset
	Count(ctx context.Context, filter domain.TicketFilter) (int, error)

	// CountByStatus returns ticket counts keyed by status
	CountByStatus(ctx context.Context) (map[domain.TicketStatus]int, error)
}

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// List returns all categories ordered by name
	List(ctx context.Context) ([]*domain.Category, error)

	// Seed inserts any of names that are missing. Existing rows are left alone.
	Seed(ctx context.Context, names []string) error
}
