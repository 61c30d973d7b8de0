package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/n3xa/n3xa/internal/domain"
	"github.com/n3xa/n3xa/internal/ports"
	"github.com/n3xa/n3xa/internal/service/logger"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

// CreateTicketRequest represents the request to create a ticket
type CreateTicketRequest struct {
	Title          string  `json:"title"`
	Category       string  `json:"category"`
	Description    string  `json:"description"`
	Email          string  `json:"email"`
	AdditionalInfo *string `json:"additionalInfo,omitempty"`
	Summary        *string `json:"summary,omitempty"`
}

// ListTicketsResponse is one page of tickets plus the unpaged total
type ListTicketsResponse struct {
	Tickets []*domain.Ticket `json:"tickets"`
	Total   int              `json:"total"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}

// TicketStats counts tickets per status
type TicketStats struct {
	Total    int                         `json:"total"`
	ByStatus map[domain.TicketStatus]int `json:"byStatus"`
}

// TicketUseCase handles ticket-related business logic
type TicketUseCase struct {
	ticketRepo ports.TicketRepository
	logger     logger.Logger
}

// NewTicketUseCase creates a new ticket use case
func NewTicketUseCase(ticketRepo ports.TicketRepository, log logger.Logger) *TicketUseCase {
	return &TicketUseCase{
		ticketRepo: ticketRepo,
		logger:     log.WithFields(map[string]interface{}{"component": "tickets"}),
	}
}

// CreateTicket validates and stores a new open ticket
func (uc *TicketUseCase) CreateTicket(ctx context.Context, req CreateTicketRequest) (*domain.Ticket, error) {
	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}

	ticket := domain.NewTicket(req.Title, req.Category, req.Description, req.Email)
	if req.AdditionalInfo != nil {
		ticket.SetAdditionalInfo(*req.AdditionalInfo)
	}
	if req.Summary != nil {
		ticket.SetSummary(*req.Summary)
	}

	if err := uc.ticketRepo.Create(ctx, ticket); err != nil {
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}

	uc.logger.Info(ctx, "Ticket created", map[string]interface{}{
		"ticket_id": ticket.ID,
		"category":  ticket.Category,
	})
	return ticket, nil
}

// GetTicket retrieves a ticket by ID
func (uc *TicketUseCase) GetTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	if ticketID == "" {
		return nil, domain.ErrInvalidRequest("ticket ID is required")
	}

	ticket, err := uc.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	return ticket, nil
}

// ListTickets retrieves a page of tickets and the total matching count
func (uc *TicketUseCase) ListTickets(ctx context.Context, filter domain.TicketFilter) (*ListTicketsResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, domain.ErrInvalidStatus(string(*filter.Status))
	}

	tickets, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}

	total, err := uc.ticketRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count tickets: %w", err)
	}

	return &ListTicketsResponse{
		Tickets: tickets,
		Total:   total,
		Limit:   filter.Limit,
		Offset:  filter.Offset,
	}, nil
}

// UpdateTicket applies a partial edit from the management console
func (uc *TicketUseCase) UpdateTicket(ctx context.Context, ticketID string, patch domain.TicketPatch) (*domain.Ticket, error) {
	if patch.IsEmpty() {
		return nil, domain.ErrInvalidRequest("no fields to update")
	}

	ticket, err := uc.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	if err := patch.Apply(ticket); err != nil {
		return nil, err
	}

	if err := uc.ticketRepo.Update(ctx, ticket); err != nil {
		return nil, fmt.Errorf("failed to update ticket: %w", err)
	}

	uc.logger.Info(ctx, "Ticket updated", map[string]interface{}{
		"ticket_id": ticket.ID,
		"status":    ticket.Status,
	})
	return ticket, nil
}

// DeleteTicket removes a ticket permanently
func (uc *TicketUseCase) DeleteTicket(ctx context.Context, ticketID string) error {
	if ticketID == "" {
		return domain.ErrInvalidRequest("ticket ID is required")
	}
	if err := uc.ticketRepo.Delete(ctx, ticketID); err != nil {
		return fmt.Errorf("failed to delete ticket: %w", err)
	}

	uc.logger.Info(ctx, "Ticket deleted", map[string]interface{}{"ticket_id": ticketID})
	return nil
}

// Stats returns ticket counts per status
func (uc *TicketUseCase) Stats(ctx context.Context) (*TicketStats, error) {
	counts, err := uc.ticketRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count tickets: %w", err)
	}

	stats := &TicketStats{ByStatus: counts}
	for _, n := range counts {
		stats.Total += n
	}
	return stats, nil
}

// errNotResubmittable marks a stored row the chat may not overwrite
var errNotResubmittable = errors.New("ticket cannot be resubmitted")

// SubmitTicket persists a ticket collected by the chat. A partial carrying the
// id of an existing open row with the same contact email updates that row;
// otherwise a new ticket is created. The returned id is the stored ticket's id.
func (uc *TicketUseCase) SubmitTicket(ctx context.Context, partial domain.PartialTicket) (string, error) {
	if partial.TicketID != "" {
		id, err := uc.resubmit(ctx, partial)
		switch {
		case err == nil:
			return id, nil
		case errors.Is(err, domain.ErrTicketNotFound):
			uc.logger.Warn(ctx, "Submitted ticket no longer exists, creating a new one", map[string]interface{}{
				"ticket_id": partial.TicketID,
			})
		case errors.Is(err, errNotResubmittable):
			uc.logger.Warn(ctx, "Submitted ticket belongs to another conversation, creating a new one", map[string]interface{}{
				"ticket_id": partial.TicketID,
			})
		default:
			return "", err
		}
	}

	ticket, err := uc.CreateTicket(ctx, CreateTicketRequest{
		Title:          partial.Title,
		Category:       partial.Category,
		Description:    partial.Description,
		Email:          partial.Email,
		AdditionalInfo: optional(partial.AdditionalInfo),
		Summary:        optional(partial.Summary),
	})
	if err != nil {
		return "", err
	}
	return ticket.ID, nil
}

func (uc *TicketUseCase) resubmit(ctx context.Context, partial domain.PartialTicket) (string, error) {
	ticket, err := uc.ticketRepo.FindByID(ctx, partial.TicketID)
	if err != nil {
		return "", err
	}
	// only the conversation that filed an open ticket may amend it
	if ticket.Status != domain.TicketStatusOpen ||
		!strings.EqualFold(strings.TrimSpace(ticket.Email), strings.TrimSpace(partial.Email)) {
		return "", errNotResubmittable
	}

	patch := domain.TicketPatch{
		Title:       &partial.Title,
		Category:    &partial.Category,
		Description: &partial.Description,
		Email:       &partial.Email,
	}
	if partial.AdditionalInfo != "" {
		patch.AdditionalInfo = &partial.AdditionalInfo
	}
	if partial.Summary != "" {
		patch.Summary = &partial.Summary
	}
	if err := patch.Apply(ticket); err != nil {
		return "", err
	}

	if err := uc.ticketRepo.Update(ctx, ticket); err != nil {
		return "", fmt.Errorf("failed to update ticket: %w", err)
	}

	uc.logger.Info(ctx, "Ticket resubmitted", map[string]interface{}{"ticket_id": ticket.ID})
	return ticket.ID, nil
}

func validateCreateRequest(req CreateTicketRequest) error {
	fields := []struct {
		name  string
		value string
	}{
		{"title", req.Title},
		{"category", req.Category},
		{"description", req.Description},
		{"email", req.Email},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return domain.ErrMissingField(f.name)
		}
	}
	if !domain.IsKnownCategory(req.Category) {
		return domain.ErrInvalidCategory(req.Category)
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
