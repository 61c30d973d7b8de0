package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/n3xa/n3xa/internal/adapter/http/response"
	"github.com/n3xa/n3xa/internal/domain"
	"github.com/n3xa/n3xa/internal/usecase"
)

// TicketUseCase is the management console surface the handler needs
type TicketUseCase interface {
	CreateTicket(ctx context.Context, req usecase.CreateTicketRequest) (*domain.Ticket, error)
	GetTicket(ctx context.Context, ticketID string) (*domain.Ticket, error)
	ListTickets(ctx context.Context, filter domain.TicketFilter) (*usecase.ListTicketsResponse, error)
	UpdateTicket(ctx context.Context, ticketID string, patch domain.TicketPatch) (*domain.Ticket, error)
	DeleteTicket(ctx context.Context, ticketID string) error
	Stats(ctx context.Context) (*usecase.TicketStats, error)
}

// TicketHandler handles HTTP requests for tickets
type TicketHandler struct {
	ticketUseCase TicketUseCase
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(ticketUseCase TicketUseCase) *TicketHandler {
	return &TicketHandler{
		ticketUseCase: ticketUseCase,
	}
}

// RegisterRoutes registers ticket routes. /stats is registered before /{id}.
func (h *TicketHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/v1/tickets", h.CreateTicket).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/tickets", h.ListTickets).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/tickets/stats", h.GetTicketStats).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/tickets/{id}", h.GetTicket).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/tickets/{id}", h.UpdateTicket).Methods(http.MethodPatch)
	router.HandleFunc("/api/v1/tickets/{id}", h.DeleteTicket).Methods(http.MethodDelete)
}

// CreateTicket handles ticket creation
func (h *TicketHandler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	var req usecase.CreateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	ticket, err := h.ticketUseCase.CreateTicket(r.Context(), req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Ticket created successfully", ticket)
}

// GetTicket handles retrieving a single ticket
func (h *TicketHandler) GetTicket(w http.ResponseWriter, r *http.Request) {
	ticket, err := h.ticketUseCase.GetTicket(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Ticket retrieved successfully", ticket)
}

// ListTickets handles listing tickets with filters
func (h *TicketHandler) ListTickets(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := domain.TicketFilter{Search: query.Get("search")}

	if status := query.Get("status"); status != "" {
		s := domain.TicketStatus(status)
		filter.Status = &s
	}
	if category := query.Get("category"); category != "" {
		filter.Category = &category
	}

	// Parse pagination
	var ok bool
	if filter.Limit, ok = parseIntParam(query.Get("limit")); !ok {
		response.BadRequest(w, "Invalid limit")
		return
	}
	if filter.Offset, ok = parseIntParam(query.Get("offset")); !ok {
		response.BadRequest(w, "Invalid offset")
		return
	}
	if page, ok := parseIntParam(query.Get("page")); !ok {
		response.BadRequest(w, "Invalid page")
		return
	} else if page > 0 && filter.Offset == 0 {
		limit := filter.Limit
		if limit <= 0 {
			limit = 10
		}
		filter.Offset = (page - 1) * limit
	}

	result, err := h.ticketUseCase.ListTickets(r.Context(), filter)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Tickets retrieved successfully", result)
}

// UpdateTicket handles a partial ticket edit
func (h *TicketHandler) UpdateTicket(w http.ResponseWriter, r *http.Request) {
	var patch domain.TicketPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	ticket, err := h.ticketUseCase.UpdateTicket(r.Context(), mux.Vars(r)["id"], patch)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Ticket updated successfully", ticket)
}

// DeleteTicket handles ticket deletion
func (h *TicketHandler) DeleteTicket(w http.ResponseWriter, r *http.Request) {
	if err := h.ticketUseCase.DeleteTicket(r.Context(), mux.Vars(r)["id"]); err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Ticket deleted successfully", nil)
}

// GetTicketStats handles ticket counts per status
func (h *TicketHandler) GetTicketStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.ticketUseCase.Stats(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Ticket statistics retrieved successfully", stats)
}

// parseIntParam parses an optional non-negative integer query value
func parseIntParam(value string) (int, bool) {
	if value == "" {
		return 0, true
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
