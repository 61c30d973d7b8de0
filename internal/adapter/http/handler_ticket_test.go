package http

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/n3xa/n3xa/internal/domain"
	"github.com/n3xa/n3xa/internal/usecase"
)

// MockTicketUseCase is a mock implementation of TicketUseCase
type MockTicketUseCase struct {
	mock.Mock
}

func (m *MockTicketUseCase) CreateTicket(ctx context.Context, req usecase.CreateTicketRequest) (*domain.Ticket, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *MockTicketUseCase) GetTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	args := m.Called(ctx, ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *MockTicketUseCase) ListTickets(ctx context.Context, filter domain.TicketFilter) (*usecase.ListTicketsResponse, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.ListTicketsResponse), args.Error(1)
}

func (m *MockTicketUseCase) UpdateTicket(ctx context.Context, ticketID string, patch domain.TicketPatch) (*domain.Ticket, error) {
	args := m.Called(ctx, ticketID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *MockTicketUseCase) DeleteTicket(ctx context.Context, ticketID string) error {
	args := m.Called(ctx, ticketID)
	return args.Error(0)
}

func (m *MockTicketUseCase) Stats(ctx context.Context) (*usecase.TicketStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.TicketStats), args.Error(1)
}

var fixedTime = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

func sampleTicket() *domain.Ticket {
	return &domain.Ticket{
		ID:          "ticket-123",
		Title:       "VPN drops",
		Category:    "Connection",
		Description: "Every ten minutes",
		Email:       "a@b.com",
		Status:      domain.TicketStatusOpen,
		CreatedAt:   fixedTime,
		UpdatedAt:   fixedTime,
	}
}

const sampleTicketJSON = `{"id":"ticket-123","title":"VPN drops","category":"Connection","description":"Every ten minutes","email":"a@b.com","status":"open","createdAt":"2024-01-02T03:04:05Z","updatedAt":"2024-01-02T03:04:05Z"}`

func newTicketRouter(uc TicketUseCase) *mux.Router {
	router := mux.NewRouter()
	NewTicketHandler(uc).RegisterRoutes(router)
	return router
}

func TestTicketHandler_CreateTicket(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    string
		mockResponse   *domain.Ticket
		mockError      error
		callsUseCase   bool
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "successful ticket creation",
			requestBody:    `{"title":"VPN drops","category":"Connection","description":"Every ten minutes","email":"a@b.com"}`,
			mockResponse:   sampleTicket(),
			callsUseCase:   true,
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"status":true,"message":"Ticket created successfully","data":` + sampleTicketJSON + `}`,
		},
		{
			name:           "invalid request body",
			requestBody:    `{"title": json}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":false,"message":"Invalid request body","data":null,"code":"invalid_request"}`,
		},
		{
			name:           "missing field",
			requestBody:    `{"title":"VPN drops"}`,
			mockError:      domain.ErrMissingField("category"),
			callsUseCase:   true,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":false,"message":"Missing required field: Field: category","data":null,"code":"VALID_2001"}`,
		},
		{
			name:           "store failure hides details",
			requestBody:    `{"title":"VPN drops","category":"Connection","description":"d","email":"e"}`,
			mockError:      domain.ErrStore("insert ticket", errors.New("pq: connection refused")),
			callsUseCase:   true,
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `{"status":false,"message":"Ticket store operation failed","data":null,"code":"STORE_5031"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockTicketUseCase)
			if tt.callsUseCase {
				if tt.mockError != nil {
					uc.On("CreateTicket", mock.Anything, mock.AnythingOfType("usecase.CreateTicketRequest")).Return(nil, tt.mockError)
				} else {
					uc.On("CreateTicket", mock.Anything, mock.AnythingOfType("usecase.CreateTicketRequest")).Return(tt.mockResponse, nil)
				}
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/tickets", bytes.NewBufferString(tt.requestBody))
			rr := httptest.NewRecorder()
			newTicketRouter(uc).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.JSONEq(t, tt.expectedBody, rr.Body.String())
			uc.AssertExpectations(t)
		})
	}
}

func TestTicketHandler_GetTicket(t *testing.T) {
	uc := new(MockTicketUseCase)
	uc.On("GetTicket", mock.Anything, "ticket-123").Return(sampleTicket(), nil)
	uc.On("GetTicket", mock.Anything, "missing").Return(nil, domain.ErrTicketNotFound)
	router := newTicketRouter(uc)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/tickets/ticket-123", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":true,"message":"Ticket retrieved successfully","data":`+sampleTicketJSON+`}`, rr.Body.String())

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/tickets/missing", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"status":false,"message":"Ticket not found","data":null,"code":"NOT_FOUND_4041"}`, rr.Body.String())
}

func TestTicketHandler_ListTickets(t *testing.T) {
	status := domain.TicketStatusOpen
	category := "Connection"

	tests := []struct {
		name           string
		query          string
		expectedFilter *domain.TicketFilter
		expectedStatus int
	}{
		{
			name:           "all filters",
			query:          "?search=vpn&status=open&category=Connection&limit=5&offset=10",
			expectedFilter: &domain.TicketFilter{Search: "vpn", Status: &status, Category: &category, Limit: 5, Offset: 10},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "page converts to offset",
			query:          "?page=3",
			expectedFilter: &domain.TicketFilter{Offset: 20},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "no params",
			query:          "",
			expectedFilter: &domain.TicketFilter{},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid limit",
			query:          "?limit=abc",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "negative offset",
			query:          "?offset=-1",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockTicketUseCase)
			if tt.expectedFilter != nil {
				uc.On("ListTickets", mock.Anything, *tt.expectedFilter).Return(&usecase.ListTicketsResponse{
					Tickets: []*domain.Ticket{sampleTicket()},
					Total:   1,
					Limit:   10,
				}, nil).Once()
			}

			rr := httptest.NewRecorder()
			newTicketRouter(uc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/tickets"+tt.query, nil))

			assert.Equal(t, tt.expectedStatus, rr.Code)
			uc.AssertExpectations(t)
		})
	}
}

func TestTicketHandler_UpdateTicket(t *testing.T) {
	solved := domain.TicketStatusSolved
	updated := sampleTicket()
	updated.Status = solved

	uc := new(MockTicketUseCase)
	uc.On("UpdateTicket", mock.Anything, "ticket-123", domain.TicketPatch{Status: &solved}).Return(updated, nil).Once()
	uc.On("UpdateTicket", mock.Anything, "ticket-123", mock.MatchedBy(func(p domain.TicketPatch) bool {
		return p.Status != nil && *p.Status == "archived"
	})).Return(nil, domain.ErrInvalidStatus("archived")).Once()
	router := newTicketRouter(uc)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPatch, "/api/v1/tickets/ticket-123", bytes.NewBufferString(`{"status":"solved"}`)))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":"solved"`)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPatch, "/api/v1/tickets/ticket-123", bytes.NewBufferString(`{"status":"archived"}`)))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPatch, "/api/v1/tickets/ticket-123", bytes.NewBufferString(`not json`)))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	uc.AssertExpectations(t)
}

func TestTicketHandler_DeleteTicket(t *testing.T) {
	uc := new(MockTicketUseCase)
	uc.On("DeleteTicket", mock.Anything, "ticket-123").Return(nil).Once()
	uc.On("DeleteTicket", mock.Anything, "missing").Return(domain.ErrTicketNotFound).Once()
	router := newTicketRouter(uc)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/api/v1/tickets/ticket-123", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":true,"message":"Ticket deleted successfully","data":null}`, rr.Body.String())

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/api/v1/tickets/missing", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestTicketHandler_StatsRouteIsNotAnID(t *testing.T) {
	uc := new(MockTicketUseCase)
	uc.On("Stats", mock.Anything).Return(&usecase.TicketStats{
		Total:    3,
		ByStatus: map[domain.TicketStatus]int{domain.TicketStatusOpen: 2, domain.TicketStatusSolved: 1, domain.TicketStatusClosed: 0},
	}, nil).Once()

	rr := httptest.NewRecorder()
	newTicketRouter(uc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/tickets/stats", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":true,"message":"Ticket statistics retrieved successfully","data":{"total":3,"byStatus":{"open":2,"solved":1,"closed":0}}}`, rr.Body.String())
	uc.AssertNotCalled(t, "GetTicket", mock.Anything, mock.Anything)
}
