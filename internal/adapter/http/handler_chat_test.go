package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/n3xa/n3xa/internal/domain"
)

// MockConversationEngine is a mock implementation of ConversationEngine
type MockConversationEngine struct {
	mock.Mock
}

func (m *MockConversationEngine) Step(ctx context.Context, in domain.StepInput) *domain.StepResult {
	args := m.Called(ctx, in)
	return args.Get(0).(*domain.StepResult)
}

func TestChatHandler_Chat(t *testing.T) {
	title := "VPN drops"

	tests := []struct {
		name           string
		requestBody    string
		expectedInput  *domain.StepInput
		mockResult     *domain.StepResult
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "first turn",
			requestBody: `{
				"message": "VPN drops",
				"conversationHistory": [{"id": "1", "type": "assistant", "content": "Hello", "timestamp": "2024-01-01T00:00:00Z"}],
				"ticketData": {"title": "", "category": "", "description": "", "email": ""}
			}`,
			expectedInput: &domain.StepInput{Message: "VPN drops"},
			mockResult: &domain.StepResult{
				Message:     "Got it.",
				TicketData:  &domain.TicketUpdate{Title: &title},
				ShowButtons: true,
				Buttons:     []string{"Login Help"},
				State:       domain.StageAwaitingCategory,
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message":"Got it.","ticketData":{"title":"VPN drops"},"showButtons":true,"buttons":["Login Help"],"state":"awaiting_category"}`,
		},
		{
			name:           "reset",
			requestBody:    `{"message": "start"}`,
			expectedInput:  &domain.StepInput{Message: "start"},
			mockResult:     &domain.StepResult{Message: "Hello", Reset: true, State: domain.StageAwaitingTitle},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message":"Hello","showButtons":false,"reset":true,"state":"awaiting_title"}`,
		},
		{
			name:           "invalid request body",
			requestBody:    `{"message": `,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Invalid request body"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := new(MockConversationEngine)
			if tt.expectedInput != nil {
				engine.On("Step", mock.Anything, mock.MatchedBy(func(in domain.StepInput) bool {
					return in.Message == tt.expectedInput.Message
				})).Return(tt.mockResult).Once()
			}

			router := mux.NewRouter()
			NewChatHandler(engine).RegisterRoutes(router)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewBufferString(tt.requestBody))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.JSONEq(t, tt.expectedBody, rr.Body.String())
			engine.AssertExpectations(t)
		})
	}
}

func TestChatHandler_DecodesHistoryAndState(t *testing.T) {
	engine := new(MockConversationEngine)
	engine.On("Step", mock.Anything, mock.MatchedBy(func(in domain.StepInput) bool {
		return len(in.History) == 2 &&
			in.History[0].Type == domain.SpeakerAssistant &&
			in.History[1].Content == "VPN" &&
			in.Ticket.Email == "a@b.com" &&
			in.Ticket.TicketID == "t-1" &&
			in.State == domain.StageAwaitingConfirmation
	})).Return(&domain.StepResult{Message: "ok"}).Once()

	router := mux.NewRouter()
	NewChatHandler(engine).RegisterRoutes(router)

	body := `{
		"message": "no",
		"conversationHistory": [
			{"id": "1", "type": "assistant", "content": "Hello", "timestamp": "2024-01-01T00:00:00Z"},
			{"id": "2", "type": "user", "content": "VPN", "timestamp": "2024-01-01T00:00:01Z"}
		],
		"ticketData": {"email": "a@b.com", "ticketId": "t-1"},
		"state": "awaiting_confirmation"
	}`
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewBufferString(body)))

	assert.Equal(t, http.StatusOK, rr.Code)
	engine.AssertExpectations(t)
}

func TestChatHandler_RejectsOversizedBody(t *testing.T) {
	engine := new(MockConversationEngine)
	router := mux.NewRouter()
	NewChatHandler(engine).RegisterRoutes(router)

	body := `{"message": "` + strings.Repeat("a", maxChatBodyBytes) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(body))
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	assert.JSONEq(t, `{"error":"Request body too large"}`, rr.Body.String())
	engine.AssertNotCalled(t, "Step", mock.Anything, mock.Anything)
}
