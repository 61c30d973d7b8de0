package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/n3xa/n3xa/internal/adapter/http/response"
	"github.com/n3xa/n3xa/internal/domain"
)

// ConversationEngine answers one chat turn
type ConversationEngine interface {
	Step(ctx context.Context, in domain.StepInput) *domain.StepResult
}

// ChatHandler serves the chat wizard. Its bodies are the bare step
// request and result, not the management envelope.
type ChatHandler struct {
	engine ConversationEngine
}

func NewChatHandler(engine ConversationEngine) *ChatHandler {
	return &ChatHandler{engine: engine}
}

func (h *ChatHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/v1/chat", h.Chat).Methods(http.MethodPost)
}

// maxChatBodyBytes caps a chat request; the transcript is resent every turn
const maxChatBodyBytes = 1 << 20

type chatError struct {
	Error string `json:"error"`
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxChatBodyBytes)

	var in domain.StepInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Raw(w, http.StatusRequestEntityTooLarge, chatError{Error: "Request body too large"})
			return
		}
		response.Raw(w, http.StatusBadRequest, chatError{Error: "Invalid request body"})
		return
	}

	response.Raw(w, http.StatusOK, h.engine.Step(r.Context(), in))
}
