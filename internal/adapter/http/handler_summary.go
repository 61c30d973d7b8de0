package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/n3xa/n3xa/internal/adapter/http/response"
	"github.com/n3xa/n3xa/internal/ports"
)

// SummaryUseCase produces ticket summaries for the summarizer service
type SummaryUseCase interface {
	Summarize(ctx context.Context, req ports.SummaryRequest) (string, error)
	Provider() string
}

// SummaryHandler is the summarizer service surface. Bodies are bare JSON.
type SummaryHandler struct {
	summaryUseCase SummaryUseCase
}

func NewSummaryHandler(summaryUseCase SummaryUseCase) *SummaryHandler {
	return &SummaryHandler{summaryUseCase: summaryUseCase}
}

func (h *SummaryHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/", h.Root).Methods(http.MethodGet)
	router.HandleFunc("/generate-summary", h.GenerateSummary).Methods(http.MethodPost)
	router.HandleFunc("/health", h.Health).Methods(http.MethodGet)
}

type summaryResponse struct {
	Summary string `json:"summary"`
}

func (h *SummaryHandler) Root(w http.ResponseWriter, r *http.Request) {
	response.Raw(w, http.StatusOK, map[string]string{"message": "N3XA AI Support Assistant API"})
}

func (h *SummaryHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.Raw(w, http.StatusOK, map[string]string{"status": "healthy", "provider": h.summaryUseCase.Provider()})
}

// GenerateSummary always answers 200 with a summary once the body parses
func (h *SummaryHandler) GenerateSummary(w http.ResponseWriter, r *http.Request) {
	var req ports.SummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Raw(w, http.StatusUnprocessableEntity, map[string]string{"detail": "Invalid request body"})
		return
	}

	summary, err := h.summaryUseCase.Summarize(r.Context(), req)
	if err != nil {
		response.Raw(w, http.StatusInternalServerError, map[string]string{"detail": "Failed to generate summary"})
		return
	}

	response.Raw(w, http.StatusOK, summaryResponse{Summary: summary})
}
