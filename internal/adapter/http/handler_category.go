package http

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/n3xa/n3xa/internal/adapter/http/response"
	"github.com/n3xa/n3xa/internal/domain"
)

type CategoryUseCase interface {
	ListCategories(ctx context.Context) ([]*domain.Category, error)
}

type CategoryHandler struct {
	categoryUseCase CategoryUseCase
}

func NewCategoryHandler(categoryUseCase CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{categoryUseCase: categoryUseCase}
}

func (h *CategoryHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/v1/categories", h.ListCategories).Methods(http.MethodGet)
}

// ListCategories returns the categories ordered by name
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryUseCase.ListCategories(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Categories retrieved successfully", categories)
}
