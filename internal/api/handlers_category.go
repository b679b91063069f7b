package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/reminisce-app/journal-server/internal/api/respond"
	"github.com/reminisce-app/journal-server/internal/api/validate"
	"github.com/reminisce-app/journal-server/internal/model"
	"github.com/reminisce-app/journal-server/internal/services"
)

// CategoryHandler is a thin HTTP transport over the category repository.
type CategoryHandler struct {
	cats *services.CategoryService
	mems *services.MemoryService
}

func NewCategoryHandler(cats *services.CategoryService, mems *services.MemoryService) *CategoryHandler {
	return &CategoryHandler{cats: cats, mems: mems}
}

// categoryView augments a category with its memory count for list screens.
type categoryView struct {
	model.Category
	MemoryCount int `json:"memoryCount"`
}

// ListCategories GET /api/categories
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	lst, err := h.cats.List(r.Context())
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}

	out := make([]categoryView, 0, len(lst))
	for _, c := range lst {
		refs, err := h.mems.GetByCategory(r.Context(), c.ID)
		if err != nil {
			respond.WriteDomainError(w, err)
			return
		}
		out = append(out, categoryView{Category: *c, MemoryCount: len(refs)})
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"categories": out, "count": len(out)})
}

// CreateCategory POST /api/categories
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := validate.NonEmpty("name", req.Name); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	if err := validate.Color(req.Color); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	c, err := h.cats.Create(r.Context(), req.Name, req.Color)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, c)
}

// GetCategory GET /api/categories/{categoryId}
func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	c, err := h.cats.GetByID(r.Context(), mux.Vars(r)["categoryId"])
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, c)
}

// UpdateCategory PUT /api/categories/{categoryId}
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := validate.NonEmpty("name", req.Name); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	if err := validate.Color(req.Color); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	c, err := h.cats.Update(r.Context(), mux.Vars(r)["categoryId"], req.Name, req.Color)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, c)
}

// DeleteCategory DELETE /api/categories/{categoryId}
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.cats.Remove(r.Context(), mux.Vars(r)["categoryId"]); err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListCategoryMemories GET /api/categories/{categoryId}/memories
func (h *CategoryHandler) ListCategoryMemories(w http.ResponseWriter, r *http.Request) {
	lst, err := h.mems.GetByCategory(r.Context(), mux.Vars(r)["categoryId"])
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"memories": lst, "count": len(lst)})
}
