package api

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"

	"github.com/gorilla/mux"

	"github.com/reminisce-app/journal-server/internal/api/respond"
	"github.com/reminisce-app/journal-server/internal/api/validate"
	"github.com/reminisce-app/journal-server/internal/model"
	"github.com/reminisce-app/journal-server/internal/services"
)

// MemoryHandler is a thin HTTP transport over the memory repository.
type MemoryHandler struct {
	mems *services.MemoryService
}

func NewMemoryHandler(mems *services.MemoryService) *MemoryHandler {
	return &MemoryHandler{mems: mems}
}

// ListMemories GET /api/memories[?sort=date]
//
// The repository returns insertion order; sort=date gives the timeline view
// (date descending, the home screen ordering).
func (h *MemoryHandler) ListMemories(w http.ResponseWriter, r *http.Request) {
	lst, err := h.mems.List(r.Context())
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	if r.URL.Query().Get("sort") == "date" {
		sort.SliceStable(lst, func(i, j int) bool { return lst[i].Date > lst[j].Date })
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"memories": lst, "count": len(lst)})
}

// CreateMemory POST /api/memories
func (h *MemoryHandler) CreateMemory(w http.ResponseWriter, r *http.Request) {
	var req model.CreateMemoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := validate.NonEmpty("title", req.Title); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	if err := validate.Date(req.Date); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	if err := validate.NonEmpty("categoryId", req.CategoryID); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	m, err := h.mems.Create(r.Context(), req)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, m)
}

// GetMemory GET /api/memories/{memoryId}
func (h *MemoryHandler) GetMemory(w http.ResponseWriter, r *http.Request) {
	m, err := h.mems.GetByID(r.Context(), mux.Vars(r)["memoryId"])
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, m)
}

// UpdateMemory PATCH /api/memories/{memoryId}
func (h *MemoryHandler) UpdateMemory(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateMemoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if req.Date != nil {
		if err := validate.Date(*req.Date); err != nil {
			respond.WriteBadRequest(w, err.Error())
			return
		}
	}

	m, err := h.mems.Update(r.Context(), mux.Vars(r)["memoryId"], req)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, m)
}

// DeleteMemory DELETE /api/memories/{memoryId}
func (h *MemoryHandler) DeleteMemory(w http.ResponseWriter, r *http.Request) {
	if err := h.mems.Remove(r.Context(), mux.Vars(r)["memoryId"]); err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SearchMemories GET /api/search?q=…
//
// A blank query means "no search performed" and yields an empty result
// without touching the repository.
func (h *MemoryHandler) SearchMemories(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if strings.TrimSpace(query) == "" {
		respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"memories": []*model.Memory{}, "count": 0, "query": query})
		return
	}

	lst, err := h.mems.Search(r.Context(), query)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"memories": lst, "count": len(lst), "query": query})
}
