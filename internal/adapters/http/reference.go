package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

type referenceOps struct {
	list   func(ctx context.Context) (any, error)
	add    func(ctx context.Context, name string) (any, error)
	rename func(ctx context.Context, id uint, name string) error
	remove func(ctx context.Context, id uint) error
}

type nameRequest struct {
	Name string `json:"name"`
}

// mountReference registers list, add, rename and delete for one reference
// table under prefix.
func (h *Handler) mountReference(api chi.Router, prefix string, ops referenceOps) {
	api.Get(prefix, func(w http.ResponseWriter, r *http.Request) {
		out, err := ops.list(r.Context())
		if err != nil {
			h.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	})
	api.Post(prefix, func(w http.ResponseWriter, r *http.Request) {
		var req nameRequest
		if err := decodeJSON(r, &req); err != nil {
			h.writeError(w, err)
			return
		}
		out, err := ops.add(r.Context(), req.Name)
		if err != nil {
			h.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, out)
	})
	api.Put(prefix+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			h.writeError(w, err)
			return
		}
		var req nameRequest
		if err := decodeJSON(r, &req); err != nil {
			h.writeError(w, err)
			return
		}
		if err := ops.rename(r.Context(), id, req.Name); err != nil {
			h.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"id": id, "name": strings.TrimSpace(req.Name)})
	})
	api.Delete(prefix+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			h.writeError(w, err)
			return
		}
		if err := ops.remove(r.Context(), id); err != nil {
			h.writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func (h *Handler) handleListAllergens(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.ListAllergens(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
