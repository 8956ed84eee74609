package http

import (
	"net/http"

	"github.com/atvirokodosprendimai/pantrypal/internal/domain"
)

func (h *Handler) handleListShopping(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.ListShopping(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleAddShopping(w http.ResponseWriter, r *http.Request) {
	var req domain.ShoppingListEntry
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	entry, err := h.service.AddShopping(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (h *Handler) handleUpdateShopping(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	var req domain.ShoppingListEntry
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	req.ID = id
	entry, err := h.service.UpdateShopping(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *Handler) handleDeleteShopping(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.service.DeleteShopping(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleRestock(w http.ResponseWriter, r *http.Request) {
	threshold, err := parseOptionalInt(r.URL.Query().Get("threshold"), "threshold")
	if err != nil {
		h.writeError(w, err)
		return
	}
	added, err := h.service.RestockRunningLow(r.Context(), threshold)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, added)
}
