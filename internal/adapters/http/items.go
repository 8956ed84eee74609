package http

import (
	"net/http"

	"github.com/atvirokodosprendimai/pantrypal/internal/application"
	"github.com/atvirokodosprendimai/pantrypal/internal/domain"
	"github.com/atvirokodosprendimai/pantrypal/internal/inventory"
)

// handleListItems serves the annotated pantry list. Query parameters:
// q (name search), category_id, location_id and filter (see
// inventory.ParseSelection).
func (h *Handler) handleListItems(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	categoryID, err := parseOptionalUint(query.Get("category_id"), "category_id")
	if err != nil {
		h.writeError(w, err)
		return
	}
	locationID, err := parseOptionalUint(query.Get("location_id"), "location_id")
	if err != nil {
		h.writeError(w, err)
		return
	}
	sel, err := inventory.ParseSelection(query.Get("filter"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	views, err := h.service.Browse(r.Context(), application.BrowseQuery{
		Search:     query.Get("q"),
		CategoryID: categoryID,
		LocationID: locationID,
		Selection:  sel,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var req domain.PantryItem
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	item, err := h.service.AddItem(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) handleGetItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	item, err := h.service.GetItem(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	var req domain.PantryItem
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	req.ID = id
	item, err := h.service.UpdateItem(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.service.DeleteItem(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type allergenSetRequest struct {
	AllergenIDs []uint `json:"allergen_ids"`
}

func (h *Handler) handleSetItemAllergens(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	var req allergenSetRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.service.SetItemAllergens(r.Context(), id, req.AllergenIDs); err != nil {
		h.writeError(w, err)
		return
	}
	h.handleListItemAllergens(w, r)
}

func (h *Handler) handleListItemAllergens(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	out, err := h.service.ListItemAllergens(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleExpiring(w http.ResponseWriter, r *http.Request) {
	days, err := parseOptionalInt(r.URL.Query().Get("days"), "days")
	if err != nil {
		h.writeError(w, err)
		return
	}
	views, err := h.service.ExpiringSoon(r.Context(), days)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) handleExpired(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.Expired(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) handleRunningLow(w http.ResponseWriter, r *http.Request) {
	threshold, err := parseOptionalInt(r.URL.Query().Get("threshold"), "threshold")
	if err != nil {
		h.writeError(w, err)
		return
	}
	views, err := h.service.RunningLow(r.Context(), threshold)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	tally, err := h.service.Stats(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tally)
}
