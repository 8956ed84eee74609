package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/atvirokodosprendimai/pantrypal/internal/application"
	"github.com/atvirokodosprendimai/pantrypal/internal/domain"
	"github.com/atvirokodosprendimai/pantrypal/internal/logging"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Handler struct {
	service *application.PantryService
	logger  *slog.Logger
}

func NewRouter(service *application.PantryService, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{service: service, logger: logger}
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(logging.Middleware(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", h.handleHealth)

	r.Route("/api", func(api chi.Router) {
		h.mountReference(api, "/categories", referenceOps{
			list:   func(ctx context.Context) (any, error) { return h.service.ListCategories(ctx) },
			add:    func(ctx context.Context, name string) (any, error) { return h.service.AddCategory(ctx, name) },
			rename: h.service.RenameCategory,
			remove: h.service.DeleteCategory,
		})
		h.mountReference(api, "/brands", referenceOps{
			list:   func(ctx context.Context) (any, error) { return h.service.ListBrands(ctx) },
			add:    func(ctx context.Context, name string) (any, error) { return h.service.AddBrand(ctx, name) },
			rename: h.service.RenameBrand,
			remove: h.service.DeleteBrand,
		})
		h.mountReference(api, "/locations", referenceOps{
			list:   func(ctx context.Context) (any, error) { return h.service.ListLocations(ctx) },
			add:    func(ctx context.Context, name string) (any, error) { return h.service.AddLocation(ctx, name) },
			rename: h.service.RenameLocation,
			remove: h.service.DeleteLocation,
		})
		api.Get("/allergens", h.handleListAllergens)

		api.Get("/items", h.handleListItems)
		api.Post("/items", h.handleAddItem)
		api.Get("/items/{id}", h.handleGetItem)
		api.Put("/items/{id}", h.handleUpdateItem)
		api.Delete("/items/{id}", h.handleDeleteItem)
		api.Get("/items/{id}/allergens", h.handleListItemAllergens)
		api.Put("/items/{id}/allergens", h.handleSetItemAllergens)

		api.Get("/views/expiring", h.handleExpiring)
		api.Get("/views/expired", h.handleExpired)
		api.Get("/views/low", h.handleRunningLow)
		api.Get("/stats", h.handleStats)

		api.Get("/shopping", h.handleListShopping)
		api.Post("/shopping", h.handleAddShopping)
		api.Post("/shopping/restock", h.handleRestock)
		api.Put("/shopping/{id}", h.handleUpdateShopping)
		api.Delete("/shopping/{id}", h.handleDeleteShopping)
	})

	return r
}

type healthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Seeds     domain.SeedCounts `json:"seeds"`
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.SeedCounts(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Seeds:     counts,
	})
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInitialization):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, map[string]any{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.Invalid("body", "invalid payload")
	}
	return nil
}

func pathID(r *http.Request) (uint, error) {
	return parseRequiredUint(chi.URLParam(r, "id"), "id")
}

func parseRequiredUint(raw string, field string) (uint, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, domain.Invalid(field, "is required")
	}
	parsed, err := strconv.ParseUint(trimmed, 10, 64)
	if err != nil || parsed == 0 {
		return 0, domain.Invalid(field, "must be a positive integer")
	}
	return uint(parsed), nil
}

func parseOptionalUint(raw string, field string) (*uint, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	v, err := parseRequiredUint(raw, field)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// parseOptionalInt returns -1 when raw is empty so the service applies its
// configured default.
func parseOptionalInt(raw string, field string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return -1, nil
	}
	v, err := strconv.Atoi(trimmed)
	if err != nil || v < 0 {
		return 0, domain.Invalid(field, fmt.Sprintf("must be a non-negative integer, got %q", raw))
	}
	return v, nil
}
