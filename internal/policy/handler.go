package policy

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"library-service/internal/httputil"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	service  Service
	validate *validator.Validate
	logger   *slog.Logger
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/policy", h.SetPolicy)
	router.Get("/policy", h.GetPolicy)
}

func (h *Handler) SetPolicy(w http.ResponseWriter, r *http.Request) {
	var p Policy
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&p); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "policy values must not be negative")
		return
	}

	h.logger.InfoContext(r.Context(), "updating library policy")
	updated, err := h.service.SetPolicy(r.Context(), &p)
	if err != nil {
		h.logger.Error("policy update failed", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	httputil.RespondWithData(w, http.StatusOK, updated)
}

func (h *Handler) GetPolicy(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetPolicy(r.Context())
	if err != nil {
		h.logger.Error("policy fetch failed", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	httputil.RespondWithData(w, http.StatusOK, p)
}
