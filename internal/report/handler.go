package report

import (
	"log/slog"
	"net/http"
	"time"

	"library-service/internal/httputil"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service Service
	logger  *slog.Logger
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/reports/daily", h.DailyReport)
	router.Get("/reports/fines", h.FineReport)
	router.Get("/stats", h.Stats)
}

func (h *Handler) DailyReport(w http.ResponseWriter, r *http.Request) {
	day, ok := parseDateParam(r.URL.Query().Get("date"))
	if !ok {
		httputil.RespondWithError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	report, err := h.service.DailyReport(r.Context(), day)
	if err != nil {
		h.logger.Error("daily report failed", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	httputil.RespondWithData(w, http.StatusOK, report)
}

func (h *Handler) FineReport(w http.ResponseWriter, r *http.Request) {
	from, ok := parseDateParam(r.URL.Query().Get("from"))
	if !ok {
		httputil.RespondWithError(w, http.StatusBadRequest, "from must be YYYY-MM-DD")
		return
	}
	to, ok := parseDateParam(r.URL.Query().Get("to"))
	if !ok {
		httputil.RespondWithError(w, http.StatusBadRequest, "to must be YYYY-MM-DD")
		return
	}

	report, err := h.service.FineReport(r.Context(), from, to)
	if err != nil {
		h.logger.Error("fine report failed", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	httputil.RespondWithData(w, http.StatusOK, report)
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		h.logger.Error("stats failed", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	httputil.RespondWithData(w, http.StatusOK, stats)
}

func parseDateParam(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, true
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
