package reservation

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

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
	router.Post("/reservations", h.CreateReservation)
	router.Get("/reservations", h.GetAllReservations)
	router.Post("/reservations/{id}/approve", h.ApproveReservation)
	router.Post("/reservations/{id}/reject", h.RejectReservation)
}

func (h *Handler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var res Reservation
	if err := json.NewDecoder(r.Body).Decode(&res); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&res); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "book_id and student_id are required")
		return
	}

	h.logger.InfoContext(r.Context(), "creating reservation", "book_id", res.BookID, "student_id", res.MemberID)
	created, err := h.service.CreateReservation(r.Context(), &res)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	httputil.RespondWithData(w, http.StatusCreated, created)
}

func (h *Handler) GetAllReservations(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.service.GetAllReservations(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	if reservations == nil {
		reservations = []Reservation{}
	}
	httputil.RespondWithData(w, http.StatusOK, reservations)
}

func (h *Handler) ApproveReservation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid reservation ID")
		return
	}

	h.logger.InfoContext(r.Context(), "approving reservation", "id", id)
	if err := h.service.ApproveReservation(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}
	httputil.RespondWithMessage(w, http.StatusOK, "Reservation approved")
}

func (h *Handler) RejectReservation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid reservation ID")
		return
	}

	var body struct {
		Reason string `json:"reason"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&body)
	}

	h.logger.InfoContext(r.Context(), "rejecting reservation", "id", id)
	if err := h.service.RejectReservation(r.Context(), id, body.Reason); err != nil {
		h.handleServiceError(w, err)
		return
	}
	httputil.RespondWithMessage(w, http.StatusOK, "Reservation rejected")
}

func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrReservationNotFound):
		httputil.RespondWithError(w, http.StatusNotFound, "Reservation not found")
	case errors.Is(err, ErrAlreadyProcessed):
		httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidInput):
		httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("reservation handler error", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}
