package member

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
	router.Post("/students", h.CreateMember)
	router.Get("/students", h.GetAllMembers)
	router.Get("/students/{id}", h.GetMember)
	router.Put("/students/{id}", h.UpdateMember)
	router.Delete("/students/{id}", h.DeleteMember)
}

func (h *Handler) CreateMember(w http.ResponseWriter, r *http.Request) {
	var m Member
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&m); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "Name and roll number are required")
		return
	}

	h.logger.InfoContext(r.Context(), "creating student", "roll_number", m.RollNumber)
	created, err := h.service.CreateMember(r.Context(), &m)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	httputil.RespondWithData(w, http.StatusCreated, created)
}

func (h *Handler) GetAllMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.service.GetAllMembers(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	if members == nil {
		members = []Member{}
	}
	httputil.RespondWithData(w, http.StatusOK, members)
}

func (h *Handler) GetMember(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid student ID")
		return
	}

	m, err := h.service.GetMemberByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	httputil.RespondWithData(w, http.StatusOK, m)
}

func (h *Handler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid student ID")
		return
	}

	var m Member
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&m); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "Name and roll number are required")
		return
	}
	m.ID = id

	h.logger.InfoContext(r.Context(), "updating student", "id", id)
	if err := h.service.UpdateMember(r.Context(), &m); err != nil {
		h.handleServiceError(w, err)
		return
	}
	httputil.RespondWithData(w, http.StatusOK, m)
}

func (h *Handler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid student ID")
		return
	}

	h.logger.InfoContext(r.Context(), "deleting student", "id", id)
	if err := h.service.DeleteMember(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}
	httputil.RespondWithMessage(w, http.StatusOK, "Student deleted successfully")
}

func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrMemberNotFound):
		httputil.RespondWithError(w, http.StatusNotFound, "Student not found")
	case errors.Is(err, ErrInvalidInput):
		httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrRollNumberExists):
		httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrHasIssuedBooks):
		httputil.RespondWithError(w, http.StatusBadRequest, "Cannot delete student. They have issued books that need to be returned first.")
	default:
		h.logger.Error("student handler error", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}
