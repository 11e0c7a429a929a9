package circulation

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"library-service/internal/book"
	"library-service/internal/httputil"
	"library-service/internal/member"

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
	router.Post("/issue", h.IssueBook)
	router.Put("/return/{id}", h.ReturnBook)
	router.Get("/issues", h.GetAllIssues)
}

type issueRequest struct {
	BookID    int    `json:"book_id" validate:"required"`
	MemberID  int    `json:"student_id" validate:"required"`
	IssueDate string `json:"issue_date"`
}

type returnRequest struct {
	ReturnDate string `json:"return_date"`
}

func (h *Handler) IssueBook(w http.ResponseWriter, r *http.Request) {
	var req issueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "book_id and student_id are required")
		return
	}

	issueDate, ok := parseDate(req.IssueDate)
	if !ok {
		httputil.RespondWithError(w, http.StatusBadRequest, "issue_date must be YYYY-MM-DD")
		return
	}

	h.logger.InfoContext(r.Context(), "issuing book", "book_id", req.BookID, "student_id", req.MemberID)
	issue, err := h.service.IssueBook(r.Context(), IssueRequest{
		BookID:    req.BookID,
		MemberID:  req.MemberID,
		IssueDate: issueDate,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	httputil.RespondWithData(w, http.StatusCreated, issue)
}

func (h *Handler) ReturnBook(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid issue ID")
		return
	}

	var req returnRequest
	if r.Body != nil {
		// Body is optional; an empty return date means today.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	returnDate, ok := parseDate(req.ReturnDate)
	if !ok {
		httputil.RespondWithError(w, http.StatusBadRequest, "return_date must be YYYY-MM-DD")
		return
	}

	h.logger.InfoContext(r.Context(), "returning book", "issue_id", id)
	issue, err := h.service.ReturnBook(r.Context(), id, returnDate)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	httputil.RespondWithData(w, http.StatusOK, issue)
}

func (h *Handler) GetAllIssues(w http.ResponseWriter, r *http.Request) {
	issues, err := h.service.GetAllIssues(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	if issues == nil {
		issues = []IssueDetail{}
	}
	httputil.RespondWithData(w, http.StatusOK, issues)
}

func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, book.ErrBookNotFound):
		httputil.RespondWithError(w, http.StatusNotFound, "Book not found")
	case errors.Is(err, member.ErrMemberNotFound):
		httputil.RespondWithError(w, http.StatusNotFound, "Student not found")
	case errors.Is(err, ErrIssueNotFound):
		httputil.RespondWithError(w, http.StatusNotFound, "Issue record not found")
	case errors.Is(err, book.ErrNoCopies):
		httputil.RespondWithError(w, http.StatusBadRequest, "Book not available")
	case errors.Is(err, ErrBorrowLimitReached):
		httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrAlreadyReturned):
		httputil.RespondWithError(w, http.StatusBadRequest, "Book already returned")
	case errors.Is(err, ErrInvalidInput):
		httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("circulation handler error", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}

// parseDate accepts YYYY-MM-DD or empty (zero time, meaning today).
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, true
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
