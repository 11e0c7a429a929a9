package book

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
	router.Post("/books", h.CreateBook)
	router.Post("/books/import", h.ImportBooks)
	router.Get("/books", h.GetAllBooks)
	router.Get("/books/{id}", h.GetBook)
	router.Put("/books/{id}", h.UpdateBook)
	router.Delete("/books/{id}", h.ArchiveBook)
}

func (h *Handler) CreateBook(w http.ResponseWriter, r *http.Request) {
	var book Book
	if err := json.NewDecoder(r.Body).Decode(&book); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&book); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "ISBN and title are required")
		return
	}

	h.logger.InfoContext(r.Context(), "creating book", "isbn", book.ISBN)
	created, err := h.service.CreateBook(r.Context(), &book)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	httputil.RespondWithData(w, http.StatusCreated, created)
}

func (h *Handler) ImportBooks(w http.ResponseWriter, r *http.Request) {
	var books []Book
	if err := json.NewDecoder(r.Body).Decode(&books); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(books) == 0 {
		httputil.RespondWithError(w, http.StatusBadRequest, "no books to import")
		return
	}

	h.logger.InfoContext(r.Context(), "importing books", "count", len(books))
	results := h.service.ImportBooks(r.Context(), books)
	httputil.RespondWithData(w, http.StatusOK, results)
}

func (h *Handler) GetAllBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.GetAllBooks(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	if books == nil {
		books = []Book{}
	}
	httputil.RespondWithData(w, http.StatusOK, books)
}

func (h *Handler) GetBook(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid book ID")
		return
	}

	book, err := h.service.GetBookByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	httputil.RespondWithData(w, http.StatusOK, book)
}

func (h *Handler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid book ID")
		return
	}

	var book Book
	if err := json.NewDecoder(r.Body).Decode(&book); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&book); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "ISBN and title are required")
		return
	}
	book.ID = id

	h.logger.InfoContext(r.Context(), "updating book", "id", id)
	if err := h.service.UpdateBook(r.Context(), &book); err != nil {
		h.handleServiceError(w, err)
		return
	}
	httputil.RespondWithData(w, http.StatusOK, book)
}

func (h *Handler) ArchiveBook(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid book ID")
		return
	}

	h.logger.InfoContext(r.Context(), "archiving book", "id", id)
	if err := h.service.ArchiveBook(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}
	httputil.RespondWithMessage(w, http.StatusOK, "Book archived successfully")
}

func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrBookNotFound):
		httputil.RespondWithError(w, http.StatusNotFound, "Book not found")
	case errors.Is(err, ErrInvalidInput):
		httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrISBNExists):
		httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrBookIssued):
		httputil.RespondWithError(w, http.StatusBadRequest, "Cannot delete book. It is currently issued to students.")
	default:
		h.logger.Error("book handler error", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}
