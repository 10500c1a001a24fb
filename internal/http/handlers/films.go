package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/hongminglow/filmdesk/internal/http/respond"
	"github.com/hongminglow/filmdesk/internal/models"
	"github.com/hongminglow/filmdesk/internal/models/dto"
	"github.com/hongminglow/filmdesk/internal/storage"
)

const (
	minFilmYear = 1870
	maxFilmYear = 2100
)

// FilmHandler serves the film catalogue.
type FilmHandler struct {
	store       storage.FilmStore
	requireAuth func(http.Handler) http.Handler
	log         *zap.SugaredLogger
}

// NewFilmHandler constructs the handler. Mutating routes are wrapped with
// requireAuth.
func NewFilmHandler(store storage.FilmStore, requireAuth func(http.Handler) http.Handler, log *zap.SugaredLogger) *FilmHandler {
	return &FilmHandler{store: store, requireAuth: requireAuth, log: log}
}

// Register attaches film routes to the mux.
func (h *FilmHandler) Register(mux *http.ServeMux) {
	create := h.requireAuth(http.HandlerFunc(h.handleCreate))
	remove := h.requireAuth(http.HandlerFunc(h.handleDelete))

	mux.HandleFunc("/films", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			h.handleList(w, r)
		case http.MethodPost:
			create.ServeHTTP(w, r)
		default:
			methodNotAllowed(w)
		}
	})
	mux.HandleFunc("/films/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			methodNotAllowed(w)
			return
		}
		remove.ServeHTTP(w, r)
	})
}

func (h *FilmHandler) handleList(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	films, err := h.store.ListFilms(r.Context(), q)
	if err != nil {
		h.log.Errorw("list films failed", "q", q, "err", err)
		respond.Error(w, http.StatusInternalServerError, "failed to list films")
		return
	}
	respond.Success(w, http.StatusOK, nonNil(films))
}

func (h *FilmHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateFilmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		respond.Error(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.Year != 0 && (req.Year < minFilmYear || req.Year > maxFilmYear) {
		respond.Error(w, http.StatusBadRequest, "year is out of range")
		return
	}

	created, err := h.store.CreateFilm(r.Context(), models.Film{
		Title:    title,
		Director: strings.TrimSpace(req.Director),
		Year:     req.Year,
	})
	if err != nil {
		h.log.Errorw("create film failed", "title", title, "err", err)
		respond.Error(w, http.StatusInternalServerError, "failed to create film")
		return
	}
	respond.Success(w, http.StatusCreated, created)
}

func (h *FilmHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.store.DeleteFilm(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "not found")
			return
		}
		h.log.Errorw("delete film failed", "id", id, "err", err)
		respond.Error(w, http.StatusInternalServerError, "failed to delete film")
		return
	}

	films, err := h.store.ListFilms(r.Context(), "")
	if err != nil {
		h.log.Errorw("list films after delete failed", "id", id, "err", err)
		respond.Error(w, http.StatusInternalServerError, "failed to list films")
		return
	}
	respond.Success(w, http.StatusOK, nonNil(films))
}

func nonNil(films []models.Film) []models.Film {
	if films == nil {
		return []models.Film{}
	}
	return films
}
