package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/hongminglow/filmdesk/internal/auth"
	"github.com/hongminglow/filmdesk/internal/config"
	"github.com/hongminglow/filmdesk/internal/http/respond"
	"github.com/hongminglow/filmdesk/internal/middleware"
	"github.com/hongminglow/filmdesk/internal/models"
	"github.com/hongminglow/filmdesk/internal/models/dto"
	"github.com/hongminglow/filmdesk/internal/storage"
)

// AuthHandler owns register/login/logout/session endpoints.
type AuthHandler struct {
	store       storage.UserStore
	tokens      *auth.TokenManager
	cookieName  string
	requireAuth func(http.Handler) http.Handler
	log         *zap.SugaredLogger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(store storage.UserStore, tokens *auth.TokenManager, cfg *config.Config, log *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{
		store:       store,
		tokens:      tokens,
		cookieName:  cfg.SessionCookie,
		requireAuth: middleware.RequireAuth(tokens, cfg.SessionCookie),
		log:         log,
	}
}

// Register attaches auth routes to the mux.
func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/register", h.handleRegister)
	mux.HandleFunc("/login", h.handleLogin)
	mux.HandleFunc("/logout", h.handleLogout)
	mux.Handle("/session", h.requireAuth(http.HandlerFunc(h.handleSession)))
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if err := validateRegistration(req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	user := models.User{
		Username: strings.TrimSpace(req.Username),
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
	}
	if err := user.SetPassword(req.Password); err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to hash password")
		return
	}
	created, err := h.store.CreateUser(r.Context(), user)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrAlreadyExists):
			respond.Error(w, http.StatusConflict, "user already exists")
		default:
			h.log.Errorw("create user failed", "username", user.Username, "err", err)
			respond.Error(w, http.StatusInternalServerError, "failed to create user")
		}
		return
	}

	respond.Success(w, http.StatusCreated, dto.NewSimpleUser(created))
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	username := strings.TrimSpace(req.Username)
	if username == "" || strings.TrimSpace(req.Password) == "" {
		respond.Error(w, http.StatusBadRequest, "username and password are required")
		return
	}
	user, err := h.store.FindByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.log.Errorw("login failed: fetch user", "username", username, "err", err)
		respond.Error(w, http.StatusInternalServerError, "failed to fetch user")
		return
	}
	if err := user.CheckPassword(req.Password); err != nil {
		if !errors.Is(err, models.ErrPasswordMismatch) {
			h.log.Warnw("login failed: unreadable password hash", "username", username, "err", err)
		}
		respond.Error(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	token, err := h.tokens.Generate(user)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.tokens.TTL()),
		MaxAge:   int(h.tokens.TTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	respond.Success(w, http.StatusOK, dto.NewSimpleUser(user))
}

func (h *AuthHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	respond.Success(w, http.StatusOK, nil)
}

func (h *AuthHandler) handleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, err := claims.UserID()
	if err != nil {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	user, err := h.store.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		h.log.Errorw("session lookup failed", "user_id", id, "err", err)
		respond.Error(w, http.StatusInternalServerError, "failed to fetch user")
		return
	}
	respond.Success(w, http.StatusOK, dto.NewSessionUser(user))
}

func validateRegistration(req dto.RegisterRequest) error {
	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Email) == "" {
		return errors.New("username and email are required")
	}
	if !strings.Contains(req.Email, "@") {
		return errors.New("email is invalid")
	}
	if len(strings.TrimSpace(req.Password)) < 8 || !utf8.ValidString(req.Password) {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

func methodNotAllowed(w http.ResponseWriter) {
	respond.Error(w, http.StatusMethodNotAllowed, "method not allowed")
}
