package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/hongminglow/filmdesk/internal/http/respond"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

const pingTimeout = 2 * time.Second

// HealthHandler reports uptime and database reachability.
type HealthHandler struct {
	startedAt time.Time
	db        Pinger
	log       *zap.SugaredLogger
}

func NewHealthHandler(startedAt time.Time, db Pinger, log *zap.SugaredLogger) *HealthHandler {
	return &HealthHandler{startedAt: startedAt, db: db, log: log}
}

// Register wires the handler into a ServeMux.
func (h *HealthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.handle)
}

func (h *HealthHandler) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()
	if err := h.db.Ping(ctx); err != nil {
		h.log.Warnw("health check: database unreachable", "error", err)
		respond.Error(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}

	respond.Success(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"database": "up",
		"uptime":   time.Since(h.startedAt).Truncate(time.Second).String(),
	})
}
