package respond

import (
	"encoding/json"
	"net/http"
	"sync/atomic"

	"go.uber.org/zap"
)

var logger atomic.Pointer[zap.SugaredLogger]

func init() {
	logger.Store(zap.NewNop().Sugar())
}

// SetLogger sets the logger used to report responses that could not be encoded.
func SetLogger(log *zap.SugaredLogger) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	logger.Store(log)
}

// Envelope status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope is the standard API response wrapper used across handlers. Data is
// set on success and Message on error, never both.
type Envelope struct {
	Status  string  `json:"status"`
	Data    any     `json:"data,omitempty"`
	Message *string `json:"message,omitempty"`
}

// Success writes data wrapped in a success envelope.
func Success(w http.ResponseWriter, status int, data any) {
	if data == nil {
		data = struct{}{}
	}
	write(w, status, Envelope{Status: StatusSuccess, Data: data})
}

// Error writes an error envelope carrying message.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, Envelope{Status: StatusError, Message: &message})
}

func write(w http.ResponseWriter, status int, payload Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Load().Errorw("encode response payload failed", "status", status, "err", err)
	}
}
