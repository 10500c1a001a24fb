package schema

import "encoding/json"

// Envelope status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope is the tagged wrapper shared by every endpoint response. Data is
// meaningful only when Status is StatusSuccess and Message only when it is
// StatusError.
type Envelope[T any] struct {
	Status  string
	Data    T
	Message string
}

// OK reports whether the envelope carries a payload.
func (e Envelope[T]) OK() bool {
	return e.Status == StatusSuccess
}

type rawEnvelope struct {
	Status  *string         `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message *string         `json:"message"`
}

// ParseEnvelope decodes a response wrapper whose success payload has shape T.
// Only {"status":"success","data":T} and {"status":"error","message":string}
// are accepted.
func ParseEnvelope[T any](data []byte, opts ...Option) (Envelope[T], error) {
	o := newOptions(opts)

	var raw rawEnvelope
	if isNull(data) {
		return Envelope[T]{}, newValidationError(Issue{Message: "envelope is required"})
	}
	if err := decode(data, &raw, "", o); err != nil {
		return Envelope[T]{}, err
	}
	if raw.Status == nil {
		return Envelope[T]{}, newValidationError(Issue{Path: "status", Message: "is required"})
	}

	switch *raw.Status {
	case StatusSuccess:
		payload, err := parse[T](raw.Data, "data", o)
		if err != nil {
			return Envelope[T]{}, err
		}
		return Envelope[T]{Status: StatusSuccess, Data: payload}, nil
	case StatusError:
		if raw.Message == nil {
			return Envelope[T]{}, newValidationError(Issue{Path: "message", Message: "is required"})
		}
		return Envelope[T]{Status: StatusError, Message: *raw.Message}, nil
	default:
		return Envelope[T]{}, newValidationError(Issue{
			Path:    "status",
			Message: "must be one of: " + StatusSuccess + " " + StatusError,
		})
	}
}
