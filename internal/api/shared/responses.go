package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

// Envelope is the standard success response shape.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorBody carries the machine-readable code and human-readable message of
// a failed request.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorEnvelope is the standard error response shape.
type ErrorEnvelope struct {
	Success bool        `json:"success"`
	Error   ErrorBody   `json:"error"`
	Details interface{} `json:"details,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
}

// ResponseOption defines a function to customize error response behavior.
type ResponseOption func(*responseOptions)

type responseOptions struct {
	elevateLogLevel bool
	details         interface{}
}

// WithElevatedLogLevel raises 4xx errors to WARN level instead of the
// default DEBUG level. Use for important operational issues like repeated
// auth failures.
func WithElevatedLogLevel() ResponseOption {
	return func(opts *responseOptions) {
		opts.elevateLogLevel = true
	}
}

// WithDetails attaches structured details (e.g. per-field validation
// messages) to the error envelope.
func WithDetails(details interface{}) ResponseOption {
	return func(opts *responseOptions) {
		opts.details = details
	}
}

// RespondWithJSON writes a JSON response with the given status code and body.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithData writes a success envelope with the given status, message
// and payload.
func RespondWithData(w http.ResponseWriter, r *http.Request, status int, message string, data interface{}) {
	RespondWithJSON(w, r, status, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// RespondWithError writes an error envelope with the given status, error
// code and message. The trace ID from the request context is included for
// correlation.
func RespondWithError(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	code, message string,
	opts ...ResponseOption,
) {
	RespondWithErrorAndLog(w, r, status, code, message, nil, opts...)
}

// RespondWithErrorAndLog writes an error envelope and logs the detailed
// error. The raw error never reaches the client; only the sanitized message
// does.
//
// Log level strategy:
// - 5xx errors: always logged at ERROR level
// - 4xx errors: by default logged at DEBUG level
// - elevated 4xx errors (WithElevatedLogLevel): WARN level
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	code, userMessage string,
	err error,
	opts ...ResponseOption,
) {
	traceID := GetTraceID(r.Context())

	responseOpts := responseOptions{}
	for _, opt := range opts {
		opt(&responseOpts)
	}

	logAttrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("error_code", code),
		slog.String("user_message", userMessage),
	}
	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", err.Error()),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	logLevel := slog.LevelDebug
	switch {
	case status >= http.StatusInternalServerError:
		logLevel = slog.LevelError
	case responseOpts.elevateLogLevel && status >= http.StatusBadRequest:
		logLevel = slog.LevelWarn
	}

	slog.LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	RespondWithJSON(w, r, status, ErrorEnvelope{
		Success: false,
		Error: ErrorBody{
			Code:    code,
			Message: userMessage,
		},
		Details: responseOpts.details,
		TraceID: traceID,
	})
}
