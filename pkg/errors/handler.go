package errors

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// ErrorResponse represents the API error response format
type ErrorResponse struct {
	StatusCode   int    `json:"statusCode"`
	ErrorMessage string `json:"errorMessage"`
	RequestID    string `json:"requestId,omitempty"`
}

// ErrorHandler handles errors and sends appropriate HTTP responses
type ErrorHandler struct {
	logger        *zap.Logger
	defaultStatus int
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *zap.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger:        logger,
		defaultStatus: http.StatusInternalServerError,
	}
}

// Handle processes an error and sends an HTTP response
func (h *ErrorHandler) Handle(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	status := h.defaultStatus
	message := err.Error()

	if appErr := GetAppError(err); appErr != nil {
		status = appErr.HTTPStatus
		message = appErr.Message
	} else if parsed, rest, ok := ParseStatus(err.Error()); ok {
		status = parsed
		message = rest
	}
	if status == 0 {
		status = h.defaultStatus
	}

	requestID := middleware.GetReqID(r.Context())
	if requestID == "" {
		requestID = r.Header.Get("X-Request-ID")
	}
	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.String("request_id", requestID),
		zap.Error(err),
	}

	switch {
	case status >= 500:
		h.logger.Error(message, fields...)
	default:
		h.logger.Warn(message, fields...)
	}

	h.sendJSON(w, status, ErrorResponse{
		StatusCode:   status,
		ErrorMessage: message,
		RequestID:    requestID,
	})
}

// sendJSON sends a JSON response
func (h *ErrorHandler) sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode error response",
			zap.Error(err),
			zap.Any("data", data),
		)
	}
}

// Middleware returns an HTTP middleware that turns panics into 500 responses
func (h *ErrorHandler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				h.logger.Error("Recovered from panic", zap.Any("panic", rec))
				h.Handle(w, r, NewInternalError("Internal server error"))
			}
		}()

		next.ServeHTTP(w, r)
	})
}
