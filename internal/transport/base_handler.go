package transport

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/goccy/go-json"
)

const maxBodyBytes = 1 << 20

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
	}
	return &BaseHandler{Logger: lg}
}

// MessageResponse is the envelope used by mutating endpoints.
type MessageResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// WriteJSON writes a JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteMessage writes {"message": ..., "data": ...}.
func (h *BaseHandler) WriteMessage(w http.ResponseWriter, status int, message string, data interface{}) {
	h.WriteJSON(w, status, MessageResponse{Message: message, Data: data})
}

// WriteError renders an AppError envelope with the given status.
func (h *BaseHandler) WriteError(w http.ResponseWriter, appErr *internal.AppError) {
	status, body := appErr.ToHTTPResponse()
	h.WriteJSON(w, status, body)
}

// HandleServiceError maps service errors onto HTTP responses. Anything that is
// not an AppError is logged and reported as a generic 500.
func (h *BaseHandler) HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if appErr, ok := internal.IsAppError(err); ok && appErr.Type != internal.ErrorTypeInternal {
		logger.From(r.Context()).Warn("request failed",
			"path", r.URL.Path,
			"status", appErr.StatusCode,
			"code", appErr.Code,
			"error", appErr.GetDetailedMessage())
		h.WriteError(w, appErr)
		return
	}

	logger.From(r.Context()).Error("internal error",
		"path", r.URL.Path,
		"method", r.Method,
		"error", err)
	h.WriteError(w, internal.NewInternalError("Internal server error", nil))
}

// DecodeJSON reads a bounded JSON body into dst.
func (h *BaseHandler) DecodeJSON(r *http.Request, dst interface{}) *internal.AppError {
	if r.Body == nil {
		return internal.NewValidationError("request body is required", internal.ErrCodeInvalidRequest)
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return internal.NewValidationError("request body is required", internal.ErrCodeInvalidRequest)
		}
		return internal.NewValidationError("invalid request body", internal.ErrCodeInvalidRequest)
	}
	return nil
}

// PathID parses a positive integer URL parameter.
func (h *BaseHandler) PathID(r *http.Request, name string) (int64, *internal.AppError) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, internal.NewValidationFieldError(name, "invalid "+name, internal.ErrCodeInvalidRequest)
	}
	return id, nil
}

// CurrentUser returns the authenticated principal or a 401 error.
func (h *BaseHandler) CurrentUser(r *http.Request) (*internal.User, *internal.AppError) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok {
		return nil, internal.ErrMissingToken
	}
	return user, nil
}

// ExtractTokenFromHeader extracts Bearer token from Authorization header
func ExtractTokenFromHeader(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ""
	}
	return authHeader[7:]
}
