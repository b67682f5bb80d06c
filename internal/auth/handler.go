package auth

import (
	"context"
	"net/http"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/transport"
)

type ServiceAPI interface {
	Login(ctx context.Context, dto LoginDTO) (*LoginResponse, error)
	Authenticate(ctx context.Context, token string) (*internal.User, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     svc,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if appErr := h.DecodeJSON(r, &dto); appErr != nil {
		h.WriteError(w, appErr)
		return
	}

	resp, err := h.Service.Login(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

// Me returns the authenticated employee.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, appErr := h.CurrentUser(r)
	if appErr != nil {
		h.WriteError(w, appErr)
		return
	}
	h.WriteJSON(w, http.StatusOK, user)
}

func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := transport.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteError(w, internal.ErrMissingToken)
			return
		}

		user, err := h.Service.Authenticate(r.Context(), token)
		if err != nil {
			h.HandleServiceError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(internal.ContextWithUser(r.Context(), user)))
	})
}
