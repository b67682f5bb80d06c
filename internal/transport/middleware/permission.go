package middleware

import (
	"net/http"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/pkg/logger"
	"github.com/goccy/go-json"
)

// RequireRoles lets the request through only when the authenticated employee
// holds one of the given roles.
func RequireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := internal.UserFromContext(r.Context())
			if !ok {
				writeAppError(w, internal.ErrMissingToken)
				return
			}

			if !user.HasRole(roles...) {
				logger.From(r.Context()).Warn("access denied: role not allowed",
					"employee_id", user.ID,
					"role", user.Role,
					"required_roles", roles)
				writeAppError(w, internal.ErrInsufficientRole)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdminOrHR is the capability check used by management endpoints.
func RequireAdminOrHR() func(http.Handler) http.Handler {
	return RequireRoles(internal.RoleAdmin, internal.RoleHR)
}

func writeAppError(w http.ResponseWriter, appErr *internal.AppError) {
	status, body := appErr.ToHTTPResponse()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
