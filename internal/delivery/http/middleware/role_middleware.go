package middleware

import (
	"net/http"

	"medisync/internal/domain/entity"
	"medisync/pkg/response"
)

// RequireRole creates a middleware that checks if the session's role is one
// of the allowed roles. Role comes from the resolved session, never from the
// request.
func RequireRole(allowedRoles ...entity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := GetSessionFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Session information not found")
				return
			}

			allowed := false
			for _, role := range allowedRoles {
				if sess.Role == role {
					allowed = true
					break
				}
			}

			if !allowed {
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin is a convenience middleware for admin-only endpoints
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdmin)(next)
}

// RequireFrontOffice is a convenience middleware for front-office endpoints
func RequireFrontOffice(next http.Handler) http.Handler {
	return RequireRole(entity.RoleFrontOffice)(next)
}

// RequireDoctor is a convenience middleware for doctor-only endpoints
func RequireDoctor(next http.Handler) http.Handler {
	return RequireRole(entity.RoleDoctor)(next)
}

// RequireNurse is a convenience middleware for nurse-only endpoints
func RequireNurse(next http.Handler) http.Handler {
	return RequireRole(entity.RoleNurse)(next)
}

// RequirePharmacist is a convenience middleware for pharmacy endpoints
func RequirePharmacist(next http.Handler) http.Handler {
	return RequireRole(entity.RolePharmacist)(next)
}

// RequirePatient is a convenience middleware for patient-only endpoints
func RequirePatient(next http.Handler) http.Handler {
	return RequireRole(entity.RolePatient)(next)
}
