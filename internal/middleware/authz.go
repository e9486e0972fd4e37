package middleware

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/gustavogabrilearenas-gga/siprosapp/internal/apperrors"
	"github.com/gustavogabrilearenas-gga/siprosapp/internal/utils"
)

// Permisos que gobiernan las operaciones de trazabilidad
const (
	PermViewAuditLog        = "view_audit_log"
	PermCreateSignature     = "create_signature"
	PermInvalidateSignature = "invalidate_signature"
	PermVerifySignature     = "verify_signature"
)

// rolePermissions mapa rol -> permisos. La decisión de autorización se
// consume como un booleano opaco: cómo se otorga un permiso es asunto de
// esta tabla, no de los handlers.
var rolePermissions = map[string]map[string]bool{
	"admin": {
		PermViewAuditLog:        true,
		PermCreateSignature:     true,
		PermInvalidateSignature: true,
		PermVerifySignature:     true,
	},
	"supervisor": {
		PermViewAuditLog:        true,
		PermCreateSignature:     true,
		PermInvalidateSignature: true,
		PermVerifySignature:     true,
	},
	"operario": {
		PermCreateSignature: true,
		PermVerifySignature: true,
	},
	"auditor": {
		PermViewAuditLog:    true,
		PermVerifySignature: true,
	},
}

// HasPermission indica si el rol tiene el permiso
func HasPermission(role, permission string) bool {
	perms, ok := rolePermissions[role]
	if !ok {
		return false
	}
	return perms[permission]
}

// RequirePermission corta el request si el actor autenticado no tiene el
// permiso. Debe encadenarse después de AuthMiddleware.
func RequirePermission(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				utils.RespondError(w, apperrors.NewAuthenticationError("se requiere autenticación"))
				return
			}

			if !HasPermission(claims.Role, permission) {
				log.Warn().
					Int("user_id", claims.UserID).
					Str("role", claims.Role).
					Str("permission", permission).
					Str("path", r.URL.Path).
					Msg("Acceso denegado por falta de permiso")
				utils.RespondError(w, &apperrors.NotAuthorizedError{Message: "no tiene permiso para esta operación"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
