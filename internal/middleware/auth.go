package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/gustavogabrilearenas-gga/siprosapp/internal/auth"
	"github.com/gustavogabrilearenas-gga/siprosapp/internal/utils"
)

type contextKey string

// UserContextKey clave de contexto donde viajan los claims del actor
const UserContextKey contextKey = "user"

// AuthMiddleware valida el token Bearer y deja los claims en el contexto
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			utils.RespondJSON(w, http.StatusUnauthorized, utils.ErrorResponse{Error: "falta el header Authorization"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			utils.RespondJSON(w, http.StatusUnauthorized, utils.ErrorResponse{Error: "formato de Authorization inválido, se espera 'Bearer <token>'"})
			return
		}

		claims, err := auth.ValidateToken(parts[1])
		if err != nil {
			log.Warn().Err(err).Str("path", r.URL.Path).Msg("Token rechazado")
			utils.RespondJSON(w, http.StatusUnauthorized, utils.ErrorResponse{Error: "token inválido o expirado"})
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFromContext recupera los claims del actor autenticado
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(UserContextKey).(*auth.Claims)
	return claims, ok
}
