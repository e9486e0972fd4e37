package middleware

import (
	"net/http"

	"github.com/gustavogabrilearenas-gga/siprosapp/internal/snapshot"
)

// OperationScopeMiddleware inyecta un store de snapshots nuevo en el contexto
// de cada request. Cada operación lógica captura sus estados previos en su
// propio store: dos requests concurrentes nunca comparten snapshots.
func OperationScopeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := snapshot.NewContext(r.Context(), snapshot.NewStore())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
