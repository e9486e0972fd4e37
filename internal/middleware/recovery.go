package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog/log"

	"github.com/gustavogabrilearenas-gga/siprosapp/internal/utils"
)

// RecoveryMiddleware captura panics y responde 500 en vez de tumbar el proceso
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().
					Interface("panic", rec).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Bytes("stack", debug.Stack()).
					Msg("Panic recuperado")

				utils.RespondJSON(w, http.StatusInternalServerError, utils.ErrorResponse{Error: "error interno del servidor"})
			}
		}()

		next.ServeHTTP(w, r)
	})
}
