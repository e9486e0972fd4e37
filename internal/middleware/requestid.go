package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// RequestIDKey clave de contexto del identificador del request
const RequestIDKey contextKey = "request_id"

// RequestIDMiddleware asigna un identificador único a cada request para
// correlacionar sus logs. Si el cliente ya trae uno, se respeta.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		w.Header().Set("X-Request-ID", requestID)

		ctx := context.WithValue(r.Context(), RequestIDKey, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDFromContext recupera el identificador del request, si existe
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}
