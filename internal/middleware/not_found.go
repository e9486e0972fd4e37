package middleware

import (
	"net/http"

	"github.com/gustavogabrilearenas-gga/siprosapp/internal/utils"
)

// NotFoundHandler respuesta JSON para rutas inexistentes
func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusNotFound, utils.ErrorResponse{Error: "ruta no encontrada"})
	})
}

// MethodNotAllowedHandler respuesta JSON para métodos no soportados
func MethodNotAllowedHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusMethodNotAllowed, utils.ErrorResponse{Error: "método no permitido"})
	})
}
