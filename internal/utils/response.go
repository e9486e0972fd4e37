package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/gustavogabrilearenas-gga/siprosapp/internal/apperrors"
)

// ErrorResponse cuerpo JSON estándar para errores
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// RespondJSON escribe una respuesta JSON con el status dado
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if payload == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("No se pudo serializar la respuesta")
	}
}

// RespondError mapea un error de la aplicación a su respuesta HTTP.
// Los errores tipados llevan su propio status. Todo error 5xx (tipado o no)
// se loguea con su detalle y sale con mensaje genérico: el detalle del
// storage o de la codificación nunca viaja al cliente.
func RespondError(w http.ResponseWriter, err error) {
	var apiErr apperrors.APIError
	if errors.As(err, &apiErr) && apiErr.Status() < http.StatusInternalServerError {
		resp := ErrorResponse{Error: apiErr.Error()}

		var valErr *apperrors.ValidationError
		if errors.As(err, &valErr) {
			resp.Field = valErr.Field
		}

		RespondJSON(w, apiErr.Status(), resp)
		return
	}

	log.Error().Err(err).Msg("Error interno")
	RespondJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "error interno del servidor"})
}
