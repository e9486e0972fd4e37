package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gustavogabrilearenas-gga/siprosapp/internal/apperrors"
)

func TestRespondErrorValidation(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondError(rec, apperrors.NewValidationError("reason", "el motivo es obligatorio"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"el motivo es obligatorio","field":"reason"}`, rec.Body.String())
}

func TestRespondErrorAuthentication(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondError(rec, apperrors.NewAuthenticationError("credencial inválida"))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "credencial inválida")
}

func TestRespondErrorStorageHidesDetail(t *testing.T) {
	// El detalle del storage se loguea, nunca viaja al cliente
	rec := httptest.NewRecorder()
	err := &apperrors.StorageError{Op: "audit_logs.insert", Err: assert.AnError}

	RespondError(rec, err)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"error interno del servidor"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "audit_logs")
}

func TestRespondErrorEncodingHidesDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	err := &apperrors.EncodingError{Field: "changes", Err: assert.AnError}

	RespondError(rec, err)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"error interno del servidor"}`, rec.Body.String())
}

func TestRespondErrorUntyped(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondError(rec, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"error interno del servidor"}`, rec.Body.String())
}
