// internal/apperrors/errors.go
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError interface para errores tipados con status HTTP asociado
type APIError interface {
	error
	Status() int
}

// AuthenticationError la re-verificación de credenciales falló.
// Siempre corregible por el usuario; nunca se reintenta automáticamente.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string { return e.Message }
func (e *AuthenticationError) Status() int   { return http.StatusUnauthorized }

// NewAuthenticationError crea un error de autenticación
func NewAuthenticationError(message string) *AuthenticationError {
	return &AuthenticationError{Message: message}
}

// ValidationError falta un campo obligatorio o un valor es inválido.
// Se devuelve al caller, no se reintenta.
type ValidationError struct {
	Message string
	Field   string
}

func (e *ValidationError) Error() string { return e.Message }
func (e *ValidationError) Status() int   { return http.StatusBadRequest }

// NewValidationError crea un error de validación para un campo
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// AlreadyInvalidError guarda de idempotencia de la invalidación de firmas:
// la firma ya fue invalidada y la transición no se repite
type AlreadyInvalidError struct {
	SignatureID int
}

func (e *AlreadyInvalidError) Error() string {
	return fmt.Sprintf("la firma %d ya fue invalidada", e.SignatureID)
}
func (e *AlreadyInvalidError) Status() int { return http.StatusConflict }

// NotAuthorizedError el actor no tiene la capacidad requerida
type NotAuthorizedError struct {
	Message string
}

func (e *NotAuthorizedError) Error() string { return e.Message }
func (e *NotAuthorizedError) Status() int   { return http.StatusForbidden }

// NotFoundError el recurso pedido no existe
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }
func (e *NotFoundError) Status() int   { return http.StatusNotFound }

// EncodingError la canonicalización falló sobre un valor no serializable.
// Se trata como defecto de programación: se loguea y se expone como error interno.
type EncodingError struct {
	Field string
	Err   error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("no se pudo codificar el campo %q en forma canónica: %v", e.Field, e.Err)
}
func (e *EncodingError) Status() int   { return http.StatusInternalServerError }
func (e *EncodingError) Unwrap() error { return e.Err }

// StorageError fallo de persistencia. Nunca se silencia: la pérdida
// silenciosa de un registro de auditoría es una falla de cumplimiento.
// El mensaje hacia el usuario es genérico (no filtra detalles del storage).
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("error de almacenamiento en %s: %v", e.Op, e.Err)
}
func (e *StorageError) Status() int   { return http.StatusInternalServerError }
func (e *StorageError) Unwrap() error { return e.Err }

// IsAlreadyInvalid indica si err es un AlreadyInvalidError
func IsAlreadyInvalid(err error) bool {
	var target *AlreadyInvalidError
	return errors.As(err, &target)
}

// IsNotFound indica si err es un NotFoundError
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}
