package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gustavogabrilearenas-gga/siprosapp/internal/auth"
)

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission("admin", PermInvalidateSignature))
	assert.True(t, HasPermission("auditor", PermViewAuditLog))
	assert.False(t, HasPermission("auditor", PermCreateSignature))
	assert.False(t, HasPermission("operario", PermViewAuditLog))
	assert.False(t, HasPermission("desconocido", PermViewAuditLog))
}

func requestWithRole(role string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/audit-logs", nil)
	claims := &auth.Claims{UserID: 3, Username: "ggarcia", Role: role}
	ctx := context.WithValue(req.Context(), UserContextKey, claims)
	return req.WithContext(ctx)
}

func TestRequirePermissionAllows(t *testing.T) {
	// Arrange
	called := false
	handler := RequirePermission(PermViewAuditLog)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	// Act
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithRole("auditor"))

	// Assert
	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequirePermissionDenies(t *testing.T) {
	handler := RequirePermission(PermInvalidateSignature)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("el handler no debe ejecutarse sin permiso")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithRole("operario"))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "no tiene permiso")
}

func TestRequirePermissionWithoutClaims(t *testing.T) {
	handler := RequirePermission(PermViewAuditLog)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("el handler no debe ejecutarse sin autenticación")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/audit-logs", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
