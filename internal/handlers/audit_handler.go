package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gustavogabrilearenas-gga/siprosapp/internal/apperrors"
	"github.com/gustavogabrilearenas-gga/siprosapp/internal/interfaces"
	"github.com/gustavogabrilearenas-gga/siprosapp/internal/models"
	"github.com/gustavogabrilearenas-gga/siprosapp/internal/utils"
)

// AuditHandler endpoints de consulta de la bitácora de auditoría.
// La bitácora solo se consulta: no hay endpoints de modificación ni borrado.
type AuditHandler struct {
	auditService interfaces.AuditServiceInterface
}

// NewAuditHandler crea un handler nuevo
func NewAuditHandler(auditService interfaces.AuditServiceInterface) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// List maneja GET /api/v1/audit-logs con filtros por query params
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	filters, err := parseAuditFilters(r)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	entries, err := h.auditService.List(filters)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"results": entries,
		"count":   len(entries),
	})
}

// parseAuditFilters arma los filtros desde los query params
func parseAuditFilters(r *http.Request) (models.AuditLogFilters, error) {
	q := r.URL.Query()

	filters := models.AuditLogFilters{
		EntityType: q.Get("entity_type"),
		Action:     q.Get("action"),
	}

	if v := q.Get("entity_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return filters, apperrValidation("entity_id")
		}
		filters.EntityID = &id
	}

	if v := q.Get("user_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return filters, apperrValidation("user_id")
		}
		filters.UserID = &id
	}

	if v := q.Get("date_from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filters, apperrValidation("date_from")
		}
		filters.DateFrom = &t
	}

	if v := q.Get("date_to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filters, apperrValidation("date_to")
		}
		filters.DateTo = &t
	}

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return filters, apperrValidation("limit")
		}
		filters.Limit = n
	}

	return filters, nil
}

func apperrValidation(field string) error {
	return apperrors.NewValidationError(field, "valor inválido para "+field)
}
