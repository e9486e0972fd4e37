package models

import (
	"time"
)

// Acciones registrables en la bitácora de auditoría
const (
	AuditActionCreate = "CREATE"
	AuditActionModify = "MODIFY"
	AuditActionDelete = "DELETE"
	AuditActionCancel = "CANCEL"
	AuditActionView   = "VIEW"
	AuditActionExport = "EXPORT"
)

// ValidAuditActions acciones permitidas para una entrada de auditoría
var ValidAuditActions = map[string]bool{
	AuditActionCreate: true,
	AuditActionModify: true,
	AuditActionDelete: true,
	AuditActionCancel: true,
	AuditActionView:   true,
	AuditActionExport: true,
}

// InitialStateField nombre del pseudo-cambio que guarda el estado inicial
// completo de una entidad recién creada (no hay "antes" contra el cual comparar)
const InitialStateField = "initial_state"

// FieldChange un cambio a nivel de campo: valor anterior y nuevo en forma textual canónica
type FieldChange struct {
	Field  string `json:"field"`
	Before string `json:"before"`
	After  string `json:"after"`
}

// ChangeSet conjunto de cambios ordenado por nombre de campo.
// Se usa un slice (no un map) para que la serialización sea determinística.
type ChangeSet []FieldChange

// IsEmpty indica si no hay ningún cambio registrado
func (cs ChangeSet) IsEmpty() bool {
	return len(cs) == 0
}

// AuditLog una entrada inmutable de la bitácora de auditoría.
// Una vez creada, ningún campo se modifica ni se borra.
type AuditLog struct {
	ID          int       `json:"id" db:"id"`
	UserID      *int      `json:"user_id" db:"user_id"` // nullable: el actor puede borrarse después
	Action      string    `json:"action" db:"action"`
	EntityType  string    `json:"entity_type" db:"entity_type"`
	EntityID    int       `json:"entity_id" db:"entity_id"`
	EntityLabel string    `json:"entity_label" db:"entity_label"` // representación legible congelada al momento del registro
	Changes     ChangeSet `json:"changes" db:"changes"`
	IPAddress   string    `json:"ip_address,omitempty" db:"ip_address"`
	UserAgent   string    `json:"user_agent,omitempty" db:"user_agent"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// AuditLogFilters filtros para listar la bitácora de auditoría
type AuditLogFilters struct {
	EntityType string
	EntityID   *int
	UserID     *int
	Action     string
	DateFrom   *time.Time
	DateTo     *time.Time
	Limit      int
}

// RequestMeta metadata de origen de la petición (best-effort)
type RequestMeta struct {
	IPAddress string
	UserAgent string
}
