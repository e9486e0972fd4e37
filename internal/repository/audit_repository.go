package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/gustavogabrilearenas-gga/siprosapp/internal/apperrors"
	"github.com/gustavogabrilearenas-gga/siprosapp/internal/models"
)

// AuditRepository operaciones de base de datos de la bitácora de auditoría.
// Solo inserta y consulta: la tabla tiene un trigger que rechaza UPDATE y
// DELETE, así que la inmutabilidad se garantiza también en la capa de
// persistencia y no solo por convención del código.
type AuditRepository struct {
	db *sql.DB
}

// NewAuditRepository crea un repositorio nuevo
func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Create agrega exactamente una entrada a la bitácora
func (r *AuditRepository) Create(entry *models.AuditLog) (*models.AuditLog, error) {
	changesJSON, err := json.Marshal(entry.Changes)
	if err != nil {
		return nil, &apperrors.EncodingError{Field: "changes", Err: err}
	}

	query := `
		INSERT INTO audit_logs (user_id, action, entity_type, entity_id, entity_label, changes, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	result := *entry
	err = r.db.QueryRow(
		query,
		entry.UserID,
		entry.Action,
		entry.EntityType,
		entry.EntityID,
		entry.EntityLabel,
		changesJSON,
		entry.IPAddress,
		entry.UserAgent,
	).Scan(&result.ID, &result.CreatedAt)

	if err != nil {
		return nil, &apperrors.StorageError{Op: "audit_logs.insert", Err: err}
	}

	return &result, nil
}

// List devuelve entradas filtradas, más recientes primero, acotadas
func (r *AuditRepository) List(filters models.AuditLogFilters) ([]*models.AuditLog, error) {
	var conditions []string
	var args []interface{}

	addCondition := func(clause string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}

	if filters.EntityType != "" {
		addCondition("entity_type = $%d", filters.EntityType)
	}
	if filters.EntityID != nil {
		addCondition("entity_id = $%d", *filters.EntityID)
	}
	if filters.UserID != nil {
		addCondition("user_id = $%d", *filters.UserID)
	}
	if filters.Action != "" {
		addCondition("action = $%d", filters.Action)
	}
	if filters.DateFrom != nil {
		addCondition("created_at >= $%d", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		addCondition("created_at <= $%d", *filters.DateTo)
	}

	query := `
		SELECT id, user_id, action, entity_type, entity_id, entity_label, changes, ip_address, user_agent, created_at
		FROM audit_logs
	`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC LIMIT " + strconv.Itoa(filters.Limit)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, &apperrors.StorageError{Op: "audit_logs.list", Err: err}
	}
	defer rows.Close()

	var entries []*models.AuditLog
	for rows.Next() {
		entry, err := scanAuditLog(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, &apperrors.StorageError{Op: "audit_logs.list", Err: err}
	}

	return entries, nil
}

// scanAuditLog mapea una fila a una entrada de la bitácora
func scanAuditLog(rows *sql.Rows) (*models.AuditLog, error) {
	var entry models.AuditLog
	var userID sql.NullInt64
	var changesJSON []byte

	err := rows.Scan(
		&entry.ID,
		&userID,
		&entry.Action,
		&entry.EntityType,
		&entry.EntityID,
		&entry.EntityLabel,
		&changesJSON,
		&entry.IPAddress,
		&entry.UserAgent,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, &apperrors.StorageError{Op: "audit_logs.scan", Err: err}
	}

	if userID.Valid {
		id := int(userID.Int64)
		entry.UserID = &id
	}

	if len(changesJSON) > 0 {
		if err := json.Unmarshal(changesJSON, &entry.Changes); err != nil {
			return nil, &apperrors.EncodingError{Field: "changes", Err: err}
		}
	}

	return &entry, nil
}
