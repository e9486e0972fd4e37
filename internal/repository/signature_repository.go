package repository

import (
	"database/sql"
	"time"

	"github.com/gustavogabrilearenas-gga/siprosapp/internal/apperrors"
	"github.com/gustavogabrilearenas-gga/siprosapp/internal/models"
)

// SignatureRepository operaciones de base de datos de firmas electrónicas
type SignatureRepository struct {
	db *sql.DB
}

// NewSignatureRepository crea un repositorio nuevo
func NewSignatureRepository(db *sql.DB) *SignatureRepository {
	return &SignatureRepository{db: db}
}

const signatureColumns = `id, user_id, action, meaning, entity_type, entity_id, entity_label,
	reason, comments, credential_hash, data_hash, signature_hash,
	ip_address, user_agent, signed_at, is_valid, invalidated_at, invalidated_by, invalidation_reason`

// Create persiste una firma nueva con is_valid = true.
// Un único INSERT: la verificación de credenciales y la persistencia se ven
// como una unidad atómica desde el caller.
func (r *SignatureRepository) Create(sig *models.ElectronicSignature) (*models.ElectronicSignature, error) {
	query := `
		INSERT INTO electronic_signatures
			(user_id, action, meaning, entity_type, entity_id, entity_label,
			 reason, comments, credential_hash, data_hash, signature_hash,
			 ip_address, user_agent, signed_at, is_valid)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, true)
		RETURNING id
	`

	result := *sig
	result.IsValid = true
	err := r.db.QueryRow(
		query,
		sig.UserID,
		sig.Action,
		sig.Meaning,
		sig.EntityType,
		sig.EntityID,
		sig.EntityLabel,
		sig.Reason,
		sig.Comments,
		sig.CredentialHash,
		sig.DataHash,
		sig.SignatureHash,
		sig.IPAddress,
		sig.UserAgent,
		sig.SignedAt,
	).Scan(&result.ID)

	if err != nil {
		return nil, &apperrors.StorageError{Op: "electronic_signatures.insert", Err: err}
	}

	return &result, nil
}

// GetByID busca una firma por ID
func (r *SignatureRepository) GetByID(id int) (*models.ElectronicSignature, error) {
	query := `SELECT ` + signatureColumns + ` FROM electronic_signatures WHERE id = $1`

	sig, err := scanSignature(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, &apperrors.NotFoundError{Message: "firma no encontrada"}
	}
	if err != nil {
		return nil, &apperrors.StorageError{Op: "electronic_signatures.get", Err: err}
	}

	return sig, nil
}

// Invalidate marca la firma como inválida si y solo si sigue válida.
// El UPDATE condicional (WHERE is_valid = true) serializa invalidaciones
// concurrentes: solo la primera modifica la fila, las demás reciben
// AlreadyInvalidError.
func (r *SignatureRepository) Invalidate(id int, actorID int, reason string) (*models.ElectronicSignature, error) {
	query := `
		UPDATE electronic_signatures
		SET is_valid = false, invalidated_at = $2, invalidated_by = $3, invalidation_reason = $4
		WHERE id = $1 AND is_valid = true
		RETURNING ` + signatureColumns

	sig, err := scanSignature(r.db.QueryRow(query, id, time.Now().UTC(), actorID, reason))
	if err == sql.ErrNoRows {
		// La fila no cambió: o no existe o ya estaba invalidada
		if _, getErr := r.GetByID(id); getErr != nil {
			return nil, getErr
		}
		return nil, &apperrors.AlreadyInvalidError{SignatureID: id}
	}
	if err != nil {
		return nil, &apperrors.StorageError{Op: "electronic_signatures.invalidate", Err: err}
	}

	return sig, nil
}

// ListValid devuelve las firmas actualmente válidas de una entidad
func (r *SignatureRepository) ListValid(entityType string, entityID int) ([]*models.ElectronicSignature, error) {
	query := `
		SELECT ` + signatureColumns + `
		FROM electronic_signatures
		WHERE entity_type = $1 AND entity_id = $2 AND is_valid = true
		ORDER BY signed_at DESC
	`

	rows, err := r.db.Query(query, entityType, entityID)
	if err != nil {
		return nil, &apperrors.StorageError{Op: "electronic_signatures.list_valid", Err: err}
	}
	defer rows.Close()

	var sigs []*models.ElectronicSignature
	for rows.Next() {
		sig, err := scanSignature(rows)
		if err != nil {
			return nil, &apperrors.StorageError{Op: "electronic_signatures.scan", Err: err}
		}
		sigs = append(sigs, sig)
	}

	if err := rows.Err(); err != nil {
		return nil, &apperrors.StorageError{Op: "electronic_signatures.list_valid", Err: err}
	}

	return sigs, nil
}

// rowScanner abstrae sql.Row y sql.Rows para el mapeo de firmas
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanSignature mapea una fila a una firma electrónica
func scanSignature(row rowScanner) (*models.ElectronicSignature, error) {
	var sig models.ElectronicSignature
	var invalidatedAt sql.NullTime
	var invalidatedBy sql.NullInt64
	var invalidationReason sql.NullString

	err := row.Scan(
		&sig.ID,
		&sig.UserID,
		&sig.Action,
		&sig.Meaning,
		&sig.EntityType,
		&sig.EntityID,
		&sig.EntityLabel,
		&sig.Reason,
		&sig.Comments,
		&sig.CredentialHash,
		&sig.DataHash,
		&sig.SignatureHash,
		&sig.IPAddress,
		&sig.UserAgent,
		&sig.SignedAt,
		&sig.IsValid,
		&invalidatedAt,
		&invalidatedBy,
		&invalidationReason,
	)
	if err != nil {
		return nil, err
	}

	if invalidatedAt.Valid {
		t := invalidatedAt.Time
		sig.InvalidatedAt = &t
	}
	if invalidatedBy.Valid {
		id := int(invalidatedBy.Int64)
		sig.InvalidatedBy = &id
	}
	if invalidationReason.Valid {
		sig.InvalidationReason = invalidationReason.String
	}

	return &sig, nil
}
