package models

import (
	"fmt"
	"strings"
	"time"
)

// Acciones firmables
const (
	SignatureActionApprove   = "APPROVE"
	SignatureActionReview    = "REVIEW"
	SignatureActionRelease   = "RELEASE"
	SignatureActionReject    = "REJECT"
	SignatureActionAuthorize = "AUTHORIZE"
	SignatureActionVerify    = "VERIFY"
)

// SignatureMeanings texto legible de la aserción que hace cada acción
var SignatureMeanings = map[string]string{
	SignatureActionApprove:   "Aprobado por",
	SignatureActionReview:    "Revisado por",
	SignatureActionRelease:   "Liberado por",
	SignatureActionReject:    "Rechazado por",
	SignatureActionAuthorize: "Autorizado por",
	SignatureActionVerify:    "Verificado por",
}

// ElectronicSignature una firma electrónica sellada con hash.
// Se crea una sola vez; el único camino de mutación es la invalidación
// (is_valid pasa de true a false exactamente una vez).
type ElectronicSignature struct {
	ID      int    `json:"id" db:"id"`
	UserID  int    `json:"user_id" db:"user_id"` // obligatorio: la firma siempre resuelve a quién firmó
	Action  string `json:"action" db:"action"`
	Meaning string `json:"meaning" db:"meaning"`

	// Referencia al objeto firmado, congelada al momento de firmar
	EntityType  string `json:"entity_type" db:"entity_type"`
	EntityID    int    `json:"entity_id" db:"entity_id"`
	EntityLabel string `json:"entity_label" db:"entity_label"`

	Reason   string `json:"reason" db:"reason"`
	Comments string `json:"comments,omitempty" db:"comments"`

	// Artefactos criptográficos
	CredentialHash string `json:"-" db:"credential_hash"`             // artefacto de auditoría, no reversible
	DataHash       string `json:"data_hash" db:"data_hash"`           // digest del payload firmado
	SignatureHash  string `json:"signature_hash" db:"signature_hash"` // sello de integridad del registro

	IPAddress string `json:"ip_address,omitempty" db:"ip_address"`
	UserAgent string `json:"user_agent,omitempty" db:"user_agent"`

	SignedAt time.Time `json:"signed_at" db:"signed_at"`

	// Estado de validez (transición única true -> false)
	IsValid            bool       `json:"is_valid" db:"is_valid"`
	InvalidatedAt      *time.Time `json:"invalidated_at,omitempty" db:"invalidated_at"`
	InvalidatedBy      *int       `json:"invalidated_by,omitempty" db:"invalidated_by"`
	InvalidationReason string     `json:"invalidation_reason,omitempty" db:"invalidation_reason"`
}

// CreateSignatureRequest petición para crear una firma electrónica
type CreateSignatureRequest struct {
	Credential  string                 `json:"credential"` // contraseña presentada para re-autenticar
	Action      string                 `json:"action"`
	EntityType  string                 `json:"entity_type"`
	EntityID    int                    `json:"entity_id"`
	EntityLabel string                 `json:"entity_label"`
	Reason      string                 `json:"reason"`
	Comments    string                 `json:"comments"`
	Payload     map[string]interface{} `json:"payload"` // el "qué" que se firma
}

// Validate valida la petición de creación de firma
func (r *CreateSignatureRequest) Validate() error {
	if r.Credential == "" {
		return fmt.Errorf("la credencial es obligatoria")
	}
	if _, ok := SignatureMeanings[r.Action]; !ok {
		return fmt.Errorf("acción de firma inválida: %s", r.Action)
	}
	if strings.TrimSpace(r.EntityType) == "" {
		return fmt.Errorf("el tipo de entidad es obligatorio")
	}
	if strings.TrimSpace(r.Reason) == "" {
		return fmt.Errorf("el motivo de la firma es obligatorio")
	}
	return nil
}

// InvalidateSignatureRequest petición para invalidar una firma existente
type InvalidateSignatureRequest struct {
	Reason string `json:"reason"`
}

// VerifySignatureResponse resultado de la verificación de integridad
type VerifySignatureResponse struct {
	SignatureID int  `json:"signature_id"`
	Valid       bool `json:"valid"`     // flag de validez del registro
	Integrity   bool `json:"integrity"` // el hash recalculado coincide con el almacenado
}
