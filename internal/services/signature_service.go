package services

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gustavogabrilearenas-gga/siprosapp/internal/apperrors"
	"github.com/gustavogabrilearenas-gga/siprosapp/internal/integrity"
	"github.com/gustavogabrilearenas-gga/siprosapp/internal/interfaces"
	"github.com/gustavogabrilearenas-gga/siprosapp/internal/models"
)

// SignatureService emisión, verificación de integridad e invalidación de
// firmas electrónicas. Máquina de estados de una firma:
// {inexistente} -> Create() -> {válida} -> Invalidate() -> {inválida},
// donde {inválida} es terminal.
type SignatureService struct {
	signatureRepo interfaces.SignatureRepositoryInterface
	reauth        interfaces.Reauthenticator
}

// NewSignatureService crea un service nuevo
func NewSignatureService(signatureRepo interfaces.SignatureRepositoryInterface, reauth interfaces.Reauthenticator) *SignatureService {
	return &SignatureService{
		signatureRepo: signatureRepo,
		reauth:        reauth,
	}
}

// Create re-autentica al actor con la credencial presentada y emite una
// firma sellada. Nada se persiste si la validación o la re-autenticación
// fallan; si la persistencia falla después del chequeo de credenciales la
// operación entera se reporta como fallida (ninguna firma parcial queda
// visible: es un único INSERT).
func (s *SignatureService) Create(actorID int, req *models.CreateSignatureRequest, meta models.RequestMeta) (*models.ElectronicSignature, error) {
	// Validación antes de cualquier efecto
	if strings.TrimSpace(req.Reason) == "" {
		return nil, apperrors.NewValidationError("reason", "el motivo de la firma es obligatorio")
	}
	meaning, ok := models.SignatureMeanings[req.Action]
	if !ok {
		return nil, apperrors.NewValidationError("action", "acción de firma inválida: "+req.Action)
	}

	// Re-autenticación fresca contra la credencial almacenada actual
	user, err := s.reauth.Reauthenticate(actorID, req.Credential)
	if err != nil {
		log.Warn().
			Int("user_id", actorID).
			Str("action", req.Action).
			Msg("Re-autenticación fallida al intentar firmar")
		return nil, err
	}

	// Truncado a microsegundos: timestamptz guarda esa precisión, y el sello
	// debe recomputarse idéntico sobre la firma recargada desde la base
	signedAt := time.Now().UTC().Truncate(time.Microsecond)

	// 1. Digest del payload que se atestigua (el "qué" firmado)
	dataHash, err := integrity.HashFields(req.Payload)
	if err != nil {
		return nil, err
	}

	// 2. Artefacto de verificación de credencial: hash no reversible de
	// {usuario, credencial, instante}, guardado solo como evidencia de
	// auditoría; jamás sirve para recuperar ni reutilizar la credencial
	credentialHash, err := integrity.HashFields(map[string]interface{}{
		"username":   user.Username,
		"credential": req.Credential,
		"timestamp":  signedAt,
	})
	if err != nil {
		return nil, err
	}

	// 3. Sello de integridad del registro de firma
	signatureHash, err := computeSignatureHash(actorID, req.Action, meaning, signedAt, req.EntityType, req.EntityID, req.Reason, dataHash)
	if err != nil {
		return nil, err
	}

	sig := &models.ElectronicSignature{
		UserID:         actorID,
		Action:         req.Action,
		Meaning:        meaning,
		EntityType:     req.EntityType,
		EntityID:       req.EntityID,
		EntityLabel:    req.EntityLabel,
		Reason:         req.Reason,
		Comments:       req.Comments,
		CredentialHash: credentialHash,
		DataHash:       dataHash,
		SignatureHash:  signatureHash,
		IPAddress:      meta.IPAddress,
		UserAgent:      meta.UserAgent,
		SignedAt:       signedAt,
		IsValid:        true,
	}

	created, err := s.signatureRepo.Create(sig)
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("signature_id", created.ID).
		Int("user_id", actorID).
		Str("action", req.Action).
		Str("entity_type", req.EntityType).
		Int("entity_id", req.EntityID).
		Msg("Firma electrónica emitida")

	return created, nil
}

// VerifyIntegrity recalcula el hash de la firma a partir de sus propios
// campos almacenados, con la misma canonicalización que Create, y lo compara
// con el hash guardado. Pura, sin efectos: cualquier mutación fuera de banda
// de un campo firmado cambia el hash recalculado y se detecta acá.
func (s *SignatureService) VerifyIntegrity(sig *models.ElectronicSignature) (bool, error) {
	expected, err := computeSignatureHash(sig.UserID, sig.Action, sig.Meaning, sig.SignedAt, sig.EntityType, sig.EntityID, sig.Reason, sig.DataHash)
	if err != nil {
		return false, err
	}
	return expected == sig.SignatureHash, nil
}

// VerifyByID carga la firma y verifica su integridad
func (s *SignatureService) VerifyByID(id int) (*models.VerifySignatureResponse, error) {
	sig, err := s.signatureRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	intact, err := s.VerifyIntegrity(sig)
	if err != nil {
		return nil, err
	}

	if !intact {
		log.Error().
			Int("signature_id", sig.ID).
			Msg("Verificación de integridad fallida: el registro de firma fue alterado")
	}

	return &models.VerifySignatureResponse{
		SignatureID: sig.ID,
		Valid:       sig.IsValid,
		Integrity:   intact,
	}, nil
}

// Invalidate marca una firma válida como inválida. Es el único camino de
// mutación de una firma existente; la transición ocurre exactamente una vez
// y siempre registra quién invalidó y por qué.
func (s *SignatureService) Invalidate(id int, actorID int, reason string) (*models.ElectronicSignature, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, apperrors.NewValidationError("reason", "el motivo de la invalidación es obligatorio")
	}

	sig, err := s.signatureRepo.Invalidate(id, actorID, reason)
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("signature_id", id).
		Int("invalidated_by", actorID).
		Msg("Firma electrónica invalidada")

	return sig, nil
}

// computeSignatureHash computa el sello de integridad sobre los campos de la
// firma en orden canónico fijo. Se calcula una sola vez al crear y nunca se
// recalcula para mutar el registro; verificar usa exactamente esta función.
func computeSignatureHash(actorID int, action, meaning string, signedAt time.Time, entityType string, entityID int, reason, dataHash string) (string, error) {
	return integrity.HashFields(map[string]interface{}{
		"user_id":     actorID,
		"action":      action,
		"meaning":     meaning,
		"timestamp":   signedAt,
		"entity_type": entityType,
		"entity_id":   entityID,
		"reason":      reason,
		"data_hash":   dataHash,
	})
}
