package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/gustavogabrilearenas-gga/siprosapp/internal/apperrors"
	"github.com/gustavogabrilearenas-gga/siprosapp/internal/diff"
	"github.com/gustavogabrilearenas-gga/siprosapp/internal/interfaces"
	"github.com/gustavogabrilearenas-gga/siprosapp/internal/models"
	"github.com/gustavogabrilearenas-gga/siprosapp/internal/snapshot"
)

// Límites de paginación para la consulta de la bitácora
const (
	defaultAuditListLimit = 50
	maxAuditListLimit     = 200
)

// AuditService captura de cambios y escritura de la bitácora de auditoría.
// Los hooks BeforeMutate/AfterMutate se invocan explícitamente desde la capa
// de entidades, dentro de la misma operación lógica que la mutación: nunca
// en forma diferida, para que la bitácora solo refleje mutaciones confirmadas.
type AuditService struct {
	auditRepo interfaces.AuditRepositoryInterface
}

// NewAuditService crea un service nuevo
func NewAuditService(auditRepo interfaces.AuditRepositoryInterface) *AuditService {
	return &AuditService{auditRepo: auditRepo}
}

// BeforeMutate captura el estado previo de una entidad en el store de la
// operación actual. Para entidades nuevas no debe llamarse: no hay "antes".
func (s *AuditService) BeforeMutate(ctx context.Context, entityType string, entityID int, fields snapshot.Fields) error {
	store, ok := snapshot.FromContext(ctx)
	if !ok {
		// Un store global compartido mezclaría operaciones concurrentes,
		// así que la ausencia de alcance de operación es un error del caller
		return fmt.Errorf("no hay alcance de operación en el contexto: el snapshot no puede capturarse")
	}

	store.Capture(entityType, entityID, fields)
	return nil
}

// AfterMutate computa el delta contra el snapshot capturado y registra la
// entrada. Debe invocarse sincrónicamente después de que la mutación fue
// confirmada en forma durable, dentro de la misma operación lógica.
func (s *AuditService) AfterMutate(ctx context.Context, action, entityType string, entityID int, entityLabel string, actorID *int, fields snapshot.Fields, meta models.RequestMeta) error {
	if !models.ValidAuditActions[action] {
		return apperrors.NewValidationError("action", fmt.Sprintf("acción de auditoría inválida: %s", action))
	}

	changes, err := s.resolveChanges(ctx, action, entityType, entityID, fields)
	if err != nil {
		return err
	}

	return s.Record(actorID, action, entityType, entityID, entityLabel, changes, meta)
}

// resolveChanges arma el conjunto de cambios según la acción y el snapshot disponible
func (s *AuditService) resolveChanges(ctx context.Context, action, entityType string, entityID int, fields snapshot.Fields) (models.ChangeSet, error) {
	if action == models.AuditActionCreate {
		return diff.InitialState(fields)
	}

	var before snapshot.Fields
	if store, ok := snapshot.FromContext(ctx); ok {
		before, _ = store.Take(entityType, entityID)
	}

	// Sin snapshot previo el delta no es computable: se registra el estado
	// completo como pseudo-cambio inicial en lugar de pares antes/después
	if before == nil {
		return diff.InitialState(fields)
	}

	return diff.Diff(before, fields)
}

// Record agrega exactamente una entrada a la bitácora. Si el conjunto de
// cambios de un MODIFY está vacío no se escribe nada: un guardado sin
// cambios no debe ensuciar la traza. CREATE y DELETE siempre registran.
// Un fallo de persistencia se propaga al caller, nunca se silencia.
func (s *AuditService) Record(actorID *int, action, entityType string, entityID int, entityLabel string, changes models.ChangeSet, meta models.RequestMeta) error {
	if action == models.AuditActionModify && changes.IsEmpty() {
		log.Debug().
			Str("entity_type", entityType).
			Int("entity_id", entityID).
			Msg("Guardado sin cambios: no se registra entrada de auditoría")
		return nil
	}

	entry := &models.AuditLog{
		UserID:      actorID,
		Action:      action,
		EntityType:  entityType,
		EntityID:    entityID,
		EntityLabel: entityLabel,
		Changes:     changes,
		IPAddress:   meta.IPAddress,
		UserAgent:   meta.UserAgent,
	}

	created, err := s.auditRepo.Create(entry)
	if err != nil {
		// La mutación ya fue confirmada pero su traza no pudo escribirse:
		// es una falla de sistema reportable, no logging best-effort
		log.Error().
			Err(err).
			Str("action", action).
			Str("entity_type", entityType).
			Int("entity_id", entityID).
			Msg("No se pudo escribir la entrada de auditoría")
		return err
	}

	log.Info().
		Int("audit_id", created.ID).
		Str("action", action).
		Str("entity_type", entityType).
		Int("entity_id", entityID).
		Int("changes", len(changes)).
		Msg("Entrada de auditoría registrada")

	return nil
}

// List consulta la bitácora: más recientes primero, resultado acotado
func (s *AuditService) List(filters models.AuditLogFilters) ([]*models.AuditLog, error) {
	if filters.Limit <= 0 || filters.Limit > maxAuditListLimit {
		filters.Limit = defaultAuditListLimit
	}

	if filters.Action != "" && !models.ValidAuditActions[filters.Action] {
		return nil, apperrors.NewValidationError("action", fmt.Sprintf("acción de auditoría inválida: %s", filters.Action))
	}

	entries, err := s.auditRepo.List(filters)
	if err != nil {
		return nil, fmt.Errorf("no se pudo consultar la bitácora: %w", err)
	}

	return entries, nil
}
