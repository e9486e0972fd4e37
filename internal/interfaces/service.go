// internal/interfaces/service.go
package interfaces

import (
	"context"

	"github.com/gustavogabrilearenas-gga/siprosapp/internal/models"
	"github.com/gustavogabrilearenas-gga/siprosapp/internal/snapshot"
)

// Reauthenticator re-verifica la credencial de un actor contra el hash
// almacenado actual (no contra un token de sesión existente)
type Reauthenticator interface {
	// Reauthenticate devuelve el usuario si la credencial coincide;
	// AuthenticationError en caso contrario
	Reauthenticate(userID int, credential string) (*models.User, error)
}

// AuditServiceInterface lógica de negocio de la bitácora de auditoría
type AuditServiceInterface interface {
	// BeforeMutate captura el estado previo de una entidad dentro de la
	// operación lógica actual
	BeforeMutate(ctx context.Context, entityType string, entityID int, fields snapshot.Fields) error

	// AfterMutate calcula el delta contra el snapshot y registra la entrada.
	// Debe invocarse sincrónicamente después de que la mutación fue confirmada.
	AfterMutate(ctx context.Context, action, entityType string, entityID int, entityLabel string, actorID *int, fields snapshot.Fields, meta models.RequestMeta) error

	// Record agrega una entrada de auditoría ya armada
	Record(actorID *int, action, entityType string, entityID int, entityLabel string, changes models.ChangeSet, meta models.RequestMeta) error

	// List consulta la bitácora (más recientes primero, acotado)
	List(filters models.AuditLogFilters) ([]*models.AuditLog, error)
}

// SignatureServiceInterface lógica de negocio de firmas electrónicas
type SignatureServiceInterface interface {
	// Create re-autentica al actor y emite una firma sellada con hash
	Create(actorID int, req *models.CreateSignatureRequest, meta models.RequestMeta) (*models.ElectronicSignature, error)

	// VerifyIntegrity recalcula el hash de la firma y lo compara con el almacenado
	VerifyIntegrity(sig *models.ElectronicSignature) (bool, error)

	// VerifyByID carga la firma y verifica su integridad
	VerifyByID(id int) (*models.VerifySignatureResponse, error)

	// Invalidate marca una firma válida como inválida (transición única)
	Invalidate(id int, actorID int, reason string) (*models.ElectronicSignature, error)
}
