// internal/interfaces/repository.go
package interfaces

import (
	"github.com/gustavogabrilearenas-gga/siprosapp/internal/models"
)

// UserRepositoryInterface operaciones de base de datos de usuarios
type UserRepositoryInterface interface {
	// GetByID busca un usuario por ID
	GetByID(id int) (*models.User, error)

	// GetByUsername busca un usuario por nombre de usuario (incluye hash de contraseña)
	GetByUsername(username string) (*models.User, error)
}

// AuditRepositoryInterface operaciones de base de datos de la bitácora.
// Intencionalmente no expone Update ni Delete: la bitácora es append-only
// y la capa de persistencia rechaza mutaciones (trigger en la migración).
type AuditRepositoryInterface interface {
	// Create agrega exactamente una entrada a la bitácora
	Create(entry *models.AuditLog) (*models.AuditLog, error)

	// List devuelve entradas filtradas, más recientes primero, acotadas
	List(filters models.AuditLogFilters) ([]*models.AuditLog, error)
}

// SignatureRepositoryInterface operaciones de base de datos de firmas electrónicas
type SignatureRepositoryInterface interface {
	// Create persiste una firma nueva (is_valid = true)
	Create(sig *models.ElectronicSignature) (*models.ElectronicSignature, error)

	// GetByID busca una firma por ID
	GetByID(id int) (*models.ElectronicSignature, error)

	// Invalidate marca la firma como inválida si y solo si sigue válida.
	// Devuelve AlreadyInvalidError si la transición ya ocurrió.
	Invalidate(id int, actorID int, reason string) (*models.ElectronicSignature, error)

	// ListValid devuelve las firmas actualmente válidas de una entidad
	ListValid(entityType string, entityID int) ([]*models.ElectronicSignature, error)
}
