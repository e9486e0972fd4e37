package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gustavogabrilearenas-gga/siprosapp/internal/apperrors"
	"github.com/gustavogabrilearenas-gga/siprosapp/internal/models"
	"github.com/gustavogabrilearenas-gga/siprosapp/internal/snapshot"
)

// MockAuditRepository mock del repositorio de la bitácora
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Create(entry *models.AuditLog) (*models.AuditLog, error) {
	args := m.Called(entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuditLog), args.Error(1)
}

func (m *MockAuditRepository) List(filters models.AuditLogFilters) ([]*models.AuditLog, error) {
	args := m.Called(filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.AuditLog), args.Error(1)
}

func operationContext() context.Context {
	return snapshot.NewContext(context.Background(), snapshot.NewStore())
}

func TestRecordSkipsEmptyModify(t *testing.T) {
	// Arrange
	mockRepo := new(MockAuditRepository)
	service := NewAuditService(mockRepo)
	actorID := 3

	// Act: un MODIFY sin cambios no debe ensuciar la bitácora
	err := service.Record(&actorID, models.AuditActionModify, "desviacion", 7, "DESV-007", models.ChangeSet{}, models.RequestMeta{})

	// Assert
	assert.NoError(t, err)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestRecordWritesModifyWithChanges(t *testing.T) {
	// Arrange
	mockRepo := new(MockAuditRepository)
	service := NewAuditService(mockRepo)
	actorID := 3

	changes := models.ChangeSet{{Field: "estado", Before: "ABIERTA", After: "CERRADA"}}
	mockRepo.On("Create", mock.AnythingOfType("*models.AuditLog")).
		Return(&models.AuditLog{ID: 1, Changes: changes}, nil)

	// Act
	err := service.Record(&actorID, models.AuditActionModify, "desviacion", 7, "DESV-007", changes, models.RequestMeta{IPAddress: "10.0.0.5"})

	// Assert
	assert.NoError(t, err)
	mockRepo.AssertCalled(t, "Create", mock.MatchedBy(func(entry *models.AuditLog) bool {
		return entry.Action == models.AuditActionModify &&
			entry.EntityType == "desviacion" &&
			entry.EntityID == 7 &&
			entry.IPAddress == "10.0.0.5" &&
			len(entry.Changes) == 1
	}))
}

func TestRecordPropagatesStorageError(t *testing.T) {
	// Arrange: la pérdida silenciosa de una entrada es inaceptable
	mockRepo := new(MockAuditRepository)
	service := NewAuditService(mockRepo)
	actorID := 3

	storageErr := &apperrors.StorageError{Op: "audit_logs.insert", Err: assert.AnError}
	mockRepo.On("Create", mock.Anything).Return(nil, storageErr)

	// Act
	err := service.Record(&actorID, models.AuditActionDelete, "desviacion", 7, "DESV-007", models.ChangeSet{}, models.RequestMeta{})

	// Assert
	assert.ErrorIs(t, err, storageErr)
}

func TestRecordDeleteWritesEvenWithoutChanges(t *testing.T) {
	mockRepo := new(MockAuditRepository)
	service := NewAuditService(mockRepo)
	actorID := 3

	mockRepo.On("Create", mock.Anything).Return(&models.AuditLog{ID: 1}, nil)

	err := service.Record(&actorID, models.AuditActionDelete, "desviacion", 7, "DESV-007", models.ChangeSet{}, models.RequestMeta{})

	assert.NoError(t, err)
	mockRepo.AssertCalled(t, "Create", mock.Anything)
}

func TestAfterMutateCreateRecordsInitialState(t *testing.T) {
	// Arrange
	mockRepo := new(MockAuditRepository)
	service := NewAuditService(mockRepo)
	actorID := 3

	mockRepo.On("Create", mock.Anything).Return(&models.AuditLog{ID: 1}, nil)

	// Act
	err := service.AfterMutate(operationContext(), models.AuditActionCreate, "desviacion", 7, "DESV-007",
		&actorID, snapshot.Fields{"estado": "ABIERTA", "severidad": "MAYOR"}, models.RequestMeta{})

	// Assert: una única entrada sintética con el estado inicial completo
	assert.NoError(t, err)
	mockRepo.AssertCalled(t, "Create", mock.MatchedBy(func(entry *models.AuditLog) bool {
		return len(entry.Changes) == 1 &&
			entry.Changes[0].Field == models.InitialStateField &&
			entry.Changes[0].Before == ""
	}))
}

func TestBeforeAfterMutateComputesDelta(t *testing.T) {
	// Arrange
	mockRepo := new(MockAuditRepository)
	service := NewAuditService(mockRepo)
	actorID := 3
	ctx := operationContext()

	mockRepo.On("Create", mock.Anything).Return(&models.AuditLog{ID: 1}, nil)

	// Act: capturar el estado previo, mutar, registrar
	err := service.BeforeMutate(ctx, "desviacion", 7, snapshot.Fields{"estado": "ABIERTA", "severidad": "MAYOR"})
	assert.NoError(t, err)

	err = service.AfterMutate(ctx, models.AuditActionModify, "desviacion", 7, "DESV-007",
		&actorID, snapshot.Fields{"estado": "CERRADA", "severidad": "MAYOR"}, models.RequestMeta{})

	// Assert: solo el campo que cambió
	assert.NoError(t, err)
	mockRepo.AssertCalled(t, "Create", mock.MatchedBy(func(entry *models.AuditLog) bool {
		return len(entry.Changes) == 1 &&
			entry.Changes[0].Field == "estado" &&
			entry.Changes[0].Before == "ABIERTA" &&
			entry.Changes[0].After == "CERRADA"
	}))
}

func TestAfterMutateModifyWithoutChangesWritesNothing(t *testing.T) {
	mockRepo := new(MockAuditRepository)
	service := NewAuditService(mockRepo)
	actorID := 3
	ctx := operationContext()

	fields := snapshot.Fields{"estado": "ABIERTA"}
	err := service.BeforeMutate(ctx, "desviacion", 7, fields)
	assert.NoError(t, err)

	err = service.AfterMutate(ctx, models.AuditActionModify, "desviacion", 7, "DESV-007",
		&actorID, snapshot.Fields{"estado": "ABIERTA"}, models.RequestMeta{})

	assert.NoError(t, err)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAfterMutateRejectsUnknownAction(t *testing.T) {
	mockRepo := new(MockAuditRepository)
	service := NewAuditService(mockRepo)
	actorID := 3

	err := service.AfterMutate(operationContext(), "EXPLODE", "desviacion", 7, "DESV-007",
		&actorID, snapshot.Fields{}, models.RequestMeta{})

	var valErr *apperrors.ValidationError
	assert.ErrorAs(t, err, &valErr)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestBeforeMutateRequiresOperationScope(t *testing.T) {
	mockRepo := new(MockAuditRepository)
	service := NewAuditService(mockRepo)

	// Sin store en el contexto la captura debe fallar, no mezclarse
	err := service.BeforeMutate(context.Background(), "desviacion", 7, snapshot.Fields{"estado": "ABIERTA"})

	assert.Error(t, err)
}

func TestListClampsLimit(t *testing.T) {
	// Arrange
	mockRepo := new(MockAuditRepository)
	service := NewAuditService(mockRepo)

	mockRepo.On("List", mock.MatchedBy(func(f models.AuditLogFilters) bool {
		return f.Limit == defaultAuditListLimit
	})).Return([]*models.AuditLog{}, nil)

	// Act: un límite fuera de rango cae al default
	_, err := service.List(models.AuditLogFilters{Limit: 10000})

	// Assert
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestListRejectsUnknownActionFilter(t *testing.T) {
	mockRepo := new(MockAuditRepository)
	service := NewAuditService(mockRepo)

	_, err := service.List(models.AuditLogFilters{Action: "EXPLODE"})

	var valErr *apperrors.ValidationError
	assert.ErrorAs(t, err, &valErr)
	mockRepo.AssertNotCalled(t, "List", mock.Anything)
}
