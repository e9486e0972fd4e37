package repository

import (
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/gustavogabrilearenas-gga/siprosapp/internal/apperrors"
	"github.com/gustavogabrilearenas-gga/siprosapp/internal/models"
)

var signatureTestColumns = []string{
	"id", "user_id", "action", "meaning", "entity_type", "entity_id", "entity_label",
	"reason", "comments", "credential_hash", "data_hash", "signature_hash",
	"ip_address", "user_agent", "signed_at", "is_valid", "invalidated_at", "invalidated_by", "invalidation_reason",
}

func signatureRow(id int, isValid bool, signedAt time.Time) []driverValue {
	return []driverValue{
		id, 3, "APPROVE", "Aprobado por", "desviacion", 7, "DESV-007",
		"Cierre de la desviación", "", "v1:cred", "v1:data", "v1:sello",
		"10.0.0.5", "test", signedAt, isValid, nil, nil, nil,
	}
}

type driverValue = driver.Value

func TestSignatureCreate(t *testing.T) {
	// Arrange
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewSignatureRepository(db)
	signedAt := time.Now().UTC()

	mock.ExpectQuery(`INSERT INTO electronic_signatures`).
		WithArgs(3, "APPROVE", "Aprobado por", "desviacion", 7, "DESV-007",
			"Cierre de la desviación", "", "v1:cred", "v1:data", "v1:sello",
			"10.0.0.5", "test", signedAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	sig := &models.ElectronicSignature{
		UserID:         3,
		Action:         "APPROVE",
		Meaning:        "Aprobado por",
		EntityType:     "desviacion",
		EntityID:       7,
		EntityLabel:    "DESV-007",
		Reason:         "Cierre de la desviación",
		CredentialHash: "v1:cred",
		DataHash:       "v1:data",
		SignatureHash:  "v1:sello",
		IPAddress:      "10.0.0.5",
		UserAgent:      "test",
		SignedAt:       signedAt,
	}

	// Act
	created, err := repo.Create(sig)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, 42, created.ID)
	assert.True(t, created.IsValid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignatureGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewSignatureRepository(db)

	mock.ExpectQuery(`SELECT .+ FROM electronic_signatures WHERE id = \$1`).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows(signatureTestColumns))

	_, err = repo.GetByID(99)

	assert.True(t, apperrors.IsNotFound(err))
}

func TestSignatureGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewSignatureRepository(db)
	signedAt := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM electronic_signatures WHERE id = \$1`).
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows(signatureTestColumns).AddRow(signatureRow(42, true, signedAt)...))

	sig, err := repo.GetByID(42)

	assert.NoError(t, err)
	assert.Equal(t, 42, sig.ID)
	assert.True(t, sig.IsValid)
	assert.Nil(t, sig.InvalidatedAt)
	assert.Nil(t, sig.InvalidatedBy)
}

func TestSignatureInvalidate(t *testing.T) {
	// Arrange
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewSignatureRepository(db)
	signedAt := time.Now()
	invalidatedAt := time.Now()

	row := []driverValue{
		42, 3, "APPROVE", "Aprobado por", "desviacion", 7, "DESV-007",
		"Cierre de la desviación", "", "v1:cred", "v1:data", "v1:sello",
		"10.0.0.5", "test", signedAt, false, invalidatedAt, 5, "emitida por error",
	}

	mock.ExpectQuery(`UPDATE electronic_signatures\s+SET is_valid = false`).
		WithArgs(42, sqlmock.AnyArg(), 5, "emitida por error").
		WillReturnRows(sqlmock.NewRows(signatureTestColumns).AddRow(row...))

	// Act
	sig, err := repo.Invalidate(42, 5, "emitida por error")

	// Assert
	assert.NoError(t, err)
	assert.False(t, sig.IsValid)
	assert.Equal(t, 5, *sig.InvalidatedBy)
	assert.Equal(t, "emitida por error", sig.InvalidationReason)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignatureInvalidateAlreadyInvalid(t *testing.T) {
	// Arrange: el UPDATE condicional no toca filas ya invalidadas
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewSignatureRepository(db)
	signedAt := time.Now()

	mock.ExpectQuery(`UPDATE electronic_signatures\s+SET is_valid = false`).
		WithArgs(42, sqlmock.AnyArg(), 5, "de nuevo").
		WillReturnRows(sqlmock.NewRows(signatureTestColumns))

	// La firma existe pero ya está invalidada
	mock.ExpectQuery(`SELECT .+ FROM electronic_signatures WHERE id = \$1`).
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows(signatureTestColumns).AddRow(signatureRow(42, false, signedAt)...))

	// Act
	_, err = repo.Invalidate(42, 5, "de nuevo")

	// Assert
	assert.True(t, apperrors.IsAlreadyInvalid(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignatureInvalidateNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewSignatureRepository(db)

	mock.ExpectQuery(`UPDATE electronic_signatures\s+SET is_valid = false`).
		WithArgs(99, sqlmock.AnyArg(), 5, "x").
		WillReturnRows(sqlmock.NewRows(signatureTestColumns))

	mock.ExpectQuery(`SELECT .+ FROM electronic_signatures WHERE id = \$1`).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows(signatureTestColumns))

	_, err = repo.Invalidate(99, 5, "x")

	assert.True(t, apperrors.IsNotFound(err))
}

func TestSignatureListValid(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewSignatureRepository(db)
	signedAt := time.Now()

	mock.ExpectQuery(`FROM electronic_signatures\s+WHERE entity_type = \$1 AND entity_id = \$2 AND is_valid = true`).
		WithArgs("desviacion", 7).
		WillReturnRows(sqlmock.NewRows(signatureTestColumns).
			AddRow(signatureRow(43, true, signedAt)...).
			AddRow(signatureRow(42, true, signedAt.Add(-time.Hour))...))

	sigs, err := repo.ListValid("desviacion", 7)

	assert.NoError(t, err)
	assert.Len(t, sigs, 2)
	assert.Equal(t, 43, sigs[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
