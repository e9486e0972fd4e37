package snapshot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCaptureAndTake(t *testing.T) {
	// Arrange
	store := NewStore()
	store.Capture("desviacion", 7, Fields{"estado": "ABIERTA"})

	// Act
	fields, ok := store.Take("desviacion", 7)

	// Assert
	assert.True(t, ok)
	assert.Equal(t, "ABIERTA", fields["estado"])
}

func TestTakeConsumesSnapshot(t *testing.T) {
	store := NewStore()
	store.Capture("desviacion", 7, Fields{"estado": "ABIERTA"})

	_, ok := store.Take("desviacion", 7)
	assert.True(t, ok)

	// La segunda lectura no encuentra nada: consumo único
	_, ok = store.Take("desviacion", 7)
	assert.False(t, ok)
}

func TestTakeMissingSnapshot(t *testing.T) {
	store := NewStore()

	fields, ok := store.Take("lote", 99)

	assert.False(t, ok)
	assert.Nil(t, fields)
}

func TestSnapshotsKeyedByTypeAndID(t *testing.T) {
	store := NewStore()
	store.Capture("desviacion", 1, Fields{"estado": "ABIERTA"})
	store.Capture("lote", 1, Fields{"estado": "EN_PROCESO"})

	fields, ok := store.Take("lote", 1)
	assert.True(t, ok)
	assert.Equal(t, "EN_PROCESO", fields["estado"])

	fields, ok = store.Take("desviacion", 1)
	assert.True(t, ok)
	assert.Equal(t, "ABIERTA", fields["estado"])
}

func TestCaptureCopiesFields(t *testing.T) {
	// Arrange
	store := NewStore()
	original := Fields{"estado": "ABIERTA"}
	store.Capture("desviacion", 7, original)

	// Act: el caller sigue mutando su map después de capturar
	original["estado"] = "CERRADA"

	// Assert: el snapshot conserva el valor del momento de la captura
	fields, ok := store.Take("desviacion", 7)
	assert.True(t, ok)
	assert.Equal(t, "ABIERTA", fields["estado"])
}

func TestContextRoundTrip(t *testing.T) {
	store := NewStore()
	ctx := NewContext(context.Background(), store)

	got, ok := FromContext(ctx)

	assert.True(t, ok)
	assert.Same(t, store, got)
}

func TestFromContextWithoutStore(t *testing.T) {
	_, ok := FromContext(context.Background())

	assert.False(t, ok)
}
