// Package diff compara un snapshot pre-mutación contra el estado posterior
// y produce el conjunto de cambios a nivel de campo que se persiste en la
// bitácora de auditoría.
package diff

import (
	"encoding/json"
	"sort"
	"strconv"
	"time"

	"github.com/gustavogabrilearenas-gga/siprosapp/internal/integrity"
	"github.com/gustavogabrilearenas-gga/siprosapp/internal/models"
	"github.com/gustavogabrilearenas-gga/siprosapp/internal/snapshot"
)

// Diff compara el snapshot previo con los campos posteriores y devuelve
// los cambios, ordenados por nombre de campo. Los campos sin cambio se
// omiten por completo: una entrada de auditoría no debe registrar ruido.
// La comparación es por igualdad de valor normalizado, no por identidad;
// valores estructurados se comparan por igualdad estructural profunda.
func Diff(before snapshot.Fields, after snapshot.Fields) (models.ChangeSet, error) {
	fields := make([]string, 0, len(before))
	for name := range before {
		fields = append(fields, name)
	}
	sort.Strings(fields)

	var changes models.ChangeSet
	for _, name := range fields {
		oldNorm, err := Normalize(name, before[name])
		if err != nil {
			return nil, err
		}
		newNorm, err := Normalize(name, after[name])
		if err != nil {
			return nil, err
		}
		if oldNorm != newNorm {
			changes = append(changes, models.FieldChange{
				Field:  name,
				Before: oldNorm,
				After:  newNorm,
			})
		}
	}
	return changes, nil
}

// InitialState produce el pseudo-changeset de una entidad recién creada:
// una única entrada sintética con el estado inicial completo en lugar de
// pares antes/después
func InitialState(fields snapshot.Fields) (models.ChangeSet, error) {
	canonical, err := integrity.Canonicalize(fields)
	if err != nil {
		return nil, err
	}
	return models.ChangeSet{
		{
			Field: models.InitialStateField,
			After: string(canonical),
		},
	}, nil
}

// Normalize convierte un valor a su forma textual canónica. Números y
// timestamps equivalentes ("1.50" y "1.5", el mismo instante en distintas
// zonas horarias) producen el mismo texto y no generan falsos positivos.
func Normalize(field string, v interface{}) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case bool:
		return strconv.FormatBool(val), nil
	case int:
		return strconv.FormatInt(int64(val), 10), nil
	case int32:
		return strconv.FormatInt(int64(val), 10), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case float32:
		return integrity.NormalizeDecimal(strconv.FormatFloat(float64(val), 'f', -1, 32)), nil
	case float64:
		return integrity.NormalizeDecimal(strconv.FormatFloat(val, 'f', -1, 64)), nil
	case json.Number:
		return integrity.NormalizeDecimal(val.String()), nil
	case time.Time:
		return val.UTC().Format(time.RFC3339Nano), nil
	case *time.Time:
		if val == nil {
			return "", nil
		}
		return val.UTC().Format(time.RFC3339Nano), nil
	default:
		// Valores estructurados (maps, slices): forma canónica con claves
		// ordenadas, para que la comparación sea estructural y no por referencia
		canonical, err := canonicalizeStructured(field, val)
		if err != nil {
			return "", err
		}
		return canonical, nil
	}
}

func canonicalizeStructured(field string, v interface{}) (string, error) {
	if m, ok := v.(map[string]interface{}); ok {
		canonical, err := integrity.Canonicalize(m)
		if err != nil {
			return "", err
		}
		return string(canonical), nil
	}
	canonical, err := integrity.Canonicalize(map[string]interface{}{field: v})
	if err != nil {
		return "", err
	}
	return string(canonical), nil
}
