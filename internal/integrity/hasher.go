// Package integrity implementa la canonicalización determinística y el
// digest criptográfico sobre los que se apoyan la bitácora de auditoría
// y las firmas electrónicas. Funciones puras, sin efectos secundarios.
package integrity

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gustavogabrilearenas-gga/siprosapp/internal/apperrors"
)

// HashVersion versión del esquema de hash. Se antepone al digest para que
// un cambio futuro de algoritmo no invalide sellos históricos.
const HashVersion = "v1"

// Canonicalize serializa un conjunto de campos en una secuencia de bytes
// idéntica para entradas semánticamente iguales sin importar el orden de
// inserción: las claves se ordenan lexicográficamente antes de serializar.
// Falla con EncodingError si algún valor no es representable.
func Canonicalize(fields map[string]interface{}) ([]byte, error) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyJSON, _ := json.Marshal(k)
		buf.Write(keyJSON)
		buf.WriteByte(':')
		if err := writeCanonicalValue(&buf, k, fields[k]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Digest aplica SHA-256 y devuelve el resultado en hexadecimal con el
// prefijo de versión del esquema
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return HashVersion + ":" + hex.EncodeToString(sum[:])
}

// HashFields canonicaliza y computa el digest en un solo paso
func HashFields(fields map[string]interface{}) (string, error) {
	canonical, err := Canonicalize(fields)
	if err != nil {
		return "", err
	}
	return Digest(canonical), nil
}

// writeCanonicalValue escribe la forma canónica de un valor en el buffer
func writeCanonicalValue(buf *bytes.Buffer, field string, v interface{}) error {
	switch val := v.(type) {
	case nil:
		buf.WriteString("null")
	case string:
		encoded, _ := json.Marshal(val)
		buf.Write(encoded)
	case bool:
		buf.WriteString(strconv.FormatBool(val))
	case int:
		buf.WriteString(strconv.FormatInt(int64(val), 10))
	case int32:
		buf.WriteString(strconv.FormatInt(int64(val), 10))
	case int64:
		buf.WriteString(strconv.FormatInt(val, 10))
	case float32:
		buf.WriteString(NormalizeDecimal(strconv.FormatFloat(float64(val), 'f', -1, 32)))
	case float64:
		buf.WriteString(NormalizeDecimal(strconv.FormatFloat(val, 'f', -1, 64)))
	case json.Number:
		buf.WriteString(NormalizeDecimal(val.String()))
	case time.Time:
		// Los timestamps se normalizan a UTC para que representaciones
		// equivalentes produzcan el mismo digest
		encoded, _ := json.Marshal(val.UTC().Format(time.RFC3339Nano))
		buf.Write(encoded)
	case map[string]interface{}:
		nested, err := Canonicalize(val)
		if err != nil {
			return err
		}
		buf.Write(nested)
	case []interface{}:
		buf.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeCanonicalValue(buf, field, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		// Fallback para tipos estructurados arbitrarios. encoding/json
		// ordena las claves de los maps, así que sigue siendo determinístico.
		encoded, err := json.Marshal(val)
		if err != nil {
			return &apperrors.EncodingError{Field: field, Err: err}
		}
		buf.Write(encoded)
	}
	return nil
}

// NormalizeDecimal canonicaliza la representación textual de un número:
// expande la notación exponencial ("1e3" -> "1000") y quita ceros finales
// después del punto decimal ("1.50" -> "1.5", "2.00" -> "2") para que
// representaciones equivalentes no se reporten como cambios espurios
func NormalizeDecimal(s string) string {
	if strings.ContainsAny(s, "eE") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			s = strconv.FormatFloat(f, 'f', -1, 64)
		}
	}
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}
