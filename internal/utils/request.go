package utils

import (
	"net"
	"net/http"
	"strings"

	"github.com/gustavogabrilearenas-gga/siprosapp/internal/models"
)

// GetClientIP obtiene la IP real del cliente considerando proxies.
// Orden de precedencia: X-Forwarded-For, X-Real-IP, RemoteAddr.
func GetClientIP(r *http.Request) string {
	// X-Forwarded-For puede traer una cadena de IPs; la primera es el cliente
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		ip := strings.TrimSpace(parts[0])
		if ip != "" {
			return ip
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RequestMeta extrae los metadatos forenses del request que acompañan cada
// entrada de auditoría y cada firma
func RequestMeta(r *http.Request) models.RequestMeta {
	return models.RequestMeta{
		IPAddress: GetClientIP(r),
		UserAgent: r.UserAgent(),
	}
}
