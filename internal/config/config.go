package config

import (
	"fmt"
	"os"
)

// Config configuración tomada del entorno
type Config struct {
	AppEnv    string
	Port      string
	DBHost    string
	DBPort    string
	DBUser    string
	DBPass    string
	DBName    string
	JWTSecret string
}

// helper: devuelve el default si la variable de entorno no está definida
func getEnv(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// LoadConfig carga toda la configuración
func LoadConfig() *Config {
	return &Config{
		AppEnv:    getEnv("APP_ENV", "development"),
		Port:      getEnv("PORT", "8080"),
		DBHost:    getEnv("DB_HOST", "localhost"),
		DBPort:    getEnv("DB_PORT", "5432"),
		DBUser:    getEnv("DB_USER", "siprosa"),
		DBPass:    getEnv("DB_PASS", "password"),
		DBName:    getEnv("DB_NAME", "siprosadb"),
		JWTSecret: getEnv("JWT_SECRET", "cambiar-este-secret-en-produccion"),
	}
}

// GetDSN devuelve la URL de conexión a la base de datos
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName,
	)
}
