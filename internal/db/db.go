package db

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// DB pool de conexiones global
var DB *sql.DB

// Connect abre la conexión a PostgreSQL y verifica que responda
func Connect(dsn string) error {
	var err error

	DB, err = sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("no se pudo abrir la conexión a la base de datos: %w", err)
	}

	// Límites del pool
	DB.SetMaxOpenConns(25)
	DB.SetMaxIdleConns(5)
	DB.SetConnMaxLifetime(5 * time.Minute)

	if err = DB.Ping(); err != nil {
		return fmt.Errorf("la base de datos no responde: %w", err)
	}

	log.Info().Msg("Conexión a la base de datos establecida")
	return nil
}

// Close cierra el pool de conexiones
func Close() {
	if DB != nil {
		if err := DB.Close(); err != nil {
			log.Error().Err(err).Msg("Error al cerrar la conexión a la base de datos")
			return
		}
		log.Info().Msg("Conexión a la base de datos cerrada")
	}
}
