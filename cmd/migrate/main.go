package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/gustavogabrilearenas-gga/siprosapp/internal/config"
	"github.com/gustavogabrilearenas-gga/siprosapp/internal/db"
	"github.com/gustavogabrilearenas-gga/siprosapp/internal/logger"
	"github.com/gustavogabrilearenas-gga/siprosapp/internal/migration"
)

func main() {
	_ = godotenv.Load()

	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)

	if err := db.Connect(cfg.GetDSN()); err != nil {
		log.Fatal().Err(err).Msg("No se pudo conectar a la base de datos")
	}
	defer db.Close()

	runner := migration.NewRunner(db.DB, "migrations")
	if err := runner.Up(); err != nil {
		log.Fatal().Err(err).Msg("Las migraciones fallaron")
	}

	log.Info().Msg("Migraciones completadas")
}
