package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configura el logger global según el entorno.
// En desarrollo: salida de consola legible. En producción: JSON estructurado.
func Init(appEnv string) {
	zerolog.TimeFieldFormat = time.RFC3339

	if appEnv == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Caller().Logger()
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		}).With().Caller().Logger()
	}

	log.Info().Str("env", appEnv).Msg("Logger inicializado")
}
