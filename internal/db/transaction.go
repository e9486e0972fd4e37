package db

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"
)

// WithTransaction ejecuta fn dentro de una transacción sobre el pool dado.
// Todo lo que fn escribe se confirma junto o se revierte junto; un panic
// dentro de fn también revierte.
func WithTransaction(database *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := database.Begin()
	if err != nil {
		return fmt.Errorf("no se pudo iniciar la transacción: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error().Err(rbErr).Msg("Rollback fallido después de un panic")
			}
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Err(err).Msg("Rollback fallido")
			return fmt.Errorf("error en la transacción y en el rollback: %w", err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("no se pudo confirmar la transacción: %w", err)
	}

	return nil
}
