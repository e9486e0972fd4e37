package migration

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/gustavogabrilearenas-gga/siprosapp/internal/db"
)

// Migration un archivo de migración .up.sql con su versión
type Migration struct {
	Version string
	Name    string
	Path    string
}

// Runner aplica migraciones SQL en orden de versión
type Runner struct {
	db  *sql.DB
	dir string
}

// NewRunner crea un runner sobre el directorio de migraciones
func NewRunner(db *sql.DB, dir string) *Runner {
	return &Runner{db: db, dir: dir}
}

// ensureTable crea la tabla de control si no existe
func (r *Runner) ensureTable() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("no se pudo crear schema_migrations: %w", err)
	}
	return nil
}

// pending lista las migraciones todavía no aplicadas, ordenadas por versión
func (r *Runner) pending() ([]Migration, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("no se pudo leer el directorio de migraciones: %w", err)
	}

	applied := make(map[string]bool)
	rows, err := r.db.Query(`SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("no se pudo consultar schema_migrations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		applied[v] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var migrations []Migration
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, ".up.sql") {
			continue
		}

		// Convención: 001_nombre.up.sql
		version := strings.SplitN(name, "_", 2)[0]
		if applied[version] {
			continue
		}

		migrations = append(migrations, Migration{
			Version: version,
			Name:    strings.TrimSuffix(name, ".up.sql"),
			Path:    filepath.Join(r.dir, name),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

// Up aplica todas las migraciones pendientes, cada una en su transacción
func (r *Runner) Up() error {
	if err := r.ensureTable(); err != nil {
		return err
	}

	migrations, err := r.pending()
	if err != nil {
		return err
	}

	if len(migrations) == 0 {
		log.Info().Msg("No hay migraciones pendientes")
		return nil
	}

	for _, m := range migrations {
		content, err := os.ReadFile(m.Path)
		if err != nil {
			return fmt.Errorf("no se pudo leer %s: %w", m.Path, err)
		}

		// Cada migración y su registro de versión se confirman juntos
		err = db.WithTransaction(r.db, func(tx *sql.Tx) error {
			if _, err := tx.Exec(string(content)); err != nil {
				return fmt.Errorf("migración %s fallida: %w", m.Name, err)
			}
			if _, err := tx.Exec(`INSERT INTO schema_migrations (version) VALUES ($1)`, m.Version); err != nil {
				return fmt.Errorf("no se pudo registrar la migración %s: %w", m.Name, err)
			}
			return nil
		})
		if err != nil {
			return err
		}

		log.Info().Str("migration", m.Name).Msg("Migración aplicada")
	}

	return nil
}
