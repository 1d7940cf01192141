package database

import (
	"database/sql"

	"github.com/rs/zerolog/log"
)

// RunMigrations ejecuta las migraciones necesarias para actualizar el esquema de la base de datos
func RunMigrations(db *sql.DB) error {
	log.Debug().Msg("Ejecutando migraciones de la base de datos")

	// Índice para purgar entradas vencidas por fecha
	createFetchedAtIndexSQL := `
	CREATE INDEX IF NOT EXISTS idx_quote_cache_fetched_at
	ON quote_cache(fetched_at);`

	if _, err := db.Exec(createFetchedAtIndexSQL); err != nil {
		log.Error().Err(err).Msg("Error al crear el índice de quote_cache")
		return err
	}

	return nil
}
