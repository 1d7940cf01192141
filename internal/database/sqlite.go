package database

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// InitDB abre la base SQLite del caché de cotizaciones y crea el esquema.
// Con path ":memory:" la base vive solo mientras el proceso esté activo
func InitDB(path string) (*sql.DB, error) {
	if path != ":memory:" {
		// Crear el directorio de la base si no existe
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, err
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// SQLite no admite escrituras concurrentes y cada conexión en memoria es una base distinta
	db.SetMaxOpenConns(1)

	// Crear tabla de caché de cotizaciones si no existe
	createQuoteCacheTableSQL := `
	CREATE TABLE IF NOT EXISTS quote_cache (
		symbol TEXT PRIMARY KEY,
		price REAL NOT NULL,
		sector TEXT NOT NULL,
		fetched_at INTEGER NOT NULL
	);`

	if _, err := db.Exec(createQuoteCacheTableSQL); err != nil {
		db.Close()
		return nil, err
	}

	// Ejecutar migraciones para actualizar el esquema
	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
