// Package logger configura el logger estructurado de la aplicación
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config contiene la configuración del logger
type Config struct {
	Level  string // debug, info, warn, error
	Pretty bool   // Salida legible en consola en lugar de JSON
}

// ParseLevel convierte el nivel configurado, usando info por defecto
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New crea un logger estructurado y fija el nivel global
func New(cfg Config) zerolog.Logger {
	return NewWithOutput(cfg, os.Stdout)
}

// NewWithOutput crea el logger escribiendo en out
func NewWithOutput(cfg Config, out io.Writer) zerolog.Logger {
	zerolog.SetGlobalLevel(ParseLevel(cfg.Level))
	zerolog.TimeFieldFormat = time.RFC3339

	output := out
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: "15:04:05",
		}
	}

	return zerolog.New(output).
		With().
		Timestamp().
		Logger()
}

// SetGlobalLogger reemplaza el logger del paquete zerolog/log
func SetGlobalLogger(l zerolog.Logger) {
	log.Logger = l
}
