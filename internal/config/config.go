// Package config carga la configuración desde variables de entorno y .env
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config contiene la configuración de la aplicación
type Config struct {
	Port             string
	FinnhubAPIKey    string // Puede estar vacío, la obtención de acciones falla con un error descriptivo
	FinnhubBaseURL   string
	Exchange         string
	StockLimit       int // Cantidad de símbolos que se toman del listado
	FetchConcurrency int
	HTTPTimeout      time.Duration
	QuoteCacheTTL    time.Duration
	QuoteCacheDB     string        // Ruta del archivo SQLite para el caché, vacío usa memoria
	RefreshInterval  time.Duration // 0 desactiva la actualización periódica
	CORSOrigins      []string
	LogLevel         string
	LogPretty        bool
}

// Load lee la configuración. El archivo .env es opcional
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv construye la configuración solo a partir de las variables de entorno actuales
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		FinnhubAPIKey:    getEnv("FINNHUB_API_KEY", ""),
		FinnhubBaseURL:   strings.TrimRight(getEnv("FINNHUB_BASE_URL", "https://finnhub.io/api/v1"), "/"),
		Exchange:         getEnv("FINNHUB_EXCHANGE", "US"),
		StockLimit:       getEnvAsInt("STOCK_LIMIT", 30),
		FetchConcurrency: getEnvAsInt("FETCH_CONCURRENCY", 5),
		HTTPTimeout:      time.Duration(getEnvAsInt("HTTP_TIMEOUT_SECONDS", 10)) * time.Second,
		QuoteCacheTTL:    time.Duration(getEnvAsInt("QUOTE_CACHE_TTL_SECONDS", 300)) * time.Second,
		QuoteCacheDB:     getEnv("QUOTE_CACHE_DB", ""),
		RefreshInterval:  time.Duration(getEnvAsInt("REFRESH_INTERVAL_SECONDS", 0)) * time.Second,
		CORSOrigins:      splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogPretty:        getEnvAsBool("LOG_PRETTY", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate verifica que los valores numéricos tengan sentido
func (c *Config) Validate() error {
	if c.StockLimit <= 0 {
		return fmt.Errorf("STOCK_LIMIT debe ser mayor que cero: %d", c.StockLimit)
	}
	if c.FetchConcurrency <= 0 {
		return fmt.Errorf("FETCH_CONCURRENCY debe ser mayor que cero: %d", c.FetchConcurrency)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT_SECONDS debe ser mayor que cero")
	}
	if c.QuoteCacheTTL < 0 {
		return fmt.Errorf("QUOTE_CACHE_TTL_SECONDS no puede ser negativo")
	}
	if len(c.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS no contiene ningún origen")
	}
	if c.RefreshInterval < 0 {
		return fmt.Errorf("REFRESH_INTERVAL_SECONDS no puede ser negativo")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
