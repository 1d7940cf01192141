package middleware

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/AgusMolinaCode/Diversity_Api.git/internal/models"
)

// StockLister es lo que los handlers necesitan del servicio de acciones
type StockLister interface {
	Fetch(ctx context.Context) ([]models.Stock, error)
	Stocks() []models.Stock
	Status() models.StockListStatus
	Lookup(symbol string) (models.Stock, error)
}

// PortfolioStore es lo que los handlers necesitan del portafolio
type PortfolioStore interface {
	Add(stock models.Stock) (models.PortfolioEntry, models.PortfolioSnapshot)
	Snapshot() models.PortfolioSnapshot
	Subscribe() (<-chan models.PortfolioSnapshot, func())
}

// Handler agrupa los handlers HTTP de la API
type Handler struct {
	stocks    StockLister
	portfolio PortfolioStore
	updater   UpdaterStatus
	log       zerolog.Logger
}

// NewHandler crea los handlers con sus dependencias
func NewHandler(stocks StockLister, portfolio PortfolioStore, log zerolog.Logger) *Handler {
	return &Handler{
		stocks:    stocks,
		portfolio: portfolio,
		log:       log.With().Str("component", "http").Logger(),
	}
}
