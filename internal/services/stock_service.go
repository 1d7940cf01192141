package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/AgusMolinaCode/Diversity_Api.git/internal/models"
)

var (
	// ErrFetchInProgress se devuelve si se pide una obtención mientras otra está en curso
	ErrFetchInProgress = errors.New("ya hay una obtención de acciones en curso")
	// ErrStockNotFound se devuelve cuando el símbolo no está en la lista obtenida
	ErrStockNotFound = errors.New("la acción no está en la lista obtenida")
)

// QuoteSource entrega la lista completa de acciones o un único error
type QuoteSource interface {
	FetchStocks(ctx context.Context) ([]models.Stock, error)
}

// StockService mantiene la última lista de acciones obtenida de la fuente de cotizaciones
type StockService struct {
	source      QuoteSource
	loading     atomic.Bool
	mutex       sync.RWMutex
	stocks      []models.Stock
	lastError   string
	lastFetched time.Time
	log         zerolog.Logger
	now         func() time.Time
}

// NewStockService crea el servicio con la lista vacía
func NewStockService(source QuoteSource, log zerolog.Logger) *StockService {
	return &StockService{
		source: source,
		stocks: []models.Stock{},
		log:    log.With().Str("component", "stock_service").Logger(),
		now:    time.Now,
	}
}

// Fetch obtiene una lista nueva y reemplaza la anterior.
// Si falla, la lista anterior se conserva y el error queda registrado
func (s *StockService) Fetch(ctx context.Context) ([]models.Stock, error) {
	if !s.loading.CompareAndSwap(false, true) {
		return nil, ErrFetchInProgress
	}
	defer s.loading.Store(false)

	s.mutex.Lock()
	s.lastError = ""
	s.mutex.Unlock()

	stocks, err := s.source.FetchStocks(ctx)

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err != nil {
		s.lastError = err.Error()
		s.log.Error().Err(err).Msg("Error al obtener la lista de acciones")
		return nil, err
	}

	if stocks == nil {
		stocks = []models.Stock{}
	}
	s.stocks = stocks
	s.lastFetched = s.now()
	s.log.Info().Int("count", len(stocks)).Msg("Lista de acciones actualizada")

	return s.copyStocks(), nil
}

// Stocks devuelve una copia de la última lista obtenida
func (s *StockService) Stocks() []models.Stock {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.copyStocks()
}

// Lookup busca la primera acción con el símbolo dado en la lista actual
func (s *StockService) Lookup(symbol string) (models.Stock, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	for _, stock := range s.stocks {
		if stock.Symbol == symbol {
			return stock, nil
		}
	}
	return models.Stock{}, ErrStockNotFound
}

// Loading indica si hay una obtención en curso
func (s *StockService) Loading() bool {
	return s.loading.Load()
}

// Status devuelve el estado de carga, el último error y la fecha de la última obtención
func (s *StockService) Status() models.StockListStatus {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	status := models.StockListStatus{
		Loading:   s.loading.Load(),
		LastError: s.lastError,
		Count:     len(s.stocks),
	}
	if !s.lastFetched.IsZero() {
		fetchedAt := s.lastFetched.Format(time.RFC3339)
		status.LastFetchedAt = &fetchedAt
	}
	return status
}

func (s *StockService) copyStocks() []models.Stock {
	stocks := make([]models.Stock, len(s.stocks))
	copy(stocks, s.stocks)
	return stocks
}
