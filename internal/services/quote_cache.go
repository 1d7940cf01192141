package services

import (
	"sync"
	"time"

	"github.com/AgusMolinaCode/Diversity_Api.git/internal/models"
)

// MemoryQuoteCache es un caché de cotizaciones en memoria con tiempo de vida
type MemoryQuoteCache struct {
	ttl     time.Duration
	entries map[string]cachedQuote
	mutex   sync.RWMutex
	now     func() time.Time
}

type cachedQuote struct {
	Stock     models.Stock
	Timestamp time.Time
}

// NewMemoryQuoteCache crea un caché vacío. Con ttl en cero nunca devuelve aciertos
func NewMemoryQuoteCache(ttl time.Duration) *MemoryQuoteCache {
	return &MemoryQuoteCache{
		ttl:     ttl,
		entries: make(map[string]cachedQuote),
		now:     time.Now,
	}
}

// GetIfFresh devuelve la cotización si es más reciente que el tiempo de vida
func (c *MemoryQuoteCache) GetIfFresh(symbol string) (models.Stock, bool, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	cached, exists := c.entries[symbol]
	if !exists || c.now().Sub(cached.Timestamp) >= c.ttl {
		return models.Stock{}, false, nil
	}
	return cached.Stock, true, nil
}

// Store guarda o reemplaza la cotización de un símbolo
func (c *MemoryQuoteCache) Store(stock models.Stock) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[stock.Symbol] = cachedQuote{
		Stock:     stock,
		Timestamp: c.now(),
	}
	return nil
}

// PurgeExpired elimina las cotizaciones vencidas y devuelve cuántas se borraron
func (c *MemoryQuoteCache) PurgeExpired() (int64, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	var purged int64
	for symbol, cached := range c.entries {
		if c.now().Sub(cached.Timestamp) >= c.ttl {
			delete(c.entries, symbol)
			purged++
		}
	}
	return purged, nil
}
