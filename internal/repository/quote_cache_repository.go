package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/AgusMolinaCode/Diversity_Api.git/internal/models"
)

// QuoteCacheRepository guarda en SQLite el precio y sector de cada símbolo con un tiempo de vida
type QuoteCacheRepository struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// NewQuoteCacheRepository crea un nuevo repositorio de caché de cotizaciones
func NewQuoteCacheRepository(db *sql.DB, ttl time.Duration) *QuoteCacheRepository {
	return &QuoteCacheRepository{
		db:  db,
		ttl: ttl,
		now: time.Now,
	}
}

// GetIfFresh devuelve la cotización guardada si todavía no venció
func (r *QuoteCacheRepository) GetIfFresh(symbol string) (models.Stock, bool, error) {
	query := `
		SELECT symbol, price, sector, fetched_at
		FROM quote_cache
		WHERE symbol = ?
	`

	var stock models.Stock
	var fetchedAt int64
	err := r.db.QueryRow(query, symbol).Scan(&stock.Symbol, &stock.Price, &stock.Sector, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Stock{}, false, nil
	}
	if err != nil {
		return models.Stock{}, false, err
	}

	if r.now().Sub(time.Unix(0, fetchedAt)) >= r.ttl {
		return models.Stock{}, false, nil
	}

	return stock, true, nil
}

// Store guarda o reemplaza la cotización de un símbolo
func (r *QuoteCacheRepository) Store(stock models.Stock) error {
	query := `
		INSERT INTO quote_cache (symbol, price, sector, fetched_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(symbol) DO UPDATE SET
			price = excluded.price,
			sector = excluded.sector,
			fetched_at = excluded.fetched_at
	`

	_, err := r.db.Exec(query, stock.Symbol, stock.Price, stock.Sector, r.now().UnixNano())
	return err
}

// PurgeExpired elimina las cotizaciones vencidas y devuelve cuántas se borraron
func (r *QuoteCacheRepository) PurgeExpired() (int64, error) {
	cutoff := r.now().Add(-r.ttl).UnixNano()

	result, err := r.db.Exec(`DELETE FROM quote_cache WHERE fetched_at <= ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
