package repository

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AgusMolinaCode/Diversity_Api.git/internal/diversity"
	"github.com/AgusMolinaCode/Diversity_Api.git/internal/models"
)

// PortfolioRepository mantiene el portafolio en memoria durante la vida del proceso.
// Cada alta recalcula la vista derivada y la envía a los suscriptores
type PortfolioRepository struct {
	mutex       sync.RWMutex
	holdings    []models.Stock
	entries     []models.PortfolioEntry
	snapshot    models.PortfolioSnapshot
	subscribers map[int]chan models.PortfolioSnapshot
	nextSubID   int
	now         func() time.Time
}

// NewPortfolioRepository crea un portafolio vacío
func NewPortfolioRepository() *PortfolioRepository {
	r := &PortfolioRepository{
		subscribers: make(map[int]chan models.PortfolioSnapshot),
		now:         time.Now,
	}
	r.snapshot = buildSnapshot(nil, nil, r.now())
	return r
}

// Add agrega una copia de la acción al final del portafolio y devuelve la entrada creada
// junto con la vista recalculada. Agregar el mismo símbolo dos veces crea dos entradas
func (r *PortfolioRepository) Add(stock models.Stock) (models.PortfolioEntry, models.PortfolioSnapshot) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	entry := models.PortfolioEntry{
		ID:      uuid.NewString(),
		Stock:   stock,
		Label:   diversity.FormatLabel(stock),
		AddedAt: r.now(),
	}

	r.holdings = diversity.AddHolding(r.holdings, stock)
	entries := make([]models.PortfolioEntry, len(r.entries), len(r.entries)+1)
	copy(entries, r.entries)
	r.entries = append(entries, entry)

	// Recalcular inmediatamente después de cada cambio
	r.snapshot = buildSnapshot(r.holdings, r.entries, entry.AddedAt)
	r.notify(r.snapshot)

	return entry, r.snapshot
}

// Snapshot devuelve la última vista calculada del portafolio
func (r *PortfolioRepository) Snapshot() models.PortfolioSnapshot {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return r.snapshot
}

// Holdings devuelve una copia de las tenencias en orden de inserción
func (r *PortfolioRepository) Holdings() []models.Stock {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	holdings := make([]models.Stock, len(r.holdings))
	copy(holdings, r.holdings)
	return holdings
}

// Subscribe registra un observador de cambios. El canal recibe la vista recalculada
// en cada alta; si el lector se atrasa solo se conserva la más reciente.
// La función devuelta cancela la suscripción y cierra el canal
func (r *PortfolioRepository) Subscribe() (<-chan models.PortfolioSnapshot, func()) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	id := r.nextSubID
	r.nextSubID++
	ch := make(chan models.PortfolioSnapshot, 1)
	r.subscribers[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			r.mutex.Lock()
			defer r.mutex.Unlock()

			delete(r.subscribers, id)
			close(ch)
		})
	}

	return ch, cancel
}

// notify se llama con el mutex tomado
func (r *PortfolioRepository) notify(snapshot models.PortfolioSnapshot) {
	for _, ch := range r.subscribers {
		select {
		case ch <- snapshot:
			continue
		default:
		}

		// Descartar la vista pendiente y dejar la nueva
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snapshot:
		default:
		}
	}
}

func buildSnapshot(holdings []models.Stock, entries []models.PortfolioEntry, at time.Time) models.PortfolioSnapshot {
	result := diversity.Score(holdings)

	if entries == nil {
		entries = []models.PortfolioEntry{}
	}

	return models.PortfolioSnapshot{
		Entries:        entries,
		TotalValue:     result.TotalValue,
		SectorWeights:  result.SectorWeights,
		Distribution:   diversity.BuildDistribution(result),
		DiversityScore: result.Score,
		ScoreDisplay:   diversity.FormatScore(result.Score),
		ChartData:      diversity.BuildChartData(result),
		UpdatedAt:      at,
	}
}
