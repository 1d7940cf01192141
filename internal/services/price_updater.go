package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// CachePurger elimina las cotizaciones vencidas del caché
type CachePurger interface {
	PurgeExpired() (int64, error)
}

// PriceUpdater vuelve a obtener la lista de acciones periódicamente.
// Las tenencias del portafolio son copias y no cambian con la actualización
type PriceUpdater struct {
	interval    time.Duration
	timeout     time.Duration
	stocks      *StockService
	purger      CachePurger
	isRunning   bool
	stopChan    chan struct{}
	done        chan struct{}
	mutex       sync.Mutex
	lastUpdated time.Time
	log         zerolog.Logger
}

// NewPriceUpdater crea un nuevo servicio de actualización de precios. purger es opcional
func NewPriceUpdater(interval, timeout time.Duration, stocks *StockService, purger CachePurger, log zerolog.Logger) *PriceUpdater {
	return &PriceUpdater{
		interval: interval,
		timeout:  timeout,
		stocks:   stocks,
		purger:   purger,
		log:      log.With().Str("component", "price_updater").Logger(),
	}
}

// Start inicia el servicio de actualización de precios
func (p *PriceUpdater) Start() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.isRunning || p.interval <= 0 {
		return
	}

	p.isRunning = true
	p.stopChan = make(chan struct{})
	p.done = make(chan struct{})

	go func(stop <-chan struct{}, done chan<- struct{}) {
		defer close(done)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		// Actualizar inmediatamente al iniciar
		p.update(stop)

		for {
			select {
			case <-ticker.C:
				p.update(stop)
			case <-stop:
				return
			}
		}
	}(p.stopChan, p.done)

	p.log.Info().Dur("interval", p.interval).Msg("Servicio de actualización de precios iniciado")
}

// Stop detiene el servicio y espera a que termine la actualización en curso
func (p *PriceUpdater) Stop() {
	p.mutex.Lock()
	if !p.isRunning {
		p.mutex.Unlock()
		return
	}
	p.isRunning = false
	close(p.stopChan)
	done := p.done
	p.mutex.Unlock()

	<-done
	p.log.Info().Msg("Servicio de actualización de precios detenido")
}

// GetLastUpdated obtiene la última vez que se actualizaron los precios con éxito
func (p *PriceUpdater) GetLastUpdated() time.Time {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return p.lastUpdated
}

func (p *PriceUpdater) update(stop <-chan struct{}) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	// Cancelar la obtención si se detiene el servicio
	go func() {
		select {
		case <-stop:
			cancel()
		case <-ctx.Done():
		}
	}()

	if p.purger != nil {
		if purged, err := p.purger.PurgeExpired(); err != nil {
			p.log.Warn().Err(err).Msg("Error al purgar el caché de cotizaciones")
		} else if purged > 0 {
			p.log.Debug().Int64("purged", purged).Msg("Cotizaciones vencidas eliminadas")
		}
	}

	stocks, err := p.stocks.Fetch(ctx)
	if errors.Is(err, ErrFetchInProgress) {
		p.log.Debug().Msg("Obtención manual en curso, se omite la actualización")
		return
	}
	if err != nil {
		p.log.Warn().Err(err).Msg("Error al actualizar los precios")
		return
	}

	p.mutex.Lock()
	p.lastUpdated = time.Now()
	p.mutex.Unlock()

	p.log.Info().Int("count", len(stocks)).Msg("Actualización de precios completada")
}
