package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/AgusMolinaCode/Diversity_Api.git/internal/models"
)

// ErrMissingAPIKey se devuelve cuando no hay token de Finnhub configurado
var ErrMissingAPIKey = errors.New("la API key de Finnhub no está definida")

// QuoteCache guarda el precio y sector de cada símbolo por un tiempo limitado
type QuoteCache interface {
	GetIfFresh(symbol string) (models.Stock, bool, error)
	Store(stock models.Stock) error
}

// FinnhubConfig contiene los parámetros del cliente de Finnhub
type FinnhubConfig struct {
	BaseURL     string
	APIKey      string
	Exchange    string
	Limit       int // Cantidad de símbolos que se toman del listado
	Concurrency int // Máximo de símbolos consultados en paralelo
	Timeout     time.Duration
}

// FinnhubClient obtiene símbolos, cotizaciones y sectores desde la API de Finnhub
type FinnhubClient struct {
	baseURL     string
	apiKey      string
	exchange    string
	limit       int
	concurrency int
	client      *http.Client
	cache       QuoteCache
	log         zerolog.Logger
}

type finnhubSymbol struct {
	Symbol string `json:"symbol"`
}

type finnhubQuote struct {
	Current float64 `json:"c"` // Precio actual
}

type finnhubProfile struct {
	Industry string `json:"finnhubIndustry"`
}

// NewFinnhubClient crea un nuevo cliente. cache es opcional, con nil no se cachea
func NewFinnhubClient(cfg FinnhubConfig, cache QuoteCache, log zerolog.Logger) *FinnhubClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	return &FinnhubClient{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		exchange:    cfg.Exchange,
		limit:       cfg.Limit,
		concurrency: concurrency,
		client:      &http.Client{Timeout: timeout},
		cache:       cache,
		log:         log.With().Str("client", "finnhub").Logger(),
	}
}

// FetchStocks obtiene el listado de símbolos y, para los primeros Limit, su precio y sector.
// Las consultas por símbolo se hacen en paralelo; cualquier error cancela el resto
// y no se devuelven resultados parciales
func (c *FinnhubClient) FetchStocks(ctx context.Context) ([]models.Stock, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	symbols, err := c.FetchSymbols(ctx)
	if err != nil {
		return nil, err
	}
	if c.limit > 0 && len(symbols) > c.limit {
		symbols = symbols[:c.limit]
	}

	stocks := make([]models.Stock, len(symbols))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, symbol := range symbols {
		g.Go(func() error {
			stock, err := c.FetchStock(gctx, symbol)
			if err != nil {
				return err
			}
			stocks[i] = stock
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		c.log.Error().Err(err).Int("symbols", len(symbols)).Msg("Error al obtener las acciones")
		return nil, err
	}

	c.log.Info().Int("count", len(stocks)).Str("exchange", c.exchange).Msg("Acciones obtenidas")
	return stocks, nil
}

// FetchSymbols devuelve los símbolos del exchange configurado en el orden de la API
func (c *FinnhubClient) FetchSymbols(ctx context.Context) ([]string, error) {
	var listing []finnhubSymbol
	if err := c.get(ctx, "/stock/symbol", url.Values{"exchange": {c.exchange}}, &listing); err != nil {
		return nil, fmt.Errorf("error al obtener el listado de símbolos: %w", err)
	}

	symbols := make([]string, 0, len(listing))
	for _, s := range listing {
		if s.Symbol != "" {
			symbols = append(symbols, s.Symbol)
		}
	}
	return symbols, nil
}

// FetchStock obtiene precio y sector de un símbolo, usando el caché si está fresco
func (c *FinnhubClient) FetchStock(ctx context.Context, symbol string) (models.Stock, error) {
	if c.cache != nil {
		cached, ok, err := c.cache.GetIfFresh(symbol)
		if err != nil {
			c.log.Warn().Err(err).Str("symbol", symbol).Msg("Error al leer el caché de cotizaciones")
		} else if ok {
			c.log.Debug().Str("symbol", symbol).Msg("Cotización obtenida del caché")
			return cached, nil
		}
	}

	price, err := c.FetchQuote(ctx, symbol)
	if err != nil {
		return models.Stock{}, err
	}
	sector, err := c.FetchSector(ctx, symbol)
	if err != nil {
		return models.Stock{}, err
	}

	stock := models.Stock{Symbol: symbol, Price: price, Sector: sector}

	if c.cache != nil {
		if err := c.cache.Store(stock); err != nil {
			c.log.Warn().Err(err).Str("symbol", symbol).Msg("Error al guardar en el caché de cotizaciones")
		}
	}

	return stock, nil
}

// FetchQuote devuelve el precio actual de un símbolo
func (c *FinnhubClient) FetchQuote(ctx context.Context, symbol string) (float64, error) {
	var quote finnhubQuote
	if err := c.get(ctx, "/quote", url.Values{"symbol": {symbol}}, &quote); err != nil {
		return 0, fmt.Errorf("error al obtener la cotización de %s: %w", symbol, err)
	}
	return quote.Current, nil
}

// FetchSector devuelve la industria del perfil de la empresa, o "N/A" si no la tiene
func (c *FinnhubClient) FetchSector(ctx context.Context, symbol string) (string, error) {
	var profile finnhubProfile
	if err := c.get(ctx, "/stock/profile2", url.Values{"symbol": {symbol}}, &profile); err != nil {
		return "", fmt.Errorf("error al obtener el perfil de %s: %w", symbol, err)
	}

	if profile.Industry == "" {
		return models.SectorNotAvailable, nil
	}
	return profile.Industry, nil
}

func (c *FinnhubClient) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	if c.apiKey == "" {
		return ErrMissingAPIKey
	}

	params.Set("token", c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		// url.Error incluye la URL con el token, no debe llegar al cliente
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			return fmt.Errorf("error de red: %w", urlErr.Err)
		}
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Leer el cuerpo para que la conexión pueda reutilizarse
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("la API respondió con estado %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("respuesta inválida: %w", err)
	}
	return nil
}
