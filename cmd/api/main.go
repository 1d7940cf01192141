package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AgusMolinaCode/Diversity_Api.git/internal/config"
	"github.com/AgusMolinaCode/Diversity_Api.git/internal/database"
	"github.com/AgusMolinaCode/Diversity_Api.git/internal/logger"
	"github.com/AgusMolinaCode/Diversity_Api.git/internal/middleware"
	"github.com/AgusMolinaCode/Diversity_Api.git/internal/repository"
	routes "github.com/AgusMolinaCode/Diversity_Api.git/internal/server"
	"github.com/AgusMolinaCode/Diversity_Api.git/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Cargar configuración (variables de entorno y .env opcional)
	cfg, err := config.Load()
	if err != nil {
		stderrLog := zerolog.New(os.Stderr)
		stderrLog.Error().Err(err).Msg("Configuración inválida")
		return 1
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	logger.SetGlobalLogger(log)

	if cfg.FinnhubAPIKey == "" {
		log.Warn().Msg("FINNHUB_API_KEY no está definida, la obtención de acciones va a fallar")
	}

	// Caché de cotizaciones: SQLite si hay ruta configurada, si no en memoria
	var (
		cache  services.QuoteCache
		purger services.CachePurger
	)
	if cfg.QuoteCacheDB != "" {
		db, err := database.InitDB(cfg.QuoteCacheDB)
		if err != nil {
			log.Error().Err(err).Str("path", cfg.QuoteCacheDB).Msg("Error al inicializar la base de datos")
			return 1
		}
		defer db.Close()

		repo := repository.NewQuoteCacheRepository(db, cfg.QuoteCacheTTL)
		cache, purger = repo, repo
		log.Info().Str("path", cfg.QuoteCacheDB).Msg("Caché de cotizaciones en SQLite")
	} else {
		memory := services.NewMemoryQuoteCache(cfg.QuoteCacheTTL)
		cache, purger = memory, memory
	}

	client := services.NewFinnhubClient(services.FinnhubConfig{
		BaseURL:     cfg.FinnhubBaseURL,
		APIKey:      cfg.FinnhubAPIKey,
		Exchange:    cfg.Exchange,
		Limit:       cfg.StockLimit,
		Concurrency: cfg.FetchConcurrency,
		Timeout:     cfg.HTTPTimeout,
	}, cache, log)

	stockService := services.NewStockService(client, log)
	portfolio := repository.NewPortfolioRepository()
	handler := middleware.NewHandler(stockService, portfolio, log)

	// Iniciar la actualización periódica de precios si está configurada
	if cfg.RefreshInterval > 0 {
		priceUpdater := services.NewPriceUpdater(cfg.RefreshInterval, 2*cfg.HTTPTimeout, stockService, purger, log)
		priceUpdater.Start()
		defer priceUpdater.Stop()

		handler.SetPriceUpdater(priceUpdater)
	}

	gin.SetMode(gin.ReleaseMode)
	router := routes.NewRouter(cfg.CORSOrigins, handler, log)

	// Las conexiones de eventos terminan cuando se cancela el contexto base
	baseCtx, cancelBase := context.WithCancel(context.Background())
	srv := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     router,
		BaseContext: func(net.Listener) context.Context { return baseCtx },
	}
	srv.RegisterOnShutdown(cancelBase)

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Servidor iniciado")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Esperar señal de apagado o un error del servidor
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		// Volver de run para que corran los defer (base de datos, actualizador)
		log.Error().Err(err).Msg("Error al iniciar el servidor")
		cancelBase()
		return 1
	case <-quit:
	}

	log.Info().Msg("Apagando el servidor")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error al apagar el servidor")
		return 1
	}
	return 0
}
