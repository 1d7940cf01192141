package middleware

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AgusMolinaCode/Diversity_Api.git/internal/models"
	"github.com/AgusMolinaCode/Diversity_Api.git/internal/services"
)

// AddToPortfolio copia una acción de la lista obtenida al portafolio
func (h *Handler) AddToPortfolio(c *gin.Context) {
	var request struct {
		Symbol string `json:"symbol" binding:"required"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stock, err := h.stocks.Lookup(request.Symbol)
	if errors.Is(err, services.ErrStockNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	entry, snapshot := h.portfolio.Add(stock)
	h.log.Info().
		Str("symbol", stock.Symbol).
		Str("sector", stock.Sector).
		Float64("score", snapshot.DiversityScore).
		Msg("Acción agregada al portafolio")

	c.JSON(http.StatusCreated, gin.H{
		"entry":     entry,
		"portfolio": snapshot,
	})
}

// GetPortfolio devuelve el portafolio con sus valores derivados
func (h *Handler) GetPortfolio(c *gin.Context) {
	c.JSON(http.StatusOK, h.portfolio.Snapshot())
}

// GetDiversity devuelve el puntaje de diversificación y los pesos por sector
func (h *Handler) GetDiversity(c *gin.Context) {
	snapshot := h.portfolio.Snapshot()

	c.JSON(http.StatusOK, models.DiversityResult{
		Score:         snapshot.DiversityScore,
		ScoreDisplay:  snapshot.ScoreDisplay,
		TotalValue:    snapshot.TotalValue,
		SectorWeights: snapshot.SectorWeights,
	})
}

// GetChart devuelve los datos del gráfico de torta por sector
func (h *Handler) GetChart(c *gin.Context) {
	c.JSON(http.StatusOK, h.portfolio.Snapshot().ChartData)
}

// StreamPortfolio envía por Server-Sent Events la vista actual y luego una por cada cambio
func (h *Handler) StreamPortfolio(c *gin.Context) {
	updates, cancel := h.portfolio.Subscribe()
	defer cancel()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.SSEvent("snapshot", h.portfolio.Snapshot())
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case snapshot, ok := <-updates:
			if !ok {
				return false
			}
			c.SSEvent("snapshot", snapshot)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
