package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AgusMolinaCode/Diversity_Api.git/internal/services"
)

const retryLaterSuffix = ". Intente nuevamente más tarde."

// FetchStocks obtiene una lista nueva de acciones desde la fuente de cotizaciones
func (h *Handler) FetchStocks(c *gin.Context) {
	stocks, err := h.stocks.Fetch(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFetchInProgress):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrMissingAPIKey):
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error() + retryLaterSuffix})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error() + retryLaterSuffix})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stocks": stocks,
		"status": h.stocks.Status(),
	})
}

// GetStocks devuelve la última lista de acciones obtenida
func (h *Handler) GetStocks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"stocks": h.stocks.Stocks(),
		"status": h.stocks.Status(),
	})
}

// GetStockStatus devuelve el estado de carga y el último error
func (h *Handler) GetStockStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.stocks.Status())
}
