package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// UpdaterStatus es la parte del actualizador de precios que expone la API
type UpdaterStatus interface {
	GetLastUpdated() time.Time
}

// SetPriceUpdater registra el actualizador de precios para informar su estado
func (h *Handler) SetPriceUpdater(updater UpdaterStatus) {
	h.updater = updater
}

// GetUpdaterStatus informa si la actualización periódica está activa y cuándo corrió por última vez
func (h *Handler) GetUpdaterStatus(c *gin.Context) {
	if h.updater == nil {
		c.JSON(http.StatusOK, gin.H{"enabled": false})
		return
	}

	response := gin.H{"enabled": true}
	if last := h.updater.GetLastUpdated(); !last.IsZero() {
		response["last_updated"] = last.Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, response)
}
