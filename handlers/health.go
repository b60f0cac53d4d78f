package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cadenza/services"
)

// HealthHandler handles the liveness probe.
type HealthHandler struct {
	downloader services.Downloader
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(dl services.Downloader) *HealthHandler {
	return &HealthHandler{downloader: dl}
}

// HealthCheck reports whether the external toolchain is present.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	if missing := h.downloader.MissingDependencies(); len(missing) > 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":               "unhealthy",
			"missing_dependencies": missing,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       "healthy",
		"timestamp":    time.Now().Format(time.RFC3339),
		"dependencies": services.RequiredTools,
	})
}
