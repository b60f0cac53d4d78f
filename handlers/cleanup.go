package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cadenza/services"
)

// CleanupHandler handles the on-demand stale-file sweep.
type CleanupHandler struct {
	cleaner services.Cleaner
	maxAge  time.Duration
	logger  *log.Logger
}

// NewCleanupHandler creates a new cleanup handler.
func NewCleanupHandler(cl services.Cleaner, maxAge time.Duration, logger *log.Logger) *CleanupHandler {
	return &CleanupHandler{cleaner: cl, maxAge: maxAge, logger: logger}
}

// Sweep deletes stale files from the output directory and reports the count.
func (h *CleanupHandler) Sweep(c *gin.Context) {
	cleaned, err := h.cleaner.Sweep(h.maxAge)
	if err != nil {
		h.logger.Printf("sweep failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Cleanup failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"cleaned_files": cleaned,
	})
}
