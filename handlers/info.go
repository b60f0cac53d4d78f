package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cadenza/services"
	"cadenza/types"
)

// InfoHandler handles track-info lookups.
type InfoHandler struct {
	downloader services.Downloader
	logger     *log.Logger
}

// NewInfoHandler creates a new info handler.
func NewInfoHandler(dl services.Downloader, logger *log.Logger) *InfoHandler {
	return &InfoHandler{downloader: dl, logger: logger}
}

// TrackInfo returns track metadata without downloading. Probe failures of
// any kind collapse to a single client-facing error.
func (h *InfoHandler) TrackInfo(c *gin.Context) {
	var req types.InfoRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.URL) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "URL is required",
		})
		return
	}

	sourceURL := strings.TrimSpace(req.URL)
	if err := services.ValidateSourceURL(sourceURL); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	info, err := h.downloader.Probe(c.Request.Context(), sourceURL)
	if err != nil || info == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Could not retrieve track information",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"info":    info,
	})
}
