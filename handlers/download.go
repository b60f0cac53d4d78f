package handlers

import (
	_ "embed"
	"errors"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"cadenza/services"
	"cadenza/types"
)

//go:embed index.html
var indexHTML []byte

// DownloadHandler handles the input form and download requests.
type DownloadHandler struct {
	downloader services.Downloader
	cleaner    services.Cleaner
	files      services.FileService
	dir        string
	logger     *log.Logger
}

// NewDownloadHandler creates a new download handler.
func NewDownloadHandler(dl services.Downloader, cl services.Cleaner, fs services.FileService, dir string, logger *log.Logger) *DownloadHandler {
	return &DownloadHandler{
		downloader: dl,
		cleaner:    cl,
		files:      fs,
		dir:        dir,
		logger:     logger,
	}
}

// Index serves the static input form.
func (h *DownloadHandler) Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

// Download runs the pipeline and streams the produced file back as an
// attachment. The file is scheduled for deletion regardless of whether the
// transmission succeeds.
func (h *DownloadHandler) Download(c *gin.Context) {
	var req types.DownloadRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid request body",
		})
		return
	}

	sourceURL := strings.TrimSpace(req.URL)
	if sourceURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Please provide a SoundCloud URL",
		})
		return
	}

	format := strings.ToLower(req.Format)
	if format == "" {
		format = types.FormatMP3
	}
	if !types.ValidFormat(format) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unsupported audio format",
		})
		return
	}

	// Invalid MP3 bitrates silently fall back to the default.
	quality := types.NormalizeQuality(req.Quality)

	h.logger.Printf("download request: %s -> %s (%s)", sourceURL, format, quality)

	result, err := h.downloader.Execute(c.Request.Context(), sourceURL, format, quality)
	if err != nil {
		h.renderFailure(c, err)
		return
	}

	path := filepath.Join(h.dir, result.Filename)

	// Ownership of the produced file moves to the deferred-removal timer.
	h.cleaner.ScheduleRemoval(result.Filename)

	if meta := h.files.ExtractMetadata(path); meta != nil {
		if meta.Title != "" {
			c.Header("X-Track-Title", meta.Title)
		}
		if meta.Artist != "" {
			c.Header("X-Track-Artist", meta.Artist)
		}
	}

	c.Header("Content-Type", h.files.ContentType(result.Filename))
	c.FileAttachment(path, result.Filename)
}

// renderFailure maps a pipeline error to a JSON error response. Failures
// attributable to the caller's input get 400, everything else 500.
func (h *DownloadHandler) renderFailure(c *gin.Context, err error) {
	var dlErr *types.DownloadError
	if errors.As(err, &dlErr) {
		status := http.StatusInternalServerError
		if dlErr.ClientFault() {
			status = http.StatusBadRequest
		}
		h.logger.Printf("download failed (%s): %v", dlErr.Kind, dlErr)
		c.JSON(status, gin.H{"error": dlErr.Error()})
		return
	}

	h.logger.Printf("unexpected download error: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "An unexpected error occurred",
	})
}
