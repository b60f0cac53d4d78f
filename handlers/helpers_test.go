package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"cadenza/services"
	"cadenza/types"
)

// fakeDownloader stands in for the pipeline so handler behavior can be
// tested without a toolchain.
type fakeDownloader struct {
	executeCalls int
	gotURL       string
	gotFormat    string
	gotQuality   string
	result       *types.DownloadResult
	err          error
	info         *types.TrackInfo
	infoErr      error
	missing      []string
}

func (f *fakeDownloader) Execute(ctx context.Context, sourceURL, format, quality string) (*types.DownloadResult, error) {
	f.executeCalls++
	f.gotURL, f.gotFormat, f.gotQuality = sourceURL, format, quality
	return f.result, f.err
}

func (f *fakeDownloader) Probe(ctx context.Context, sourceURL string) (*types.TrackInfo, error) {
	return f.info, f.infoErr
}

func (f *fakeDownloader) MissingDependencies() []string {
	return f.missing
}

type fakeCleaner struct {
	scheduled []string
	swept     int
	sweepErr  error
}

func (f *fakeCleaner) ScheduleRemoval(filename string) *time.Timer {
	f.scheduled = append(f.scheduled, filename)
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	return timer
}

func (f *fakeCleaner) Sweep(olderThan time.Duration) (int, error) {
	return f.swept, f.sweepErr
}

func newTestRouter(dl services.Downloader, cl services.Cleaner, dir string, sweepAge time.Duration) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := log.New(io.Discard, "", 0)

	downloadHandler := NewDownloadHandler(dl, cl, services.NewFileService(logger), dir, logger)
	infoHandler := NewInfoHandler(dl, logger)
	healthHandler := NewHealthHandler(dl)
	cleanupHandler := NewCleanupHandler(cl, sweepAge, logger)

	r := gin.New()
	r.GET("/", downloadHandler.Index)
	r.POST("/", downloadHandler.Download)
	r.POST("/info", infoHandler.TrackInfo)
	r.GET("/health", healthHandler.HealthCheck)
	r.GET("/cleanup", cleanupHandler.Sweep)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doForm(t *testing.T, r *gin.Engine, path, form string) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, path, strings.NewReader(form))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
