package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	// Isolate from whatever the host environment carries.
	for _, key := range []string{
		"DOWNLOADS_DIR", "MAX_FILE_SIZE", "PORT", "CORS_ORIGINS",
		"DOWNLOAD_TIMEOUT", "INFO_TIMEOUT", "CLEANUP_DELAY", "SWEEP_MAX_AGE",
		"RATE_LIMIT_DEFAULT", "RATE_LIMIT_INFO", "RATE_LIMIT_DOWNLOAD",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "./downloads", cfg.DownloadsDir)
	assert.Equal(t, int64(100*1024*1024), cfg.MaxFileSize)
	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 300*time.Second, cfg.DownloadTimeout)
	assert.Equal(t, 30*time.Second, cfg.ProbeTimeout)
	assert.Equal(t, 60*time.Second, cfg.CleanupDelay)
	assert.Equal(t, time.Hour, cfg.SweepMaxAge)
	assert.Equal(t, "50-H", cfg.DefaultRate)
	assert.Equal(t, "10-M", cfg.InfoRate)
	assert.Equal(t, "5-M", cfg.DownloadRate)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DOWNLOADS_DIR", "/var/cache/cadenza")
	t.Setenv("MAX_FILE_SIZE", "1048576")
	t.Setenv("PORT", "9090")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("DOWNLOAD_TIMEOUT", "2m")
	t.Setenv("RATE_LIMIT_DOWNLOAD", "2-M")

	cfg := Load()

	assert.Equal(t, "/var/cache/cadenza", cfg.DownloadsDir)
	assert.Equal(t, int64(1048576), cfg.MaxFileSize)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 2*time.Minute, cfg.DownloadTimeout)
	assert.Equal(t, "2-M", cfg.DownloadRate)
}

func TestLoadIgnoresGarbage(t *testing.T) {
	t.Setenv("MAX_FILE_SIZE", "plenty")
	t.Setenv("DOWNLOAD_TIMEOUT", "soon")

	cfg := Load()

	assert.Equal(t, int64(100*1024*1024), cfg.MaxFileSize)
	assert.Equal(t, 300*time.Second, cfg.DownloadTimeout)
}
