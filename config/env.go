package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the environment-sourced settings the services and handlers
// are constructed with. It is built once in main and passed down; nothing
// reads the environment after startup.
type Config struct {
	DownloadsDir string
	MaxFileSize  int64
	Port         int
	CORSOrigins  []string

	DownloadTimeout time.Duration
	ProbeTimeout    time.Duration
	CleanupDelay    time.Duration
	SweepMaxAge     time.Duration

	// Rate ceilings in ulule/limiter formatted notation ("5-M" = 5/minute).
	DefaultRate  string
	InfoRate     string
	DownloadRate string
}

// Load builds a Config from environment variables, falling back to
// defaults for anything unset.
func Load() *Config {
	return &Config{
		DownloadsDir:    envString("DOWNLOADS_DIR", "./downloads"),
		MaxFileSize:     envInt64("MAX_FILE_SIZE", 100*1024*1024),
		Port:            int(envInt64("PORT", 5000)),
		CORSOrigins:     strings.Split(envString("CORS_ORIGINS", "*"), ","),
		DownloadTimeout: envDuration("DOWNLOAD_TIMEOUT", 300*time.Second),
		ProbeTimeout:    envDuration("INFO_TIMEOUT", 30*time.Second),
		CleanupDelay:    envDuration("CLEANUP_DELAY", 60*time.Second),
		SweepMaxAge:     envDuration("SWEEP_MAX_AGE", time.Hour),
		DefaultRate:     envString("RATE_LIMIT_DEFAULT", "50-H"),
		InfoRate:        envString("RATE_LIMIT_INFO", "10-M"),
		DownloadRate:    envString("RATE_LIMIT_DOWNLOAD", "5-M"),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
