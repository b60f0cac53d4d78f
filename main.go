package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"

	"cadenza/cmd"
	"cadenza/config"
	"cadenza/services"
	"cadenza/types"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := log.New(os.Stdout, "", log.LstdFlags)

	var (
		sourceURL string
		format    string
		quality   string
		port      int
	)

	flag.StringVar(&sourceURL, "url", "", "Source URL to download (CLI mode)")
	flag.StringVar(&format, "format", types.FormatMP3, "Audio format (mp3, wav, aac)")
	flag.StringVar(&quality, "quality", types.DefaultQuality, "MP3 bitrate (128, 192, 256, 320)")
	flag.IntVar(&port, "port", 0, "Port for web server mode (overrides PORT)")
	flag.Parse()

	if port != 0 {
		cfg.Port = port
	}

	if err := os.MkdirAll(cfg.DownloadsDir, 0o755); err != nil {
		logger.Fatalf("cannot create downloads directory %s: %v", cfg.DownloadsDir, err)
	}

	if sourceURL != "" {
		runDownload(cfg, logger, sourceURL, format, quality)
		return
	}

	cmd.StartWebServer(cfg, logger)
}

// runDownload drives the pipeline from the terminal, spinning while the
// subprocess blocks.
func runDownload(cfg *config.Config, logger *log.Logger, sourceURL, format, quality string) {
	format = strings.ToLower(format)
	if !types.ValidFormat(format) {
		logger.Fatalf("unsupported audio format %q (want mp3, wav or aac)", format)
	}

	downloader := services.NewDownloader(cfg, services.NewCommandRunner(), logger)

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("downloading"),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWriter(os.Stderr),
	)
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}()

	result, err := downloader.Execute(context.Background(), sourceURL, format, types.NormalizeQuality(quality))
	close(done)
	_ = bar.Finish()
	fmt.Fprintln(os.Stderr)

	if err != nil {
		logger.Fatalf("download failed: %v", err)
	}

	fmt.Printf("%s (%d bytes)\n", filepath.Join(cfg.DownloadsDir, result.Filename), result.Size)
}
