package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"cadenza/config"
	"cadenza/types"
)

// Downloader runs the download pipeline and track-info probes.
type Downloader interface {
	// Execute validates the URL, invokes the extraction tool and verifies
	// the produced file. The error, when non-nil, is a *types.DownloadError.
	Execute(ctx context.Context, sourceURL, format, quality string) (*types.DownloadResult, error)

	// Probe fetches track metadata without downloading anything.
	Probe(ctx context.Context, sourceURL string) (*types.TrackInfo, error)

	// MissingDependencies reports required tools absent from PATH.
	MissingDependencies() []string
}

type downloader struct {
	dir             string
	maxFileSize     int64
	downloadTimeout time.Duration
	probeTimeout    time.Duration
	runner          CommandRunner
	logger          *log.Logger
	probes          singleflight.Group
}

// NewDownloader creates a downloader writing into the configured output
// directory.
func NewDownloader(cfg *config.Config, runner CommandRunner, logger *log.Logger) Downloader {
	return &downloader{
		dir:             cfg.DownloadsDir,
		maxFileSize:     cfg.MaxFileSize,
		downloadTimeout: cfg.DownloadTimeout,
		probeTimeout:    cfg.ProbeTimeout,
		runner:          runner,
		logger:          logger,
	}
}

func (d *downloader) Execute(ctx context.Context, sourceURL, format, quality string) (*types.DownloadResult, error) {
	if err := ValidateSourceURL(sourceURL); err != nil {
		return nil, err
	}

	// Re-checked per invocation in case a tool disappeared mid-runtime.
	if missing := MissingTools(d.runner); len(missing) > 0 {
		return nil, &types.DownloadError{Kind: types.FailureMissingDependency, Detail: strings.Join(missing, ", ")}
	}

	format = strings.ToLower(format)
	quality = types.NormalizeQuality(quality)

	prefix := outputPrefix()
	template := filepath.Join(d.dir, prefix+"_%(title)s.%(ext)s")

	args := []string{
		"--extract-audio",
		"--audio-format", format,
		"--output", template,
		"--no-playlist",
		"--max-filesize", strconv.FormatInt(d.maxFileSize, 10),
	}
	if format == types.FormatMP3 {
		args = append(args, "--audio-quality", quality)
	}
	args = append(args, sourceURL)

	d.logger.Printf("starting download: %s -> %s (%s)", sourceURL, format, quality)

	runCtx, cancel := context.WithTimeout(ctx, d.downloadTimeout)
	defer cancel()

	res, err := d.runner.Run(runCtx, ToolExtractor, args...)
	if err != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return nil, &types.DownloadError{Kind: types.FailureTimeout}
		}
		return nil, classifyToolError(res.Stderr, err)
	}

	filename, err := d.findOutput(prefix, format)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(d.dir, filename)
	info, err := os.Stat(path)
	if err != nil {
		return nil, &types.DownloadError{Kind: types.FailureUnexpected, Detail: err.Error()}
	}

	if info.Size() > d.maxFileSize {
		if err := os.Remove(path); err != nil {
			d.logger.Printf("removing oversized file %s: %v", filename, err)
		}
		return nil, &types.DownloadError{Kind: types.FailureFileTooLarge}
	}

	d.logger.Printf("download completed: %s (%d bytes)", filename, info.Size())
	return &types.DownloadResult{Filename: filename, Size: info.Size()}, nil
}

func (d *downloader) Probe(ctx context.Context, sourceURL string) (*types.TrackInfo, error) {
	// Concurrent probes for the same URL share one tool invocation.
	v, err, _ := d.probes.Do(sourceURL, func() (interface{}, error) {
		runCtx, cancel := context.WithTimeout(ctx, d.probeTimeout)
		defer cancel()

		res, err := d.runner.Run(runCtx, ToolExtractor,
			"--print", "title",
			"--print", "duration",
			"--print", "uploader",
			"--no-download",
			sourceURL)
		if err != nil {
			return nil, fmt.Errorf("probing %s: %w", sourceURL, err)
		}

		lines := strings.Split(strings.TrimSpace(res.Stdout), "\n")
		info := &types.TrackInfo{Title: "Unknown", Duration: "Unknown", Uploader: "Unknown"}
		if len(lines) > 0 && lines[0] != "" {
			info.Title = lines[0]
		}
		if len(lines) > 1 {
			info.Duration = lines[1]
		}
		if len(lines) > 2 {
			info.Uploader = lines[2]
		}
		return info, nil
	})
	if err != nil {
		d.logger.Printf("track info lookup failed: %v", err)
		return nil, err
	}
	return v.(*types.TrackInfo), nil
}

func (d *downloader) MissingDependencies() []string {
	return MissingTools(d.runner)
}

// outputPrefix builds a collision-resistant filename prefix so concurrent
// downloads never clash in the shared output directory.
func outputPrefix() string {
	return time.Now().Format("20060102_150405") + "_" + uuid.New().String()[:8]
}

// findOutput locates the file the extraction tool produced for the given
// prefix and format. The tool documents that a successful run leaves
// exactly one such file behind.
func (d *downloader) findOutput(prefix, format string) (string, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return "", &types.DownloadError{Kind: types.FailureUnexpected, Detail: err.Error()}
	}

	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() && strings.HasPrefix(name, prefix) && strings.HasSuffix(name, "."+format) {
			return name, nil
		}
	}

	return "", &types.DownloadError{Kind: types.FailureOutputNotFound}
}

// classifyToolError maps the extraction tool's diagnostic text onto a
// failure kind. The substring matching is a best-effort heuristic against
// output that is not a stable contract; unmatched text falls through to a
// generic tool failure carrying the raw diagnostics.
func classifyToolError(stderr string, runErr error) *types.DownloadError {
	switch {
	case strings.Contains(stderr, "Private video"), strings.Contains(stderr, "not available"):
		return &types.DownloadError{Kind: types.FailureSourceUnavailable}
	case strings.Contains(stderr, "Unsupported URL"):
		return &types.DownloadError{Kind: types.FailureUnsupportedSource}
	}

	detail := strings.TrimSpace(stderr)
	if detail == "" {
		detail = runErr.Error()
	}
	return &types.DownloadError{Kind: types.FailureExternalTool, Detail: detail}
}
