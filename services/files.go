package services

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"

	"cadenza/types"
)

// FileService resolves MIME types and tag metadata for produced audio files.
type FileService interface {
	ContentType(filename string) string
	ExtractMetadata(path string) *types.AudioMetadata
}

type fileService struct {
	logger *log.Logger
}

// NewFileService creates a new file service.
func NewFileService(logger *log.Logger) FileService {
	return &fileService{logger: logger}
}

// ContentType returns the transport MIME type for a produced file,
// audio/<format> by extension.
func (fs *fileService) ContentType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".mp3", ".wav", ".aac":
		return "audio/" + strings.TrimPrefix(ext, ".")
	}
	return "application/octet-stream"
}

// ExtractMetadata reads title/artist tags from a produced file. Returns nil
// when the file has no readable tags; callers treat that as "no metadata".
func (fs *fileService) ExtractMetadata(path string) *types.AudioMetadata {
	file, err := os.Open(path)
	if err != nil {
		fs.logger.Printf("could not open %s for tag reading: %v", filepath.Base(path), err)
		return nil
	}
	defer file.Close()

	meta, err := tag.ReadFrom(file)
	if err != nil {
		return nil
	}

	return &types.AudioMetadata{
		Title:  meta.Title(),
		Artist: meta.Artist(),
	}
}
