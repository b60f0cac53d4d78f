package types

// Audio formats the pipeline can produce.
const (
	FormatMP3 = "mp3"
	FormatWAV = "wav"
	FormatAAC = "aac"
)

// DefaultQuality is the MP3 bitrate used when the requested one is not
// one of the accepted values.
const DefaultQuality = "192"

// ValidFormat reports whether format is one of the supported audio formats.
func ValidFormat(format string) bool {
	switch format {
	case FormatMP3, FormatWAV, FormatAAC:
		return true
	}
	return false
}

// NormalizeQuality coerces an MP3 bitrate to an accepted value. Invalid
// qualities fall back to the default rather than failing the request.
func NormalizeQuality(quality string) string {
	switch quality {
	case "128", "192", "256", "320":
		return quality
	}
	return DefaultQuality
}

// FailureKind classifies a download pipeline failure.
type FailureKind string

const (
	FailureInvalidInput      FailureKind = "invalid_input"
	FailureMissingDependency FailureKind = "missing_dependency"
	FailureTimeout           FailureKind = "timeout"
	FailureSourceUnavailable FailureKind = "source_unavailable"
	FailureUnsupportedSource FailureKind = "unsupported_source"
	FailureExternalTool      FailureKind = "external_tool_failure"
	FailureOutputNotFound    FailureKind = "output_not_found"
	FailureFileTooLarge      FailureKind = "file_too_large"
	FailureUnexpected        FailureKind = "unexpected"
)

// DownloadError is the failure variant of a pipeline outcome. Kind is the
// classification the handler discriminates on; Detail carries diagnostic
// text where the kind alone is not enough.
type DownloadError struct {
	Kind   FailureKind
	Detail string
}

func (e *DownloadError) Error() string {
	switch e.Kind {
	case FailureInvalidInput:
		return e.Detail
	case FailureMissingDependency:
		return "Missing dependencies: " + e.Detail
	case FailureTimeout:
		return "Download timeout - file may be too large or connection slow"
	case FailureSourceUnavailable:
		return "Track is private or not available"
	case FailureUnsupportedSource:
		return "Unsupported source URL"
	case FailureExternalTool:
		if e.Detail == "" {
			return "Download failed"
		}
		return "Download failed: " + e.Detail
	case FailureOutputNotFound:
		return "File not found after download"
	case FailureFileTooLarge:
		return "File too large"
	}
	if e.Detail == "" {
		return "An unexpected error occurred"
	}
	return "Unexpected error: " + e.Detail
}

// ClientFault reports whether the failure is attributable to the caller's
// input or the remote source rather than to this service. Tool crashes and
// invariant violations are never client faults.
func (e *DownloadError) ClientFault() bool {
	switch e.Kind {
	case FailureInvalidInput, FailureSourceUnavailable, FailureUnsupportedSource,
		FailureTimeout, FailureFileTooLarge:
		return true
	}
	return false
}

// DownloadResult is the success variant of a pipeline outcome.
type DownloadResult struct {
	Filename string `json:"filename"`
	Size     int64  `json:"file_size"`
}

// TrackInfo is the metadata returned by a probe, without downloading.
type TrackInfo struct {
	Title    string `json:"title"`
	Duration string `json:"duration"`
	Uploader string `json:"uploader"`
}

// AudioMetadata is best-effort tag data read from a produced file.
type AudioMetadata struct {
	Title  string `json:"title,omitempty"`
	Artist string `json:"artist,omitempty"`
}
