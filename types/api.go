package types

// DownloadRequest is the body of a download request, accepted as JSON or
// form-encoded data.
type DownloadRequest struct {
	URL     string `json:"url" form:"url"`
	Format  string `json:"format" form:"format"`
	Quality string `json:"quality" form:"quality"`
}

// InfoRequest is the body of a track-info request.
type InfoRequest struct {
	URL string `json:"url"`
}
