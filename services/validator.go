package services

import (
	"net/url"
	"strings"

	"cadenza/types"
)

// Hosts a source URL may come from, including the short-link and mobile
// subdomains.
var allowedHosts = map[string]bool{
	"soundcloud.com":    true,
	"on.soundcloud.com": true,
	"m.soundcloud.com":  true,
}

// ValidateSourceURL checks that raw is a well-formed absolute URL on an
// approved host. It is a pure check with no side effects; anything that
// does not match the allow list fails closed.
func ValidateSourceURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return &types.DownloadError{Kind: types.FailureInvalidInput, Detail: "Invalid URL format"}
	}

	if !allowedHosts[strings.ToLower(u.Hostname())] {
		return &types.DownloadError{Kind: types.FailureInvalidInput, Detail: "URL must be from the approved source"}
	}

	return nil
}
