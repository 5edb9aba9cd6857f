package navigation

import (
	"fmt"
	"net/url"
	"strings"
)

// HistoryMode selects where the routable path lives in a URL.
type HistoryMode string

const (
	// HistoryWeb routes on the URL path (/dashboard).
	HistoryWeb HistoryMode = "web"

	// HistoryHash routes on the URL fragment (/#/dashboard).
	HistoryHash HistoryMode = "hash"
)

// Validate checks if the mode is a known history mode.
func (m HistoryMode) Validate() error {
	switch m {
	case HistoryWeb, HistoryHash:
		return nil
	default:
		return fmt.Errorf("invalid history mode: %s (must be web or hash)", m)
	}
}

// location extracts the routable path from rawURL for the given mode.
func location(mode HistoryMode, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse location: %w", err)
	}

	var path string
	switch mode {
	case HistoryWeb:
		path = u.Path
	case HistoryHash:
		path, _, _ = strings.Cut(u.Fragment, "?")
	default:
		return "", mode.Validate()
	}

	if path == "" {
		path = "/"
	}
	return path, nil
}
