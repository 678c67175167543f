// README: Directions link for a booked route and the external viewer that opens it.
package maps

import (
	"strings"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
)

const DefaultBaseURL = "https://www.google.com/maps/dir"

// Opener hands a URL to something that can display it.
type Opener func(url string) error

// BrowserOpener opens the URL in the host's default browser.
func BrowserOpener(url string) error {
	return browser.OpenURL(url)
}

// LogOpener only records the URL; used when the process has no desktop.
func LogOpener(url string) error {
	log.Info().Str("url", url).Msg("directions")
	return nil
}

type Viewer struct {
	baseURL string
	open    Opener
}

func NewViewer(baseURL string, open Opener) *Viewer {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if open == nil {
		open = LogOpener
	}
	return &Viewer{baseURL: strings.TrimRight(baseURL, "/"), open: open}
}

// DirectionsURL joins the two labels onto the base URL with spaces replaced by '+'.
// Labels are otherwise passed through untouched.
func (v *Viewer) DirectionsURL(pickup, drop string) string {
	return v.baseURL + "/" + plus(pickup) + "/" + plus(drop)
}

// Open is fire-and-forget: it returns immediately and a failing viewer is ignored.
func (v *Viewer) Open(url string) {
	go func() {
		if err := v.open(url); err != nil {
			log.Debug().Err(err).Str("url", url).Msg("map viewer unavailable")
		}
	}()
}

func plus(label string) string {
	return strings.ReplaceAll(label, " ", "+")
}
