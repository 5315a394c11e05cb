// package models defines the data model for catalog search results
package models

import (
	"net/url"
	"strings"
)

// PreviewDurationParam is appended to every preview URL.
const PreviewDurationParam = "duration_ms=60000"

// Track is a catalog search result.
//
// Tracks without a preview URL are never returned by the catalog client.
type Track struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Artists    []Artist `json:"artists"`
	Album      Album    `json:"album"`
	PreviewURL string   `json:"preview_url"`
}

// Artist is a performer credited on a [Track].
type Artist struct {
	Name string `json:"name"`
}

// Album is the release a [Track] belongs to.
type Album struct {
	Name   string  `json:"name"`
	Images []Image `json:"images"`
}

// Image is album artwork.
type Image struct {
	URL string `json:"url"`
}

// ArtistNames returns the track's artist names joined with ", ".
func (t Track) ArtistNames() string {
	names := make([]string, 0, len(t.Artists))
	for _, a := range t.Artists {
		names = append(names, a.Name)
	}
	return strings.Join(names, ", ")
}

// CoverURL returns the first album image, or "" when the album has none.
func (t Track) CoverURL() string {
	if len(t.Album.Images) == 0 {
		return ""
	}
	return t.Album.Images[0].URL
}

// HasPreview reports whether the track can be played.
func (t Track) HasPreview() bool {
	return t.PreviewURL != ""
}

// WithPreviewDuration returns raw with [PreviewDurationParam] as its final query parameter.
//
// Any existing duration_ms parameter is dropped first, so applying it twice
// yields the same URL. Unparseable input is returned with the parameter
// appended to it unchanged.
func WithPreviewDuration(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return appendParam(raw)
	}

	var kept []string
	for _, part := range strings.Split(u.RawQuery, "&") {
		if part == "" || part == "duration_ms" || strings.HasPrefix(part, "duration_ms=") {
			continue
		}
		kept = append(kept, part)
	}
	kept = append(kept, PreviewDurationParam)
	u.RawQuery = strings.Join(kept, "&")
	u.ForceQuery = false
	return u.String()
}

func appendParam(raw string) string {
	if strings.Contains(raw, "?") {
		return raw + "&" + PreviewDurationParam
	}
	return raw + "?" + PreviewDurationParam
}
