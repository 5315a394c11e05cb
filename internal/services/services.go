// package services defines interface Catalog for searching a music catalog over HTTP
package services

import (
	"context"

	"github.com/desertthunder/jukebox/internal/models"
)

// Catalog searches a music catalog for playable tracks.
type Catalog interface {
	// SearchTracks returns tracks matching query that have a preview clip.
	// An empty result is a non-nil empty slice.
	SearchTracks(ctx context.Context, query, token string) ([]models.Track, error)
}
