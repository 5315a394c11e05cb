package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/jukebox/internal/formatter"
	"github.com/desertthunder/jukebox/internal/shared"
)

// Search prints the tracks matching the query that have a preview clip.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("%w: search query", shared.ErrMissingArgument)
	}

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	if limit := cmd.Int("limit"); limit < 0 {
		return fmt.Errorf("%w: --limit must not be negative", shared.ErrInvalidFlag)
	} else if limit > 0 {
		r.config.Catalog.Limit = limit
	}

	store, err := r.tokenStore()
	if err != nil {
		return err
	}
	token, err := store.Load()
	if err != nil {
		if errors.Is(err, shared.ErrNotAuthenticated) {
			return fmt.Errorf("%w: run `jukebox auth login` first", err)
		}
		return err
	}

	r.logger.Debug("searching catalog", "query", query, "limit", r.config.Catalog.Limit)

	tracks, err := r.searchCatalog().SearchTracks(ctx, query, token)
	if err != nil {
		if errors.Is(err, shared.ErrUnauthorized) {
			return fmt.Errorf("%w: run `jukebox auth login` again", err)
		}
		return err
	}

	return formatter.Render(r.output, format, formatter.NewSearchResult(query, tracks))
}
