package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/jukebox/internal/player"
	"github.com/desertthunder/jukebox/internal/player/mpd"
	"github.com/desertthunder/jukebox/internal/shared"
	"github.com/desertthunder/jukebox/internal/ui"
)

// Play launches the terminal player backed by MPD.
func (r *Runner) Play(ctx context.Context, cmd *cli.Command) error {
	store, err := r.tokenStore()
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, closer, err := shared.NewFileLogger(cmd.String("log-file"))
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	defer closer.Close()
	r.SetLogger(fileLogger)

	cfg := r.config.MPD
	if addr := cmd.String("mpd"); addr != "" {
		cfg.Address = addr
	}

	engine, err := mpd.Dial(mpd.Opts{
		Address:      cfg.Address,
		Password:     cfg.Password,
		PollInterval: cfg.PollInterval.Duration,
		Logger:       shared.WithLogger(fileLogger, "component", "mpd"),
	})
	if err != nil {
		return err
	}

	session := player.NewSession(player.SessionOpts{
		Engine:  engine,
		Catalog: r.searchCatalog(),
		Tokens:  store,
		Logger:  shared.WithLogger(fileLogger, "component", "session"),
	})
	defer func() {
		if err := session.Close(); err != nil {
			fileLogger.Warn("failed to close session", "error", err)
		}
	}()

	model := ui.NewModel(ctx, session)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
