package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/jukebox/internal/shared"
	"github.com/desertthunder/jukebox/internal/web"
)

// Serve runs the web player until ctx is cancelled.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	flow, err := r.flow()
	if err != nil {
		return err
	}

	store, err := r.tokenStore()
	if err != nil {
		return err
	}

	app, err := web.New(web.Opts{
		Flow:          flow,
		Store:         store,
		Catalog:       r.searchCatalog(),
		Logger:        shared.WithLogger(r.logger, "component", "web"),
		SecureCookies: cmd.Bool("secure-cookies"),
	})
	if err != nil {
		return fmt.Errorf("failed to build web app: %w", err)
	}

	addr := cmd.String("addr")
	if addr == "" {
		addr = r.config.Server.Addr()
	}

	router := app.Handler()
	r.logger.Debug("registered routes", "routes", router.Routes())

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("serving web player at http://%v", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
		close(serverErrors)
	}()

	select {
	case err := <-serverErrors:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	r.logger.Info("web player stopped")
	return nil
}
