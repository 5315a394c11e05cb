package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"

	"github.com/desertthunder/jukebox/internal/auth"
	"github.com/desertthunder/jukebox/internal/repositories"
	"github.com/desertthunder/jukebox/internal/server"
	"github.com/desertthunder/jukebox/internal/shared"
)

// AuthLogin performs the authorization code flow.
//
// Starts a local HTTP server on the redirect URI's host, opens the browser on
// the authorize page and stores the access token once the callback arrives.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	flow, err := r.flow()
	if err != nil {
		return err
	}

	store, err := r.tokenStore()
	if err != nil {
		return err
	}

	if _, err := r.doOAuth(ctx, flow, store); err != nil {
		return err
	}

	r.writePlainln("✓ Authorization successful")
	r.writePlain("You can now use: jukebox search \"daft punk\" or jukebox play\n")
	return nil
}

// doOAuth runs a one-shot callback server until the provider redirects back, the
// wait times out or ctx is cancelled.
func (r *Runner) doOAuth(ctx context.Context, flow *auth.Flow, store auth.TokenStore) (*oauth2.Token, error) {
	redirect, err := url.Parse(flow.RedirectURL())
	if err != nil || redirect.Host == "" {
		return nil, fmt.Errorf("%w: redirect_uri %q", shared.ErrInvalidConfig, flow.RedirectURL())
	}

	state, err := shared.GenerateState()
	if err != nil {
		return nil, err
	}

	oauthHandler := server.NewOAuthHandler(flow, store, state, r.logger)
	router := server.NewBasicRouter()
	router.Use(server.RequestLogger(r.logger))
	router.Handler(oauthHandler)

	listener, err := net.Listen("tcp", redirect.Host)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", redirect.Host, err)
	}

	httpServer := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("starting OAuth server at %v", redirect.Host)
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			r.logger.Warn("error shutting down server", "error", err)
		}
	}()

	r.writePlain("→ Opening browser for Spotify authorization...\n")
	if authURL, err := flow.BeginLogin(state, r.openBrowser); err != nil {
		if errors.Is(err, shared.ErrBrowserUnavailable) {
			r.logger.Info("no browser available, printing authorization URL", "error", err)
		} else {
			r.logger.Warn("failed to open browser automatically", "error", err)
		}
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (%v timeout)...\n", r.loginTimeout)

	timeout := time.NewTimer(r.loginTimeout)
	defer timeout.Stop()

	var result server.OAuthResult

	select {
	case result = <-oauthHandler.Result():
	case err := <-serverErrors:
		return nil, fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		return nil, fmt.Errorf("%w: authorization timed out after %v", shared.ErrTimeout, r.loginTimeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if result.Error() != nil {
		return nil, fmt.Errorf("authorization failed: %w", result.Error())
	}

	if result.Token == nil {
		return nil, fmt.Errorf("%w: no token received", shared.ErrTokenExchangeFailed)
	}

	return result.Token, nil
}

// AuthLogout removes the stored access token.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	store, err := r.tokenStore()
	if err != nil {
		return err
	}

	if err := store.Clear(); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}

	r.logger.Info("access token removed")
	return r.writePlain("✓ Logged out\n")
}

type authStatus struct {
	Authenticated bool       `json:"authenticated"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// AuthStatus reports whether an access token is stored.
//
// Token validity is only known once a search is attempted.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	store, err := r.tokenStore()
	if err != nil {
		return err
	}

	status := authStatus{}
	if _, err := store.Load(); err == nil {
		status.Authenticated = true
	} else if !errors.Is(err, shared.ErrNotAuthenticated) {
		return err
	}

	if repo, ok := store.(*repositories.TokenRepository); ok && status.Authenticated {
		if updated, err := repo.UpdatedAt(); err == nil {
			status.UpdatedAt = &updated
		}
	}

	if cmd.Bool("json") {
		return r.writeJSON(status, true)
	}

	if !status.Authenticated {
		return r.writePlain("Authentication: ✗ Not authenticated\nRun: jukebox auth login\n")
	}

	r.writePlain("Authentication: ✓ Authenticated\n")
	if status.UpdatedAt != nil {
		r.writePlain("Token saved: %s\n", status.UpdatedAt.Local().Format(time.RFC1123))
	}
	return nil
}
