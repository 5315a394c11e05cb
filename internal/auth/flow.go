package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"

	"github.com/desertthunder/jukebox/internal/shared"
)

const (
	defaultAuthURL  = "https://accounts.spotify.com/authorize"
	defaultTokenURL = "https://accounts.spotify.com/api/token"
)

// DefaultScopes are requested on every login.
var DefaultScopes = []string{"user-read-private", "user-read-email"}

// FlowOpts configures a [Flow].
type FlowOpts struct {
	Credentials shared.SpotifyConfig
	Scopes      []string
	HTTPClient  *http.Client
	Logger      *log.Logger
}

// Flow is the authorization flow controller.
type Flow struct {
	config     *oauth2.Config
	httpClient *http.Client
	logger     *log.Logger
}

// NewFlow validates the credentials and builds a [Flow].
//
// Client credentials are sent as form parameters on the token request.
func NewFlow(opts FlowOpts) (*Flow, error) {
	if err := opts.Credentials.Validate(); err != nil {
		return nil, err
	}

	authURL := opts.Credentials.AuthURL
	if authURL == "" {
		authURL = defaultAuthURL
	}
	tokenURL := opts.Credentials.TokenURL
	if tokenURL == "" {
		tokenURL = defaultTokenURL
	}

	scopes := opts.Scopes
	if len(scopes) == 0 {
		scopes = DefaultScopes
	}

	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &Flow{
		config: &oauth2.Config{
			ClientID:     opts.Credentials.ClientID,
			ClientSecret: opts.Credentials.ClientSecret,
			RedirectURL:  opts.Credentials.RedirectURI,
			Scopes:       scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   authURL,
				TokenURL:  tokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
	}, nil
}

// RedirectURL returns the registered callback URL.
func (f *Flow) RedirectURL() string {
	return f.config.RedirectURL
}

// AuthURL returns the provider authorize URL for state.
func (f *Flow) AuthURL(state string) string {
	return f.config.AuthCodeURL(state)
}

// BeginLogin builds the authorize URL for state and passes it to navigate.
//
// The URL is returned so callers can print it when navigation fails.
func (f *Flow) BeginLogin(state string, navigate func(string) error) (string, error) {
	authURL := f.AuthURL(state)
	if navigate == nil {
		return authURL, nil
	}
	if err := navigate(authURL); err != nil {
		return authURL, fmt.Errorf("failed to open authorization page: %w", err)
	}
	return authURL, nil
}

// CompleteLogin finishes the login from the provider's redirect.
//
// An empty expectedState skips the state comparison. On success the access
// token is written to store before it is returned.
func (f *Flow) CompleteLogin(ctx context.Context, callback *url.URL, expectedState string, store TokenStore) (*oauth2.Token, error) {
	if callback == nil {
		return nil, fmt.Errorf("%w: no callback", shared.ErrAuthorizationDenied)
	}

	q := callback.Query()
	if e := q.Get("error"); e != "" {
		if desc := q.Get("error_description"); desc != "" {
			e = e + " - " + desc
		}
		f.logger.Warn("authorization denied by provider", "error", e)
		return nil, fmt.Errorf("%w: %s", shared.ErrAuthorizationDenied, e)
	}

	code := q.Get("code")
	if code == "" {
		f.logger.Warn("callback without authorization code")
		return nil, fmt.Errorf("%w: no authorization code", shared.ErrAuthorizationDenied)
	}

	if expectedState != "" && q.Get("state") != expectedState {
		f.logger.Warn("callback state mismatch")
		return nil, shared.ErrInvalidState
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, f.httpClient)
	token, err := f.config.Exchange(ctx, code)
	if err != nil {
		f.logger.Error("token exchange failed", "error", err)
		return nil, fmt.Errorf("%w: %v", shared.ErrTokenExchangeFailed, err)
	}

	if store != nil {
		if err := store.Save(token.AccessToken); err != nil {
			return nil, fmt.Errorf("failed to store access token: %w", err)
		}
	}

	f.logger.Info("login complete", "token_type", token.TokenType)
	return token, nil
}
