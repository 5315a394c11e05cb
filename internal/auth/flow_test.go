package auth

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/desertthunder/jukebox/internal/shared"
)

func testCredentials(tokenURL string) shared.SpotifyConfig {
	return shared.SpotifyConfig{
		ClientID:     "client-123",
		ClientSecret: "secret-456",
		RedirectURI:  "http://127.0.0.1:3000/callback",
		AuthURL:      "https://accounts.example.com/authorize",
		TokenURL:     tokenURL,
	}
}

func newTestFlow(t *testing.T, tokenURL string) *Flow {
	t.Helper()
	flow, err := NewFlow(FlowOpts{Credentials: testCredentials(tokenURL), Logger: shared.NewLogger(io.Discard)})
	if err != nil {
		t.Fatalf("failed to create flow: %v", err)
	}
	return flow
}

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("failed to parse %q: %v", raw, err)
	}
	return u
}

func TestNewFlow(t *testing.T) {
	t.Run("rejects missing credentials", func(t *testing.T) {
		creds := testCredentials("")
		creds.ClientSecret = ""

		_, err := NewFlow(FlowOpts{Credentials: creds})
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("defaults endpoints", func(t *testing.T) {
		creds := testCredentials("")
		creds.AuthURL = ""

		flow, err := NewFlow(FlowOpts{Credentials: creds, Logger: shared.NewLogger(io.Discard)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(flow.AuthURL("s"), defaultAuthURL) {
			t.Errorf("expected default authorize URL, got %s", flow.AuthURL("s"))
		}
	})
}

func TestBeginLogin(t *testing.T) {
	flow := newTestFlow(t, "https://accounts.example.com/api/token")

	t.Run("builds authorize URL", func(t *testing.T) {
		var opened string
		authURL, err := flow.BeginLogin("state-xyz", func(u string) error {
			opened = u
			return nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if opened != authURL {
			t.Errorf("expected navigator to receive %s, got %s", authURL, opened)
		}

		u := mustParse(t, authURL)
		if u.Host != "accounts.example.com" || u.Path != "/authorize" {
			t.Errorf("unexpected authorize endpoint: %s", authURL)
		}

		q := u.Query()
		checks := map[string]string{
			"client_id":     "client-123",
			"redirect_uri":  "http://127.0.0.1:3000/callback",
			"response_type": "code",
			"scope":         "user-read-private user-read-email",
			"state":         "state-xyz",
		}
		for k, want := range checks {
			if got := q.Get(k); got != want {
				t.Errorf("expected %s=%q, got %q", k, want, got)
			}
		}
		if q.Has("client_secret") {
			t.Error("client secret must never appear in the authorize URL")
		}
	})

	t.Run("reports navigation failure with URL", func(t *testing.T) {
		authURL, err := flow.BeginLogin("s", func(string) error { return errors.New("no browser") })
		if err == nil {
			t.Fatal("expected error")
		}
		if authURL == "" {
			t.Error("expected URL to be returned for manual use")
		}
	})
}

func TestCompleteLogin(t *testing.T) {
	t.Run("exchanges code and stores token", func(t *testing.T) {
		var calls atomic.Int32
		var form url.Values
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			if r.Method != http.MethodPost {
				t.Errorf("expected POST, got %s", r.Method)
			}
			if err := r.ParseForm(); err != nil {
				t.Errorf("failed to parse form: %v", err)
			}
			form = r.PostForm
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `{"access_token":"tok-789","token_type":"Bearer","expires_in":3600}`)
		}))
		defer srv.Close()

		flow := newTestFlow(t, srv.URL)
		store := NewMemoryStore("")

		token, err := flow.CompleteLogin(context.Background(), mustParse(t, "http://127.0.0.1:3000/callback?code=abc123&state=s1"), "s1", store)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token.AccessToken != "tok-789" {
			t.Errorf("expected access token tok-789, got %s", token.AccessToken)
		}
		if calls.Load() != 1 {
			t.Errorf("expected exactly one exchange request, got %d", calls.Load())
		}

		want := map[string]string{
			"grant_type":    "authorization_code",
			"code":          "abc123",
			"redirect_uri":  "http://127.0.0.1:3000/callback",
			"client_id":     "client-123",
			"client_secret": "secret-456",
		}
		for k, v := range want {
			if got := form.Get(k); got != v {
				t.Errorf("expected form %s=%q, got %q", k, v, got)
			}
		}

		stored, err := store.Load()
		if err != nil || stored != "tok-789" {
			t.Errorf("expected stored token tok-789, got %q (%v)", stored, err)
		}
	})

	t.Run("missing code is denied without network call", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
		}))
		defer srv.Close()

		flow := newTestFlow(t, srv.URL)
		store := NewMemoryStore("")

		_, err := flow.CompleteLogin(context.Background(), mustParse(t, "http://127.0.0.1:3000/callback"), "", store)
		if !errors.Is(err, shared.ErrAuthorizationDenied) {
			t.Errorf("expected ErrAuthorizationDenied, got %v", err)
		}
		if calls.Load() != 0 {
			t.Errorf("expected no exchange request, got %d", calls.Load())
		}
		if _, err := store.Load(); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected store to stay empty, got %v", err)
		}
	})

	t.Run("provider error is denied", func(t *testing.T) {
		flow := newTestFlow(t, "http://127.0.0.1:1/token")

		_, err := flow.CompleteLogin(context.Background(), mustParse(t, "http://x/callback?error=access_denied&error_description=user+said+no"), "", nil)
		if !errors.Is(err, shared.ErrAuthorizationDenied) {
			t.Fatalf("expected ErrAuthorizationDenied, got %v", err)
		}
		if !strings.Contains(err.Error(), "user said no") {
			t.Errorf("expected description in error, got %v", err)
		}
	})

	t.Run("state mismatch", func(t *testing.T) {
		flow := newTestFlow(t, "http://127.0.0.1:1/token")

		_, err := flow.CompleteLogin(context.Background(), mustParse(t, "http://x/callback?code=abc&state=other"), "expected", nil)
		if !errors.Is(err, shared.ErrInvalidState) {
			t.Errorf("expected ErrInvalidState, got %v", err)
		}
	})

	t.Run("exchange failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			io.WriteString(w, `{"error":"invalid_grant"}`)
		}))
		defer srv.Close()

		flow := newTestFlow(t, srv.URL)
		store := NewMemoryStore("")

		_, err := flow.CompleteLogin(context.Background(), mustParse(t, "http://x/callback?code=expired"), "", store)
		if !errors.Is(err, shared.ErrTokenExchangeFailed) {
			t.Errorf("expected ErrTokenExchangeFailed, got %v", err)
		}
		if _, err := store.Load(); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected store to stay empty, got %v", err)
		}
	})

	t.Run("transport failure", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		tokenURL := srv.URL
		srv.Close()

		flow := newTestFlow(t, tokenURL)
		_, err := flow.CompleteLogin(context.Background(), mustParse(t, "http://x/callback?code=abc"), "", nil)
		if !errors.Is(err, shared.ErrTokenExchangeFailed) {
			t.Errorf("expected ErrTokenExchangeFailed, got %v", err)
		}
	})
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore("")

	if _, err := store.Load(); !errors.Is(err, shared.ErrNotAuthenticated) {
		t.Errorf("expected ErrNotAuthenticated on empty store, got %v", err)
	}

	if err := store.Save("abc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok, _ := store.Load(); tok != "abc" {
		t.Errorf("expected abc, got %s", tok)
	}

	if err := store.Save("def"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok, _ := store.Load(); tok != "def" {
		t.Errorf("expected overwrite to def, got %s", tok)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Load(); !errors.Is(err, shared.ErrNotAuthenticated) {
		t.Errorf("expected ErrNotAuthenticated after clear, got %v", err)
	}
}
