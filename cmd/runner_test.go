package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/jukebox/internal/auth"
	"github.com/desertthunder/jukebox/internal/repositories"
	"github.com/desertthunder/jukebox/internal/shared"
	tu "github.com/desertthunder/jukebox/internal/testing"
)

func run(t *testing.T, r *Runner, args ...string) error {
	t.Helper()
	return runContext(context.Background(), r, args...)
}

func runContext(ctx context.Context, r *Runner, args ...string) error {
	app := &cli.Command{Name: "jukebox", Commands: r.register()}
	return app.Run(ctx, append([]string{"jukebox"}, args...))
}

func quietLogger() *log.Logger {
	return shared.NewLogger(io.Discard)
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to find a free port: %v", err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func testCredentials(redirect, tokenURL string) shared.SpotifyConfig {
	return shared.SpotifyConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  redirect,
		AuthURL:      "https://accounts.example.com/authorize",
		TokenURL:     tokenURL,
	}
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}
			store := auth.NewMemoryStore("tok")
			catalog := &tu.MockCatalog{}

			runner := NewRunner(RunnerOpts{
				Config:       config,
				Logger:       logger,
				Output:       output,
				HTTPClient:   httpClient,
				Tokens:       store,
				Catalog:      catalog,
				LoginTimeout: time.Second,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
			if runner.tokens != store {
				t.Error("expected token store to be set")
			}
			if runner.catalog != catalog {
				t.Error("expected catalog to be set")
			}
			if runner.loginTimeout != time.Second {
				t.Errorf("expected login timeout of 1s, got %v", runner.loginTimeout)
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Config: nil,
			})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Logger: nil,
			})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Output: nil,
			})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with nil httpClient uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				HTTPClient: nil,
			})

			if runner.httpClient != http.DefaultClient {
				t.Error("expected httpClient to default to http.DefaultClient")
			}
		})

		t.Run("with configPath sets field", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				ConfigPath: "/test/path/config.toml",
			})

			if runner.configPath != "/test/path/config.toml" {
				t.Errorf("expected configPath to be set, got %s", runner.configPath)
			}
		})

		t.Run("with empty configPath uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				ConfigPath: "",
			})

			if runner.configPath != defaultConfigPath {
				t.Errorf("expected %s, got %s", defaultConfigPath, runner.configPath)
			}
			if runner.loginTimeout != defaultLoginTimeout {
				t.Errorf("expected default login timeout, got %v", runner.loginTimeout)
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, true)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			expected := `{"key":"value"}` + "\n"
			if result != expected {
				t.Errorf("expected %q, got %q", expected, result)
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			// channels cannot be marshaled to JSON
			data := make(chan int)
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			data := map[string]string{"key": "value"}
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writePlain("hello %s", "world")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if result != "hello world" {
				t.Errorf("expected 'hello world', got %q", result)
			}
		})

		t.Run("writes plain text without formatting", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writePlain("simple text")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if result != "simple text" {
				t.Errorf("expected 'simple text', got %q", result)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			err := runner.writePlain("test")

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) == 0 {
			t.Error("expected at least one command to be registered")
		}

		for i, cmd := range commands {
			if cmd == nil {
				t.Errorf("command at index %d is nil", i)
			}
		}
	})

	t.Run("tokenStore", func(t *testing.T) {
		t.Run("persists tokens in sqlite", func(t *testing.T) {
			config := shared.DefaultConfig()
			config.Database.Path = filepath.Join(t.TempDir(), "jukebox.db")

			first := NewRunner(RunnerOpts{Config: config, Logger: quietLogger()})
			store, err := first.tokenStore()
			if err != nil {
				t.Fatalf("failed to open token store: %v", err)
			}
			if err := store.Save("persisted"); err != nil {
				t.Fatalf("failed to save token: %v", err)
			}
			if err := first.Close(); err != nil {
				t.Fatalf("failed to close runner: %v", err)
			}

			second := NewRunner(RunnerOpts{Config: config, Logger: quietLogger()})
			defer second.Close()
			store, err = second.tokenStore()
			if err != nil {
				t.Fatalf("failed to reopen token store: %v", err)
			}

			token, err := store.Load()
			if err != nil || token != "persisted" {
				t.Errorf("expected persisted token, got %q (%v)", token, err)
			}
		})

		t.Run("returns the same store", func(t *testing.T) {
			config := shared.DefaultConfig()
			config.Database.Path = ":memory:"
			runner := NewRunner(RunnerOpts{Config: config, Logger: quietLogger()})
			defer runner.Close()

			a, err := runner.tokenStore()
			if err != nil {
				t.Fatalf("failed to open token store: %v", err)
			}
			b, _ := runner.tokenStore()
			if a != b {
				t.Error("expected the store to be cached")
			}
		})

		t.Run("Close without database", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Tokens: auth.NewMemoryStore("")})
			if err := runner.Close(); err != nil {
				t.Errorf("expected nil error, got %v", err)
			}
		})
	})
}

func TestAuthCommands(t *testing.T) {
	t.Run("login stores token from callback", func(t *testing.T) {
		tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := r.ParseForm(); err != nil || r.Form.Get("code") != "abc123" {
				http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token":"tok-123","token_type":"Bearer","expires_in":3600}`))
		}))
		defer tokenServer.Close()

		config := shared.DefaultConfig()
		config.Credentials.Spotify = testCredentials(fmt.Sprintf("http://127.0.0.1:%d/callback", freePort(t)), tokenServer.URL)
		store := auth.NewMemoryStore("")
		output := &bytes.Buffer{}

		var opened string
		browser := func(authURL string) error {
			opened = authURL
			u, err := url.Parse(authURL)
			if err != nil {
				return err
			}
			q := u.Query()
			go func() {
				resp, err := http.Get(q.Get("redirect_uri") + "?code=abc123&state=" + url.QueryEscape(q.Get("state")))
				if err == nil {
					resp.Body.Close()
				}
			}()
			return nil
		}

		runner := NewRunner(RunnerOpts{
			Config:       config,
			Output:       output,
			Tokens:       store,
			Logger:       quietLogger(),
			OpenBrowser:  browser,
			LoginTimeout: 5 * time.Second,
		})

		if err := run(t, runner, "auth", "login"); err != nil {
			t.Fatalf("login failed: %v", err)
		}

		if !strings.HasPrefix(opened, "https://accounts.example.com/authorize?") {
			t.Errorf("expected browser to open the authorize URL, got %q", opened)
		}
		if token, _ := store.Load(); token != "tok-123" {
			t.Errorf("expected stored token tok-123, got %q", token)
		}
		if !strings.Contains(output.String(), "Authorization successful") {
			t.Errorf("expected success message, got %q", output.String())
		}
	})

	t.Run("login reports denial", func(t *testing.T) {
		config := shared.DefaultConfig()
		config.Credentials.Spotify = testCredentials(fmt.Sprintf("http://127.0.0.1:%d/callback", freePort(t)), "http://127.0.0.1:1/token")
		store := auth.NewMemoryStore("")

		browser := func(authURL string) error {
			u, _ := url.Parse(authURL)
			go func() {
				resp, err := http.Get(u.Query().Get("redirect_uri") + "?error=access_denied")
				if err == nil {
					resp.Body.Close()
				}
			}()
			return nil
		}

		runner := NewRunner(RunnerOpts{
			Config:       config,
			Output:       io.Discard,
			Tokens:       store,
			Logger:       quietLogger(),
			OpenBrowser:  browser,
			LoginTimeout: 5 * time.Second,
		})

		err := run(t, runner, "auth", "login")
		if !errors.Is(err, shared.ErrAuthorizationDenied) {
			t.Errorf("expected ErrAuthorizationDenied, got %v", err)
		}
		if _, err := store.Load(); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Error("expected no token to be stored")
		}
	})

	t.Run("login times out", func(t *testing.T) {
		config := shared.DefaultConfig()
		config.Credentials.Spotify = testCredentials(fmt.Sprintf("http://127.0.0.1:%d/callback", freePort(t)), "http://127.0.0.1:1/token")
		output := &bytes.Buffer{}

		runner := NewRunner(RunnerOpts{
			Config:       config,
			Output:       output,
			Tokens:       auth.NewMemoryStore(""),
			Logger:       quietLogger(),
			OpenBrowser:  func(string) error { return errors.New("no browser") },
			LoginTimeout: 50 * time.Millisecond,
		})

		err := run(t, runner, "auth", "login")
		if !errors.Is(err, shared.ErrTimeout) {
			t.Errorf("expected ErrTimeout, got %v", err)
		}
		if !strings.Contains(output.String(), "https://accounts.example.com/authorize?") {
			t.Errorf("expected authorize URL to be printed when the browser fails, got %q", output.String())
		}
	})

	t.Run("login requires credentials", func(t *testing.T) {
		config := shared.DefaultConfig()
		config.Credentials.Spotify.ClientID = ""

		runner := NewRunner(RunnerOpts{Config: config, Output: io.Discard, Tokens: auth.NewMemoryStore(""), Logger: quietLogger()})

		if err := run(t, runner, "auth", "login"); !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("status", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output, Tokens: auth.NewMemoryStore("tok"), Logger: quietLogger()})

		if err := run(t, runner, "auth", "status"); err != nil {
			t.Fatalf("status failed: %v", err)
		}
		if !strings.Contains(output.String(), "✓ Authenticated") {
			t.Errorf("expected authenticated status, got %q", output.String())
		}
	})

	t.Run("status json when logged out", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output, Tokens: auth.NewMemoryStore(""), Logger: quietLogger()})

		if err := run(t, runner, "auth", "status", "--json"); err != nil {
			t.Fatalf("status failed: %v", err)
		}

		var status authStatus
		if err := json.Unmarshal(output.Bytes(), &status); err != nil {
			t.Fatalf("invalid JSON %q: %v", output.String(), err)
		}
		if status.Authenticated {
			t.Error("expected unauthenticated status")
		}
	})

	t.Run("logout clears token", func(t *testing.T) {
		store := auth.NewMemoryStore("tok")
		runner := NewRunner(RunnerOpts{Output: io.Discard, Tokens: store, Logger: quietLogger()})

		if err := run(t, runner, "auth", "logout"); err != nil {
			t.Fatalf("logout failed: %v", err)
		}
		if _, err := store.Load(); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected token to be cleared, got %v", err)
		}
	})
}

func TestSearchCommand(t *testing.T) {
	setup := func(token string, catalog *tu.MockCatalog) (*Runner, *bytes.Buffer) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{
			Output:  output,
			Tokens:  auth.NewMemoryStore(token),
			Catalog: catalog,
			Logger:  quietLogger(),
		})
		return runner, output
	}

	t.Run("prints results as json", func(t *testing.T) {
		runner, output := setup("tok", &tu.MockCatalog{Results: tu.Tracks(2)})

		if err := run(t, runner, "search", "--format", "json", "daft", "punk"); err != nil {
			t.Fatalf("search failed: %v", err)
		}

		var result struct {
			Query string `json:"query"`
			Count int    `json:"count"`
		}
		if err := json.Unmarshal(output.Bytes(), &result); err != nil {
			t.Fatalf("invalid JSON %q: %v", output.String(), err)
		}
		if result.Query != "daft punk" || result.Count != 2 {
			t.Errorf("unexpected result %+v", result)
		}
	})

	t.Run("prints text by default", func(t *testing.T) {
		runner, output := setup("tok", &tu.MockCatalog{Results: tu.Tracks(1)})

		if err := run(t, runner, "search", "daft punk"); err != nil {
			t.Fatalf("search failed: %v", err)
		}
		if !strings.Contains(output.String(), "1. Artist - Track 1") {
			t.Errorf("expected text listing, got %q", output.String())
		}
	})

	t.Run("limit flag updates catalog config", func(t *testing.T) {
		runner, _ := setup("tok", &tu.MockCatalog{})

		if err := run(t, runner, "search", "--limit", "5", "x"); err != nil {
			t.Fatalf("search failed: %v", err)
		}
		if runner.config.Catalog.Limit != 5 {
			t.Errorf("expected limit 5, got %d", runner.config.Catalog.Limit)
		}
	})

	t.Run("requires a query", func(t *testing.T) {
		catalog := &tu.MockCatalog{}
		runner, _ := setup("tok", catalog)

		if err := run(t, runner, "search"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
		if len(catalog.Calls()) != 0 {
			t.Error("expected no catalog calls")
		}
	})

	t.Run("rejects unknown format", func(t *testing.T) {
		runner, _ := setup("tok", &tu.MockCatalog{})

		if err := run(t, runner, "search", "--format", "yaml", "x"); !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})

	t.Run("requires login", func(t *testing.T) {
		catalog := &tu.MockCatalog{}
		runner, _ := setup("", catalog)

		if err := run(t, runner, "search", "x"); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
		if len(catalog.Calls()) != 0 {
			t.Error("expected no catalog calls")
		}
	})

	t.Run("surfaces unauthorized", func(t *testing.T) {
		runner, _ := setup("expired", &tu.MockCatalog{Err: fmt.Errorf("%w: token expired", shared.ErrUnauthorized)})

		err := run(t, runner, "search", "x")
		if !errors.Is(err, shared.ErrUnauthorized) {
			t.Errorf("expected ErrUnauthorized, got %v", err)
		}
		if err != nil && !strings.Contains(err.Error(), "auth login") {
			t.Errorf("expected login hint, got %v", err)
		}
	})
}

func TestSetupCommand(t *testing.T) {
	t.Setenv(shared.EnvClientID, "")
	t.Setenv(shared.EnvClientSecret, "")

	dir := t.TempDir()
	wd := tu.MustGetwd(t)
	tu.MustChdir(t, dir)
	t.Cleanup(func() { tu.MustChdir(t, wd) })

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{Output: output, Logger: quietLogger()})
	configPath := filepath.Join(dir, "config.toml")

	if err := run(t, runner, "setup", "--config", configPath); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	tu.AssertFileExists(t, configPath)
	tu.AssertFileExists(t, filepath.Join(dir, "jukebox.db"))
	if content := tu.MustReadFile(t, configPath); !strings.Contains(content, "[credentials.spotify]") {
		t.Errorf("expected config template, got:\n%s", content)
	}
	if !strings.Contains(output.String(), "client_id is required") {
		t.Errorf("expected missing credentials hint, got %q", output.String())
	}
	if strings.Contains(output.String(), "Setup complete") {
		t.Errorf("expected setup not to report success without credentials, got %q", output.String())
	}
}

func TestSetupReset(t *testing.T) {
	dir := t.TempDir()
	wd := tu.MustGetwd(t)
	tu.MustChdir(t, dir)
	t.Cleanup(func() { tu.MustChdir(t, wd) })

	configPath := filepath.Join(dir, "config.toml")
	dbPath := filepath.Join(dir, "jukebox.db")

	if err := run(t, NewRunner(RunnerOpts{Output: io.Discard, Logger: quietLogger()}), "setup", "--config", configPath); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	db, err := shared.NewDatabase(dbPath)
	if err != nil {
		t.Fatalf("failed to open token db: %v", err)
	}
	if err := repositories.NewTokenRepository(db).Save("stale-token"); err != nil {
		t.Fatalf("failed to seed token: %v", err)
	}
	db.Close()

	output := &bytes.Buffer{}
	if err := run(t, NewRunner(RunnerOpts{Output: output, Logger: quietLogger()}), "setup", "--config", configPath, "--reset"); err != nil {
		t.Fatalf("setup --reset failed: %v", err)
	}
	if !strings.Contains(output.String(), "Token database reset") {
		t.Errorf("expected reset confirmation, got %q", output.String())
	}

	db, err = shared.NewDatabase(dbPath)
	if err != nil {
		t.Fatalf("failed to reopen token db: %v", err)
	}
	defer db.Close()

	if _, err := repositories.NewTokenRepository(db).Load(); !errors.Is(err, shared.ErrNotAuthenticated) {
		t.Errorf("expected token to be discarded, got %v", err)
	}
	if versions, err := shared.AppliedMigrations(db); err != nil || len(versions) == 0 {
		t.Errorf("expected schema to be rebuilt, got %v (err %v)", versions, err)
	}
}

func TestServeCommand(t *testing.T) {
	t.Run("stops when context is cancelled", func(t *testing.T) {
		config := shared.DefaultConfig()
		config.Credentials.Spotify = testCredentials("http://127.0.0.1:3000/callback", "")
		runner := NewRunner(RunnerOpts{Config: config, Tokens: auth.NewMemoryStore(""), Catalog: &tu.MockCatalog{}, Logger: quietLogger()})

		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		if err := runContext(ctx, runner, "serve", "--addr", fmt.Sprintf("127.0.0.1:%d", freePort(t))); err != nil {
			t.Errorf("expected clean shutdown, got %v", err)
		}
	})

	t.Run("requires credentials", func(t *testing.T) {
		config := shared.DefaultConfig()
		config.Credentials.Spotify.ClientSecret = ""
		runner := NewRunner(RunnerOpts{Config: config, Tokens: auth.NewMemoryStore(""), Logger: quietLogger()})

		if err := run(t, runner, "serve"); !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})
}

func TestPlayCommand(t *testing.T) {
	runner := NewRunner(RunnerOpts{Tokens: auth.NewMemoryStore("tok"), Catalog: &tu.MockCatalog{}, Logger: quietLogger()})
	logDir := filepath.Join(t.TempDir(), "logs")
	logFile := filepath.Join(logDir, "tui.log")

	err := run(t, runner, "play", "--mpd", "127.0.0.1:1", "--log-file", logFile)
	if !errors.Is(err, shared.ErrServiceUnavailable) {
		t.Errorf("expected ErrServiceUnavailable for an unreachable daemon, got %v", err)
	}
	tu.AssertDirExists(t, logDir)
	tu.AssertFileExists(t, logFile)
}
