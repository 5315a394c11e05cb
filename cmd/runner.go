package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/jukebox/internal/auth"
	"github.com/desertthunder/jukebox/internal/repositories"
	"github.com/desertthunder/jukebox/internal/services"
	"github.com/desertthunder/jukebox/internal/shared"
)

const defaultLoginTimeout = 2 * time.Minute

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config       *shared.Config
	configPath   string
	httpClient   *http.Client
	logger       *log.Logger
	output       io.Writer
	openBrowser  func(string) error
	loginTimeout time.Duration

	mu      sync.Mutex
	db      *sql.DB
	tokens  auth.TokenStore
	catalog services.Catalog
}

// RunnerOpts contains configuration options for creating a Runner.
//
// Tokens and Catalog replace the SQLite store and Spotify client when set.
type RunnerOpts struct {
	Config       *shared.Config
	ConfigPath   string
	HTTPClient   *http.Client
	Logger       *log.Logger
	Output       io.Writer
	Tokens       auth.TokenStore
	Catalog      services.Catalog
	OpenBrowser  func(string) error
	LoginTimeout time.Duration
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.ConfigPath == "" {
		opts.ConfigPath = defaultConfigPath
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.OpenBrowser == nil {
		opts.OpenBrowser = shared.OpenBrowser
	}
	if opts.LoginTimeout <= 0 {
		opts.LoginTimeout = defaultLoginTimeout
	}

	return &Runner{
		config:       opts.Config,
		configPath:   opts.ConfigPath,
		httpClient:   opts.HTTPClient,
		logger:       opts.Logger,
		output:       opts.Output,
		openBrowser:  opts.OpenBrowser,
		loginTimeout: opts.LoginTimeout,
		tokens:       opts.Tokens,
		catalog:      opts.Catalog,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, searchCommand, playCommand, serveCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger replaces the runner's logger.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// tokenStore opens the token database on first use and runs pending migrations.
func (r *Runner) tokenStore() (auth.TokenStore, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.tokens != nil {
		return r.tokens, nil
	}

	db, err := r.openDatabase()
	if err != nil {
		return nil, err
	}
	r.db = db
	r.tokens = repositories.NewTokenRepository(db)
	return r.tokens, nil
}

func (r *Runner) openDatabase() (*sql.DB, error) {
	cfg := r.config.Database
	db, err := shared.NewDatabase(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to create database: %w", err)
	}

	shared.ConfigureDatabase(db, cfg.MaxOpenConns, cfg.MaxIdleConns)
	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

// flow builds the login flow from the configured credentials.
func (r *Runner) flow() (*auth.Flow, error) {
	flow, err := auth.NewFlow(auth.FlowOpts{
		Credentials: r.config.Credentials.Spotify,
		HTTPClient:  r.httpClient,
		Logger:      shared.WithLogger(r.logger, "component", "auth"),
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set them in %s or %s/%s)", err, r.configPath, shared.EnvClientID, shared.EnvClientSecret)
	}
	return flow, nil
}

func (r *Runner) searchCatalog() services.Catalog {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.catalog == nil {
		cfg := r.config.Catalog
		r.catalog = services.NewSpotifyCatalog(services.CatalogOpts{
			BaseURL:    cfg.BaseURL,
			HTTPClient: r.httpClient,
			Logger:     shared.WithLogger(r.logger, "component", "catalog"),
			RateLimit:  cfg.RateLimit,
			Limit:      cfg.Limit,
			Market:     cfg.Market,
		})
	}
	return r.catalog
}

// Close releases the token database if it was opened.
func (r *Runner) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
