package web

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/jukebox/internal/auth"
	"github.com/desertthunder/jukebox/internal/models"
	"github.com/desertthunder/jukebox/internal/player"
	"github.com/desertthunder/jukebox/internal/server"
	"github.com/desertthunder/jukebox/internal/services"
	"github.com/desertthunder/jukebox/internal/shared"
)

//go:embed templates/*.html
var templateFiles embed.FS

const stateCookie = "jukebox_oauth_state"

// Opts configures an [App].
type Opts struct {
	Flow    *auth.Flow
	Store   auth.TokenStore
	Catalog services.Catalog
	Logger  *log.Logger
	// SecureCookies marks cookies Secure, for deployments behind TLS.
	SecureCookies bool
}

// App holds the web handlers and their dependencies.
type App struct {
	flow    *auth.Flow
	store   auth.TokenStore
	catalog services.Catalog
	logger  *log.Logger
	secure  bool
	pages   map[string]*template.Template
}

// New parses the embedded templates and builds an [App].
func New(opts Opts) (*App, error) {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	pages := make(map[string]*template.Template)
	for _, name := range []string{"index", "callback", "player"} {
		t, err := template.ParseFS(templateFiles, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, err
		}
		pages[name] = t
	}

	return &App{
		flow:    opts.Flow,
		store:   opts.Store,
		catalog: opts.Catalog,
		logger:  opts.Logger,
		secure:  opts.SecureCookies,
		pages:   pages,
	}, nil
}

// Register adds the web routes to r.
func (a *App) Register(r server.Router) {
	r.Handle(http.MethodGet, "/{$}", http.HandlerFunc(a.Index))
	r.Handle(http.MethodGet, "/login", http.HandlerFunc(a.Login))
	r.Handle(http.MethodGet, "/callback", http.HandlerFunc(a.Callback))
	r.Handle(http.MethodGet, "/player", http.HandlerFunc(a.Player))
	r.Handle(http.MethodGet, "/api/search", http.HandlerFunc(a.Search))
	r.Handle(http.MethodPost, "/logout", http.HandlerFunc(a.Logout))
}

// Handler returns a router with the web routes and request logging.
func (a *App) Handler() *server.BasicRouter {
	r := server.NewBasicRouter()
	r.Use(server.RequestLogger(a.logger), server.Recoverer(a.logger))
	a.Register(r)
	return r
}

type indexView struct {
	Title         string
	Authenticated bool
}

type callbackView struct {
	Title   string
	Heading string
	Error   string
}

type playerView struct {
	Title       string
	Query       string
	Tracks      []models.Track
	Error       string
	Relogin     bool
	ClipSeconds int
}

// Index renders the landing page.
func (a *App) Index(w http.ResponseWriter, r *http.Request) {
	_, err := a.store.Load()
	a.render(w, http.StatusOK, "index", indexView{Title: "JukeBox", Authenticated: err == nil})
}

// Login starts the authorization flow.
func (a *App) Login(w http.ResponseWriter, r *http.Request) {
	state, err := shared.GenerateState()
	if err != nil {
		a.logger.Error("failed to generate state", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		Secure:   a.secure,
		SameSite: http.SameSiteLaxMode,
	})

	_, _ = a.flow.BeginLogin(state, func(authURL string) error {
		http.Redirect(w, r, authURL, http.StatusFound)
		return nil
	})
}

// Callback completes the authorization flow.
func (a *App) Callback(w http.ResponseWriter, r *http.Request) {
	expected := ""
	if c, err := r.Cookie(stateCookie); err == nil {
		expected = c.Value
	}
	http.SetCookie(w, &http.Cookie{Name: stateCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true, Secure: a.secure})

	var err error
	q := r.URL.Query()
	if expected == "" && q.Get("code") != "" && q.Get("error") == "" {
		err = shared.ErrInvalidState
	} else {
		_, err = a.flow.CompleteLogin(r.Context(), r.URL, expected, a.store)
	}

	if err != nil {
		status, heading := server.CallbackErrorStatus(err)
		a.render(w, status, "callback", callbackView{Title: "JukeBox", Heading: heading, Error: loginMessage(err)})
		return
	}

	http.Redirect(w, r, "/player", http.StatusSeeOther)
}

// Player renders the search page, running a search when q is present.
func (a *App) Player(w http.ResponseWriter, r *http.Request) {
	token, err := a.store.Load()
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	view := playerView{
		Title:       "JukeBox",
		Query:       r.URL.Query().Get("q"),
		Tracks:      []models.Track{},
		ClipSeconds: int(player.ClipLength / time.Second),
	}

	status := http.StatusOK
	if strings.TrimSpace(view.Query) != "" {
		tracks, err := a.catalog.SearchTracks(r.Context(), view.Query, token)
		if err != nil {
			a.logger.Error("search failed", "query", view.Query, "error", err)
			status = searchStatus(err)
			view.Error = searchMessage(err)
			view.Relogin = errors.Is(err, shared.ErrUnauthorized)
		} else {
			view.Tracks = tracks
		}
	}

	a.render(w, status, "player", view)
}

type searchResponse struct {
	Query  string         `json:"query"`
	Tracks []models.Track `json:"tracks"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Search returns search results as JSON.
func (a *App) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if strings.TrimSpace(query) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: shared.ErrEmptyQuery.Error()})
		return
	}

	token, err := a.store.Load()
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
		return
	}

	tracks, err := a.catalog.SearchTracks(r.Context(), query, token)
	if err != nil {
		a.logger.Error("search failed", "query", query, "error", err)
		writeJSON(w, searchStatus(err), errorResponse{Error: searchMessage(err)})
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{Query: query, Tracks: tracks})
}

// Logout clears the stored token.
func (a *App) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.store.Clear(); err != nil {
		a.logger.Error("failed to clear token", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (a *App) render(w http.ResponseWriter, status int, page string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := a.pages[page].ExecuteTemplate(w, "layout", data); err != nil {
		a.logger.Error("failed to render page", "page", page, "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func searchStatus(err error) int {
	switch {
	case errors.Is(err, shared.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, shared.ErrEmptyQuery):
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

func searchMessage(err error) string {
	switch {
	case errors.Is(err, shared.ErrUnauthorized):
		return "Your Spotify session has expired."
	case errors.Is(err, shared.ErrNetwork):
		return "Could not reach Spotify. Check your connection and try again."
	default:
		return "Search failed: " + err.Error()
	}
}

func loginMessage(err error) string {
	switch {
	case errors.Is(err, shared.ErrAuthorizationDenied):
		return "Spotify did not authorize jukebox. " + err.Error()
	case errors.Is(err, shared.ErrInvalidState):
		return "The login request expired or did not start here. Start the login again."
	case errors.Is(err, shared.ErrTokenExchangeFailed):
		return "Spotify rejected the login. Check the client id, secret and redirect URI."
	default:
		return err.Error()
	}
}
