package server

import (
	"errors"
	"html/template"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"

	"github.com/desertthunder/jukebox/internal/auth"
	"github.com/desertthunder/jukebox/internal/shared"
)

// OAuthResult contains the result of an OAuth authorization flow.
type OAuthResult struct {
	Token *oauth2.Token
	err   error
}

func (o *OAuthResult) Error() error {
	return o.err
}

var callbackPage = template.Must(template.New("callback").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>{{.Title}}</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               display: flex; align-items: center; justify-content: center; height: 100vh;
               margin: 0; background: #f5f5f5; }
        .container { text-align: center; background: white; padding: 2rem;
                     border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        h1 { margin: 0 0 1rem 0; }
        h1.ok { color: #1DB954; }
        h1.error { color: #e22134; }
        p { color: #666; margin: 0; }
    </style>
</head>
<body>
    <div class="container">
        {{if .Err}}<h1 class="error">{{.Title}}</h1>
        <p>{{.Err}}</p>{{else}}<h1 class="ok">&#10003; {{.Title}}</h1>
        <p>You can close this window and return to the terminal.</p>{{end}}
    </div>
</body>
</html>
`))

type callbackView struct {
	Title string
	Err   string
}

// OAuthHandler handles the single OAuth2 callback of a CLI login.
// Implements the Handler interface for registration with a Router.
type OAuthHandler struct {
	flow        *auth.Flow
	store       auth.TokenStore
	state       string
	logger      *log.Logger
	resultChan  chan OAuthResult
	once        sync.Once
	callbackHit bool
	mu          sync.Mutex
}

// NewOAuthHandler creates a new OAuth handler for flow and the state token sent with the authorize request.
// The state token should be cryptographically random for CSRF protection.
func NewOAuthHandler(flow *auth.Flow, store auth.TokenStore, state string, logger *log.Logger) *OAuthHandler {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &OAuthHandler{
		flow:       flow,
		store:      store,
		state:      state,
		logger:     logger,
		resultChan: make(chan OAuthResult, 1),
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *OAuthHandler) Routes() []string {
	return []string{"/callback"}
}

// ServeHTTP handles the OAuth callback request.
func (h *OAuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	if h.callbackHit {
		h.mu.Unlock()
		http.Error(w, "Callback already processed", http.StatusBadRequest)
		return
	}
	h.callbackHit = true
	h.mu.Unlock()

	token, err := h.flow.CompleteLogin(r.Context(), r.URL, h.state, h.store)
	if err != nil {
		h.Send(OAuthResult{err: err})
		status, title := CallbackErrorStatus(err)
		render(w, status, callbackView{Title: title, Err: err.Error()}, h.logger)
		return
	}

	h.Send(OAuthResult{Token: token})
	render(w, http.StatusOK, callbackView{Title: "Authorization Successful"}, h.logger)
}

// CallbackErrorStatus maps a login failure to an HTTP status and page title.
func CallbackErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, shared.ErrAuthorizationDenied):
		return http.StatusBadRequest, "Authorization Denied"
	case errors.Is(err, shared.ErrInvalidState):
		return http.StatusBadRequest, "Invalid State"
	case errors.Is(err, shared.ErrTokenExchangeFailed):
		return http.StatusBadGateway, "Token Exchange Failed"
	default:
		return http.StatusInternalServerError, "Login Failed"
	}
}

func render(w http.ResponseWriter, status int, view callbackView, logger *log.Logger) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := callbackPage.Execute(w, view); err != nil {
		logger.Error("failed to render callback page", "error", err)
	}
}

// Send sends the OAuth result through the channel (only once).
func (h *OAuthHandler) Send(result OAuthResult) {
	h.once.Do(func() {
		h.resultChan <- result
		close(h.resultChan)
	})
}

// Result returns the result channel for receiving OAuth flow completion.
//
// Channel will receive exactly one result and then be closed.
func (h *OAuthHandler) Result() <-chan OAuthResult {
	return h.resultChan
}
