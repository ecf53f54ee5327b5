package htmox

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"net/http"
	"sort"

	"github.com/a-h/templ"
	"github.com/pthm/htmox/lib/encoding"
)

// PageFunc renders a full page for a GET route.
type PageFunc func(ctx context.Context, r *http.Request) templ.Component

// App owns the route registry and the middleware that makes URL state work.
// It wraps *http.ServeMux; pages and components registered here become
// ordinary mux routes.
type App struct {
	mux         *http.ServeMux
	log         *slog.Logger
	codec       *encoding.Codec
	key         []byte
	cookieState bool
	stateURLsOn bool
	denylist    map[string]struct{}
	routes      map[string]RouteHandler

	// OnError is called when state decoding fails for a component request.
	// The default maps decode errors to 400 and everything else to 500.
	OnError func(http.ResponseWriter, *http.Request, error)
}

// RouteHandler pairs a registered route with its handler, for adapters that
// mount htmox routes onto another router.
type RouteHandler struct {
	Route
	Handler http.Handler
}

// Option configures an App.
type Option func(*App)

// WithKey sets the key for the opaque-state codec. Use at least 32 bytes of
// random data in production; without this option a random per-process key is
// generated, which breaks sensitive-state URLs across restarts.
func WithKey(key []byte) Option {
	return func(a *App) { a.key = key }
}

// WithLogger sets the logger used for registration and error reporting.
func WithLogger(log *slog.Logger) Option {
	return func(a *App) { a.log = log }
}

// WithCookieState enables the cookie fallback for component state: fields
// absent from the URL hydrate from same-named cookies, and hydrated state is
// written back to cookies after each component request.
func WithCookieState() Option {
	return func(a *App) { a.cookieState = true }
}

// WithStateURLs enables the middleware that redirects bare page loads to
// URLs carrying the current cookie state. An optional config replaces the
// default denylist; the denylist also governs which cookies participate in
// cookie state.
func WithStateURLs(cfg ...StateURLsConfig) Option {
	return func(a *App) {
		a.stateURLsOn = true
		if len(cfg) > 0 {
			a.denylist = make(map[string]struct{}, len(cfg[0].deny))
			for _, name := range cfg[0].deny {
				a.denylist[name] = struct{}{}
			}
		}
	}
}

// New creates an App.
func New(opts ...Option) *App {
	a := &App{
		mux:      http.NewServeMux(),
		log:      slog.Default(),
		routes:   make(map[string]RouteHandler),
		denylist: make(map[string]struct{}, len(defaultDenylist)),
	}
	for _, name := range defaultDenylist {
		a.denylist[name] = struct{}{}
	}
	for _, opt := range opts {
		opt(a)
	}

	key := a.key
	if key == nil {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			panic(fmt.Sprintf("htmox: failed to generate state key: %v", err))
		}
	}
	codec, err := encoding.NewCodec(key)
	if err != nil {
		panic(fmt.Sprintf("htmox: failed to create state codec: %v", err))
	}
	a.codec = codec

	a.OnError = func(w http.ResponseWriter, r *http.Request, err error) {
		if IsDecodeError(err) {
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}
		a.log.Error("component request failed", "path", r.URL.Path, "err", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}

	return a
}

// Codec exposes the opaque-state codec, for signing values such as session
// cookies with the app's key.
func (a *App) Codec() *encoding.Codec {
	return a.codec
}

// Page registers a GET route rendering a full page.
func (a *App) Page(path string, fn PageFunc) {
	a.mux.HandleFunc("GET "+path, func(w http.ResponseWriter, r *http.Request) {
		if err := Render(w, r, fn(r.Context(), r)); err != nil {
			a.log.Error("page render failed", "path", path, "err", err)
		}
	})
}

// HandleFunc registers a raw route on the underlying mux, using Go 1.22
// method patterns ("POST /login").
func (a *App) HandleFunc(pattern string, fn http.HandlerFunc) {
	a.mux.HandleFunc(pattern, fn)
}

// Static serves files from dir under the given URL prefix.
//
//	app.Static("/assets/", "./assets")
func (a *App) Static(prefix, dir string) {
	a.mux.Handle("GET "+prefix, http.StripPrefix(prefix, http.FileServer(http.Dir(dir))))
}

// Routes returns the registered component routes sorted by name.
func (a *App) Routes() []RouteHandler {
	out := make([]RouteHandler, 0, len(a.routes))
	for _, rh := range a.routes {
		out = append(out, rh)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup returns the route registered under a component name.
func (a *App) Lookup(name string) (Route, bool) {
	rh, ok := a.routes[name]
	return rh.Route, ok
}

// Handler returns the complete HTTP handler with middleware applied.
func (a *App) Handler() http.Handler {
	var h http.Handler = a.mux
	if a.stateURLsOn {
		h = a.stateURLs(h)
	}
	return h
}

// Start runs the app on addr. Blocks like http.ListenAndServe.
func (a *App) Start(addr string) error {
	a.log.Info("htmox listening", "addr", addr)
	return http.ListenAndServe(addr, a.Handler())
}

// register adds a component route. Name collisions panic at startup;
// duplicate registration is always a programming error.
func (a *App) register(rt Route, h http.Handler) {
	if _, exists := a.routes[rt.Name]; exists {
		panic(fmt.Sprintf("htmox: component %q already registered", rt.Name))
	}
	a.routes[rt.Name] = RouteHandler{Route: rt, Handler: h}
	a.mux.Handle(rt.Method+" "+rt.Path, h)
	a.log.Info("registered component", "name", rt.Name, "method", rt.Method, "path", rt.Path)
}
