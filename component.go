package htmox

import (
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"
	"github.com/pthm/htmox/lib/qsval"
)

// HandlerFunc is the component signature: hydrated state, a URL builder
// seeded with the current query parameters, and the raw request for path
// values, forms, and anything else net/http offers.
type HandlerFunc[S any] func(ctx context.Context, state S, u *URLBuilder, r *http.Request) *View

// routeConfig collects route options before registration.
type routeConfig struct {
	path      string
	prefix    string
	method    string
	sensitive bool
}

// RouteOption customizes a component route.
type RouteOption func(*routeConfig)

// Path sets an explicit path, which may contain {name} segments:
//
//	htmox.Component(app, "toggle_todo", fn, htmox.Prefix("/todos"), htmox.Path("/{id}/toggle"))
func Path(p string) RouteOption {
	return func(c *routeConfig) { c.path = p }
}

// Prefix prepends a path prefix. Without Path the component name still
// provides the final segment: Prefix("/api") + name "report" -> /api/report.
func Prefix(p string) RouteOption {
	return func(c *routeConfig) { c.prefix = p }
}

// Method sets the HTTP method (default GET).
func Method(m string) RouteOption {
	return func(c *routeConfig) { c.method = m }
}

// Sensitive switches the component to opaque state: instead of readable
// query parameters, state rides in a single encrypted "s" parameter built
// by Ref.URL. Use for state that must not be visible or editable client-side.
func Sensitive() RouteOption {
	return func(c *routeConfig) { c.sensitive = true }
}

// Ref is a typed reference to a registered component — the compile-time
// handle for building URLs to it and embedding it in pages. The app's
// registry maps the component name to the same route for adapters and
// diagnostics.
type Ref[S any] struct {
	app       *App
	name      string
	method    string
	path      string
	sensitive bool
	fn        HandlerFunc[S]
}

// Component registers fn as a component route on app and returns its Ref.
//
// The default route is GET /<name>. Path, Prefix, and Method options follow
// the same composition rules throughout:
//
//	Path given:            prefix + path
//	Prefix only:           prefix + "/" + name
//	neither:               "/" + name
func Component[S any](app *App, name string, fn HandlerFunc[S], opts ...RouteOption) *Ref[S] {
	cfg := routeConfig{method: http.MethodGet}
	for _, opt := range opts {
		opt(&cfg)
	}

	path := cfg.path
	switch {
	case path != "":
		path = cfg.prefix + path
	case cfg.prefix != "":
		path = cfg.prefix + "/" + name
	default:
		path = "/" + name
	}

	ref := &Ref[S]{
		app:       app,
		name:      name,
		method:    cfg.method,
		path:      path,
		sensitive: cfg.sensitive,
		fn:        fn,
	}
	app.register(ref.Route(), http.HandlerFunc(ref.serve))
	return ref
}

// Route returns the component's registered route.
func (ref *Ref[S]) Route() Route {
	return Route{Name: ref.name, Method: ref.method, Path: ref.path}
}

// URL returns a direct URL to the component carrying the given state.
// Sensitive components get the opaque form (?s=...); everything else gets
// plain query parameters with empty values dropped.
func (ref *Ref[S]) URL(state S) string {
	if ref.sensitive {
		m, err := qsval.ToMap(state)
		if err != nil {
			return ref.path
		}
		encoded, err := ref.app.codec.Encode(m, true)
		if err != nil {
			ref.app.log.Error("state encoding failed", "component", ref.name, "err", err)
			return ref.path
		}
		return ref.path + "?s=" + encoded
	}

	vals, err := qsval.Encode(state)
	if err != nil {
		return ref.path
	}
	for k, vs := range vals {
		if len(vs) == 0 || (len(vs) == 1 && vs[0] == "") {
			delete(vals, k)
		}
	}
	return join(ref.path, vals.Encode())
}

// Embed renders the component inline during a page render, running the same
// hydration pipeline the component route uses. The page's own path becomes
// the builder's main page, so URLs built inside the component push the right
// browser URL.
func (ref *Ref[S]) Embed(r *http.Request) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		state, err := ref.load(r)
		if err != nil {
			return err
		}
		v := ref.fn(ctx, state, ref.builder(r), r)
		if v == nil {
			return nil
		}
		return v.Component().Render(ctx, w)
	})
}

// serve is the HTTP entry point for the component route.
func (ref *Ref[S]) serve(w http.ResponseWriter, r *http.Request) {
	// Mutations must come from htmx. Plain cross-origin form posts cannot
	// set the HX-Request header, so this check is the CSRF barrier.
	if r.Method != http.MethodGet && r.Method != http.MethodHead && !IsHTMX(r) {
		http.Error(w, "Forbidden: htmx request required", http.StatusForbidden)
		return
	}

	state, err := ref.load(r)
	if err != nil {
		ref.app.OnError(w, r, err)
		return
	}
	if !ref.sensitive {
		ref.app.persistState(w, state)
	}

	v := ref.fn(r.Context(), state, ref.builder(r), r)
	if v == nil {
		return
	}
	if err := v.Render(w, r); err != nil {
		ref.app.log.Error("component render failed", "component", ref.name, "err", err)
	}
}

// load hydrates the component's state from the request.
func (ref *Ref[S]) load(r *http.Request) (S, error) {
	var s S

	if ref.sensitive {
		blob := r.URL.Query().Get("s")
		if blob == "" {
			blob = r.PostFormValue("s")
		}
		if blob == "" {
			return s, nil
		}
		m, err := ref.app.codec.Decode(blob, true)
		if err != nil {
			return s, wrapCodecError(err)
		}
		return s, qsval.FromMap(m, &s)
	}

	vals := ref.app.stateValues(qsval.Names(&s), r)
	return s, qsval.Decode(vals, &s)
}

// builder seeds a URL builder for this request. The main page comes from
// HX-Current-URL when htmx is driving, or the request path when the
// component is embedded in a page render.
func (ref *Ref[S]) builder(r *http.Request) *URLBuilder {
	u := NewURLBuilder(ref.path, r.URL.RawQuery)
	if page := CurrentPagePath(r); page != "" {
		return u.WithMainPage(page)
	}
	if r.URL.Path != ref.path {
		return u.WithMainPage(r.URL.Path)
	}
	return u
}
