// Package htmox is a convenience layer over net/http for building
// htmx-driven, server-rendered UIs with Go and Templ templates.
//
// htmox adds three things to the standard router: component-oriented route
// registration, URL-parameter state hydration with optional cookie fallback,
// and a URL builder for constructing component and page URLs that preserve
// the rest of the current query string.
//
// # Components
//
// A component is a handler function registered for automatic routing. The
// signature is fixed: the component's state struct, a URL builder, and the
// raw request:
//
//	type CounterState struct {
//	    Count int
//	}
//
//	func counter(ctx context.Context, state CounterState, u *htmox.URLBuilder, r *http.Request) *htmox.View {
//	    inc := u.Param("count", strconv.Itoa(state.Count+1))
//	    return htmox.HTML(counterMarkup(state, inc)).PushURL(u.PageURL())
//	}
//
//	app := htmox.New()
//	htmox.Component(app, "counter", counter)
//
// Registration derives the route from the component name (GET /counter by
// default) and records the name and path template in the app's registry so
// URL builders can address components by reference. Path, Prefix, and Method
// options override the derived route:
//
//	htmox.Component(app, "toggle_todo", toggle,
//	    htmox.Prefix("/todos"), htmox.Path("/{id}/toggle"), htmox.Method(http.MethodPost))
//
// # State hydration
//
// State structs are hydrated from the query string before the component runs.
// Field names map to parameter names as snake_case, overridable with a
// `qs:"name"` tag. Precedence is last-writer-wins: a URL parameter is used
// when present; otherwise a cookie named after the field (when cookie state
// is enabled via WithCookieState); otherwise the zero value. The sentinel
// value Unset clears a field explicitly instead of falling back.
//
// With cookie state enabled the hydrated state is written back to cookies
// after each component request, so state survives navigation. The state-URLs
// middleware (WithStateURLs) completes the loop by redirecting cookie-only
// page loads to URLs that carry the state, keeping pages bookmarkable.
//
// # URL building
//
// The URLBuilder passed to every component captures the current query
// parameters. Derived builders merge new parameters over them, so a counter
// can change count without dropping another component's filter:
//
//	u.Param("count", "3").Build()       // /counter?count=3&filter=active
//	u.PageURL()                          // /dashboard?count=3&filter=active
//	u.For(todoToggle).PathParam("id", "7").Build()
//
// Empty keys and values are dropped at build time. For retargets a builder
// at another registered component; PathParam fills {name} segments of its
// path template.
//
// # Security
//
// Components marked Sensitive round-trip state as a single opaque parameter:
// msgpack encoded and AES-256-GCM encrypted, so state is invisible to
// clients. Non-sensitive state is plain query parameters, which is the
// debuggable default. Mutating component routes (POST/PUT/PATCH/DELETE)
// require the HX-Request header that htmx sends, which blocks plain
// cross-origin form posts without extra tokens.
//
// # Pages and rendering
//
// Pages are ordinary GET routes returning a templ.Component. Components can
// be embedded in pages server-side with Ref.Embed, which runs the same
// hydration pipeline in-process:
//
//	app.Page("/", func(ctx context.Context, r *http.Request) templ.Component {
//	    return indexPage(counterRef.Embed(r))
//	})
//
// Everything else is net/http: middleware, servers, and error handling work
// the way they always do.
package htmox
