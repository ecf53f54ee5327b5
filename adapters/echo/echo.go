// Package htmoxecho provides Echo framework integration for htmox apps.
//
// Build the app and its components as usual, then mount the component
// routes onto an Echo instance or group:
//
//	app := htmox.New(htmox.WithKey(key))
//	counter := htmox.Component(app, "counter", renderCounter)
//
//	e := echo.New()
//	htmoxecho.Mount(e, app)
//
// Pages stay on the Echo side; render them with Render.
package htmoxecho

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/pthm/htmox"
)

// Mount registers every component route of app on an Echo instance.
//
//	e := echo.New()
//	htmoxecho.Mount(e, app)
func Mount(e *echo.Echo, app *htmox.App) {
	for _, rh := range app.Routes() {
		e.Add(rh.Method, echoPath(rh.Path), wrap(rh.Handler))
	}
}

// MountGroup registers every component route of app on an Echo group, so
// components share the group's middleware (auth, logging, etc.):
//
//	g := e.Group("/app", authMiddleware)
//	htmoxecho.MountGroup(g, app)
func MountGroup(g *echo.Group, app *htmox.App) {
	for _, rh := range app.Routes() {
		g.Add(rh.Method, echoPath(rh.Path), wrap(rh.Handler))
	}
}

// wrap adapts an htmox route handler into an Echo handler. Echo captures
// path parameters itself, so they are copied back onto the request where
// net/http handlers expect them.
func wrap(h http.Handler) echo.HandlerFunc {
	return func(c echo.Context) error {
		r := c.Request()
		for _, name := range c.ParamNames() {
			r.SetPathValue(name, c.Param(name))
		}
		h.ServeHTTP(c.Response(), r)
		return nil
	}
}

// Render writes a templ component to the Echo response.
//
//	func handler(c echo.Context) error {
//	    return htmoxecho.Render(c, myTemplate())
//	}
func Render(c echo.Context, component templ.Component) error {
	c.Response().Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(c.Request().Context(), c.Response())
}

// echoPath converts a net/http route pattern to Echo syntax:
// /todos/{id}/toggle becomes /todos/:id/toggle.
func echoPath(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			segments[i] = ":" + seg[1:len(seg)-1]
		}
	}
	return strings.Join(segments, "/")
}
