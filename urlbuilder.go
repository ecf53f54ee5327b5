package htmox

import (
	"net/url"
	"strings"
)

// Route identifies a registered component: its name, HTTP method, and path
// template. Path templates may contain {name} segments.
type Route struct {
	Name   string
	Method string
	Path   string
}

// Addressable is satisfied by component references (*Ref[S]) so URL builders
// can be retargeted at a component without knowing its state type.
type Addressable interface {
	Route() Route
}

// URLBuilder merges a base path with the current request's query parameters
// to produce component and page URLs.
//
// Every derived URL carries all current parameters, so one component
// changing its own state preserves everyone else's. Builders are immutable;
// each method returns a modified copy, which keeps the branching URL
// construction in templates safe:
//
//	inc := u.Param("count", "3").Build()
//	all := u.Param("filter", "").PageURL()
type URLBuilder struct {
	path       string
	params     map[string]string
	pathParams map[string]string
	mainPage   string
}

// NewURLBuilder creates a builder for path, seeded with the parameters of
// rawQuery (typically r.URL.RawQuery).
func NewURLBuilder(path, rawQuery string) *URLBuilder {
	u := &URLBuilder{path: path, params: map[string]string{}}
	if rawQuery != "" {
		if vals, err := url.ParseQuery(rawQuery); err == nil {
			for k, vs := range vals {
				if k == "" || len(vs) == 0 {
					continue
				}
				u.params[k] = vs[0]
			}
		}
	}
	return u
}

// WithMainPage sets the page path used by PageURL. Component pipelines set
// this from the HX-Current-URL header.
func (u *URLBuilder) WithMainPage(path string) *URLBuilder {
	c := u.clone()
	c.mainPage = path
	return c
}

// Param returns a copy of the builder with one parameter set.
// Setting an empty value marks the parameter for removal at build time.
func (u *URLBuilder) Param(key, value string) *URLBuilder {
	c := u.clone()
	c.params[key] = value
	return c
}

// WithParams returns a copy with all given parameters merged over the
// current ones.
func (u *URLBuilder) WithParams(params map[string]string) *URLBuilder {
	c := u.clone()
	for k, v := range params {
		c.params[k] = v
	}
	return c
}

// For retargets the builder at a registered component's path template,
// keeping the accumulated parameters and main page.
//
//	u.For(toggleTodo).PathParam("id", "7").Build()
func (u *URLBuilder) For(ref Addressable) *URLBuilder {
	c := u.clone()
	c.path = ref.Route().Path
	return c
}

// PathParam fills a {name} segment of the path template.
func (u *URLBuilder) PathParam(name, value string) *URLBuilder {
	c := u.clone()
	c.pathParams[name] = value
	return c
}

// Params returns a copy of the current parameter set. Useful for rendering
// hidden inputs that preserve other components' state.
func (u *URLBuilder) Params() map[string]string {
	out := make(map[string]string, len(u.params))
	for k, v := range u.params {
		out[k] = v
	}
	return out
}

// Build returns the component URL: the (filled-in) path plus the query
// string. Empty keys and empty values are dropped.
func (u *URLBuilder) Build() string {
	return join(u.fillPath(), u.query())
}

// PageURL returns the main page URL carrying the same parameters, for use
// with hx-push-url so browser history reflects component state. The main
// page defaults to "/" when unset.
func (u *URLBuilder) PageURL() string {
	page := u.mainPage
	if page == "" {
		page = "/"
	}
	return join(page, u.query())
}

// BuildPage returns an explicit page path carrying the same parameters.
func (u *URLBuilder) BuildPage(path string) string {
	return join(path, u.query())
}

func (u *URLBuilder) clone() *URLBuilder {
	c := &URLBuilder{
		path:     u.path,
		params:   make(map[string]string, len(u.params)),
		mainPage: u.mainPage,
	}
	for k, v := range u.params {
		c.params[k] = v
	}
	if len(u.pathParams) > 0 {
		c.pathParams = make(map[string]string, len(u.pathParams))
		for k, v := range u.pathParams {
			c.pathParams[k] = v
		}
	}
	if c.pathParams == nil {
		c.pathParams = map[string]string{}
	}
	return c
}

func (u *URLBuilder) fillPath() string {
	path := u.path
	for name, value := range u.pathParams {
		path = strings.ReplaceAll(path, "{"+name+"}", url.PathEscape(value))
	}
	return path
}

func (u *URLBuilder) query() string {
	vals := url.Values{}
	for k, v := range u.params {
		if k == "" || v == "" {
			continue
		}
		vals.Set(k, v)
	}
	return vals.Encode()
}

func join(path, query string) string {
	if query == "" {
		return path
	}
	return path + "?" + query
}
