package htmox

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
)

// TestResult holds the response from driving a request through an App,
// with probes for the assertions component tests usually make.
type TestResult struct {
	HTML       string
	StatusCode int
	Headers    http.Header
}

// TestGet drives a GET request through the app's full handler chain,
// including state hydration and middleware.
//
//	result := htmox.TestGet(app, "/counter?count=2")
//	if !result.HTMLContains("Counter: 2") { t.Fatal(...) }
func TestGet(app *App, target string) *TestResult {
	return NewTestRequest(http.MethodGet, target).Execute(app)
}

// TestPost drives a POST with form data. The HX-Request header is set, as
// htmx would, so the request passes the mutation check.
func TestPost(app *App, target string, form map[string]string) *TestResult {
	b := NewTestRequest(http.MethodPost, target)
	for k, v := range form {
		b = b.Form(k, v)
	}
	return b.Execute(app)
}

// TestRequestBuilder builds requests for tests that need cookies, headers,
// or contexts beyond what TestGet/TestPost cover:
//
//	result := htmox.NewTestRequest(http.MethodGet, "/greeter").
//	    Cookie("name", "Ada").
//	    Execute(app)
type TestRequestBuilder struct {
	method  string
	target  string
	form    url.Values
	headers map[string]string
	cookies []*http.Cookie
	ctx     context.Context
}

// NewTestRequest creates a builder. Requests carry HX-Request: true by
// default; override with Header("HX-Request", "") to simulate a plain
// browser request.
func NewTestRequest(method, target string) *TestRequestBuilder {
	return &TestRequestBuilder{
		method:  method,
		target:  target,
		form:    url.Values{},
		headers: map[string]string{},
		ctx:     context.Background(),
	}
}

// Form adds a form field to the request body.
func (b *TestRequestBuilder) Form(key, value string) *TestRequestBuilder {
	b.form.Add(key, value)
	return b
}

// Header sets a request header. An empty value removes the header.
func (b *TestRequestBuilder) Header(key, value string) *TestRequestBuilder {
	b.headers[key] = value
	return b
}

// Cookie attaches a cookie, stored the way persistState writes them.
func (b *TestRequestBuilder) Cookie(name, value string) *TestRequestBuilder {
	b.cookies = append(b.cookies, &http.Cookie{Name: name, Value: url.QueryEscape(value)})
	return b
}

// Context sets the request context.
func (b *TestRequestBuilder) Context(ctx context.Context) *TestRequestBuilder {
	b.ctx = ctx
	return b
}

// Execute runs the request against the app's handler and captures the result.
func (b *TestRequestBuilder) Execute(app *App) *TestResult {
	var body *strings.Reader
	if len(b.form) > 0 {
		body = strings.NewReader(b.form.Encode())
	} else {
		body = strings.NewReader("")
	}

	req := httptest.NewRequest(b.method, b.target, body)
	req = req.WithContext(b.ctx)
	req.Header.Set("HX-Request", "true")
	if len(b.form) > 0 {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for k, v := range b.headers {
		if v == "" {
			req.Header.Del(k)
			continue
		}
		req.Header.Set(k, v)
	}
	for _, ck := range b.cookies {
		req.AddCookie(ck)
	}

	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, req)

	return &TestResult{
		HTML:       rec.Body.String(),
		StatusCode: rec.Code,
		Headers:    rec.Header(),
	}
}

// HTMLContains reports whether the body contains substr.
func (r *TestResult) HTMLContains(substr string) bool {
	return strings.Contains(r.HTML, substr)
}

// HTMLContainsAll reports whether the body contains every substring.
func (r *TestResult) HTMLContainsAll(substrs ...string) bool {
	for _, s := range substrs {
		if !strings.Contains(r.HTML, s) {
			return false
		}
	}
	return true
}

// IsOK reports whether the status is 200.
func (r *TestResult) IsOK() bool {
	return r.StatusCode == http.StatusOK
}

// HasStatus reports whether the status matches code.
func (r *TestResult) HasStatus(code int) bool {
	return r.StatusCode == code
}

// HasHeader reports whether a header holds the given value.
func (r *TestResult) HasHeader(key, value string) bool {
	return r.Headers.Get(key) == value
}

// GetHeader returns a response header value.
func (r *TestResult) GetHeader(key string) string {
	return r.Headers.Get(key)
}

// SetCookieValue returns the value written for the named cookie, decoded,
// or "" when the cookie was not set. A removed cookie reports "".
func (r *TestResult) SetCookieValue(name string) string {
	for _, line := range r.Headers.Values("Set-Cookie") {
		parts := strings.SplitN(line, ";", 2)
		kv := strings.SplitN(parts[0], "=", 2)
		if len(kv) != 2 || kv[0] != name {
			continue
		}
		if strings.Contains(line, "Max-Age=0") {
			return ""
		}
		v, err := url.QueryUnescape(kv[1])
		if err != nil {
			return kv[1]
		}
		return v
	}
	return ""
}
