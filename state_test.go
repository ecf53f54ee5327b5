package htmox

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type prefsState struct {
	Filter string
	Count  int
}

func newPrefsApp(opts ...Option) *App {
	app := New(opts...)
	Component(app, "prefs", func(ctx context.Context, state prefsState, u *URLBuilder, r *http.Request) *View {
		return HTML(textComponent("filter=%s count=%d", state.Filter, state.Count))
	})
	return app
}

func TestStatePrecedence(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		cookies map[string]string
		expect  string
	}{
		{
			name:   "url param wins over cookie",
			target: "/prefs?filter=active",
			cookies: map[string]string{
				"filter": "completed",
			},
			expect: "filter=active count=0",
		},
		{
			name:   "cookie fills absent param",
			target: "/prefs?count=3",
			cookies: map[string]string{
				"filter": "completed",
			},
			expect: "filter=completed count=3",
		},
		{
			name:   "defaults when neither present",
			target: "/prefs",
			expect: "filter= count=0",
		},
		{
			name:   "unset sentinel clears despite cookie",
			target: "/prefs?filter=" + Unset,
			cookies: map[string]string{
				"filter": "completed",
			},
			expect: "filter= count=0",
		},
		{
			name:   "denylisted cookie ignored",
			target: "/prefs",
			cookies: map[string]string{
				"session": "abc",
				"filter":  "active",
			},
			expect: "filter=active count=0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newPrefsApp(WithCookieState())
			b := NewTestRequest(http.MethodGet, tt.target)
			for k, v := range tt.cookies {
				b = b.Cookie(k, v)
			}
			result := b.Execute(app)
			if result.HTML != tt.expect {
				t.Errorf("body = %q, want %q", result.HTML, tt.expect)
			}
		})
	}
}

func TestCookieFallbackDisabledByDefault(t *testing.T) {
	app := newPrefsApp()

	result := NewTestRequest(http.MethodGet, "/prefs").
		Cookie("filter", "completed").
		Execute(app)
	if result.HTML != "filter= count=0" {
		t.Errorf("body = %q, want cookie ignored without WithCookieState", result.HTML)
	}
}

func TestStateWrittenBackToCookies(t *testing.T) {
	app := newPrefsApp(WithCookieState())

	result := TestGet(app, "/prefs?filter=active&count=2")
	if got := result.SetCookieValue("filter"); got != "active" {
		t.Errorf("filter cookie = %q, want active", got)
	}
	if got := result.SetCookieValue("count"); got != "2" {
		t.Errorf("count cookie = %q, want 2", got)
	}
}

func TestEmptyStateRemovesCookie(t *testing.T) {
	app := newPrefsApp(WithCookieState())

	result := NewTestRequest(http.MethodGet, "/prefs?filter="+Unset).
		Cookie("filter", "completed").
		Execute(app)

	for _, line := range result.Headers.Values("Set-Cookie") {
		if strings.HasPrefix(line, "filter=") {
			if !strings.Contains(line, "Max-Age=0") {
				t.Errorf("filter cookie not expired: %q", line)
			}
			return
		}
	}
	t.Error("no Set-Cookie for filter")
}

func TestCookieValuesWithSpacesSurvive(t *testing.T) {
	app := New(WithCookieState())
	Component(app, "greeter", func(ctx context.Context, state struct{ Name string }, u *URLBuilder, r *http.Request) *View {
		return HTML(textComponent("Hello, %s!", state.Name))
	})

	// First request sets the cookie from the URL.
	first := TestGet(app, "/greeter?name=Ada+Lovelace")
	if got := first.SetCookieValue("name"); got != "Ada Lovelace" {
		t.Fatalf("name cookie = %q, want Ada Lovelace", got)
	}

	// Second request hydrates from the cookie alone.
	second := NewTestRequest(http.MethodGet, "/greeter").
		Cookie("name", "Ada Lovelace").
		Execute(app)
	if !second.HTMLContains("Hello, Ada Lovelace!") {
		t.Errorf("body = %q, want greeting from cookie", second.HTML)
	}
}

func TestStateHelperReadsQueryOnly(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/page?filter=active&count=9", nil)
	req.AddCookie(&http.Cookie{Name: "count", Value: "4"})

	state := State[prefsState](req)
	if state.Filter != "active" || state.Count != 9 {
		t.Errorf("State() = %+v, want {active 9}", state)
	}

	// Without query params the helper returns zero values, never cookies.
	bare := httptest.NewRequest(http.MethodGet, "/page", nil)
	bare.AddCookie(&http.Cookie{Name: "count", Value: "4"})
	if got := State[prefsState](bare); got.Count != 0 {
		t.Errorf("State() = %+v, want zero state", got)
	}
}

func TestMalformedValuesDegradeToZero(t *testing.T) {
	app := newPrefsApp()

	result := TestGet(app, "/prefs?count=notanumber&filter=ok")
	if result.HTML != "filter=ok count=0" {
		t.Errorf("body = %q, want malformed count ignored", result.HTML)
	}
}
