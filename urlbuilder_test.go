package htmox

import (
	"testing"
)

func TestURLBuilderBuild(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		rawQuery string
		params   map[string]string
		expect   string
	}{
		{
			name:   "no params",
			path:   "/counter",
			expect: "/counter",
		},
		{
			name:     "existing query carried over",
			path:     "/counter",
			rawQuery: "count=2&filter=active",
			expect:   "/counter?count=2&filter=active",
		},
		{
			name:     "new param merged",
			path:     "/counter",
			rawQuery: "filter=active",
			params:   map[string]string{"count": "3"},
			expect:   "/counter?count=3&filter=active",
		},
		{
			name:     "new param overwrites existing",
			path:     "/counter",
			rawQuery: "count=2",
			params:   map[string]string{"count": "3"},
			expect:   "/counter?count=3",
		},
		{
			name:     "empty value dropped",
			path:     "/users",
			rawQuery: "filter=bob&sort=name",
			params:   map[string]string{"filter": ""},
			expect:   "/users?sort=name",
		},
		{
			name:     "empty keys and values in query ignored",
			path:     "/x",
			rawQuery: "=1&a=&b=2",
			expect:   "/x?b=2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := NewURLBuilder(tt.path, tt.rawQuery)
			if tt.params != nil {
				u = u.WithParams(tt.params)
			}
			if got := u.Build(); got != tt.expect {
				t.Errorf("Build() = %q, want %q", got, tt.expect)
			}
		})
	}
}

func TestURLBuilderImmutable(t *testing.T) {
	base := NewURLBuilder("/counter", "count=1")
	derived := base.Param("count", "2")

	if got := base.Build(); got != "/counter?count=1" {
		t.Errorf("base mutated: Build() = %q", got)
	}
	if got := derived.Build(); got != "/counter?count=2" {
		t.Errorf("derived Build() = %q, want /counter?count=2", got)
	}
}

func TestURLBuilderPageURL(t *testing.T) {
	tests := []struct {
		name     string
		mainPage string
		rawQuery string
		expect   string
	}{
		{"default main page", "", "count=3", "/?count=3"},
		{"explicit main page", "/dashboard", "count=3", "/dashboard?count=3"},
		{"no params", "/dashboard", "", "/dashboard"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := NewURLBuilder("/counter", tt.rawQuery)
			if tt.mainPage != "" {
				u = u.WithMainPage(tt.mainPage)
			}
			if got := u.PageURL(); got != tt.expect {
				t.Errorf("PageURL() = %q, want %q", got, tt.expect)
			}
		})
	}
}

func TestURLBuilderBuildPage(t *testing.T) {
	u := NewURLBuilder("/counter", "count=3")
	if got := u.BuildPage("/other"); got != "/other?count=3" {
		t.Errorf("BuildPage() = %q, want /other?count=3", got)
	}
}

type stubRef struct{ route Route }

func (s stubRef) Route() Route { return s.route }

func TestURLBuilderFor(t *testing.T) {
	ref := stubRef{route: Route{Name: "toggle", Method: "POST", Path: "/todos/{id}/toggle"}}

	u := NewURLBuilder("/todo_list", "filter=active").For(ref).PathParam("id", "7")
	if got := u.Build(); got != "/todos/7/toggle?filter=active" {
		t.Errorf("Build() = %q, want /todos/7/toggle?filter=active", got)
	}
}

func TestURLBuilderPathParamEscaped(t *testing.T) {
	ref := stubRef{route: Route{Name: "show", Method: "GET", Path: "/files/{name}"}}

	u := NewURLBuilder("/x", "").For(ref).PathParam("name", "a b/c")
	if got := u.Build(); got != "/files/a%20b%2Fc" {
		t.Errorf("Build() = %q, want /files/a%%20b%%2Fc", got)
	}
}

func TestURLBuilderParamsCopy(t *testing.T) {
	u := NewURLBuilder("/x", "a=1")
	params := u.Params()
	params["a"] = "mutated"

	if got := u.Build(); got != "/x?a=1" {
		t.Errorf("Params() leaked internal map: Build() = %q", got)
	}
}
