package htmox

import (
	"net/http"
	"net/url"
)

// defaultDenylist covers cookie names that must never leak into URLs or be
// treated as component state.
var defaultDenylist = []string{
	"token",
	"session",
	"session_id",
	"sessionid",
	"csrf",
	"csrf_token",
	"auth",
	"auth_token",
	"jwt",
	"bearer",
	"id",
}

// StateURLsConfig configures the state-URLs middleware and the cookie
// denylist shared with cookie state persistence.
type StateURLsConfig struct {
	deny []string
}

// NewStateURLsConfig returns a config with the default denylist.
func NewStateURLsConfig() StateURLsConfig {
	return StateURLsConfig{deny: append([]string(nil), defaultDenylist...)}
}

// Deny adds cookie names to the denylist.
//
//	cfg := htmox.NewStateURLsConfig().Deny("internal_state")
func (c StateURLsConfig) Deny(names ...string) StateURLsConfig {
	c.deny = append(append([]string(nil), c.deny...), names...)
	return c
}

// stateURLs redirects page loads without query parameters to a URL carrying
// the current cookie state.
//
// A user who set filter=active yesterday has the cookie but visits the bare
// URL today; redirecting to /todos?filter=active makes the state visible,
// bookmarkable, and consistent with what components will render. htmx
// requests and URLs that already carry parameters pass through untouched.
func (a *App) stateURLs(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || IsHTMX(r) || r.URL.RawQuery != "" {
			next.ServeHTTP(w, r)
			return
		}

		params := url.Values{}
		for _, ck := range r.Cookies() {
			if ck.Value == "" || a.cookieDenied(ck.Name) {
				continue
			}
			v, err := url.QueryUnescape(ck.Value)
			if err != nil || v == "" {
				continue
			}
			params.Set(ck.Name, v)
		}

		if len(params) == 0 {
			next.ServeHTTP(w, r)
			return
		}

		http.Redirect(w, r, r.URL.Path+"?"+params.Encode(), http.StatusSeeOther)
	})
}
