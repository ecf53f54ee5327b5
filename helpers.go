package htmox

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/a-h/templ"
)

// Render writes a templ component to the HTTP response as text/html.
//
// Page and component routes registered through App use this internally;
// call it directly from handlers registered outside htmox:
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    htmox.Render(w, r, myTemplate())
//	}
func Render(w http.ResponseWriter, r *http.Request, component templ.Component) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(r.Context(), w)
}

// IsHTMX reports whether the request originated from htmx.
//
// htmx sends HX-Request: true on every request it makes. Use this to render
// a partial for htmx and a full page for direct browser navigation.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// IsBoosted reports whether the request is a boosted navigation (hx-boost).
func IsBoosted(r *http.Request) bool {
	return r.Header.Get("HX-Boosted") == "true"
}

// CurrentURL returns the browser's current URL from the HX-Current-URL
// header, or "" for non-htmx requests.
func CurrentURL(r *http.Request) string {
	return r.Header.Get("HX-Current-URL")
}

// CurrentPagePath returns the path portion of HX-Current-URL: the page the
// browser is on, without scheme, host, or query. Returns "" when the header
// is absent.
//
// Component URLs differ from page URLs, so the request URL alone cannot tell
// a component which page it is rendered on; this header can.
func CurrentPagePath(r *http.Request) string {
	cur := r.Header.Get("HX-Current-URL")
	if cur == "" {
		return ""
	}
	cur, _, _ = strings.Cut(cur, "?")
	cur, _, _ = strings.Cut(cur, "#")
	// Strip scheme://host if present.
	if idx := strings.Index(cur, "://"); idx >= 0 {
		cur = cur[idx+3:]
		if slash := strings.Index(cur, "/"); slash >= 0 {
			cur = cur[slash:]
		} else {
			cur = "/"
		}
	}
	if cur == "" {
		cur = "/"
	}
	return cur
}

// TriggerName returns the name attribute of the element that triggered the
// request, or "".
func TriggerName(r *http.Request) string {
	return r.Header.Get("HX-Trigger-Name")
}

// TriggerID returns the id attribute of the triggering element, or "".
func TriggerID(r *http.Request) string {
	return r.Header.Get("HX-Trigger")
}

// TargetID returns the id attribute of the target element, or "".
func TargetID(r *http.Request) string {
	return r.Header.Get("HX-Target")
}

// BuildTriggerHeader formats an HX-Trigger header value.
//
// A bare event name stays a bare name; an event with data becomes the JSON
// object form, so listeners receive the data as evt.detail:
//
//	BuildTriggerHeader("item-updated", nil)                      // item-updated
//	BuildTriggerHeader("filter:changed", map[string]any{"s": 1}) // {"filter:changed":{"s":1}}
func BuildTriggerHeader(event string, data map[string]any) string {
	if event == "" {
		return ""
	}
	if data == nil {
		return event
	}
	payload, _ := json.Marshal(map[string]any{event: data})
	return string(payload)
}
