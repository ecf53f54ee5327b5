package htmox

import (
	"net/http"
	"net/url"

	"github.com/pthm/htmox/lib/qsval"
)

// Unset is a sentinel query value that explicitly clears a state field.
//
// Browsers omit empty form inputs, so "set this field to empty" is
// indistinguishable from "field not sent" — and an absent field would fall
// back to its cookie. Sending Unset as the value forces the field (and its
// cookie, when cookie state is enabled) to be cleared.
const Unset = "__HTMOX_UNSET__"

// State hydrates a state struct from the request's query string only.
//
// Page handlers use this to extract per-component state before embedding
// components server-side. Component routes get the full pipeline (cookie
// fallback and write-back) automatically; this helper deliberately reads
// just the URL, because the state-URLs middleware has already promoted
// cookies into the query string by the time a page renders.
func State[S any](r *http.Request) S {
	var s S
	merged := url.Values{}
	query := r.URL.Query()
	for _, name := range qsval.Names(&s) {
		vs, ok := queryLookup(query, name)
		if !ok || isUnset(vs) {
			continue
		}
		merged[name] = vs
	}
	_ = qsval.Decode(merged, &s)
	return s
}

// stateValues resolves the effective parameter values for the given field
// names. Precedence per field: query parameter, then cookie (when cookie
// state is enabled and the name is not denylisted), then nothing — the
// field keeps its zero value. The Unset sentinel short-circuits to nothing.
func (a *App) stateValues(names []string, r *http.Request) url.Values {
	merged := url.Values{}
	query := r.URL.Query()
	for _, name := range names {
		if vs, ok := queryLookup(query, name); ok {
			if isUnset(vs) {
				continue
			}
			merged[name] = vs
			continue
		}
		if !a.cookieState || a.cookieDenied(name) {
			continue
		}
		if ck, err := r.Cookie(name); err == nil && ck.Value != "" {
			if v, err := url.QueryUnescape(ck.Value); err == nil && v != "" {
				merged.Set(name, v)
			}
		}
	}
	return merged
}

// persistState writes the hydrated state back to cookies, one cookie per
// field named after the parameter. Empty fields remove their cookie so
// stale values cannot resurrect later. No-op unless cookie state is enabled.
func (a *App) persistState(w http.ResponseWriter, state any) {
	if !a.cookieState {
		return
	}
	fields, err := qsval.Fields(state)
	if err != nil {
		return
	}
	for _, f := range fields {
		if a.cookieDenied(f.Name) {
			continue
		}
		if f.Value == "" {
			http.SetCookie(w, &http.Cookie{
				Name:   f.Name,
				Path:   "/",
				MaxAge: -1,
			})
			continue
		}
		http.SetCookie(w, &http.Cookie{
			Name:  f.Name,
			Value: url.QueryEscape(f.Value),
			Path:  "/",
		})
	}
}

func (a *App) cookieDenied(name string) bool {
	_, ok := a.denylist[name]
	return ok
}

// queryLookup finds values for name, accepting the bracket form used by
// array inputs (name[]=a&name[]=b).
func queryLookup(query url.Values, name string) ([]string, bool) {
	if vs, ok := query[name]; ok {
		return vs, true
	}
	if vs, ok := query[name+"[]"]; ok {
		return vs, true
	}
	return nil, false
}

func isUnset(vs []string) bool {
	return len(vs) == 1 && vs[0] == Unset
}
