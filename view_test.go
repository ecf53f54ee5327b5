package htmox

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestViewHTML(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	v := HTML(textComponent("<div>partial</div>")).
		PushURL("/todos?filter=active").
		Trigger("todo:created", map[string]any{"id": 3}).
		Retarget("#list").
		Reswap(SwapInner)

	if err := v.Render(w, r); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if w.Body.String() != "<div>partial</div>" {
		t.Errorf("body = %q", w.Body.String())
	}
	if got := w.Header().Get("HX-Push-Url"); got != "/todos?filter=active" {
		t.Errorf("HX-Push-Url = %q", got)
	}
	if got := w.Header().Get("HX-Trigger"); got != `{"todo:created":{"id":3}}` {
		t.Errorf("HX-Trigger = %q", got)
	}
	if got := w.Header().Get("HX-Retarget"); got != "#list" {
		t.Errorf("HX-Retarget = %q", got)
	}
	if got := w.Header().Get("HX-Reswap"); got != "innerHTML" {
		t.Errorf("HX-Reswap = %q", got)
	}
	if got := w.Header().Get("Content-Type"); got != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", got)
	}
}

func TestViewFullPage(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	if err := FullPage(textComponent("<body>page</body>")).Render(w, r); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	body := w.Body.String()
	if !strings.HasPrefix(body, "<!DOCTYPE html>") {
		t.Errorf("body missing doctype: %q", body)
	}
	if !strings.Contains(body, "<html><body>page</body></html>") {
		t.Errorf("body not wrapped: %q", body)
	}
}

func TestViewEmpty(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", nil)

	v := Empty().Status(http.StatusNoContent).Header("X-Checked", "1")
	if err := v.Render(w, r); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", w.Body.String())
	}
	if got := w.Header().Get("X-Checked"); got != "1" {
		t.Errorf("X-Checked = %q", got)
	}
	if got := w.Header().Get("Content-Type"); got != "" {
		t.Errorf("Content-Type = %q, want unset for empty view", got)
	}
}

func TestViewRedirect(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", nil)

	if err := Empty().Redirect("/login").Render(w, r); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got := w.Header().Get("HX-Redirect"); got != "/login" {
		t.Errorf("HX-Redirect = %q", got)
	}
}

func TestViewBareTrigger(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	if err := HTML(textComponent("x")).Trigger("refreshed").Render(w, r); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got := w.Header().Get("HX-Trigger"); got != "refreshed" {
		t.Errorf("HX-Trigger = %q, want bare event name", got)
	}
}

func TestViewComponentAccessor(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	c := HTML(textComponent("inner")).Component()
	if err := c.Render(r.Context(), w); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if w.Body.String() != "inner" {
		t.Errorf("body = %q", w.Body.String())
	}

	var empty strings.Builder
	if err := Empty().Component().Render(r.Context(), &empty); err != nil {
		t.Fatalf("empty Component() render error = %v", err)
	}
	if empty.String() != "" {
		t.Errorf("empty component output = %q", empty.String())
	}
}
