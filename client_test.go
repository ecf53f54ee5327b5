package htmox

import (
	"context"
	"strings"
	"testing"
)

func TestCookieCleanerScript(t *testing.T) {
	var b strings.Builder
	if err := CookieCleanerScript().Render(context.Background(), &b); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := b.String()
	if !strings.HasPrefix(out, "<script>") || !strings.HasSuffix(out, "</script>") {
		t.Errorf("output not a script tag: %q", out)
	}
	if !strings.Contains(out, "htmx:configRequest") {
		t.Errorf("output missing htmx:configRequest listener: %q", out)
	}
	if !strings.Contains(out, "max-age=0") {
		t.Errorf("output missing cookie expiry: %q", out)
	}
}

func TestPreserveParams(t *testing.T) {
	params := map[string]string{
		"filter": "active",
		"sort":   "name",
		"page":   "2",
		"empty":  "",
	}

	var b strings.Builder
	if err := PreserveParams(params, "filter").Render(context.Background(), &b); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := b.String()

	want := `<input type="hidden" name="page" value="2"><input type="hidden" name="sort" value="name">`
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestPreserveParamsEscapes(t *testing.T) {
	var b strings.Builder
	err := PreserveParams(map[string]string{"q": `<b>"x"</b>`}).Render(context.Background(), &b)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if strings.Contains(b.String(), "<b>") {
		t.Errorf("value not escaped: %q", b.String())
	}
	if !strings.Contains(b.String(), "&lt;b&gt;") {
		t.Errorf("expected escaped value in %q", b.String())
	}
}

func TestClearInputHandler(t *testing.T) {
	got := ClearInputHandler("search-input", "keyup")
	want := "document.getElementById('search-input').value = ''; htmx.trigger('#search-input', 'keyup');"
	if got != want {
		t.Errorf("ClearInputHandler() = %q, want %q", got, want)
	}
}
