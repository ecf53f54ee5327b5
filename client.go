package htmox

import (
	"context"
	"fmt"
	"html"
	"io"
	"sort"

	"github.com/a-h/templ"
)

// CookieCleanerScript returns a script tag that clears cookies for empty
// parameter values on the client.
//
// Browsers drop empty form inputs from requests, so a field cleared in the
// UI would otherwise resurrect from its cookie on the next page load. The
// script watches htmx requests and expires the matching cookie whenever a
// parameter goes out empty. Include it in your layout's head, after htmx:
//
//	<script src="https://unpkg.com/htmx.org@2.0.3"></script>
//	@htmox.CookieCleanerScript()
//
// Only relevant with WithCookieState enabled.
func CookieCleanerScript() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<script>
document.addEventListener('DOMContentLoaded', function() {
  document.body.addEventListener('htmx:configRequest', function(evt) {
    for (const [key, value] of Object.entries(evt.detail.parameters)) {
      if (value === '') {
        document.cookie = key + '=; path=/; max-age=0';
      }
    }
  });
});
</script>`)
		return err
	})
}

// PreserveParams renders hidden inputs for URL parameters not listed in
// exclude, so a form that edits one parameter submits the rest unchanged:
//
//	<form hx-get={ u.Build() }>
//	  <input type="text" name="filter" value={ state.Filter }/>
//	  @htmox.PreserveParams(u.Params(), "filter")
//	</form>
//
// Empty values are skipped. Output order is sorted for stable markup.
func PreserveParams(params map[string]string, exclude ...string) templ.Component {
	skip := make(map[string]struct{}, len(exclude))
	for _, name := range exclude {
		skip[name] = struct{}{}
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		keys := make([]string, 0, len(params))
		for k := range params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			v := params[k]
			if v == "" {
				continue
			}
			if _, ok := skip[k]; ok {
				continue
			}
			_, err := fmt.Fprintf(w, `<input type="hidden" name="%s" value="%s">`,
				html.EscapeString(k), html.EscapeString(v))
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// ClearInputHandler returns an onclick expression that clears an input and
// re-fires its htmx trigger, for "clear search" style buttons:
//
//	<button onclick={ htmox.ClearInputHandler("search-input", "keyup") }>Clear</button>
func ClearInputHandler(inputID, event string) string {
	return fmt.Sprintf(
		"document.getElementById('%s').value = ''; htmx.trigger('#%s', '%s');",
		inputID, inputID, event,
	)
}
