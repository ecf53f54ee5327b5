package htmox

import (
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"
)

// View is the response returned by component handlers. It pairs markup with
// the htmx response headers that shape how the client applies it.
//
// View is a fluent builder; handlers chain what they need and return:
//
//	return htmox.HTML(markup).PushURL(u.PageURL())
//	return htmox.HTML(markup).Trigger("todo:created").Reswap(htmox.SwapInner)
//	return htmox.Empty().Status(http.StatusNoContent)
type View struct {
	component   templ.Component
	full        bool
	status      int
	pushURL     string
	redirect    string
	trigger     string
	triggerData map[string]any
	retarget    string
	reswap      SwapMode
	headers     map[string]string
}

// HTML creates a view for a partial render, the normal component response.
func HTML(component templ.Component) *View {
	return &View{component: component}
}

// FullPage creates a view that wraps the component in a minimal HTML
// document (doctype plus <html> element). Use for standalone pages whose
// template renders <head> and <body> directly.
func FullPage(component templ.Component) *View {
	return &View{component: component, full: true}
}

// Empty creates a view with no body. Combine with Status or headers for
// side-effect-only responses.
func Empty() *View {
	return &View{}
}

// PushURL sets HX-Push-Url so the browser address bar reflects the state
// the component just rendered. Typically fed from URLBuilder.PageURL.
func (v *View) PushURL(url string) *View {
	v.pushURL = url
	return v
}

// Redirect sets HX-Redirect, asking htmx to navigate the whole page.
func (v *View) Redirect(url string) *View {
	v.redirect = url
	return v
}

// Trigger emits an event via HX-Trigger. Optional data becomes evt.detail
// on the client:
//
//	return htmox.HTML(markup).Trigger("item:saved", map[string]any{"id": id})
func (v *View) Trigger(event string, data ...map[string]any) *View {
	v.trigger = event
	if len(data) > 0 {
		v.triggerData = data[0]
	}
	return v
}

// Retarget sets HX-Retarget, overriding the client's hx-target selector.
func (v *View) Retarget(selector string) *View {
	v.retarget = selector
	return v
}

// Reswap sets HX-Reswap, overriding the client's swap mode.
func (v *View) Reswap(mode SwapMode) *View {
	v.reswap = mode
	return v
}

// Status sets the HTTP status code (default 200).
func (v *View) Status(code int) *View {
	v.status = code
	return v
}

// Header sets an arbitrary response header.
func (v *View) Header(key, value string) *View {
	if v.headers == nil {
		v.headers = map[string]string{}
	}
	v.headers[key] = value
	return v
}

// Render writes the view: headers first, then status, then markup.
func (v *View) Render(w http.ResponseWriter, r *http.Request) error {
	h := w.Header()
	if v.pushURL != "" {
		h.Set("HX-Push-Url", v.pushURL)
	}
	if v.redirect != "" {
		h.Set("HX-Redirect", v.redirect)
	}
	if trigger := BuildTriggerHeader(v.trigger, v.triggerData); trigger != "" {
		h.Set("HX-Trigger", trigger)
	}
	if v.retarget != "" {
		h.Set("HX-Retarget", v.retarget)
	}
	if v.reswap != "" {
		h.Set("HX-Reswap", string(v.reswap))
	}
	for k, val := range v.headers {
		h.Set(k, val)
	}

	if v.component == nil {
		if v.status != 0 {
			w.WriteHeader(v.status)
		}
		return nil
	}

	h.Set("Content-Type", "text/html; charset=utf-8")
	if v.status != 0 {
		w.WriteHeader(v.status)
	}

	ctx := r.Context()
	if !v.full {
		return v.component.Render(ctx, w)
	}
	if _, err := io.WriteString(w, "<!DOCTYPE html>\n<html>"); err != nil {
		return err
	}
	if err := v.component.Render(ctx, w); err != nil {
		return err
	}
	_, err := io.WriteString(w, "</html>")
	return err
}

// Component returns the view's markup, for embedding a component's output
// inside a page render.
func (v *View) Component() templ.Component {
	if v.component == nil {
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error { return nil })
	}
	return v.component
}
