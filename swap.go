package htmox

// SwapMode is an hx-swap value, used with View.Reswap to override how the
// response replaces the target element.
//
// See https://htmx.org/attributes/hx-swap/ for the full semantics.
type SwapMode string

const (
	// SwapOuter replaces the whole target element (outerHTML). HTMX default.
	SwapOuter SwapMode = "outerHTML"

	// SwapInner replaces the target's contents, keeping the outer tag.
	SwapInner SwapMode = "innerHTML"

	// SwapBeforeEnd appends inside the target, before its closing tag.
	SwapBeforeEnd SwapMode = "beforeend"

	// SwapAfterBegin prepends inside the target, after its opening tag.
	SwapAfterBegin SwapMode = "afterbegin"

	// SwapBeforeBegin inserts before the target element.
	SwapBeforeBegin SwapMode = "beforebegin"

	// SwapAfterEnd inserts after the target element.
	SwapAfterEnd SwapMode = "afterend"

	// SwapDelete removes the target element; the response body is ignored.
	SwapDelete SwapMode = "delete"

	// SwapNone discards the response. Useful for side-effect-only actions.
	SwapNone SwapMode = "none"
)
