package htmox

import (
	"fmt"
	"net/http"

	"github.com/pthm/htmox/lib/qsval"
)

// DecodeForm parses the request's form body into the struct pointed to by v.
//
// Unlike r.FormValue loops, this handles PHP-style array notation
// (tags[]=a&tags[]=b) and repeated keys, mapping both onto slice fields:
//
//	type NewPostForm struct {
//	    Title string
//	    Tags  []string
//	}
//
//	var form NewPostForm
//	if err := htmox.DecodeForm(r, &form); err != nil { ... }
//
// Field naming follows the same snake_case / `qs` tag rules as state
// structs. Query parameters are deliberately excluded; forms are body data.
func DecodeForm(r *http.Request, v any) error {
	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("htmox: parse form: %w", err)
	}
	return qsval.Decode(r.PostForm, v)
}
