// Package qsval converts between url.Values and flat Go structs.
//
// It backs htmox state hydration and form decoding. Mapping is intentionally
// simple: exported scalar fields plus slices of strings or ints, named by
// snake_casing the field name. A `qs` struct tag overrides the name, and
// `qs:"-"` skips the field. Nested structs, maps, and pointers are not
// traversed; state structs are meant to be flat bags of URL parameters.
package qsval

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"unicode"
)

// Field describes one encodable struct field.
type Field struct {
	Name  string // parameter name
	Value string // encoded value
	Zero  bool   // true if the field holds its zero value
}

// Names returns the parameter names for the struct type of v.
// v may be a struct or a pointer to one.
func Names(v any) []string {
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	var names []string
	for i := 0; i < t.NumField(); i++ {
		name, ok := fieldName(t.Field(i))
		if !ok {
			continue
		}
		names = append(names, name)
	}
	return names
}

// Fields returns the encoded fields of the struct v.
func Fields(v any) ([]Field, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("qsval: expected struct, got %s", rv.Kind())
	}
	t := rv.Type()
	var fields []Field
	for i := 0; i < t.NumField(); i++ {
		name, ok := fieldName(t.Field(i))
		if !ok {
			continue
		}
		fv := rv.Field(i)
		if fv.Kind() == reflect.Slice {
			// Slices contribute one Field per element under the same name;
			// callers that need url.Values use Encode instead.
			continue
		}
		fields = append(fields, Field{
			Name:  name,
			Value: encodeScalar(fv),
			Zero:  fv.IsZero(),
		})
	}
	return fields, nil
}

// Encode converts the struct v into url.Values. Zero-valued fields are
// included; dropping empties is the URL builder's job, not the codec's.
func Encode(v any) (url.Values, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("qsval: expected struct, got %s", rv.Kind())
	}
	t := rv.Type()
	vals := url.Values{}
	for i := 0; i < t.NumField(); i++ {
		name, ok := fieldName(t.Field(i))
		if !ok {
			continue
		}
		fv := rv.Field(i)
		if fv.Kind() == reflect.Slice {
			for j := 0; j < fv.Len(); j++ {
				vals.Add(name, encodeScalar(fv.Index(j)))
			}
			continue
		}
		vals.Set(name, encodeScalar(fv))
	}
	return vals, nil
}

// Decode populates the struct pointed to by v from values. Parameters with
// no matching field are ignored. Values that fail to parse leave the field
// untouched rather than erroring; a malformed query string degrades to
// defaults instead of a 500.
func Decode(values url.Values, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("qsval: Decode requires a non-nil struct pointer")
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("qsval: Decode requires a struct pointer, got *%s", rv.Kind())
	}
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		name, ok := fieldName(t.Field(i))
		if !ok {
			continue
		}
		raw, present := values[name]
		if !present {
			// Form arrays arrive as name[]=a&name[]=b.
			raw, present = values[name+"[]"]
		}
		if !present {
			continue
		}
		fv := rv.Field(i)
		if fv.Kind() == reflect.Slice {
			decodeSlice(fv, raw)
			continue
		}
		if len(raw) > 0 {
			decodeScalar(fv, raw[0])
		}
	}
	return nil
}

// ToMap converts the struct v into a map of parameter name to typed value,
// suitable for binary encoding.
func ToMap(v any) (map[string]any, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("qsval: expected struct, got %s", rv.Kind())
	}
	t := rv.Type()
	m := make(map[string]any, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name, ok := fieldName(t.Field(i))
		if !ok {
			continue
		}
		m[name] = rv.Field(i).Interface()
	}
	return m, nil
}

// FromMap populates the struct pointed to by v from a decoded map. Numeric
// values are converted across widths (msgpack decodes small ints as int8).
func FromMap(m map[string]any, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("qsval: FromMap requires a non-nil struct pointer")
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("qsval: FromMap requires a struct pointer, got *%s", rv.Kind())
	}
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		name, ok := fieldName(t.Field(i))
		if !ok {
			continue
		}
		raw, present := m[name]
		if !present || raw == nil {
			continue
		}
		assign(rv.Field(i), reflect.ValueOf(raw))
	}
	return nil
}

// assign sets dst from src, converting numeric kinds where possible.
func assign(dst, src reflect.Value) {
	if !dst.CanSet() {
		return
	}
	if src.Type().AssignableTo(dst.Type()) {
		dst.Set(src)
		return
	}
	if src.Kind() == reflect.Slice && dst.Kind() == reflect.Slice {
		out := reflect.MakeSlice(dst.Type(), src.Len(), src.Len())
		for i := 0; i < src.Len(); i++ {
			el := src.Index(i)
			if el.Kind() == reflect.Interface {
				el = el.Elem()
			}
			assign(out.Index(i), el)
		}
		dst.Set(out)
		return
	}
	switch dst.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		switch src.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			dst.SetInt(src.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			dst.SetInt(int64(src.Uint()))
		case reflect.Float32, reflect.Float64:
			dst.SetInt(int64(src.Float()))
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		switch src.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if src.Int() >= 0 {
				dst.SetUint(uint64(src.Int()))
			}
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			dst.SetUint(src.Uint())
		case reflect.Float32, reflect.Float64:
			if src.Float() >= 0 {
				dst.SetUint(uint64(src.Float()))
			}
		}
	case reflect.Float32, reflect.Float64:
		switch src.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			dst.SetFloat(float64(src.Int()))
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			dst.SetFloat(float64(src.Uint()))
		case reflect.Float32, reflect.Float64:
			dst.SetFloat(src.Float())
		}
	case reflect.String:
		if src.Kind() == reflect.String {
			dst.SetString(src.String())
		}
	case reflect.Bool:
		if src.Kind() == reflect.Bool {
			dst.SetBool(src.Bool())
		}
	}
}

func encodeScalar(v reflect.Value) string {
	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	default:
		return ""
	}
}

func decodeScalar(v reflect.Value, s string) {
	if !v.CanSet() {
		return
	}
	switch v.Kind() {
	case reflect.String:
		v.SetString(s)
	case reflect.Bool:
		if b, err := strconv.ParseBool(s); err == nil {
			v.SetBool(b)
		} else if s == "on" {
			// Checkbox convention.
			v.SetBool(true)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			v.SetInt(n)
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if n, err := strconv.ParseUint(s, 10, 64); err == nil {
			v.SetUint(n)
		}
	case reflect.Float32, reflect.Float64:
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			v.SetFloat(f)
		}
	}
}

func decodeSlice(v reflect.Value, raw []string) {
	if !v.CanSet() {
		return
	}
	out := reflect.MakeSlice(v.Type(), len(raw), len(raw))
	for i, s := range raw {
		decodeScalar(out.Index(i), s)
	}
	v.Set(out)
}

// fieldName resolves the parameter name for a struct field.
// Returns false for unexported, skipped, or unsupported fields.
func fieldName(f reflect.StructField) (string, bool) {
	if f.PkgPath != "" || f.Anonymous {
		return "", false
	}
	if !supported(f.Type) {
		return "", false
	}
	tag := f.Tag.Get("qs")
	if tag == "-" {
		return "", false
	}
	if tag != "" {
		if idx := strings.Index(tag, ","); idx >= 0 {
			tag = tag[:idx]
		}
		if tag != "" {
			return tag, true
		}
	}
	return SnakeCase(f.Name), true
}

func supported(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	case reflect.Slice:
		switch t.Elem().Kind() {
		case reflect.String, reflect.Int, reflect.Int64:
			return true
		}
	}
	return false
}

// SnakeCase converts a Go field name to its parameter form:
// Count -> count, NextID -> next_id, SortBy -> sort_by.
func SnakeCase(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			// Start a new word unless part of a leading acronym run.
			if i > 0 && (!unicode.IsUpper(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
