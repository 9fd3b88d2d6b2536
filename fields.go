package cargotoml

import (
	"reflect"
	"sort"
	"strings"
	"sync"
	"unicode"
)

// Untagged marks a struct as an untagged union. It must be the first field,
// declared as a blank field. Every following exported field is a pointer
// variant; variants are tried in declaration order.
type Untagged struct{}

// Closed marks a struct whose tables may not contain unknown keys. Declare
// it as a blank field.
type Closed struct{}

var (
	untaggedType = reflect.TypeOf(Untagged{})
	closedType   = reflect.TypeOf(Closed{})
)

// field represents a cached struct field.
type field struct {
	key      string
	idx      []int
	required bool
}

// shape is the decoding description of one Go struct type.
type shape struct {
	name   string
	fields []field
	byKey  map[string]*field
	closed bool
}

// variant is one alternative of an untagged union.
type variant struct {
	name string
	idx  []int
	typ  reflect.Type // element type of the variant pointer
}

// union is the decoding description of an untagged union type.
type union struct {
	name     string
	variants []variant
}

// shapeCache caches struct shapes and union descriptions per type.
var shapeCache sync.Map // map[reflect.Type]any

// isUnion reports whether t is declared as an untagged union.
func isUnion(t reflect.Type) bool {
	return t.Kind() == reflect.Struct && t.NumField() > 0 && t.Field(0).Type == untaggedType
}

// cachedShape returns the field table for the struct type t. The result is
// cached to avoid repeated reflection work.
func cachedShape(t reflect.Type) *shape {
	if s, ok := shapeCache.Load(t); ok {
		return s.(*shape)
	}

	s := &shape{name: typeName(t), byKey: make(map[string]*field)}
	var all []field
	var walk func(t reflect.Type, idx []int)
	walk = func(t reflect.Type, idx []int) {
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			if sf.Type == closedType {
				s.closed = true
				continue
			}
			if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
				// Fields of embedded structs are promoted into the parent table.
				walk(sf.Type, appendIndex(idx, i))
				continue
			}
			if !sf.IsExported() {
				continue
			}

			tag := sf.Tag.Get("cargo")
			if tag == "-" {
				continue
			}
			key, _, _ := strings.Cut(tag, ",")
			if key == "" {
				key = kebabCase(sf.Name)
			}
			all = append(all, field{
				key:      key,
				idx:      appendIndex(idx, i),
				required: !isOptional(sf.Type),
			})
		}
	}
	walk(t, nil)

	// A shallower field shadows a promoted one with the same key, as in Go
	// selectors. At equal depth the first declaration wins.
	sort.SliceStable(all, func(i, j int) bool { return len(all[i].idx) < len(all[j].idx) })
	for _, f := range all {
		if _, dup := s.byKey[f.key]; dup {
			continue
		}
		s.byKey[f.key] = nil
		s.fields = append(s.fields, f)
	}
	sort.SliceStable(s.fields, func(i, j int) bool { return lessIndex(s.fields[i].idx, s.fields[j].idx) })
	for i := range s.fields {
		s.byKey[s.fields[i].key] = &s.fields[i]
	}

	actual, _ := shapeCache.LoadOrStore(t, s)
	return actual.(*shape)
}

// cachedUnion returns the ordered variant list of the union type t.
func cachedUnion(t reflect.Type) *union {
	if u, ok := shapeCache.Load(t); ok {
		return u.(*union)
	}

	u := &union{name: typeName(t)}
	for i := 1; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() || sf.Type.Kind() != reflect.Pointer {
			continue
		}
		u.variants = append(u.variants, variant{
			name: sf.Name,
			idx:  sf.Index,
			typ:  sf.Type.Elem(),
		})
	}

	actual, _ := shapeCache.LoadOrStore(t, u)
	return actual.(*union)
}

func typeName(t reflect.Type) string {
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}

// isOptional reports whether a field of type t may be absent from its table.
func isOptional(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return true
	}
	return false
}

// lessIndex orders field indexes in declaration order.
func lessIndex(a, b []int) bool {
	for k := 0; k < len(a) && k < len(b); k++ {
		if a[k] != b[k] {
			return a[k] < b[k]
		}
	}
	return len(a) < len(b)
}

func appendIndex(idx []int, i int) []int {
	out := make([]int, len(idx), len(idx)+1)
	copy(out, idx)
	return append(out, i)
}

// kebabCase renders a Go identifier in the hyphen-separated form used for
// manifest keys: DevDependencies becomes dev-dependencies and
// HTTPTimeout becomes http-timeout.
func kebabCase(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					b.WriteByte('-')
				}
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		if r == '_' {
			b.WriteByte('-')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
