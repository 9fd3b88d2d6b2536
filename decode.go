package cargotoml

import (
	"encoding"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/KimNorgaard/go-cargotoml/value"
)

// Unmarshaler is the interface implemented by types that can decode a value
// node themselves.
type Unmarshaler interface {
	UnmarshalTOMLValue(value.Node) error
}

// enumerated is implemented by string types whose values are restricted to
// a fixed set of names, such as Edition.
type enumerated interface {
	Variants() []string
}

var (
	timeType = reflect.TypeOf(time.Time{})
	enumType = reflect.TypeOf((*enumerated)(nil)).Elem()
)

// Decode maps the value tree rooted at root onto the Go value pointed to by
// v. If v is nil or not a pointer, Decode returns an error.
//
// Decoding either succeeds completely or leaves *v untouched. Errors are
// one of the typed errors of this package and carry the key path and,
// where the tree knows it, the source location of the offending node.
func Decode(root value.Node, v any, opts ...Option) error {
	o, err := newOptions(opts)
	if err != nil {
		return err
	}
	return decodeNode(root, v, o)
}

func decodeNode(root value.Node, v any, o *options) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("cargotoml: Decode(non-pointer %T or nil)", v)
	}
	if root == nil {
		return fmt.Errorf("cargotoml: Decode(nil node)")
	}

	ds := &decodeState{depth: o.maxDepth, strict: o.strict}
	out := reflect.New(rv.Elem().Type()).Elem()
	if err := ds.decodeValue(root, out); err != nil {
		return err
	}
	rv.Elem().Set(out)
	return nil
}

// segment is one step of a key path: a table key or an array index.
type segment struct {
	key     string
	index   int
	isIndex bool
}

type decodeState struct {
	// depth is the number of tables and arrays that may still be entered.
	depth  int
	strict bool
	path   []segment
	// open is the innermost table or array counted against depth. Pointer,
	// Spanned and union layers revisit it without counting it again.
	open value.Node
}

// enter counts n against the depth limit when n is a table or array not
// yet counted. The returned func undoes it.
func (ds *decodeState) enter(n value.Node) (func(), error) {
	if k := n.Kind(); (k != value.KindTable && k != value.KindArray) || n == ds.open {
		return func() {}, nil
	}
	if ds.depth <= 0 {
		if p := ds.pathString(); p != "" {
			return nil, fmt.Errorf("%w at %s", ErrMaxDepth, p)
		}
		return nil, ErrMaxDepth
	}
	prev := ds.open
	ds.depth--
	ds.open = n
	return func() {
		ds.depth++
		ds.open = prev
	}, nil
}

func (ds *decodeState) pathString() string {
	var b strings.Builder
	for i, seg := range ds.path {
		if seg.isIndex {
			b.WriteString("[" + strconv.Itoa(seg.index) + "]")
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(value.QuoteKey(seg.key))
	}
	return b.String()
}

func (ds *decodeState) decodeKey(key string, n value.Node, rv reflect.Value) error {
	ds.path = append(ds.path, segment{key: key})
	err := ds.decodeValue(n, rv)
	ds.path = ds.path[:len(ds.path)-1]
	return err
}

func (ds *decodeState) decodeIndex(i int, n value.Node, rv reflect.Value) error {
	ds.path = append(ds.path, segment{index: i, isIndex: true})
	err := ds.decodeValue(n, rv)
	ds.path = ds.path[:len(ds.path)-1]
	return err
}

func (ds *decodeState) mismatch(expected string, n value.Node) error {
	return &TypeMismatchError{
		Path:     ds.pathString(),
		Expected: expected,
		Found:    n.Kind().String(),
		Span:     n.Span(),
	}
}

func (ds *decodeState) decodeValue(n value.Node, rv reflect.Value) error { //nolint:gocyclo
	leave, err := ds.enter(n)
	if err != nil {
		return err
	}
	defer leave()

	// time.Time implements encoding.TextUnmarshaler but only datetime nodes
	// may fill it.
	if rv.Type() == timeType {
		return ds.decodeTime(n, rv)
	}

	// Attempt to use a custom unmarshaler if available.
	handled, err := ds.tryCustomUnmarshal(n, rv)
	if err != nil {
		return err
	}
	if handled {
		return nil
	}

	t := rv.Type()
	switch {
	case t.Kind() == reflect.Pointer:
		elem := reflect.New(t.Elem())
		if err := ds.decodeValue(n, elem.Elem()); err != nil {
			return err
		}
		rv.Set(elem)
		return nil
	case t.Kind() == reflect.Interface:
		return ds.decodeInterface(n, rv)
	case isSpanned(t):
		return ds.decodeSpanned(n, rv)
	case isUnion(t):
		return ds.decodeUnion(n, rv)
	case t.Kind() == reflect.String && t.Implements(enumType):
		return ds.decodeEnum(n, rv)
	}

	switch t.Kind() {
	case reflect.String:
		s, ok := n.(*value.String)
		if !ok {
			return ds.mismatch("string", n)
		}
		rv.SetString(s.Value)
		return nil
	case reflect.Bool:
		b, ok := n.(*value.Boolean)
		if !ok {
			return ds.mismatch("boolean", n)
		}
		rv.SetBool(b.Value)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return ds.decodeInteger(n, rv)
	case reflect.Float32, reflect.Float64:
		return ds.decodeFloat(n, rv)
	case reflect.Slice:
		return ds.decodeSlice(n, rv)
	case reflect.Array:
		return ds.decodeArray(n, rv)
	case reflect.Map:
		return ds.decodeMap(n, rv)
	case reflect.Struct:
		return ds.decodeStruct(n, rv)
	}
	return &UnsupportedTypeError{Path: ds.pathString(), Type: t}
}

// tryCustomUnmarshal attempts to use a custom unmarshaler (Unmarshaler or
// encoding.TextUnmarshaler) on the given reflect.Value. It returns true if a
// custom unmarshaler was found and used, in which case the caller should not
// proceed with default decoding.
func (ds *decodeState) tryCustomUnmarshal(n value.Node, rv reflect.Value) (bool, error) {
	if !rv.CanAddr() {
		return false, nil
	}
	pv := rv.Addr()
	if !pv.CanInterface() {
		return false, nil
	}

	if u, ok := pv.Interface().(Unmarshaler); ok {
		if err := u.UnmarshalTOMLValue(n); err != nil {
			return true, &UnmarshalerError{Path: ds.pathString(), Type: pv.Type(), Err: err}
		}
		return true, nil
	}

	if u, ok := pv.Interface().(encoding.TextUnmarshaler); ok {
		s, isString := n.(*value.String)
		if !isString {
			// TextUnmarshaler can only be used on string values.
			return false, nil
		}
		if err := u.UnmarshalText([]byte(s.Value)); err != nil {
			return true, &UnmarshalerError{Path: ds.pathString(), Type: pv.Type(), Err: err}
		}
		return true, nil
	}

	return false, nil
}

func (ds *decodeState) decodeSpanned(n value.Node, rv reflect.Value) error {
	out := reflect.New(rv.Type())
	if err := ds.decodeValue(n, out.Elem().FieldByName("Value")); err != nil {
		return err
	}
	out.Interface().(spanSetter).setSpan(n.Span())
	rv.Set(out.Elem())
	return nil
}

func (ds *decodeState) decodeEnum(n value.Node, rv reflect.Value) error {
	s, ok := n.(*value.String)
	if !ok {
		return ds.mismatch("string", n)
	}
	variants := reflect.Zero(rv.Type()).Interface().(enumerated).Variants()
	if !slices.Contains(variants, s.Value) {
		return &UnknownVariantError{
			Path:     ds.pathString(),
			Value:    s.Value,
			Shape:    rv.Type().Name(),
			Expected: variants,
			Span:     n.Span(),
		}
	}
	rv.SetString(s.Value)
	return nil
}

func (ds *decodeState) decodeTime(n value.Node, rv reflect.Value) error {
	dt, ok := n.(*value.DateTime)
	if !ok {
		return ds.mismatch("datetime", n)
	}
	tm, err := dt.Time()
	if err != nil {
		return &UnmarshalerError{Path: ds.pathString(), Type: timeType, Err: err}
	}
	rv.Set(reflect.ValueOf(tm))
	return nil
}

func (ds *decodeState) decodeSlice(n value.Node, rv reflect.Value) error {
	arr, ok := n.(*value.Array)
	if !ok {
		return ds.mismatch("array", n)
	}
	out := reflect.MakeSlice(rv.Type(), arr.Len(), arr.Len())
	for i, el := range arr.Elements() {
		if err := ds.decodeIndex(i, el, out.Index(i)); err != nil {
			return err
		}
	}
	rv.Set(out)
	return nil
}

func (ds *decodeState) decodeArray(n value.Node, rv reflect.Value) error {
	arr, ok := n.(*value.Array)
	if !ok {
		return ds.mismatch("array", n)
	}
	if arr.Len() != rv.Len() {
		return &TypeMismatchError{
			Path:     ds.pathString(),
			Expected: fmt.Sprintf("array of length %d", rv.Len()),
			Found:    fmt.Sprintf("array of length %d", arr.Len()),
			Span:     n.Span(),
		}
	}
	out := reflect.New(rv.Type()).Elem()
	for i, el := range arr.Elements() {
		if err := ds.decodeIndex(i, el, out.Index(i)); err != nil {
			return err
		}
	}
	rv.Set(out)
	return nil
}

func (ds *decodeState) decodeMap(n value.Node, rv reflect.Value) error {
	t := rv.Type()
	if t.Key().Kind() != reflect.String {
		return &UnsupportedTypeError{Path: ds.pathString(), Type: t}
	}
	tbl, ok := n.(*value.Table)
	if !ok {
		return ds.mismatch("table", n)
	}
	out := reflect.MakeMapWithSize(t, tbl.Len())
	for _, key := range tbl.Keys() {
		entry, _ := tbl.Get(key)
		elem := reflect.New(t.Elem()).Elem()
		if err := ds.decodeKey(key, entry, elem); err != nil {
			return err
		}
		out.SetMapIndex(reflect.ValueOf(key).Convert(t.Key()), elem)
	}
	rv.Set(out)
	return nil
}

func (ds *decodeState) decodeStruct(n value.Node, rv reflect.Value) error {
	tbl, ok := n.(*value.Table)
	if !ok {
		return ds.mismatch("table", n)
	}
	s := cachedShape(rv.Type())

	if s.closed || ds.strict {
		for _, key := range tbl.Keys() {
			if _, known := s.byKey[key]; known {
				continue
			}
			entry, _ := tbl.Get(key)
			return &UnknownFieldError{
				Path:  ds.pathString(),
				Field: key,
				Shape: s.name,
				Span:  entry.Span(),
			}
		}
	}

	out := reflect.New(rv.Type()).Elem()
	for i := range s.fields {
		f := &s.fields[i]
		entry, ok := tbl.Get(f.key)
		if !ok {
			if f.required {
				return &MissingFieldError{
					Path:  ds.pathString(),
					Field: f.key,
					Shape: s.name,
					Span:  tbl.Span(),
				}
			}
			continue
		}
		if err := ds.decodeKey(f.key, entry, out.FieldByIndex(f.idx)); err != nil {
			return err
		}
	}
	rv.Set(out)
	return nil
}

func (ds *decodeState) decodeInterface(n value.Node, rv reflect.Value) error {
	if rv.NumMethod() != 0 {
		return &UnsupportedTypeError{Path: ds.pathString(), Type: rv.Type()}
	}
	var concrete reflect.Value
	switch n.(type) {
	case *value.String:
		var s string
		concrete = reflect.ValueOf(&s).Elem()
	case *value.Integer:
		var i int64
		concrete = reflect.ValueOf(&i).Elem()
	case *value.Float:
		var f float64
		concrete = reflect.ValueOf(&f).Elem()
	case *value.Boolean:
		var b bool
		concrete = reflect.ValueOf(&b).Elem()
	case *value.DateTime:
		var tm time.Time
		concrete = reflect.ValueOf(&tm).Elem()
	case *value.Array:
		var a []any
		concrete = reflect.ValueOf(&a).Elem()
	case *value.Table:
		var m map[string]any
		concrete = reflect.ValueOf(&m).Elem()
	default:
		return &UnsupportedTypeError{Path: ds.pathString(), Type: reflect.TypeOf(n)}
	}
	if err := ds.decodeValue(n, concrete); err != nil {
		return err
	}
	rv.Set(concrete)
	return nil
}
