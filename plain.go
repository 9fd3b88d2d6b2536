package cargotoml

import "reflect"

// Plain converts a decoded value into plain Go data for re-encoding with
// encoders such as encoding/json or yaml. Structs become map[string]any
// keyed as in the source document, slices and arrays become []any, Spanned
// values are unwrapped, a union becomes its chosen variant and absent
// optional fields are omitted.
func Plain(v any) any {
	return plainValue(reflect.ValueOf(v))
}

func plainValue(rv reflect.Value) any { //nolint:gocyclo
	if !rv.IsValid() {
		return nil
	}
	t := rv.Type()
	switch {
	case t.Kind() == reflect.Pointer, t.Kind() == reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return plainValue(rv.Elem())
	case t == timeType:
		if rv.CanInterface() {
			return rv.Interface()
		}
		return nil
	case isSpanned(t):
		return plainValue(rv.FieldByName("Value"))
	case isUnion(t):
		for _, v := range cachedUnion(t).variants {
			if f := rv.FieldByIndex(v.idx); !f.IsNil() {
				return plainValue(f)
			}
		}
		return nil
	}

	switch t.Kind() {
	case reflect.Struct:
		s := cachedShape(t)
		out := make(map[string]any, len(s.fields))
		for _, f := range s.fields {
			fv := rv.FieldByIndex(f.idx)
			if isOptional(fv.Type()) && fv.IsNil() {
				continue
			}
			out[f.key] = plainValue(fv)
		}
		return out
	case reflect.Map:
		if rv.IsNil() {
			return nil
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = plainValue(iter.Value())
		}
		return out
	case reflect.Slice:
		if rv.IsNil() {
			return nil
		}
		fallthrough
	case reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = plainValue(rv.Index(i))
		}
		return out
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint()
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	}
	if rv.CanInterface() {
		return rv.Interface()
	}
	return nil
}
