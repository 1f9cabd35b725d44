package simpleserde

import (
	"encoding"
	"fmt"
	"reflect"
	"strings"
)

// maxEncodeDepth bounds StructEncoder recursion so cyclic records fail with
// ErrMaxDepthExceeded instead of overflowing the stack.
const maxEncodeDepth = 32

// StructEncoder returns an encoder function that converts a struct record
// into a Map of its field names to field values, applied recursively to
// nested structured fields.
//
// Field names follow the `json` struct tag when present (a "-" tag skips
// the field), falling back to the Go field name, so the produced Map
// matches what the JSON codec would emit for the record. Values
// implementing encoding.TextMarshaler, such as time.Time or uuid.UUID, are
// reduced to their text form to keep the Map primitive-compatible.
//
// The encoder fails with ErrInvalidKind when the record is not a struct or
// a non-nil pointer to one.
func StructEncoder[R any]() EncoderFunc[R, Map] {
	return func(record R) (Map, error) {
		v := reflect.ValueOf(record)

		for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
			if v.IsNil() {
				return nil, fmt.Errorf("simpleserde: cannot encode nil value of type %T: %w", record, ErrInvalidKind)
			}

			v = v.Elem()
		}

		if v.Kind() != reflect.Struct {
			return nil, fmt.Errorf("simpleserde: cannot encode value of type %T: %w", record, ErrInvalidKind)
		}

		return structToMap(v, 0)
	}
}

// NewStruct returns a Converter for struct records using the StructEncoder
// default. The decoder may be nil, in which case the Converter can only
// serialize.
//
// For simple record shapes a decoder is a small rebuilding function:
//
//	converter := simpleserde.NewStruct[Person](
//		simpleserde.AsDecoderFunc(func(simple simpleserde.Map) (Person, error) {
//			...
//		}),
//	)
func NewStruct[R any](decoder Decoder[R, Map]) *Converter[R, Map] {
	return &Converter[R, Map]{
		Encoder: StructEncoder[R](),
		Decoder: decoder,
	}
}

func structToMap(v reflect.Value, depth int) (Map, error) {
	if depth > maxEncodeDepth {
		return nil, ErrMaxDepthExceeded
	}

	t := v.Type()
	out := make(Map, t.NumField())

	// Direct fields first: they win over colliding embedded field names.
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() || isFlattened(field) {
			continue
		}

		name, skip := fieldName(field)
		if skip {
			continue
		}

		value, err := simpleValue(v.Field(i), depth+1)
		if err != nil {
			return nil, err
		}

		out[name] = value
	}

	// Embedded structs flatten even when their type is unexported;
	// encoding/json promotes their exported fields the same way.
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !isFlattened(field) {
			continue
		}

		fv := v.Field(i)
		if fv.Kind() == reflect.Pointer {
			if fv.IsNil() {
				continue
			}

			fv = fv.Elem()
		}

		embedded, err := structToMap(fv, depth+1)
		if err != nil {
			return nil, err
		}

		for name, value := range embedded {
			if _, taken := out[name]; !taken {
				out[name] = value
			}
		}
	}

	return out, nil
}

// isFlattened reports whether the field is an untagged embedded struct,
// whose fields are promoted into the enclosing Map like encoding/json does.
func isFlattened(field reflect.StructField) bool {
	if !field.Anonymous {
		return false
	}

	if _, tagged := field.Tag.Lookup("json"); tagged {
		return false
	}

	t := field.Type
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t.Kind() == reflect.Struct
}

func fieldName(field reflect.StructField) (name string, skip bool) {
	tag := field.Tag.Get("json")
	if tag == "-" {
		return "", true
	}

	if name, _, _ = strings.Cut(tag, ","); name != "" {
		return name, false
	}

	return field.Name, false
}

func simpleValue(v reflect.Value, depth int) (any, error) {
	if depth > maxEncodeDepth {
		return nil, ErrMaxDepthExceeded
	}

	if !v.IsValid() {
		return nil, nil
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil, nil
		}
	}

	if v.CanInterface() {
		if tm, ok := v.Interface().(encoding.TextMarshaler); ok {
			text, err := tm.MarshalText()
			if err != nil {
				return nil, err
			}

			return string(text), nil
		}
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		return simpleValue(v.Elem(), depth+1)

	case reflect.Struct:
		return structToMap(v, depth+1)

	case reflect.Slice:
		if v.IsNil() {
			return nil, nil
		}

		if v.Type().Elem().Kind() == reflect.Uint8 {
			return v.Bytes(), nil
		}

		return sliceToAny(v, depth)

	case reflect.Array:
		return sliceToAny(v, depth)

	case reflect.Map:
		if v.IsNil() {
			return nil, nil
		}

		out := make(Map, v.Len())

		iter := v.MapRange()
		for iter.Next() {
			value, err := simpleValue(iter.Value(), depth+1)
			if err != nil {
				return nil, err
			}

			out[mapKey(iter.Key())] = value
		}

		return out, nil

	default:
		return v.Interface(), nil
	}
}

func sliceToAny(v reflect.Value, depth int) ([]any, error) {
	out := make([]any, v.Len())

	for i := 0; i < v.Len(); i++ {
		value, err := simpleValue(v.Index(i), depth+1)
		if err != nil {
			return nil, err
		}

		out[i] = value
	}

	return out, nil
}

func mapKey(key reflect.Value) string {
	if key.Kind() == reflect.String {
		return key.String()
	}

	return fmt.Sprint(key.Interface())
}
