// ABOUTME: JSON serialization of evaluation results for the output log
// ABOUTME: Follows JSON.stringify rules: functions drop out, NaN is null, cycles are errors

package eval

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/mailru/easyjson"
	"github.com/mailru/easyjson/jwriter"
)

// Serialize renders v as compact JSON. A bare function or Undefined yields
// "undefined"; cyclic data yields an error wrapping ErrCyclic.
func Serialize(v any) (text string, err error) {
	defer catch(&err)
	if skipped(v) {
		return "undefined", nil
	}
	s := &serializer{seen: map[uintptr]bool{}}
	if err := s.value(v); err != nil {
		return "", err
	}
	out, err := s.w.BuildBytes()
	if err != nil {
		return "", fmt.Errorf("serialize: %w", err)
	}
	return string(out), nil
}

// Display renders v for the output log: strings appear raw, everything
// else as JSON.
func Display(v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	return Serialize(v)
}

type serializer struct {
	w    jwriter.Writer
	seen map[uintptr]bool
}

// skipped reports values that JSON omits from objects.
func skipped(v any) bool {
	switch v.(type) {
	case undefined, Func, method:
		return true
	case nil:
		return false
	}
	return reflect.TypeOf(v).Kind() == reflect.Func
}

func (s *serializer) value(v any) error {
	switch x := v.(type) {
	case nil:
		s.w.RawString("null")
		return nil
	case undefined, Func, method:
		s.w.RawString("null")
		return nil
	case string:
		s.w.String(x)
		return nil
	case bool:
		s.w.Bool(x)
		return nil
	case float64:
		s.number(x)
		return nil
	case easyjson.Marshaler:
		x.MarshalEasyJSON(&s.w)
		return s.w.Error
	case Inspectable:
		return s.inspectable(x)
	case error:
		s.w.String(x.Error())
		return nil
	}
	return s.reflect(reflect.ValueOf(v))
}

func (s *serializer) number(n float64) {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		s.w.RawString("null")
		return
	}
	s.w.RawString(formatNumber(n))
}

func (s *serializer) enter(rv reflect.Value) (func(), error) {
	if !rv.IsValid() {
		return func() {}, nil
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice:
		if rv.IsNil() {
			return func() {}, nil
		}
	default:
		return func() {}, nil
	}
	p := rv.Pointer()
	if rv.Kind() == reflect.Slice && rv.Len() == 0 {
		return func() {}, nil
	}
	if s.seen[p] {
		return nil, ErrCyclic
	}
	s.seen[p] = true
	return func() { delete(s.seen, p) }, nil
}

func (s *serializer) inspectable(in Inspectable) error {
	if rv := reflect.ValueOf(in); rv.Kind() == reflect.Pointer {
		leave, err := s.enter(rv)
		if err != nil {
			return err
		}
		defer leave()
	}
	names := append([]string(nil), in.Members()...)
	sort.Strings(names)
	s.w.RawByte('{')
	first := true
	for _, n := range names {
		m, ok := in.Member(n)
		if !ok || skipped(m) {
			continue
		}
		if !first {
			s.w.RawByte(',')
		}
		first = false
		s.w.String(n)
		s.w.RawByte(':')
		if err := s.value(m); err != nil {
			return err
		}
	}
	s.w.RawByte('}')
	return nil
}

func (s *serializer) reflect(rv reflect.Value) error {
	if !rv.IsValid() {
		s.w.RawString("null")
		return nil
	}
	if isNumericKind(rv.Kind()) {
		n, _ := toNumber(rv.Interface())
		s.number(n)
		return nil
	}
	switch rv.Kind() {
	case reflect.Bool:
		s.w.Bool(rv.Bool())
		return nil
	case reflect.String:
		s.w.String(rv.String())
		return nil
	case reflect.Interface:
		if rv.IsNil() {
			s.w.RawString("null")
			return nil
		}
		return s.value(normalize(rv))
	case reflect.Pointer:
		if rv.IsNil() {
			s.w.RawString("null")
			return nil
		}
		leave, err := s.enter(rv)
		if err != nil {
			return err
		}
		defer leave()
		return s.value(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			s.w.RawString("null")
			return nil
		}
		leave, err := s.enter(rv)
		if err != nil {
			return err
		}
		defer leave()
		s.w.RawByte('[')
		for i := range rv.Len() {
			if i > 0 {
				s.w.RawByte(',')
			}
			if err := s.value(normalize(rv.Index(i))); err != nil {
				return err
			}
		}
		s.w.RawByte(']')
		return nil
	case reflect.Map:
		if rv.IsNil() {
			s.w.RawString("null")
			return nil
		}
		if rv.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("%w: map keyed by %s", ErrUnsupported, rv.Type().Key())
		}
		leave, err := s.enter(rv)
		if err != nil {
			return err
		}
		defer leave()
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
		return s.object(len(keys), func(i int) (string, any) {
			return keys[i].String(), normalize(rv.MapIndex(keys[i]))
		})
	case reflect.Struct:
		fields := structFields(rv.Type())
		return s.object(len(fields), func(i int) (string, any) {
			f := fields[i]
			return f.name, normalize(rv.FieldByIndex(f.index))
		})
	case reflect.Func:
		s.w.RawString("null")
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnsupported, rv.Type())
}

// object writes n key/value pairs, omitting functions and undefined.
func (s *serializer) object(n int, at func(int) (string, any)) error {
	s.w.RawByte('{')
	first := true
	for i := range n {
		k, v := at(i)
		if skipped(v) {
			continue
		}
		if !first {
			s.w.RawByte(',')
		}
		first = false
		s.w.String(k)
		s.w.RawByte(':')
		if err := s.value(v); err != nil {
			return err
		}
	}
	s.w.RawByte('}')
	return nil
}

type field struct {
	name  string
	index []int
}

// structFields lists exported fields in declaration order, honouring json tags.
func structFields(t reflect.Type) []field {
	var out []field
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup("json"); ok {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}
		out = append(out, field{name: name, index: f.Index})
	}
	return out
}
