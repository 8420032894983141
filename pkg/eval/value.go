// ABOUTME: Runtime values, the symbol table and introspection for the console evaluator
// ABOUTME: Host values are reached through Inspectable or, failing that, Go reflection

package eval

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

type undefined struct{}

func (undefined) String() string { return "undefined" }

// Undefined is the result of reading something that does not exist.
var Undefined any = undefined{}

// Func is a host function callable from expressions.
type Func func(args ...any) (any, error)

// method is a Go function or bound method reached through reflection.
type method struct {
	fn   reflect.Value
	name string
}

// Inspectable values declare their own members, bypassing reflection.
type Inspectable interface {
	Members() []string
	Member(name string) (any, bool)
}

// Scope maps top-level names to values.
type Scope struct {
	names map[string]any
}

// NewScope returns an empty scope.
func NewScope() *Scope {
	return &Scope{names: make(map[string]any)}
}

// Define binds name to v, replacing any earlier binding.
func (s *Scope) Define(name string, v any) {
	s.names[name] = v
}

// Delete removes a binding.
func (s *Scope) Delete(name string) {
	delete(s.names, name)
}

// Lookup returns the value bound to name.
func (s *Scope) Lookup(name string) (any, bool) {
	v, ok := s.names[name]
	return v, ok
}

// Names lists bound names in sorted order.
func (s *Scope) Names() []string {
	out := make([]string, 0, len(s.names))
	for n := range s.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Members lists the names accessible on v, sorted. Unknown kinds have none,
// and so does a host object whose listing panics.
func Members(v any) (names []string) {
	defer func() {
		if recover() != nil {
			names = nil
		}
	}()
	if in, ok := v.(Inspectable); ok {
		m := append([]string(nil), in.Members()...)
		sort.Strings(m)
		return m
	}
	switch v.(type) {
	case nil, undefined, bool, float64, Func, method:
		return nil
	case string:
		return []string{"length"}
	}

	rv := reflect.ValueOf(v)
	seen := map[string]bool{}
	var out []string
	add := func(n string) {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}

	// Methods come from the value as given (pointer receivers included).
	for i := range rv.NumMethod() {
		add(rv.Type().Method(i).Name)
	}
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			sort.Strings(out)
			return out
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Struct:
		t := rv.Type()
		for i := range t.NumField() {
			if f := t.Field(i); f.IsExported() {
				add(f.Name)
			}
		}
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			for _, k := range rv.MapKeys() {
				add(k.String())
			}
		}
	case reflect.Slice, reflect.Array, reflect.String:
		add("length")
	}
	sort.Strings(out)
	return out
}

// member reads name from v.
func member(v any, name string) (any, error) {
	switch x := v.(type) {
	case nil:
		return nil, fmt.Errorf("%w (reading '%s')", ErrNilAccess, name)
	case undefined:
		return nil, fmt.Errorf("cannot read properties of undefined (reading '%s'): %w", name, ErrNilAccess)
	case Inspectable:
		if m, ok := x.Member(name); ok {
			return m, nil
		}
		return Undefined, nil
	case string:
		if name == "length" {
			return float64(len([]rune(x))), nil
		}
		return Undefined, nil
	case map[string]any:
		if m, ok := x[name]; ok {
			return m, nil
		}
		return Undefined, nil
	}

	rv := reflect.ValueOf(v)
	if m := rv.MethodByName(name); m.IsValid() {
		return method{fn: m, name: name}, nil
	}
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, fmt.Errorf("%w (reading '%s')", ErrNilAccess, name)
		}
		rv = rv.Elem()
		if m := rv.MethodByName(name); m.IsValid() {
			return method{fn: m, name: name}, nil
		}
	}
	switch rv.Kind() {
	case reflect.Struct:
		f, ok := rv.Type().FieldByName(name)
		if !ok || !f.IsExported() {
			return Undefined, nil
		}
		return normalize(rv.FieldByIndex(f.Index)), nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return Undefined, nil
		}
		mv := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
		if !mv.IsValid() {
			return Undefined, nil
		}
		return normalize(mv), nil
	case reflect.Slice, reflect.Array, reflect.String:
		if name == "length" {
			return float64(rv.Len()), nil
		}
	}
	return Undefined, nil
}

// index reads v[i] for numeric i, falling back to member access for strings.
func index(v any, i any) (any, error) {
	if s, ok := i.(string); ok {
		return member(v, s)
	}
	n, ok := toNumber(i)
	if !ok {
		return nil, fmt.Errorf("%w: cannot index with %s", ErrType, typeName(i))
	}
	switch x := v.(type) {
	case nil, undefined:
		return member(v, formatNumber(n))
	case string:
		r := []rune(x)
		k := int(n)
		if float64(k) != n || k < 0 || k >= len(r) {
			return Undefined, nil
		}
		return string(r[k]), nil
	case Inspectable:
		return member(v, formatNumber(n))
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, fmt.Errorf("%w (reading '%s')", ErrNilAccess, formatNumber(n))
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		k := int(n)
		if float64(k) != n || k < 0 || k >= rv.Len() {
			return Undefined, nil
		}
		return normalize(rv.Index(k)), nil
	case reflect.Map:
		kt := rv.Type().Key()
		var key reflect.Value
		switch {
		case kt.Kind() == reflect.String:
			key = reflect.ValueOf(formatNumber(n)).Convert(kt)
		case isNumericKind(kt.Kind()):
			key = reflect.ValueOf(n).Convert(kt)
		default:
			return Undefined, nil
		}
		mv := rv.MapIndex(key)
		if !mv.IsValid() {
			return Undefined, nil
		}
		return normalize(mv), nil
	}
	return member(v, formatNumber(n))
}

// normalize unwraps a reflect.Value into a plain value, converting numbers to float64.
func normalize(rv reflect.Value) any {
	if !rv.IsValid() {
		return Undefined
	}
	if !rv.CanInterface() {
		return Undefined
	}
	if isNumericKind(rv.Kind()) {
		n, _ := toNumber(rv.Interface())
		return n
	}
	if rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		return normalize(rv.Elem())
	}
	return rv.Interface()
}

func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// toNumber converts any Go numeric value to float64.
func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// truthy follows the usual dynamic-language rules: false, 0, NaN, "",
// null and undefined are false.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil, undefined:
		return false
	case bool:
		return x
	case string:
		return x != ""
	}
	if n, ok := toNumber(v); ok {
		return n != 0 && !math.IsNaN(n)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}

func formatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	case n == 0:
		return "0"
	}
	if a := math.Abs(n); a >= 1e-6 && a < 1e21 {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	// Exponent form without zero padding: 1e+21, 1e-7.
	s := strconv.FormatFloat(n, 'e', -1, 64)
	if i := strings.IndexByte(s, 'e'); i >= 0 && len(s) > i+3 && s[i+2] == '0' {
		s = s[:i+2] + s[i+3:]
	}
	return s
}

// typeName names v's type for error messages.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case undefined:
		return "undefined"
	case bool:
		return "boolean"
	case string:
		return "string"
	case Func, method:
		return "function"
	}
	if _, ok := toNumber(v); ok {
		return "number"
	}
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Func {
		return "function"
	}
	return t.String()
}

// String renders v the way string concatenation sees it.
func String(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case undefined:
		return "undefined"
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case error:
		return x.Error()
	case fmt.Stringer:
		return x.String()
	}
	if n, ok := toNumber(v); ok {
		return formatNumber(n)
	}
	if s, err := Serialize(v); err == nil {
		return s
	}
	return fmt.Sprint(v)
}
