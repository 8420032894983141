// ABOUTME: Tree-walking evaluator over an explicit symbol table
// ABOUTME: Panics from host code are recovered and returned as errors; nothing escapes to the caller

package eval

import (
	"errors"
	"fmt"
	"math"
	"reflect"
)

// Env is everything an expression can reach.
type Env struct {
	Scope *Scope
	// Marker resolves a back-reference. Slot is -1 for the bare marker.
	Marker func(slot int) (any, error)
}

// Eval parses and evaluates src.
func Eval(src string, env *Env) (v any, err error) {
	defer catch(&err)
	n, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return EvalNode(n, env)
}

// EvalNode evaluates a parsed tree.
func EvalNode(n Node, env *Env) (v any, err error) {
	defer func() {
		if r := recover(); r != nil {
			v, err = nil, &PanicError{Value: r}
		}
	}()
	if env == nil {
		env = &Env{}
	}
	if env.Scope == nil {
		env = &Env{Scope: NewScope(), Marker: env.Marker}
	}
	return env.eval(n)
}

func (env *Env) eval(n Node) (any, error) {
	switch n := n.(type) {
	case *Literal:
		return n.Value, nil
	case *Ident:
		v, ok := env.Scope.Lookup(n.Name)
		if !ok {
			return nil, fmt.Errorf("%s %w", n.Name, ErrUndefined)
		}
		return v, nil
	case *Marker:
		if env.Marker == nil {
			return nil, ErrMarker
		}
		return env.Marker(n.Slot)
	case *Member:
		obj, err := env.eval(n.Object)
		if err != nil {
			return nil, err
		}
		return member(obj, n.Name)
	case *Index:
		obj, err := env.eval(n.Object)
		if err != nil {
			return nil, err
		}
		i, err := env.eval(n.Index)
		if err != nil {
			return nil, err
		}
		return index(obj, i)
	case *Call:
		return env.call(n)
	case *Unary:
		return env.unary(n)
	case *Binary:
		return env.binary(n)
	case *Conditional:
		c, err := env.eval(n.Cond)
		if err != nil {
			return nil, err
		}
		if truthy(c) {
			return env.eval(n.Then)
		}
		return env.eval(n.Else)
	case *Array:
		out := make([]any, 0, len(n.Elems))
		for _, e := range n.Elems {
			v, err := env.eval(e)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case *Object:
		out := make(map[string]any, len(n.Keys))
		for i, k := range n.Keys {
			v, err := env.eval(n.Values[i])
			if err != nil {
				return nil, err
			}
			out[k] = v
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: unknown node %T", ErrType, n)
}

// describe names an expression for error messages.
func describe(n Node) string {
	switch n := n.(type) {
	case *Ident:
		return n.Name
	case *Member:
		return describe(n.Object) + "." + n.Name
	case *Marker:
		if n.Slot < 0 {
			return string(MarkerRune)
		}
		return fmt.Sprintf("%c%d", MarkerRune, n.Slot)
	case *Call:
		return describe(n.Fn) + "(...)"
	case *Index:
		return describe(n.Object) + "[...]"
	case *Literal:
		return String(n.Value)
	}
	return "expression"
}

func (env *Env) call(n *Call) (any, error) {
	fn, err := env.eval(n.Fn)
	if err != nil {
		return nil, err
	}
	args := make([]any, 0, len(n.Args))
	for _, a := range n.Args {
		v, err := env.eval(a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	switch f := fn.(type) {
	case Func:
		return f(args...)
	case func(...any) (any, error):
		return f(args...)
	case method:
		return callReflect(f.fn, args)
	}
	if fn != nil && fn != Undefined {
		if rv := reflect.ValueOf(fn); rv.Kind() == reflect.Func && !rv.IsNil() {
			return callReflect(rv, args)
		}
	}
	return nil, fmt.Errorf("%s %w", describe(n.Fn), ErrNotCallable)
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// callReflect invokes a Go function with dynamic arguments. Missing
// arguments take zero values and surplus ones are dropped.
func callReflect(fv reflect.Value, args []any) (any, error) {
	t := fv.Type()
	in := make([]reflect.Value, 0, len(args))
	for i := 0; i < t.NumIn(); i++ {
		pt := t.In(i)
		if t.IsVariadic() && i == t.NumIn()-1 {
			et := pt.Elem()
			for j := i; j < len(args); j++ {
				v, err := convertArg(args[j], et)
				if err != nil {
					return nil, fmt.Errorf("argument %d: %w", j+1, err)
				}
				in = append(in, v)
			}
			break
		}
		if i >= len(args) {
			in = append(in, reflect.Zero(pt))
			continue
		}
		v, err := convertArg(args[i], pt)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		in = append(in, v)
	}

	outs := fv.Call(in)
	if n := len(outs); n > 0 && t.Out(n-1) == errorType {
		if e := outs[n-1]; !e.IsNil() {
			return nil, e.Interface().(error)
		}
		outs = outs[:n-1]
	}
	switch len(outs) {
	case 0:
		return Undefined, nil
	case 1:
		return normalize(outs[0]), nil
	}
	res := make([]any, len(outs))
	for i, o := range outs {
		res[i] = normalize(o)
	}
	return res, nil
}

func convertArg(arg any, t reflect.Type) (reflect.Value, error) {
	if arg == nil || arg == Undefined {
		return reflect.Zero(t), nil
	}
	if m, ok := arg.(method); ok {
		arg = m.fn.Interface()
	}
	if t.Kind() == reflect.Interface {
		v := reflect.ValueOf(arg)
		if v.Type().Implements(t) {
			return v, nil
		}
		return reflect.Value{}, fmt.Errorf("%w: %s does not implement %s", ErrType, typeName(arg), t)
	}
	if isNumericKind(t.Kind()) {
		n, ok := toNumber(arg)
		if !ok {
			return reflect.Value{}, fmt.Errorf("%w: expected number, got %s", ErrType, typeName(arg))
		}
		return reflect.ValueOf(n).Convert(t), nil
	}
	v := reflect.ValueOf(arg)
	if v.Type().AssignableTo(t) {
		return v, nil
	}
	if v.Type().ConvertibleTo(t) && v.Kind() == t.Kind() {
		return v.Convert(t), nil
	}
	if s, ok := arg.([]any); ok && t.Kind() == reflect.Slice {
		out := reflect.MakeSlice(t, 0, len(s))
		for _, e := range s {
			ev, err := convertArg(e, t.Elem())
			if err != nil {
				return reflect.Value{}, err
			}
			out = reflect.Append(out, ev)
		}
		return out, nil
	}
	return reflect.Value{}, fmt.Errorf("%w: expected %s, got %s", ErrType, t, typeName(arg))
}

func (env *Env) unary(n *Unary) (any, error) {
	x, err := env.eval(n.X)
	if err != nil {
		return nil, err
	}
	if n.Op == "!" {
		return !truthy(x), nil
	}
	v, ok := toNumber(x)
	if !ok {
		return nil, fmt.Errorf("%w: cannot apply unary %s to %s", ErrType, n.Op, typeName(x))
	}
	if n.Op == "-" {
		return -v, nil
	}
	return v, nil
}

func (env *Env) binary(n *Binary) (any, error) {
	l, err := env.eval(n.L)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case "&&":
		if !truthy(l) {
			return l, nil
		}
		return env.eval(n.R)
	case "||":
		if truthy(l) {
			return l, nil
		}
		return env.eval(n.R)
	case "??":
		if l != nil && l != Undefined {
			return l, nil
		}
		return env.eval(n.R)
	}

	r, err := env.eval(n.R)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case "==":
		return looseEqual(l, r), nil
	case "!=":
		return !looseEqual(l, r), nil
	case "===":
		return strictEqual(l, r), nil
	case "!==":
		return !strictEqual(l, r), nil
	}

	if n.Op == "+" {
		_, ls := l.(string)
		_, rs := r.(string)
		if ls || rs {
			return String(l) + String(r), nil
		}
	}

	if ls, ok := l.(string); ok {
		if rs, ok := r.(string); ok {
			switch n.Op {
			case "<":
				return ls < rs, nil
			case "<=":
				return ls <= rs, nil
			case ">":
				return ls > rs, nil
			case ">=":
				return ls >= rs, nil
			}
		}
	}

	a, aok := toNumber(l)
	b, bok := toNumber(r)
	if !aok || !bok {
		return nil, fmt.Errorf("%w: cannot apply %s to %s and %s", ErrType, n.Op, typeName(l), typeName(r))
	}
	switch n.Op {
	case "+":
		return a + b, nil
	case "-":
		return a - b, nil
	case "*":
		return a * b, nil
	case "/":
		return a / b, nil
	case "%":
		return math.Mod(a, b), nil
	case "<":
		return a < b, nil
	case "<=":
		return a <= b, nil
	case ">":
		return a > b, nil
	case ">=":
		return a >= b, nil
	}
	return nil, fmt.Errorf("%w: unknown operator %s", ErrType, n.Op)
}

func nullish(v any) bool { return v == nil || v == Undefined }

func looseEqual(a, b any) bool {
	if nullish(a) || nullish(b) {
		return nullish(a) && nullish(b)
	}
	return strictEqual(a, b)
}

func strictEqual(a, b any) bool {
	if nullish(a) || nullish(b) {
		return a == b
	}
	if x, ok := toNumber(a); ok {
		y, ok := toNumber(b)
		return ok && x == y
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Type() != rb.Type() {
		return false
	}
	switch ra.Kind() {
	case reflect.Map, reflect.Pointer, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return ra.Pointer() == rb.Pointer()
	case reflect.Slice:
		return ra.Pointer() == rb.Pointer() && ra.Len() == rb.Len()
	}
	if ra.Type().Comparable() {
		return a == b
	}
	return false
}

// IsSyntax reports whether err came from the lexer or parser.
func IsSyntax(err error) bool {
	var se *SyntaxError
	return errors.As(err, &se)
}
