// ABOUTME: Recursive-descent parser producing an expression tree
// ABOUTME: Supports literals, member access, indexing, calls, unary/binary operators and ?: conditionals

package eval

// Node is an expression tree node.
type Node interface {
	Pos() int
}

type (
	// Literal is a constant value.
	Literal struct {
		At    int
		Value any
	}
	// Ident names a scope binding.
	Ident struct {
		At   int
		Name string
	}
	// Marker is a back-reference; Slot is -1 for the most recent result.
	Marker struct {
		At   int
		Slot int
	}
	// Member is Object.Name.
	Member struct {
		At     int
		Object Node
		Name   string
	}
	// Index is Object[Index].
	Index struct {
		At     int
		Object Node
		Index  Node
	}
	// Call is Fn(Args...).
	Call struct {
		At   int
		Fn   Node
		Args []Node
	}
	// Unary is Op X.
	Unary struct {
		At int
		Op string
		X  Node
	}
	// Binary is L Op R, including the short-circuit operators.
	Binary struct {
		At   int
		Op   string
		L, R Node
	}
	// Conditional is Cond ? Then : Else.
	Conditional struct {
		At               int
		Cond, Then, Else Node
	}
	// Array is [Elems...].
	Array struct {
		At    int
		Elems []Node
	}
	// Object is {Keys[i]: Values[i], ...}.
	Object struct {
		At     int
		Keys   []string
		Values []Node
	}
)

func (n *Literal) Pos() int     { return n.At }
func (n *Ident) Pos() int       { return n.At }
func (n *Marker) Pos() int      { return n.At }
func (n *Member) Pos() int      { return n.At }
func (n *Index) Pos() int       { return n.At }
func (n *Call) Pos() int        { return n.At }
func (n *Unary) Pos() int       { return n.At }
func (n *Binary) Pos() int      { return n.At }
func (n *Conditional) Pos() int { return n.At }
func (n *Array) Pos() int       { return n.At }
func (n *Object) Pos() int      { return n.At }

// maxDepth bounds nesting so hostile input cannot exhaust the stack.
const maxDepth = 200

type parser struct {
	toks  []token
	i     int
	depth int
}

// Parse turns src into an expression tree.
func Parse(src string) (n Node, err error) {
	defer catch(&err)
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	if p.peek().kind == tokEOF {
		return nil, syntaxErr(0, "empty expression")
	}
	n, err = p.expr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, syntaxErr(t.pos, "unexpected %q", t.text)
	}
	return n, nil
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) advance() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) isPunct(s string) bool {
	t := p.peek()
	return t.kind == tokPunct && t.text == s
}

func (p *parser) accept(s string) bool {
	if p.isPunct(s) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) expect(s string) error {
	if p.accept(s) {
		return nil
	}
	t := p.peek()
	if t.kind == tokEOF {
		return syntaxErr(t.pos, "unexpected end of input, expected %q", s)
	}
	return syntaxErr(t.pos, "expected %q, got %q", s, t.text)
}

func (p *parser) expr() (Node, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxDepth {
		return nil, syntaxErr(p.peek().pos, "expression nested too deeply")
	}
	return p.conditional()
}

func (p *parser) conditional() (Node, error) {
	cond, err := p.binary(0)
	if err != nil {
		return nil, err
	}
	if !p.isPunct("?") {
		return cond, nil
	}
	at := p.advance().pos
	then, err := p.expr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(":"); err != nil {
		return nil, err
	}
	els, err := p.expr()
	if err != nil {
		return nil, err
	}
	return &Conditional{At: at, Cond: cond, Then: then, Else: els}, nil
}

// precedence levels, loosest first.
var precedence = [][]string{
	{"??"},
	{"||"},
	{"&&"},
	{"==", "!=", "===", "!=="},
	{"<", "<=", ">", ">="},
	{"+", "-"},
	{"*", "/", "%"},
}

func (p *parser) binary(level int) (Node, error) {
	if level == len(precedence) {
		return p.unary()
	}
	left, err := p.binary(level + 1)
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.kind != tokPunct || !contains(precedence[level], t.text) {
			return left, nil
		}
		p.advance()
		right, err := p.binary(level + 1)
		if err != nil {
			return nil, err
		}
		left = &Binary{At: t.pos, Op: t.text, L: left, R: right}
	}
}

func contains(ops []string, s string) bool {
	for _, o := range ops {
		if o == s {
			return true
		}
	}
	return false
}

func (p *parser) unary() (Node, error) {
	t := p.peek()
	if t.kind == tokPunct && (t.text == "-" || t.text == "+" || t.text == "!") {
		p.advance()
		p.depth++
		defer func() { p.depth-- }()
		if p.depth > maxDepth {
			return nil, syntaxErr(t.pos, "expression nested too deeply")
		}
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &Unary{At: t.pos, Op: t.text, X: x}, nil
	}
	return p.postfix()
}

func (p *parser) postfix() (Node, error) {
	n, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		switch {
		case p.isPunct("."):
			p.advance()
			name := p.advance()
			if name.kind != tokIdent {
				if name.kind == tokEOF {
					return nil, syntaxErr(name.pos, "unexpected end of input after '.'")
				}
				return nil, syntaxErr(name.pos, "expected property name, got %q", name.text)
			}
			n = &Member{At: t.pos, Object: n, Name: name.text}
		case p.isPunct("["):
			p.advance()
			idx, err := p.expr()
			if err != nil {
				return nil, err
			}
			if err := p.expect("]"); err != nil {
				return nil, err
			}
			n = &Index{At: t.pos, Object: n, Index: idx}
		case p.isPunct("("):
			p.advance()
			args, err := p.list(")")
			if err != nil {
				return nil, err
			}
			n = &Call{At: t.pos, Fn: n, Args: args}
		default:
			return n, nil
		}
	}
}

// list parses comma-separated expressions up to the closing delimiter,
// allowing a trailing comma.
func (p *parser) list(end string) ([]Node, error) {
	var out []Node
	for !p.accept(end) {
		n, err := p.expr()
		if err != nil {
			return nil, err
		}
		out = append(out, n)
		if !p.accept(",") {
			if err := p.expect(end); err != nil {
				return nil, err
			}
			break
		}
	}
	return out, nil
}

func (p *parser) primary() (Node, error) {
	t := p.advance()
	switch t.kind {
	case tokEOF:
		return nil, syntaxErr(t.pos, "unexpected end of input")
	case tokNumber:
		return &Literal{At: t.pos, Value: t.num}, nil
	case tokString:
		return &Literal{At: t.pos, Value: t.str}, nil
	case tokMarker:
		return &Marker{At: t.pos, Slot: t.slot}, nil
	case tokIdent:
		switch t.text {
		case "true":
			return &Literal{At: t.pos, Value: true}, nil
		case "false":
			return &Literal{At: t.pos, Value: false}, nil
		case "null":
			return &Literal{At: t.pos, Value: nil}, nil
		case "undefined":
			return &Literal{At: t.pos, Value: Undefined}, nil
		}
		return &Ident{At: t.pos, Name: t.text}, nil
	}

	switch t.text {
	case "(":
		n, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return n, nil
	case "[":
		elems, err := p.list("]")
		if err != nil {
			return nil, err
		}
		return &Array{At: t.pos, Elems: elems}, nil
	case "{":
		return p.object(t.pos)
	}
	return nil, syntaxErr(t.pos, "unexpected %q", t.text)
}

func (p *parser) object(at int) (Node, error) {
	obj := &Object{At: at}
	for !p.accept("}") {
		k := p.advance()
		var key string
		switch k.kind {
		case tokIdent:
			key = k.text
		case tokString:
			key = k.str
		case tokNumber:
			key = formatNumber(k.num)
		default:
			return nil, syntaxErr(k.pos, "expected property name, got %q", k.text)
		}
		if err := p.expect(":"); err != nil {
			return nil, err
		}
		v, err := p.expr()
		if err != nil {
			return nil, err
		}
		obj.Keys = append(obj.Keys, key)
		obj.Values = append(obj.Values, v)
		if !p.accept(",") {
			if err := p.expect("}"); err != nil {
				return nil, err
			}
			break
		}
	}
	return obj, nil
}

// HasCall reports whether evaluating n could invoke a function.
func HasCall(n Node) bool {
	switch n := n.(type) {
	case *Call:
		return true
	case *Member:
		return HasCall(n.Object)
	case *Index:
		return HasCall(n.Object) || HasCall(n.Index)
	case *Unary:
		return HasCall(n.X)
	case *Binary:
		return HasCall(n.L) || HasCall(n.R)
	case *Conditional:
		return HasCall(n.Cond) || HasCall(n.Then) || HasCall(n.Else)
	case *Array:
		for _, e := range n.Elems {
			if HasCall(e) {
				return true
			}
		}
	case *Object:
		for _, v := range n.Values {
			if HasCall(v) {
				return true
			}
		}
	}
	return false
}
