// ABOUTME: Tokenizer for console expressions: numbers, strings, identifiers, punctuation
// ABOUTME: The back-reference marker § (optionally followed by a slot number) is its own token

package eval

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MarkerRune introduces a back-reference to a stored result.
const MarkerRune = '§'

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokString
	tokIdent
	tokMarker
	tokPunct
)

type token struct {
	kind tokenKind
	text string
	pos  int

	num  float64 // tokNumber
	str  string  // tokString
	slot int     // tokMarker; -1 for a bare marker
}

// puncts is ordered longest first so the scanner can take the first match.
var puncts = []string{
	"===", "!==",
	"==", "!=", "<=", ">=", "&&", "||", "??",
	".", ",", "(", ")", "[", "]", "{", "}", ":", "?",
	"+", "-", "*", "/", "%", "!", "<", ">",
}

type lexer struct {
	src string
	pos int
}

func tokenize(src string) ([]token, error) {
	lx := &lexer{src: src}
	var toks []token
	for {
		t, err := lx.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, t)
		if t.kind == tokEOF {
			return toks, nil
		}
	}
}

func (lx *lexer) peekRune(off int) rune {
	if lx.pos+off >= len(lx.src) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(lx.src[lx.pos+off:])
	return r
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func (lx *lexer) next() (token, error) {
	for lx.pos < len(lx.src) {
		r, size := utf8.DecodeRuneInString(lx.src[lx.pos:])
		if !unicode.IsSpace(r) {
			break
		}
		lx.pos += size
	}
	start := lx.pos
	if start >= len(lx.src) {
		return token{kind: tokEOF, pos: start}, nil
	}

	r, size := utf8.DecodeRuneInString(lx.src[start:])
	switch {
	case r == utf8.RuneError && size == 1:
		return token{}, syntaxErr(start, "invalid UTF-8")
	case r == MarkerRune:
		lx.pos += size
		digits := lx.pos
		for lx.pos < len(lx.src) && isDigit(rune(lx.src[lx.pos])) {
			lx.pos++
		}
		t := token{kind: tokMarker, text: lx.src[start:lx.pos], pos: start, slot: -1}
		if lx.pos > digits {
			n, err := strconv.Atoi(lx.src[digits:lx.pos])
			if err != nil {
				return token{}, syntaxErr(start, "bad slot %q", lx.src[digits:lx.pos])
			}
			t.slot = n
		}
		return t, nil
	case isDigit(r) || (r == '.' && isDigit(lx.peekRune(1))):
		return lx.number()
	case r == '"' || r == '\'':
		return lx.quoted(r)
	case isIdentStart(r):
		for lx.pos < len(lx.src) {
			r, size := utf8.DecodeRuneInString(lx.src[lx.pos:])
			if !isIdentPart(r) {
				break
			}
			lx.pos += size
		}
		return token{kind: tokIdent, text: lx.src[start:lx.pos], pos: start}, nil
	}

	for _, p := range puncts {
		if strings.HasPrefix(lx.src[start:], p) {
			lx.pos += len(p)
			return token{kind: tokPunct, text: p, pos: start}, nil
		}
	}
	return token{}, syntaxErr(start, "unexpected character %q", r)
}

func (lx *lexer) number() (token, error) {
	start := lx.pos
	src := lx.src
	if strings.HasPrefix(src[start:], "0x") || strings.HasPrefix(src[start:], "0X") {
		lx.pos += 2
		for lx.pos < len(src) && strings.ContainsRune("0123456789abcdefABCDEF", rune(src[lx.pos])) {
			lx.pos++
		}
		n, err := strconv.ParseInt(src[start:lx.pos], 0, 64)
		if err != nil {
			return token{}, syntaxErr(start, "invalid number %q", src[start:lx.pos])
		}
		return token{kind: tokNumber, text: src[start:lx.pos], pos: start, num: float64(n)}, nil
	}

	digits := func() {
		for lx.pos < len(src) && isDigit(rune(src[lx.pos])) {
			lx.pos++
		}
	}
	digits()
	if lx.pos < len(src) && src[lx.pos] == '.' {
		lx.pos++
		digits()
	}
	if lx.pos < len(src) && (src[lx.pos] == 'e' || src[lx.pos] == 'E') {
		save := lx.pos
		lx.pos++
		if lx.pos < len(src) && (src[lx.pos] == '+' || src[lx.pos] == '-') {
			lx.pos++
		}
		if lx.pos < len(src) && isDigit(rune(src[lx.pos])) {
			digits()
		} else {
			lx.pos = save
		}
	}
	text := src[start:lx.pos]
	if lx.pos < len(src) && isIdentStart(lx.peekRune(0)) {
		return token{}, syntaxErr(lx.pos, "identifier directly after number")
	}
	n, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return token{}, syntaxErr(start, "invalid number %q", text)
	}
	return token{kind: tokNumber, text: text, pos: start, num: n}, nil
}

func (lx *lexer) quoted(quote rune) (token, error) {
	start := lx.pos
	lx.pos++
	var b strings.Builder
	for {
		if lx.pos >= len(lx.src) {
			return token{}, syntaxErr(start, "unterminated string")
		}
		r, size := utf8.DecodeRuneInString(lx.src[lx.pos:])
		lx.pos += size
		switch {
		case r == quote:
			return token{kind: tokString, text: lx.src[start:lx.pos], pos: start, str: b.String()}, nil
		case r == '\n':
			return token{}, syntaxErr(start, "unterminated string")
		case r != '\\':
			b.WriteRune(r)
			continue
		}

		if lx.pos >= len(lx.src) {
			return token{}, syntaxErr(start, "unterminated string")
		}
		e, size := utf8.DecodeRuneInString(lx.src[lx.pos:])
		lx.pos += size
		switch e {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '0':
			b.WriteByte(0)
		case 'x', 'u':
			width := 2
			if e == 'u' {
				width = 4
			}
			if lx.pos+width > len(lx.src) {
				return token{}, syntaxErr(lx.pos, "short \\%c escape", e)
			}
			n, err := strconv.ParseUint(lx.src[lx.pos:lx.pos+width], 16, 32)
			if err != nil {
				return token{}, syntaxErr(lx.pos, "bad \\%c escape", e)
			}
			lx.pos += width
			b.WriteRune(rune(n))
		default:
			b.WriteRune(e)
		}
	}
}
