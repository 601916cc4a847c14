package style

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

//nolint:gochecknoglobals // Constant byte sequence.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNewline
	tokIdent
	tokLabel // ident followed by ':' (Ruby 1.9 hash key)
	tokString
	tokSymbol
	tokInt
	tokFloat
	tokComma
	tokArrow
	tokEquals
	tokLParen
	tokRParen
	tokLBrace
	tokRBrace
	tokLBracket
	tokRBracket
)

//nolint:gochecknoglobals // Read-only lookup table.
var tokenNames = map[tokenKind]string{
	tokEOF:      "end of file",
	tokNewline:  "end of line",
	tokIdent:    "identifier",
	tokLabel:    "hash key",
	tokString:   "string",
	tokSymbol:   "symbol",
	tokInt:      "integer",
	tokFloat:    "number",
	tokComma:    "','",
	tokArrow:    "'=>'",
	tokEquals:   "'='",
	tokLParen:   "'('",
	tokRParen:   "')'",
	tokLBrace:   "'{'",
	tokRBrace:   "'}'",
	tokLBracket: "'['",
	tokRBracket: "']'",
}

func (k tokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return fmt.Sprintf("token(%d)", int(k))
}

type token struct {
	kind tokenKind
	text string
	pos  Pos
	ival int
	fval float64
}

// lexer turns style source into tokens. Newlines inside brackets, or after
// a comma or '=>', continue the current statement and are not emitted.
type lexer struct {
	src    []byte
	file   string
	offset int
	line   int
	col    int
	depth  int
	last   tokenKind
	errs   []error
}

func newLexer(file string, src []byte) *lexer {
	src = bytes.TrimPrefix(src, utf8BOM)
	return &lexer{src: src, file: file, line: 1, col: 1, last: tokNewline}
}

func (l *lexer) pos() Pos {
	return Pos{File: l.file, Line: l.line, Column: l.col}
}

func (l *lexer) errorf(pos Pos, format string, args ...any) {
	l.errs = append(l.errs, &SyntaxError{Pos: pos, Msg: fmt.Sprintf(format, args...)})
}

func (l *lexer) peekRune() (rune, int) {
	if l.offset >= len(l.src) {
		return 0, 0
	}
	return utf8.DecodeRune(l.src[l.offset:])
}

func (l *lexer) advance() rune {
	r, size := l.peekRune()
	if size == 0 {
		return 0
	}
	l.offset += size
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *lexer) continues() bool {
	return l.depth > 0 || l.last == tokComma || l.last == tokArrow || l.last == tokNewline
}

// next returns the next significant token.
func (l *lexer) next() token {
	tok := l.scan()
	l.last = tok.kind
	return tok
}

func (l *lexer) scan() token {
	for {
		r, size := l.peekRune()
		if size == 0 {
			return token{kind: tokEOF, pos: l.pos()}
		}

		switch {
		case r == '\n' || r == ';':
			pos := l.pos()
			l.advance()
			if l.continues() {
				continue
			}
			return token{kind: tokNewline, pos: pos}
		case r == '\\' && l.followedByNewline():
			l.advance()
			l.advance()
			continue
		case unicode.IsSpace(r):
			l.advance()
			continue
		case r == '#':
			for {
				c, n := l.peekRune()
				if n == 0 || c == '\n' {
					break
				}
				l.advance()
			}
			continue
		}

		return l.scanToken(r)
	}
}

func (l *lexer) followedByNewline() bool {
	rest := l.src[l.offset+1:]
	return len(rest) > 0 && (rest[0] == '\n' || (rest[0] == '\r' && len(rest) > 1 && rest[1] == '\n'))
}

func (l *lexer) scanToken(r rune) token {
	pos := l.pos()

	switch r {
	case ',':
		l.advance()
		return token{kind: tokComma, pos: pos, text: ","}
	case '(':
		l.advance()
		l.depth++
		return token{kind: tokLParen, pos: pos, text: "("}
	case ')':
		l.advance()
		l.closeBracket()
		return token{kind: tokRParen, pos: pos, text: ")"}
	case '{':
		l.advance()
		l.depth++
		return token{kind: tokLBrace, pos: pos, text: "{"}
	case '}':
		l.advance()
		l.closeBracket()
		return token{kind: tokRBrace, pos: pos, text: "}"}
	case '[':
		l.advance()
		l.depth++
		return token{kind: tokLBracket, pos: pos, text: "["}
	case ']':
		l.advance()
		l.closeBracket()
		return token{kind: tokRBracket, pos: pos, text: "]"}
	case '=':
		l.advance()
		if c, _ := l.peekRune(); c == '>' {
			l.advance()
			return token{kind: tokArrow, pos: pos, text: "=>"}
		}
		return token{kind: tokEquals, pos: pos, text: "="}
	case '\'', '"':
		return l.scanString(pos, r)
	case ':':
		return l.scanSymbol(pos)
	}

	if r == '-' || r == '+' || unicode.IsDigit(r) {
		return l.scanNumber(pos)
	}

	if isIdentStart(r) {
		ident := l.scanIdent()
		if c, _ := l.peekRune(); c == ':' && !l.doubleColon() {
			l.advance()
			return token{kind: tokLabel, pos: pos, text: ident}
		}
		return token{kind: tokIdent, pos: pos, text: ident}
	}

	l.advance()
	l.errorf(pos, "unexpected character %q", r)
	return l.scan()
}

func (l *lexer) closeBracket() {
	if l.depth > 0 {
		l.depth--
	}
}

func (l *lexer) doubleColon() bool {
	return l.offset+1 < len(l.src) && l.src[l.offset+1] == ':'
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (l *lexer) scanIdent() string {
	start := l.offset
	for {
		r, n := l.peekRune()
		if n == 0 || !isIdentPart(r) {
			break
		}
		l.advance()
	}
	// Ruby method names may end in ? or !.
	if r, _ := l.peekRune(); r == '?' || r == '!' {
		l.advance()
	}
	return string(l.src[start:l.offset])
}

func (l *lexer) scanSymbol(pos Pos) token {
	l.advance() // ':'
	r, n := l.peekRune()
	switch {
	case n == 0:
		l.errorf(pos, "expected symbol name after ':'")
		return token{kind: tokSymbol, pos: pos}
	case r == '\'' || r == '"':
		str := l.scanString(pos, r)
		return token{kind: tokSymbol, pos: pos, text: str.text}
	case isIdentStart(r):
		return token{kind: tokSymbol, pos: pos, text: l.scanIdent()}
	default:
		l.errorf(pos, "expected symbol name after ':', found %q", r)
		return token{kind: tokSymbol, pos: pos}
	}
}

func (l *lexer) scanString(pos Pos, quote rune) token {
	l.advance() // opening quote
	var buf strings.Builder

	for {
		r, n := l.peekRune()
		if n == 0 || r == '\n' {
			l.errorf(pos, "unterminated string")
			return token{kind: tokString, pos: pos, text: buf.String()}
		}
		l.advance()

		if r == quote {
			return token{kind: tokString, pos: pos, text: buf.String()}
		}

		if r == '#' && quote == '"' {
			if c, _ := l.peekRune(); c == '{' {
				l.errorf(pos, "string interpolation is not supported")
			}
		}

		if r != '\\' {
			buf.WriteRune(r)
			continue
		}

		esc, m := l.peekRune()
		if m == 0 {
			continue
		}
		l.advance()
		buf.WriteString(unescape(quote, esc))
	}
}

// unescape follows Ruby's rules: single-quoted strings only honour \\ and \'.
func unescape(quote, esc rune) string {
	if quote == '\'' {
		if esc == '\\' || esc == '\'' {
			return string(esc)
		}
		return "\\" + string(esc)
	}
	switch esc {
	case 'n':
		return "\n"
	case 't':
		return "\t"
	case 'r':
		return "\r"
	case '0':
		return "\x00"
	default:
		return string(esc)
	}
}

func (l *lexer) scanNumber(pos Pos) token {
	start := l.offset
	if r, _ := l.peekRune(); r == '-' || r == '+' {
		l.advance()
	}

	isFloat := false
	for {
		r, n := l.peekRune()
		if n == 0 {
			break
		}
		if unicode.IsDigit(r) || r == '_' {
			l.advance()
			continue
		}
		if r == '.' && !isFloat && l.offset+1 < len(l.src) && l.src[l.offset+1] >= '0' && l.src[l.offset+1] <= '9' {
			isFloat = true
			l.advance()
			continue
		}
		break
	}

	text := string(l.src[start:l.offset])
	clean := strings.ReplaceAll(text, "_", "")

	if clean == "-" || clean == "+" || clean == "" {
		l.errorf(pos, "expected number, found %q", text)
		return token{kind: tokInt, pos: pos, text: text}
	}

	if isFloat {
		f, err := strconv.ParseFloat(clean, 64)
		if err != nil {
			l.errorf(pos, "invalid number %q", text)
		}
		return token{kind: tokFloat, pos: pos, text: text, fval: f}
	}

	i, err := strconv.Atoi(clean)
	if err != nil {
		l.errorf(pos, "invalid integer %q", text)
	}
	return token{kind: tokInt, pos: pos, text: text, ival: i}
}
