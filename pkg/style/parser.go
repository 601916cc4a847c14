package style

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/mdlstyle/pkg/fsutil"
)

// Parse parses style source. name is used in positions and error messages.
// All syntax errors found are returned joined; each is a *SyntaxError.
func Parse(name string, src []byte) (*File, error) {
	p := newParser(name, src)
	file := &File{Name: name}

	for {
		p.skipNewlines()
		if p.tok.kind == tokEOF {
			break
		}

		directive, err := p.parseDirective()
		if err != nil {
			p.errs = append(p.errs, err)
			p.sync()
			continue
		}
		file.Directives = append(file.Directives, directive)
	}

	if err := p.err(); err != nil {
		return nil, err
	}
	return file, nil
}

// ParseFile reads and parses the style file at path.
func ParseFile(ctx context.Context, path string) (*File, error) {
	content, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("read style: %w", err)
	}
	return Parse(path, content)
}

type parser struct {
	lex  *lexer
	tok  token
	errs []error
}

func newParser(name string, src []byte) *parser {
	p := &parser{lex: newLexer(name, src)}
	p.advance()
	return p
}

func (p *parser) advance() {
	p.tok = p.lex.next()
}

func (p *parser) err() error {
	all := make([]error, 0, len(p.lex.errs)+len(p.errs))
	all = append(all, p.lex.errs...)
	all = append(all, p.errs...)
	return errors.Join(all...)
}

func (p *parser) errorf(pos Pos, format string, args ...any) error {
	return &SyntaxError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) unexpected(want string) error {
	return p.errorf(p.tok.pos, "expected %s, found %s", want, describe(p.tok))
}

func describe(tok token) string {
	switch tok.kind {
	case tokIdent, tokLabel, tokInt, tokFloat:
		return fmt.Sprintf("%s %q", tok.kind, tok.text)
	case tokString:
		return fmt.Sprintf("string %q", tok.text)
	case tokSymbol:
		return fmt.Sprintf("symbol :%s", tok.text)
	default:
		return tok.kind.String()
	}
}

func (p *parser) accept(kind tokenKind) bool {
	if p.tok.kind == kind {
		p.advance()
		return true
	}
	return false
}

func (p *parser) expect(kind tokenKind) error {
	if p.tok.kind != kind {
		return p.unexpected(kind.String())
	}
	p.advance()
	return nil
}

func (p *parser) skipNewlines() {
	for p.tok.kind == tokNewline {
		p.advance()
	}
}

// sync skips the rest of a malformed statement.
func (p *parser) sync() {
	for p.tok.kind != tokNewline && p.tok.kind != tokEOF {
		p.advance()
	}
}

func (p *parser) expectEnd() error {
	if p.tok.kind == tokNewline || p.tok.kind == tokEOF {
		return nil
	}
	return p.unexpected("end of line")
}

func (p *parser) parseDirective() (Directive, error) {
	if p.tok.kind != tokIdent {
		return Directive{}, p.unexpected("directive")
	}

	directive := Directive{Kind: Kind(p.tok.text), Pos: p.tok.pos}
	if !directive.Kind.IsKnown() {
		return Directive{}, p.errorf(p.tok.pos, "unknown directive %q", p.tok.text)
	}
	p.advance()

	paren := p.accept(tokLParen)

	if kindArity[directive.Kind] {
		arg, err := p.parseName()
		if err != nil {
			return Directive{}, err
		}
		directive.Arg = arg

		if p.tok.kind == tokComma {
			if directive.Kind != KindRule {
				return Directive{}, p.errorf(p.tok.pos, "%s takes a single argument", directive.Kind)
			}
			p.advance()
			options, err := p.parseHash()
			if err != nil {
				return Directive{}, err
			}
			directive.Options = options
		}
	}

	if paren {
		if err := p.expect(tokRParen); err != nil {
			return Directive{}, err
		}
	}

	if err := p.expectEnd(); err != nil {
		return Directive{}, err
	}
	return directive, nil
}

// parseName reads a rule ID or tag: a string or a symbol.
func (p *parser) parseName() (string, error) {
	switch p.tok.kind {
	case tokString, tokSymbol:
		name := p.tok.text
		pos := p.tok.pos
		p.advance()
		if name == "" {
			return "", p.errorf(pos, "empty name")
		}
		return name, nil
	default:
		return "", p.unexpected("rule or tag name")
	}
}

// parseHash reads hash entries, either bare (`:a => 1, b: 2`) or braced.
func (p *parser) parseHash() ([]Option, error) {
	if p.accept(tokLBrace) {
		var options []Option
		for p.tok.kind != tokRBrace {
			opt, err := p.parseEntry()
			if err != nil {
				return nil, err
			}
			options = append(options, opt)
			if !p.accept(tokComma) {
				break
			}
		}
		if err := p.expect(tokRBrace); err != nil {
			return nil, err
		}
		return options, nil
	}

	var options []Option
	for {
		opt, err := p.parseEntry()
		if err != nil {
			return nil, err
		}
		options = append(options, opt)
		if !p.accept(tokComma) || p.tok.kind == tokRParen {
			return options, nil
		}
	}
}

func (p *parser) parseEntry() (Option, error) {
	opt := Option{Pos: p.tok.pos}

	switch p.tok.kind {
	case tokLabel:
		opt.Key = p.tok.text
		p.advance()
	case tokSymbol, tokString:
		opt.Key = p.tok.text
		p.advance()
		if err := p.expect(tokArrow); err != nil {
			return Option{}, err
		}
	default:
		return Option{}, p.unexpected("option name")
	}

	if opt.Key == "" {
		return Option{}, p.errorf(opt.Pos, "empty option name")
	}

	value, err := p.parseValue()
	if err != nil {
		return Option{}, err
	}
	opt.Value = value
	return opt, nil
}

func (p *parser) parseValue() (any, error) {
	tok := p.tok
	switch tok.kind {
	case tokString:
		p.advance()
		return tok.text, nil
	case tokSymbol:
		p.advance()
		return Symbol(tok.text), nil
	case tokInt:
		p.advance()
		return tok.ival, nil
	case tokFloat:
		p.advance()
		return tok.fval, nil
	case tokIdent:
		switch tok.text {
		case "true":
			p.advance()
			return true, nil
		case "false":
			p.advance()
			return false, nil
		case "nil":
			p.advance()
			return nil, nil
		}
		return nil, p.errorf(tok.pos, "unsupported value %q", tok.text)
	case tokLBracket:
		return p.parseList()
	case tokLBrace:
		options, err := p.parseHash()
		if err != nil {
			return nil, err
		}
		hash := make(map[string]any, len(options))
		for _, opt := range options {
			hash[opt.Key] = opt.Value
		}
		return hash, nil
	default:
		return nil, p.unexpected("value")
	}
}

func (p *parser) parseList() (any, error) {
	p.advance() // '['
	list := []any{}
	for p.tok.kind != tokRBracket {
		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		list = append(list, value)
		if !p.accept(tokComma) {
			break
		}
	}
	if err := p.expect(tokRBracket); err != nil {
		return nil, err
	}
	return list, nil
}
