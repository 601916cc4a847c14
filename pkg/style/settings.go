package style

import "errors"

// Setting is a `key value` statement from a settings file such as .mdlrc:
//
//	style "docs/.mdl.rb"
//	rules "MD001,~MD013"
//	git_recurse true
//
// An optional '=' between key and value is accepted. Several comma-separated
// values are collected into a list.
type Setting struct {
	Key   string
	Value any
	Pos   Pos
}

// ParseSettings parses a settings file using the style file's lexical rules.
func ParseSettings(name string, src []byte) ([]Setting, error) {
	p := newParser(name, src)
	var settings []Setting

	for {
		p.skipNewlines()
		if p.tok.kind == tokEOF {
			break
		}

		setting, err := p.parseSetting()
		if err != nil {
			p.errs = append(p.errs, err)
			p.sync()
			continue
		}
		settings = append(settings, setting)
	}

	if err := p.err(); err != nil {
		return nil, err
	}
	return settings, nil
}

func (p *parser) parseSetting() (Setting, error) {
	if p.tok.kind != tokIdent {
		return Setting{}, p.unexpected("setting name")
	}
	setting := Setting{Key: p.tok.text, Pos: p.tok.pos}
	p.advance()

	p.accept(tokEquals)
	paren := p.accept(tokLParen)

	first, err := p.parseValue()
	if err != nil {
		return Setting{}, err
	}
	setting.Value = first

	if p.tok.kind == tokComma {
		list := []any{first}
		for p.accept(tokComma) {
			value, err := p.parseValue()
			if err != nil {
				return Setting{}, err
			}
			list = append(list, value)
		}
		setting.Value = list
	}

	if paren {
		if err := p.expect(tokRParen); err != nil {
			return Setting{}, err
		}
	}

	if err := p.expectEnd(); err != nil {
		return Setting{}, err
	}
	return setting, nil
}

// SyntaxErrors unpacks the individual syntax errors from an error returned
// by Parse or ParseSettings.
func SyntaxErrors(err error) []*SyntaxError {
	if err == nil {
		return nil
	}

	var out []*SyntaxError
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, inner := range joined.Unwrap() {
			out = append(out, SyntaxErrors(inner)...)
		}
		return out
	}

	var syntaxErr *SyntaxError
	if errors.As(err, &syntaxErr) {
		out = append(out, syntaxErr)
	}
	return out
}
