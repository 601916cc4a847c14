// Package catalog describes the lint rules a style can refer to: their IDs,
// aliases, tags, and typed parameters.
package catalog

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
)

// ErrInvalidValue is returned by Param.Coerce for values of the wrong type
// or outside the allowed set.
var ErrInvalidValue = errors.New("invalid option value")

// Kind is the type of a rule parameter.
type Kind string

// Parameter kinds.
const (
	KindString Kind = "string"
	KindInt    Kind = "int"
	KindBool   Kind = "bool"
	KindList   Kind = "list"
)

// Param describes one configurable rule parameter.
type Param struct {
	Name        string
	Kind        Kind
	Default     any
	Allowed     []string
	Description string
}

// Coerce validates value against the parameter and returns it in canonical
// form: int for KindInt, []string for KindList.
func (p Param) Coerce(value any) (any, error) {
	switch p.Kind {
	case KindInt:
		return coerceInt(p.Name, value)
	case KindBool:
		b, ok := value.(bool)
		if !ok {
			return nil, fmt.Errorf("%w: %s expects true or false, got %s", ErrInvalidValue, p.Name, describe(value))
		}
		return b, nil
	case KindString:
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s expects a string, got %s", ErrInvalidValue, p.Name, describe(value))
		}
		if len(p.Allowed) > 0 && !slices.Contains(p.Allowed, s) {
			return nil, fmt.Errorf("%w: %s must be one of %s, got %q",
				ErrInvalidValue, p.Name, strings.Join(p.Allowed, ", "), s)
		}
		return s, nil
	case KindList:
		return coerceList(p.Name, value)
	default:
		return value, nil
	}
}

func coerceInt(name string, value any) (any, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case uint64:
		if v > math.MaxInt {
			return nil, fmt.Errorf("%w: %s is out of range", ErrInvalidValue, name)
		}
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return nil, fmt.Errorf("%w: %s expects an integer, got %v", ErrInvalidValue, name, v)
		}
		return int(v), nil
	default:
		return nil, fmt.Errorf("%w: %s expects an integer, got %s", ErrInvalidValue, name, describe(value))
	}
}

func coerceList(name string, value any) (any, error) {
	switch v := value.(type) {
	case []string:
		return slices.Clone(v), nil
	case []any:
		out := make([]string, 0, len(v))
		for _, elem := range v {
			s, ok := elem.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s expects a list of strings, found %s", ErrInvalidValue, name, describe(elem))
			}
			out = append(out, s)
		}
		return out, nil
	case string:
		// A single string is accepted as a one-element list.
		return []string{v}, nil
	default:
		return nil, fmt.Errorf("%w: %s expects a list of strings, got %s", ErrInvalidValue, name, describe(value))
	}
}

func describe(value any) string {
	switch v := value.(type) {
	case nil:
		return "nil"
	case string:
		return fmt.Sprintf("string %q", v)
	case bool:
		return fmt.Sprintf("boolean %v", v)
	case int, int64, uint64:
		return fmt.Sprintf("integer %v", v)
	case float64:
		return fmt.Sprintf("number %v", v)
	case []any, []string:
		return "list"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// Rule is a catalogue entry.
type Rule struct {
	ID          string
	Aliases     []string
	Tags        []string
	Description string
	Params      []Param
}

// Alias returns the rule's primary alias, or "" if it has none.
func (r *Rule) Alias() string {
	if len(r.Aliases) == 0 {
		return ""
	}
	return r.Aliases[0]
}

// Param looks up a parameter by name.
func (r *Rule) Param(name string) (Param, bool) {
	for _, p := range r.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// HasTag reports whether the rule carries tag.
func (r *Rule) HasTag(tag string) bool {
	return slices.Contains(r.Tags, tag)
}

// Defaults returns a fresh map of the rule's default parameter values.
func (r *Rule) Defaults() map[string]any {
	out := make(map[string]any, len(r.Params))
	for _, p := range r.Params {
		out[p.Name] = cloneValue(p.Default)
	}
	return out
}

func cloneValue(value any) any {
	if list, ok := value.([]string); ok {
		return slices.Clone(list)
	}
	return value
}

// FormatID formats a rule identifier: "id", "alias", or "combined"
// (MD013/line-length). Falls back to the ID when the rule has no alias.
func (r *Rule) FormatID(format string) string {
	alias := r.Alias()
	if alias == "" {
		return r.ID
	}

	switch format {
	case "alias", "name":
		return alias
	case "combined":
		return r.ID + "/" + alias
	default:
		return r.ID
	}
}
