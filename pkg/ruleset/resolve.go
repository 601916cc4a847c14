package ruleset

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/mdlstyle/internal/logging"
	"github.com/yaklabco/mdlstyle/pkg/catalog"
	"github.com/yaklabco/mdlstyle/pkg/style"
)

// Options controls resolution.
type Options struct {
	// Strict rejects options the catalogue does not define instead of
	// keeping them with a warning.
	Strict bool

	// Filter narrows the result after the style has been applied.
	Filter Filter
}

// Filter selects rules by ID or tag after the style is applied. Entries
// prefixed with '~' exclude. When positive entries are present only rules
// matching one of them stay enabled.
type Filter struct {
	Rules []string
	Tags  []string
}

// ParseFilter builds a Filter from comma-separated rule and tag lists, as
// given on a command line or in an .mdlrc.
func ParseFilter(rules, tags string) Filter {
	return Filter{Rules: splitList(rules), Tags: splitList(tags)}
}

// IsEmpty reports whether the filter selects nothing.
func (f Filter) IsEmpty() bool {
	return len(f.Rules) == 0 && len(f.Tags) == 0
}

func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// state is the mutable per-rule record built while walking directives.
type state struct {
	rule       *catalog.Rule
	enabled    bool
	params     map[string]any
	overridden []string
	source     style.Pos
}

func (s *state) override(name string, value any) {
	s.params[name] = value
	if !slices.Contains(s.overridden, name) {
		s.overridden = append(s.overridden, name)
	}
}

type resolver struct {
	reg      *catalog.Registry
	opts     Options
	states   map[string]*state
	warnings []Warning
	errs     []error
}

// Resolve applies the style's directives in order against the catalogue and
// returns the effective rule set. Every semantic problem found is returned,
// joined; each is a *ResolveError.
func Resolve(ctx context.Context, file *style.File, reg *catalog.Registry, opts Options) (*RuleSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("resolve: %w", err)
	}

	logger := logging.FromContext(ctx)
	res := &resolver{reg: reg, opts: opts, states: make(map[string]*state, reg.Len())}

	rules := reg.Rules()
	for _, rule := range rules {
		res.states[rule.ID] = &state{rule: rule, params: rule.Defaults()}
	}

	name := ""
	if file != nil {
		name = file.Name
		for _, d := range file.Directives {
			logger.Debug("applying directive", logging.FieldDirective, d.String(), logging.FieldPos, d.Pos.String())
			res.apply(d)
		}
	}

	res.filter()

	if err := errors.Join(res.errs...); err != nil {
		return nil, err
	}

	set := &RuleSet{Style: name, Warnings: res.warnings}
	for _, rule := range rules {
		st := res.states[rule.ID]
		slices.Sort(st.overridden)
		set.Rules = append(set.Rules, &ResolvedRule{
			Rule:       rule,
			Enabled:    st.enabled,
			Params:     st.params,
			Overridden: st.overridden,
			Source:     st.source,
		})
	}

	logger.Debug("resolved style",
		logging.FieldStyle, name,
		logging.FieldRules, len(set.EnabledIDs()),
		logging.FieldWarnings, len(set.Warnings))

	return set, nil
}

func (r *resolver) fail(pos style.Pos, ruleID string, err error) {
	r.errs = append(r.errs, &ResolveError{Pos: pos, RuleID: ruleID, Err: err})
}

func (r *resolver) warn(pos style.Pos, format string, args ...any) {
	r.warnings = append(r.warnings, Warning{Pos: pos, Message: fmt.Sprintf(format, args...)})
}

func (r *resolver) apply(d style.Directive) {
	switch d.Kind {
	case style.KindAll:
		for _, st := range r.states {
			st.enabled = true
			st.source = d.Pos
		}

	case style.KindRule, style.KindExcludeRule:
		rule, ok := r.reg.Resolve(d.Arg)
		if !ok {
			r.fail(d.Pos, d.Arg, fmt.Errorf("%w %q", ErrUnknownRule, d.Arg))
			return
		}
		st := r.states[rule.ID]
		st.enabled = d.Kind == style.KindRule
		st.source = d.Pos
		for _, opt := range d.Options {
			r.setOption(st, opt)
		}

	case style.KindTag, style.KindExcludeTag:
		ids := r.reg.Tagged(d.Arg)
		if len(ids) == 0 {
			r.fail(d.Pos, "", fmt.Errorf("%w %q", ErrUnknownTag, d.Arg))
			return
		}
		for _, id := range ids {
			st := r.states[id]
			st.enabled = d.Kind == style.KindTag
			st.source = d.Pos
		}
	}
}

func (r *resolver) setOption(st *state, opt style.Option) {
	value := style.Plain(opt.Value)

	param, known := st.rule.Param(opt.Key)
	if !known {
		if r.opts.Strict {
			r.fail(opt.Pos, st.rule.ID, fmt.Errorf("%w %q for %s", ErrUnknownOption, opt.Key, st.rule.ID))
			return
		}
		r.warn(opt.Pos, "%s has no option %q; keeping it as given", st.rule.ID, opt.Key)
		st.override(opt.Key, value)
		return
	}

	coerced, err := param.Coerce(value)
	if err != nil {
		r.fail(opt.Pos, st.rule.ID, fmt.Errorf("%s: %w", st.rule.ID, err))
		return
	}
	st.override(param.Name, coerced)
}

// filter applies Options.Filter, mirroring mdl's -r and -t flags.
func (r *resolver) filter() {
	f := r.opts.Filter
	if f.IsEmpty() {
		return
	}

	includeRules, excludeRules := r.splitRules(f.Rules)
	includeTags, excludeTags := r.splitTags(f.Tags)

	for id, st := range r.states {
		if !st.enabled {
			continue
		}
		switch {
		case len(includeRules) > 0 && !slices.Contains(includeRules, id):
			st.enabled = false
		case slices.Contains(excludeRules, id):
			st.enabled = false
		case len(includeTags) > 0 && !slices.ContainsFunc(includeTags, st.rule.HasTag):
			st.enabled = false
		case slices.ContainsFunc(excludeTags, st.rule.HasTag):
			st.enabled = false
		}
	}
}

func (r *resolver) splitRules(entries []string) (include, exclude []string) {
	for _, entry := range entries {
		name, negated := strings.CutPrefix(entry, "~")
		rule, ok := r.reg.Resolve(name)
		if !ok {
			r.fail(style.Pos{}, name, fmt.Errorf("%w %q in rule filter", ErrUnknownRule, name))
			continue
		}
		if negated {
			exclude = append(exclude, rule.ID)
		} else {
			include = append(include, rule.ID)
		}
	}
	return include, exclude
}

func (r *resolver) splitTags(entries []string) (include, exclude []string) {
	for _, entry := range entries {
		name, negated := strings.CutPrefix(entry, "~")
		name = strings.TrimPrefix(name, ":")
		if !r.reg.IsTag(name) {
			r.fail(style.Pos{}, "", fmt.Errorf("%w %q in tag filter", ErrUnknownTag, name))
			continue
		}
		if negated {
			exclude = append(exclude, name)
		} else {
			include = append(include, name)
		}
	}
	return include, exclude
}
