package catalog

import (
	"cmp"
	"slices"
	"strings"
	"sync"
)

// Registry holds the rules a style is resolved against.
type Registry struct {
	mu      sync.RWMutex
	byID    map[string]*Rule
	aliases map[string]string // lower-cased alias -> canonical ID
	tags    map[string][]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:    make(map[string]*Rule),
		aliases: make(map[string]string),
		tags:    make(map[string][]string),
	}
}

// Register adds a rule, replacing any rule with the same ID. The rule's
// aliases and tags are indexed.
func (r *Registry) Register(rule *Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.byID[rule.ID]; ok {
		r.unindexLocked(old)
	}

	r.byID[rule.ID] = rule
	for _, alias := range rule.Aliases {
		r.aliases[strings.ToLower(alias)] = rule.ID
	}
	for _, tag := range rule.Tags {
		r.tags[tag] = append(r.tags[tag], rule.ID)
		slices.Sort(r.tags[tag])
	}
}

func (r *Registry) unindexLocked(rule *Rule) {
	for _, alias := range rule.Aliases {
		delete(r.aliases, strings.ToLower(alias))
	}
	for _, tag := range rule.Tags {
		r.tags[tag] = slices.DeleteFunc(r.tags[tag], func(id string) bool { return id == rule.ID })
		if len(r.tags[tag]) == 0 {
			delete(r.tags, tag)
		}
	}
}

// RegisterAlias maps an extra alias to a rule ID, for names used by other
// linters (e.g. markdownlint's "heading-increment" for MD001).
func (r *Registry) RegisterAlias(alias, ruleID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[strings.ToLower(alias)] = ruleID
}

// Resolve finds a rule by ID (case-insensitive) or alias.
func (r *Registry) Resolve(key string) (*Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key = strings.TrimSpace(key)
	if rule, ok := r.byID[key]; ok {
		return rule, true
	}
	if rule, ok := r.byID[strings.ToUpper(key)]; ok {
		return rule, true
	}
	if id, ok := r.aliases[strings.ToLower(key)]; ok {
		if rule, ok := r.byID[id]; ok {
			return rule, true
		}
	}
	return nil, false
}

// Rules returns all rules sorted by ID.
func (r *Registry) Rules() []*Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Rule, 0, len(r.byID))
	for _, rule := range r.byID {
		result = append(result, rule)
	}
	slices.SortFunc(result, func(a, b *Rule) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return result
}

// IDs returns all rule IDs in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, 0, len(r.byID))
	for id := range r.byID {
		result = append(result, id)
	}
	slices.Sort(result)
	return result
}

// Tagged returns the IDs of rules carrying tag, sorted. A leading ':' is
// ignored so `tag :headers` and `tag 'headers'` agree.
func (r *Registry) Tagged(tag string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.tags[strings.TrimPrefix(tag, ":")])
}

// IsTag reports whether any rule carries tag.
func (r *Registry) IsTag(tag string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tags[strings.TrimPrefix(tag, ":")]
	return ok
}

// Tags returns every known tag, sorted.
func (r *Registry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, 0, len(r.tags))
	for tag := range r.tags {
		result = append(result, tag)
	}
	slices.Sort(result)
	return result
}

// AliasesFor returns every alias registered for id, including extra aliases
// added with RegisterAlias, sorted.
func (r *Registry) AliasesFor(id string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []string
	for alias, target := range r.aliases {
		if target == id {
			result = append(result, alias)
		}
	}
	slices.Sort(result)
	return result
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
