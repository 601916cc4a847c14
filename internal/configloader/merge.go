package configloader

import "maps"

// merge combines two settings layers, with override taking precedence.
// Empty strings and nil pointers in override leave base untouched; Extra is
// merged key by key.
func merge(base, override *Settings) *Settings {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Style != "" {
		result.Style = override.Style
		result.StyleBase = override.StyleBase
	}
	if override.Rules != "" {
		result.Rules = override.Rules
	}
	if override.Tags != "" {
		result.Tags = override.Tags
	}
	if override.Strict != nil {
		strict := *override.Strict
		result.Strict = &strict
	}

	if len(override.Extra) > 0 {
		result.Extra = maps.Clone(base.Extra)
		if result.Extra == nil {
			result.Extra = make(map[string]any, len(override.Extra))
		}
		maps.Copy(result.Extra, override.Extra)
	}

	return &result
}

// MergeAll merges settings in order, with later layers taking precedence.
func MergeAll(layers ...*Settings) *Settings {
	if len(layers) == 0 {
		return nil
	}

	result := layers[0]
	for _, layer := range layers[1:] {
		result = merge(result, layer)
	}
	return result
}
