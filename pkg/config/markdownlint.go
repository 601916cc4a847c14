package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"

	"gopkg.in/yaml.v3"
)

// ToMarkdownlint returns the configuration as a markdownlint config map:
// a "default" key plus one key per configured rule, whose value is false,
// true, or an options object.
func (c *Config) ToMarkdownlint() map[string]any {
	out := map[string]any{"default": c.DefaultEnabled()}

	for id, rc := range c.Rules {
		enabled := rc.IsEnabled(c.DefaultEnabled())
		switch {
		case !enabled:
			out[id] = false
		case len(rc.Options) > 0:
			out[id] = maps.Clone(rc.Options)
		default:
			out[id] = true
		}
	}

	return out
}

// MarshalMarkdownlint renders ToMarkdownlint as YAML, or as JSON when asJSON
// is set.
func (c *Config) MarshalMarkdownlint(asJSON bool) ([]byte, error) {
	doc := c.ToMarkdownlint()

	if asJSON {
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode markdownlint json: %w", err)
		}
		return append(data, '\n'), nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(YAMLIndent)
	if err := encoder.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode markdownlint yaml: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseMarkdownlint decodes a markdownlint config document into a generic
// map. JSON input may carry // and /* */ comments.
func ParseMarkdownlint(data []byte, isJSON bool) (map[string]any, error) {
	var raw map[string]any

	if isJSON {
		if err := parseJSONC(data, &raw); err != nil {
			return nil, fmt.Errorf("parse JSON: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	if raw == nil {
		raw = make(map[string]any)
	}
	return raw, nil
}

// parseJSONC parses JSON, retrying with comments stripped if the first
// attempt fails.
func parseJSONC(content []byte, target any) error {
	if err := json.Unmarshal(content, target); err == nil {
		return nil
	}

	stripped := stripJSONComments(content)
	if err := json.Unmarshal(stripped, target); err != nil {
		return fmt.Errorf("unmarshal stripped JSON: %w", err)
	}
	return nil
}

// stripJSONComments removes JavaScript-style comments outside of strings.
func stripJSONComments(content []byte) []byte {
	result := make([]byte, 0, len(content))
	inString := false
	inLine := false
	inBlock := false

	for idx := 0; idx < len(content); idx++ {
		char := content[idx]

		switch {
		case inLine:
			if char == '\n' {
				inLine = false
				result = append(result, char)
			}
		case inBlock:
			if char == '*' && idx+1 < len(content) && content[idx+1] == '/' {
				inBlock = false
				idx++
			}
		case inString:
			result = append(result, char)
			if char == '\\' && idx+1 < len(content) {
				idx++
				result = append(result, content[idx])
			} else if char == '"' {
				inString = false
			}
		case char == '"':
			inString = true
			result = append(result, char)
		case char == '/' && idx+1 < len(content) && content[idx+1] == '/':
			inLine = true
			idx++
		case char == '/' && idx+1 < len(content) && content[idx+1] == '*':
			inBlock = true
			idx++
		default:
			result = append(result, char)
		}
	}

	return result
}
