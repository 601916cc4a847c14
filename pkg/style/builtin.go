package style

import (
	"embed"
	"path"
	"sort"
	"strings"
)

//go:embed builtin/*.rb
var builtinFS embed.FS

const builtinExt = ".rb"

// Builtin returns the named built-in style. Names are the file names under
// builtin/ without the extension, e.g. "default" or "relaxed".
func Builtin(name string) (*File, bool) {
	name = strings.TrimSuffix(strings.ToLower(name), builtinExt)
	content, err := builtinFS.ReadFile(path.Join("builtin", name+builtinExt))
	if err != nil {
		return nil, false
	}

	file, err := Parse("builtin:"+name, content)
	if err != nil {
		// Built-in styles are covered by tests; a parse failure here is a bug.
		panic("style: invalid built-in style " + name + ": " + err.Error())
	}
	return file, true
}

// BuiltinSource returns the raw source of a built-in style.
func BuiltinSource(name string) ([]byte, bool) {
	name = strings.TrimSuffix(strings.ToLower(name), builtinExt)
	content, err := builtinFS.ReadFile(path.Join("builtin", name+builtinExt))
	if err != nil {
		return nil, false
	}
	return content, true
}

// BuiltinNames lists the built-in style names in sorted order.
func BuiltinNames() []string {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), builtinExt) {
			names = append(names, strings.TrimSuffix(entry.Name(), builtinExt))
		}
	}
	sort.Strings(names)
	return names
}

// IsBuiltin reports whether name refers to a built-in style.
func IsBuiltin(name string) bool {
	_, ok := BuiltinSource(name)
	return ok
}
