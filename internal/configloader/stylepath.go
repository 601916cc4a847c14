package configloader

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/mdlstyle/pkg/fsutil"
	"github.com/yaklabco/mdlstyle/pkg/style"
)

// ErrStyleNotFound is returned when a style reference is neither a file nor
// a built-in style.
var ErrStyleNotFound = errors.New("style not found")

// builtinPrefix marks a resolved reference to an embedded style.
const builtinPrefix = "builtin:"

// ResolveStyleRef turns a style reference into a path or a built-in name.
// It tries, in order: ref as given (absolute, or relative to the working
// directory), ref relative to baseDir, then the built-in styles. Built-ins
// are returned as "builtin:<name>".
func ResolveStyleRef(ref, baseDir string) (string, error) {
	if ref == "" {
		ref = DefaultStyle
	}

	if fsutil.FileExists(ref) {
		return ref, nil
	}

	if baseDir != "" && !filepath.IsAbs(ref) {
		candidate := filepath.Join(baseDir, ref)
		if fsutil.FileExists(candidate) {
			return candidate, nil
		}
	}

	if style.IsBuiltin(ref) {
		return builtinPrefix + ref, nil
	}

	return "", fmt.Errorf("%w: %q is not a file or one of the built-in styles %v",
		ErrStyleNotFound, ref, style.BuiltinNames())
}

// LoadStyle resolves ref and parses the style it names.
func LoadStyle(ctx context.Context, ref, baseDir string) (*style.File, string, error) {
	resolved, err := ResolveStyleRef(ref, baseDir)
	if err != nil {
		return nil, "", err
	}

	if name, ok := cutBuiltin(resolved); ok {
		file, _ := style.Builtin(name)
		return file, resolved, nil
	}

	file, err := style.ParseFile(ctx, resolved)
	if err != nil {
		return nil, resolved, err
	}
	return file, resolved, nil
}

func cutBuiltin(resolved string) (string, bool) {
	return strings.CutPrefix(resolved, builtinPrefix)
}
