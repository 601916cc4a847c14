package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/mdlstyle/pkg/catalog"
)

// newProject creates a temp directory marked as a VCS root so the upward
// search never leaves it.
func newProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir .git: %v", err)
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:       dir,
		IgnoreUserConfig: true,
		IgnoreEnv:        true,
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(newProject(t)))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.StylePath != "builtin:default" {
		t.Errorf("expected builtin:default, got %q", result.StylePath)
	}
	if result.Style == nil || len(result.Style.Directives) == 0 {
		t.Fatal("expected the default style to be loaded")
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("expected no settings files, got %v", result.LoadedFrom)
	}
}

func TestLoad_ProjectStyleFile(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeFile(t, filepath.Join(dir, ".mdl.rb"), "all\nexclude_rule 'MD013'\n")
	sub := filepath.Join(dir, "docs", "guide")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	result, err := Load(context.Background(), isolated(sub))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Paths.ProjectStyle != filepath.Join(dir, ".mdl.rb") {
		t.Errorf("unexpected project style %q", result.Paths.ProjectStyle)
	}
	if result.StylePath != filepath.Join(dir, ".mdl.rb") {
		t.Errorf("unexpected style path %q", result.StylePath)
	}

	set, err := result.Resolve(context.Background(), catalog.Default())
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if r, _ := set.Get("MD013"); r.Enabled {
		t.Error("expected MD013 to be disabled")
	}
}

func TestLoad_MdlrcStyleRelativeToFile(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeFile(t, filepath.Join(dir, "config", "docs.rb"), "rule 'MD001'\n")
	writeFile(t, filepath.Join(dir, ".mdlrc"), "style 'config/docs.rb'\nrules 'MD001,MD013'\nverbose true\nfrobnicate 1\n")

	sub := filepath.Join(dir, "nested")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	result, err := Load(context.Background(), isolated(sub))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.StylePath != filepath.Join(dir, "config", "docs.rb") {
		t.Errorf("style not resolved relative to .mdlrc: %q", result.StylePath)
	}
	if result.Settings.Rules != "MD001,MD013" {
		t.Errorf("unexpected rules filter %q", result.Settings.Rules)
	}
	if result.Settings.Extra["verbose"] != true {
		t.Errorf("expected verbose to be preserved, got %v", result.Settings.Extra)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], `unknown setting "frobnicate"`) {
		t.Errorf("unexpected warnings %v", result.Warnings)
	}
}

func TestLoad_Precedence(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeFile(t, filepath.Join(dir, ".mdl.rb"), "all\n")
	writeFile(t, filepath.Join(dir, ".mdlrc"), "style 'relaxed'\ntags 'headers'\n")
	explicit := filepath.Join(dir, "ci.mdlrc")
	writeFile(t, explicit, "style 'strict'\nstrict true\n")

	tests := []struct {
		name      string
		opts      func(LoadOptions) LoadOptions
		wantStyle string
		wantTags  string
	}{
		{
			name:      "project mdlrc beats project style file",
			opts:      func(o LoadOptions) LoadOptions { return o },
			wantStyle: "builtin:relaxed",
			wantTags:  "headers",
		},
		{
			name: "explicit beats project",
			opts: func(o LoadOptions) LoadOptions {
				o.ExplicitPath = explicit
				return o
			},
			wantStyle: "builtin:strict",
			wantTags:  "headers",
		},
		{
			name: "cli beats explicit",
			opts: func(o LoadOptions) LoadOptions {
				o.ExplicitPath = explicit
				o.CLI = &Settings{Style: "all", Tags: "~whitespace"}
				return o
			},
			wantStyle: "builtin:all",
			wantTags:  "~whitespace",
		},
		{
			name: "ignore project",
			opts: func(o LoadOptions) LoadOptions {
				o.IgnoreProjectConfig = true
				return o
			},
			wantStyle: "builtin:default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result, err := Load(context.Background(), tt.opts(isolated(dir)))
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if result.StylePath != tt.wantStyle {
				t.Errorf("style = %q, want %q", result.StylePath, tt.wantStyle)
			}
			if result.Settings.Tags != tt.wantTags {
				t.Errorf("tags = %q, want %q", result.Settings.Tags, tt.wantTags)
			}
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing style", func(t *testing.T) {
		t.Parallel()
		opts := isolated(newProject(t))
		opts.CLI = &Settings{Style: "nope.rb"}
		_, err := Load(context.Background(), opts)
		if !errors.Is(err, ErrStyleNotFound) {
			t.Fatalf("expected ErrStyleNotFound, got %v", err)
		}
	})

	t.Run("bad mdlrc value", func(t *testing.T) {
		t.Parallel()
		dir := newProject(t)
		writeFile(t, filepath.Join(dir, ".mdlrc"), "\nstrict 'yes'\n")
		_, err := Load(context.Background(), isolated(dir))

		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if verr.Line != 2 || verr.Field != "strict" {
			t.Errorf("unexpected error %+v", verr)
		}
	})

	t.Run("style syntax error", func(t *testing.T) {
		t.Parallel()
		dir := newProject(t)
		writeFile(t, filepath.Join(dir, ".mdl.rb"), "all\nrule 'MD013' :style\n")
		_, err := Load(context.Background(), isolated(dir))
		if err == nil || !strings.Contains(err.Error(), ".mdl.rb:2:") {
			t.Fatalf("expected positioned syntax error, got %v", err)
		}
	})
}

func TestLoad_MarkdownlintHint(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeFile(t, filepath.Join(dir, ".markdownlint.yaml"), "MD013: false\n")

	result, err := Load(context.Background(), isolated(dir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "mdlstyle convert") {
		t.Errorf("expected a convert hint, got %v", result.Warnings)
	}
}

func TestLoad_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolated(newProject(t)))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestFindProjectFiles_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	outer := t.TempDir()
	writeFile(t, filepath.Join(outer, ".mdlrc"), "style 'all'\n")
	repo := filepath.Join(outer, "repo")
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}

	settings, styleFile, err := FindProjectFiles(context.Background(), repo)
	if err != nil {
		t.Fatalf("FindProjectFiles() error = %v", err)
	}
	if settings != "" || styleFile != "" {
		t.Errorf("search escaped the repository: %q %q", settings, styleFile)
	}
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	strict := true
	got := MergeAll(
		&Settings{Style: "default", Rules: "MD001", Extra: map[string]any{"verbose": false}},
		&Settings{Style: "x.rb", StyleBase: "/repo", Extra: map[string]any{"json": true}},
		&Settings{Strict: &strict, Extra: map[string]any{"verbose": true}},
	)

	if got.Style != "x.rb" || got.StyleBase != "/repo" {
		t.Errorf("style = %q base %q", got.Style, got.StyleBase)
	}
	if got.Rules != "MD001" || !got.IsStrict() {
		t.Errorf("unexpected merge result %+v", got)
	}
	if got.Extra["verbose"] != true || got.Extra["json"] != true {
		t.Errorf("extra = %v", got.Extra)
	}
	if MergeAll() != nil {
		t.Error("MergeAll() of nothing should be nil")
	}
}
