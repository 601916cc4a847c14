package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdlstyle/pkg/catalog"
)

func TestRulesCommand_Flags(t *testing.T) {
	t.Parallel()

	cmd := newRulesCommand(&globalFlags{})
	assert.NotNil(t, cmd.Flags().Lookup("format"))
	assert.NotNil(t, cmd.Flags().Lookup("tag"))
}

func TestRunRules_JSON(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := runRules(&out, &globalFlags{color: "never", ruleFormat: "id"}, &rulesFlags{format: formatJSON})
	require.NoError(t, err)

	var infos []ruleInfo
	require.NoError(t, json.Unmarshal(out.Bytes(), &infos))
	assert.Len(t, infos, catalog.Default().Len())
	assert.Equal(t, "MD001", infos[0].ID)
}

func TestRunRules_TagFilter(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := runRules(&out, &globalFlags{color: "never", ruleFormat: "id"},
		&rulesFlags{format: formatJSON, tag: ":code"})
	require.NoError(t, err)

	var infos []ruleInfo
	require.NoError(t, json.Unmarshal(out.Bytes(), &infos))
	require.NotEmpty(t, infos)
	for _, info := range infos {
		assert.Contains(t, info.Tags, "code")
	}

	err = runRules(&out, &globalFlags{}, &rulesFlags{format: formatJSON, tag: "nope"})
	assert.Equal(t, ExitInvalidUsage, ExitCodeFromError(err))
}

func TestRunRules_Markdown(t *testing.T) {
	t.Parallel()

	md := string(rulesMarkdown(catalog.Default().Rules()))
	assert.True(t, strings.HasPrefix(md, "# Rules\n"))
	assert.Contains(t, md, "## MD007 - Unordered list indentation")
	assert.Contains(t, md, "| `indent` | int | `3` |")
	assert.Contains(t, md, "Example: `rule 'MD007', :indent => 3`")
}

func TestRunRules_HTML(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := runRules(&out, &globalFlags{}, &rulesFlags{format: formatHTML, tag: "ul"})
	require.NoError(t, err)

	html := out.String()
	assert.Contains(t, html, "<h1>Rules</h1>")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "<code>indent</code>")
}

func TestRunRules_Text(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := runRules(&out, &globalFlags{color: "never", ruleFormat: "combined"}, &rulesFlags{format: formatText})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "MD013/line-length")
	assert.Contains(t, out.String(), "line_length=80")
}

func TestRunRules_BadFormat(t *testing.T) {
	t.Parallel()

	err := runRules(&bytes.Buffer{}, &globalFlags{}, &rulesFlags{format: "xml"})
	assert.Equal(t, ExitInvalidUsage, ExitCodeFromError(err))
}
