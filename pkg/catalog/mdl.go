package catalog

// DefaultPunctuation is the trailing punctuation MD026 and MD036 look for.
const DefaultPunctuation = ".,;:!?"

// Default returns a new registry holding the mdl rule catalogue, with the
// mdl aliases as primary aliases and markdownlint's heading-* names as extras.
func Default() *Registry {
	reg := NewRegistry()
	for _, rule := range mdlRules() {
		reg.Register(rule)
	}
	for alias, id := range markdownlintAliases() {
		reg.RegisterAlias(alias, id)
	}
	return reg
}

func markdownlintAliases() map[string]string {
	return map[string]string{
		"heading-increment":      "MD001",
		"first-heading-h1":       "MD002",
		"heading-style":          "MD003",
		"blanks-around-headings": "MD022",
		"heading-start-left":     "MD023",
		"no-duplicate-heading":   "MD024",
		"single-title":           "MD025",
		"no-emphasis-as-heading": "MD036",
		"first-line-heading":     "MD041",
	}
}

func level(desc string) Param {
	return Param{Name: "level", Kind: KindInt, Default: 1, Description: desc}
}

func style(def string, allowed ...string) Param {
	return Param{Name: "style", Kind: KindString, Default: def, Allowed: allowed, Description: "Style to enforce"}
}

func flag(name string, def bool, desc string) Param {
	return Param{Name: name, Kind: KindBool, Default: def, Description: desc}
}

func number(name string, def int, desc string) Param {
	return Param{Name: name, Kind: KindInt, Default: def, Description: desc}
}

func punctuation() Param {
	return Param{
		Name: "punctuation", Kind: KindString, Default: DefaultPunctuation,
		Description: "Characters treated as trailing punctuation",
	}
}

func rule(id, alias, desc string, tags []string, params ...Param) *Rule {
	return &Rule{ID: id, Aliases: []string{alias}, Tags: tags, Description: desc, Params: params}
}

func tags(t ...string) []string { return t }

//nolint:funlen,maintidx // Flat catalogue table.
func mdlRules() []*Rule {
	return []*Rule{
		rule("MD001", "header-increment", "Header levels should only increment by one level at a time",
			tags("headers")),
		rule("MD002", "first-header-h1", "First header should be a top level header",
			tags("headers"), level("Required level of the first header")),
		rule("MD003", "header-style", "Header style",
			tags("headers"), style("consistent", "consistent", "atx", "atx_closed", "setext", "setext_with_atx")),
		rule("MD004", "ul-style", "Unordered list style",
			tags("bullet", "ul"), style("consistent", "consistent", "asterisk", "plus", "dash", "sublist")),
		rule("MD005", "list-indent", "Inconsistent indentation for list items at the same level",
			tags("bullet", "ul", "indentation")),
		rule("MD006", "ul-start-left", "Consider starting bulleted lists at the beginning of the line",
			tags("bullet", "ul", "indentation")),
		rule("MD007", "ul-indent", "Unordered list indentation",
			tags("bullet", "ul", "indentation"), number("indent", 3, "Spaces per nesting level")),
		rule("MD009", "no-trailing-spaces", "Trailing spaces",
			tags("whitespace"), number("br_spaces", 2, "Trailing spaces allowed as a hard break")),
		rule("MD010", "no-hard-tabs", "Hard tabs",
			tags("whitespace", "hard_tab"), flag("ignore_code_blocks", false, "Skip code blocks")),
		rule("MD011", "no-reversed-links", "Reversed link syntax",
			tags("links")),
		rule("MD012", "no-multiple-blanks", "Multiple consecutive blank lines",
			tags("whitespace", "blank_lines")),
		rule("MD013", "line-length", "Line length",
			tags("line_length"),
			number("line_length", 80, "Maximum line length"),
			flag("ignore_code_blocks", false, "Skip code blocks"),
			flag("code_blocks", true, "Check code blocks"),
			flag("tables", true, "Check tables")),
		rule("MD014", "commands-show-output", "Dollar signs used before commands without showing output",
			tags("code")),
		rule("MD018", "no-missing-space-atx", "No space after hash on atx style header",
			tags("headers", "atx", "spaces")),
		rule("MD019", "no-multiple-space-atx", "Multiple spaces after hash on atx style header",
			tags("headers", "atx", "spaces")),
		rule("MD020", "no-missing-space-closed-atx", "No space inside hashes on closed atx style header",
			tags("headers", "atx_closed", "spaces")),
		rule("MD021", "no-multiple-space-closed-atx", "Multiple spaces inside hashes on closed atx style header",
			tags("headers", "atx_closed", "spaces")),
		rule("MD022", "blanks-around-headers", "Headers should be surrounded by blank lines",
			tags("headers", "blank_lines")),
		rule("MD023", "header-start-left", "Headers must start at the beginning of the line",
			tags("headers", "spaces")),
		rule("MD024", "no-duplicate-header", "Multiple headers with the same content",
			tags("headers"), flag("allow_different_nesting", false, "Only flag duplicates among siblings")),
		rule("MD025", "single-h1", "Multiple top level headers in the same document",
			tags("headers"), level("Level treated as the document title")),
		rule("MD026", "no-trailing-punctuation", "Trailing punctuation in header",
			tags("headers"), punctuation()),
		rule("MD027", "no-multiple-space-blockquote", "Multiple spaces after blockquote symbol",
			tags("blockquote", "whitespace", "indentation")),
		rule("MD028", "no-blanks-blockquote", "Blank line inside blockquote",
			tags("blockquote", "whitespace")),
		rule("MD029", "ol-prefix", "Ordered list item prefix",
			tags("ol"), style("one", "one", "ordered", "zero")),
		rule("MD030", "list-marker-space", "Spaces after list markers",
			tags("ol", "ul", "whitespace"),
			number("ul_single", 1, "Spaces after a single-paragraph bullet"),
			number("ol_single", 1, "Spaces after a single-paragraph number"),
			number("ul_multi", 1, "Spaces after a multi-paragraph bullet"),
			number("ol_multi", 1, "Spaces after a multi-paragraph number")),
		rule("MD031", "blanks-around-fences", "Fenced code blocks should be surrounded by blank lines",
			tags("code", "blank_lines")),
		rule("MD032", "blanks-around-lists", "Lists should be surrounded by blank lines",
			tags("bullet", "ul", "ol", "blank_lines")),
		rule("MD033", "no-inline-html", "Inline HTML",
			tags("html"),
			Param{Name: "allowed_elements", Kind: KindList, Default: []string{}, Description: "Elements permitted inline"}),
		rule("MD034", "no-bare-urls", "Bare URL used",
			tags("links", "url")),
		rule("MD035", "hr-style", "Horizontal rule style",
			tags("hr"), style("consistent")),
		rule("MD036", "no-emphasis-as-header", "Emphasis used instead of a header",
			tags("headers", "emphasis"), punctuation()),
		rule("MD037", "no-space-in-emphasis", "Spaces inside emphasis markers",
			tags("whitespace", "emphasis")),
		rule("MD038", "no-space-in-code", "Spaces inside code span elements",
			tags("whitespace", "code")),
		rule("MD039", "no-space-in-links", "Spaces inside link text",
			tags("whitespace", "links")),
		rule("MD040", "fenced-code-language", "Fenced code blocks should have a language specified",
			tags("code", "language")),
		rule("MD041", "first-line-h1", "First line in file should be a top level header",
			tags("headers"), level("Required level of the first line")),
		rule("MD046", "code-block-style", "Code block style",
			tags("code"), style("fenced", "fenced", "indented", "consistent")),
		rule("MD047", "single-trailing-newline", "File should end with a single newline character",
			tags("blank_lines")),
	}
}
