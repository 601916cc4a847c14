package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldFormat     = "format"
	FieldWorkingDir = "working_dir"

	// Configuration fields.
	FieldStyle  = "style"
	FieldSource = "source"
	FieldStrict = "strict"
	FieldRules  = "rules"
	FieldTags   = "tags"
	FieldJobs   = "jobs"

	// Resolution fields.
	FieldDirective = "directive"
	FieldRule      = "rule"
	FieldTag       = "tag"
	FieldOption    = "option"
	FieldPos       = "pos"
	FieldEnabled   = "enabled"
	FieldWarnings  = "warnings"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
