package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError  = "error"
	FieldPath   = "path"
	FieldInput  = "input"
	FieldOutput = "output"
	FieldFormat = "format"

	// Source position fields.
	FieldOffset = "offset"
	FieldLine   = "line"
	FieldColumn = "column"
	FieldDepth  = "depth"

	// Diagnostic fields.
	FieldCode    = "code"
	FieldMessage = "message"

	// Statistics fields.
	FieldBytes       = "bytes"
	FieldBlocks      = "blocks"
	FieldDiagnostics = "diagnostics"

	// Configuration fields.
	FieldConfigPath = "config_path"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
