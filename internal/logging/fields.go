// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"

	// Configuration fields.
	FieldFlavor     = "flavor"
	FieldFormat     = "format"
	FieldWidth      = "width"
	FieldConfigFile = "config_file"
	FieldViaModel   = "via_model"

	// Document fields.
	FieldBytes  = "bytes"
	FieldBlocks = "blocks"
	FieldNodes  = "nodes"

	// Statistics fields.
	FieldFilesChecked    = "files_checked"
	FieldFilesMismatched = "files_mismatched"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
