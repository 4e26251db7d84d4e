package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// SnapshotMissing indicates the snapshot file does not exist
	SnapshotMissing ErrorCode = "SNAPSHOT_MISSING"
	// SnapshotInvalid indicates the snapshot could not be decoded
	SnapshotInvalid ErrorCode = "SNAPSHOT_INVALID"
	// UnsupportedFormat indicates an unknown file extension or output format
	UnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"
	// IndexMissing indicates SCIP index not found
	IndexMissing ErrorCode = "INDEX_MISSING"
	// IndexInvalid indicates the SCIP index could not be parsed
	IndexInvalid ErrorCode = "INDEX_INVALID"
	// ConceptNotFound indicates the requested concept id is not in the graph
	ConceptNotFound ErrorCode = "CONCEPT_NOT_FOUND"
	// ExportFailed indicates writing the export database failed
	ExportFailed ErrorCode = "EXPORT_FAILED"
	// ConfigInvalid indicates the configuration failed validation
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixActionType represents the type of fix action
type FixActionType string

const (
	// RunCommand suggests running a command
	RunCommand FixActionType = "run-command"
	// OpenDocs suggests opening documentation
	OpenDocs FixActionType = "open-docs"
	// EditFile suggests editing a file by hand
	EditFile FixActionType = "edit-file"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Type        FixActionType `json:"type"`
	Command     string        `json:"command,omitempty"`
	Path        string        `json:"path,omitempty"`
	Safe        bool          `json:"safe,omitempty"`
	Description string        `json:"description,omitempty"`
	URL         string        `json:"url,omitempty"`
}

// Error is a repolens error with code, message and suggestions
type Error struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Details        interface{} `json:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error       // Underlying error (not exported to JSON)
}

// New creates an Error with the default fixes for its code
func New(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:           code,
		Message:        message,
		cause:          cause,
		SuggestedFixes: GetSuggestedFixes(code),
	}
}

// Newf creates an Error without a cause using a format string
func Newf(code ErrorCode, format string, args ...interface{}) *Error {
	return New(code, fmt.Sprintf(format, args...), nil)
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches another *Error with the same code
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// WithDetails adds details to the error
func (e *Error) WithDetails(details interface{}) *Error {
	e.Details = details
	return e
}

// WithFixes replaces the suggested fixes
func (e *Error) WithFixes(fixes ...FixAction) *Error {
	e.SuggestedFixes = fixes
	return e
}

// HasCode reports whether any error in err's chain is an *Error with code
func HasCode(err error, code ErrorCode) bool {
	var e *Error
	for err != nil {
		if stderrors.As(err, &e) {
			if e.Code == code {
				return true
			}
			err = e.cause
			continue
		}
		return false
	}
	return false
}

// CodeOf returns the code of the first *Error in err's chain, or
// InternalError when there is none
func CodeOf(err error) ErrorCode {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return InternalError
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	SnapshotMissing: {
		{
			Type:        RunCommand,
			Command:     "repolens impact --snapshot <file> <path>",
			Safe:        true,
			Description: "Pass an existing snapshot file with --snapshot",
		},
	},
	SnapshotInvalid: {
		{
			Type:        EditFile,
			Description: "Check the snapshot has name, tree, edges and contents fields",
		},
	},
	UnsupportedFormat: {
		{
			Type:        EditFile,
			Description: "Use a .json, .yaml, .yml or .toml snapshot, optionally ending in .gz or .zst",
		},
	},
	IndexMissing: {
		{
			Type:        RunCommand,
			Command:     "scip-typescript index",
			Safe:        true,
			Description: "Generate a SCIP index for the repository",
		},
	},
	IndexInvalid: {
		{
			Type:        RunCommand,
			Command:     "scip-typescript index",
			Safe:        true,
			Description: "Regenerate the SCIP index",
		},
	},
	ConceptNotFound: {
		{
			Type:        RunCommand,
			Command:     "repolens search <query>",
			Safe:        true,
			Description: "Search for the concept id",
		},
	},
	ConfigInvalid: {
		{
			Type:        EditFile,
			Path:        ".repolens/config.json",
			Description: "Fix the invalid configuration value",
		},
	},
}

// GetSuggestedFixes returns suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := ErrorActions[code]; ok {
		return fixes
	}
	return nil
}
