// Package errors provides structured error handling for installcheck.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 2XX: IO errors (snapshot files, work directory)
//   - 3XX: Runtime errors (PHP binary, snapshot collection)
//   - 4XX: Validation errors
//   - 5XX: Internal errors
//
// A failing requirement verdict is not an error; it is reported through
// ExitError so main can pick the exit code.
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryIO indicates file and directory errors.
	CategoryIO Category = "IO"
	// CategoryRuntime indicates the PHP runtime could not be probed.
	CategoryRuntime Category = "RUNTIME"
	// CategoryValidation indicates input validation errors.
	CategoryValidation Category = "VALIDATION"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityFatal indicates nothing could be evaluated.
	SeverityFatal Severity = "FATAL"
	// SeverityError indicates the operation failed.
	SeverityError Severity = "ERROR"
	// SeverityWarning indicates degraded operation, continuing.
	SeverityWarning Severity = "WARNING"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigNotFound = "ERR_101_CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  = "ERR_102_CONFIG_INVALID"
	ErrCodeConfigWrite    = "ERR_103_CONFIG_WRITE"

	// IO errors (200-299)
	ErrCodeFileNotFound   = "ERR_201_FILE_NOT_FOUND"
	ErrCodeFilePermission = "ERR_202_FILE_PERMISSION"
	ErrCodeWorkDirLocked  = "ERR_203_WORK_DIR_LOCKED"
	ErrCodeSnapshotWrite  = "ERR_204_SNAPSHOT_WRITE"

	// Runtime errors (300-399)
	ErrCodeRuntimeNotFound = "ERR_301_RUNTIME_NOT_FOUND"
	ErrCodeRuntimeExec     = "ERR_302_RUNTIME_EXEC"
	ErrCodeSnapshotDecode  = "ERR_303_SNAPSHOT_DECODE"
	ErrCodeRuntimeTimeout  = "ERR_304_RUNTIME_TIMEOUT"

	// Validation errors (400-499)
	ErrCodeInvalidInput     = "ERR_401_INVALID_INPUT"
	ErrCodeUnknownEvaluator = "ERR_402_UNKNOWN_EVALUATOR"
	ErrCodeInvalidVersion   = "ERR_403_INVALID_VERSION"

	// Internal errors (500-599)
	ErrCodeInternal = "ERR_501_INTERNAL"
)

// categoryFromCode extracts category from error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}

	// Extract numeric portion (e.g., "101" from "ERR_101_CONFIG_NOT_FOUND")
	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryIO
	case '3':
		return CategoryRuntime
	case '4':
		return CategoryValidation
	default:
		return CategoryInternal
	}
}

// severityFromCode determines severity based on error code.
func severityFromCode(code string) Severity {
	switch code {
	case ErrCodeRuntimeNotFound, ErrCodeRuntimeExec, ErrCodeSnapshotDecode, ErrCodeRuntimeTimeout:
		return SeverityFatal
	case ErrCodeWorkDirLocked:
		return SeverityWarning
	}
	return SeverityError
}
