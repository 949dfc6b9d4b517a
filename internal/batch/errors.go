package batch

import (
	"errors"
	"fmt"
)

// BatchError represents an error that stops a batch run.
//
// Batch errors include:
//   - Input not a directory: the input path is missing or a regular file
//   - No structures: the folder holds no readable sequence file
//   - Parse failed: a sequence file could not be read (reported per file;
//     the runner skips such files instead of failing)
type BatchError struct {
	// Code identifies the error category.
	Code BatchErrorCode

	// Message is a human-readable description.
	Message string

	// File is the affected path, if any.
	File string

	// Err is the underlying cause, if any.
	Err error
}

// BatchErrorCode categorizes batch errors.
type BatchErrorCode string

const (
	// ErrCodeInputNotDir indicates the input path is not a folder.
	ErrCodeInputNotDir BatchErrorCode = "INPUT_NOT_DIR"

	// ErrCodeNoStructures indicates no file in the folder could be read.
	ErrCodeNoStructures BatchErrorCode = "NO_STRUCTURES"

	// ErrCodeParseFailed indicates a sequence file could not be parsed.
	ErrCodeParseFailed BatchErrorCode = "PARSE_FAILED"
)

// Error implements the error interface.
func (e *BatchError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.File != "" {
		msg = fmt.Sprintf("%s (file=%s)", msg, e.File)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *BatchError) Unwrap() error {
	return e.Err
}

// IsBatchError reports whether err is a BatchError with the given code.
// Uses errors.As to handle wrapped errors.
func IsBatchError(err error, code BatchErrorCode) bool {
	var be *BatchError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// NewInputNotDirError creates a BatchError for a non-folder input.
func NewInputNotDirError(path string, cause error) *BatchError {
	return &BatchError{
		Code:    ErrCodeInputNotDir,
		Message: "input is not a folder",
		File:    path,
		Err:     cause,
	}
}

// NewNoStructuresError creates a BatchError for a folder with nothing to compare.
func NewNoStructuresError(path string, skipped int) *BatchError {
	return &BatchError{
		Code:    ErrCodeNoStructures,
		Message: fmt.Sprintf("no readable structural sequence (%d files skipped)", skipped),
		File:    path,
	}
}

// NewParseError creates a BatchError for an unreadable sequence file.
func NewParseError(path string, cause error) *BatchError {
	return &BatchError{
		Code:    ErrCodeParseFailed,
		Message: "cannot read structural sequence",
		File:    path,
		Err:     cause,
	}
}
