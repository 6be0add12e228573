package domain

import (
	"errors"
	"fmt"
)

// Error codes returned in failure envelopes
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeRepositoryNotFound = "REPOSITORY_NOT_FOUND"
	CodeBranchNotFound     = "BRANCH_NOT_FOUND"
	CodeUncommittedChanges = "UNCOMMITTED_CHANGES"
	CodeGitError           = "GIT_ERROR"
	CodeFeatureExists      = "FEATURE_EXISTS"
	CodeFeatureNotFound    = "FEATURE_NOT_FOUND"
	CodeDependencyCycle    = "DEPENDENCY_CYCLE"
)

// Error is the typed operation error surfaced to callers. Retryable marks
// transient failures (e.g. index.lock contention) the caller may reissue.
type Error struct {
	Code      string
	Message   string
	Retryable bool
	Err       error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// NewValidationError reports a missing required field. The field name
// appears verbatim in the message so callers can pattern-match on it.
func NewValidationError(field string) *Error {
	return &Error{
		Code:    CodeValidation,
		Message: fmt.Sprintf("%s is required", field),
	}
}

// NewRepositoryNotFoundError reports that a path does not resolve to a
// git repository
func NewRepositoryNotFoundError(path string) *Error {
	return &Error{
		Code:    CodeRepositoryNotFound,
		Message: fmt.Sprintf("no git repository found at %s", path),
	}
}

// NewBranchNotFoundError reports a missing local branch ref
func NewBranchNotFoundError(branch string) *Error {
	return &Error{
		Code:    CodeBranchNotFound,
		Message: fmt.Sprintf("branch %q does not exist", branch),
	}
}

// NewUncommittedChangesError reports a dirty working tree blocking a switch
func NewUncommittedChangesError(branch string, changedFiles int) *Error {
	return &Error{
		Code: CodeUncommittedChanges,
		Message: fmt.Sprintf("branch %q has uncommitted changes (%d files); commit or discard them first",
			branch, changedFiles),
	}
}

// NewGitError wraps a failed git invocation, tagged with operation context
func NewGitError(message string, retryable bool, err error) *Error {
	return &Error{
		Code:      CodeGitError,
		Message:   message,
		Retryable: retryable,
		Err:       err,
	}
}

// CodeOf returns the error code of err, or CodeGitError when err carries
// no typed code
func CodeOf(err error) string {
	var opErr *Error
	if errors.As(err, &opErr) {
		return opErr.Code
	}
	return CodeGitError
}

// IsRetryable reports whether err is a transient failure worth reissuing
func IsRetryable(err error) bool {
	var opErr *Error
	return errors.As(err, &opErr) && opErr.Retryable
}
