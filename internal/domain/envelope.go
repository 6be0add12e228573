package domain

import "errors"

// ErrorBody is the failure half of an operation envelope
type ErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable,omitempty"`
}

// Envelope is the uniform success/failure wrapper every operation surface
// returns. The CLI and the HTTP API emit byte-identical envelope shapes for
// the same outcome.
type Envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// OK wraps a successful operation payload
func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

// Fail wraps an operation error, preserving its code and retryability
func Fail(err error) Envelope {
	body := &ErrorBody{
		Code:    CodeGitError,
		Message: err.Error(),
	}
	var opErr *Error
	if errors.As(err, &opErr) {
		body.Code = opErr.Code
		body.Retryable = opErr.Retryable
	}
	return Envelope{Success: false, Error: body}
}
