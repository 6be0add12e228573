package services

import (
	"strings"

	"arbor/internal/domain"
)

// field is one named required argument of an operation
type field struct {
	name  string
	value string
}

// requireFields checks the operation's required arguments in declaration
// order and returns a VALIDATION_ERROR naming the first missing field. The
// field name appears verbatim in the message so callers can pattern-match
// on it. Runs before any side-effecting call.
func requireFields(fields ...field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return domain.NewValidationError(f.name)
		}
	}
	return nil
}
