package model

import (
	"errors"
	"fmt"
)

// ValidationError 字段校验失败（写入前同步抛出）
type ValidationError struct {
	Field  string `json:"field,omitempty"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func newValidationError(field string, err error) *ValidationError {
	return &ValidationError{Field: field, Reason: err.Error()}
}

// IsValidationError reports whether err carries a *ValidationError anywhere in its chain.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// AsValidationError unwraps err into a *ValidationError.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

const reasonDuplicateAuthorName = "author with this name already exists"

// DuplicateAuthorNameError is returned for every way a duplicate author name is detected:
// the service pre-check, the pre-flush hook and the store's unique index.
func DuplicateAuthorNameError() *ValidationError {
	return &ValidationError{Field: "name", Reason: reasonDuplicateAuthorName}
}

// IsDuplicateAuthorName reports whether err is the duplicate author name rejection.
func IsDuplicateAuthorName(err error) bool {
	ve, ok := AsValidationError(err)
	return ok && ve.Field == "name" && ve.Reason == reasonDuplicateAuthorName
}
