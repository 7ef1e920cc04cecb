package fhir

import (
	"errors"
	"fmt"
)

// NotFoundError is the adapter's single structured failure kind. Unknown id
// prefixes, non-numeric suffixes, and rows that do not exist for the caller
// all surface as this type so handlers can map them to a 404
// OperationOutcome uniformly.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s/%s not found", e.Resource, e.ID)
}

func NewNotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
