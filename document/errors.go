package document

import (
	"errors"
	"fmt"
)

var ErrMalformed = errors.New("malformed document")

// MalformedError describes a structural decode failure, preserving the
// offending raw fragment when one is available
type MalformedError struct {
	Reason   string
	Fragment string
}

func (e *MalformedError) Error() string {
	if e.Fragment == "" {
		return fmt.Sprintf("malformed document: %s", e.Reason)
	}

	return fmt.Sprintf("malformed document: %s (%q)", e.Reason, e.Fragment)
}

func (e *MalformedError) Unwrap() error {
	return ErrMalformed
}

func malformed(reason, fragment string) error {
	return &MalformedError{
		Reason:   reason,
		Fragment: fragment,
	}
}
