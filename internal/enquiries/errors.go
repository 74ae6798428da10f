package enquiries

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingName is returned when the name is empty
	ErrMissingName = errors.New("name is required")

	// ErrMissingEmail is returned when the email is empty
	ErrMissingEmail = errors.New("email is required")

	// ErrMissingPhone is returned when no phone number was entered
	ErrMissingPhone = errors.New("phone number is required")

	// ErrDuplicateSubmission is returned when an identical enquiry was
	// submitted within the dedupe window
	ErrDuplicateSubmission = errors.New("duplicate submission")

	// ErrEnquiryNotFound is returned when an enquiry id does not exist
	ErrEnquiryNotFound = errors.New("enquiry not found")

	errNilEnquiry = errors.New("enquiry cannot be nil")
)

// GenericFailureMessage is the only persistence-failure text ever shown
// to a prospect. The underlying cause goes to the log, never to the user.
const GenericFailureMessage = "Something went wrong sending your enquiry. Please try again."

// PersistenceError tags any failure at the document-store boundary. The
// pipeline does not interpret the cause; it maps every PersistenceError
// uniformly to GenericFailureMessage while operators get the wrapped
// cause from the logs.
type PersistenceError struct {
	Op         string
	Collection string
	Err        error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("enquiries: %s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsPersistenceError reports whether err is (or wraps) a store failure.
func IsPersistenceError(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
