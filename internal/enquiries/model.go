package enquiries

import (
	"strings"
	"time"

	"github.com/meridianfx/enquiries-api/internal/phone"
)

// FormData is the editable state of one open enquiry form. A fresh
// instance is created on every open or reset and discarded on close or
// successful submit; it never survives across opens.
type FormData struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Message string `json:"message"`

	// Country is derived from the phone dial code, not user-owned; it
	// is recomputed whenever the dial code changes.
	Country string `json:"country"`

	// Date is the ISO-8601 client-clock timestamp captured at
	// open/reset time, distinct from the server-assigned CreatedAt on
	// the persisted record.
	Date string `json:"date"`

	// Resolved is downstream triage state. The submitting client always
	// writes false and never mutates it.
	Resolved bool `json:"resolved"`
}

// Enquiry is the persisted submission document, one per submit. Once
// written the record belongs to the store; the submitting flow keeps no
// reference and performs no read-back.
type Enquiry struct {
	ID       string `json:"id" dynamodbav:"id"`
	Name     string `json:"name" dynamodbav:"name"`
	Email    string `json:"email" dynamodbav:"email"`
	Company  string `json:"company,omitempty" dynamodbav:"company,omitempty"`
	Message  string `json:"message,omitempty" dynamodbav:"message,omitempty"`
	Country  string `json:"country" dynamodbav:"country"`
	Phone    string `json:"phone" dynamodbav:"phone"`
	Date     string `json:"date" dynamodbav:"date"`
	Resolved bool   `json:"resolved" dynamodbav:"resolved"`

	// CreatedAt is assigned by the server at write time.
	CreatedAt time.Time `json:"createdAt" dynamodbav:"createdAt"`
}

// SubmitRequest carries one submission attempt into the pipeline.
type SubmitRequest struct {
	Name    string      `json:"name"`
	Email   string      `json:"email"`
	Company string      `json:"company"`
	Message string      `json:"message"`
	Phone   phone.Value `json:"phone"`

	// Country overrides the dial-code derivation when set; the form
	// keeps it in sync with the dial code but allows manual edits.
	Country string `json:"country"`

	// Date is the client-clock timestamp taken when the prospect
	// pressed send. Defaulted to the server clock when the client
	// omits it.
	Date string `json:"date"`
}

// Validate enforces the required-field presence the form marks with
// required attributes: name, email and a non-empty subscriber number.
// There is no format or length validation beyond presence.
func (r *SubmitRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrMissingName
	}
	if strings.TrimSpace(r.Email) == "" {
		return ErrMissingEmail
	}
	if r.Phone.Empty() {
		return ErrMissingPhone
	}
	return nil
}
