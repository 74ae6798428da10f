// Package form implements the enquiry form controller: one live
// editing session per open modal, driving validation, submission and
// derived-field sync. The session reacts to the injected modal store,
// so any surface that flips the store gets identical form semantics.
package form

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/meridianfx/enquiries-api/internal/countries"
	"github.com/meridianfx/enquiries-api/internal/enquiries"
	"github.com/meridianfx/enquiries-api/internal/modal"
	"github.com/meridianfx/enquiries-api/internal/phone"
	"github.com/meridianfx/enquiries-api/pkg/logging"
)

// State is the lifecycle of one open form.
type State string

const (
	StateEditing    State = "editing"
	StateSubmitting State = "submitting"
	StateSubmitted  State = "submitted"
)

var (
	// ErrClosed is returned when an operation needs an open modal.
	ErrClosed = errors.New("form: modal is closed")

	// ErrSubmitInFlight is returned when a submit is attempted while
	// another is outstanding. The guard is an atomic check-and-set, not
	// the advisory disabled state of a submit button.
	ErrSubmitInFlight = errors.New("form: submit already in flight")

	// ErrMissingRequired blocks a submit with empty required fields.
	// It is a blocked action, not a displayed error: the session's
	// user-facing error message stays untouched.
	ErrMissingRequired = errors.New("form: required fields missing")

	// ErrAlreadySubmitted is returned when submitting from the
	// submitted state; the caller must Clear first.
	ErrAlreadySubmitted = errors.New("form: already submitted")
)

// Submitter is the pipeline a session submits through.
type Submitter interface {
	Submit(ctx context.Context, req *enquiries.SubmitRequest) (*enquiries.Enquiry, error)
}

// Session is the form controller. All methods are safe for concurrent
// use; the UI event loop is single-threaded but the persistence write
// completes on whatever goroutine carries it.
type Session struct {
	store       *modal.Store
	scroll      *modal.ScrollLock
	submitter   Submitter
	defaultDial string
	logger      *logging.Logger
	now         func() time.Time

	mu            sync.Mutex
	data          enquiries.FormData
	phone         phone.Value
	state         State
	errMsg        string
	generation    uint64
	releaseScroll func()

	inFlight atomic.Bool
}

// NewSession wires a controller to the given modal store. The store's
// closed-to-open edge seeds a fresh form; the open-to-closed edge
// discards it and releases the scroll lock, whichever path closed the
// modal.
func NewSession(store *modal.Store, scroll *modal.ScrollLock, submitter Submitter, defaultDial string, logger *logging.Logger) *Session {
	if store == nil {
		panic("form: modal store cannot be nil")
	}
	if submitter == nil {
		panic("form: submitter cannot be nil")
	}
	if scroll == nil {
		scroll = modal.NewScrollLock()
	}
	if defaultDial == "" {
		defaultDial = "61"
	}
	if logger == nil {
		logger = logging.Default()
	}

	s := &Session{
		store:       store,
		scroll:      scroll,
		submitter:   submitter,
		defaultDial: phone.Digits(defaultDial),
		logger:      logger,
		now:         time.Now,
		state:       StateEditing,
	}
	store.Subscribe(func(open bool) {
		if open {
			s.handleOpen()
		} else {
			s.handleClose()
		}
	})
	return s
}

// Open opens the modal, discarding any previous form state.
func (s *Session) Open() { s.store.Open() }

// Close discards the form and closes the modal. Unsaved edits are
// silently dropped; a write already in flight completes in the
// background (its outcome is logged and cannot resurrect the session).
func (s *Session) Close() { s.store.Close() }

// Clear re-seeds the form exactly like opening does: fresh date,
// default dial code, recomputed country, error and submitted flag
// cleared. Idempotent, no external side effects.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

func (s *Session) handleOpen() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
	s.releaseScroll = s.scroll.Acquire()
}

func (s *Session) handleClose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
	if s.releaseScroll != nil {
		s.releaseScroll()
		s.releaseScroll = nil
	}
}

// reset seeds fresh form state; callers hold s.mu. Bumping the
// generation orphans any in-flight submit so its completion cannot
// touch the new form.
func (s *Session) reset() {
	s.generation++
	s.phone = phone.Value{DialCode: s.defaultDial}
	s.data = enquiries.FormData{
		Country:  countries.ResolveCountry(s.defaultDial),
		Date:     s.now().UTC().Format(time.RFC3339),
		Resolved: false,
	}
	s.errMsg = ""
	s.state = StateEditing
}

// SetName updates the name field in place.
func (s *Session) SetName(v string) { s.setField(func(d *enquiries.FormData) { d.Name = v }) }

// SetEmail updates the email field in place.
func (s *Session) SetEmail(v string) { s.setField(func(d *enquiries.FormData) { d.Email = v }) }

// SetCompany updates the company field in place.
func (s *Session) SetCompany(v string) { s.setField(func(d *enquiries.FormData) { d.Company = v }) }

// SetMessage updates the message field in place.
func (s *Session) SetMessage(v string) { s.setField(func(d *enquiries.FormData) { d.Message = v }) }

// SetCountry overrides the derived country by hand. The next dial-code
// change recomputes it again.
func (s *Session) SetCountry(v string) { s.setField(func(d *enquiries.FormData) { d.Country = v }) }

func (s *Session) setField(apply func(*enquiries.FormData)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.editable() {
		return
	}
	apply(&s.data)
}

// SetNumber stores the subscriber number, stripping non-digits on every
// update.
func (s *Session) SetNumber(v string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.editable() {
		return
	}
	s.phone = s.phone.WithNumber(v)
}

// SetDialCode stores the dial code and recomputes the derived country.
// No other field changes.
func (s *Session) SetDialCode(v string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.editable() {
		return
	}
	s.phone = s.phone.WithDialCode(v)
	s.data.Country = countries.ResolveCountry(s.phone.DialCode)
}

func (s *Session) editable() bool {
	return s.store.IsOpen() && s.state == StateEditing
}

// Submit runs one submission attempt. Exactly one write, no retry: on
// success the form shows its submitted screen, on failure it returns to
// editing with every entered value intact and a generic error message
// (the cause is logged, never displayed).
func (s *Session) Submit(ctx context.Context) error {
	s.mu.Lock()
	if !s.store.IsOpen() {
		s.mu.Unlock()
		return ErrClosed
	}
	switch s.state {
	case StateSubmitting:
		s.mu.Unlock()
		return ErrSubmitInFlight
	case StateSubmitted:
		s.mu.Unlock()
		return ErrAlreadySubmitted
	}
	if strings.TrimSpace(s.data.Name) == "" || strings.TrimSpace(s.data.Email) == "" || s.phone.Empty() {
		s.mu.Unlock()
		return ErrMissingRequired
	}
	if !s.inFlight.CompareAndSwap(false, true) {
		s.mu.Unlock()
		return ErrSubmitInFlight
	}

	s.errMsg = ""
	s.state = StateSubmitting
	gen := s.generation
	req := &enquiries.SubmitRequest{
		Name:    s.data.Name,
		Email:   s.data.Email,
		Company: s.data.Company,
		Message: s.data.Message,
		Phone:   s.phone,
		Country: s.data.Country,
		// Stamped now, not at open: a form left sitting for an hour
		// submits with the time the prospect pressed send.
		Date: s.now().UTC().Format(time.RFC3339),
	}
	s.mu.Unlock()

	// Once issued the write is never aborted: closing the modal cancels
	// nothing, the document either lands or fails in the background.
	_, err := s.submitter.Submit(context.WithoutCancel(ctx), req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight.Store(false)

	if s.generation != gen {
		// The form was cleared or closed mid-flight; log the orphaned
		// outcome and leave the fresh state alone.
		if err != nil {
			s.logger.Error("enquiry submit failed after form closed", "error", err)
		} else {
			s.logger.Info("enquiry submitted after form closed")
		}
		return nil
	}

	if err != nil {
		s.logger.Error("enquiry submit failed", "error", err)
		s.state = StateEditing
		s.errMsg = enquiries.GenericFailureMessage
		return err
	}

	s.state = StateSubmitted
	return nil
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Submitted reports whether the form shows its success screen.
func (s *Session) Submitted() bool {
	return s.State() == StateSubmitted
}

// Data returns a copy of the editable form state.
func (s *Session) Data() enquiries.FormData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data
}

// Phone returns the current phone value.
func (s *Session) Phone() phone.Value {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phone
}

// ErrMessage returns the user-facing error text, empty when none.
func (s *Session) ErrMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}
