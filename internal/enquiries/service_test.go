package enquiries

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianfx/enquiries-api/internal/phone"
	"github.com/meridianfx/enquiries-api/pkg/logging"
)

type failingAppender struct {
	err   error
	calls int
}

func (f *failingAppender) Append(ctx context.Context, collection string, e *Enquiry) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	e.ID = "stub-id"
	return e.ID, nil
}

type recordingTriage struct {
	mu   sync.Mutex
	got  []*Enquiry
	err  error
	done chan struct{}
}

func (r *recordingTriage) Publish(ctx context.Context, e *Enquiry) error {
	r.mu.Lock()
	r.got = append(r.got, e)
	r.mu.Unlock()
	if r.done != nil {
		close(r.done)
	}
	return r.err
}

func validRequest() *SubmitRequest {
	return &SubmitRequest{
		Name:    "Alice Example",
		Email:   "alice@example.com",
		Message: "Looking to hedge AUD/USD",
		Phone:   phone.New("61", "412 345 678"),
	}
}

func TestSubmitPersistsEnquiry(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(store, "enquiries", ServiceDeps{}, logging.Default())

	e, err := svc.Submit(context.Background(), validRequest())
	require.NoError(t, err)
	require.NotEmpty(t, e.ID)

	assert.Equal(t, "Australia", e.Country)
	assert.Equal(t, "+61412345678", e.Phone)
	assert.False(t, e.Resolved)
	assert.NotEmpty(t, e.Date)

	list, err := store.List(context.Background(), "enquiries", ListFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestSubmitDerivesCountryOnlyWhenMissing(t *testing.T) {
	svc := NewService(NewMemoryStore(), "enquiries", ServiceDeps{}, logging.Default())

	req := validRequest()
	req.Country = "Narnia"
	e, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Narnia", e.Country)
}

func TestSubmitUnknownDialCodeFallsBack(t *testing.T) {
	svc := NewService(NewMemoryStore(), "enquiries", ServiceDeps{}, logging.Default())

	req := validRequest()
	req.Phone = phone.New("999", "123456")
	e, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Unknown (+999)", e.Country)
}

func TestSubmitValidation(t *testing.T) {
	svc := NewService(NewMemoryStore(), "enquiries", ServiceDeps{}, logging.Default())

	tests := []struct {
		name    string
		mutate  func(*SubmitRequest)
		wantErr error
	}{
		{"missing name", func(r *SubmitRequest) { r.Name = "  " }, ErrMissingName},
		{"missing email", func(r *SubmitRequest) { r.Email = "" }, ErrMissingEmail},
		{"missing number", func(r *SubmitRequest) { r.Phone = phone.New("61", "") }, ErrMissingPhone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			_, err := svc.Submit(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSubmitFailureSurfacesRawError(t *testing.T) {
	cause := errors.New("connection reset")
	appender := &failingAppender{err: &PersistenceError{Op: "append", Collection: "enquiries", Err: cause}}
	svc := NewService(appender, "enquiries", ServiceDeps{}, logging.Default())

	_, err := svc.Submit(context.Background(), validRequest())
	require.Error(t, err)
	assert.True(t, IsPersistenceError(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 1, appender.calls)
}

func TestSubmitRetryWritesIndependently(t *testing.T) {
	appender := &failingAppender{err: &PersistenceError{Op: "append", Collection: "enquiries", Err: errors.New("throttled")}}
	svc := NewService(appender, "enquiries", ServiceDeps{}, logging.Default())

	_, err := svc.Submit(context.Background(), validRequest())
	require.Error(t, err)

	appender.err = nil
	_, err = svc.Submit(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, 2, appender.calls, "each attempt is exactly one write")
}

func newServiceGuard(t *testing.T) *DedupeGuard {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewDedupeGuard(rdb, time.Minute, logging.Default())
}

func TestSubmitDuplicateWithinWindowRejected(t *testing.T) {
	svc := NewService(NewMemoryStore(), "enquiries", ServiceDeps{Dedupe: newServiceGuard(t)}, logging.Default())

	_, err := svc.Submit(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDuplicateSubmission)
}

func TestSubmitRetryAfterFailureNotTreatedAsDuplicate(t *testing.T) {
	appender := &failingAppender{err: &PersistenceError{Op: "append", Collection: "enquiries", Err: errors.New("throttled")}}
	svc := NewService(appender, "enquiries", ServiceDeps{Dedupe: newServiceGuard(t)}, logging.Default())

	_, err := svc.Submit(context.Background(), validRequest())
	require.Error(t, err)
	require.True(t, IsPersistenceError(err))

	// The store recovers; the identical manual retry must go through
	// and land as an independent document.
	appender.err = nil
	e, err := svc.Submit(context.Background(), validRequest())
	require.NoError(t, err, "manual retry after persistence failure must not be rejected")
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, 2, appender.calls)

	// The retry's own fingerprint now holds: a third identical submit
	// within the window is the real duplicate case.
	_, err = svc.Submit(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDuplicateSubmission)
}

func TestSubmitFansOutAfterPersist(t *testing.T) {
	tr := &recordingTriage{done: make(chan struct{})}
	svc := NewService(NewMemoryStore(), "enquiries", ServiceDeps{Triage: tr}, logging.Default())

	e, err := svc.Submit(context.Background(), validRequest())
	require.NoError(t, err)

	select {
	case <-tr.done:
	case <-time.After(2 * time.Second):
		t.Fatal("triage publish never happened")
	}
	tr.mu.Lock()
	defer tr.mu.Unlock()
	require.Len(t, tr.got, 1)
	assert.Equal(t, e.ID, tr.got[0].ID)
}

func TestSubmitTriageFailureDoesNotFailSubmission(t *testing.T) {
	tr := &recordingTriage{err: errors.New("queue unavailable"), done: make(chan struct{})}
	svc := NewService(NewMemoryStore(), "enquiries", ServiceDeps{Triage: tr}, logging.Default())

	_, err := svc.Submit(context.Background(), validRequest())
	require.NoError(t, err)

	select {
	case <-tr.done:
	case <-time.After(2 * time.Second):
		t.Fatal("triage publish never happened")
	}
}

func TestSubmitTrimsFields(t *testing.T) {
	svc := NewService(NewMemoryStore(), "enquiries", ServiceDeps{}, logging.Default())

	req := validRequest()
	req.Name = "  Alice Example  "
	req.Company = " Acme Pty Ltd "
	e, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Alice Example", e.Name)
	assert.Equal(t, "Acme Pty Ltd", e.Company)
}

func TestSubmitKeepsClientDate(t *testing.T) {
	svc := NewService(NewMemoryStore(), "enquiries", ServiceDeps{}, logging.Default())

	req := validRequest()
	req.Date = "2026-08-29T01:02:03Z"
	e, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-29T01:02:03Z", e.Date)
}
