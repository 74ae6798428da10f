package triage

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/meridianfx/enquiries-api/internal/enquiries"
	"github.com/meridianfx/enquiries-api/pkg/logging"
)

type fakeQueue struct {
	bodies []string
	err    error
}

func (f *fakeQueue) Send(ctx context.Context, body string) error {
	if f.err != nil {
		return f.err
	}
	f.bodies = append(f.bodies, body)
	return nil
}

func TestPublishEncodesEnquiry(t *testing.T) {
	q := &fakeQueue{}
	p := NewPublisher(q, logging.Default())

	e := &enquiries.Enquiry{
		ID:        "enq-42",
		Name:      "Alice Example",
		Email:     "alice@example.com",
		Phone:     "+61412345678",
		Country:   "Australia",
		Company:   "Acme Imports",
		Message:   "need a forward contract",
		CreatedAt: time.Date(2026, 8, 29, 3, 4, 5, 0, time.UTC),
	}

	if err := p.Publish(context.Background(), e); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(q.bodies) != 1 {
		t.Fatalf("expected one message, got %d", len(q.bodies))
	}

	var got map[string]any
	if err := json.Unmarshal([]byte(q.bodies[0]), &got); err != nil {
		t.Fatalf("message body is not JSON: %v", err)
	}
	if got["id"] != "enq-42" {
		t.Errorf("expected id enq-42, got %v", got["id"])
	}
	if got["phone"] != "+61412345678" {
		t.Errorf("expected assembled phone, got %v", got["phone"])
	}
	if got["country"] != "Australia" {
		t.Errorf("expected country, got %v", got["country"])
	}
	if got["received"] != "2026-08-29T03:04:05Z" {
		t.Errorf("unexpected received timestamp %v", got["received"])
	}
}

func TestPublishPropagatesQueueError(t *testing.T) {
	q := &fakeQueue{err: errors.New("sqs unavailable")}
	p := NewPublisher(q, logging.Default())

	err := p.Publish(context.Background(), &enquiries.Enquiry{ID: "enq-1"})
	if err == nil {
		t.Fatal("expected error")
	}
}
