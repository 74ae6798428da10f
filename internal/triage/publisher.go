package triage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/meridianfx/enquiries-api/internal/enquiries"
	"github.com/meridianfx/enquiries-api/pkg/logging"
)

// payload is the message shape the sales triage consumers read.
type payload struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Country  string `json:"country"`
	Company  string `json:"company,omitempty"`
	Message  string `json:"message,omitempty"`
	Received string `json:"received"`
}

// Publisher serializes enquiries onto the triage queue.
type Publisher struct {
	queue  Queue
	logger *logging.Logger
}

// NewPublisher creates a publisher for the given queue.
func NewPublisher(queue Queue, logger *logging.Logger) *Publisher {
	if queue == nil {
		panic("triage: queue cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Publisher{queue: queue, logger: logger}
}

var _ enquiries.TriagePublisher = (*Publisher)(nil)

// Publish enqueues one enquiry for triage.
func (p *Publisher) Publish(ctx context.Context, e *enquiries.Enquiry) error {
	body, err := json.Marshal(payload{
		ID:       e.ID,
		Name:     e.Name,
		Email:    e.Email,
		Phone:    e.Phone,
		Country:  e.Country,
		Company:  e.Company,
		Message:  e.Message,
		Received: e.CreatedAt.Format(time.RFC3339Nano),
	})
	if err != nil {
		return fmt.Errorf("triage: failed to encode payload: %w", err)
	}

	if err := p.queue.Send(ctx, string(body)); err != nil {
		return err
	}
	p.logger.Info("enquiry queued for triage", "id", e.ID)
	return nil
}
