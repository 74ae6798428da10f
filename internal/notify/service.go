package notify

import (
	"context"
	"fmt"

	"github.com/meridianfx/enquiries-api/internal/enquiries"
	"github.com/meridianfx/enquiries-api/pkg/logging"
)

// Service emails the sales inbox about new enquiries.
type Service struct {
	email  EmailSender
	inbox  string
	logger *logging.Logger
}

// NewService creates a notification service. A nil sender or empty
// inbox turns the service into a logging no-op.
func NewService(email EmailSender, inbox string, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{email: email, inbox: inbox, logger: logger}
}

var _ enquiries.Notifier = (*Service)(nil)

// NotifyNewEnquiry sends the sales inbox one email per enquiry.
func (s *Service) NotifyNewEnquiry(ctx context.Context, e *enquiries.Enquiry) error {
	if s.email == nil || s.inbox == "" {
		s.logger.Debug("notify: sales inbox not configured, skipping")
		return nil
	}

	company := e.Company
	if company == "" {
		company = "-"
	}

	subject := fmt.Sprintf("New enquiry - %s (%s)", e.Name, e.Country)
	body := fmt.Sprintf(`A new enquiry has come in from the website.

Name: %s
Email: %s
Phone: %s
Country: %s
Company: %s
Message: %s
Received: %s

Reference: %s`, e.Name, e.Email, e.Phone, e.Country, company, e.Message, e.Date, e.ID)

	msg := EmailMessage{
		To:      s.inbox,
		ToName:  "Sales",
		Subject: subject,
		Body:    body,
	}
	if err := s.email.Send(ctx, msg); err != nil {
		return fmt.Errorf("notify: new enquiry email: %w", err)
	}

	s.logger.Info("sales notified of enquiry", "id", e.ID)
	return nil
}
