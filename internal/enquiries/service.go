package enquiries

import (
	"context"
	"strings"
	"time"

	"github.com/meridianfx/enquiries-api/internal/countries"
	"github.com/meridianfx/enquiries-api/internal/observability/metrics"
	"github.com/meridianfx/enquiries-api/pkg/logging"
)

const fanoutTimeout = 10 * time.Second

// TriagePublisher pushes an accepted enquiry onto the sales triage
// queue.
type TriagePublisher interface {
	Publish(ctx context.Context, e *Enquiry) error
}

// Notifier tells the sales inbox about a new enquiry.
type Notifier interface {
	NotifyNewEnquiry(ctx context.Context, e *Enquiry) error
}

// ServiceDeps are the optional collaborators around the store; any of
// them may be nil.
type ServiceDeps struct {
	Dedupe  *DedupeGuard
	Triage  TriagePublisher
	Notify  Notifier
	Metrics *metrics.SubmissionMetrics
}

// Service owns the submission pipeline: validate, derive the country,
// assemble the document, dedupe, persist once, then fan out. It is the
// single path every surface (public form endpoint, form sessions)
// submits through.
type Service struct {
	store      Appender
	collection string
	deps       ServiceDeps
	logger     *logging.Logger
	now        func() time.Time
}

// NewService creates the submission service writing to the named
// collection.
func NewService(store Appender, collection string, deps ServiceDeps, logger *logging.Logger) *Service {
	if store == nil {
		panic("enquiries: store cannot be nil")
	}
	if collection == "" {
		panic("enquiries: collection cannot be empty")
	}
	if logger == nil {
		logger = logging.Default()
	}
	svc := &Service{
		store:      store,
		collection: collection,
		deps:       deps,
		logger:     logger,
		now:        time.Now,
	}
	if deps.Dedupe != nil && deps.Metrics != nil {
		deps.Dedupe.OnDegrade(deps.Metrics.ObserveDedupeDegraded)
	}
	return svc
}

// Submit runs one submission attempt: exactly one write, no retry. A
// failed attempt surfaces as a PersistenceError; the caller resubmits
// manually if at all, and a resubmit after failure creates an
// independent document.
func (s *Service) Submit(ctx context.Context, req *SubmitRequest) (*Enquiry, error) {
	if err := req.Validate(); err != nil {
		s.deps.Metrics.ObserveSubmission("rejected")
		return nil, err
	}

	country := req.Country
	if country == "" {
		country = countries.ResolveCountry(req.Phone.DialCode)
	}
	if strings.HasPrefix(country, "Unknown (") {
		s.deps.Metrics.ObserveResolverMiss()
	}

	date := req.Date
	if date == "" {
		date = s.now().UTC().Format(time.RFC3339)
	}

	e := &Enquiry{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Company:  strings.TrimSpace(req.Company),
		Message:  strings.TrimSpace(req.Message),
		Country:  country,
		Phone:    req.Phone.String(),
		Date:     date,
		Resolved: false,
	}

	if s.deps.Dedupe != nil && !s.deps.Dedupe.Reserve(ctx, req) {
		s.logger.Info("duplicate enquiry suppressed", "email", e.Email)
		s.deps.Metrics.ObserveSubmission("duplicate")
		return nil, ErrDuplicateSubmission
	}

	start := s.now()
	id, err := s.store.Append(ctx, s.collection, e)
	s.deps.Metrics.ObserveSubmitLatency(s.now().Sub(start).Seconds())
	if err != nil {
		// The fingerprint guards a document that never landed; free it
		// so the prospect's manual retry is not bounced as a duplicate.
		if s.deps.Dedupe != nil {
			s.deps.Dedupe.Release(ctx, req)
		}
		s.logger.Error("failed to persist enquiry", "error", err, "collection", s.collection)
		s.deps.Metrics.ObserveSubmission("failed")
		return nil, err
	}

	s.logger.Info("enquiry persisted", "id", id, "country", e.Country)
	s.deps.Metrics.ObserveSubmission("accepted")

	// The document is already owned by the store; triage and notify
	// failures must never fail the submission. Runs detached from the
	// request so a closed connection cannot abort it.
	if s.deps.Triage != nil || s.deps.Notify != nil {
		go s.fanout(e)
	}

	return e, nil
}

func (s *Service) fanout(e *Enquiry) {
	ctx, cancel := context.WithTimeout(context.Background(), fanoutTimeout)
	defer cancel()

	if s.deps.Triage != nil {
		if err := s.deps.Triage.Publish(ctx, e); err != nil {
			s.logger.Error("failed to enqueue enquiry for triage", "error", err, "id", e.ID)
			s.deps.Metrics.ObserveFanoutFailure("triage")
		}
	}
	if s.deps.Notify != nil {
		if err := s.deps.Notify.NotifyNewEnquiry(ctx, e); err != nil {
			s.logger.Error("failed to notify sales of enquiry", "error", err, "id", e.ID)
			s.deps.Metrics.ObserveFanoutFailure("notify")
		}
	}
}
