package enquiries

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Appender is the write contract the submission flow consumes: one
// document appended per submission, no reads, updates or deletes.
type Appender interface {
	Append(ctx context.Context, collection string, e *Enquiry) (string, error)
}

// ListFilter narrows the admin triage listing.
type ListFilter struct {
	Limit          int
	Offset         int
	UnresolvedOnly bool
}

// Store extends Appender with the operator-facing triage operations.
// The public submission flow never uses these.
type Store interface {
	Appender
	List(ctx context.Context, collection string, f ListFilter) ([]*Enquiry, error)
	MarkResolved(ctx context.Context, collection, id string) error
}

// MemoryStore keeps enquiries in memory, for tests and local
// development without a DynamoDB endpoint.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string][]*Enquiry
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string][]*Enquiry)}
}

var _ Store = (*MemoryStore)(nil)

// Append stores a copy of e, assigning the id and server timestamp.
func (s *MemoryStore) Append(ctx context.Context, collection string, e *Enquiry) (string, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	stored := *e
	s.mu.Lock()
	s.collections[collection] = append(s.collections[collection], &stored)
	s.mu.Unlock()

	return e.ID, nil
}

// List returns enquiries newest first.
func (s *MemoryStore) List(ctx context.Context, collection string, f ListFilter) ([]*Enquiry, error) {
	s.mu.RLock()
	var out []*Enquiry
	for _, e := range s.collections[collection] {
		if f.UnresolvedOnly && e.Resolved {
			continue
		}
		copied := *e
		out = append(out, &copied)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, f), nil
}

// MarkResolved flips the triage flag on one enquiry.
func (s *MemoryStore) MarkResolved(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.collections[collection] {
		if e.ID == id {
			e.Resolved = true
			return nil
		}
	}
	return ErrEnquiryNotFound
}

func paginate(in []*Enquiry, f ListFilter) []*Enquiry {
	if f.Offset > 0 {
		if f.Offset >= len(in) {
			return []*Enquiry{}
		}
		in = in[f.Offset:]
	}
	if f.Limit > 0 && f.Limit < len(in) {
		in = in[:f.Limit]
	}
	if in == nil {
		in = []*Enquiry{}
	}
	return in
}
