package enquiries

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/meridianfx/enquiries-api/pkg/logging"
)

// Exporter snapshots the full collection somewhere durable and returns
// a reference to the snapshot.
type Exporter interface {
	Export(ctx context.Context, list []*Enquiry) (string, error)
	Enabled() bool
}

// AdminHandler exposes the sales-team triage endpoints. It sits behind
// the admin JWT middleware and talks to the full Store, not just the
// Appender the public flow uses.
type AdminHandler struct {
	store      Store
	collection string
	exporter   Exporter
	logger     *logging.Logger
}

// NewAdminHandler creates the admin triage handler. exporter may be nil
// when no export bucket is configured.
func NewAdminHandler(store Store, collection string, exporter Exporter, logger *logging.Logger) *AdminHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &AdminHandler{store: store, collection: collection, exporter: exporter, logger: logger}
}

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// List handles GET /admin/enquiries?limit=&offset=&unresolved=.
func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	f := ListFilter{Limit: defaultListLimit}
	q := r.URL.Query()
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be a positive integer"})
			return
		}
		f.Limit = min(n, maxListLimit)
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "offset must be a non-negative integer"})
			return
		}
		f.Offset = n
	}
	f.UnresolvedOnly = q.Get("unresolved") == "true"

	list, err := h.store.List(r.Context(), h.collection, f)
	if err != nil {
		h.logger.Error("failed to list enquiries", "error", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "failed to list enquiries"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"enquiries": list,
		"count":     len(list),
	})
}

// Resolve handles POST /admin/enquiries/{id}/resolve.
func (h *AdminHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "enquiry id is required"})
		return
	}

	err := h.store.MarkResolved(r.Context(), h.collection, id)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]any{"id": id, "resolved": true})
	case errors.Is(err, ErrEnquiryNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "enquiry not found"})
	default:
		h.logger.Error("failed to resolve enquiry", "id", id, "error", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "failed to resolve enquiry"})
	}
}

// Export handles POST /admin/enquiries/export: it snapshots the whole
// collection to the archive bucket and returns the object key.
func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	if h.exporter == nil || !h.exporter.Enabled() {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "export is not configured"})
		return
	}

	list, err := h.store.List(r.Context(), h.collection, ListFilter{})
	if err != nil {
		h.logger.Error("failed to list enquiries for export", "error", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "failed to list enquiries"})
		return
	}

	key, err := h.exporter.Export(r.Context(), list)
	if err != nil {
		h.logger.Error("export failed", "error", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "export failed"})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"key": key, "count": len(list)})
}
