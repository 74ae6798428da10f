package countries

import (
	"encoding/json"
	"net/http"

	"github.com/meridianfx/enquiries-api/pkg/logging"
)

// Handler serves the country reference data the phone widget renders.
type Handler struct {
	logger *logging.Logger
}

// NewHandler creates a countries handler.
func NewHandler(logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{logger: logger}
}

// List handles GET /countries?q= and returns the countries matching the
// optional search query, in display order.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	writeJSON(w, http.StatusOK, Search(q))
}

// Resolve handles GET /countries/resolve?dial= and maps a dial code to
// a display name. Known codes also carry the ISO labels downstream
// settlement systems key on.
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	dial := r.URL.Query().Get("dial")
	if dial == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "dial query parameter is required"})
		return
	}
	resp := map[string]string{
		"dial":    dial,
		"country": ResolveCountry(dial),
	}
	if c, ok := ByDial(dial); ok {
		resp["code"] = c.Code
		resp["alpha3"] = Alpha3(c.Code)
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
