package enquiries

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/meridianfx/enquiries-api/internal/phone"
	"github.com/meridianfx/enquiries-api/pkg/logging"
)

// Handler handles the public enquiry submission endpoint
type Handler struct {
	service     *Service
	defaultDial string
	logger      *logging.Logger
}

// NewHandler creates a new enquiries handler. defaultDial seeds the
// dial code when the client omits one, the same seed the form widget
// starts from.
func NewHandler(service *Service, defaultDial string, logger *logging.Logger) *Handler {
	if defaultDial == "" {
		defaultDial = "61"
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, defaultDial: defaultDial, logger: logger}
}

// submitPayload is the wire form posted by the marketing site. The
// dial code may arrive with or without its "+"; normalization happens
// exactly once, here.
type submitPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Company  string `json:"company"`
	Message  string `json:"message"`
	DialCode string `json:"dialCode"`
	Number   string `json:"number"`
	Country  string `json:"country"`
	Date     string `json:"date"`
}

type submitResponse struct {
	ID      string `json:"id"`
	Country string `json:"country"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// SubmitEnquiry handles POST /enquiries requests
func (h *Handler) SubmitEnquiry(w http.ResponseWriter, r *http.Request) {
	var payload submitPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.logger.Error("failed to decode enquiry request", "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	dial := payload.DialCode
	if strings.TrimSpace(dial) == "" {
		dial = h.defaultDial
	}

	req := &SubmitRequest{
		Name:    payload.Name,
		Email:   payload.Email,
		Company: payload.Company,
		Message: payload.Message,
		Phone:   phone.New(dial, payload.Number),
		Country: payload.Country,
		Date:    payload.Date,
	}

	e, err := h.service.Submit(r.Context(), req)
	if err != nil {
		h.writeSubmitError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, submitResponse{ID: e.ID, Country: e.Country})
}

// writeSubmitError maps pipeline errors onto the wire. Validation
// sentinels are safe to echo; anything from the store boundary is
// logged in full but surfaced only as the generic failure message.
func (h *Handler) writeSubmitError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrMissingName), errors.Is(err, ErrMissingEmail), errors.Is(err, ErrMissingPhone):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, ErrDuplicateSubmission):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "we already received this enquiry"})
	default:
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: GenericFailureMessage})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
