package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/meridianfx/enquiries-api/internal/countries"
	"github.com/meridianfx/enquiries-api/internal/enquiries"
	"github.com/meridianfx/enquiries-api/pkg/logging"
)

func newTestRouter(t *testing.T, adminSecret string) http.Handler {
	t.Helper()

	logger := logging.Default()
	store := enquiries.NewMemoryStore()
	service := enquiries.NewService(store, "enquiries", enquiries.ServiceDeps{}, logger)

	cfg := &Config{
		Logger:           logger,
		EnquiriesHandler: enquiries.NewHandler(service, "61", logger),
		CountriesHandler: countries.NewHandler(logger),
		AdminHandler:     enquiries.NewAdminHandler(store, "enquiries", nil, logger),
		AdminAuthSecret:  adminSecret,
	}

	return New(cfg)
}

func TestRouterHealthEndpoint(t *testing.T) {
	router := newTestRouter(t, "")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode health response: %v", err)
	}

	if resp["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", resp["status"])
	}
}

func TestRouterSubmitEnquiry(t *testing.T) {
	router := newTestRouter(t, "")

	payload := map[string]string{
		"name":     "Router Test",
		"email":    "router@example.com",
		"message":  "Interested in FX forwards",
		"dialCode": "+64",
		"number":   "21 123 4567",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/enquiries", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rr.Code, rr.Body.String())
	}

	var created struct {
		ID      string `json:"id"`
		Country string `json:"country"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if created.ID == "" {
		t.Error("expected an enquiry id")
	}
	if created.Country != "New Zealand" {
		t.Errorf("expected resolved country New Zealand, got %q", created.Country)
	}
}

func TestRouterCountriesEndpoint(t *testing.T) {
	router := newTestRouter(t, "")

	req := httptest.NewRequest(http.MethodGet, "/countries?q=austra", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	var list []countries.Country
	if err := json.NewDecoder(rr.Body).Decode(&list); err != nil {
		t.Fatalf("failed to decode countries: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Australia" {
		t.Errorf("expected Australia, got %v", list)
	}
}

func TestRouterAdminRequiresToken(t *testing.T) {
	router := newTestRouter(t, "secret")

	req := httptest.NewRequest(http.MethodGet, "/admin/enquiries", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
}

func TestRouterAdminListWithToken(t *testing.T) {
	router := newTestRouter(t, "secret")

	claims := jwt.RegisteredClaims{
		Subject:   "sales-ops",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/enquiries", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rr.Code, rr.Body.String())
	}
}

func TestRouterAdminDisabledWithoutSecret(t *testing.T) {
	router := newTestRouter(t, "")

	req := httptest.NewRequest(http.MethodGet, "/admin/enquiries", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected admin routes unmounted, got %d", rr.Code)
	}
}
