package assignment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/carelink/carelink/internal/platform/auth"
	"github.com/carelink/carelink/internal/platform/httperr"
)

func call(t *testing.T, h echo.HandlerFunc, accountID uuid.UUID, method, target, body string, params map[string]string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	req = req.WithContext(auth.WithAccountID(req.Context(), accountID))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	for k, v := range params {
		c.SetParamNames(k)
		c.SetParamValues(v)
	}
	return rec, h(c)
}

func TestHandler_Assign(t *testing.T) {
	f := newFixture()
	h := NewHandler(f.svc)
	alice := uuid.New()
	p := f.seedPatient(t, alice, "Bob")
	d := f.seedDoctor(t, alice, "Dr. Lee", "Cardiologist")

	body := fmt.Sprintf(`{"patient_id":%q,"doctor_id":%q}`, p.ID, d.ID)
	rec, err := call(t, h.Assign, alice, http.MethodPost, "/api/v1/mappings", body, nil)
	if err != nil {
		t.Fatalf("Assign() error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp struct {
		Message string     `json:"message"`
		Mapping Assignment `json:"mapping"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Message == "" {
		t.Error("expected a message in the response")
	}
	if resp.Mapping.PatientName != "Bob" || resp.Mapping.DoctorName != "Dr. Lee" {
		t.Errorf("denormalized fields wrong: %+v", resp.Mapping)
	}
}

func TestHandler_Assign_MissingIDs(t *testing.T) {
	f := newFixture()
	h := NewHandler(f.svc)

	_, err := call(t, h.Assign, uuid.New(), http.MethodPost, "/api/v1/mappings", `{}`, nil)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing ids, got %v", err)
	}
}

func TestHandler_Assign_Duplicate(t *testing.T) {
	f := newFixture()
	h := NewHandler(f.svc)
	alice := uuid.New()
	p := f.seedPatient(t, alice, "Bob")
	d := f.seedDoctor(t, alice, "Dr. Lee", "Cardiologist")

	body := fmt.Sprintf(`{"patient_id":%q,"doctor_id":%q}`, p.ID, d.ID)
	if _, err := call(t, h.Assign, alice, http.MethodPost, "/api/v1/mappings", body, nil); err != nil {
		t.Fatalf("first Assign() error: %v", err)
	}
	_, err := call(t, h.Assign, alice, http.MethodPost, "/api/v1/mappings", body, nil)
	if !errors.Is(err, httperr.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if httperr.StatusCode(err) != http.StatusBadRequest {
		t.Errorf("expected 400 mapping for conflicts, got %d", httperr.StatusCode(err))
	}
}

func TestHandler_ListForPatient(t *testing.T) {
	f := newFixture()
	h := NewHandler(f.svc)
	alice := uuid.New()
	p := f.seedPatient(t, alice, "Bob")
	d := f.seedDoctor(t, alice, "Dr. Lee", "Cardiologist")
	f.svc.Assign(context.Background(), alice, p.ID, d.ID)

	rec, err := call(t, h.ListForPatient, alice, http.MethodGet, "/api/v1/mappings/"+p.ID.String(), "",
		map[string]string{"patient_id": p.ID.String()})
	if err != nil {
		t.Fatalf("ListForPatient() error: %v", err)
	}

	var resp struct {
		Patient  string       `json:"patient"`
		Count    int          `json:"count"`
		Mappings []Assignment `json:"mappings"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Patient != "Bob" || resp.Count != 1 || len(resp.Mappings) != 1 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestHandler_ListForPatient_NoAssignments(t *testing.T) {
	f := newFixture()
	h := NewHandler(f.svc)
	alice := uuid.New()
	p := f.seedPatient(t, alice, "Bob")

	rec, err := call(t, h.ListForPatient, alice, http.MethodGet, "/api/v1/mappings/"+p.ID.String(), "",
		map[string]string{"patient_id": p.ID.String()})
	if err != nil {
		t.Fatalf("ListForPatient() error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"mappings":[]`) {
		t.Errorf("unlinked patient must serialize an empty array, got %s", rec.Body.String())
	}
}

func TestHandler_Unassign(t *testing.T) {
	f := newFixture()
	h := NewHandler(f.svc)
	alice := uuid.New()
	p := f.seedPatient(t, alice, "Bob")
	d := f.seedDoctor(t, alice, "Dr. Lee", "Cardiologist")
	a, err := f.svc.Assign(context.Background(), alice, p.ID, d.ID)
	if err != nil {
		t.Fatalf("Assign() error: %v", err)
	}

	rec, err := call(t, h.Unassign, alice, http.MethodDelete, "/api/v1/mappings/"+a.ID.String(), "",
		map[string]string{"id": a.ID.String()})
	if err != nil {
		t.Fatalf("Unassign() error: %v", err)
	}
	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["message"] != "doctor removed from patient successfully" {
		t.Errorf("unexpected message: %q", body["message"])
	}

	// Malformed ids read as not found.
	_, err = call(t, h.Unassign, alice, http.MethodDelete, "/api/v1/mappings/garbage", "",
		map[string]string{"id": "garbage"})
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusNotFound {
		t.Errorf("expected 404 for malformed id, got %v", err)
	}
}
