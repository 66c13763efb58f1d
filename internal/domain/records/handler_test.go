package records

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/carelink/carelink/internal/platform/auth"
	"github.com/carelink/carelink/internal/platform/httperr"
)

func newTestHandler() *Handler {
	return NewHandler(newTestService())
}

// doJSON runs a handler against an authenticated request and returns the
// recorder plus the handler error.
func doJSON(t *testing.T, h echo.HandlerFunc, accountID uuid.UUID, method, target, body string, params map[string]string) (*httptest.ResponseRecorder, error) {
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

func TestHandler_CreatePatient(t *testing.T) {
	h := newTestHandler()
	alice := uuid.New()

	rec, err := doJSON(t, h.CreatePatient, alice, http.MethodPost, "/api/v1/patients",
		`{"name":"Bob","age":30,"gender":"M","contact":"555","address":"x"}`, nil)
	if err != nil {
		t.Fatalf("CreatePatient() error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var got map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if got["name"] != "Bob" {
		t.Errorf("expected name Bob, got %v", got["name"])
	}
	if got["id"] == nil || got["id"] == uuid.Nil.String() {
		t.Error("expected assigned id in response")
	}
	if _, leaked := got["account_id"]; leaked {
		t.Error("account_id must not appear in responses")
	}
}

func TestHandler_CreatePatient_InvalidGender(t *testing.T) {
	h := newTestHandler()

	_, err := doJSON(t, h.CreatePatient, uuid.New(), http.MethodPost, "/api/v1/patients",
		`{"name":"Bob","age":30,"gender":"male","contact":"555","address":"x"}`, nil)
	if !errors.Is(err, httperr.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if httperr.StatusCode(err) != http.StatusBadRequest {
		t.Errorf("expected 400 mapping, got %d", httperr.StatusCode(err))
	}
}

func TestHandler_GetPatient_Scenarios(t *testing.T) {
	h := newTestHandler()
	alice := uuid.New()
	carol := uuid.New()

	rec, err := doJSON(t, h.CreatePatient, alice, http.MethodPost, "/api/v1/patients",
		`{"name":"Bob","age":30,"gender":"M","contact":"555","address":"x"}`, nil)
	if err != nil {
		t.Fatalf("CreatePatient() error: %v", err)
	}
	var created Patient
	json.Unmarshal(rec.Body.Bytes(), &created)

	// Owner reads it back.
	rec, err = doJSON(t, h.GetPatient, alice, http.MethodGet, "/api/v1/patients/"+created.ID.String(), "",
		map[string]string{"id": created.ID.String()})
	if err != nil {
		t.Fatalf("GetPatient() error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	// A different account sees not found, not forbidden.
	_, err = doJSON(t, h.GetPatient, carol, http.MethodGet, "/api/v1/patients/"+created.ID.String(), "",
		map[string]string{"id": created.ID.String()})
	if !errors.Is(err, httperr.ErrNotFound) {
		t.Errorf("expected not found for foreign reader, got %v", err)
	}

	// Garbage ids read as not found too, no parse detail leaked.
	_, err = doJSON(t, h.GetPatient, alice, http.MethodGet, "/api/v1/patients/not-a-uuid", "",
		map[string]string{"id": "not-a-uuid"})
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusNotFound {
		t.Errorf("expected 404 for malformed id, got %v", err)
	}
}

func TestHandler_UpdatePatient_Partial(t *testing.T) {
	h := newTestHandler()
	alice := uuid.New()

	rec, err := doJSON(t, h.CreatePatient, alice, http.MethodPost, "/api/v1/patients",
		`{"name":"Bob","age":30,"gender":"M","contact":"555","address":"x"}`, nil)
	if err != nil {
		t.Fatalf("CreatePatient() error: %v", err)
	}
	var created Patient
	json.Unmarshal(rec.Body.Bytes(), &created)

	rec, err = doJSON(t, h.UpdatePatient, alice, http.MethodPut, "/api/v1/patients/"+created.ID.String(),
		`{"age":31}`, map[string]string{"id": created.ID.String()})
	if err != nil {
		t.Fatalf("UpdatePatient() error: %v", err)
	}
	var updated Patient
	json.Unmarshal(rec.Body.Bytes(), &updated)
	if updated.Age != 31 {
		t.Errorf("expected age 31, got %d", updated.Age)
	}
	if updated.Name != "Bob" || updated.Gender != GenderMale {
		t.Errorf("fields absent from the body changed: %+v", updated)
	}
}

func TestHandler_DeletePatient(t *testing.T) {
	h := newTestHandler()
	alice := uuid.New()

	rec, err := doJSON(t, h.CreatePatient, alice, http.MethodPost, "/api/v1/patients",
		`{"name":"Bob","age":30,"gender":"M","contact":"555","address":"x"}`, nil)
	if err != nil {
		t.Fatalf("CreatePatient() error: %v", err)
	}
	var created Patient
	json.Unmarshal(rec.Body.Bytes(), &created)

	rec, err = doJSON(t, h.DeletePatient, alice, http.MethodDelete, "/api/v1/patients/"+created.ID.String(), "",
		map[string]string{"id": created.ID.String()})
	if err != nil {
		t.Fatalf("DeletePatient() error: %v", err)
	}
	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["message"] != "patient deleted successfully" {
		t.Errorf("unexpected delete message: %q", body["message"])
	}

	_, err = doJSON(t, h.GetPatient, alice, http.MethodGet, "/api/v1/patients/"+created.ID.String(), "",
		map[string]string{"id": created.ID.String()})
	if !errors.Is(err, httperr.ErrNotFound) {
		t.Errorf("expected not found after delete, got %v", err)
	}
}

func TestHandler_ListPatients_Paginated(t *testing.T) {
	h := newTestHandler()
	alice := uuid.New()

	for i := 0; i < 3; i++ {
		if _, err := doJSON(t, h.CreatePatient, alice, http.MethodPost, "/api/v1/patients",
			`{"name":"Bob","age":30,"gender":"M","contact":"555","address":"x"}`, nil); err != nil {
			t.Fatalf("CreatePatient() error: %v", err)
		}
	}

	rec, err := doJSON(t, h.ListPatients, alice, http.MethodGet, "/api/v1/patients", "", nil)
	if err != nil {
		t.Fatalf("ListPatients() error: %v", err)
	}
	var resp struct {
		Data    []Patient `json:"data"`
		Total   int       `json:"total"`
		Limit   int       `json:"limit"`
		HasMore bool      `json:"has_more"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Total != 3 || len(resp.Data) != 3 {
		t.Errorf("expected 3 patients, got total=%d len=%d", resp.Total, len(resp.Data))
	}
	if resp.HasMore {
		t.Error("expected has_more=false")
	}
}

func TestHandler_ListPatients_Empty(t *testing.T) {
	h := newTestHandler()

	rec, err := doJSON(t, h.ListPatients, uuid.New(), http.MethodGet, "/api/v1/patients", "", nil)
	if err != nil {
		t.Fatalf("ListPatients() error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"data":[]`) {
		t.Errorf("empty listing must serialize an array, got %s", rec.Body.String())
	}
}

func TestHandler_CreateDoctor(t *testing.T) {
	h := newTestHandler()

	rec, err := doJSON(t, h.CreateDoctor, uuid.New(), http.MethodPost, "/api/v1/doctors",
		`{"name":"Dr. Lee","specialization":"Cardiologist","contact":"555","address":"y","experience":5}`, nil)
	if err != nil {
		t.Fatalf("CreateDoctor() error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var got Doctor
	json.Unmarshal(rec.Body.Bytes(), &got)
	if got.Specialization != "Cardiologist" {
		t.Errorf("expected Cardiologist, got %q", got.Specialization)
	}
}

func TestHandler_CreateDoctor_UnknownSpecialization(t *testing.T) {
	h := newTestHandler()

	_, err := doJSON(t, h.CreateDoctor, uuid.New(), http.MethodPost, "/api/v1/doctors",
		`{"name":"Dr. Lee","specialization":"Astrologist","contact":"555","address":"y","experience":5}`, nil)
	if !errors.Is(err, httperr.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestHandler_Unauthenticated(t *testing.T) {
	h := newTestHandler()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.ListPatients(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without account in context, got %v", err)
	}
}
