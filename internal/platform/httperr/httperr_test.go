package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validationf("age must be positive"), http.StatusBadRequest},
		{Authenticationf("invalid credentials"), http.StatusUnauthorized},
		{NotFoundf("patient not found"), http.StatusNotFound},
		{Conflictf("already assigned"), http.StatusBadRequest},
		{errors.New("disk on fire"), http.StatusInternalServerError},
		{fmt.Errorf("assign: %w", NotFoundf("doctor not found")), http.StatusNotFound},
	}

	for _, tc := range cases {
		if got := StatusCode(tc.err); got != tc.want {
			t.Errorf("StatusCode(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestWrappedErrorsKeepClass(t *testing.T) {
	err := fmt.Errorf("update patient: %w", Validationf("gender must be one of M, F, O"))
	if !errors.Is(err, ErrValidation) {
		t.Error("wrapping should preserve the validation class")
	}
}

func renderError(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]string) {
	t.Helper()
	logger := zerolog.New(os.Stderr)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	ErrorHandler(logger)(err, c)

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	return rec, body
}

func TestErrorHandler_TaxonomyError(t *testing.T) {
	rec, body := renderError(t, NotFoundf("patient not found"))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if body["error"] != "not found: patient not found" {
		t.Errorf("unexpected message: %q", body["error"])
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	rec, body := renderError(t, echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header"))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if body["error"] != "missing authorization header" {
		t.Errorf("unexpected message: %q", body["error"])
	}
}

func TestErrorHandler_InternalErrorHidesDetail(t *testing.T) {
	rec, body := renderError(t, errors.New("pq: connection refused"))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	if body["error"] != "internal server error" {
		t.Errorf("internal detail leaked: %q", body["error"])
	}
}
