package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/postmessages/board-api/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, errorResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid envelope: %v", err)
	}
	return rec.Code, resp
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		err     error
		code    int
		message string
	}{
		{domain.ErrInvalidMessage, http.StatusBadRequest, "data is not a valid message"},
		{domain.ErrMessageNotFound, http.StatusNotFound, "invalid message id"},
		{domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{domain.ErrUserNotFound, http.StatusNotFound, "invalid user"},
		{domain.ErrUserExists, http.StatusConflict, "user already exists"},
	}

	for _, tc := range cases {
		code, resp := renderError(t, tc.err)
		if code != tc.code {
			t.Errorf("%v: code = %d, want %d", tc.err, code, tc.code)
		}
		if !resp.Error || resp.ErrorMessage != tc.message {
			t.Errorf("%v: envelope = %+v", tc.err, resp)
		}
	}
}

func TestHTTPErrorHandler_StoreError(t *testing.T) {
	err := fmt.Errorf("%w: connection refused", domain.ErrStore)
	code, resp := renderError(t, err)

	if code != http.StatusNotFound {
		t.Errorf("code = %d, want 404", code)
	}
	if resp.ErrorMessage != "DB error: connection refused" {
		t.Errorf("message = %q", resp.ErrorMessage)
	}
}

func TestHTTPErrorHandler_EchoHTTPError(t *testing.T) {
	code, resp := renderError(t, echo.NewHTTPError(http.StatusBadRequest, "invalid payload"))
	if code != http.StatusBadRequest || resp.ErrorMessage != "invalid payload" {
		t.Errorf("got %d %+v", code, resp)
	}
}

func TestHTTPErrorHandler_UnknownError(t *testing.T) {
	code, resp := renderError(t, fmt.Errorf("boom"))
	if code != http.StatusInternalServerError {
		t.Errorf("code = %d, want 500", code)
	}
	if resp.ErrorMessage != "internal server error" {
		t.Errorf("internal details leaked: %q", resp.ErrorMessage)
	}
}
