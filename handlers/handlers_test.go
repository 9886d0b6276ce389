package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mufid-dev-alt/office-attendance-track-backend/models"
	"github.com/mufid-dev-alt/office-attendance-track-backend/store"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func seededStore(t *testing.T) *store.Memory {
	t.Helper()
	st := store.NewMemory()
	if _, _, err := st.Seed(); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return st
}

// newContext builds an echo context for direct handler invocation.
func newContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// actAs mimics what middlewares.RequireAuth attaches to the context.
func actAs(c echo.Context, id uint, role string) {
	c.Set("user_id", id)
	c.Set("role", role)
}

func adminOf(t *testing.T, st store.Store) *models.User {
	t.Helper()
	u, err := st.GetUserByEmail("admin@company.com")
	if err != nil {
		t.Fatalf("seeded admin missing: %v", err)
	}
	return u
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T: %v", err, err)
	}
	return he.Code
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}
