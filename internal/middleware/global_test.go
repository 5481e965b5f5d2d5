package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/contacts-service/internal/config"
	"github.com/deppfellow/contacts-service/internal/errs"
	"github.com/deppfellow/contacts-service/internal/repository"
	"github.com/deppfellow/contacts-service/internal/server"
	"github.com/labstack/echo/v4"
)

func newTestGlobal(t *testing.T) *GlobalMiddlewares {
	t.Helper()

	s, err := server.New(&config.Config{}, nil, nil)
	if err != nil {
		t.Fatalf("server.New: %v", err)
	}
	return NewGlobalMiddlewares(s)
}

func TestGlobalErrorHandler(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{
			name:   "repository not found",
			err:    repository.ErrContactNotFound,
			status: http.StatusNotFound,
			body:   "",
		},
		{
			name:   "echo route not found",
			err:    echo.ErrNotFound,
			status: http.StatusNotFound,
			body:   "",
		},
		{
			name:   "echo method not allowed",
			err:    echo.ErrMethodNotAllowed,
			status: http.StatusNotFound,
			body:   "",
		},
		{
			name: "field errors",
			err: errs.NewBadRequestError("Validation failed", true, nil, []errs.FieldError{
				{Field: "name", Message: "is required"},
			}),
			status: http.StatusBadRequest,
			body:   `[{"field":"name","message":"is required"}]`,
		},
		{
			name:   "conflict",
			err:    repository.ErrContactExists,
			status: http.StatusConflict,
			body:   `{"code":"CONTACT_ALREADY_EXISTS","message":"A contact with this identifier already exists","status":409,"override":false}`,
		},
		{
			name:   "unknown error is hidden",
			err:    errors.New("store exploded"),
			status: http.StatusInternalServerError,
			body:   `{"code":"INTERNAL_SERVER_ERROR","message":"Internal Server Error","status":500,"override":false}`,
		},
		{
			name:   "other echo error keeps its status",
			err:    echo.NewHTTPError(http.StatusRequestEntityTooLarge, "too big"),
			status: http.StatusRequestEntityTooLarge,
			body:   `{"code":"REQUEST_ENTITY_TOO_LARGE","message":"too big","status":413,"override":false}`,
		},
	}

	global := newTestGlobal(t)
	e := echo.New()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/contacts/1", nil), rec)

			global.GlobalErrorHandler(tt.err, c)

			if rec.Code != tt.status {
				t.Fatalf("status: got %d, want %d", rec.Code, tt.status)
			}
			if got := strings.TrimSpace(rec.Body.String()); got != tt.body {
				t.Fatalf("body: got %s, want %s", got, tt.body)
			}
			if StatusFromError(tt.err) != tt.status {
				t.Fatalf("StatusFromError: got %d, want %d", StatusFromError(tt.err), tt.status)
			}
		})
	}
}

func TestGlobalErrorHandlerSkipsCommittedResponses(t *testing.T) {
	global := newTestGlobal(t)

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	if err := c.String(http.StatusOK, "done"); err != nil {
		t.Fatal(err)
	}

	global.GlobalErrorHandler(errors.New("late"), c)

	if rec.Code != http.StatusOK || rec.Body.String() != "done" {
		t.Fatalf("committed response was rewritten: %d %q", rec.Code, rec.Body.String())
	}
}

func TestIntParam(t *testing.T) {
	tests := []struct {
		value string
		match bool
	}{
		{"1", true},
		{"0", true},
		{"-3", true},
		{"abc", false},
		{"1.5", false},
		{"", false},
		{"99999999999999999999999", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
			c.SetParamNames("id")
			c.SetParamValues(tt.value)

			called := false
			err := IntParam("id")(func(c echo.Context) error {
				called = true
				return nil
			})(c)

			if called != tt.match {
				t.Fatalf("handler called = %v, want %v", called, tt.match)
			}
			if !tt.match && StatusFromError(err) != http.StatusNotFound {
				t.Fatalf("got %v, want a 404", err)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	run := func(header string) (string, string) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set(RequestIDHeader, header)
		}
		rec := httptest.NewRecorder()
		c := echo.New().NewContext(req, rec)

		var seen string
		_ = RequestID()(func(c echo.Context) error {
			seen = GetRequestID(c)
			return nil
		})(c)
		return seen, rec.Header().Get(RequestIDHeader)
	}

	if seen, echoed := run("req-1"); seen != "req-1" || echoed != "req-1" {
		t.Fatalf("incoming id not reused: %q / %q", seen, echoed)
	}

	seen, echoed := run("")
	if seen == "" || seen != echoed {
		t.Fatalf("generated id not stored and echoed: %q / %q", seen, echoed)
	}

	if seen, _ := run(strings.Repeat("x", maxRequestIDLength+1)); len(seen) > maxRequestIDLength {
		t.Fatal("oversized incoming id was kept")
	}
}

func TestErrorResponsesAreJSON(t *testing.T) {
	global := newTestGlobal(t)

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodPost, "/contacts", nil), rec)
	global.GlobalErrorHandler(errs.NewTooManyRequestsError("Rate limit exceeded"), c)

	if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, echo.MIMEApplicationJSON) {
		t.Fatalf("Content-Type: got %q", ct)
	}
	var body errs.HTTPError
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != http.StatusTooManyRequests || body.Code != "TOO_MANY_REQUESTS" {
		t.Fatalf("got %+v", body)
	}
}

func TestRecoverTurnsPanicsInto500(t *testing.T) {
	global := newTestGlobal(t)

	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	err := global.Recover()(func(c echo.Context) error {
		panic("boom")
	})(c)

	if err == nil {
		t.Fatal("expected the panic to surface as an error")
	}
	if StatusFromError(err) != http.StatusInternalServerError {
		t.Fatalf("status: got %d, want 500", StatusFromError(err))
	}
}
