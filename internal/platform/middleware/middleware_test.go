package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func newContext(configure func(*http.Request)) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/fhir/Observation?subject=Patient/5", nil)
	if configure != nil {
		configure(req)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// ---------------------------------------------------------------------------
// RequestID
// ---------------------------------------------------------------------------

func TestRequestID_HonorsClientHeader(t *testing.T) {
	c, rec := newContext(func(req *http.Request) {
		req.Header.Set(RequestIDHeader, "client-rid")
	})

	handler := RequestID()(func(c echo.Context) error {
		if got := RequestIDFrom(c); got != "client-rid" {
			t.Errorf("RequestIDFrom = %q, want client-rid", got)
		}
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Header().Get(RequestIDHeader) != "client-rid" {
		t.Errorf("response header = %q, want client-rid echoed back", rec.Header().Get(RequestIDHeader))
	}
}

func TestRequestID_GeneratesWhenAbsent(t *testing.T) {
	c, rec := newContext(nil)

	handler := RequestID()(func(c echo.Context) error {
		if RequestIDFrom(c) == "" {
			t.Error("RequestIDFrom empty, want generated id")
		}
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("response header empty, want generated id")
	}
}

// ---------------------------------------------------------------------------
// Logger
// ---------------------------------------------------------------------------

func TestLogger_EmitsRequestLine(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	c, _ := newContext(nil)
	c.Set(requestIDKey, "rid-1")

	handler := Logger(logger)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler: %v", err)
	}

	line := buf.String()
	for _, want := range []string{`"request_id":"rid-1"`, `"path":"/fhir/Observation"`, `"query":"subject=Patient/5"`, `"status":200`} {
		if !strings.Contains(line, want) {
			t.Errorf("log line %s missing %s", line, want)
		}
	}
}

// ---------------------------------------------------------------------------
// Recovery
// ---------------------------------------------------------------------------

func TestRecovery_PanicYieldsOperationOutcome(t *testing.T) {
	c, rec := newContext(nil)

	handler := Recovery(zerolog.Nop())(func(c echo.Context) error {
		panic("boom")
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["resourceType"] != "OperationOutcome" {
		t.Errorf("resourceType = %v, want OperationOutcome", body["resourceType"])
	}
}
