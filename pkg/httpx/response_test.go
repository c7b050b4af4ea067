package httpx_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghuser/baleyard/pkg/httpx"
)

func TestJSON_setsHeaders(t *testing.T) {
	w := httptest.NewRecorder()
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("unexpected Content-Type: %q", ct)
	}
	if xct := w.Header().Get("X-Content-Type-Options"); xct != "nosniff" {
		t.Errorf("expected nosniff, got %q", xct)
	}
}

func TestJSON_encodesBody(t *testing.T) {
	w := httptest.NewRecorder()
	httpx.JSON(w, http.StatusCreated, map[string]string{"id": "abc"})

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if body["id"] != "abc" {
		t.Errorf("unexpected body: %v", body)
	}
	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	httpx.JSONError(w, http.StatusBadRequest, "something went wrong")

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if body["error"] != "something went wrong" {
		t.Errorf("unexpected error message: %q", body["error"])
	}
}

func TestJSON_unencodableValueIs500(t *testing.T) {
	w := httptest.NewRecorder()
	httpx.JSON(w, http.StatusOK, map[string]any{"bad": make(chan int)})

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if body["error"] != "Internal Server Error" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestNoContent(t *testing.T) {
	w := httptest.NewRecorder()
	httpx.NoContent(w)

	if w.Code != http.StatusNoContent || w.Body.Len() != 0 {
		t.Fatalf("expected empty 204, got %d with %d bytes", w.Code, w.Body.Len())
	}
}

func TestAttachment(t *testing.T) {
	w := httptest.NewRecorder()
	err := httpx.Attachment(w, "text/csv", "layout-north.csv", func(out io.Writer) error {
		_, err := io.WriteString(out, "code,x,z\n")
		return err
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := w.Header().Get("Content-Disposition"); got != `attachment; filename=layout-north.csv` {
		t.Errorf("unexpected Content-Disposition: %q", got)
	}
	if got := w.Header().Get("Content-Length"); got != "9" {
		t.Errorf("unexpected Content-Length: %q", got)
	}
	if w.Body.String() != "code,x,z\n" {
		t.Errorf("unexpected body: %q", w.Body.String())
	}
}

func TestAttachment_renderErrorWritesNothing(t *testing.T) {
	w := httptest.NewRecorder()
	boom := errors.New("workbook failed")
	err := httpx.Attachment(w, "text/csv", "x.csv", func(io.Writer) error { return boom })

	if !errors.Is(err, boom) {
		t.Fatalf("expected render error, got %v", err)
	}
	if w.Header().Get("Content-Disposition") != "" || w.Body.Len() != 0 {
		t.Error("nothing must be written when rendering fails")
	}
}
