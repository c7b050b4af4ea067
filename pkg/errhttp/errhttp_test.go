package errhttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	baledomain "github.com/ghuser/baleyard/services/bale/domain"
)

func TestWriteError_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"ErrWarehouseRequired", baledomain.ErrWarehouseRequired, http.StatusBadRequest},
		{"ErrBaleNotFound", baledomain.ErrBaleNotFound, http.StatusNotFound},
		{"ErrBaleAlreadyExists", baledomain.ErrBaleAlreadyExists, http.StatusConflict},
		{"ErrDragInProgress", baledomain.ErrDragInProgress, http.StatusConflict},
		{"ErrNotDragging", baledomain.ErrNotDragging, http.StatusConflict},
		{"ErrNotSelected", baledomain.ErrNotSelected, http.StatusConflict},
		{"ErrNoRotationInFlight", baledomain.ErrNoRotationInFlight, http.StatusConflict},
		{"ErrRotationBlocked", baledomain.ErrRotationBlocked, http.StatusConflict},
		{"ErrInvalidBale", baledomain.ErrInvalidBale, http.StatusUnprocessableEntity},
		{"ErrBaleDragging", baledomain.ErrBaleDragging, http.StatusLocked},
		{"ErrRotationInFlight", baledomain.ErrRotationInFlight, http.StatusLocked},
		{"ErrWarehouseUnavailable", baledomain.ErrWarehouseUnavailable, http.StatusServiceUnavailable},
		{"wrapped ErrBaleNotFound", fmt.Errorf("get bale: %w", baledomain.ErrBaleNotFound), http.StatusNotFound},
		{"wrapped ErrInvalidBale", fmt.Errorf("%w: bad orientation", baledomain.ErrInvalidBale), http.StatusUnprocessableEntity},
		{"unknown error", errors.New("something unexpected"), http.StatusInternalServerError},
		{"generic wrapped error", fmt.Errorf("context: %w", errors.New("db down")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestWriteError_JSONBody(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, baledomain.ErrBaleNotFound)

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body is not valid JSON: %v", err)
	}
	if body["error"] != baledomain.ErrBaleNotFound.Error() {
		t.Fatalf("unexpected error message %q", body["error"])
	}
}

func TestWriteError_HidesInternalErrors(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, errors.New("pq: password authentication failed"))

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body is not valid JSON: %v", err)
	}
	if body["error"] != "Internal Server Error" {
		t.Fatalf("internal error leaked: %q", body["error"])
	}
}

func TestWriteError_ContentType(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, baledomain.ErrBaleNotFound)

	ct := w.Header().Get("Content-Type")
	if ct == "" {
		t.Fatal("Content-Type header not set")
	}
}
