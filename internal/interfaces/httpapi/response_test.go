package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/roadto100k/internal/domain/challenge"
	"github.com/riskibarqy/roadto100k/internal/usecase"
)

func TestWriteSuccess_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	if got, _ := errorObj["status"].(string); got != "INVALID_ARGUMENT" {
		t.Fatalf("expected error status INVALID_ARGUMENT, got %v", errorObj["status"])
	}
}

func TestWriteError_StoreFailureHidesCause(t *testing.T) {
	rec := httptest.NewRecorder()
	cause := crerr.Mark(crerr.Wrap(fmt.Errorf("dial tcp 10.0.0.5:5432: connection refused"), "list entries"), usecase.ErrStoreFailure)
	writeError(context.Background(), rec, cause)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	errorObj, _ := body["error"].(map[string]any)
	if got, _ := errorObj["message"].(string); got != "entry store is unavailable" {
		t.Fatalf("unexpected error message: %q", got)
	}
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		reason string
	}{
		{name: "out of window", err: fmt.Errorf("%w: 2024-12-31", challenge.ErrOutOfWindow), status: http.StatusUnprocessableEntity, reason: "outOfWindow"},
		{name: "future date", err: fmt.Errorf("%w: 2025-07-01", challenge.ErrFutureDate), status: http.StatusUnprocessableEntity, reason: "futureDate"},
		{name: "invalid input", err: fmt.Errorf("%w: amount must not be zero", usecase.ErrInvalidInput), status: http.StatusBadRequest, reason: "invalidInput"},
		{name: "participant not found", err: usecase.ErrParticipantNotFound, status: http.StatusNotFound, reason: "notFound"},
		{name: "unauthorized", err: fmt.Errorf("%w: expired", usecase.ErrUnauthorized), status: http.StatusUnauthorized, reason: "unauthorized"},
		{name: "store failure", err: crerr.Mark(fmt.Errorf("boom"), usecase.ErrStoreFailure), status: http.StatusServiceUnavailable, reason: "storeFailure"},
		{name: "dependency unavailable", err: fmt.Errorf("%w: auth", usecase.ErrDependencyUnavailable), status: http.StatusServiceUnavailable, reason: "dependencyUnavailable"},
		{name: "unknown", err: fmt.Errorf("boom"), status: http.StatusInternalServerError, reason: "internalError"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(context.Background(), tt.err)
			if got.HTTPStatus != tt.status || got.Reason != tt.reason {
				t.Fatalf("mapError(%v) = %d/%s, want %d/%s", tt.err, got.HTTPStatus, got.Reason, tt.status, tt.reason)
			}
		})
	}
}
