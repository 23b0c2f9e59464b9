package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/matzehuels/graphsketch/pkg/errors"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.New(errors.ErrCodeInvalidInput, "x"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeProtocolMisuse, "x"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeNotFound, "x"), http.StatusNotFound},
		{errors.New(errors.ErrCodeRejectedEdit, "x"), http.StatusConflict},
		{errors.New(errors.ErrCodeInvalidGraph, "x"), http.StatusUnprocessableEntity},
		{fmt.Errorf("wrapped: %w", errors.New(errors.ErrCodeInvalidGraph, "x")), http.StatusUnprocessableEntity},
		{fmt.Errorf("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := Status(tt.err); got != tt.want {
			t.Errorf("Status(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	status := WriteError(rec, errors.Wrap(errors.ErrCodeInvalidGraph, fmt.Errorf("edge 0 head 9: unknown node"), "invalid graph"))

	if status != http.StatusUnprocessableEntity || rec.Code != status {
		t.Fatalf("status = %d/%d", status, rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	var body ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Code != errors.ErrCodeInvalidGraph {
		t.Errorf("code = %q", body.Code)
	}
	if body.Error != "invalid graph: edge 0 head 9: unknown node" {
		t.Errorf("error = %q", body.Error)
	}
}

func TestWriteErrorPlain(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, fmt.Errorf("boom"))

	var body ErrorResponse
	json.NewDecoder(rec.Body).Decode(&body)
	if body.Code != errors.ErrCodeInternal || body.Error != "boom" {
		t.Errorf("body = %+v", body)
	}
}
