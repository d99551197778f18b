package apierrors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body.Error
}

func TestWrite_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Write(rec, http.StatusNotFound, "Question not found")

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("content type = %q", ct)
	}
	if got := decodeError(t, rec); got != "Question not found" {
		t.Errorf("error = %q, want %q", got, "Question not found")
	}
}

func TestServerError_GenericMessage(t *testing.T) {
	errLog := NewErrorLogger(zap.NewNop())
	rec := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/ta/questions", nil)

	errLog.ServerError(rec, r, "list questions failed", errors.New("connection reset"))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	got := decodeError(t, rec)
	if got != "Server error" {
		t.Errorf("error = %q, want generic message", got)
	}
}

func TestBadRequest_UserMessage(t *testing.T) {
	errLog := NewErrorLogger(zap.NewNop())
	rec := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/ta/answer/abc", nil)

	errLog.BadRequest(rec, r, "parse body failed", errors.New("unexpected EOF"), "Answer text is required")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if got := decodeError(t, rec); got != "Answer text is required" {
		t.Errorf("error = %q", got)
	}
}
