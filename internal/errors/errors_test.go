package errors

import (
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", ValidationError("bad id"), http.StatusBadRequest},
		{"conflict maps to 400", Conflict("session already open"), http.StatusBadRequest},
		{"unauthorized", Unauthorized("missing token"), http.StatusUnauthorized},
		{"forbidden", Forbidden("not the owner"), http.StatusForbidden},
		{"not found", NotFound("contest"), http.StatusNotFound},
		{"database", DatabaseError("insert failed"), http.StatusInternalServerError},
		{"internal", InternalError("boom"), http.StatusInternalServerError},
		{"plain error", fmt.Errorf("plain"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.want {
				t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestWrapPreservesCode(t *testing.T) {
	err := Wrap(Conflict("already closed"), "clock-out failed")
	if GetCode(err) != CodeConflict {
		t.Errorf("expected code %s after wrap, got %s", CodeConflict, GetCode(err))
	}
	if HTTPStatus(err) != http.StatusBadRequest {
		t.Errorf("wrapped conflict should still map to 400, got %d", HTTPStatus(err))
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("wrapping nil should return nil")
	}
}
