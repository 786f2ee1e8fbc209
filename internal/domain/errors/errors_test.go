package errors

import (
	stderrors "errors"
	"net/http"
	"testing"
)

func TestAppErrorMessage(t *testing.T) {
	e := NewAppError(http.StatusTeapot, "short and stout", nil)
	if e.Error() != "short and stout" {
		t.Fatalf("unexpected message: %s", e.Error())
	}

	wrapped := NewAppError(http.StatusTeapot, "outer", stderrors.New("inner"))
	if wrapped.Error() != "inner" {
		t.Fatalf("expected wrapped error text, got %s", wrapped.Error())
	}
}

func TestConstructors(t *testing.T) {
	cases := []struct {
		err      *AppError
		status   int
		sentinel error
	}{
		{NotFound("missing"), http.StatusNotFound, ErrNotFound},
		{BadRequest("bad"), http.StatusBadRequest, ErrInvalidInput},
		{Unauthorized("nope"), http.StatusUnauthorized, ErrUnauthorized},
		{Forbidden("denied"), http.StatusForbidden, ErrForbidden},
		{InternalError(stderrors.New("boom")), http.StatusInternalServerError, nil},
		{LedgerUnavailable(stderrors.New("dial tcp: refused")), http.StatusServiceUnavailable, ErrLedgerUnavailable},
	}

	for _, c := range cases {
		if c.err.Status != c.status {
			t.Fatalf("%s: status %d, want %d", c.err.Message, c.err.Status, c.status)
		}
		if c.sentinel != nil && !stderrors.Is(c.err, c.sentinel) {
			t.Fatalf("%s: expected sentinel %v in chain", c.err.Message, c.sentinel)
		}
	}
}
