package endpoint

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestFirstOf(t *testing.T) {
	t.Run("first non-nil result wins", func(t *testing.T) {
		c := FirstOf(
			func(v any) *Error { return nil },
			func(v any) *Error { return NewError("second") },
			func(v any) *Error { return NewError("third") },
		)

		got := c("anything")
		if got == nil || got.Message != "second" {
			t.Errorf("got %v, want second", got)
		}
	})

	t.Run("all nil yields nil", func(t *testing.T) {
		c := FirstOf(
			func(v any) *Error { return nil },
			func(v any) *Error { return nil },
		)
		if got := c("anything"); got != nil {
			t.Errorf("got %v, want nil", got)
		}
	})

	t.Run("empty chain yields nil", func(t *testing.T) {
		if got := FirstOf()("anything"); got != nil {
			t.Errorf("got %v, want nil", got)
		}
	})
}

func TestWhen(t *testing.T) {
	c := When(
		func(v any) bool {
			err, ok := v.(error)
			return ok && errors.Is(err, fs.ErrNotExist)
		},
		func(v any) *Error {
			return NewError("missing file").WithCode("NOT_FOUND").WithStatus(404)
		},
	)

	t.Run("matching value builds", func(t *testing.T) {
		got := c(fs.ErrNotExist)
		if got == nil || got.Code != "NOT_FOUND" {
			t.Errorf("got %v", got)
		}
	})

	t.Run("non-matching value passes", func(t *testing.T) {
		if got := c(errors.New("other")); got != nil {
			t.Errorf("got %v, want nil", got)
		}
	})
}

type timeoutErr struct{ op string }

func (e *timeoutErr) Error() string { return e.op + " timed out" }

func TestAsError(t *testing.T) {
	c := AsError(func(err *timeoutErr) *Error {
		return NewError(err.Error()).WithCode("TIMEOUT").WithStatus(504)
	})

	t.Run("typed match builds from the value", func(t *testing.T) {
		got := c(&timeoutErr{op: "query"})
		if got == nil {
			t.Fatal("got nil")
		}
		if got.Code != "TIMEOUT" || got.Message != "query timed out" {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("wrapped match is unwrapped", func(t *testing.T) {
		wrapped := fmt.Errorf("load users: %w", &timeoutErr{op: "scan"})
		got := c(wrapped)
		if got == nil || got.Message != "scan timed out" {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("other types pass", func(t *testing.T) {
		if got := c(errors.New("plain")); got != nil {
			t.Errorf("got %v, want nil", got)
		}
		if got := c("not an error"); got != nil {
			t.Errorf("got %v, want nil", got)
		}
	})
}

func TestClassifierInsideNormalize(t *testing.T) {
	opts := ErrorOptions{
		Classifier: FirstOf(
			AsError(func(err *timeoutErr) *Error {
				return NewError(err.Error()).WithCode("TIMEOUT").WithStatus(504)
			}),
			When(
				func(v any) bool { err, ok := v.(error); return ok && errors.Is(err, fs.ErrPermission) },
				func(v any) *Error { return NewError("forbidden").WithStatus(403) },
			),
		),
	}

	got := Normalize(&timeoutErr{op: "fetch"}, opts)
	if got.Code != "TIMEOUT" || got.Status != 504 {
		t.Errorf("got %+v", got)
	}

	got = Normalize(fs.ErrPermission, opts)
	if got.Status != 403 {
		t.Errorf("got %+v", got)
	}

	// Unclaimed values continue down the built-in chain.
	got = Normalize(errors.New("plain"), opts)
	if got.Code != CodeInternal || got.Message != "plain" {
		t.Errorf("got %+v", got)
	}
}
