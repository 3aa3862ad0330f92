package errors

import (
	"errors"
	"fmt"
	"os"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      *NotFoundError
		wantMsg  string
		wantBase error
	}{
		{
			name:     "with ID",
			err:      &NotFoundError{Resource: "act", ID: "6"},
			wantMsg:  "act not found: 6",
			wantBase: ErrNotFound,
		},
		{
			name:     "without ID",
			err:      &NotFoundError{Resource: "scene"},
			wantMsg:  "scene not found",
			wantBase: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.Unwrap(); !errors.Is(got, tt.wantBase) {
				t.Errorf("Unwrap() = %v, want %v", got, tt.wantBase)
			}
		})
	}

	t.Run("with underlying error", func(t *testing.T) {
		underlyingErr := fmt.Errorf("disk error")
		err := &NotFoundError{Resource: "document", ID: "lear.xml", Err: underlyingErr}
		if got := err.Unwrap(); got != underlyingErr {
			t.Errorf("Unwrap() = %v, want %v", got, underlyingErr)
		}
	})
}

func TestIOError(t *testing.T) {
	err := NewIO("read", "/plays/lear.xml", os.ErrNotExist)
	if got, want := err.Error(), "failed to read /plays/lear.xml: file does not exist"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("IOError should unwrap to os.ErrNotExist")
	}

	noPath := &IOError{Operation: "decompress", Err: fmt.Errorf("bad header")}
	if got, want := noPath.Error(), "failed to decompress: bad header"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestParseError(t *testing.T) {
	cause := fmt.Errorf("XML syntax error on line 3")
	err := NewParse("TEI", "lear.xml", cause)
	if got, want := err.Error(), "failed to parse TEI at lear.xml: XML syntax error on line 3"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, cause) {
		t.Error("ParseError should unwrap to its cause")
	}

	bare := &ParseError{Format: "location", Message: "unexpected token"}
	if got, want := bare.Error(), "failed to parse location: unexpected token"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(bare, ErrInvalidInput) {
		t.Error("ParseError without cause should unwrap to ErrInvalidInput")
	}
}

func TestUnsupportedError(t *testing.T) {
	err := NewUnsupported("compression", "zstd")
	if got, want := err.Error(), "unsupported compression: zstd"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrUnsupported) {
		t.Error("UnsupportedError should unwrap to ErrUnsupported")
	}
	if got := (&UnsupportedError{Feature: "gzip"}).Error(); got != "unsupported gzip" {
		t.Errorf("Error() = %q", got)
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "ctx") != nil {
		t.Error("Wrap(nil) should be nil")
	}
	if Wrapf(nil, "ctx %d", 1) != nil {
		t.Error("Wrapf(nil) should be nil")
	}

	base := NewNotFound("act", "9")
	wrapped := Wrapf(base, "rendering %s", "act view")
	if got, want := wrapped.Error(), "rendering act view: act not found: 9"; got != want {
		t.Errorf("Wrapf() = %q, want %q", got, want)
	}
	if !Is(wrapped, ErrNotFound) {
		t.Error("wrapped error should match ErrNotFound")
	}
	var nf *NotFoundError
	if !As(Wrap(base, "outer"), &nf) || nf.ID != "9" {
		t.Errorf("As() failed to recover NotFoundError, got %+v", nf)
	}
}
