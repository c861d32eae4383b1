package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNewError_KnownCode(t *testing.T) {
	err := NewError(ErrInvalidToken)

	if err.Code != ErrInvalidToken {
		t.Errorf("Code = %d, want %d", err.Code, ErrInvalidToken)
	}
	if err.Message != "Invalid or expired token" {
		t.Errorf("Message = %q, want %q", err.Message, "Invalid or expired token")
	}
	if err.Status != http.StatusUnauthorized {
		t.Errorf("Status = %d, want %d", err.Status, http.StatusUnauthorized)
	}
}

func TestNewError_UnknownCodeFallsBack(t *testing.T) {
	err := NewError(99999)

	if err.Code != ErrUnknown {
		t.Errorf("Code = %d, want %d", err.Code, ErrUnknown)
	}
}

func TestNewError_DefaultStatus(t *testing.T) {
	if err := NewError(ErrEmptyContent); err.Status != http.StatusBadRequest {
		t.Errorf("Status = %d, want %d", err.Status, http.StatusBadRequest)
	}
}

func TestNewError_ReturnsIndependentCopies(t *testing.T) {
	first := NewError(ErrInvalidParams)
	first.Message = "mutated"

	if second := NewError(ErrInvalidParams); second.Message == "mutated" {
		t.Error("NewError returned a shared catalog instance")
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(NewError(ErrNotAMember)); got != ErrNotAMember {
		t.Errorf("CodeOf(custom) = %d, want %d", got, ErrNotAMember)
	}

	wrapped := fmt.Errorf("store: %w", NewError(ErrMessageNotFound))
	if got := CodeOf(wrapped); got != ErrMessageNotFound {
		t.Errorf("CodeOf(wrapped) = %d, want %d", got, ErrMessageNotFound)
	}

	if got := CodeOf(errors.New("plain")); got != ErrUnknown {
		t.Errorf("CodeOf(plain) = %d, want %d", got, ErrUnknown)
	}
}

func TestAsCustom(t *testing.T) {
	original := NewError(ErrUserBanned)
	if got := AsCustom(original); got != original {
		t.Error("AsCustom should return the original *CustomError")
	}

	got := AsCustom(errors.New("database exploded"))
	if got.Code != ErrUnknown {
		t.Errorf("AsCustom(plain).Code = %d, want %d", got.Code, ErrUnknown)
	}
	if got.Status == 0 {
		t.Error("AsCustom(plain).Status must be set")
	}
}
