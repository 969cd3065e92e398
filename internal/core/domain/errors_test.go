package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestDomainErrorError(t *testing.T) {
	tests := []struct {
		name string
		err  *DomainError
		want string
	}{
		{
			name: "without details",
			err:  NewDomainError("TG-SESS-4040", "session not found"),
			want: "[TG-SESS-4040] session not found",
		},
		{
			name: "with details",
			err:  NewDomainError("TG-SESS-4040", "session not found").WithDetails("id=abc"),
			want: "[TG-SESS-4040] session not found: id=abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestDomainErrorIs(t *testing.T) {
	err := ErrTokenInvalid.WithDetails("signature mismatch")

	if !errors.Is(err, ErrTokenInvalid) {
		t.Error("errors.Is failed for same code")
	}
	if errors.Is(err, ErrTokenExpired) {
		t.Error("errors.Is matched a different code")
	}
	if errors.Is(err, errors.New("plain")) {
		t.Error("errors.Is matched a non-domain error")
	}
}

func TestDomainErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := ErrUpstreamUnavailable.WithCause(cause)

	if !errors.Is(err, cause) {
		t.Error("wrapped cause not found by errors.Is")
	}
	if errors.Unwrap(err) != cause {
		t.Error("Unwrap did not return the cause")
	}
}

func TestWithDetailsDoesNotMutate(t *testing.T) {
	base := ErrSessionNotFound
	derived := base.WithDetails("id=xyz")

	if base.Details != "" {
		t.Error("WithDetails mutated the base error")
	}
	if derived.Details != "id=xyz" {
		t.Errorf("derived Details = %q; want %q", derived.Details, "id=xyz")
	}
}

func TestIsDomainError(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", ErrBadRequest)

	if !IsDomainError(err, "TG-SYS-4000") {
		t.Error("IsDomainError failed to match wrapped domain error")
	}
	if !IsDomainError(err, "") {
		t.Error("IsDomainError with empty code failed")
	}
	if IsDomainError(err, "TG-SYS-5000") {
		t.Error("IsDomainError matched a different code")
	}
	if IsDomainError(errors.New("plain"), "") {
		t.Error("IsDomainError matched a non-domain error")
	}
}

func TestGetErrorCode(t *testing.T) {
	if got := GetErrorCode(ErrRateLimited); got != "TG-SYS-4290" {
		t.Errorf("GetErrorCode = %q; want TG-SYS-4290", got)
	}
	if got := GetErrorCode(errors.New("plain")); got != "" {
		t.Errorf("GetErrorCode for plain error = %q; want empty", got)
	}
}
