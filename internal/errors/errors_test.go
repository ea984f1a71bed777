package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestToHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{ErrMissingAttachment, http.StatusBadRequest},
		{ErrDuplicateLicense, http.StatusBadRequest},
		{ErrInvalidToken, http.StatusBadRequest},
		{ErrCodeExpiredOrUsed, http.StatusBadRequest},
		{ErrInvalidCredentials, http.StatusUnauthorized},
		{ErrMissingToken, http.StatusUnauthorized},
		{ErrCarDeleteDenied, http.StatusForbidden},
		{ErrUserNotFound, http.StatusNotFound},
		{ErrServiceUnavailable, http.StatusServiceUnavailable},
		{ErrInternal, http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
		{fmt.Errorf("wrapped: %w", ErrCarNotFound), http.StatusNotFound},
	}

	for _, tt := range tests {
		name := "nil"
		if tt.err != nil {
			name = tt.err.Error()
		}
		t.Run(name, func(t *testing.T) {
			if got := ToHTTPStatus(tt.err); got != tt.want {
				t.Errorf("ToHTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWrapError(t *testing.T) {
	cause := errors.New("connection reset")
	err := WrapError(ErrInternal, cause)

	if !errors.Is(err, ErrInternal) {
		t.Error("Expected wrapped error to match ErrInternal")
	}
	if !errors.Is(err, cause) {
		t.Error("Expected wrapped error to expose its cause")
	}
	if errors.Is(err, ErrInvalidInput) {
		t.Error("Did not expect a match with a different domain error")
	}
	if GetErrorMessage(err) != "Internal server error" {
		t.Errorf("Expected public message only, got %q", GetErrorMessage(err))
	}
}

func TestGetErrorMessage_HidesRawErrors(t *testing.T) {
	if got := GetErrorMessage(errors.New("pq: password authentication failed")); got != ErrInternal.Message {
		t.Errorf("GetErrorMessage() = %q", got)
	}
	if got := GetErrorMessage(ErrDuplicateEmail); got != "This email is already registered" {
		t.Errorf("GetErrorMessage() = %q", got)
	}
	if GetDomainError(errors.New("x")) != nil {
		t.Error("Expected nil domain error for plain error")
	}
}
