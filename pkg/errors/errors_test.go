package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name: "without underlying error",
			appErr: &AppError{
				Code:    CodeNotFound,
				Message: "resource not found",
			},
			expected: "NOT_FOUND: resource not found",
		},
		{
			name: "with underlying error",
			appErr: &AppError{
				Code:    CodeInternal,
				Message: "internal error",
				Err:     errors.New("store connection failed"),
			},
			expected: "INTERNAL_ERROR: internal error (caused by: store connection failed)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.appErr.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	appErr := Internal("wrapped", originalErr)

	unwrapped := errors.Unwrap(appErr)
	if unwrapped != originalErr {
		t.Errorf("Unwrap() should return original error")
	}
}

func TestAppError_WithDetails(t *testing.T) {
	err := InvalidInput("invalid request")
	details := map[string]any{
		"field": "phone",
		"error": "invalid format",
	}

	err = err.WithDetails(details)

	if err.Details["field"] != "phone" {
		t.Errorf("expected field 'phone', got %v", err.Details["field"])
	}
	if err.Details["error"] != "invalid format" {
		t.Errorf("expected error 'invalid format', got %v", err.Details["error"])
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
	}{
		{"invalid input", InvalidInput("invalid request"), CodeInvalidInput, http.StatusBadRequest},
		{"validation", Validation("validation failed", map[string]any{"field": "phone"}), CodeValidation, http.StatusBadRequest},
		{"not found", NotFound("Booking"), CodeNotFound, http.StatusNotFound},
		{"forbidden", Forbidden("access denied"), CodeForbidden, http.StatusForbidden},
		{"conflict", Conflict("slot already full"), CodeConflict, http.StatusConflict},
		{"rate limited", RateLimited("too many requests"), CodeRateLimited, http.StatusTooManyRequests},
		{"internal", Internal("internal error", errors.New("store error")), CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, tt.err.Code)
			}
			if tt.err.StatusCode() != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, tt.err.StatusCode())
			}
		})
	}
}

func TestNotFoundMessage(t *testing.T) {
	err := NotFound("Booking")
	if err.Message != "Booking not found" {
		t.Errorf("expected message 'Booking not found', got %s", err.Message)
	}
}

func TestAsAppError(t *testing.T) {
	appErr := NotFound("Booking")
	regularErr := errors.New("regular error")

	result := AsAppError(appErr)
	if result != appErr {
		t.Errorf("AsAppError() should return same AppError")
	}

	result = AsAppError(regularErr)
	if result.Code != CodeInternal {
		t.Errorf("AsAppError() should wrap regular error as internal error")
	}
	if result.Err != regularErr {
		t.Errorf("AsAppError() should wrap the original error")
	}
}
