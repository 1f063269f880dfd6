package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "error without cause",
			err: &AppError{
				Code:    ErrCodeNotFound,
				Message: "post not found",
			},
			want: "post not found",
		},
		{
			name: "error with cause",
			err: &AppError{
				Code:    ErrCodeUpstream,
				Message: "list posts",
				Cause:   errors.New("connection refused"),
			},
			want: "list posts: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("AppError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(cause, ErrCodeUpstream, "wrapped error")

	if unwrapped := err.Unwrap(); !errors.Is(unwrapped, cause) {
		t.Errorf("AppError.Unwrap() = %v, want %v", unwrapped, cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should see through AppError")
	}
}

func TestWrap_NilError(t *testing.T) {
	if Wrap(nil, ErrCodeInternal, "x") != nil {
		t.Error("Wrap(nil) should return nil")
	}
	if Wrapf(nil, ErrCodeInternal, "x %d", 1) != nil {
		t.Error("Wrapf(nil) should return nil")
	}
}

func TestFromStatus(t *testing.T) {
	tests := []struct {
		status  int
		message string
		code    ErrorCode
		wantMsg string
	}{
		{http.StatusBadRequest, "Email already taken", ErrCodeValidation, "Email already taken"},
		{http.StatusUnauthorized, "", ErrCodeUnauthorized, GenericMessage},
		{http.StatusForbidden, "Admins only", ErrCodeForbidden, "Admins only"},
		{http.StatusNotFound, "Post not found", ErrCodeNotFound, "Post not found"},
		{http.StatusInternalServerError, "", ErrCodeUpstream, GenericMessage},
		{http.StatusGatewayTimeout, "", ErrCodeTimeout, GenericMessage},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d", tt.status), func(t *testing.T) {
			err := FromStatus(tt.status, tt.message)
			if err.Code != tt.code {
				t.Errorf("Code = %v, want %v", err.Code, tt.code)
			}
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Status != tt.status {
				t.Errorf("Status = %d, want %d", err.Status, tt.status)
			}
		})
	}
}

func TestPredicates(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NotFound("gone"))

	if !IsNotFound(wrapped) {
		t.Error("IsNotFound should match wrapped AppError")
	}
	if IsValidation(wrapped) {
		t.Error("IsValidation should not match NotFound")
	}
	if !IsValidation(ValidationField("title", "Title is required")) {
		t.Error("IsValidation should match validation error")
	}
	if !IsUnauthorized(Unauthorized("no token")) {
		t.Error("IsUnauthorized mismatch")
	}
	if !IsForbidden(Forbidden("admins only")) {
		t.Error("IsForbidden mismatch")
	}
	if !IsUpstream(FromStatus(http.StatusBadGateway, "")) {
		t.Error("IsUpstream mismatch")
	}
	if !IsInternal(Internal("boom")) {
		t.Error("IsInternal mismatch")
	}
	if GetCode(errors.New("plain")) != "" {
		t.Error("GetCode of plain error should be empty")
	}
	if got := GetField(ValidationField("name", "required")); got != "name" {
		t.Errorf("GetField = %q, want name", got)
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"app error hides cause", Wrap(errors.New("dial tcp 10.0.0.1"), ErrCodeUpstream, "Backend unavailable"), "Backend unavailable"},
		{"plain error", errors.New("boom"), GenericMessage},
		{"wrapped app error", fmt.Errorf("ctx: %w", Validation("Title is required")), "Title is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{NotFound("x"), http.StatusNotFound},
		{Validation("x"), http.StatusBadRequest},
		{Unauthorized("x"), http.StatusUnauthorized},
		{Forbidden("x"), http.StatusForbidden},
		{FromStatus(http.StatusInternalServerError, ""), http.StatusBadGateway},
		{errors.New("x"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := HTTPStatus(tt.err); got != tt.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
