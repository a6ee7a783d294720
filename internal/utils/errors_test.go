package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppErrorUnwrapAndIsCode(t *testing.T) {
	cause := errors.New("row not found")
	err := E(CodeNotFound, "TagService.Attach", "tag not found", cause)

	if !IsCode(err, CodeNotFound) {
		t.Fatalf("IsCode(NOT_FOUND) = false")
	}
	if IsCode(err, CodeConflict) {
		t.Fatalf("IsCode matched the wrong code")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("wrapped cause not reachable via errors.Is")
	}

	wrapped := fmt.Errorf("handler: %w", err)
	if !IsCode(wrapped, CodeNotFound) {
		t.Fatalf("IsCode should see through outer wrapping")
	}
}

func TestIsCodeOnPlainError(t *testing.T) {
	if IsCode(errors.New("boom"), CodeInternal) {
		t.Fatalf("plain error matched a code")
	}
	if IsCode(nil, CodeInternal) {
		t.Fatalf("nil error matched a code")
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		code Code
		want int
	}{
		{CodeInvalidArgument, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeNotFound, http.StatusNotFound},
		{CodeConflict, http.StatusConflict},
		{CodeUnavailable, http.StatusBadGateway},
		{CodeTimeout, http.StatusGatewayTimeout},
		{CodeInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := HTTPStatus(E(tc.code, "op", "msg", nil)); got != tc.want {
			t.Fatalf("HTTPStatus(%s) = %d, want %d", tc.code, got, tc.want)
		}
	}

	if got := HTTPStatus(errors.New("boom")); got != http.StatusInternalServerError {
		t.Fatalf("plain error status = %d, want 500", got)
	}
	if got := HTTPStatus(ErrNotFound); got != http.StatusNotFound {
		t.Fatalf("bare sentinel status = %d, want 404", got)
	}
}

func TestAppErrorMessageFormat(t *testing.T) {
	err := E(CodeConflict, "TagService.Create", "a tag with that name already exists", ErrDuplicate)
	msg := err.Error()
	if msg == "" || msg == "error" {
		t.Fatalf("unhelpful message %q", msg)
	}
	var ae *AppError
	if !errors.As(err, &ae) || ae.Op != "TagService.Create" {
		t.Fatalf("operation name lost: %+v", ae)
	}
}
