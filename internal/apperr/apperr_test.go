package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{name: "not found", err: NotFound("product"), want: CodeNotFound},
		{name: "not found with field", err: NotFoundf("category", "id", 42), want: CodeNotFound},
		{name: "duplicate", err: Duplicate("category name already exists: Phones"), want: CodeDuplicate},
		{name: "invalid", err: Invalid("category cannot be its own parent"), want: CodeInvalid},
		{name: "unauthorized", err: Unauthorized("missing token"), want: CodeUnauthorized},
		{name: "forbidden", err: Forbidden("admin only"), want: CodeForbidden},
		{name: "wrapped still matches", err: fmt.Errorf("outer: %w", NotFound("shop")), want: CodeNotFound},
		{name: "plain error has no code", err: errors.New("boom"), want: ""},
		{name: "nil error has no code", err: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPredicates(t *testing.T) {
	if !IsNotFound(NotFound("x")) {
		t.Error("IsNotFound should match NotFound")
	}
	if !IsDuplicate(Duplicate("x")) {
		t.Error("IsDuplicate should match Duplicate")
	}
	if !IsInvalid(Invalid("x")) {
		t.Error("IsInvalid should match Invalid")
	}
	if IsNotFound(Invalid("x")) {
		t.Error("IsNotFound should not match Invalid")
	}
}

func TestNotFoundfMessage(t *testing.T) {
	err := NotFoundf("category", "slug", "phones")
	want := "category not found with slug: phones"
	if err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}
}
