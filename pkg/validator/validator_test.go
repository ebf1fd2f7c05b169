package validator

import (
	"errors"
	"testing"
)

type sample struct {
	Email   string `json:"email" validate:"required,max=10"`
	Message string `json:"message,omitempty" validate:"min=2"`
}

func TestValidateStruct_Valid(t *testing.T) {
	if err := New().ValidateStruct(sample{Email: "a@b.co", Message: "hi"}); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestMessages_UseJSONNames(t *testing.T) {
	err := New().ValidateStruct(sample{Message: "x"})
	if err == nil {
		t.Fatal("expected validation error")
	}

	got := Messages(err)
	want := []string{"email is required", "message must be at least 2 characters"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %q, got %q", want[i], got[i])
		}
	}
}

func TestMessages_MaxLength(t *testing.T) {
	err := New().ValidateStruct(sample{Email: "someone@example.com", Message: "hi"})
	got := Messages(err)
	if len(got) != 1 || got[0] != "email must be at most 10 characters" {
		t.Errorf("unexpected messages %v", got)
	}
}

func TestMessages_PlainError(t *testing.T) {
	got := Messages(errors.New("boom"))
	if len(got) != 1 || got[0] != "boom" {
		t.Errorf("unexpected messages %v", got)
	}
}
