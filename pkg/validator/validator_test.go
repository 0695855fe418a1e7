package validator

import (
	"errors"
	"testing"
)

type sample struct {
	Client string `validate:"required"`
	Check  string `validate:"required"`
}

func TestValidateStructAndTranslate(t *testing.T) {
	err := ValidateStruct(&sample{Client: "host1"})
	if err == nil {
		t.Fatalf("expected validation error")
	}

	errs := TranslateError(err)
	if _, ok := errs["Check"]; !ok {
		t.Fatalf("expected Check in translated errors, got %v", errs)
	}
	if _, ok := errs["Client"]; ok {
		t.Fatalf("did not expect Client in translated errors")
	}
}

func TestTranslateErrorPlainError(t *testing.T) {
	errs := TranslateError(errors.New("boom"))
	if errs["error"] != "boom" {
		t.Fatalf("expected plain error message, got %v", errs)
	}
	if len(TranslateError(nil)) != 0 {
		t.Fatalf("expected empty map for nil error")
	}
}
