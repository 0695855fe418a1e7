package authentication

import (
	"encoding/base64"
	"testing"
)

func TestBasicAuthValidate(t *testing.T) {
	svc := NewBasicAuthService(&BasicAuthTConfig{Username: "ops", Password: "secret"})

	if !svc.Enabled() {
		t.Fatalf("expected service to be enabled")
	}
	if !svc.Validate("ops", "secret") {
		t.Fatalf("expected valid credentials to pass")
	}
	if svc.Validate("ops", "wrong") {
		t.Fatalf("expected wrong password to fail")
	}
	if svc.Validate("", "") {
		t.Fatalf("expected empty credentials to fail")
	}
}

func TestBasicAuthDisabled(t *testing.T) {
	svc := NewBasicAuthService(nil)
	if svc.Enabled() {
		t.Fatalf("expected nil config to disable auth")
	}
	if svc.Validate("", "") {
		t.Fatalf("disabled service must not validate anything")
	}
}

func TestDecodeFromHeader(t *testing.T) {
	svc := NewBasicAuthService(&BasicAuthTConfig{})
	header := "Basic " + base64.StdEncoding.EncodeToString([]byte("ops:pa:ss"))

	u, p := svc.DecodeFromHeader(header)
	if u != "ops" || p != "pa:ss" {
		t.Fatalf("unexpected decode: %q %q", u, p)
	}

	u, p = svc.DecodeFromHeader("Basic !!!")
	if u != "" || p != "" {
		t.Fatalf("expected empty result for invalid base64, got %q %q", u, p)
	}
}
