package payfast

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
	"testing"
)

func signedForm() url.Values {
	return url.Values{
		"gateway_transaction_id": {"PF12345"},
		"payment_status":         {"COMPLETE"},
		"amount_gross":           {"350.00"},
		"doctor_id":              {"doc-1"},
		"patient_email":          {"pat@example.com"},
		"appointment_date":       {"2025-03-10"},
		"appointment_time":       {"09:00"},
	}
}

func TestParamStringOrderingAndEncoding(t *testing.T) {
	v, err := NewVerifier("secret 123", AlgoMD5)
	if err != nil {
		t.Fatalf("NewVerifier: %v", err)
	}

	form := url.Values{
		"b_field":   {"two words"},
		"a_field":   {"one"},
		"empty":     {""},
		"signature": {"deadbeef"},
	}

	got := v.paramString(form)
	want := "a_field=one&b_field=two+words&passphrase=secret+123"
	if got != want {
		t.Errorf("paramString = %q, want %q", got, want)
	}
}

func TestVerifyAcceptsValidSignature(t *testing.T) {
	v, err := NewVerifier("secret123", AlgoMD5)
	if err != nil {
		t.Fatalf("NewVerifier: %v", err)
	}

	form := signedForm()
	sig := v.Sign(form)

	// Hand-computed digest over the documented canonical string must agree.
	sum := md5.Sum([]byte(v.paramString(form)))
	if sig != hex.EncodeToString(sum[:]) {
		t.Fatalf("Sign disagrees with manual digest")
	}

	form.Set("signature", sig)
	if err := v.Verify(form, sig); err != nil {
		t.Errorf("Verify rejected a valid signature: %v", err)
	}

	// Case of the hex digest must not matter.
	if err := v.Verify(form, strings.ToUpper(sig)); err != nil {
		t.Errorf("Verify rejected an uppercase valid signature: %v", err)
	}
}

func TestVerifyRejectsTamperedField(t *testing.T) {
	v, _ := NewVerifier("secret123", AlgoMD5)

	form := signedForm()
	sig := v.Sign(form)
	form.Set("signature", sig)

	// Attacker bumps the amount after signing.
	form.Set("amount_gross", "9999.00")

	if err := v.Verify(form, sig); err == nil {
		t.Error("Verify accepted a tampered payload")
	}
}

func TestVerifyRejectsWrongSignature(t *testing.T) {
	v, _ := NewVerifier("secret123", AlgoMD5)

	form := signedForm()
	if err := v.Verify(form, "0123456789abcdef0123456789abcdef"); err == nil {
		t.Error("Verify accepted a bogus signature")
	}
	if err := v.Verify(form, ""); err == nil {
		t.Error("Verify accepted an empty signature")
	}
}

func TestVerifyFailsClosedWithoutPassphrase(t *testing.T) {
	unset, _ := NewVerifier("", AlgoMD5)

	form := signedForm()
	sig := unset.Sign(form)

	if err := unset.Verify(form, sig); err == nil {
		t.Error("Verify accepted a payload with no passphrase configured")
	}
}

func TestSignSHA256(t *testing.T) {
	v, err := NewVerifier("secret123", AlgoSHA256)
	if err != nil {
		t.Fatalf("NewVerifier: %v", err)
	}

	form := signedForm()
	sig := v.Sign(form)

	sum := sha256.Sum256([]byte(v.paramString(form)))
	if sig != hex.EncodeToString(sum[:]) {
		t.Errorf("sha256 Sign disagrees with manual digest")
	}

	if err := v.Verify(form, sig); err != nil {
		t.Errorf("Verify rejected a valid sha256 signature: %v", err)
	}
}

func TestNewVerifierRejectsUnknownAlgo(t *testing.T) {
	if _, err := NewVerifier("secret", "crc32"); err == nil {
		t.Error("NewVerifier accepted an unknown algorithm")
	}
}

func TestNewVerifierDefaultsToMD5(t *testing.T) {
	v, err := NewVerifier("secret", "")
	if err != nil {
		t.Fatalf("NewVerifier: %v", err)
	}
	if v.algo != AlgoMD5 {
		t.Errorf("default algo = %q, want %q", v.algo, AlgoMD5)
	}
}
