package payments

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestVerifySignatureRoundTrip(t *testing.T) {
	secret := []byte("whsec_test_secret")
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed"}`)
	now := time.Now()

	header := ComputeSignature(secret, now, payload)

	if err := VerifySignature(secret, header, payload, 5*time.Minute, now); err != nil {
		t.Fatalf("VerifySignature rejected a valid signature: %v", err)
	}
}

func TestVerifySignatureRejectsWrongSecret(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)
	now := time.Now()

	header := ComputeSignature([]byte("correct_secret"), now, payload)

	err := VerifySignature([]byte("wrong_secret"), header, payload, 5*time.Minute, now)
	if !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("VerifySignature = %v, want ErrInvalidSignature", err)
	}
}

func TestVerifySignatureRejectsTamperedPayload(t *testing.T) {
	secret := []byte("whsec_test_secret")
	now := time.Now()

	header := ComputeSignature(secret, now, []byte(`{"amount":400}`))

	err := VerifySignature(secret, header, []byte(`{"amount":1}`), 5*time.Minute, now)
	if !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("VerifySignature = %v, want ErrInvalidSignature", err)
	}
}

func TestVerifySignatureRejectsStaleTimestamp(t *testing.T) {
	secret := []byte("whsec_test_secret")
	payload := []byte(`{"id":"evt_1"}`)
	signedAt := time.Now().Add(-10 * time.Minute)

	header := ComputeSignature(secret, signedAt, payload)

	err := VerifySignature(secret, header, payload, 5*time.Minute, time.Now())
	if !errors.Is(err, ErrSignatureTooOld) {
		t.Fatalf("VerifySignature = %v, want ErrSignatureTooOld", err)
	}
}

func TestVerifySignatureRejectsFutureTimestamp(t *testing.T) {
	secret := []byte("whsec_test_secret")
	payload := []byte(`{"id":"evt_1"}`)
	signedAt := time.Now().Add(10 * time.Minute)

	header := ComputeSignature(secret, signedAt, payload)

	err := VerifySignature(secret, header, payload, 5*time.Minute, time.Now())
	if !errors.Is(err, ErrSignatureTooOld) {
		t.Fatalf("VerifySignature = %v, want ErrSignatureTooOld", err)
	}
}

func TestVerifySignatureMalformedHeaders(t *testing.T) {
	secret := []byte("whsec_test_secret")
	payload := []byte(`{}`)
	now := time.Now()

	headers := []string{
		"",
		"garbage",
		"t=notanumber,v1=abcd",
		"v1=abcd",
		fmt.Sprintf("t=%d", now.Unix()),
	}

	for _, header := range headers {
		err := VerifySignature(secret, header, payload, 5*time.Minute, now)
		if !errors.Is(err, ErrMalformedHeader) {
			t.Errorf("VerifySignature(%q) = %v, want ErrMalformedHeader", header, err)
		}
	}
}

// A header may carry several v1 entries during secret rotation; any one
// matching is enough.
func TestVerifySignatureAcceptsRolledSecrets(t *testing.T) {
	oldSecret := []byte("whsec_old")
	newSecret := []byte("whsec_new")
	payload := []byte(`{"id":"evt_1"}`)
	now := time.Now()

	oldHeader := ComputeSignature(oldSecret, now, payload)
	newHeader := ComputeSignature(newSecret, now, payload)
	combined := oldHeader + ",v1=" + strings.Split(newHeader, "v1=")[1]

	if err := VerifySignature(newSecret, combined, payload, 5*time.Minute, now); err != nil {
		t.Fatalf("VerifySignature rejected header with rolled secrets: %v", err)
	}
}
