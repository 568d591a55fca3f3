package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Webhook authenticity: the provider signs `<timestamp>.<raw body>` with the
// shared secret and sends `t=<unix>,v1=<hex hmac>` in this header.
const SignatureHeader = "X-Payment-Signature"

var (
	ErrInvalidSignature = errors.New("webhook signature verification failed")
	ErrSignatureTooOld  = errors.New("webhook signature timestamp outside tolerance")
	ErrMalformedHeader  = errors.New("malformed signature header")
)

// ComputeSignature produces the signature header value for a payload at the
// given time. Used by tests and the mock provider.
func ComputeSignature(secret []byte, timestamp time.Time, payload []byte) string {
	ts := timestamp.Unix()
	mac := hmac.New(sha256.New, secret)
	fmt.Fprintf(mac, "%d.", ts)
	mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

// VerifySignature checks a signature header against the raw payload. The
// timestamp must be within tolerance of now; comparison is constant-time.
func VerifySignature(secret []byte, header string, payload []byte, tolerance time.Duration, now time.Time) error {
	ts, candidates, err := parseSignatureHeader(header)
	if err != nil {
		return err
	}

	signedAt := time.Unix(ts, 0)
	if diff := now.Sub(signedAt); diff > tolerance || diff < -tolerance {
		return ErrSignatureTooOld
	}

	mac := hmac.New(sha256.New, secret)
	fmt.Fprintf(mac, "%d.", ts)
	mac.Write(payload)
	expected := mac.Sum(nil)

	for _, candidate := range candidates {
		decoded, err := hex.DecodeString(candidate)
		if err != nil {
			continue
		}
		if hmac.Equal(decoded, expected) {
			return nil
		}
	}
	return ErrInvalidSignature
}

// parseSignatureHeader splits `t=<unix>,v1=<hex>[,v1=<hex>...]`. Multiple v1
// entries are allowed so the provider can roll secrets.
func parseSignatureHeader(header string) (int64, []string, error) {
	var ts int64
	var tsSeen bool
	var candidates []string

	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			return 0, nil, ErrMalformedHeader
		}
		switch key {
		case "t":
			parsed, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return 0, nil, ErrMalformedHeader
			}
			ts = parsed
			tsSeen = true
		case "v1":
			candidates = append(candidates, value)
		}
	}

	if !tsSeen || len(candidates) == 0 {
		return 0, nil, ErrMalformedHeader
	}
	return ts, candidates, nil
}
