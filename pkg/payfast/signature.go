package payfast

import (
	"crypto/md5"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Supported signature algorithms. MD5 is what the gateway contract specifies;
// SHA-256 is accepted for gateways that allow the stronger digest.
const (
	AlgoMD5    = "md5"
	AlgoSHA256 = "sha256"
)

const signatureField = "signature"

// Verifier checks that a notification genuinely originated from the payment
// gateway. An empty passphrase makes verification fail closed: every payload
// is rejected until the shared secret is configured.
type Verifier struct {
	passphrase string
	algo       string
}

func NewVerifier(passphrase, algo string) (*Verifier, error) {
	switch algo {
	case AlgoMD5, AlgoSHA256:
	case "":
		algo = AlgoMD5
	default:
		return nil, fmt.Errorf("unsupported signature algorithm %q", algo)
	}

	return &Verifier{
		passphrase: passphrase,
		algo:       algo,
	}, nil
}

// Verify recomputes the signature over fields and compares it to the provided
// one in constant time. The signature field itself is excluded from the
// computation.
func (v *Verifier) Verify(fields url.Values, signature string) error {
	if v.passphrase == "" {
		return fmt.Errorf("gateway passphrase not configured")
	}
	if signature == "" {
		return fmt.Errorf("missing signature")
	}

	expected := v.Sign(fields)

	if subtle.ConstantTimeCompare([]byte(expected), []byte(strings.ToLower(signature))) != 1 {
		return fmt.Errorf("signature mismatch")
	}

	return nil
}

// Sign computes the hex digest over the canonical parameter string.
func (v *Verifier) Sign(fields url.Values) string {
	payload := v.paramString(fields)

	if v.algo == AlgoSHA256 {
		sum := sha256.Sum256([]byte(payload))
		return hex.EncodeToString(sum[:])
	}

	sum := md5.Sum([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// paramString builds the canonical string the gateway signs: fields ordered
// by key, empty values skipped, values url-encoded, joined by '&', with the
// passphrase appended as a trailing parameter when configured.
func (v *Verifier) paramString(fields url.Values) string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		if key == signatureField {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, key := range keys {
		value := fields.Get(key)
		if value == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(key)
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(value))
	}

	if v.passphrase != "" {
		if sb.Len() > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString("passphrase=")
		sb.WriteString(url.QueryEscape(v.passphrase))
	}

	return sb.String()
}
