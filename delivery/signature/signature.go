package signature

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

/* Standard Webhooks symmetric signing
 * The signed content is {msgID}.{timestamp}.{payload}; the receiver rebuilds
 * it from the webhook-id and webhook-timestamp headers and the raw body
 */

const (
	// SecretPrefix is the prefix for symmetric signing secrets
	SecretPrefix = "whsec_"

	// SignatureVersion identifies the HMAC-SHA256 scheme
	SignatureVersion = "v1"

	// MinSecretBytes is the minimum secret size (192 bits)
	MinSecretBytes = 24

	// MaxSecretBytes is the maximum secret size (512 bits)
	MaxSecretBytes = 64
)

// Secret represents a signing secret shared with one subscriber
type Secret struct {
	raw    []byte
	base64 string
}

// GenerateSecret creates a new cryptographically secure signing secret
func GenerateSecret(size int) (Secret, error) {
	if size < MinSecretBytes || size > MaxSecretBytes {
		return Secret{}, fmt.Errorf("secret size must be between %d and %d bytes", MinSecretBytes, MaxSecretBytes)
	}

	bytes := make([]byte, size)
	if _, err := rand.Read(bytes); err != nil {
		return Secret{}, fmt.Errorf("generating random bytes: %w", err)
	}

	return Secret{
		raw:    bytes,
		base64: SecretPrefix + base64.StdEncoding.EncodeToString(bytes),
	}, nil
}

// ParseSecret parses a base64-encoded secret with the whsec_ prefix
func ParseSecret(encoded string) (Secret, error) {
	if !strings.HasPrefix(encoded, SecretPrefix) {
		return Secret{}, fmt.Errorf("secret must start with %s prefix", SecretPrefix)
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(encoded, SecretPrefix))
	if err != nil {
		return Secret{}, fmt.Errorf("decoding base64 secret: %w", err)
	}

	if len(raw) < MinSecretBytes || len(raw) > MaxSecretBytes {
		return Secret{}, fmt.Errorf("secret size must be between %d and %d bytes", MinSecretBytes, MaxSecretBytes)
	}

	return Secret{
		raw:    raw,
		base64: encoded,
	}, nil
}

// String returns the base64-encoded secret with prefix
func (s Secret) String() string {
	return s.base64
}

// Bytes returns the raw secret bytes
func (s Secret) Bytes() []byte {
	return s.raw
}

// Signature is one versioned signature value
type Signature struct {
	Version   string
	Signature string
}

// String returns the signature in the format: v1,<base64_signature>
func (s Signature) String() string {
	return fmt.Sprintf("%s,%s", s.Version, s.Signature)
}

// ParseSignature parses a signature string in the format: v1,<base64_signature>
func ParseSignature(sig string) (Signature, error) {
	parts := strings.SplitN(sig, ",", 2)
	if len(parts) != 2 {
		return Signature{}, fmt.Errorf("invalid signature format, expected 'version,signature'")
	}

	return Signature{
		Version:   parts[0],
		Signature: parts[1],
	}, nil
}

// Sign computes the signature for an outgoing delivery
func Sign(secret Secret, msgID string, timestamp time.Time, payload []byte) (Signature, error) {
	if strings.Contains(msgID, ".") {
		return Signature{}, fmt.Errorf("message ID must not contain '.'")
	}

	signedContent := fmt.Sprintf("%s.%s.%s", msgID, strconv.FormatInt(timestamp.Unix(), 10), payload)

	mac := hmac.New(sha256.New, secret.Bytes())
	mac.Write([]byte(signedContent))

	return Signature{
		Version:   SignatureVersion,
		Signature: base64.StdEncoding.EncodeToString(mac.Sum(nil)),
	}, nil
}

// Verify checks a signature using constant-time comparison.
// Receivers use this to authenticate deliveries; tests use it to prove the
// executor signs what it sends.
func Verify(secret Secret, msgID string, timestamp time.Time, payload []byte, expectedSig Signature) (bool, error) {
	if expectedSig.Version != SignatureVersion {
		return false, fmt.Errorf("unsupported signature version: %s", expectedSig.Version)
	}

	calculatedSig, err := Sign(secret, msgID, timestamp, payload)
	if err != nil {
		return false, fmt.Errorf("calculating signature: %w", err)
	}

	expected, err := base64.StdEncoding.DecodeString(expectedSig.Signature)
	if err != nil {
		return false, fmt.Errorf("decoding expected signature: %w", err)
	}

	calculated, err := base64.StdEncoding.DecodeString(calculatedSig.Signature)
	if err != nil {
		return false, fmt.Errorf("decoding calculated signature: %w", err)
	}

	return subtle.ConstantTimeCompare(expected, calculated) == 1, nil
}
