package ecpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	domainErrors "github.com/polkiloo/qrorder/internal/domain/errors"
)

// Signer computes CheckMacValue for a field set. It is shared by the
// request builder and the callback validator.
type Signer struct {
	hashKey string
	hashIV  string
}

// NewSigner builds Signer and refuses empty secrets.
func NewSigner(hashKey, hashIV string) (*Signer, error) {
	if hashKey == "" || hashIV == "" {
		return nil, fmt.Errorf("%w: hash key and hash iv must be set", domainErrors.ErrConfiguration)
	}
	return &Signer{hashKey: hashKey, hashIV: hashIV}, nil
}

// CheckMacValue returns the upper-case hex SHA-256 of the canonical form.
// fields must not contain the CheckMacValue entry itself.
func (s *Signer) CheckMacValue(fields map[string]string) string {
	sum := sha256.Sum256([]byte(Canonicalize(fields, s.hashKey, s.hashIV)))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// Verify recomputes the MAC over every field except CheckMacValue and
// compares it with the received one in constant time. fields is not modified.
func (s *Signer) Verify(fields map[string]string) bool {
	received, ok := fields[FieldCheckMacValue]
	if !ok || received == "" {
		return false
	}

	rest := make(map[string]string, len(fields))
	for k, v := range fields {
		if k == FieldCheckMacValue {
			continue
		}
		rest[k] = v
	}

	expected := s.CheckMacValue(rest)
	return hmac.Equal([]byte(strings.ToUpper(received)), []byte(expected))
}
