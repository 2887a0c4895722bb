package auth

import "golang.org/x/crypto/bcrypt"

// SecretHasher hashes secrets that are only ever compared, never read back,
// such as the token printed in a table QR code.
type SecretHasher interface {
	Hash(secret string) (string, error)
	Compare(hash string, secret string) error
}

// BcryptHasher uses bcrypt to hash secrets.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates BcryptHasher with provided cost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash returns bcrypt hash for provided secret.
func (h *BcryptHasher) Hash(secret string) (string, error) {
	encoded, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

// Compare checks secret against stored hash.
func (h *BcryptHasher) Compare(hash string, secret string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret))
}
