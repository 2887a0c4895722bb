package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestNewSecretHasher(t *testing.T) {
	hasher := newSecretHasher()
	bcryptHasher, ok := hasher.(*BcryptHasher)
	if !ok {
		t.Fatalf("expected *BcryptHasher, got %T", hasher)
	}
	if bcryptHasher.cost != bcrypt.DefaultCost {
		t.Fatalf("unexpected cost: %d", bcryptHasher.cost)
	}
}
